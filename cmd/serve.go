package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"hostdash/internal/credentials"
	"hostdash/internal/redaction"
	"hostdash/internal/server"
	"hostdash/internal/session"
	"hostdash/internal/telemetry"

	"github.com/spf13/cobra"
)

var (
	listenAddr  string
	certFile    string
	keyFile     string
	frontendDir string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboard HTTPS server",
	RunE: func(cmd *cobra.Command, args []string) error {
		if listenAddr != "" {
			cfg.ListenAddr = listenAddr
		}
		if certFile != "" {
			cfg.CertFile = certFile
		}
		if keyFile != "" {
			cfg.KeyFile = keyFile
		}
		if frontendDir != "" {
			cfg.FrontendDir = frontendDir
		}

		logger, err := server.NewLogger(cfg.LogLevel, os.Stderr)
		if err != nil {
			return err
		}

		creds := credentials.Default()
		if cfg.CredentialsFile != "" {
			if creds, err = credentials.LoadFile(cfg.CredentialsFile); err != nil {
				return err
			}
		}

		for _, rule := range cfg.RedactionRules {
			if err := redaction.Validate(rule); err != nil {
				logger.Warn().Err(err).Msg("skipping redaction rule")
			}
		}

		registry := session.NewRegistry(creds)
		aggregator := telemetry.New(telemetry.NewHost(), telemetry.Config{
			Redactor: redaction.NewRedactor(cfg.RedactionRules),
		})
		srv := server.New(registry, aggregator, server.Options{
			FrontendDir: cfg.FrontendDir,
			TrustProxy:  cfg.TrustProxy,
			Logger:      logger,
			LogLimit:    cfg.LogLimit,
		})

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger.Info().
			Int("accounts", creds.Len()).
			Str("frontend", cfg.FrontendDir).
			Msg("starting hostdash")
		cmd.Printf("Server started at https://%s\n", cfg.ListenAddr)

		if err := srv.ListenAndServeTLS(ctx, cfg.ListenAddr, cfg.CertFile, cfg.KeyFile); err != nil {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "listen", "", "Address to listen on (default 0.0.0.0:8765)")
	serveCmd.Flags().StringVar(&certFile, "cert", "", "TLS certificate file")
	serveCmd.Flags().StringVar(&keyFile, "key", "", "TLS private key file")
	serveCmd.Flags().StringVar(&frontendDir, "frontend", "", "Directory served under /frontend/")
	rootCmd.AddCommand(serveCmd)
}

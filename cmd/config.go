package cmd

import (
	"hostdash/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("Server URL: %s\n", cfg.ServerURL)
		cmd.Printf("Insecure TLS: %v\n", cfg.Insecure)
		cmd.Printf("Listen address: %s\n", cfg.ListenAddr)
		cmd.Printf("Certificate: %s\n", cfg.CertFile)
		cmd.Printf("Key: %s\n", cfg.KeyFile)
		cmd.Printf("Frontend dir: %s\n", cfg.FrontendDir)
		if cfg.CredentialsFile != "" {
			cmd.Printf("Credentials file: %s\n", cfg.CredentialsFile)
		} else {
			cmd.Println("Credentials file: (built-in accounts)")
		}
		cmd.Printf("Log level: %s\n", cfg.LogLevel)
		if cfg.LogLimit > 0 {
			cmd.Printf("Log lines served: %d\n", cfg.LogLimit)
		}
		cmd.Printf("Redaction rules: %d\n", len(cfg.RedactionRules))
	},
}

var configSetServerCmd = &cobra.Command{
	Use:   "set-server [url]",
	Short: "Set server URL",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		serverURL := args[0]
		fileCfg := config.LoadSaved()
		fileCfg.ServerURL = serverURL

		if err := config.SaveConfig(fileCfg); err != nil {
			cmd.Printf("Error saving configuration: %v\n", err)
			return
		}

		cmd.Printf("Server URL set to: %s\n", serverURL)
	},
}

var configSetCertCmd = &cobra.Command{
	Use:   "set-cert [cert-file] [key-file]",
	Short: "Set the TLS certificate and key used by serve",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		fileCfg := config.LoadSaved()
		fileCfg.CertFile = args[0]
		fileCfg.KeyFile = args[1]

		if err := config.SaveConfig(fileCfg); err != nil {
			cmd.Printf("Error saving configuration: %v\n", err)
			return
		}

		cmd.Println("TLS certificate saved successfully")
	},
}

var configSetCredentialsCmd = &cobra.Command{
	Use:   "set-credentials [file]",
	Short: "Use a YAML credentials file instead of the built-in accounts",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		fileCfg := config.LoadSaved()
		fileCfg.CredentialsFile = args[0]

		if err := config.SaveConfig(fileCfg); err != nil {
			cmd.Printf("Error saving configuration: %v\n", err)
			return
		}

		cmd.Printf("Credentials file set to: %s\n", args[0])
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetServerCmd)
	configCmd.AddCommand(configSetCertCmd)
	configCmd.AddCommand(configSetCredentialsCmd)
	rootCmd.AddCommand(configCmd)
}

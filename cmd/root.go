package cmd

import (
	"io"
	"os"

	"hostdash/internal/client"
	"hostdash/internal/config"

	"github.com/spf13/cobra"
)

var (
	cfg       config.Config
	serverURL string
	insecure  bool
)

var rootCmd = &cobra.Command{
	Use:   "hostdash",
	Short: "hostdash - host telemetry dashboard server and client",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.LoadConfig()
		if serverURL != "" {
			cfg.ServerURL = serverURL
		}
		if insecure {
			cfg.Insecure = true
		}
	},
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Server URL")
	rootCmd.PersistentFlags().BoolVar(&insecure, "insecure", false, "Skip TLS certificate verification")
}

func SetArgs(args []string) {
	rootCmd.SetArgs(args)
}

func SetOut(w io.Writer) {
	rootCmd.SetOut(w)
}

func newAPIClient() *client.APIClient {
	return client.NewAPIClient(cfg.ServerURL, cfg.Insecure)
}

// saveConfig persists the redaction rules edited on cfg. It starts from
// the saved file so --server, --insecure and HOSTDASH_* overrides stay
// out of config.json.
func saveConfig() error {
	fileCfg := config.LoadSaved()
	fileCfg.RedactionRules = cfg.RedactionRules
	return config.SaveConfig(fileCfg)
}

package cmd

import (
	"github.com/spf13/cobra"
)

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test connection to server",
	Run: func(cmd *cobra.Command, args []string) {
		health, err := newAPIClient().HealthCheck()
		if err != nil {
			cmd.Printf("✗ Cannot connect to %s\n", cfg.ServerURL)
			cmd.Printf("  Error: %v\n", err)
			return
		}

		cmd.Printf("✓ Connected to %s\n", cfg.ServerURL)
		cmd.Printf("  Status: %s\n", health.Status)
	},
}

func init() {
	rootCmd.AddCommand(testCmd)
}

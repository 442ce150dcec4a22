package cmd

import (
	"hostdash/internal/redaction"

	"github.com/spf13/cobra"
)

var (
	ruleName        string
	rulePattern     string
	ruleReplacement string
)

var redactionCmd = &cobra.Command{
	Use:   "redaction",
	Short: "Manage redaction rules for served log lines",
	Long: `Configure regex patterns that mask sensitive data in system log
lines before /api/system_logs returns them. Rules take effect the next time
the server starts.

Redaction rules are stored in ~/.config/hostdash/config.json`,
}

var redactionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configured redaction rules",
	Run: func(cmd *cobra.Command, args []string) {
		if len(cfg.RedactionRules) == 0 {
			cmd.Println("No redaction rules configured.")
			cmd.Println("\nAdd rules with: hostdash redaction add --name \"Rule Name\" --pattern \"regex\" --replacement \"[REDACTED]\"")
			return
		}

		cmd.Printf("Configured redaction rules (%d):\n\n", len(cfg.RedactionRules))
		for i, rule := range cfg.RedactionRules {
			cmd.Printf("%d. %s\n", i+1, rule.Name)
			cmd.Printf("   Pattern:     %s\n", rule.Pattern)
			cmd.Printf("   Replacement: %s\n\n", rule.Replacement)
		}
	},
}

var redactionAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new redaction rule",
	Long: `Add a new regex pattern to mask sensitive data in log lines.

Examples:
  # Mask IPv4 addresses
  hostdash redaction add --name "IPs" --pattern "\b(?:\d{1,3}\.){3}\d{1,3}\b" --replacement "[IP]"

  # Mask password fields
  hostdash redaction add --name "Passwords" --pattern "password=\S+" --replacement "password=[REDACTED]"

  # Mask Bearer tokens
  hostdash redaction add --name "Tokens" --pattern "Bearer\s+\S+" --replacement "Bearer [TOKEN]"`,
	Run: func(cmd *cobra.Command, args []string) {
		if ruleName == "" || rulePattern == "" {
			cmd.Println("Error: --name and --pattern are required")
			return
		}

		if ruleReplacement == "" {
			ruleReplacement = "[REDACTED]"
		}

		for _, rule := range cfg.RedactionRules {
			if rule.Name == ruleName {
				cmd.Printf("Error: A rule named %q already exists\n", ruleName)
				return
			}
		}

		newRule := redaction.Rule{
			Name:        ruleName,
			Pattern:     rulePattern,
			Replacement: ruleReplacement,
		}
		if err := redaction.Validate(newRule); err != nil {
			cmd.Printf("Error: invalid pattern: %v\n", err)
			return
		}

		cfg.RedactionRules = append(cfg.RedactionRules, newRule)

		if err := saveConfig(); err != nil {
			cmd.Printf("Error saving config: %v\n", err)
			return
		}

		cmd.Printf("Added redaction rule: %s\n", ruleName)
	},
}

var redactionRemoveCmd = &cobra.Command{
	Use:   "remove [name]",
	Short: "Remove a redaction rule by name",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		nameToRemove := args[0]

		found := false
		newRules := make([]redaction.Rule, 0, len(cfg.RedactionRules))
		for _, rule := range cfg.RedactionRules {
			if rule.Name == nameToRemove {
				found = true
				continue
			}
			newRules = append(newRules, rule)
		}

		if !found {
			cmd.Printf("Error: No rule named %q found\n", nameToRemove)
			return
		}

		cfg.RedactionRules = newRules

		if err := saveConfig(); err != nil {
			cmd.Printf("Error saving config: %v\n", err)
			return
		}

		cmd.Printf("Removed redaction rule: %s\n", nameToRemove)
	},
}

func init() {
	redactionAddCmd.Flags().StringVar(&ruleName, "name", "", "Name for the redaction rule (required)")
	redactionAddCmd.Flags().StringVar(&rulePattern, "pattern", "", "Regex pattern to match (required)")
	redactionAddCmd.Flags().StringVar(&ruleReplacement, "replacement", "[REDACTED]", "Replacement text")

	redactionCmd.AddCommand(redactionListCmd)
	redactionCmd.AddCommand(redactionAddCmd)
	redactionCmd.AddCommand(redactionRemoveCmd)
	rootCmd.AddCommand(redactionCmd)
}

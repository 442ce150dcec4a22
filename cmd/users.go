package cmd

import (
	"hostdash/internal/models"

	"github.com/spf13/cobra"
)

func printSessions(cmd *cobra.Command, users []models.SessionRecord) {
	if len(users) == 0 {
		cmd.Println("No users")
		return
	}
	for _, u := range users {
		cmd.Printf("[%s] %s from %s\n", u.LoginTime, u.Username, u.IPAddress)
	}
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List users currently logged in",
	Run: func(cmd *cobra.Command, args []string) {
		users, err := newAPIClient().CurrentUsers()
		if err != nil {
			cmd.Printf("Error listing users: %v\n", err)
			return
		}
		printSessions(cmd, users)
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List the last 10 distinct logins, newest first",
	Run: func(cmd *cobra.Command, args []string) {
		users, err := newAPIClient().RecentUsers()
		if err != nil {
			cmd.Printf("Error listing login history: %v\n", err)
			return
		}
		printSessions(cmd, users)
	},
}

func init() {
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(historyCmd)
}

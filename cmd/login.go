package cmd

import (
	"errors"

	"hostdash/internal/client"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login [username] [password]",
	Short: "Log in to the dashboard",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		username, password := args[0], args[1]

		err := newAPIClient().Login(username, password)
		if errors.Is(err, client.ErrInvalidCredentials) {
			cmd.Println("Login failed: invalid credentials")
			return
		}
		if err != nil {
			cmd.Printf("Error logging in: %v\n", err)
			return
		}

		// Remembering the user is best effort.
		if profile, err := client.LoadProfile(); err == nil {
			profile.Save(username)
		}
		cmd.Printf("Logged in as %s\n", username)
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout [username]",
	Short: "Log out (defaults to the last user logged in from this machine)",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		profile, _ := client.LoadProfile()

		username := ""
		if len(args) == 1 {
			username = args[0]
		} else if profile != nil {
			username = profile.Username
		}
		if username == "" {
			cmd.Println("Error: no username given and no remembered login")
			return
		}

		err := newAPIClient().Logout(username)
		if errors.Is(err, client.ErrNotLoggedIn) {
			cmd.Printf("%s is not logged in\n", username)
		} else if err != nil {
			cmd.Printf("Error logging out: %v\n", err)
			return
		} else {
			cmd.Printf("Logged out %s\n", username)
		}

		if profile != nil && profile.Username == username {
			profile.Clear()
		}
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}

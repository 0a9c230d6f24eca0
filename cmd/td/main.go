package main

import (
	"os"

	"github.com/alfredjeanlab/threads/internal/client"
	"github.com/spf13/cobra"
)

var (
	serverURL  string
	authToken  string
	userID     string
	jsonOutput bool

	threadsClient client.ThreadsClient
)

func defaultServer() string {
	if s := os.Getenv("THREADS_SERVER"); s != "" {
		return s
	}
	if u := activeRemoteURL(); u != "" {
		return u
	}
	return "http://localhost:8080"
}

func defaultToken() string {
	if t := os.Getenv("THREADS_TOKEN"); t != "" {
		return t
	}
	return activeRemoteToken()
}

func defaultUser() string {
	if u := os.Getenv("THREADS_USER"); u != "" {
		return u
	}
	return activeRemoteUser()
}

var rootCmd = &cobra.Command{
	Use:   "td <command>",
	Short: "CLI client for the threads comment service",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		threadsClient = client.NewHTTPClient(serverURL, authToken, userID)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if threadsClient != nil {
			threadsClient.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", defaultServer(), "threads server URL")
	rootCmd.PersistentFlags().StringVar(&authToken, "token", defaultToken(), "bearer token for authentication")
	rootCmd.PersistentFlags().StringVar(&userID, "user", defaultUser(), "user id sent as the X-User-ID header")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")

	rootCmd.AddGroup(
		&cobra.Group{ID: "comments", Title: "Comments:"},
		&cobra.Group{ID: "notifications", Title: "Notifications:"},
		&cobra.Group{ID: "system", Title: "System:"},
	)

	cobra.EnableCommandSorting = false
	rootCmd.SetHelpFunc(colorizedHelpFunc())

	// Comments
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(likeCmd)
	rootCmd.AddCommand(threadCmd)

	// Notifications
	rootCmd.AddCommand(notificationsCmd)

	// System
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(remoteCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

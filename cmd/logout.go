// ABOUTME: Logout command for the voltride CLI
// ABOUTME: Clears the saved session and invalidates it on the backend

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/voltride/voltride-cli/internal/auth"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out of Voltride",
	Long: `Clear the saved session.

The backend is asked to invalidate the token as well, but the local
session is removed even when that call fails.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLogout(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

// runLogout executes the logout flow and returns exit code
func runLogout(ctx context.Context, w io.Writer) int {
	api, store := buildSession(loadConfig())

	if store.PersistedToken() == "" {
		fmt.Fprintln(w, "Not signed in.")
		return 0
	}

	if err := auth.Rehydrate(ctx, api, store); err == nil && store.IsAuthenticated() {
		// Best effort; the local session goes away regardless
		if err := api.Logout(ctx, store.Token()); err != nil {
			fmt.Fprintf(w, "Warning: backend logout failed: %v\n", err)
		}
	}

	store.Logout()
	fmt.Fprintln(w, "Signed out.")
	return 0
}

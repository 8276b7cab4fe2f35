// ABOUTME: Whoami command for the voltride CLI
// ABOUTME: Shows the signed-in account and its landing page

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/voltride/voltride-cli/internal/auth"
	"github.com/voltride/voltride-cli/internal/nav"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in account",
	Long: `Show the account behind the saved session.

Exit codes:
  0 - Signed in
  1 - Not signed in (or session no longer valid)
  2 - Error (connectivity)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runWhoami(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

// runWhoami restores the session and prints the account, returning exit code
func runWhoami(ctx context.Context, w io.Writer) int {
	api, store := buildSession(loadConfig())

	if err := auth.Rehydrate(ctx, api, store); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	user := store.User()
	if user == nil {
		fmt.Fprintln(w, "Not signed in.")
		return 1
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatWhoamiJSON(user))
	} else {
		fmt.Fprintln(w, formatWhoamiHuman(user))
	}
	return 0
}

// formatWhoamiHuman formats the account for human readability
func formatWhoamiHuman(user *auth.Identity) string {
	out := fmt.Sprintf(`Name:      %s
Email:     %s
Role:      %s
Dashboard: %s`,
		user.Name,
		user.Email,
		user.Role,
		nav.DashboardPath(user.Role, true))

	if user.Station != nil {
		out += fmt.Sprintf("\nStation:   %s", user.Station.Name)
	}
	if user.Avatar.Kind == auth.AvatarResolved {
		out += fmt.Sprintf("\nAvatar:    %s", user.Avatar.URL)
	}
	return out
}

// formatWhoamiJSON formats the account as JSON
func formatWhoamiJSON(user *auth.Identity) string {
	output := map[string]interface{}{
		"user":      user,
		"dashboard": nav.DashboardPath(user.Role, true),
	}

	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}

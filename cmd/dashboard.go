// ABOUTME: Dashboard command for the voltride CLI
// ABOUTME: Launches the full-screen terminal UI

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/voltride/voltride-cli/internal/auth"
	"github.com/voltride/voltride-cli/internal/tui"
	"github.com/voltride/voltride-cli/internal/tui/logfile"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Launch the full-screen dashboard",
	Long: `Launch the interactive terminal dashboard.

Restores a previously saved session before starting; a stale session is
discarded and the dashboard opens as a guest.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		return runDashboard(ctx)
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(ctx context.Context) error {
	cfg := loadConfig()

	if err := logfile.Init(cfg.ConfigDir, cfg.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: debug log unavailable: %v\n", err)
	}
	defer logfile.Close()

	api, store := buildSession(cfg)

	if err := auth.Rehydrate(ctx, api, store); err != nil {
		// A dead backend should not block guest browsing
		fmt.Fprintf(os.Stderr, "Warning: could not restore session: %v\n", err)
	}

	return tui.Run(api, store)
}

// ABOUTME: Root command for the voltride CLI
// ABOUTME: Handles global flags and shared session setup

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/voltride/voltride-cli/internal/auth"
	"github.com/voltride/voltride-cli/internal/client"
	"github.com/voltride/voltride-cli/internal/config"
)

var (
	apiURL     string
	configDir  string
	jsonOutput bool
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "voltride",
	Short: "Terminal client for Voltride EV rentals",
	Long: `voltride is a terminal client for the Voltride electric vehicle
rental platform. Browse the fleet, sign in, and manage bookings from
your shell, or launch the full-screen dashboard.

Environment Variables:
  VOLTRIDE_API_URL     Backend API URL (default: http://localhost:8080)
  VOLTRIDE_CONFIG_DIR  Session and log directory (default: ~/.config/voltride)
  VOLTRIDE_LOG_LEVEL   Log level for the dashboard debug log (default: info)`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides VOLTRIDE_API_URL)")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Session directory (overrides VOLTRIDE_CONFIG_DIR)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// loadConfig resolves configuration from flags, env, and defaults (in
// priority order)
func loadConfig() config.Config {
	cfg := config.Load()
	if apiURL != "" {
		cfg.APIURL = apiURL
	}
	if configDir != "" {
		cfg.ConfigDir = configDir
	}
	return cfg
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// buildSession wires the API client to a session store backed by the
// on-disk token file. The client reads its bearer token from the store,
// so a later login or logout is picked up without rewiring.
func buildSession(cfg config.Config) (*client.Client, *auth.Store) {
	tokens := auth.NewTokenFile(cfg.ConfigDir)
	store := auth.NewStore(tokens)

	c := client.New(cfg.APIURL)
	c.SetTokenSource(store.Token)
	return c, store
}

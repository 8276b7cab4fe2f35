// ABOUTME: Vehicles command for the voltride CLI
// ABOUTME: Lists the public vehicle fleet

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/voltride/voltride-cli/internal/client"
)

var vehiclesAvailableOnly bool

var vehiclesCmd = &cobra.Command{
	Use:   "vehicles",
	Short: "List the vehicle fleet",
	Long: `List the vehicle fleet. No sign-in required.

Exit codes:
  0 - Listing printed
  2 - Error (connectivity)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runVehicles(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(vehiclesCmd)
	vehiclesCmd.Flags().BoolVar(&vehiclesAvailableOnly, "available", false, "Show only vehicles available to book")
}

// runVehicles fetches and prints the fleet listing, returning exit code
func runVehicles(ctx context.Context, w io.Writer) int {
	api, _ := buildSession(loadConfig())

	vehicles, err := api.ListVehicles(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if vehiclesAvailableOnly {
		filtered := vehicles[:0]
		for _, v := range vehicles {
			if v.Available() {
				filtered = append(filtered, v)
			}
		}
		vehicles = filtered
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatVehiclesJSON(vehicles))
	} else {
		fmt.Fprintln(w, formatVehiclesHuman(vehicles))
	}
	return 0
}

// formatVehiclesHuman formats the fleet listing for human readability
func formatVehiclesHuman(vehicles []client.Vehicle) string {
	if len(vehicles) == 0 {
		return "No vehicles found."
	}

	var sb strings.Builder
	for _, v := range vehicles {
		fmt.Fprintf(&sb, "%-20s %-12s %-14s %3d%%  $%.2f/h  [%s]\n",
			v.Name, v.Model, v.StationName, v.BatteryPercent, v.PricePerHour, v.Status)
	}
	fmt.Fprintf(&sb, "\n%d vehicle(s)", len(vehicles))
	return sb.String()
}

// formatVehiclesJSON formats the fleet listing as JSON
func formatVehiclesJSON(vehicles []client.Vehicle) string {
	data, _ := json.MarshalIndent(vehicles, "", "  ")
	return string(data)
}

// ABOUTME: Tests for the operations console view
// ABOUTME: Covers role titling, fleet counts, and the low-battery warning

package console

import (
	"strings"
	"testing"

	"github.com/voltride/voltride-cli/internal/auth"
	"github.com/voltride/voltride-cli/internal/client"
)

func staffUser() *auth.Identity {
	return &auth.Identity{
		ID:   "u-5",
		Name: "Kim Osei",
		Role: auth.RoleStaff,
		Station: &auth.Station{
			ID:   "st-1",
			Name: "Harbor North",
		},
	}
}

func testSnapshot() *client.ConsoleSnapshot {
	return &client.ConsoleSnapshot{
		Vehicles: []client.Vehicle{
			{ID: "v-1", Name: "Volt One", BatteryPercent: 92, Status: "available"},
			{ID: "v-2", Name: "Volt Two", BatteryPercent: 10, Status: "rented"},
		},
		Stations: []client.StationSummary{
			{ID: "st-1", Name: "Harbor North", VehicleCount: 2, OpenBookings: 1},
		},
		Bookings: []client.Booking{
			{ID: "b-1", Status: "active"},
			{ID: "b-2", Status: "completed"},
		},
	}
}

func TestConsole_LoadingBeforeSnapshot(t *testing.T) {
	c := New(staffUser(), 80, 24)
	if !strings.Contains(c.View(), "Loading console data...") {
		t.Error("expected loading placeholder before snapshot")
	}
}

func TestConsole_StaffTitleAndStation(t *testing.T) {
	c := New(staffUser(), 80, 24)
	c.SetSnapshot(testSnapshot())

	view := c.View()
	if !strings.Contains(view, "Staff Console") {
		t.Error("expected staff title")
	}
	if !strings.Contains(view, "Kim Osei") {
		t.Error("expected user name")
	}
	if !strings.Contains(view, "Harbor North") {
		t.Error("expected assigned station")
	}
}

func TestConsole_AdminTitle(t *testing.T) {
	admin := staffUser()
	admin.Role = auth.RoleAdmin

	c := New(admin, 80, 24)
	c.SetSnapshot(testSnapshot())

	if !strings.Contains(c.View(), "Admin Console") {
		t.Error("expected admin title")
	}
}

func TestConsole_CountsAndWarning(t *testing.T) {
	c := New(staffUser(), 80, 24)
	c.SetSnapshot(testSnapshot())

	view := c.View()
	if !strings.Contains(view, "Vehicles: 2 (1 available)") {
		t.Error("expected vehicle counts")
	}
	if !strings.Contains(view, "Bookings: 1 open / 2 total") {
		t.Error("expected booking counts")
	}
	if !strings.Contains(view, "1 vehicle(s) below 15% charge") {
		t.Error("expected low-battery warning")
	}
}

func TestConsole_AverageChargeBar(t *testing.T) {
	c := New(staffUser(), 80, 24)
	c.SetSnapshot(testSnapshot())

	view := c.View()
	if !strings.Contains(view, "Avg charge:") {
		t.Error("expected fleet average charge line")
	}
	// (92 + 10) / 2 = 51
	if !strings.Contains(view, " 51%") {
		t.Error("expected averaged percentage label")
	}
}

func TestConsole_HealthyFleet(t *testing.T) {
	snap := testSnapshot()
	snap.Vehicles[1].BatteryPercent = 80

	c := New(staffUser(), 80, 24)
	c.SetSnapshot(snap)

	if !strings.Contains(c.View(), "Fleet charge healthy") {
		t.Error("expected healthy-fleet status")
	}
}

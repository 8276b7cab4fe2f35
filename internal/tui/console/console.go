// ABOUTME: Operations console view for staff and admin accounts
// ABOUTME: Renders the fleet snapshot: stations, vehicles, open bookings

package console

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/voltride/voltride-cli/internal/auth"
	"github.com/voltride/voltride-cli/internal/client"
	"github.com/voltride/voltride-cli/internal/tui/icons"
	"github.com/voltride/voltride-cli/internal/tui/styles"
	"github.com/voltride/voltride-cli/internal/tui/widgets"
)

// Console displays the operations snapshot for a staff or admin identity.
type Console struct {
	user   *auth.Identity
	snap   *client.ConsoleSnapshot
	width  int
	height int
}

// New creates a console for the given identity; data arrives via SetSnapshot.
func New(user *auth.Identity, width, height int) *Console {
	return &Console{
		user:   user,
		width:  width,
		height: height,
	}
}

// SetSnapshot installs freshly loaded console data.
func (c *Console) SetSnapshot(snap *client.ConsoleSnapshot) {
	c.snap = snap
}

// SetSize updates the console dimensions.
func (c *Console) SetSize(width, height int) {
	c.width = width
	c.height = height
}

// View renders the console.
func (c *Console) View() string {
	if c.snap == nil {
		return styles.Panel.Width(c.width).Render("Loading console data...")
	}

	var sb strings.Builder

	title := "Staff Console"
	if c.user != nil && c.user.Role == auth.RoleAdmin {
		title = "Admin Console"
	}
	sb.WriteString(styles.Title.Render(icons.Settings.String() + " " + title))
	sb.WriteString("\n")

	if c.user != nil {
		line := widgets.RoleBadge(c.user.Role) + " " + c.user.Name
		if c.user.Station != nil {
			line += styles.Subtitle.Render("  " + icons.Station.String() + " " + c.user.Station.Name)
		}
		sb.WriteString(line)
		sb.WriteString("\n\n")
	}

	available := 0
	lowBattery := 0
	for _, v := range c.snap.Vehicles {
		if v.Available() {
			available++
		}
		if v.BatteryPercent <= 15 {
			lowBattery++
		}
	}
	openBookings := 0
	for _, b := range c.snap.Bookings {
		if b.Status == "active" || b.Status == "pending" {
			openBookings++
		}
	}

	sb.WriteString(fmt.Sprintf("%s Stations: %d\n", icons.Station.String(), len(c.snap.Stations)))
	sb.WriteString(fmt.Sprintf("%s Vehicles: %d (%d available)\n", icons.Vehicle.String(), len(c.snap.Vehicles), available))
	sb.WriteString(fmt.Sprintf("%s Bookings: %d open / %d total\n", icons.Booking.String(), openBookings, len(c.snap.Bookings)))

	if len(c.snap.Vehicles) > 0 {
		total := 0
		for _, v := range c.snap.Vehicles {
			total += v.BatteryPercent
		}
		avg := total / len(c.snap.Vehicles)
		sb.WriteString(fmt.Sprintf("%s Avg charge: %s\n", icons.Battery.String(), widgets.BatteryBar(avg, 20)))
	}
	sb.WriteString("\n")

	if lowBattery > 0 {
		sb.WriteString(widgets.StatusText(fmt.Sprintf("%d vehicle(s) below 15%% charge", lowBattery), widgets.StatusWarning))
	} else {
		sb.WriteString(widgets.StatusText("Fleet charge healthy", widgets.StatusOK))
	}
	sb.WriteString("\n\n")

	if len(c.snap.Stations) > 0 {
		sb.WriteString(styles.Subtitle.Render("Stations"))
		sb.WriteString("\n")
		for _, s := range c.snap.Stations {
			sb.WriteString(fmt.Sprintf("  %s  %d vehicles, %d open bookings\n",
				styles.ValueStyle.Render(s.Name), s.VehicleCount, s.OpenBookings))
		}
	}

	return lipgloss.NewStyle().
		Width(c.width).
		Height(c.height).
		Render(sb.String())
}

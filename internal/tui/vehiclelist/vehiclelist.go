// ABOUTME: Vehicle browsing component with cursor selection and text filter
// ABOUTME: Emits a booking request for the selected vehicle

package vehiclelist

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/voltride/voltride-cli/internal/client"
	"github.com/voltride/voltride-cli/internal/tui/styles"
	"github.com/voltride/voltride-cli/internal/tui/widgets"
)

// BookRequestedMsg is sent when the user asks to book the selected vehicle.
type BookRequestedMsg struct {
	VehicleID string
}

// state tracks whether keys go to the list or the filter input.
type state int

const (
	stateList state = iota
	stateFilter
)

// VehicleList is the storefront vehicle browser.
type VehicleList struct {
	vehicles []client.Vehicle
	filtered []client.Vehicle
	cursor   int
	state    state
	filter   textinput.Model
	err      string
	width    int
}

// New creates an empty vehicle list; data arrives via SetVehicles.
func New() *VehicleList {
	ti := textinput.New()
	ti.Placeholder = "filter by name, model, or station"
	ti.CharLimit = 64
	ti.Width = 40

	return &VehicleList{
		filter: ti,
	}
}

// SetVehicles replaces the listing and reapplies the filter.
func (vl *VehicleList) SetVehicles(vehicles []client.Vehicle) {
	vl.vehicles = vehicles
	vl.err = ""
	vl.applyFilter()
}

// SetError shows a load failure in place of the listing.
func (vl *VehicleList) SetError(msg string) {
	vl.err = msg
}

// SetWidth sets the render width.
func (vl *VehicleList) SetWidth(width int) {
	vl.width = width
}

// Selected returns the vehicle under the cursor, or nil.
func (vl *VehicleList) Selected() *client.Vehicle {
	if vl.cursor < 0 || vl.cursor >= len(vl.filtered) {
		return nil
	}
	return &vl.filtered[vl.cursor]
}

func (vl *VehicleList) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(vl.filter.Value()))
	if query == "" {
		vl.filtered = vl.vehicles
	} else {
		vl.filtered = nil
		for _, v := range vl.vehicles {
			haystack := strings.ToLower(v.Name + " " + v.Model + " " + v.StationName)
			if strings.Contains(haystack, query) {
				vl.filtered = append(vl.filtered, v)
			}
		}
	}
	if vl.cursor >= len(vl.filtered) {
		vl.cursor = 0
	}
}

// Filtering reports whether the filter input is capturing keystrokes.
func (vl *VehicleList) Filtering() bool {
	return vl.state == stateFilter
}

// Update handles list and filter keys.
func (vl *VehicleList) Update(msg tea.Msg) (*VehicleList, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return vl, nil
	}

	if vl.state == stateFilter {
		return vl.updateFilter(keyMsg)
	}
	return vl.updateList(keyMsg)
}

func (vl *VehicleList) updateList(msg tea.KeyMsg) (*VehicleList, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if vl.cursor > 0 {
			vl.cursor--
		}
	case "down", "j":
		if vl.cursor < len(vl.filtered)-1 {
			vl.cursor++
		}
	case "/":
		vl.state = stateFilter
		vl.filter.Focus()
		return vl, textinput.Blink
	case "enter":
		if v := vl.Selected(); v != nil {
			id := v.ID
			return vl, func() tea.Msg { return BookRequestedMsg{VehicleID: id} }
		}
	}
	return vl, nil
}

func (vl *VehicleList) updateFilter(msg tea.KeyMsg) (*VehicleList, tea.Cmd) {
	switch msg.String() {
	case "esc":
		vl.state = stateList
		vl.filter.SetValue("")
		vl.filter.Blur()
		vl.applyFilter()
		return vl, nil
	case "enter":
		vl.state = stateList
		vl.filter.Blur()
		return vl, nil
	}

	var cmd tea.Cmd
	vl.filter, cmd = vl.filter.Update(msg)
	vl.applyFilter()
	return vl, cmd
}

// View renders the listing.
func (vl *VehicleList) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Vehicles"))
	b.WriteString("\n")

	if vl.state == stateFilter || vl.filter.Value() != "" {
		b.WriteString(vl.filter.View())
		b.WriteString("\n\n")
	}

	if vl.err != "" {
		b.WriteString(styles.StatusCritical.Render("Error: " + vl.err))
		b.WriteString("\n")
		return b.String()
	}

	if len(vl.filtered) == 0 {
		b.WriteString(styles.Subtitle.Render("No vehicles match."))
		return b.String()
	}

	for i, v := range vl.filtered {
		cursor := "  "
		name := v.Name
		if i == vl.cursor {
			cursor = styles.KeyStyle.Render("> ")
			name = styles.ValueStyle.Render(name)
		}

		line := cursor + name
		if v.Model != "" {
			line += styles.Subtitle.Render(" " + v.Model)
		}
		b.WriteString(line)
		b.WriteString("\n")

		b.WriteString("    ")
		b.WriteString(widgets.CompactBatteryBar(v.BatteryPercent, 8))
		b.WriteString(" ")
		b.WriteString(widgets.VehicleStatusBadge(v.Status))
		if v.StationName != "" {
			b.WriteString(styles.Subtitle.Render(" @ " + v.StationName))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.Help.Render("enter Book  / Filter"))
	return b.String()
}

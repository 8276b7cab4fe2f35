// ABOUTME: Navigation menu listing the destinations visible to the current identity
// ABOUTME: Entries are recomputed from the role navigation resolver on every change

package menu

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/voltride/voltride-cli/internal/nav"
	"github.com/voltride/voltride-cli/internal/tui/styles"
)

// NavigateMsg is sent when the user selects a destination.
type NavigateMsg struct {
	Path string
}

// Menu renders the navigation destinations for the current identity.
type Menu struct {
	entries []nav.Entry
	cursor  int
}

// New creates a menu from the given navigation set.
func New(paths nav.Paths) *Menu {
	return &Menu{entries: paths.Entries()}
}

// SetPaths replaces the entries after a login or logout changed the
// visible destinations.
func (m *Menu) SetPaths(paths nav.Paths) {
	m.entries = paths.Entries()
	if m.cursor >= len(m.entries) {
		m.cursor = 0
	}
}

// Entries returns the currently visible destinations.
func (m *Menu) Entries() []nav.Entry {
	return m.entries
}

// Update handles menu navigation keys.
func (m *Menu) Update(msg tea.KeyMsg) (*Menu, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case "enter":
		if m.cursor < len(m.entries) {
			path := m.entries[m.cursor].Path
			return m, func() tea.Msg { return NavigateMsg{Path: path} }
		}
	}
	return m, nil
}

// View renders the menu.
func (m *Menu) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Navigate"))
	b.WriteString("\n")

	for i, entry := range m.entries {
		cursor := "  "
		label := entry.Label
		if i == m.cursor {
			cursor = styles.KeyStyle.Render("> ")
			label = styles.ValueStyle.Render(label)
		}
		b.WriteString(cursor + label + "\n")
	}

	return b.String()
}

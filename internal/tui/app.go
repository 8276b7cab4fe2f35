// ABOUTME: Root bubbletea model for the voltride TUI
// ABOUTME: Routes input per screen and gates actions through the auth wrapper

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/voltride/voltride-cli/internal/auth"
	"github.com/voltride/voltride-cli/internal/client"
	"github.com/voltride/voltride-cli/internal/nav"
	"github.com/voltride/voltride-cli/internal/tui/authmodal"
	"github.com/voltride/voltride-cli/internal/tui/console"
	"github.com/voltride/voltride-cli/internal/tui/icons"
	"github.com/voltride/voltride-cli/internal/tui/menu"
	"github.com/voltride/voltride-cli/internal/tui/styles"
	"github.com/voltride/voltride-cli/internal/tui/vehiclelist"
	"github.com/voltride/voltride-cli/internal/tui/widgets"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenHome Screen = iota
	ScreenVehicles
	ScreenBooking
	ScreenProfile
	ScreenStaffConsole
	ScreenAdminConsole
	ScreenInfo
)

// Layout constants
const (
	minTerminalWidth = 80 // Minimum width before using single-column layout
	panelPadding     = 4  // Total horizontal padding from panel borders (2 each side)
)

// bookingStage tracks progress on the booking screen.
type bookingStage int

const (
	bookingConfirm bookingStage = iota
	bookingSubmitting
	bookingDone
	bookingFailed
)

// vehiclesLoadedMsg is sent when the vehicle listing is loaded
type vehiclesLoadedMsg struct {
	vehicles []client.Vehicle
	err      error
}

// consoleLoadedMsg is sent when the operations snapshot is loaded
type consoleLoadedMsg struct {
	snap *client.ConsoleSnapshot
	err  error
}

// bookingCreatedMsg is sent when a booking request completes
type bookingCreatedMsg struct {
	booking *client.Booking
	err     error
}

// logoutDoneMsg is sent when the best-effort server logout returns
type logoutDoneMsg struct{ err error }

// App is the root model for the TUI
type App struct {
	store  *auth.Store
	api    *client.Client
	screen Screen
	width  int
	height int
	err    error

	infoPage   string
	lastUpdate time.Time

	// Booking screen state
	bookingVehicleID string
	bookingPath      string
	bookingStage     bookingStage
	booking          *client.Booking
	bookingErr       string

	// Child models
	modal    *authmodal.Modal
	menu     *menu.Menu
	vehicles *vehiclelist.VehicleList
	console  *console.Console
}

// New creates a new TUI application
func New(api *client.Client, store *auth.Store) *App {
	a := &App{
		store:    store,
		api:      api,
		screen:   ScreenHome,
		vehicles: vehiclelist.New(),
	}
	a.modal = authmodal.New(store, api)
	a.menu = menu.New(a.currentPaths())
	return a
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return nil
}

func (a *App) currentPaths() nav.Paths {
	return nav.PathsFor(a.store.Role(), a.store.IsAuthenticated())
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.vehicles.SetWidth(a.contentWidth())
		a.modal.SetWidth(a.width / 2)
		if a.console != nil {
			a.console.SetSize(a.contentWidth(), a.contentHeight())
		}
		return a, nil

	case tea.KeyMsg:
		// Handle global quit
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		// The login prompt captures all input while visible
		if a.modal.Visible() {
			return a.updateModal(msg)
		}

		// Route to current screen
		switch a.screen {
		case ScreenHome:
			return a.updateHome(msg)
		case ScreenVehicles:
			return a.updateVehicles(msg)
		case ScreenBooking:
			return a.updateBooking(msg)
		case ScreenProfile, ScreenInfo:
			return a.updateStatic(msg)
		case ScreenStaffConsole, ScreenAdminConsole:
			return a.updateConsole(msg)
		}

	case menu.NavigateMsg:
		return a, a.navigateTo(msg.Path)

	case vehiclelist.BookRequestedMsg:
		return a.handleBookRequested(msg)

	case authmodal.LoginCompletedMsg:
		return a.handleLoginCompleted()

	case vehiclesLoadedMsg:
		if msg.err != nil {
			a.vehicles.SetError(msg.err.Error())
			return a, nil
		}
		a.vehicles.SetVehicles(msg.vehicles)
		a.lastUpdate = time.Now()
		return a, nil

	case consoleLoadedMsg:
		if msg.err != nil {
			a.err = msg.err
			return a, nil
		}
		a.err = nil
		if a.console != nil {
			a.console.SetSnapshot(msg.snap)
		}
		a.lastUpdate = time.Now()
		return a, nil

	case bookingCreatedMsg:
		if msg.err != nil {
			a.bookingStage = bookingFailed
			a.bookingErr = msg.err.Error()
			return a, nil
		}
		a.bookingStage = bookingDone
		a.booking = msg.booking
		return a, nil

	case logoutDoneMsg:
		// Server-side invalidation is best effort; the local session is
		// already gone either way.
		return a, nil

	default:
		// Forward unknown messages to the modal when active (needed for
		// huh form internals)
		if a.modal.Visible() {
			return a.updateModal(msg)
		}
	}

	return a, nil
}

func (a *App) updateModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := a.modal.Update(msg)
	a.modal = model
	return a, cmd
}

func (a *App) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "l":
		if !a.store.IsAuthenticated() {
			a.modal.Show(auth.DefaultLoginMessage, nil)
			return a, a.modal.Activate()
		}
	case "o":
		if a.store.IsAuthenticated() {
			return a, a.logout()
		}
	}

	model, cmd := a.menu.Update(msg)
	a.menu = model
	return a, cmd
}

func (a *App) updateVehicles(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !a.vehicles.Filtering() {
		switch msg.String() {
		case "q":
			return a, tea.Quit
		case "r":
			return a, a.loadVehicles()
		case "b":
			a.screen = ScreenHome
			return a, nil
		}
	}

	model, cmd := a.vehicles.Update(msg)
	a.vehicles = model
	return a, cmd
}

func (a *App) updateBooking(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "b":
		a.screen = ScreenVehicles
		return a, nil
	case "enter":
		if a.bookingStage == bookingConfirm || a.bookingStage == bookingFailed {
			a.bookingStage = bookingSubmitting
			a.bookingErr = ""
			return a, a.createBooking(a.bookingVehicleID)
		}
	}
	return a, nil
}

func (a *App) updateStatic(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "b":
		a.screen = ScreenHome
		return a, nil
	}
	return a, nil
}

func (a *App) updateConsole(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "r":
		return a, a.loadConsole()
	case "o":
		return a, a.logout()
	}
	return a, nil
}

// handleBookRequested gates the booking action behind a renter login.
func (a *App) handleBookRequested(msg vehiclelist.BookRequestedMsg) (tea.Model, tea.Cmd) {
	vehicleID := msg.VehicleID

	action := func() {
		paths := a.currentPaths()
		if paths.Booking == nil {
			return
		}
		a.openBooking(vehicleID, paths.Booking(vehicleID))
	}

	auth.Require(a.store, a.modal, action, auth.RequireOptions{
		Roles:   []auth.Role{auth.RoleRenter},
		Message: "Please log in to book this vehicle.",
	})

	if a.modal.Visible() {
		return a, a.modal.Activate()
	}
	return a, nil
}

// openBooking transitions to the booking screen for the given vehicle.
// Runs either directly or as a post-login continuation.
func (a *App) openBooking(vehicleID, path string) {
	a.screen = ScreenBooking
	a.bookingVehicleID = vehicleID
	a.bookingPath = path
	a.bookingStage = bookingConfirm
	a.booking = nil
	a.bookingErr = ""
}

func (a *App) handleLoginCompleted() (tea.Model, tea.Cmd) {
	a.menu.SetPaths(a.currentPaths())

	// A continuation may already have navigated; otherwise land on the
	// role's dashboard.
	if a.screen == ScreenHome {
		return a, a.navigateTo(nav.DashboardPath(a.store.Role(), true))
	}
	return a, nil
}

// logout clears the local session immediately and notifies the backend
// without waiting on it. The token is captured before the store drops it
// so the server-side invalidation still carries it.
func (a *App) logout() tea.Cmd {
	token := a.store.Token()
	a.store.Logout()
	a.menu.SetPaths(a.currentPaths())
	a.screen = ScreenHome
	a.console = nil

	api := a.api
	return func() tea.Msg {
		return logoutDoneMsg{err: api.Logout(context.Background(), token)}
	}
}

// navigateTo maps a resolved navigation path to a screen and returns the
// command that loads its data.
func (a *App) navigateTo(path string) tea.Cmd {
	switch {
	case path == "/" || path == "/home":
		a.screen = ScreenHome
		return nil
	case path == "/vehicles":
		a.screen = ScreenVehicles
		return a.loadVehicles()
	case path == "/profile":
		a.screen = ScreenProfile
		return nil
	case path == "/staff":
		a.screen = ScreenStaffConsole
		a.console = console.New(a.store.User(), a.contentWidth(), a.contentHeight())
		return a.loadConsole()
	case path == "/admin":
		a.screen = ScreenAdminConsole
		a.console = console.New(a.store.User(), a.contentWidth(), a.contentHeight())
		return a.loadConsole()
	case strings.HasPrefix(path, "/booking/"):
		a.openBooking(strings.TrimPrefix(path, "/booking/"), path)
		return nil
	case path == "/aboutus", path == "/contactus", path == "/terms", path == "/faq", path == "/privacy":
		a.screen = ScreenInfo
		a.infoPage = path
		return nil
	}
	a.screen = ScreenHome
	return nil
}

// loadVehicles creates a command to fetch the vehicle listing
func (a *App) loadVehicles() tea.Cmd {
	api := a.api
	return func() tea.Msg {
		vehicles, err := api.ListVehicles(context.Background())
		return vehiclesLoadedMsg{vehicles: vehicles, err: err}
	}
}

// loadConsole creates a command to fetch the operations snapshot
func (a *App) loadConsole() tea.Cmd {
	api := a.api
	return func() tea.Msg {
		snap, err := api.FetchConsoleSnapshot(context.Background())
		return consoleLoadedMsg{snap: snap, err: err}
	}
}

// createBooking creates a command to book the given vehicle
func (a *App) createBooking(vehicleID string) tea.Cmd {
	api := a.api
	return func() tea.Msg {
		booking, err := api.CreateBooking(context.Background(), vehicleID)
		return bookingCreatedMsg{booking: booking, err: err}
	}
}

// View implements tea.Model
func (a *App) View() string {
	var content string

	if a.modal.Visible() {
		content = lipgloss.Place(a.frameWidth(), a.contentHeight(),
			lipgloss.Center, lipgloss.Center, a.modal.View())
	} else {
		switch a.screen {
		case ScreenHome:
			content = a.viewHome()
		case ScreenVehicles:
			content = a.viewVehicles()
		case ScreenBooking:
			content = a.viewBooking()
		case ScreenProfile:
			content = a.viewProfile()
		case ScreenStaffConsole, ScreenAdminConsole:
			content = a.viewConsole()
		case ScreenInfo:
			content = a.viewInfo()
		default:
			content = a.viewHome()
		}
	}

	return a.wrapWithFrame(content)
}

// viewHome renders the landing screen with the navigation menu
func (a *App) viewHome() string {
	leftPane := styles.ActivePanel.Width(a.menuWidth()).Render(a.menu.View())

	var right strings.Builder
	right.WriteString(styles.Title.Render(icons.App.String() + " Voltride EV Rentals"))
	right.WriteString("\n")

	if user := a.store.User(); user != nil {
		right.WriteString("Signed in as " + styles.ValueStyle.Render(user.Name) + " " + widgets.RoleBadge(user.Role))
		right.WriteString("\n\n")
		right.WriteString(styles.Help.Render("o Sign out"))
	} else {
		right.WriteString(styles.Subtitle.Render("Browse the fleet as a guest. Sign in to book."))
		right.WriteString("\n")
		right.WriteString(styles.Help.Render("l Sign in"))
	}

	rightPane := styles.Panel.Width(a.sidePaneWidth()).Render(right.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane)
}

// viewVehicles renders the storefront vehicle listing
func (a *App) viewVehicles() string {
	return styles.ActivePanel.Width(a.contentWidth()).Render(a.vehicles.View())
}

// viewBooking renders the booking screen
func (a *App) viewBooking() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.Booking.String() + " Book vehicle"))
	sb.WriteString("\n")
	sb.WriteString("Vehicle: " + styles.ValueStyle.Render(a.bookingVehicleID))
	sb.WriteString("\n\n")

	switch a.bookingStage {
	case bookingConfirm:
		sb.WriteString("Press " + styles.KeyStyle.Render("enter") + " to confirm this booking.")
	case bookingSubmitting:
		sb.WriteString(styles.Subtitle.Render("Booking..."))
	case bookingDone:
		sb.WriteString(widgets.StatusText("Booking confirmed", widgets.StatusOK))
		if a.booking != nil {
			sb.WriteString("\n")
			sb.WriteString(fmt.Sprintf("Reference: %s\n", a.booking.ID))
		}
	case bookingFailed:
		sb.WriteString(widgets.StatusText("Booking failed", widgets.StatusCritical))
		sb.WriteString("\n")
		sb.WriteString(styles.FieldError.Render(a.bookingErr))
		sb.WriteString("\n\n")
		sb.WriteString("Press " + styles.KeyStyle.Render("enter") + " to retry.")
	}

	return styles.ActivePanel.Width(a.contentWidth()).Render(sb.String())
}

// viewProfile renders the renter profile screen
func (a *App) viewProfile() string {
	user := a.store.User()
	if user == nil {
		return styles.Panel.Width(a.contentWidth()).Render("Not signed in.")
	}

	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.User.String() + " Profile"))
	sb.WriteString("\n")
	sb.WriteString("Name:  " + styles.ValueStyle.Render(user.Name) + " " + widgets.RoleBadge(user.Role) + "\n")
	sb.WriteString("Email: " + user.Email + "\n")
	if user.Phone != "" {
		sb.WriteString("Phone: " + user.Phone + "\n")
	}
	if user.Station != nil {
		sb.WriteString("Station: " + user.Station.Name + "\n")
	}

	switch user.Avatar.Kind {
	case auth.AvatarResolved:
		sb.WriteString("Avatar: " + user.Avatar.URL + "\n")
	default:
		// Unresolved identifiers are never dereferenced.
		sb.WriteString(styles.Subtitle.Render("No avatar available") + "\n")
	}

	return styles.ActivePanel.Width(a.contentWidth()).Render(sb.String())
}

// viewConsole renders the staff/admin operations console
func (a *App) viewConsole() string {
	if a.err != nil {
		return styles.StatusCritical.Render("Error: " + a.err.Error())
	}
	if a.console == nil {
		return styles.Panel.Width(a.contentWidth()).Render("Loading...")
	}
	return styles.ActivePanel.Width(a.contentWidth()).Render(a.console.View())
}

// infoPages holds the static storefront page content
var infoPages = map[string]string{
	"/aboutus":   "Voltride runs shared electric vehicles across the city.\nPick up at any station, drop off at any station.",
	"/contactus": "Questions? Reach us at support@voltride.example or visit any station desk.",
	"/terms":     "Rentals are billed per hour. Vehicles must be returned to a station.\nDamage and late fees are described in your rental agreement.",
	"/faq":       "Q: Do I need a license?\nA: Yes, a valid driver's license is required for cars and scooters.\n\nQ: How do I end a rental?\nA: Return the vehicle to any station and confirm in the app.",
	"/privacy":   "We store only what the rental requires: your account details and\nbooking history. We never sell your data.",
}

var infoTitles = map[string]string{
	"/aboutus":   "About us",
	"/contactus": "Contact us",
	"/terms":     "Terms of service",
	"/faq":       "FAQ",
	"/privacy":   "Privacy policy",
}

// viewInfo renders a static storefront page
func (a *App) viewInfo() string {
	title := infoTitles[a.infoPage]
	body := infoPages[a.infoPage]
	if title == "" {
		title = "Voltride"
	}

	var sb strings.Builder
	sb.WriteString(styles.Title.Render(title))
	sb.WriteString("\n")
	sb.WriteString(body)
	return styles.Panel.Width(a.contentWidth()).Render(sb.String())
}

func (a *App) frameWidth() int {
	if a.width < minTerminalWidth {
		return minTerminalWidth
	}
	return a.width
}

// menuWidth calculates the width for the navigation pane
func (a *App) menuWidth() int {
	if a.width < minTerminalWidth {
		return a.frameWidth() - panelPadding
	}
	return (a.width - panelPadding) / 3
}

// sidePaneWidth calculates the width for the welcome pane
func (a *App) sidePaneWidth() int {
	return a.frameWidth() - a.menuWidth() - panelPadding
}

// contentWidth calculates the width for single-pane screens
func (a *App) contentWidth() int {
	return a.frameWidth() - panelPadding
}

// contentHeight calculates the height available for screen content
func (a *App) contentHeight() int {
	// Header, footer, and panel borders take 8 lines total
	h := a.height - 8
	if h < 10 {
		h = 10
	}
	return h
}

// renderHeader creates the header bar with app branding and context
func (a *App) renderHeader() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	leftText := fmt.Sprintf(" %s %s", icons.App.String(), titleStyle.Render("Voltride"))

	rightText := ""
	if user := a.store.User(); user != nil {
		rightText = contextStyle.Render(fmt.Sprintf("%s (%s)", user.Name, user.Role)) + " "
	} else {
		rightText = contextStyle.Render("guest") + " "
	}

	leftWidth := lipgloss.Width(leftText)
	rightWidth := lipgloss.Width(rightText)
	fillWidth := width - 4 - leftWidth - rightWidth // -4 for the corner runs
	if fillWidth < 0 {
		fillWidth = 0
	}

	header := "╭─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╮"
	return borderStyle.Render(header)
}

// renderFooter creates the footer with keyboard shortcuts and status
func (a *App) renderFooter() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	statusStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	var shortcuts []string
	switch {
	case a.modal.Visible():
		shortcuts = []string{"tab Next field", "Enter Submit", "Esc Cancel"}
	case a.screen == ScreenHome:
		if a.store.IsAuthenticated() {
			shortcuts = []string{"↑↓ Navigate", "Enter Select", "o Sign-out", "q Quit"}
		} else {
			shortcuts = []string{"↑↓ Navigate", "Enter Select", "l Sign-in", "q Quit"}
		}
	case a.screen == ScreenVehicles:
		shortcuts = []string{"↑↓ Navigate", "Enter Book", "/ Filter", "r Refresh", "b Back", "q Quit"}
	case a.screen == ScreenBooking:
		shortcuts = []string{"Enter Confirm", "b Back", "q Quit"}
	case a.screen == ScreenStaffConsole || a.screen == ScreenAdminConsole:
		shortcuts = []string{"r Refresh", "o Sign-out", "q Quit"}
	default:
		shortcuts = []string{"b Back", "q Quit"}
	}

	var styledShortcuts []string
	for _, s := range shortcuts {
		parts := strings.SplitN(s, " ", 2)
		if len(parts) == 2 {
			styledShortcuts = append(styledShortcuts, keyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
		} else {
			styledShortcuts = append(styledShortcuts, s)
		}
	}

	leftText := " " + strings.Join(styledShortcuts, "  ")
	leftPlainText := " " + strings.Join(shortcuts, "  ")

	rightText := ""
	rightPlainText := ""
	if !a.lastUpdate.IsZero() && (a.screen == ScreenVehicles || a.screen == ScreenStaffConsole || a.screen == ScreenAdminConsole) {
		elapsed := formatTimeSince(a.lastUpdate)
		rightText = statusStyle.Render("Updated "+elapsed) + " "
		rightPlainText = "Updated " + elapsed + " "
	}

	leftWidth := lipgloss.Width(leftPlainText)
	rightWidth := lipgloss.Width(rightPlainText)
	fillWidth := width - 4 - leftWidth - rightWidth
	if fillWidth < 0 {
		fillWidth = 0
	}

	footer := "╰─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╯"
	return borderStyle.Render(footer)
}

// formatTimeSince formats a duration since the given time in human-readable form
func formatTimeSince(t time.Time) string {
	d := time.Since(t)

	if d < time.Minute {
		secs := int(d.Seconds())
		if secs < 5 {
			return "just now"
		}
		return fmt.Sprintf("%ds ago", secs)
	}

	if d < time.Hour {
		mins := int(d.Minutes())
		if mins == 1 {
			return "1m ago"
		}
		return fmt.Sprintf("%dm ago", mins)
	}

	hours := int(d.Hours())
	if hours == 1 {
		return "1h ago"
	}
	return fmt.Sprintf("%dh ago", hours)
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}

// Run starts the TUI
func Run(api *client.Client, store *auth.Store) error {
	app := New(api, store)

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}

// ABOUTME: App-lifetime login prompt: visibility controller plus huh credential form
// ABOUTME: Holds a deferred continuation invoked exactly once on successful login

package authmodal

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/voltride/voltride-cli/internal/auth"
	"github.com/voltride/voltride-cli/internal/client"
	"github.com/voltride/voltride-cli/internal/tui/icons"
	"github.com/voltride/voltride-cli/internal/tui/styles"
)

// Controller is the process-wide toggle for the login prompt. It is either
// hidden, or visible with a message and an optional continuation. A new
// Show overwrites any pending prompt (last caller wins); Hide discards the
// continuation without running it; Succeed runs it exactly once.
type Controller struct {
	visible   bool
	message   string
	onSuccess func()
}

// NewController creates a hidden controller.
func NewController() *Controller {
	return &Controller{}
}

// Show makes the prompt visible with the given message and continuation.
func (c *Controller) Show(message string, onSuccess func()) {
	if message == "" {
		message = auth.DefaultLoginMessage
	}
	c.visible = true
	c.message = message
	c.onSuccess = onSuccess
}

// Hide dismisses the prompt, dropping any stored continuation.
// Calling it while already hidden is a no-op.
func (c *Controller) Hide() {
	c.visible = false
	c.message = ""
	c.onSuccess = nil
}

// Succeed hides the prompt and runs the stored continuation, if any.
// The state is cleared before the continuation runs, so a repeated call
// is a no-op and a continuation that re-opens the prompt is safe.
func (c *Controller) Succeed() {
	if !c.visible {
		return
	}
	fn := c.onSuccess
	c.Hide()
	if fn != nil {
		fn()
	}
}

// Visible reports whether the prompt is showing.
func (c *Controller) Visible() bool {
	return c.visible
}

// Message returns the current prompt message, or "" when hidden.
func (c *Controller) Message() string {
	return c.message
}

// LoginAPI is the slice of the backend client the modal needs.
type LoginAPI interface {
	Login(ctx context.Context, email, password string) (*client.LoginResult, error)
}

// loginResultMsg delivers the outcome of a login request.
type loginResultMsg struct {
	result *client.LoginResult
	err    error
}

// LoginCompletedMsg is emitted after a successful login has been installed
// in the session store and the continuation has run.
type LoginCompletedMsg struct{}

// Modal owns the login form shown over the current screen. It implements
// auth.Prompter so the auth-required wrapper can open it directly.
type Modal struct {
	ctrl  *Controller
	store *auth.Store
	api   LoginAPI

	form       *huh.Form
	email      string
	password   string
	submitting bool
	errMsg     string
	width      int
}

// New creates the modal bound to the session store and API client.
func New(store *auth.Store, api LoginAPI) *Modal {
	m := &Modal{
		ctrl:  NewController(),
		store: store,
		api:   api,
	}
	m.form = m.newForm()
	return m
}

// Controller exposes the underlying visibility controller.
func (m *Modal) Controller() *Controller {
	return m.ctrl
}

// Show implements auth.Prompter: it resets the form and opens the prompt.
func (m *Modal) Show(message string, onSuccess func()) {
	m.resetForm()
	m.ctrl.Show(message, onSuccess)
}

// Visible reports whether the modal should be drawn.
func (m *Modal) Visible() bool {
	return m.ctrl.Visible()
}

// Activate returns the command that starts the form once the modal has
// been opened.
func (m *Modal) Activate() tea.Cmd {
	return m.form.Init()
}

// SetWidth sets the modal width for rendering.
func (m *Modal) SetWidth(width int) {
	m.width = width
}

func (m *Modal) resetForm() {
	m.email = ""
	m.password = ""
	m.errMsg = ""
	m.submitting = false
	m.form = m.newForm()
}

func (m *Modal) newForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				CharLimit(128).
				Value(&m.email).
				Validate(requiredField("email")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				CharLimit(128).
				Value(&m.password).
				Validate(requiredField("password")),
		).Title("Sign in"),
	).WithTheme(formTheme())
}

// Update drives the form while the modal is visible.
func (m *Modal) Update(msg tea.Msg) (*Modal, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "esc" && !m.submitting {
			m.ctrl.Hide()
			return m, nil
		}

	case loginResultMsg:
		return m.handleLoginResult(msg)
	}

	if m.submitting {
		// One request in flight at a time; the form stays frozen until
		// the result arrives.
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.submitting = true
		m.errMsg = ""
		return m, m.submit()
	}

	return m, cmd
}

func (m *Modal) submit() tea.Cmd {
	email, password := m.email, m.password
	return func() tea.Msg {
		result, err := m.api.Login(context.Background(), email, password)
		return loginResultMsg{result: result, err: err}
	}
}

func (m *Modal) handleLoginResult(msg loginResultMsg) (*Modal, tea.Cmd) {
	m.submitting = false

	if msg.err != nil {
		m.errMsg = loginErrorMessage(msg.err)
		m.reopenForm()
		return m, m.form.Init()
	}

	if err := m.store.Login(auth.Session{Token: msg.result.Token, Identity: msg.result.User}); err != nil {
		m.errMsg = err.Error()
		m.reopenForm()
		return m, m.form.Init()
	}

	m.ctrl.Succeed()
	m.resetForm()
	return m, func() tea.Msg { return LoginCompletedMsg{} }
}

// reopenForm rebuilds the form after a failed submit, keeping the email
// so the user only has to retype the password.
func (m *Modal) reopenForm() {
	m.password = ""
	m.form = m.newForm()
}

// View renders the modal panel.
func (m *Modal) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.Lock.String() + " " + m.ctrl.Message()))
	sb.WriteString("\n\n")
	sb.WriteString(m.form.View())

	if m.errMsg != "" {
		sb.WriteString("\n")
		sb.WriteString(styles.FieldError.Render(m.errMsg))
	}
	if m.submitting {
		sb.WriteString("\n")
		sb.WriteString(styles.Help.Render("Signing in..."))
	}

	width := m.width
	if width < 44 {
		width = 44
	}
	return styles.ModalPanel.Width(width).Render(sb.String())
}

// loginErrorMessage converts a client error into the text shown next to
// the credential fields.
func loginErrorMessage(err error) string {
	if errors.Is(err, client.ErrMalformedLogin) {
		return "Login failed: the server response was incomplete. Please try again."
	}
	if errors.Is(err, auth.ErrUnauthorized) {
		return "Invalid email or password."
	}
	return err.Error()
}

func requiredField(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(name + " is required")
		}
		return nil
	}
}

// formTheme matches the storefront's green-on-dark palette.
func formTheme() *huh.Theme {
	t := huh.ThemeBase()

	green := lipgloss.Color("#10B981")
	greenLight := lipgloss.Color("#34D399")
	gray := lipgloss.Color("#9CA3AF")
	grayLight := lipgloss.Color("#E5E7EB")
	red := lipgloss.Color("#F87171")

	t.Group.Title = lipgloss.NewStyle().
		Foreground(green).
		Bold(true).
		MarginBottom(1)

	t.Focused.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(green)
	t.Focused.Title = lipgloss.NewStyle().
		Foreground(greenLight).
		Bold(true)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().
		Foreground(red).
		SetString(" *")
	t.Focused.ErrorMessage = lipgloss.NewStyle().
		Foreground(red)

	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(green)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(gray)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(green)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(grayLight)

	t.Blurred = t.Focused
	t.Blurred.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true)
	t.Blurred.Title = lipgloss.NewStyle().Foreground(gray)

	return t
}

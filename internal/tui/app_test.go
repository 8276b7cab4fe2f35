// ABOUTME: Tests for the root TUI model
// ABOUTME: Drives the gate, modal, and navigation wiring end to end

package tui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/voltride/voltride-cli/internal/auth"
	"github.com/voltride/voltride-cli/internal/client"
	"github.com/voltride/voltride-cli/internal/tui/authmodal"
	"github.com/voltride/voltride-cli/internal/tui/menu"
	"github.com/voltride/voltride-cli/internal/tui/vehiclelist"
)

func testBackend(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/vehicles":
			json.NewEncoder(w).Encode(map[string]any{"data": []client.Vehicle{
				{ID: "v-1", Name: "Volt One", BatteryPercent: 80, Status: "available"},
			}})
		case "/stations":
			json.NewEncoder(w).Encode(map[string]any{"data": []client.StationSummary{}})
		case "/bookings":
			json.NewEncoder(w).Encode(map[string]any{"data": []client.Booking{}})
		case "/auth/logout":
			json.NewEncoder(w).Encode(map[string]any{"success": true})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func newTestApp(t *testing.T) (*App, *auth.Store) {
	t.Helper()
	server := testBackend(t)
	t.Cleanup(server.Close)

	store := auth.NewStore(auth.NewTokenFile(t.TempDir()))
	api := client.New(server.URL)
	api.SetTokenSource(store.Token)

	app := New(api, store)
	app.width = 100
	app.height = 30
	return app, store
}

func signIn(t *testing.T, store *auth.Store, role auth.Role) {
	t.Helper()
	err := store.Login(auth.Session{
		Token: "tok-test",
		Identity: &auth.Identity{
			ID:    "u-1",
			Name:  "Ada Weber",
			Email: "ada@example.com",
			Role:  role,
		},
	})
	if err != nil {
		t.Fatal(err)
	}
}

// completeLogin emulates what the modal does after a successful form
// submit: install the session, fire the continuation, announce completion.
func completeLogin(t *testing.T, a *App, store *auth.Store, role auth.Role) tea.Cmd {
	t.Helper()
	signIn(t, store, role)
	a.modal.Controller().Succeed()

	model, cmd := a.Update(authmodal.LoginCompletedMsg{})
	if model.(*App) != a {
		t.Fatal("Update should return the same app")
	}
	return cmd
}

func TestApp_GuestBookingOpensModalWithContinuation(t *testing.T) {
	a, store := newTestApp(t)
	a.screen = ScreenVehicles

	_, cmd := a.Update(vehiclelist.BookRequestedMsg{VehicleID: "v-1"})

	if !a.modal.Visible() {
		t.Fatal("expected login prompt for guest booking")
	}
	if got := a.modal.Controller().Message(); got != "Please log in to book this vehicle." {
		t.Errorf("unexpected prompt message: %q", got)
	}
	if cmd == nil {
		t.Error("expected form activation command")
	}
	if a.screen != ScreenVehicles {
		t.Error("screen must not change before login")
	}

	// After login the deferred booking navigation runs
	completeLogin(t, a, store, auth.RoleRenter)

	if a.modal.Visible() {
		t.Error("expected modal closed after login")
	}
	if a.screen != ScreenBooking {
		t.Errorf("expected booking screen, got %v", a.screen)
	}
	if a.bookingVehicleID != "v-1" {
		t.Errorf("expected booking for v-1, got %q", a.bookingVehicleID)
	}
	if a.bookingPath != "/booking/v-1" {
		t.Errorf("expected per-vehicle path, got %q", a.bookingPath)
	}
}

func TestApp_RenterBookingSkipsModal(t *testing.T) {
	a, store := newTestApp(t)
	signIn(t, store, auth.RoleRenter)
	a.screen = ScreenVehicles

	a.Update(vehiclelist.BookRequestedMsg{VehicleID: "v-7"})

	if a.modal.Visible() {
		t.Error("no prompt expected for a signed-in renter")
	}
	if a.screen != ScreenBooking {
		t.Errorf("expected booking screen, got %v", a.screen)
	}
	if a.bookingVehicleID != "v-7" {
		t.Errorf("expected booking for v-7, got %q", a.bookingVehicleID)
	}
}

func TestApp_StaffBookingBlockedWithoutContinuation(t *testing.T) {
	a, store := newTestApp(t)
	signIn(t, store, auth.RoleStaff)
	a.screen = ScreenVehicles

	a.Update(vehiclelist.BookRequestedMsg{VehicleID: "v-1"})

	if !a.modal.Visible() {
		t.Fatal("expected prompt for role mismatch")
	}
	if !strings.Contains(a.modal.Controller().Message(), "staff") {
		t.Errorf("prompt should name the role, got %q", a.modal.Controller().Message())
	}

	// Succeeding the prompt must not run a booking: the mismatch prompt
	// has no continuation.
	a.modal.Controller().Succeed()
	if a.screen != ScreenVehicles {
		t.Errorf("expected to stay on vehicles, got %v", a.screen)
	}
}

func TestApp_DismissedModalDropsBooking(t *testing.T) {
	a, store := newTestApp(t)
	a.screen = ScreenVehicles

	a.Update(vehiclelist.BookRequestedMsg{VehicleID: "v-1"})
	a.Update(tea.KeyMsg{Type: tea.KeyEsc})

	if a.modal.Visible() {
		t.Fatal("expected modal dismissed")
	}

	// A later login must not resurrect the dropped booking
	completeLogin(t, a, store, auth.RoleRenter)
	if a.screen == ScreenBooking {
		t.Error("dismissed booking must not run after a later login")
	}
}

func TestApp_LoginLandsOnRoleDashboard(t *testing.T) {
	tests := []struct {
		role auth.Role
		want Screen
	}{
		{auth.RoleRenter, ScreenHome},
		{auth.RoleStaff, ScreenStaffConsole},
		{auth.RoleAdmin, ScreenAdminConsole},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			a, store := newTestApp(t)
			a.modal.Show(auth.DefaultLoginMessage, nil)

			completeLogin(t, a, store, tt.role)

			if a.screen != tt.want {
				t.Errorf("expected screen %v, got %v", tt.want, a.screen)
			}
		})
	}
}

func TestApp_MenuFollowsAuthState(t *testing.T) {
	a, store := newTestApp(t)

	guestEntries := a.menu.Entries()
	for _, e := range guestEntries {
		if e.Label == "Profile" {
			t.Error("guest menu must not show Profile")
		}
	}

	completeLogin(t, a, store, auth.RoleStaff)
	if entries := a.menu.Entries(); len(entries) != 1 || entries[0].Path != "/staff" {
		t.Errorf("expected staff menu with only its console, got %+v", a.menu.Entries())
	}

	// Sign-out from the console returns to the guest storefront
	a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'o'}})

	if store.IsAuthenticated() {
		t.Error("expected signed out")
	}
	if a.screen != ScreenHome {
		t.Errorf("expected home after sign-out, got %v", a.screen)
	}
	if len(a.menu.Entries()) != len(guestEntries) {
		t.Error("expected guest menu restored after sign-out")
	}
}

func TestApp_SignOutInvalidatesTokenServerSide(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/logout" {
			gotAuth = r.Header.Get("Authorization")
		}
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))
	defer server.Close()

	store := auth.NewStore(auth.NewTokenFile(t.TempDir()))
	api := client.New(server.URL)
	api.SetTokenSource(store.Token)
	a := New(api, store)
	signIn(t, store, auth.RoleRenter)

	model, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'o'}})
	a = model.(*App)
	if store.IsAuthenticated() {
		t.Fatal("expected local session cleared immediately")
	}
	if cmd == nil {
		t.Fatal("expected a command notifying the backend")
	}

	// The local session is already gone; the request must still carry
	// the token it had at sign-out time.
	if msg, ok := cmd().(logoutDoneMsg); !ok || msg.err != nil {
		t.Fatalf("expected clean logoutDoneMsg, got %v", msg)
	}
	if gotAuth != "Bearer tok-test" {
		t.Errorf("expected server-side invalidation with the old token, got Authorization=%q", gotAuth)
	}
}

func TestApp_NavigateMapsPathsToScreens(t *testing.T) {
	tests := []struct {
		path string
		want Screen
	}{
		{"/", ScreenHome},
		{"/home", ScreenHome},
		{"/vehicles", ScreenVehicles},
		{"/profile", ScreenProfile},
		{"/staff", ScreenStaffConsole},
		{"/admin", ScreenAdminConsole},
		{"/booking/v-9", ScreenBooking},
		{"/aboutus", ScreenInfo},
		{"/faq", ScreenInfo},
		{"/nonsense", ScreenHome},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			a, _ := newTestApp(t)
			a.Update(menu.NavigateMsg{Path: tt.path})
			if a.screen != tt.want {
				t.Errorf("path %q: expected screen %v, got %v", tt.path, tt.want, a.screen)
			}
		})
	}
}

func TestApp_VehiclesLoadAndRender(t *testing.T) {
	a, _ := newTestApp(t)

	cmd := a.navigateTo("/vehicles")
	if cmd == nil {
		t.Fatal("expected load command")
	}
	a.Update(cmd())

	view := a.View()
	if !strings.Contains(view, "Volt One") {
		t.Error("expected loaded vehicle in view")
	}
}

func TestApp_ConsoleLoads(t *testing.T) {
	a, store := newTestApp(t)
	signIn(t, store, auth.RoleStaff)

	cmd := a.navigateTo("/staff")
	if cmd == nil {
		t.Fatal("expected load command")
	}
	a.Update(cmd())

	if a.console == nil {
		t.Fatal("expected console created")
	}
	view := a.View()
	if !strings.Contains(view, "Staff Console") {
		t.Error("expected staff console in view")
	}
}

func TestApp_BookingConfirmFlow(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bookings" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{"data": client.Booking{
			ID: "b-1", VehicleID: "v-1", Status: "active", StartTime: "2026-08-30T10:00:00Z",
		}})
	}))
	defer server.Close()

	store := auth.NewStore(auth.NewTokenFile(t.TempDir()))
	signIn(t, store, auth.RoleRenter)
	a := New(client.New(server.URL), store)
	a.width, a.height = 100, 30

	a.openBooking("v-1", "/booking/v-1")
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected booking command")
	}
	if a.bookingStage != bookingSubmitting {
		t.Error("expected submitting stage")
	}

	a.Update(cmd())

	if a.bookingStage != bookingDone {
		t.Fatalf("expected booking done, got stage %v (err %q)", a.bookingStage, a.bookingErr)
	}
	if !strings.Contains(a.View(), "Booking confirmed") {
		t.Error("expected confirmation in view")
	}
}

func TestApp_ModalCapturesKeysWhileVisible(t *testing.T) {
	a, _ := newTestApp(t)
	a.screen = ScreenVehicles
	a.Update(vehiclelist.BookRequestedMsg{VehicleID: "v-1"})

	// "q" quits from the vehicles screen, but while the modal is open it
	// must go to the form instead.
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd != nil {
		if _, quit := cmd().(tea.QuitMsg); quit {
			t.Error("q must not quit while the modal is open")
		}
	}
	if !a.modal.Visible() {
		t.Error("expected modal still open")
	}
}

func TestApp_HeaderShowsIdentity(t *testing.T) {
	a, store := newTestApp(t)

	if !strings.Contains(a.renderHeader(), "guest") {
		t.Error("expected guest marker in header")
	}

	signIn(t, store, auth.RoleRenter)
	header := a.renderHeader()
	if !strings.Contains(header, "Ada Weber") || !strings.Contains(header, "renter") {
		t.Errorf("expected identity in header, got %q", header)
	}
}

// ABOUTME: Tests for the auth-required action wrapper
// ABOUTME: Covers guest prompting, role mismatch, and direct execution

package auth

import (
	"strings"
	"testing"
)

// fakePrompter records what Require asked it to show.
type fakePrompter struct {
	shown     bool
	message   string
	onSuccess func()
}

func (p *fakePrompter) Show(message string, onSuccess func()) {
	p.shown = true
	p.message = message
	p.onSuccess = onSuccess
}

func loggedInStore(t *testing.T, role Role) *Store {
	t.Helper()
	store := NewStore(NewTokenFile(t.TempDir()))
	if err := store.Login(Session{Token: "tok", Identity: testIdentity(role)}); err != nil {
		t.Fatal(err)
	}
	return store
}

func TestRequire_GuestGetsPromptWithContinuation(t *testing.T) {
	store := NewStore(NewTokenFile(t.TempDir()))
	prompter := &fakePrompter{}
	ran := false

	Require(store, prompter, func() { ran = true }, RequireOptions{Message: "Please log in to book."})

	if ran {
		t.Error("action must not run for a guest")
	}
	if !prompter.shown {
		t.Fatal("expected prompt for guest")
	}
	if prompter.message != "Please log in to book." {
		t.Errorf("unexpected message: %q", prompter.message)
	}
	if prompter.onSuccess == nil {
		t.Fatal("guest prompt must carry the action as continuation")
	}

	// The continuation is the original action
	prompter.onSuccess()
	if !ran {
		t.Error("continuation should run the original action")
	}
}

func TestRequire_GuestDefaultMessage(t *testing.T) {
	store := NewStore(NewTokenFile(t.TempDir()))
	prompter := &fakePrompter{}

	Require(store, prompter, func() {}, RequireOptions{})

	if prompter.message != DefaultLoginMessage {
		t.Errorf("expected default message, got %q", prompter.message)
	}
}

func TestRequire_AllowedRoleRunsImmediately(t *testing.T) {
	store := loggedInStore(t, RoleRenter)
	prompter := &fakePrompter{}
	ran := false

	Require(store, prompter, func() { ran = true }, RequireOptions{})

	if !ran {
		t.Error("expected action to run for an allowed role")
	}
	if prompter.shown {
		t.Error("no prompt expected for an allowed role")
	}
}

func TestRequire_RoleMismatchPromptsWithoutContinuation(t *testing.T) {
	store := loggedInStore(t, RoleStaff)
	prompter := &fakePrompter{}
	ran := false

	Require(store, prompter, func() { ran = true }, RequireOptions{Roles: []Role{RoleRenter}})

	if ran {
		t.Error("action must not run for a disallowed role")
	}
	if !prompter.shown {
		t.Fatal("expected prompt for role mismatch")
	}
	if !strings.Contains(prompter.message, "staff") {
		t.Errorf("mismatch message should name the role, got %q", prompter.message)
	}
	if prompter.onSuccess != nil {
		t.Error("role mismatch prompt must not carry a continuation")
	}
}

func TestRequire_EmptyRolesDefaultsToRenter(t *testing.T) {
	tests := []struct {
		name    string
		role    Role
		wantRun bool
	}{
		{"renter allowed", RoleRenter, true},
		{"staff blocked", RoleStaff, false},
		{"admin blocked", RoleAdmin, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := loggedInStore(t, tt.role)
			prompter := &fakePrompter{}
			ran := false

			Require(store, prompter, func() { ran = true }, RequireOptions{})

			if ran != tt.wantRun {
				t.Errorf("ran = %v, want %v", ran, tt.wantRun)
			}
		})
	}
}

func TestRequire_MultipleAllowedRoles(t *testing.T) {
	store := loggedInStore(t, RoleAdmin)
	prompter := &fakePrompter{}
	ran := false

	Require(store, prompter, func() { ran = true }, RequireOptions{
		Roles: []Role{RoleStaff, RoleAdmin},
	})

	if !ran {
		t.Error("expected action to run when role is in the allowed set")
	}
}

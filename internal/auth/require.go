// ABOUTME: Auth-required action wrapper gating actions behind login and role checks
// ABOUTME: Defers blocked actions to a login prompt as a continuation

package auth

import "fmt"

// DefaultLoginMessage is shown when an action needs any login at all.
const DefaultLoginMessage = "Please log in to continue."

// Prompter is anything that can surface a login prompt with an optional
// continuation to run after a successful login. The TUI's auth modal
// controller implements it.
type Prompter interface {
	Show(message string, onSuccess func())
}

// RequireOptions configures a gated action.
type RequireOptions struct {
	// Roles is the set of roles allowed to run the action.
	// Empty defaults to renter only.
	Roles []Role
	// Message is shown when the caller is not logged in at all.
	// Empty defaults to DefaultLoginMessage.
	Message string
}

// Require runs action immediately when the current user is logged in with
// an allowed role. A guest gets a login prompt carrying the action as its
// continuation. A logged-in user with the wrong role gets a prompt naming
// their role and no continuation: re-login with the same account cannot
// satisfy the role check, so the blocked action is deliberately dropped.
func Require(store *Store, prompter Prompter, action func(), opts RequireOptions) {
	roles := opts.Roles
	if len(roles) == 0 {
		roles = []Role{RoleRenter}
	}
	message := opts.Message
	if message == "" {
		message = DefaultLoginMessage
	}

	user := store.User()
	if user == nil {
		prompter.Show(message, action)
		return
	}

	if !roleAllowed(user.Role, roles) {
		prompter.Show(fmt.Sprintf(
			"Your account role (%s) is not permitted to do this. Sign in with an authorized account.",
			user.Role), nil)
		return
	}

	action()
}

func roleAllowed(role Role, allowed []Role) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

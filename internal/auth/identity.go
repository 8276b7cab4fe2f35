// ABOUTME: Identity model for the Voltride rental platform
// ABOUTME: Defines roles, stations, and the avatar wire-shape union

package auth

import (
	"encoding/json"
	"fmt"
)

// Role is the closed set of account roles recognized by the client.
type Role string

const (
	RoleRenter Role = "renter"
	RoleStaff  Role = "staff"
	RoleAdmin  Role = "admin"
)

// Valid reports whether the role is one of the recognized roles.
// Anything else (including empty) falls back to guest-equivalent behavior
// in navigation rather than being treated as an error.
func (r Role) Valid() bool {
	switch r {
	case RoleRenter, RoleStaff, RoleAdmin:
		return true
	}
	return false
}

// String returns the wire representation of the role.
func (r Role) String() string {
	return string(r)
}

// AvatarKind discriminates the avatar union.
type AvatarKind int

const (
	// AvatarNone means no avatar is available.
	AvatarNone AvatarKind = iota
	// AvatarUnresolved is a bare identifier the backend never expanded.
	// It must be displayed as "no avatar", not dereferenced.
	AvatarUnresolved
	// AvatarResolved carries a usable image URL.
	AvatarResolved
)

// Avatar models the three wire shapes the backend uses for profile images:
// absent, a raw identifier string, or an object with a url.
type Avatar struct {
	Kind AvatarKind
	ID   string // set for AvatarUnresolved
	URL  string // set for AvatarResolved
}

// UnmarshalJSON probes the wire shape: string, object, or null.
func (a *Avatar) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*a = Avatar{Kind: AvatarNone}
		return nil
	}

	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		if id == "" {
			*a = Avatar{Kind: AvatarNone}
		} else {
			*a = Avatar{Kind: AvatarUnresolved, ID: id}
		}
		return nil
	}

	var obj struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("avatar: unsupported wire shape: %w", err)
	}
	if obj.URL == "" {
		*a = Avatar{Kind: AvatarNone}
		return nil
	}
	*a = Avatar{Kind: AvatarResolved, URL: obj.URL}
	return nil
}

// MarshalJSON writes the canonical shape for each kind.
func (a Avatar) MarshalJSON() ([]byte, error) {
	switch a.Kind {
	case AvatarUnresolved:
		return json.Marshal(a.ID)
	case AvatarResolved:
		return json.Marshal(struct {
			URL string `json:"url"`
		}{URL: a.URL})
	default:
		return []byte("null"), nil
	}
}

// Station is an operational location reference, present for staff and
// admin accounts that are assigned to one.
type Station struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Identity is the authenticated user's profile record.
type Identity struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Phone   string   `json:"phone,omitempty"`
	Role    Role     `json:"role"`
	Station *Station `json:"station,omitempty"`
	Avatar  Avatar   `json:"avatar,omitempty"`
}

// ABOUTME: Role navigation resolver for the Voltride client
// ABOUTME: Pure derivation of visible destinations and landing paths from the current identity

package nav

import "github.com/voltride/voltride-cli/internal/auth"

// Paths is the full set of navigation destinations for one identity.
// String fields use "" as the explicit absence marker; Booking uses nil.
// Every field is always populated by PathsFor, possibly with its absence
// marker, so callers can range over destinations without nil checks.
type Paths struct {
	Home      string
	Vehicles  string
	AboutUs   string
	ContactUs string
	Terms     string
	FAQ       string
	Privacy   string
	Profile   string
	// Booking produces the per-vehicle booking path.
	Booking func(vehicleID string) string
}

// PathsFor derives the navigation set for the given role. The guest case
// is role=="" together with authenticated=false. An authenticated identity
// with an unrecognized role keeps only its base path, the same shape as
// staff and admin.
func PathsFor(role auth.Role, authenticated bool) Paths {
	if !authenticated {
		return Paths{
			Home:      "/",
			Vehicles:  "/vehicles",
			AboutUs:   "/aboutus",
			ContactUs: "/contactus",
			Terms:     "/terms",
			FAQ:       "/faq",
			Privacy:   "/privacy",
		}
	}

	switch role {
	case auth.RoleRenter:
		return Paths{
			Home:      "/home",
			Vehicles:  "/vehicles",
			AboutUs:   "/aboutus",
			ContactUs: "/contactus",
			Terms:     "/terms",
			FAQ:       "/faq",
			Privacy:   "/privacy",
			Profile:   "/profile",
			Booking: func(vehicleID string) string {
				return "/booking/" + vehicleID
			},
		}
	case auth.RoleStaff:
		// Staff and admin consoles have their own navigation; none of the
		// storefront destinations are offered.
		return Paths{Home: "/staff"}
	case auth.RoleAdmin:
		return Paths{Home: "/admin"}
	default:
		// Unrecognized role: base path only, not an error.
		return Paths{Home: "/"}
	}
}

// DashboardPath maps the identity to its landing page.
func DashboardPath(role auth.Role, authenticated bool) string {
	if !authenticated {
		return "/"
	}
	switch role {
	case auth.RoleAdmin:
		return "/admin"
	case auth.RoleStaff:
		return "/staff"
	case auth.RoleRenter:
		return "/home"
	default:
		return "/"
	}
}

// Entry is one visible navigation destination with a display label.
type Entry struct {
	Label string
	Path  string
}

// Entries lists the destinations present in p, in menu order. Absent
// destinations are skipped; Booking is excluded because it needs a
// vehicle identifier.
func (p Paths) Entries() []Entry {
	candidates := []Entry{
		{Label: "Home", Path: p.Home},
		{Label: "Vehicles", Path: p.Vehicles},
		{Label: "About us", Path: p.AboutUs},
		{Label: "Contact us", Path: p.ContactUs},
		{Label: "Terms", Path: p.Terms},
		{Label: "FAQ", Path: p.FAQ},
		{Label: "Privacy", Path: p.Privacy},
		{Label: "Profile", Path: p.Profile},
	}

	entries := make([]Entry, 0, len(candidates))
	for _, c := range candidates {
		if c.Path != "" {
			entries = append(entries, c)
		}
	}
	return entries
}

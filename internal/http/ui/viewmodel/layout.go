package viewmodel

import "github.com/target/shop-admin/internal/ui"

// User represents the signed-in operator exposed to templates.
type User struct {
	Name  string
	Email string
	Role  string
}

// NavLink is one rendered sidebar entry.
type NavLink struct {
	Label  string
	Path   string
	Active bool
}

// Layout captures shared chrome metadata (titles, navigation state, auth flags).
type Layout struct {
	Title           string
	PageTitle       string
	CurrentPage     string
	CSRFToken       string
	IsAuthenticated bool
	User            *User
	Nav             []NavLink
	// Flash is a toast carried across a redirect.
	Flash ui.Toast
}

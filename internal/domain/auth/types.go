package auth

// Package auth contains domain-level types for the operator session.
// It is pure and free of framework/adapter concerns.

// Role represents the remote account role of an operator or customer.
// Keep string form for easy persistence and cookies.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEditor   Role = "editor"
	RoleCustomer Role = "customer"
)

// Valid reports whether r is one of the roles the shop API accepts.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleCustomer:
		return true
	default:
		return false
	}
}

// User is the operator profile returned by the shop API on login or "who am I".
type User struct {
	ID       string `json:"id,omitempty"`
	LegacyID string `json:"_id,omitempty"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

// Key returns the record identifier, preferring id over the legacy _id alias.
func (u User) Key() string {
	if u.ID != "" {
		return u.ID
	}
	return u.LegacyID
}

// Session is the operator's client-side session: a bearer token issued by the
// shop API and the profile it belongs to. User may be nil while hydration is pending.
type Session struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}

// IsAuthenticated is true iff a token is present, whether or not the profile is loaded.
func (s Session) IsAuthenticated() bool { return s.Token != "" }

// NeedsHydration reports whether a stored token still lacks a profile.
func (s Session) NeedsHydration() bool { return s.Token != "" && s.User == nil }

// Clone returns a copy that shares no memory with s.
func (s Session) Clone() Session {
	out := Session{Token: s.Token}
	if s.User != nil {
		u := *s.User
		out.User = &u
	}
	return out
}

// DisplayName returns the operator name for the layout header.
func (s Session) DisplayName() string {
	if s.User == nil {
		return ""
	}
	if s.User.Name != "" {
		return s.User.Name
	}
	return s.User.Email
}

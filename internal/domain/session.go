package domain

import "time"

// SessionUser is the identity projection embedded in a session view.
type SessionUser struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	Image string `json:"image,omitempty"`
}

// SessionView is the request-scoped projection of a session token. It is
// recomputed from the token on every request and never persisted.
type SessionView struct {
	Authenticated bool        `json:"authenticated"`
	User          SessionUser `json:"user"`
	ExpiresAt     time.Time   `json:"expiresAt,omitzero"`
}

// Unauthenticated is the fail-closed session view. A token without a subject
// must never grant access to identity-scoped behavior.
func Unauthenticated() *SessionView {
	return &SessionView{}
}

// SessionClaims is the decoded content of a session token.
type SessionClaims struct {
	TokenID   string
	Subject   string
	Email     string
	Name      string
	Image     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Authenticated reports whether the claims carry a canonical identity.
func (c *SessionClaims) Authenticated() bool {
	return c != nil && c.Subject != ""
}

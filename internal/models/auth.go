// internal/models/auth.go
package models

import "time"

// TokenClaims is the decoded view of a candidate's bearer token, produced by
// the auth session guard.
type TokenClaims struct {
	Subject string    `json:"sub"`
	Email   string    `json:"email"`
	Expiry  time.Time `json:"exp"`
}

// Expired reports whether the token's exp claim is in the past.
func (c *TokenClaims) Expired() bool {
	return !c.Expiry.IsZero() && time.Now().After(c.Expiry)
}

// Candidate is the authenticated portal user bound to a wizard session.
type Candidate struct {
	Email     string     `json:"email"`
	Name      string     `json:"name,omitempty"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}

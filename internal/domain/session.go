package domain

import "time"

// SessionClaims is the payload issued after sign-in and carried by the
// session token. Values are immutable; renewal produces a fresh value.
type SessionClaims struct {
	Subject   string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// ExpiredAt reports whether the claims are expired at the given instant.
func (c SessionClaims) ExpiredAt(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

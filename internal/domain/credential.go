package domain

import "time"

// DefaultRole is assigned to every credential created through registration.
const DefaultRole = "member"

// Credential is the persisted identity record for one user. The store
// guarantees at most one Credential per email.
type Credential struct {
	ID           string
	Fullname     string
	Email        string
	Phone        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Sanitized returns a copy safe to hand outside the core: the password hash
// is blanked, everything else is preserved.
func (c Credential) Sanitized() Credential {
	c.PasswordHash = ""
	return c
}

// Identity is the ephemeral result of a successful authentication. It never
// carries the password hash and is not persisted.
type Identity struct {
	ID       string
	Fullname string
	Email    string
	Role     string
}

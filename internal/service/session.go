package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"credentio/internal/domain"
)

// DefaultSessionLifetime bounds how long issued claims stay valid without a
// renewal.
const DefaultSessionLifetime = time.Hour

// SessionIssuer converts authenticated identities into time-bounded session
// claims and renews them on access. Claims round-trip through signed HS256
// tokens carrying subject, role, issued_at and expires_at.
type SessionIssuer struct {
	secret   []byte
	lifetime time.Duration
	now      func() time.Time
}

// NewSessionIssuer returns an issuer signing with secret. A non-positive
// lifetime falls back to DefaultSessionLifetime.
func NewSessionIssuer(secret []byte, lifetime time.Duration) *SessionIssuer {
	if lifetime <= 0 {
		lifetime = DefaultSessionLifetime
	}
	return &SessionIssuer{
		secret:   secret,
		lifetime: lifetime,
		now:      time.Now,
	}
}

// Issue creates fresh claims for the identity, valid from now for the
// configured lifetime.
func (s *SessionIssuer) Issue(identity domain.Identity) domain.SessionClaims {
	now := s.now().UTC().Truncate(time.Second)
	return domain.SessionClaims{
		Subject:   identity.ID,
		Role:      identity.Role,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.lifetime),
	}
}

// Renew returns new claims with expiry recomputed from the current time,
// preserving subject and role. Expiry slides from now, never from the old
// expires_at. Expired claims cannot be renewed.
func (s *SessionIssuer) Renew(claims domain.SessionClaims) (domain.SessionClaims, error) {
	now := s.now().UTC().Truncate(time.Second)
	if claims.ExpiredAt(now) {
		return domain.SessionClaims{}, ErrSessionExpired
	}
	return domain.SessionClaims{
		Subject:   claims.Subject,
		Role:      claims.Role,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.lifetime),
	}, nil
}

// Expired reports whether claims are past their expiry right now.
func (s *SessionIssuer) Expired(claims domain.SessionClaims) bool {
	return claims.ExpiredAt(s.now().UTC())
}

type tokenClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role,omitempty"`
}

// Token signs claims into their transport form.
func (s *SessionIssuer) Token(claims domain.SessionClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.Subject,
			IssuedAt:  jwt.NewNumericDate(claims.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
		},
		Role: claims.Role,
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Parse verifies the token signature and recovers the claims. Expiry is not
// enforced here; callers decide between Renew and rejection so that an
// expired-but-authentic token can still be told apart from a forged one.
func (s *SessionIssuer) Parse(token string) (domain.SessionClaims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	var parsed tokenClaims
	if _, err := parser.ParseWithClaims(token, &parsed, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}); err != nil {
		return domain.SessionClaims{}, errors.Join(ErrTokenInvalid, err)
	}

	if parsed.Subject == "" || parsed.IssuedAt == nil || parsed.ExpiresAt == nil {
		return domain.SessionClaims{}, ErrTokenInvalid
	}

	return domain.SessionClaims{
		Subject:   parsed.Subject,
		Role:      parsed.Role,
		IssuedAt:  parsed.IssuedAt.Time.UTC(),
		ExpiresAt: parsed.ExpiresAt.Time.UTC(),
	}, nil
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// Full sign-up then sign-in flow against the in-memory store.
func TestRegisterAuthenticateSessionFlow(t *testing.T) {
	store := newMemStore()
	hasher := NewHasher(bcrypt.MinCost)
	registration := NewRegistrationService(store, hasher)
	auth := NewAuthenticationService(store, hasher)

	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	sessions := frozenIssuer(time.Hour, start)

	_, err := registration.Register(context.Background(), "Jane Doe", "jane@x.com", "+1555", "secret1")
	require.NoError(t, err)

	identity, err := auth.Authenticate(context.Background(), "jane@x.com", "secret1")
	require.NoError(t, err)
	require.Equal(t, "member", identity.Role)

	_, err = auth.Authenticate(context.Background(), "jane@x.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	claims := sessions.Issue(*identity)
	require.False(t, sessions.Expired(claims))

	sessions.now = func() time.Time { return start.Add(10 * time.Minute) }
	renewed, err := sessions.Renew(claims)
	require.NoError(t, err)
	require.True(t, renewed.ExpiresAt.After(claims.ExpiresAt))
	require.Equal(t, identity.ID, renewed.Subject)
}

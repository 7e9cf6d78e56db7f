package repository

import (
	"context"
	"errors"

	"credentio/internal/domain"
)

var (
	// ErrNotFound is returned when no credential matches the lookup key.
	ErrNotFound = errors.New("credential not found")
	// ErrDuplicateEmail is returned by Insert when the email is already
	// taken. Implementations must back this with a storage-level unique
	// constraint so concurrent inserts cannot both succeed.
	ErrDuplicateEmail = errors.New("email already registered")
)

// CredentialStore defines persistence operations for Credential records.
// The store assigns the ID on insert.
type CredentialStore interface {
	Init(ctx context.Context) error
	Insert(ctx context.Context, cred *domain.Credential) (string, error)
	FindByEmail(ctx context.Context, email string) (*domain.Credential, error)
	FindByID(ctx context.Context, id string) (*domain.Credential, error)
}

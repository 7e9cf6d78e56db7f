package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"credentio/internal/domain"
	"credentio/internal/repository"
)

func newTestStore(t *testing.T) repository.CredentialStore {
	t.Helper()

	db, err := OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store := NewCredentialStore(db)
	require.NoError(t, store.Init(context.Background()))
	return store
}

func testCredential(email string) *domain.Credential {
	now := time.Now().UTC().Truncate(time.Second)
	return &domain.Credential{
		Fullname:     "Jane Doe",
		Email:        email,
		Phone:        "+1555",
		PasswordHash: "$2a$10$fakefakefakefakefakefakefakefakefakefakefakefakefakef",
		Role:         "member",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestInsertAssignsID(t *testing.T) {
	store := newTestStore(t)

	cred := testCredential("jane@x.com")
	id, err := store.Insert(context.Background(), cred)
	require.NoError(t, err)
	require.NotEmpty(t, id)
	require.Equal(t, id, cred.ID)
}

func TestInsertEnforcesUniqueEmail(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Insert(context.Background(), testCredential("jane@x.com"))
	require.NoError(t, err)

	_, err = store.Insert(context.Background(), testCredential("jane@x.com"))
	require.ErrorIs(t, err, repository.ErrDuplicateEmail)
}

func TestEmailLookupIsCaseSensitive(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Insert(context.Background(), testCredential("jane@x.com"))
	require.NoError(t, err)

	_, err = store.FindByEmail(context.Background(), "Jane@x.com")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestFindByEmail(t *testing.T) {
	store := newTestStore(t)

	want := testCredential("jane@x.com")
	_, err := store.Insert(context.Background(), want)
	require.NoError(t, err)

	got, err := store.FindByEmail(context.Background(), "jane@x.com")
	require.NoError(t, err)
	require.Equal(t, want.ID, got.ID)
	require.Equal(t, want.Fullname, got.Fullname)
	require.Equal(t, want.Phone, got.Phone)
	require.Equal(t, want.PasswordHash, got.PasswordHash)
	require.Equal(t, want.Role, got.Role)

	_, err = store.FindByEmail(context.Background(), "nobody@x.com")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestFindByID(t *testing.T) {
	store := newTestStore(t)

	cred := testCredential("jane@x.com")
	id, err := store.Insert(context.Background(), cred)
	require.NoError(t, err)

	got, err := store.FindByID(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, "jane@x.com", got.Email)

	_, err = store.FindByID(context.Background(), "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

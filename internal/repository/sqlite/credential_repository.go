package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"credentio/internal/domain"
	"credentio/internal/repository"
)

const createCredentialsTable = `
CREATE TABLE IF NOT EXISTS credentials (
	id TEXT PRIMARY KEY,
	fullname TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	phone TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	role TEXT NOT NULL DEFAULT 'member',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

type CredentialStore struct {
	db *sql.DB
}

func NewCredentialStore(db *sql.DB) repository.CredentialStore {
	return &CredentialStore{db: db}
}

func (r *CredentialStore) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createCredentialsTable); err != nil {
		return fmt.Errorf("create credentials table: %w", err)
	}
	return nil
}

func (r *CredentialStore) Insert(ctx context.Context, cred *domain.Credential) (string, error) {
	id := uuid.NewString()
	now := time.Now().UTC()
	if cred.CreatedAt.IsZero() {
		cred.CreatedAt = now
	}
	if cred.UpdatedAt.IsZero() {
		cred.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx, `
INSERT INTO credentials (id, fullname, email, phone, password_hash, role, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		cred.Fullname,
		cred.Email,
		cred.Phone,
		cred.PasswordHash,
		cred.Role,
		cred.CreatedAt,
		cred.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return "", repository.ErrDuplicateEmail
		}
		return "", fmt.Errorf("insert credential: %w", err)
	}

	cred.ID = id
	return id, nil
}

func (r *CredentialStore) FindByEmail(ctx context.Context, email string) (*domain.Credential, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, fullname, email, phone, password_hash, role, created_at, updated_at
FROM credentials
WHERE email = ?`,
		email,
	)
	return scanCredential(row)
}

func (r *CredentialStore) FindByID(ctx context.Context, id string) (*domain.Credential, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, fullname, email, phone, password_hash, role, created_at, updated_at
FROM credentials
WHERE id = ?`,
		id,
	)
	return scanCredential(row)
}

func scanCredential(row interface {
	Scan(dest ...any) error
}) (*domain.Credential, error) {
	var cred domain.Credential
	if err := row.Scan(
		&cred.ID,
		&cred.Fullname,
		&cred.Email,
		&cred.Phone,
		&cred.PasswordHash,
		&cred.Role,
		&cred.CreatedAt,
		&cred.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan credential: %w", err)
	}
	return &cred, nil
}

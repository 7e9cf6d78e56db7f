package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"
	"unicode/utf8"

	"credentio/internal/domain"
	"credentio/internal/repository"
)

// emailPattern accepts the usual local@domain.tld shape without trying to
// police the full RFC grammar.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	// MinPasswordLength is the minimum accepted password length in
	// characters.
	MinPasswordLength = 6
	// MaxPasswordBytes is bcrypt's input limit; longer passwords are
	// rejected up front instead of surfacing a hashing failure.
	MaxPasswordBytes = 72
)

// RegistrationService creates new credential records.
type RegistrationService interface {
	Register(ctx context.Context, fullname, email, phone, password string) (*domain.Credential, error)
}

type registrationService struct {
	store  repository.CredentialStore
	hasher *Hasher
}

func NewRegistrationService(store repository.CredentialStore, hasher *Hasher) RegistrationService {
	return &registrationService{
		store:  store,
		hasher: hasher,
	}
}

// Register validates the input, rejects duplicate emails, and inserts a new
// credential with a hashed password and the default role. The store's unique
// index on email is the final arbiter for concurrent registrations; the
// lookup here only produces the friendlier early error.
func (s *registrationService) Register(ctx context.Context, fullname, email, phone, password string) (*domain.Credential, error) {
	var missing []string
	for _, field := range []struct{ name, value string }{
		{"fullname", fullname},
		{"email", email},
		{"phone", phone},
		{"password", password},
	} {
		if field.value == "" {
			missing = append(missing, field.name)
		}
	}
	if len(missing) > 0 {
		return nil, &ValidationError{MissingFields: missing}
	}
	if !emailPattern.MatchString(email) {
		return nil, &ValidationError{Reason: "invalid email format"}
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return nil, &ValidationError{Reason: fmt.Sprintf("password must be at least %d characters", MinPasswordLength)}
	}
	if len(password) > MaxPasswordBytes {
		return nil, &ValidationError{Reason: fmt.Sprintf("password must be at most %d bytes", MaxPasswordBytes)}
	}

	if _, err := s.store.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	cred := &domain.Credential{
		Fullname:     fullname,
		Email:        email,
		Phone:        phone,
		PasswordHash: hash,
		Role:         domain.DefaultRole,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := s.store.Insert(ctx, cred); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("insert credential: %w", err)
	}

	sanitized := cred.Sanitized()
	return &sanitized, nil
}

package service

import (
	"context"
	"errors"
	"fmt"

	"credentio/internal/domain"
	"credentio/internal/repository"
)

// AuthenticationService verifies sign-in credentials against the store.
type AuthenticationService interface {
	Authenticate(ctx context.Context, email, password string) (*domain.Identity, error)
	GetByID(ctx context.Context, id string) (*domain.Credential, error)
}

type authenticationService struct {
	store  repository.CredentialStore
	hasher *Hasher
}

func NewAuthenticationService(store repository.CredentialStore, hasher *Hasher) AuthenticationService {
	return &authenticationService{
		store:  store,
		hasher: hasher,
	}
}

// Authenticate returns the identity behind email if password matches its
// stored hash. An unknown email and a wrong password produce the same
// ErrInvalidCredentials value.
func (s *authenticationService) Authenticate(ctx context.Context, email, password string) (*domain.Identity, error) {
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	cred, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	if !s.hasher.Verify(password, cred.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	role := cred.Role
	if role == "" {
		role = domain.DefaultRole
	}

	return &domain.Identity{
		ID:       cred.ID,
		Fullname: cred.Fullname,
		Email:    cred.Email,
		Role:     role,
	}, nil
}

// GetByID fetches a credential for profile reads, with the hash blanked.
func (s *authenticationService) GetByID(ctx context.Context, id string) (*domain.Credential, error) {
	cred, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	sanitized := cred.Sanitized()
	return &sanitized, nil
}

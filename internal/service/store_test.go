package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"credentio/internal/domain"
	"credentio/internal/repository"
)

// memStore is an in-memory CredentialStore that enforces the same email
// uniqueness contract as the sqlite implementation.
type memStore struct {
	mu      sync.Mutex
	nextID  int
	byEmail map[string]*domain.Credential

	failInsert error
	failLookup error
}

func newMemStore() *memStore {
	return &memStore{byEmail: make(map[string]*domain.Credential)}
}

func (m *memStore) Init(context.Context) error { return nil }

func (m *memStore) Insert(_ context.Context, cred *domain.Credential) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failInsert != nil {
		return "", m.failInsert
	}
	if _, exists := m.byEmail[cred.Email]; exists {
		return "", repository.ErrDuplicateEmail
	}

	m.nextID++
	stored := *cred
	stored.ID = fmt.Sprintf("cred-%d", m.nextID)
	m.byEmail[cred.Email] = &stored
	cred.ID = stored.ID
	return stored.ID, nil
}

func (m *memStore) FindByEmail(_ context.Context, email string) (*domain.Credential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failLookup != nil {
		return nil, m.failLookup
	}
	cred, ok := m.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *cred
	return &copied, nil
}

func (m *memStore) FindByID(_ context.Context, id string) (*domain.Credential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, cred := range m.byEmail {
		if cred.ID == id {
			copied := *cred
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byEmail)
}

var errStoreDown = errors.New("store unavailable")

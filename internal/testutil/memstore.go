package testutil

import (
	"sync"

	"taskwire/internal/session"
)

// MemStore is an in-memory session.Store for testing.
type MemStore struct {
	mu    sync.Mutex
	creds *session.Credentials

	// LoadErr, when set, is returned by every Load.
	LoadErr error
}

// NewMemStore returns a store pre-loaded with the given credentials.
// Pass nil for a logged-out store.
func NewMemStore(creds *session.Credentials) *MemStore {
	return &MemStore{creds: creds}
}

// LoggedInStore returns a store holding valid credentials matching FakeBackend.
func LoggedInStore() *MemStore {
	return NewMemStore(session.New(Token, UserID, "alice"))
}

// Load implements session.Store.
func (m *MemStore) Load() (*session.Credentials, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.creds == nil {
		return nil, session.ErrNotLoggedIn
	}
	c := *m.creds
	return &c, nil
}

// Save implements session.Store.
func (m *MemStore) Save(creds *session.Credentials) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *creds
	m.creds = &c
	return nil
}

// Clear implements session.Store.
func (m *MemStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds = nil
	return nil
}

// Package session holds the authenticated identity between CLI invocations.
//
// The browser cookie jar of the original client becomes a small capability
// interface (Store) with a file-backed implementation under the config
// directory. The bearer token rides in an oauth2.Token so expiry checking
// reuses Token.Valid().
package session

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/oauth2"
)

// TokenTTL is how long a stored session stays valid.
// Matches the server-issued token lifetime of one day.
const TokenTTL = 24 * time.Hour

// ErrNotLoggedIn is returned when no credentials are stored.
var ErrNotLoggedIn = errors.New("not logged in")

// Credentials is the persisted session identity.
type Credentials struct {
	Token    oauth2.Token `json:"token"`
	UserID   string       `json:"user_id"`
	Username string       `json:"username"`
}

// New builds credentials for a fresh login, stamping the token expiry.
func New(token, userID, username string) *Credentials {
	return &Credentials{
		Token: oauth2.Token{
			AccessToken: token,
			TokenType:   "Bearer",
			Expiry:      time.Now().Add(TokenTTL),
		},
		UserID:   userID,
		Username: username,
	}
}

// Valid reports whether the credentials can authenticate a request:
// a non-expired token and a user id must both be present.
func (c *Credentials) Valid() bool {
	return c != nil && c.UserID != "" && c.Token.Valid()
}

// Store is the credential store capability injected into the synchronizer.
type Store interface {
	// Load returns the stored credentials, or ErrNotLoggedIn when absent.
	Load() (*Credentials, error)

	// Save persists credentials, replacing any previous ones.
	Save(*Credentials) error

	// Clear removes stored credentials. Clearing an empty store is a no-op.
	Clear() error
}

// FileStore persists credentials as JSON at a fixed path, mode 0600.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed store at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load implements Store.
func (s *FileStore) Load() (*Credentials, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotLoggedIn
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}
	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("invalid session file %s: %w", s.path, err)
	}
	return &creds, nil
}

// Save implements Store.
func (s *FileStore) Save(creds *Credentials) error {
	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}

// Clear implements Store.
func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

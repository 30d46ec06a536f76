// Package session holds the login token: a per-user file store and a
// Manager that is the single source of truth for auth state across every
// view and the API client.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Store persists the raw token to a per-user file (0600).
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load returns the persisted token, or "" when none is stored.
func (s *Store) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read token: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *Store) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("mkdir token dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	return nil
}

func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}

// Manager guards the in-memory token. Network commands run on their own
// goroutines, so reads and writes are mutex-protected.
type Manager struct {
	mu    sync.RWMutex
	token string
	store *Store
}

// NewManager loads any persisted token so a previous login survives restarts.
func NewManager(store *Store) (*Manager, error) {
	token, err := store.Load()
	if err != nil {
		return nil, err
	}
	return &Manager{token: token, store: store}, nil
}

func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// Authenticated reports whether a token is present. Presence is the sole
// auth signal; there is no expiry check or server revalidation.
func (m *Manager) Authenticated() bool {
	return m.Token() != ""
}

// Login persists the token and flips the session to authenticated.
func (m *Manager) Login(token string) error {
	if err := m.store.Save(token); err != nil {
		return err
	}
	m.mu.Lock()
	m.token = token
	m.mu.Unlock()
	return nil
}

// Logout clears the persisted token and the in-memory state.
func (m *Manager) Logout() error {
	if err := m.store.Clear(); err != nil {
		return err
	}
	m.mu.Lock()
	m.token = ""
	m.mu.Unlock()
	return nil
}

package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// TokenStore is the single-slot durable home of the last-issued bearer
// token. Last writer wins; Load returns an empty string when no token is
// stored.
type TokenStore interface {
	Save(token string) error
	Load() (string, error)
	Clear() error
}

// FileStore keeps the token in a single file, created with 0600.
type FileStore struct {
	path string
}

// NewFileStore builds a FileStore at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultTokenPath places the token under the user config directory.
func DefaultTokenPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "sage", "token"), nil
}

func (s *FileStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	return nil
}

func (s *FileStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read token: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}

// MemoryStore is an in-process TokenStore for tests.
type MemoryStore struct {
	mu    sync.Mutex
	token string
	set   bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.set = true
	return nil
}

func (s *MemoryStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.set {
		return "", nil
	}
	return s.token, nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.set = false
	return nil
}

// Has reports whether a token is currently stored.
func (s *MemoryStore) Has() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set
}

package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Session holds the bearer token and the signed-in user.
type Session interface {
	Token() string
	User() *User
	Save(token string, u *User) error
	Clear() error
}

type sessionData struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}

type MemorySession struct {
	mu   sync.RWMutex
	data sessionData
}

func NewMemorySession() *MemorySession { return &MemorySession{} }

func (s *MemorySession) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Token
}

func (s *MemorySession) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.User
}

func (s *MemorySession) Save(token string, u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = sessionData{Token: token, User: u}
	return nil
}

func (s *MemorySession) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = sessionData{}
	return nil
}

// FileSession keeps the session as JSON in a file readable only by the owner.
type FileSession struct {
	path string

	mu     sync.Mutex
	loaded bool
	data   sessionData
}

func NewFileSession(path string) *FileSession { return &FileSession{path: path} }

// DefaultSessionPath is $XDG_CONFIG_HOME/sesictl/session.json, falling back
// to the platform config directory.
func DefaultSessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "sesictl", "session.json"), nil
}

func (s *FileSession) Path() string { return s.path }

func (s *FileSession) load() {
	if s.loaded {
		return
	}
	s.loaded = true
	b, err := os.ReadFile(s.path)
	if err != nil {
		return
	}
	// a corrupt file reads as signed out
	_ = json.Unmarshal(b, &s.data)
}

func (s *FileSession) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
	return s.data.Token
}

func (s *FileSession) User() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
	return s.data.User
}

func (s *FileSession) Save(token string, u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := sessionData{Token: token, User: u}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	s.data, s.loaded = data, true
	return nil
}

func (s *FileSession) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data, s.loaded = sessionData{}, true
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

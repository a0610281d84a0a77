package session

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Session holds the authenticated user's credential and identity.
// It is either fully present (logged in) or absent entirely; individual
// fields are never persisted on their own.
type Session struct {
	Token     string `yaml:"access_token" mapstructure:"access_token"`
	UserID    int64  `yaml:"user_id" mapstructure:"user_id"`
	Username  string `yaml:"username" mapstructure:"username"`
	IsPremium bool   `yaml:"is_premium" mapstructure:"is_premium"`
}

// Store persists the session to a YAML file and caches it in memory.
// It is injected into the API client and the push channel rather than
// living as package-level state, so teardown is deterministic.
type Store struct {
	mu      sync.RWMutex
	path    string
	current *Session
}

// DefaultPath returns the standard session file location (~/.healthpulse/session.yaml).
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		panic(fmt.Sprintf("failed to get home directory: %v", err))
	}
	return filepath.Join(home, ".healthpulse", "session.yaml")
}

// NewStore creates a store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load restores a previously persisted session. It returns false when the
// file is absent, unreadable, or does not contain a credential.
func (s *Store) Load() (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.path); err != nil {
		s.current = nil
		return nil, false
	}

	v := viper.New()
	v.SetConfigFile(s.path)
	if err := v.ReadInConfig(); err != nil {
		s.current = nil
		return nil, false
	}

	var sess Session
	if err := v.Unmarshal(&sess); err != nil || sess.Token == "" {
		s.current = nil
		return nil, false
	}

	s.current = &sess
	copy := sess
	return &copy, true
}

// Save persists the session and makes it current.
func (s *Store) Save(sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	data, err := yaml.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}

	copy := *sess
	s.current = &copy
	return nil
}

// Clear removes the persisted session. A missing file is not an error.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session: %w", err)
	}
	return nil
}

// Current returns a copy of the in-memory session, or nil when logged out.
func (s *Store) Current() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	copy := *s.current
	return &copy
}

// Token returns the bearer credential, or "" when unauthenticated.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.Token
}

// SetPremium updates the premium flag and rewrites the whole session file,
// so the flag can never go stale relative to its sibling fields.
func (s *Store) SetPremium(premium bool) error {
	s.mu.Lock()
	cur := s.current
	s.mu.Unlock()

	if cur == nil {
		return fmt.Errorf("no active session")
	}
	updated := *cur
	updated.IsPremium = premium
	return s.Save(&updated)
}

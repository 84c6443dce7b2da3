package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/example/cashew-corner/internal/model"
)

// Session is the persisted credential state. A zero ExpiresAt means the
// backend gave no lifetime and the session never expires locally.
type Session struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	User         *model.AuthUser
	ExpiresAt    time.Time
}

// TokenStore persists a session between manager restarts
type TokenStore interface {
	Load() (Session, bool, error)
	Save(Session) error
	Clear() error
}

type MemoryStore struct {
	mu      sync.Mutex
	session *Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load() (Session, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return Session{}, false, nil
	}
	return *s.session, true, nil
}

func (s *MemoryStore) Save(session Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = &session
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	return nil
}

// FileStore keeps the session in a JSON file readable only by the owner,
// letting separate CLI invocations share one login.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// on-disk shape; expiresAt is unix milliseconds, omitted when there is no expiry
type sessionFile struct {
	AccessToken  string          `json:"accessToken"`
	RefreshToken string          `json:"refreshToken"`
	TokenType    string          `json:"tokenType"`
	User         *model.AuthUser `json:"user,omitempty"`
	ExpiresAt    int64           `json:"expiresAt,omitempty"`
}

func (s *FileStore) Load() (Session, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Session{}, false, nil
		}
		return Session{}, false, fmt.Errorf("read session file: %w", err)
	}

	var f sessionFile
	if err := json.Unmarshal(data, &f); err != nil {
		return Session{}, false, fmt.Errorf("decode session file: %w", err)
	}
	if f.AccessToken == "" {
		return Session{}, false, nil
	}

	session := Session{
		AccessToken:  f.AccessToken,
		RefreshToken: f.RefreshToken,
		TokenType:    f.TokenType,
		User:         f.User,
	}
	if f.ExpiresAt > 0 {
		session.ExpiresAt = time.UnixMilli(f.ExpiresAt)
	}
	return session, true, nil
}

func (s *FileStore) Save(session Session) error {
	f := sessionFile{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		TokenType:    session.TokenType,
		User:         session.User,
	}
	if !session.ExpiresAt.IsZero() {
		f.ExpiresAt = session.ExpiresAt.UnixMilli()
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return os.Rename(tmp, s.path)
}

func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

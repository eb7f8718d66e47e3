package client

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"flashcards/pkg/user"
)

// PersistedSession is the subset of auth state that survives restarts.
// The in-flight loading flag is deliberately not part of it.
type PersistedSession struct {
	User            *user.User `json:"user"`
	Token           string     `json:"token"`
	IsAuthenticated bool       `json:"isAuthenticated"`
}

// Storage is the serialize/deserialize boundary for the persisted
// session record. Load returns (nil, nil) when no record exists.
type Storage interface {
	Load() (*PersistedSession, error)
	Save(s *PersistedSession) error
	Clear() error
}

type FileStorage struct {
	path string
}

// DefaultSessionPath is where the CLI keeps its session record.
func DefaultSessionPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".flashcards", "session.json"), nil
}

func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

func (f *FileStorage) Load() (*PersistedSession, error) {
	b, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var s PersistedSession
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (f *FileStorage) Save(s *PersistedSession) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, data, 0600)
}

func (f *FileStorage) Clear() error {
	err := os.Remove(f.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// MemoryStorage holds the record in memory; used by tests and callers
// that do not want restart persistence.
type MemoryStorage struct {
	mu  sync.Mutex
	rec *PersistedSession
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (m *MemoryStorage) Load() (*PersistedSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.rec == nil {
		return nil, nil
	}
	copied := *m.rec
	return &copied, nil
}

func (m *MemoryStorage) Save(s *PersistedSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *s
	m.rec = &copied
	return nil
}

func (m *MemoryStorage) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.rec = nil
	return nil
}

package client

import (
	"log/slog"
	"sync"

	"flashcards/pkg/user"
)

// Session is a read-only snapshot of the auth state.
// IsAuthenticated is true exactly when both User and Token are present.
type Session struct {
	User            *user.User
	Token           string
	IsAuthenticated bool
	IsLoading       bool
}

// AuthStore is the single source of truth for who is logged in. It is
// the only component that mutates the gateway's token, and
// InitializeAuth is the only path that hydrates from storage.
type AuthStore struct {
	mu      sync.Mutex
	user    *user.User
	token   string
	loading bool

	api     *Client
	storage Storage
	logger  *slog.Logger
}

func NewAuthStore(api *Client, storage Storage, logger *slog.Logger) *AuthStore {
	return &AuthStore{
		api:     api,
		storage: storage,
		logger:  logger,
	}
}

// Login records a successful authentication: it arms the gateway with
// the token and persists the session. It cannot fail; persistence
// problems are logged and the in-memory state stands.
func (s *AuthStore) Login(token string, u *user.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = u
	s.token = token
	s.loading = false

	s.api.SetAuthToken(token)

	if err := s.storage.Save(&PersistedSession{
		User:            u,
		Token:           token,
		IsAuthenticated: true,
	}); err != nil {
		s.logger.Error("failed to persist session", "error", err)
	}
}

// Logout clears the session everywhere: memory, gateway, storage.
// Calling it while logged out is a no-op.
func (s *AuthStore) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = nil
	s.token = ""
	s.loading = false

	s.api.ClearAuth()

	if err := s.storage.Clear(); err != nil {
		s.logger.Error("failed to clear persisted session", "error", err)
	}
}

func (s *AuthStore) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loading = loading
}

// InitializeAuth optimistically restores the persisted session without
// contacting the server; the first authorized request confirms validity.
// Absent or corrupt records leave the store logged out.
func (s *AuthStore) InitializeAuth() {
	rec, err := s.storage.Load()
	if err != nil {
		s.logger.Error("failed to load persisted session", "error", err)
		return
	}
	if rec == nil || rec.Token == "" || rec.User == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = rec.User
	s.token = rec.Token
	s.api.SetAuthToken(rec.Token)
}

func (s *AuthStore) Session() Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Session{
		User:            s.user,
		Token:           s.token,
		IsAuthenticated: s.user != nil && s.token != "",
		IsLoading:       s.loading,
	}
}

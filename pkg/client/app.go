package client

import "log/slog"

// App wires the gateway, auth store, cache and typed services into one
// explicitly constructed unit so callers (and tests) can hold isolated
// instances instead of ambient globals.
type App struct {
	API   *Client
	Store *AuthStore
	Cache *Cache
	Auth  *Auth
	Decks *Decks
	Cards *Cards

	// OnSessionExpired is notified after an expired session has been
	// cleared, so the caller can send the user back to login.
	OnSessionExpired func()
}

func NewApp(baseURL string, storage Storage, logger *slog.Logger) *App {
	api := New(baseURL)
	store := NewAuthStore(api, storage, logger)
	cache := NewCache()

	app := &App{
		API:   api,
		Store: store,
		Cache: cache,
		Auth:  NewAuth(api, store),
		Decks: NewDecks(api, cache),
		Cards: NewCards(api, cache),
	}

	api.SetUnauthorizedHandler(func() {
		store.Logout()
		if app.OnSessionExpired != nil {
			app.OnSessionExpired()
		}
	})

	return app
}

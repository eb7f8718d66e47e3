package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"flashcards/pkg/card"
	"flashcards/pkg/client"
)

// fakeAPI is an envelope-speaking stand-in for the flashcards server.
type fakeAPI struct {
	mux   *http.ServeMux
	hits  map[string]*int32
	token string
}

func newFakeAPI() *fakeAPI {
	f := &fakeAPI{
		mux:   http.NewServeMux(),
		hits:  make(map[string]*int32),
		token: "t1",
	}
	return f
}

func (f *fakeAPI) handle(pattern string, status int, data any) {
	var counter int32
	f.hits[pattern] = &counter

	f.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&counter, 1)

		raw, _ := json.Marshal(data)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success":   status < 400,
			"data":      json.RawMessage(raw),
			"timestamp": "2024-01-01T00:00:00Z",
		})
	})
}

func (f *fakeAPI) hitCount(pattern string) int32 {
	return atomic.LoadInt32(f.hits[pattern])
}

func newTestApp(t *testing.T, handler http.Handler) (*client.App, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return client.NewApp(srv.URL, client.NewMemoryStorage(), newTestLogger()), srv
}

func TestLoginScenario(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)

		var req client.LoginRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "alice", req.LoginID)
		assert.Equal(t, "secret1", req.Password)

		writeEnvelope(w, http.StatusOK, envelope(true, map[string]any{
			"token":     "t1",
			"tokenType": "Bearer",
			"user":      map[string]any{"id": 1, "loginId": "alice", "name": "Alice"},
		}, ""))
	})

	app, _ := newTestApp(t, handler)

	u, err := app.Auth.Login(context.Background(), "alice", "secret1")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)

	session := app.Store.Session()
	assert.True(t, session.IsAuthenticated)
	assert.Equal(t, "t1", session.Token)
	assert.Equal(t, "Alice", session.User.Name)
	assert.False(t, session.IsLoading)
}

func TestLoginFailureStaysLocal(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, envelope(false, nil, "invalid password"))
	})

	app, _ := newTestApp(t, handler)

	expired := 0
	app.OnSessionExpired = func() { expired++ }

	_, err := app.Auth.Login(context.Background(), "alice", "wrong")

	assert.EqualError(t, err, "invalid password")
	assert.Equal(t, 0, expired, "a rejected login must not trigger the expired-session policy")
	assert.False(t, app.Store.Session().IsAuthenticated)
}

func TestExpiredSessionClearsAndNotifiesOnce(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, envelope(false, nil, "unauthorized"))
	})

	app, _ := newTestApp(t, handler)
	app.Store.Login("stale-token", testUser())

	expired := 0
	app.OnSessionExpired = func() { expired++ }

	_, err := app.Decks.List(context.Background())

	assert.Error(t, err)
	assert.Equal(t, 1, expired)
	assert.False(t, app.Store.Session().IsAuthenticated)
}

func TestDeckListIsCachedAcrossCalls(t *testing.T) {
	api := newFakeAPI()
	api.handle("GET /decks", http.StatusOK, []map[string]any{
		{"id": 1, "name": "Spanish"},
	})

	app, _ := newTestApp(t, api.mux)

	ctx := context.Background()
	decks, err := app.Decks.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, decks, 1)
	assert.Equal(t, "Spanish", decks[0].Name)

	_, err = app.Decks.List(ctx)
	assert.NoError(t, err)
	assert.EqualValues(t, 1, api.hitCount("GET /decks"), "second list must be served from cache")
}

func TestCreateDeckInvalidatesList(t *testing.T) {
	api := newFakeAPI()
	api.handle("GET /decks", http.StatusOK, []map[string]any{})
	api.handle("POST /decks", http.StatusCreated, map[string]any{"id": 2, "name": "French"})

	app, _ := newTestApp(t, api.mux)
	ctx := context.Background()

	_, err := app.Decks.List(ctx)
	assert.NoError(t, err)

	created, err := app.Decks.Create(ctx, "French")
	assert.NoError(t, err)
	assert.Equal(t, int64(2), created.ID)

	_, err = app.Decks.List(ctx)
	assert.NoError(t, err)
	assert.EqualValues(t, 2, api.hitCount("GET /decks"), "deck creation must stale the list")
}

func TestCreateCardScenario(t *testing.T) {
	api := newFakeAPI()
	api.handle("GET /decks", http.StatusOK, []map[string]any{})
	api.handle("GET /decks/7", http.StatusOK, map[string]any{"id": 7, "name": "Kanji"})
	api.handle("GET /cards/deck/7", http.StatusOK, []map[string]any{})
	api.handle("GET /cards/deck/9", http.StatusOK, []map[string]any{})
	api.handle("POST /cards", http.StatusCreated, map[string]any{
		"id": 11, "deckId": 7, "frontContent": "火", "backContent": "fire",
	})

	app, _ := newTestApp(t, api.mux)
	ctx := context.Background()

	// prime every view
	_, err := app.Decks.List(ctx)
	assert.NoError(t, err)
	_, err = app.Decks.Get(ctx, 7)
	assert.NoError(t, err)
	_, err = app.Cards.ListByDeck(ctx, 7)
	assert.NoError(t, err)
	_, err = app.Cards.ListByDeck(ctx, 9)
	assert.NoError(t, err)

	created, err := app.Cards.Create(ctx, card.CreateForm{
		DeckID:       7,
		FrontContent: "火",
		BackContent:  "fire",
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(11), created.ID)

	// every deck-7 view refetches, deck 9 does not
	_, _ = app.Decks.List(ctx)
	_, _ = app.Decks.Get(ctx, 7)
	_, _ = app.Cards.ListByDeck(ctx, 7)
	_, _ = app.Cards.ListByDeck(ctx, 9)

	assert.EqualValues(t, 2, api.hitCount("GET /decks"))
	assert.EqualValues(t, 2, api.hitCount("GET /decks/7"))
	assert.EqualValues(t, 2, api.hitCount("GET /cards/deck/7"))
	assert.EqualValues(t, 1, api.hitCount("GET /cards/deck/9"))
}

func TestFailedMutationKeepsCache(t *testing.T) {
	api := newFakeAPI()
	api.handle("GET /cards/deck/7", http.StatusOK, []map[string]any{})
	api.mux.HandleFunc("DELETE /cards/11", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusInternalServerError, envelope(false, nil, "storage unavailable"))
	})

	app, _ := newTestApp(t, api.mux)
	ctx := context.Background()

	_, err := app.Cards.ListByDeck(ctx, 7)
	assert.NoError(t, err)

	err = app.Cards.Delete(ctx, 7, 11)
	assert.EqualError(t, err, "storage unavailable")

	_, err = app.Cards.ListByDeck(ctx, 7)
	assert.NoError(t, err)
	assert.EqualValues(t, 1, api.hitCount("GET /cards/deck/7"), "failed delete must not stale the card list")
}

func TestDeckGetPath(t *testing.T) {
	var gotPath string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		writeEnvelope(w, http.StatusOK, envelope(true, map[string]any{"id": 42, "name": "Greek"}, ""))
	})

	app, _ := newTestApp(t, handler)

	d, err := app.Decks.Get(context.Background(), 42)
	assert.NoError(t, err)
	assert.Equal(t, "/decks/42", gotPath)
	assert.Equal(t, int64(42), d.ID)
	assert.Equal(t, "Greek", d.Name)
}

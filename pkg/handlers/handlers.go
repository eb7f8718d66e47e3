package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"flashcards/pkg/api"
	"flashcards/pkg/claims"
)

const (
	muxVarID     string = "id"
	muxVarDeckID string = "deckId"
)

func DecodeJSONBody(w http.ResponseWriter, r *http.Request, req any) bool {
	if r.Header.Get("Content-Type") != "application/json" {
		api.WriteError(w, http.StatusBadRequest, "invalid Content-Type")
		return false
	}

	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "bad json")
		return false
	}

	return true
}

func getClaimsFromContext(w http.ResponseWriter, r *http.Request, c *claims.Claims) bool {
	val, ok := r.Context().Value(claims.TokenContextKey).(*claims.Claims)
	if !ok || val == nil || val.User.ID == 0 {
		api.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return false
	}
	*c = *val
	return true
}

func pathInt64(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	vars := mux.Vars(r)

	raw, ok := vars[name]
	if !ok {
		api.WriteError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		api.WriteError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}

	return id, true
}

// clientAddr resolves the originating client address, preferring the
// first X-Forwarded-For hop when the server sits behind a proxy.
func clientAddr(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if idx := strings.IndexByte(fwd, ','); idx > 0 {
			return strings.TrimSpace(fwd[:idx])
		}
		return strings.TrimSpace(fwd)
	}

	host := r.RemoteAddr
	if idx := strings.LastIndexByte(host, ':'); idx > 0 {
		host = host[:idx]
	}
	return host
}

package handlers

import (
	"log/slog"
	"net/http"

	"flashcards/pkg/api"
	"flashcards/pkg/claims"
	"flashcards/pkg/deck"
)

type DeckCreateRequest struct {
	DeckName string `json:"deckName"`
}

type DeckHandler struct {
	Service deck.ServiceDeck
	Logger  *slog.Logger
}

func NewDeckHandler(service deck.ServiceDeck, logger *slog.Logger) *DeckHandler {
	return &DeckHandler{
		Service: service,
		Logger:  logger,
	}
}

func (h *DeckHandler) List(w http.ResponseWriter, r *http.Request) {
	var c claims.Claims
	if ok := getClaimsFromContext(w, r, &c); !ok {
		return
	}

	decks, err := h.Service.List(c.User.ID)
	if err != nil {
		h.Logger.Error("deck list", "error", err)
		api.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	api.WriteData(w, h.Logger, decks, http.StatusOK)
}

func (h *DeckHandler) Get(w http.ResponseWriter, r *http.Request) {
	deckID, ok := pathInt64(w, r, muxVarID)
	if !ok {
		return
	}

	var c claims.Claims
	if ok := getClaimsFromContext(w, r, &c); !ok {
		return
	}

	d, err := h.Service.Get(c.User.ID, deckID)
	if err != nil {
		api.WriteError(w, deckErrStatus(err), err.Error())
		return
	}

	api.WriteData(w, h.Logger, d, http.StatusOK)
}

func (h *DeckHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req DeckCreateRequest
	if ok := DecodeJSONBody(w, r, &req); !ok {
		return
	}

	var c claims.Claims
	if ok := getClaimsFromContext(w, r, &c); !ok {
		return
	}

	d, err := h.Service.Create(c.User.ID, req.DeckName)
	if err != nil {
		api.WriteError(w, deckErrStatus(err), err.Error())
		return
	}

	if ok := api.WriteData(w, h.Logger, d, http.StatusCreated); ok {
		h.Logger.Info("new deck created", "user", c.User.ID, "deck", d.ID)
	}
}

func (h *DeckHandler) Update(w http.ResponseWriter, r *http.Request) {
	deckID, ok := pathInt64(w, r, muxVarID)
	if !ok {
		return
	}

	var req DeckCreateRequest
	if ok := DecodeJSONBody(w, r, &req); !ok {
		return
	}

	var c claims.Claims
	if ok := getClaimsFromContext(w, r, &c); !ok {
		return
	}

	d, err := h.Service.Update(c.User.ID, deckID, req.DeckName)
	if err != nil {
		api.WriteError(w, deckErrStatus(err), err.Error())
		return
	}

	if ok := api.WriteData(w, h.Logger, d, http.StatusOK); ok {
		h.Logger.Info("deck updated", "user", c.User.ID, "deck", deckID)
	}
}

func (h *DeckHandler) Delete(w http.ResponseWriter, r *http.Request) {
	deckID, ok := pathInt64(w, r, muxVarID)
	if !ok {
		return
	}

	var c claims.Claims
	if ok := getClaimsFromContext(w, r, &c); !ok {
		return
	}

	if err := h.Service.Delete(c.User.ID, deckID); err != nil {
		api.WriteError(w, deckErrStatus(err), err.Error())
		return
	}

	if ok := api.WriteMessage(w, h.Logger, "deck deleted", http.StatusOK); ok {
		h.Logger.Info("deck deleted", "user", c.User.ID, "deck", deckID)
	}
}

func deckErrStatus(err error) int {
	switch err.Error() {
	case "deck not found":
		return http.StatusNotFound
	case "missing deck name":
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

package handlers

import (
	"log/slog"
	"net/http"

	"flashcards/pkg/api"
	"flashcards/pkg/card"
	"flashcards/pkg/claims"
)

type CardUpdateRequest struct {
	FrontContent string `json:"frontContent"`
	BackContent  string `json:"backContent"`
}

type CardHandler struct {
	Service card.ServiceCard
	Logger  *slog.Logger
}

func NewCardHandler(service card.ServiceCard, logger *slog.Logger) *CardHandler {
	return &CardHandler{
		Service: service,
		Logger:  logger,
	}
}

func (h *CardHandler) ListByDeck(w http.ResponseWriter, r *http.Request) {
	deckID, ok := pathInt64(w, r, muxVarDeckID)
	if !ok {
		return
	}

	var c claims.Claims
	if ok := getClaimsFromContext(w, r, &c); !ok {
		return
	}

	cards, err := h.Service.ListByDeck(c.User.ID, deckID)
	if err != nil {
		api.WriteError(w, cardErrStatus(err), err.Error())
		return
	}

	api.WriteData(w, h.Logger, cards, http.StatusOK)
}

func (h *CardHandler) Get(w http.ResponseWriter, r *http.Request) {
	cardID, ok := pathInt64(w, r, muxVarID)
	if !ok {
		return
	}

	var c claims.Claims
	if ok := getClaimsFromContext(w, r, &c); !ok {
		return
	}

	crd, err := h.Service.Get(c.User.ID, cardID)
	if err != nil {
		api.WriteError(w, cardErrStatus(err), err.Error())
		return
	}

	api.WriteData(w, h.Logger, crd, http.StatusOK)
}

func (h *CardHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req card.CreateForm
	if ok := DecodeJSONBody(w, r, &req); !ok {
		return
	}

	var c claims.Claims
	if ok := getClaimsFromContext(w, r, &c); !ok {
		return
	}

	crd, err := h.Service.Create(c.User.ID, req)
	if err != nil {
		api.WriteError(w, cardErrStatus(err), err.Error())
		return
	}

	if ok := api.WriteData(w, h.Logger, crd, http.StatusCreated); ok {
		h.Logger.Info("new card created", "user", c.User.ID, "deck", req.DeckID, "card", crd.ID)
	}
}

func (h *CardHandler) Update(w http.ResponseWriter, r *http.Request) {
	cardID, ok := pathInt64(w, r, muxVarID)
	if !ok {
		return
	}

	var req CardUpdateRequest
	if ok := DecodeJSONBody(w, r, &req); !ok {
		return
	}

	var c claims.Claims
	if ok := getClaimsFromContext(w, r, &c); !ok {
		return
	}

	crd, err := h.Service.Update(c.User.ID, cardID, req.FrontContent, req.BackContent)
	if err != nil {
		api.WriteError(w, cardErrStatus(err), err.Error())
		return
	}

	if ok := api.WriteData(w, h.Logger, crd, http.StatusOK); ok {
		h.Logger.Info("card updated", "user", c.User.ID, "card", cardID)
	}
}

func (h *CardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	cardID, ok := pathInt64(w, r, muxVarID)
	if !ok {
		return
	}

	var c claims.Claims
	if ok := getClaimsFromContext(w, r, &c); !ok {
		return
	}

	if err := h.Service.Delete(c.User.ID, cardID); err != nil {
		api.WriteError(w, cardErrStatus(err), err.Error())
		return
	}

	if ok := api.WriteMessage(w, h.Logger, "card deleted", http.StatusOK); ok {
		h.Logger.Info("card deleted", "user", c.User.ID, "card", cardID)
	}
}

func cardErrStatus(err error) int {
	switch err.Error() {
	case "card not found", "deck not found":
		return http.StatusNotFound
	case "missing card content":
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

package client

import (
	"context"
	"fmt"

	"flashcards/pkg/deck"
)

type DeckCreateRequest struct {
	DeckName string `json:"deckName"`
}

// Decks is the deck-facing collaborator surface: cached reads, writes
// that invalidate the affected views.
type Decks struct {
	api   *Client
	cache *Cache
}

func NewDecks(api *Client, cache *Cache) *Decks {
	return &Decks{api: api, cache: cache}
}

func (d *Decks) List(ctx context.Context) ([]deck.Deck, error) {
	v, err := d.cache.Fetch(ctx, KeyDecks, func(ctx context.Context) (any, error) {
		var decks []deck.Deck
		if err := d.api.Get(ctx, "/decks", &decks); err != nil {
			return nil, err
		}
		return decks, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]deck.Deck), nil
}

func (d *Decks) Get(ctx context.Context, deckID int64) (*deck.Deck, error) {
	v, err := d.cache.Fetch(ctx, KeyDeck(deckID), func(ctx context.Context) (any, error) {
		var dk deck.Deck
		if err := d.api.Get(ctx, fmt.Sprintf("/decks/%d", deckID), &dk); err != nil {
			return nil, err
		}
		return &dk, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*deck.Deck), nil
}

func (d *Decks) Create(ctx context.Context, name string) (*deck.Deck, error) {
	var created deck.Deck
	err := d.cache.Mutate(ctx, MutationCreateDeck, 0, func(ctx context.Context) error {
		return d.api.Post(ctx, "/decks", DeckCreateRequest{DeckName: name}, &created)
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (d *Decks) Update(ctx context.Context, deckID int64, name string) (*deck.Deck, error) {
	var updated deck.Deck
	err := d.cache.Mutate(ctx, MutationUpdateDeck, deckID, func(ctx context.Context) error {
		return d.api.Put(ctx, fmt.Sprintf("/decks/%d", deckID), DeckCreateRequest{DeckName: name}, &updated)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (d *Decks) Delete(ctx context.Context, deckID int64) error {
	return d.cache.Mutate(ctx, MutationDeleteDeck, deckID, func(ctx context.Context) error {
		return d.api.Delete(ctx, fmt.Sprintf("/decks/%d", deckID), nil)
	})
}

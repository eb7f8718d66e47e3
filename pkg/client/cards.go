package client

import (
	"context"
	"fmt"

	"flashcards/pkg/card"
)

type CardUpdateRequest struct {
	FrontContent string `json:"frontContent"`
	BackContent  string `json:"backContent"`
}

// Cards is the card-facing collaborator surface, scoped by deck the way
// the views consume it; the deck id also drives invalidation of the
// deck-level views whose counts depend on card state.
type Cards struct {
	api   *Client
	cache *Cache
}

func NewCards(api *Client, cache *Cache) *Cards {
	return &Cards{api: api, cache: cache}
}

func (c *Cards) ListByDeck(ctx context.Context, deckID int64) ([]card.Card, error) {
	v, err := c.cache.Fetch(ctx, KeyCards(deckID), func(ctx context.Context) (any, error) {
		var cards []card.Card
		if err := c.api.Get(ctx, fmt.Sprintf("/cards/deck/%d", deckID), &cards); err != nil {
			return nil, err
		}
		return cards, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]card.Card), nil
}

func (c *Cards) Get(ctx context.Context, cardID int64) (*card.Card, error) {
	v, err := c.cache.Fetch(ctx, KeyCard(cardID), func(ctx context.Context) (any, error) {
		var crd card.Card
		if err := c.api.Get(ctx, fmt.Sprintf("/cards/%d", cardID), &crd); err != nil {
			return nil, err
		}
		return &crd, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*card.Card), nil
}

func (c *Cards) Create(ctx context.Context, form card.CreateForm) (*card.Card, error) {
	var created card.Card
	err := c.cache.Mutate(ctx, MutationCreateCard, form.DeckID, func(ctx context.Context) error {
		return c.api.Post(ctx, "/cards", form, &created)
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Cards) Update(ctx context.Context, deckID, cardID int64, front, back string) (*card.Card, error) {
	var updated card.Card
	err := c.cache.Mutate(ctx, MutationUpdateCard, deckID, func(ctx context.Context) error {
		return c.api.Put(ctx, fmt.Sprintf("/cards/%d", cardID), CardUpdateRequest{
			FrontContent: front,
			BackContent:  back,
		}, &updated)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Cards) Delete(ctx context.Context, deckID, cardID int64) error {
	return c.cache.Mutate(ctx, MutationDeleteCard, deckID, func(ctx context.Context) error {
		return c.api.Delete(ctx, fmt.Sprintf("/cards/%d", cardID), nil)
	})
}

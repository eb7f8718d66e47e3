package client

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cache keys, one per fetched view.
const KeyDecks = "decks"

func KeyDeck(id int64) string {
	return fmt.Sprintf("deck:%d", id)
}

func KeyCards(deckID int64) string {
	return fmt.Sprintf("cards:%d", deckID)
}

func KeyCard(id int64) string {
	return fmt.Sprintf("card:%d", id)
}

// Mutation identifies a write kind for the invalidation table.
type Mutation int

const (
	MutationCreateDeck Mutation = iota
	MutationUpdateDeck
	MutationDeleteDeck
	MutationCreateCard
	MutationUpdateCard
	MutationDeleteCard
)

// Mutations lists every kind, so tests can verify the edge table is total.
var Mutations = []Mutation{
	MutationCreateDeck,
	MutationUpdateDeck,
	MutationDeleteDeck,
	MutationCreateCard,
	MutationUpdateCard,
	MutationDeleteCard,
}

// AffectedKeys is the static invalidation edge table. Card-level writes
// stale the deck views too: the deck list and detail surface card counts
// derived server-side from card state. Deck update/delete also stale the
// deck's own views, matching the hierarchical invalidation the flat key
// layout would otherwise lose.
func AffectedKeys(m Mutation, deckID int64) []string {
	switch m {
	case MutationCreateDeck:
		return []string{KeyDecks}
	case MutationUpdateDeck:
		return []string{KeyDecks, KeyDeck(deckID)}
	case MutationDeleteDeck:
		return []string{KeyDecks, KeyDeck(deckID), KeyCards(deckID)}
	case MutationCreateCard, MutationUpdateCard, MutationDeleteCard:
		return []string{KeyCards(deckID), KeyDecks, KeyDeck(deckID)}
	default:
		return nil
	}
}

type entry struct {
	value any
	fresh bool
}

// Cache keeps the last-fetched value per key and guarantees at most one
// in-flight load per key; concurrent fetches for a loading key attach to
// the pending call instead of issuing another request.
type Cache struct {
	mu       sync.Mutex
	entries  map[string]*entry
	versions map[string]uint64
	group    singleflight.Group
}

func NewCache() *Cache {
	return &Cache{
		entries:  make(map[string]*entry),
		versions: make(map[string]uint64),
	}
}

// Fetch returns the cached value when fresh, otherwise runs loader and
// stores its result under key.
func (c *Cache) Fetch(ctx context.Context, key string, loader func(ctx context.Context) (any, error)) (any, error) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok && e.fresh {
		c.mu.Unlock()
		return e.value, nil
	}
	version := c.versions[key]
	c.mu.Unlock()

	v, err, _ := c.group.Do(key, func() (any, error) {
		// a concurrent fetch may have refreshed the entry already
		c.mu.Lock()
		if e, ok := c.entries[key]; ok && e.fresh {
			c.mu.Unlock()
			return e.value, nil
		}
		c.mu.Unlock()

		value, err := loader(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		// only cache the result if no invalidation happened while the
		// load was in flight; a refetch must never resurrect state
		// older than the mutation that staled it
		if c.versions[key] == version {
			c.entries[key] = &entry{value: value, fresh: true}
		}
		c.mu.Unlock()

		return value, nil
	})

	return v, err
}

// Mutate performs the write and, only on success, stales every key in
// the edge set for m. A failed mutation leaves all freshness untouched.
func (c *Cache) Mutate(ctx context.Context, m Mutation, deckID int64, op func(ctx context.Context) error) error {
	if err := op(ctx); err != nil {
		return err
	}

	c.Invalidate(AffectedKeys(m, deckID)...)
	return nil
}

// Invalidate marks the keys stale; invalidating an absent or already
// stale key is a no-op.
func (c *Cache) Invalidate(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, key := range keys {
		if e, ok := c.entries[key]; ok {
			e.fresh = false
		}
		c.versions[key]++
		// an in-flight load for this key predates the mutation; the
		// next fetch must not attach to it
		c.group.Forget(key)
	}
}

// Fresh reports whether key holds a value that a Fetch would return
// without re-running its loader.
func (c *Cache) Fresh(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	return ok && e.fresh
}

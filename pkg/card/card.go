package card

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"flashcards/pkg/deck"
)

const (
	StatusNew      = 0
	StatusLearning = 1
	StatusDue      = 2
)

type Card struct {
	MongoID      primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ID           int64              `json:"id" bson:"id"`
	DeckID       int64              `json:"deckId" bson:"deckId"`
	FrontContent string             `json:"frontContent" bson:"frontContent"`
	BackContent  string             `json:"backContent" bson:"backContent"`
	RemindTime   time.Time          `json:"remindTime" bson:"remindTime"`
	Status       int                `json:"status" bson:"status"`
}

// Repository also satisfies deck.CardStore so deck views can surface
// per-status counts without the deck layer importing this package.
type Repository interface {
	Create(card *Card) error
	GetByID(id int64) (*Card, error)
	GetByDeck(deckID int64) []*Card
	UpdateContent(id int64, front, back string) (*Card, error)
	Delete(id int64) error
	DeleteByDeck(deckID int64) error
	CountByStatus(deckID int64) (deck.CardCounts, error)
}

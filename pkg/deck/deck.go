package deck

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Deck struct {
	MongoID         primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ID              int64              `json:"id" bson:"id"`
	UserID          int64              `json:"userId" bson:"userId"`
	Name            string             `json:"name" bson:"name"`
	NewCardNum      int                `json:"newCardNum" bson:"-"`
	LearningCardNum int                `json:"learningCardNum" bson:"-"`
	DueCardNum      int                `json:"dueCardNum" bson:"-"`
	CreatedDate     time.Time          `json:"createdDate" bson:"createdDate"`
}

// CardCounts is the per-status card tally surfaced on deck views.
// The numbers are derived from card state at read time, never stored.
type CardCounts struct {
	New      int
	Learning int
	Due      int
}

// CardStore is the slice of the card layer the deck service needs:
// counts for list/detail views and cascade removal on deck delete.
type CardStore interface {
	CountByStatus(deckID int64) (CardCounts, error)
	DeleteByDeck(deckID int64) error
}

type Repository interface {
	Create(deck *Deck) error
	GetByID(id int64) (*Deck, error)
	GetByUser(userID int64) []*Deck
	UpdateName(id int64, name string) (*Deck, error)
	Delete(id int64) error
}

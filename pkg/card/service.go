package card

import (
	"errors"
	"time"

	"flashcards/pkg/deck"
)

type CreateForm struct {
	DeckID       int64  `json:"deckId"`
	FrontContent string `json:"frontContent"`
	BackContent  string `json:"backContent"`
}

// DeckGetter is the slice of the deck layer used for ownership checks.
type DeckGetter interface {
	GetOwned(userID, deckID int64) (*deck.Deck, error)
}

type ServiceCard interface {
	ListByDeck(userID, deckID int64) ([]*Card, error)
	Get(userID, cardID int64) (*Card, error)
	Create(userID int64, form CreateForm) (*Card, error)
	Update(userID, cardID int64, front, back string) (*Card, error)
	Delete(userID, cardID int64) error
}

type CardService struct {
	Repo  Repository
	Decks DeckGetter
}

func NewService(repo Repository, decks DeckGetter) *CardService {
	return &CardService{Repo: repo, Decks: decks}
}

func (s *CardService) ListByDeck(userID, deckID int64) ([]*Card, error) {
	if _, err := s.Decks.GetOwned(userID, deckID); err != nil {
		return nil, err
	}

	cards := s.Repo.GetByDeck(deckID)
	if cards == nil {
		cards = []*Card{}
	}
	return cards, nil
}

func (s *CardService) Get(userID, cardID int64) (*Card, error) {
	card, err := s.Repo.GetByID(cardID)
	if err != nil {
		return nil, err
	}

	if _, err := s.Decks.GetOwned(userID, card.DeckID); err != nil {
		return nil, errors.New("card not found")
	}

	return card, nil
}

func (s *CardService) Create(userID int64, form CreateForm) (*Card, error) {
	if form.FrontContent == "" || form.BackContent == "" {
		return nil, errors.New("missing card content")
	}

	if _, err := s.Decks.GetOwned(userID, form.DeckID); err != nil {
		return nil, err
	}

	card := &Card{
		DeckID:       form.DeckID,
		FrontContent: form.FrontContent,
		BackContent:  form.BackContent,
		RemindTime:   time.Now(),
		Status:       StatusNew,
	}

	if err := s.Repo.Create(card); err != nil {
		return nil, err
	}

	return card, nil
}

func (s *CardService) Update(userID, cardID int64, front, back string) (*Card, error) {
	if front == "" || back == "" {
		return nil, errors.New("missing card content")
	}

	if _, err := s.Get(userID, cardID); err != nil {
		return nil, err
	}

	return s.Repo.UpdateContent(cardID, front, back)
}

func (s *CardService) Delete(userID, cardID int64) error {
	if _, err := s.Get(userID, cardID); err != nil {
		return err
	}

	return s.Repo.Delete(cardID)
}

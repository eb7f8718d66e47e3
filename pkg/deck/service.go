package deck

import (
	"errors"
	"time"
)

type ServiceDeck interface {
	List(userID int64) ([]*Deck, error)
	Get(userID, deckID int64) (*Deck, error)
	GetOwned(userID, deckID int64) (*Deck, error)
	Create(userID int64, name string) (*Deck, error)
	Update(userID, deckID int64, name string) (*Deck, error)
	Delete(userID, deckID int64) error
}

type DeckService struct {
	Repo  Repository
	Cards CardStore
}

func NewService(repo Repository, cards CardStore) *DeckService {
	return &DeckService{Repo: repo, Cards: cards}
}

func (s *DeckService) List(userID int64) ([]*Deck, error) {
	decks := s.Repo.GetByUser(userID)

	for _, d := range decks {
		if err := s.attachCounts(d); err != nil {
			return nil, err
		}
	}

	// an empty list is a valid state, not an error
	if decks == nil {
		decks = []*Deck{}
	}
	return decks, nil
}

func (s *DeckService) Get(userID, deckID int64) (*Deck, error) {
	deck, err := s.GetOwned(userID, deckID)
	if err != nil {
		return nil, err
	}

	if err := s.attachCounts(deck); err != nil {
		return nil, err
	}
	return deck, nil
}

// GetOwned fetches a deck and enforces ownership without computing card
// counts. Foreign decks are reported as missing, not forbidden.
func (s *DeckService) GetOwned(userID, deckID int64) (*Deck, error) {
	deck, err := s.Repo.GetByID(deckID)
	if err != nil {
		return nil, err
	}
	if deck.UserID != userID {
		return nil, errors.New("deck not found")
	}
	return deck, nil
}

func (s *DeckService) Create(userID int64, name string) (*Deck, error) {
	if name == "" {
		return nil, errors.New("missing deck name")
	}

	deck := &Deck{
		UserID:      userID,
		Name:        name,
		CreatedDate: time.Now(),
	}
	if err := s.Repo.Create(deck); err != nil {
		return nil, err
	}

	return deck, nil
}

func (s *DeckService) Update(userID, deckID int64, name string) (*Deck, error) {
	if name == "" {
		return nil, errors.New("missing deck name")
	}

	if _, err := s.GetOwned(userID, deckID); err != nil {
		return nil, err
	}

	deck, err := s.Repo.UpdateName(deckID, name)
	if err != nil {
		return nil, err
	}

	if err := s.attachCounts(deck); err != nil {
		return nil, err
	}
	return deck, nil
}

func (s *DeckService) Delete(userID, deckID int64) error {
	if _, err := s.GetOwned(userID, deckID); err != nil {
		return err
	}

	if err := s.Repo.Delete(deckID); err != nil {
		return err
	}

	return s.Cards.DeleteByDeck(deckID)
}

func (s *DeckService) attachCounts(d *Deck) error {
	counts, err := s.Cards.CountByStatus(d.ID)
	if err != nil {
		return err
	}
	d.NewCardNum = counts.New
	d.LearningCardNum = counts.Learning
	d.DueCardNum = counts.Due
	return nil
}

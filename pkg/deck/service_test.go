package deck_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"flashcards/pkg/deck"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(d *deck.Deck) error {
	return m.Called(d).Error(0)
}

func (m *mockRepo) GetByID(id int64) (*deck.Deck, error) {
	args := m.Called(id)
	if d := args.Get(0); d != nil {
		return d.(*deck.Deck), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) GetByUser(userID int64) []*deck.Deck {
	args := m.Called(userID)
	if d := args.Get(0); d != nil {
		return d.([]*deck.Deck)
	}
	return nil
}

func (m *mockRepo) UpdateName(id int64, name string) (*deck.Deck, error) {
	args := m.Called(id, name)
	if d := args.Get(0); d != nil {
		return d.(*deck.Deck), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) Delete(id int64) error {
	return m.Called(id).Error(0)
}

type mockCards struct {
	mock.Mock
}

func (m *mockCards) CountByStatus(deckID int64) (deck.CardCounts, error) {
	args := m.Called(deckID)
	return args.Get(0).(deck.CardCounts), args.Error(1)
}

func (m *mockCards) DeleteByDeck(deckID int64) error {
	return m.Called(deckID).Error(0)
}

func TestDeckService_List(t *testing.T) {
	t.Run("attaches counts", func(t *testing.T) {
		repo := new(mockRepo)
		cards := new(mockCards)
		svc := deck.NewService(repo, cards)

		repo.On("GetByUser", int64(1)).Return([]*deck.Deck{{ID: 3, UserID: 1, Name: "Kanji"}})
		cards.On("CountByStatus", int64(3)).Return(deck.CardCounts{New: 2, Learning: 1, Due: 4}, nil)

		decks, err := svc.List(1)

		assert.NoError(t, err)
		assert.Len(t, decks, 1)
		assert.Equal(t, 2, decks[0].NewCardNum)
		assert.Equal(t, 1, decks[0].LearningCardNum)
		assert.Equal(t, 4, decks[0].DueCardNum)
	})

	t.Run("no decks yields empty slice", func(t *testing.T) {
		repo := new(mockRepo)
		svc := deck.NewService(repo, new(mockCards))

		repo.On("GetByUser", int64(2)).Return(nil)

		decks, err := svc.List(2)

		assert.NoError(t, err)
		assert.NotNil(t, decks)
		assert.Len(t, decks, 0)
	})

	t.Run("count error", func(t *testing.T) {
		repo := new(mockRepo)
		cards := new(mockCards)
		svc := deck.NewService(repo, cards)

		repo.On("GetByUser", int64(1)).Return([]*deck.Deck{{ID: 3, UserID: 1}})
		cards.On("CountByStatus", int64(3)).Return(deck.CardCounts{}, errors.New("aggregate failed"))

		decks, err := svc.List(1)

		assert.Error(t, err)
		assert.Nil(t, decks)
	})
}

func TestDeckService_Get(t *testing.T) {
	repo := new(mockRepo)
	cards := new(mockCards)
	svc := deck.NewService(repo, cards)

	t.Run("success", func(t *testing.T) {
		repo.On("GetByID", int64(3)).Return(&deck.Deck{ID: 3, UserID: 1, Name: "Kanji"}, nil)
		cards.On("CountByStatus", int64(3)).Return(deck.CardCounts{Due: 7}, nil)

		d, err := svc.Get(1, 3)

		assert.NoError(t, err)
		assert.Equal(t, 7, d.DueCardNum)
	})

	t.Run("foreign deck looks missing", func(t *testing.T) {
		repo.On("GetByID", int64(8)).Return(&deck.Deck{ID: 8, UserID: 99}, nil)

		d, err := svc.Get(1, 8)

		assert.Nil(t, d)
		assert.EqualError(t, err, "deck not found")
	})

	t.Run("not found", func(t *testing.T) {
		repo.On("GetByID", int64(404)).Return(nil, errors.New("deck not found"))

		d, err := svc.Get(1, 404)

		assert.Nil(t, d)
		assert.EqualError(t, err, "deck not found")
	})
}

func TestDeckService_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := new(mockRepo)
		svc := deck.NewService(repo, new(mockCards))

		repo.On("Create", mock.AnythingOfType("*deck.Deck")).Return(nil)

		d, err := svc.Create(1, "Spanish")

		assert.NoError(t, err)
		assert.Equal(t, int64(1), d.UserID)
		assert.Equal(t, "Spanish", d.Name)
		assert.False(t, d.CreatedDate.IsZero())
	})

	t.Run("missing name", func(t *testing.T) {
		svc := deck.NewService(new(mockRepo), new(mockCards))

		d, err := svc.Create(1, "")

		assert.Nil(t, d)
		assert.EqualError(t, err, "missing deck name")
	})
}

func TestDeckService_Update(t *testing.T) {
	repo := new(mockRepo)
	cards := new(mockCards)
	svc := deck.NewService(repo, cards)

	t.Run("success", func(t *testing.T) {
		repo.On("GetByID", int64(3)).Return(&deck.Deck{ID: 3, UserID: 1}, nil)
		repo.On("UpdateName", int64(3), "Renamed").Return(&deck.Deck{ID: 3, UserID: 1, Name: "Renamed"}, nil)
		cards.On("CountByStatus", int64(3)).Return(deck.CardCounts{}, nil)

		d, err := svc.Update(1, 3, "Renamed")

		assert.NoError(t, err)
		assert.Equal(t, "Renamed", d.Name)
	})

	t.Run("missing name", func(t *testing.T) {
		d, err := svc.Update(1, 3, "")

		assert.Nil(t, d)
		assert.EqualError(t, err, "missing deck name")
	})

	t.Run("foreign deck", func(t *testing.T) {
		repo.On("GetByID", int64(8)).Return(&deck.Deck{ID: 8, UserID: 99}, nil)

		d, err := svc.Update(1, 8, "Renamed")

		assert.Nil(t, d)
		assert.EqualError(t, err, "deck not found")
	})
}

func TestDeckService_Delete(t *testing.T) {
	t.Run("cascades to cards", func(t *testing.T) {
		repo := new(mockRepo)
		cards := new(mockCards)
		svc := deck.NewService(repo, cards)

		repo.On("GetByID", int64(3)).Return(&deck.Deck{ID: 3, UserID: 1}, nil)
		repo.On("Delete", int64(3)).Return(nil)
		cards.On("DeleteByDeck", int64(3)).Return(nil)

		err := svc.Delete(1, 3)

		assert.NoError(t, err)
		cards.AssertCalled(t, "DeleteByDeck", int64(3))
	})

	t.Run("foreign deck leaves cards alone", func(t *testing.T) {
		repo := new(mockRepo)
		cards := new(mockCards)
		svc := deck.NewService(repo, cards)

		repo.On("GetByID", int64(8)).Return(&deck.Deck{ID: 8, UserID: 99}, nil)

		err := svc.Delete(1, 8)

		assert.EqualError(t, err, "deck not found")
		cards.AssertNotCalled(t, "DeleteByDeck", mock.Anything)
	})

	t.Run("repo delete error", func(t *testing.T) {
		repo := new(mockRepo)
		cards := new(mockCards)
		svc := deck.NewService(repo, cards)

		repo.On("GetByID", int64(3)).Return(&deck.Deck{ID: 3, UserID: 1}, nil)
		repo.On("Delete", int64(3)).Return(errors.New("mongo down"))

		err := svc.Delete(1, 3)

		assert.Error(t, err)
		cards.AssertNotCalled(t, "DeleteByDeck", mock.Anything)
	})
}

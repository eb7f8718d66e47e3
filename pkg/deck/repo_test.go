package deck_test

import (
	"testing"

	"flashcards/pkg/deck"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func counterResponse(seq int64) bson.D {
	return bson.D{
		{Key: "ok", Value: 1},
		{Key: "value", Value: bson.D{
			{Key: "_id", Value: "decks"},
			{Key: "seq", Value: seq},
		}},
	}
}

func TestMongoRepo_Create(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("success", func(mt *mtest.T) {
		repo := deck.NewMongoRepo(mt.DB)

		mt.AddMockResponses(
			counterResponse(5),
			mtest.CreateSuccessResponse(),
		)

		d := &deck.Deck{UserID: 1, Name: "Spanish"}
		err := repo.Create(d)

		assert.NoError(t, err)
		assert.Equal(t, int64(5), d.ID)
	})

	mt.Run("counter error", func(mt *mtest.T) {
		repo := deck.NewMongoRepo(mt.DB)

		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    123,
			Message: "counter unavailable",
		}))

		err := repo.Create(&deck.Deck{Name: "Spanish"})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to allocate deck id")
	})

	mt.Run("duplicate id", func(mt *mtest.T) {
		repo := deck.NewMongoRepo(mt.DB)

		mt.AddMockResponses(
			counterResponse(5),
			mtest.CreateWriteErrorsResponse(mtest.WriteError{
				Index:   0,
				Code:    11000,
				Message: "E11000 duplicate key error collection: test.decks index: id dup key",
			}),
		)

		err := repo.Create(&deck.Deck{Name: "Spanish"})

		assert.EqualError(t, err, "deck already exists")
	})
}

func TestMongoRepo_GetByID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("success", func(mt *mtest.T) {
		repo := deck.NewMongoRepo(mt.DB)

		doc := bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "id", Value: int64(3)},
			{Key: "userId", Value: int64(1)},
			{Key: "name", Value: "Kanji"},
		}
		mt.AddMockResponses(mtest.CreateCursorResponse(1, "flashcards.decks", mtest.FirstBatch, doc))

		d, err := repo.GetByID(3)

		assert.NoError(t, err)
		assert.Equal(t, "Kanji", d.Name)
		assert.Equal(t, int64(1), d.UserID)
	})

	mt.Run("not found", func(mt *mtest.T) {
		repo := deck.NewMongoRepo(mt.DB)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "flashcards.decks", mtest.FirstBatch))

		d, err := repo.GetByID(404)

		assert.Nil(t, d)
		assert.EqualError(t, err, "deck not found")
	})

	mt.Run("mongo error", func(mt *mtest.T) {
		repo := deck.NewMongoRepo(mt.DB)

		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    123,
			Message: "some error",
		}))

		d, err := repo.GetByID(3)

		assert.Nil(t, d)
		assert.Contains(t, err.Error(), "failed to fetch deck")
	})
}

func TestMongoRepo_GetByUser(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("sorted by id", func(mt *mtest.T) {
		repo := deck.NewMongoRepo(mt.DB)

		docs := []bson.D{
			{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "id", Value: int64(9)}, {Key: "userId", Value: int64(1)}},
			{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "id", Value: int64(2)}, {Key: "userId", Value: int64(1)}},
		}
		mt.AddMockResponses(mtest.CreateCursorResponse(1, "flashcards.decks", mtest.FirstBatch, docs...))

		results := repo.GetByUser(1)

		assert.Len(t, results, 2)
		assert.Equal(t, int64(2), results[0].ID)
		assert.Equal(t, int64(9), results[1].ID)
	})

	mt.Run("mongo Find error", func(mt *mtest.T) {
		repo := deck.NewMongoRepo(mt.DB)

		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    123,
			Message: "some error",
		}))

		results := repo.GetByUser(1)

		assert.Nil(t, results)
	})
}

func TestMongoRepo_UpdateName(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("success", func(mt *mtest.T) {
		repo := deck.NewMongoRepo(mt.DB)

		updated := bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "id", Value: int64(3)},
			{Key: "name", Value: "Renamed"},
		}
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "value", Value: updated},
		})

		d, err := repo.UpdateName(3, "Renamed")

		assert.NoError(t, err)
		assert.Equal(t, "Renamed", d.Name)
	})

	mt.Run("not found", func(mt *mtest.T) {
		repo := deck.NewMongoRepo(mt.DB)

		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "value", Value: nil},
		})

		d, err := repo.UpdateName(404, "Renamed")

		assert.Nil(t, d)
		assert.EqualError(t, err, "deck not found")
	})
}

func TestMongoRepo_Delete(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("success", func(mt *mtest.T) {
		repo := deck.NewMongoRepo(mt.DB)

		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "ok", Value: 1},
		))

		err := repo.Delete(3)

		assert.NoError(t, err)
	})

	mt.Run("not found", func(mt *mtest.T) {
		repo := deck.NewMongoRepo(mt.DB)

		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "ok", Value: 1},
			bson.E{Key: "n", Value: 0},
		))

		err := repo.Delete(404)

		assert.EqualError(t, err, "deck not found")
	})

	mt.Run("delete error", func(mt *mtest.T) {
		repo := deck.NewMongoRepo(mt.DB)

		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    123,
			Message: "simulated delete error",
		}))

		err := repo.Delete(3)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "simulated delete error")
	})
}

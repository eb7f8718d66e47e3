package card

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"flashcards/pkg/deck"
)

type MongoRepo struct {
	collection *mongo.Collection
	counters   *mongo.Collection
}

func NewMongoRepo(db *mongo.Database) *MongoRepo {
	return &MongoRepo{
		collection: db.Collection("cards"),
		counters:   db.Collection("counters"),
	}
}

func (r *MongoRepo) Create(card *Card) error {
	ctx := context.TODO()

	id, err := r.nextID()
	if err != nil {
		return fmt.Errorf("failed to allocate card id: %w", err)
	}
	card.ID = id

	result, err := r.collection.InsertOne(ctx, card)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.New("card already exists")
		}
		return err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		card.MongoID = oid
	}

	return nil
}

func (r *MongoRepo) GetByID(id int64) (*Card, error) {
	ctx := context.TODO()
	var card Card

	err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&card)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errors.New("card not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch card: %w", err)
	}

	return &card, nil
}

func (r *MongoRepo) GetByDeck(deckID int64) []*Card {
	ctx := context.TODO()
	cursor, err := r.collection.Find(ctx, bson.M{"deckId": deckID})
	if err != nil {
		return nil
	}
	defer cursor.Close(ctx)

	var cards []*Card
	for cursor.Next(ctx) {
		var card Card
		if cursor.Decode(&card) == nil {
			cards = append(cards, &card)
		}
	}

	sort.Slice(cards, func(i, j int) bool {
		return cards[i].ID < cards[j].ID
	})

	return cards
}

func (r *MongoRepo) UpdateContent(id int64, front, back string) (*Card, error) {
	ctx := context.TODO()

	var updated Card
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"frontContent": front, "backContent": back}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errors.New("card not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update card: %w", err)
	}

	return &updated, nil
}

func (r *MongoRepo) Delete(id int64) error {
	ctx := context.TODO()

	res, err := r.collection.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return errors.New("card not found")
	}

	return nil
}

func (r *MongoRepo) DeleteByDeck(deckID int64) error {
	ctx := context.TODO()

	_, err := r.collection.DeleteMany(ctx, bson.M{"deckId": deckID})
	return err
}

func (r *MongoRepo) CountByStatus(deckID int64) (deck.CardCounts, error) {
	ctx := context.TODO()

	cursor, err := r.collection.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"deckId": deckID}}},
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	})
	if err != nil {
		return deck.CardCounts{}, fmt.Errorf("failed to count cards: %w", err)
	}
	defer cursor.Close(ctx)

	var counts deck.CardCounts
	for cursor.Next(ctx) {
		var row struct {
			Status int `bson:"_id"`
			Count  int `bson:"count"`
		}
		if cursor.Decode(&row) != nil {
			continue
		}
		switch row.Status {
		case StatusNew:
			counts.New = row.Count
		case StatusLearning:
			counts.Learning = row.Count
		case StatusDue:
			counts.Due = row.Count
		}
	}

	return counts, nil
}

func (r *MongoRepo) nextID() (int64, error) {
	ctx := context.TODO()

	var doc struct {
		Seq int64 `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(
		ctx,
		bson.M{"_id": "cards"},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return 0, err
	}

	return doc.Seq, nil
}

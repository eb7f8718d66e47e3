package deck

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoRepo struct {
	collection *mongo.Collection
	counters   *mongo.Collection
}

func NewMongoRepo(db *mongo.Database) *MongoRepo {
	return &MongoRepo{
		collection: db.Collection("decks"),
		counters:   db.Collection("counters"),
	}
}

func (r *MongoRepo) Create(deck *Deck) error {
	ctx := context.TODO()

	id, err := r.nextID()
	if err != nil {
		return fmt.Errorf("failed to allocate deck id: %w", err)
	}
	deck.ID = id

	result, err := r.collection.InsertOne(ctx, deck)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.New("deck already exists")
		}
		return err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		deck.MongoID = oid
	}

	return nil
}

func (r *MongoRepo) GetByID(id int64) (*Deck, error) {
	ctx := context.TODO()
	var deck Deck

	err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&deck)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errors.New("deck not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch deck: %w", err)
	}

	return &deck, nil
}

func (r *MongoRepo) GetByUser(userID int64) []*Deck {
	ctx := context.TODO()
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil
	}
	defer cursor.Close(ctx)

	var decks []*Deck
	for cursor.Next(ctx) {
		var deck Deck
		if cursor.Decode(&deck) == nil {
			decks = append(decks, &deck)
		}
	}

	sort.Slice(decks, func(i, j int) bool {
		return decks[i].ID < decks[j].ID
	})

	return decks
}

func (r *MongoRepo) UpdateName(id int64, name string) (*Deck, error) {
	ctx := context.TODO()

	var updated Deck
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"name": name}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errors.New("deck not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update deck: %w", err)
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
		return errors.New("deck not found")
	}

	return nil
}

// nextID hands out monotonically increasing deck identifiers from the
// shared counters collection.
func (r *MongoRepo) nextID() (int64, error) {
	ctx := context.TODO()

	var doc struct {
		Seq int64 `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(
		ctx,
		bson.M{"_id": "decks"},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return 0, err
	}

	return doc.Seq, nil
}

package mongo

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func LoadDB() *mongo.Database {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(os.Getenv("MONGO_URI")))
	if err != nil {
		log.Fatal("Cannot connect to Mongo:", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatal("Cannot ping Mongo:", err)
	}

	return client.Database(os.Getenv("MONGO_DB_NAME"))
}

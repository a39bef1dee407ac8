package persistence

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NewMongoClient creates a new MongoDB client and returns it together
// with the named database handle
func NewMongoClient(ctx context.Context, uri, dbName string) (*mongo.Client, *mongo.Database, error) {
	clientOptions := options.Client().ApplyURI(uri)

	// Set connection timeout
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return nil, nil, err
	}

	// Ping to check connection
	if err := client.Ping(connectCtx, nil); err != nil {
		return nil, nil, err
	}

	return client, client.Database(dbName), nil
}

// EnsureTicketIndexes provisions the unique ticketNumber index on every
// exhibition collection. It is an explicit migration step run once from
// main before the server starts serving, not a per-request check:
// CreateOne is a no-op when an identical index already exists, so the
// step is idempotent and safe to re-run on every startup.
func EnsureTicketIndexes(ctx context.Context, db *mongo.Database, exhibitions []string) error {
	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "ticketNumber", Value: 1}},
		Options: options.Index().SetUnique(true),
	}

	for _, exhibition := range exhibitions {
		if _, err := db.Collection(exhibition).Indexes().CreateOne(ctx, indexModel); err != nil {
			return err
		}
	}
	return nil
}

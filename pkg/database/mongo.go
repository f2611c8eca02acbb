// Package database holds the application-lifetime MongoDB handle.
//
// The client is constructed once at startup and passed by reference to the
// repositories; it is never recreated per request. The mongo driver pools
// connections internally and is safe for concurrent use.
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vendora/vendora/config"
)

// DB wraps the mongo client and the selected database.
type DB struct {
	client   *mongo.Client
	database *mongo.Database
}

// Connect opens the MongoDB connection and verifies it with a ping.
// Returns an error instead of calling log.Fatal so the caller can
// shut down gracefully.
func Connect(ctx context.Context) (*DB, error) {
	uri := config.MongoURI()
	name := config.MongoDatabase()

	opts := options.Client().ApplyURI(uri).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second)

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, fmt.Errorf("database: connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("database: ping: %w", err)
	}

	return &DB{client: client, database: client.Database(name)}, nil
}

// Close disconnects the client. Call once on shutdown.
func (d *DB) Close(ctx context.Context) error {
	if err := d.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("database: disconnect: %w", err)
	}
	return nil
}

// Collection returns a handle to a named collection.
func (d *DB) Collection(name string) *mongo.Collection {
	return d.database.Collection(name)
}

// Named collections, mirroring the stored document types.

func (d *DB) Users() *mongo.Collection      { return d.Collection("Users") }
func (d *DB) Vendors() *mongo.Collection    { return d.Collection("Vendors") }
func (d *DB) Categories() *mongo.Collection { return d.Collection("Categories") }
func (d *DB) Products() *mongo.Collection   { return d.Collection("Products") }
func (d *DB) Orders() *mongo.Collection     { return d.Collection("Orders") }
func (d *DB) Blogs() *mongo.Collection      { return d.Collection("Blogs") }

// EnsureIndexes creates the indexes the API depends on: a unique index on
// user email and a text index over product name/description for search.
// Safe to call on every startup; existing indexes are left alone.
func (d *DB) EnsureIndexes(ctx context.Context) error {
	_, err := d.Users().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("database: users email index: %w", err)
	}

	_, err = d.Products().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "name", Value: "text"},
			{Key: "description", Value: "text"},
		},
	})
	if err != nil {
		return fmt.Errorf("database: products text index: %w", err)
	}

	return nil
}

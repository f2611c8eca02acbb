// Package repositories provides a generic document repository over MongoDB
// collections, parameterised by entity type.
package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Repository is a uniform CRUD gateway for one collection. Updates are
// full-document replaces keyed by id: fields omitted in the replacement
// are lost, and concurrent writers race with last-write-wins semantics.
type Repository[T any] struct {
	col *mongo.Collection
}

// New builds a Repository for the given collection.
func New[T any](col *mongo.Collection) *Repository[T] {
	return &Repository[T]{col: col}
}

// All returns every document in the collection.
func (r *Repository[T]) All(ctx context.Context) ([]T, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("repository: find all: %w", err)
	}
	var out []T
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("repository: decode all: %w", err)
	}
	return out, nil
}

// Get returns the document with the given hex id, or (nil, nil) when the
// id is malformed or no document exists. Absence is not an error.
func (r *Repository[T]) Get(ctx context.Context, id string) (*T, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var out T
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("repository: get %s: %w", id, err)
	}
	return &out, nil
}

// Find returns all documents matching the bson filter.
func (r *Repository[T]) Find(ctx context.Context, filter bson.M) ([]T, error) {
	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("repository: find: %w", err)
	}
	var out []T
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("repository: decode find: %w", err)
	}
	return out, nil
}

// Create inserts the entity and returns the id the store assigned.
func (r *Repository[T]) Create(ctx context.Context, entity *T) (primitive.ObjectID, error) {
	res, err := r.col.InsertOne(ctx, entity)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("repository: create: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("repository: create: unexpected inserted id %T", res.InsertedID)
	}
	return oid, nil
}

// Update replaces the whole document keyed by id. No-op when the id is
// malformed or absent; existence checks belong to the services.
func (r *Repository[T]) Update(ctx context.Context, id string, entity *T) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	if _, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, entity); err != nil {
		return fmt.Errorf("repository: update %s: %w", id, err)
	}
	return nil
}

// Delete removes the document keyed by id.
func (r *Repository[T]) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	if _, err := r.col.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("repository: delete %s: %w", id, err)
	}
	return nil
}

package catalog

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/deckgrid/deckgrid/pkg/errors"
)

// MongoStore persists schemes in a MongoDB collection. Scheme names are the
// document IDs, so names are unique and Put is an upsert.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore wraps a collection as a scheme store.
func NewMongoStore(coll *mongo.Collection) *MongoStore {
	return &MongoStore{coll: coll}
}

// Get retrieves a scheme by name.
func (s *MongoStore) Get(ctx context.Context, name string) (Scheme, error) {
	var scheme Scheme
	err := s.coll.FindOne(ctx, bson.M{"_id": name}).Decode(&scheme)
	if err == mongo.ErrNoDocuments {
		return Scheme{}, errors.New(errors.ErrCodeSchemeNotFound,
			"color scheme %q not found", name)
	}
	if err != nil {
		return Scheme{}, errors.Wrap(errors.ErrCodeInternal, err,
			"loading color scheme %q", name)
	}
	return scheme, nil
}

// List returns all schemes sorted by name.
func (s *MongoStore) List(ctx context.Context) ([]Scheme, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "listing color schemes")
	}
	defer cursor.Close(ctx)

	var schemes []Scheme
	if err := cursor.All(ctx, &schemes); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decoding color schemes")
	}
	return schemes, nil
}

// Put stores a scheme, replacing any scheme with the same name.
func (s *MongoStore) Put(ctx context.Context, scheme Scheme) error {
	if scheme.Name == "" {
		return errors.New(errors.ErrCodeInvalidInput, "scheme has no name")
	}
	opts := options.Replace().SetUpsert(true)
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": scheme.Name}, scheme, opts)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err,
			"storing color scheme %q", scheme.Name)
	}
	return nil
}

// SeedBuiltin inserts any stock schemes the collection is missing. Existing
// documents are left untouched so operator edits survive restarts.
func (s *MongoStore) SeedBuiltin(ctx context.Context) error {
	for _, scheme := range Builtin() {
		opts := options.Update().SetUpsert(true)
		update := bson.M{"$setOnInsert": scheme}
		if _, err := s.coll.UpdateOne(ctx, bson.M{"_id": scheme.Name}, update, opts); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err,
				"seeding color scheme %q", scheme.Name)
		}
	}
	return nil
}

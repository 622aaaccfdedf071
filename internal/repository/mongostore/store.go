// internal/repository/mongostore/store.go
package mongostore

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/javajoker/storefront/internal/config"
	"github.com/javajoker/storefront/internal/repository"
)

const (
	productsCollection   = "products"
	usersCollection      = "users"
	categoriesCollection = "categories"
	ordersCollection     = "orders"
)

// Open connects to MongoDB, makes sure the indexes exist and returns the
// repositories backed by cfg.MongoDatabase.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*repository.Store, error) {
	opts := options.Client().
		ApplyURI(cfg.MongoURI).
		SetRegistry(Registry()).
		SetMaxPoolSize(uint64(cfg.MaxOpenConns))

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	db := client.Database(cfg.MongoDatabase)
	if err := EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	logrus.WithField("database", cfg.MongoDatabase).Info("MongoDB connection established successfully")
	return New(db, client.Disconnect), nil
}

func New(db *mongo.Database, closer func(context.Context) error) *repository.Store {
	return repository.NewStore(
		&productRepo{coll: db.Collection(productsCollection)},
		&userRepo{coll: db.Collection(usersCollection)},
		&categoryRepo{coll: db.Collection(categoriesCollection)},
		&orderRepo{coll: db.Collection(ordersCollection)},
		closer,
	)
}

func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		categoriesCollection: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		productsCollection: {
			{Keys: bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}},
			{Keys: bson.D{{Key: "category", Value: 1}}},
			{Keys: bson.D{{Key: "rating", Value: -1}, {Key: "_id", Value: 1}}},
		},
		ordersCollection: {
			{Keys: bson.D{{Key: "user", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
	}

	for name, models := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create %s indexes: %w", name, err)
		}
	}
	return nil
}

// translate maps driver errors onto the repository sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return repository.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return repository.ErrDuplicate
	default:
		return err
	}
}

func byID(id string) bson.D {
	return bson.D{{Key: "_id", Value: id}}
}

// guardFailed resolves a conditional update that matched nothing: either the
// document is missing or the guard rejected it.
func guardFailed(ctx context.Context, coll *mongo.Collection, id string, onExists error) error {
	n, err := coll.CountDocuments(ctx, byID(id), options.Count().SetLimit(1))
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return onExists
}

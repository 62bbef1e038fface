package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tidings-dev/tidings/internal/config"
	"github.com/tidings-dev/tidings/internal/store/mongostore"
)

func ConnectMongo(ctx context.Context, cfg config.DBConfig) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout(cfg))
	defer cancel()

	opts := options.Client().ApplyURI(cfg.ConnectionString)
	if cfg.MaxOpenConns > 0 {
		opts.SetMaxPoolSize(uint64(cfg.MaxOpenConns))
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client.Database(cfg.Name), nil
}

type mongoMigration struct {
	ID string
	Up func(ctx context.Context, database *mongo.Database) error
}

var mongoMigrations = []mongoMigration{
	{
		ID: "0001_initial",
		Up: func(ctx context.Context, database *mongo.Database) error {
			indexes := map[string][]mongo.IndexModel{
				mongostore.UsersCollection: {
					{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
				},
				mongostore.OrganizationsCollection: {
					{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
				},
				mongostore.AnnouncementsCollection: {
					{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
					{Keys: bson.D{{Key: "type", Value: 1}}},
				},
				mongostore.CitiesCollection: {
					{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
					{Keys: bson.D{{Key: "name", Value: 1}}},
				},
			}

			for collection, models := range indexes {
				if _, err := database.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
					return fmt.Errorf("indexes on %s: %w", collection, err)
				}
			}
			return nil
		},
	},
}

type mongoMigrationRecord struct {
	ID        string    `bson:"_id"`
	AppliedAt time.Time `bson:"appliedAt"`
}

// MigrateMongo applies the pending migrations and records them in the
// schema_migrations collection.
func MigrateMongo(ctx context.Context, database *mongo.Database) error {
	applied := database.Collection("schema_migrations")

	for _, m := range mongoMigrations {
		err := applied.FindOne(ctx, bson.M{"_id": m.ID}).Err()

		if err == nil {
			continue
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("check migration %s: %w", m.ID, err)
		}

		if err := m.Up(ctx, database); err != nil {
			return fmt.Errorf("apply migration %s: %w", m.ID, err)
		}

		record := mongoMigrationRecord{ID: m.ID, AppliedAt: time.Now().UTC()}
		if _, err := applied.InsertOne(ctx, record); err != nil {
			return fmt.Errorf("record migration %s: %w", m.ID, err)
		}
	}

	return nil
}

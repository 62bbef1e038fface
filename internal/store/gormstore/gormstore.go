package gormstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm"

	"github.com/tidings-dev/tidings/internal/store"
)

// New wires the gorm repositories into a store.Store. Closing the store
// closes the underlying connection pool.
func New(db *gorm.DB) *store.Store {
	return &store.Store{
		Users:         &UserRepository{db: db},
		Organizations: &OrganizationRepository{db: db},
		Announcements: &AnnouncementRepository{db: db},
		Cities:        &CityRepository{db: db},
		Ping: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		Close: func(context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}
}

func newID() string {
	return primitive.NewObjectID().Hex()
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func translate(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return store.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return store.ErrDuplicate
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

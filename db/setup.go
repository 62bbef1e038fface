package db

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tidings-dev/tidings/internal/config"
	"github.com/tidings-dev/tidings/internal/models"
	"github.com/tidings-dev/tidings/internal/store"
	"github.com/tidings-dev/tidings/internal/store/gormstore"
	"github.com/tidings-dev/tidings/internal/store/mongostore"
	"github.com/tidings-dev/tidings/pkg/logger"
)

// Connection is an opened store plus the migration routine of its backend.
type Connection struct {
	Store   *store.Store
	migrate func(ctx context.Context) error
}

func (c *Connection) Migrate(ctx context.Context) error {
	return c.migrate(ctx)
}

// Connect opens the backend selected by cfg.Driver and verifies it answers.
// Failures are returned to the caller; there is no retry.
func Connect(ctx context.Context, cfg config.DBConfig, log logger.Logger) (*Connection, error) {
	switch cfg.Driver {
	case config.DriverMongo:
		database, err := ConnectMongo(ctx, cfg)
		if err != nil {
			return nil, err
		}
		log.Info("db: connected", "driver", cfg.Driver, "database", cfg.Name)

		return &Connection{
			Store:   mongostore.New(database),
			migrate: func(ctx context.Context) error { return MigrateMongo(ctx, database) },
		}, nil
	default:
		gormDB, err := Open(ctx, cfg)
		if err != nil {
			return nil, err
		}
		log.Info("db: connected", "driver", cfg.Driver)

		return &Connection{
			Store:   gormstore.New(gormDB),
			migrate: func(ctx context.Context) error { return Migrate(gormDB.WithContext(ctx)) },
		}, nil
	}
}

// Open returns a gorm handle for the postgres or sqlite driver with the pool
// configured from cfg.
func Open(ctx context.Context, cfg config.DBConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.ConnectionString)
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.ConnectionString)
	default:
		return nil, fmt.Errorf("open db: unsupported driver %q", cfg.Driver)
	}

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("db handle: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout(cfg))
	defer cancel()

	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	return gormDB, nil
}

// SchemaMigration records one applied migration.
type SchemaMigration struct {
	ID        string    `gorm:"primaryKey;size:64"`
	AppliedAt time.Time `gorm:"not null"`
}

func (SchemaMigration) TableName() string {
	return "schema_migrations"
}

type migration struct {
	ID string
	Up func(tx *gorm.DB) error
}

// migrations run in order. Append new entries, never edit applied ones.
var migrations = []migration{
	{
		ID: "0001_initial",
		Up: func(tx *gorm.DB) error {
			return tx.AutoMigrate(
				&models.User{},
				&models.Organization{},
				&models.Announcement{},
				&models.City{},
			)
		},
	},
}

func Migrate(gormDB *gorm.DB) error {
	if err := gormDB.AutoMigrate(&SchemaMigration{}); err != nil {
		return fmt.Errorf("ensure schema_migrations: %w", err)
	}

	for _, m := range migrations {
		var count int64

		if err := gormDB.Model(&SchemaMigration{}).Where("id = ?", m.ID).Count(&count).Error; err != nil {
			return fmt.Errorf("check migration %s: %w", m.ID, err)
		}
		if count > 0 {
			continue
		}

		if err := m.Up(gormDB); err != nil {
			return fmt.Errorf("apply migration %s: %w", m.ID, err)
		}

		record := SchemaMigration{ID: m.ID, AppliedAt: time.Now().UTC()}
		if err := gormDB.Create(&record).Error; err != nil {
			return fmt.Errorf("record migration %s: %w", m.ID, err)
		}
	}

	return nil
}

func connectTimeout(cfg config.DBConfig) time.Duration {
	if cfg.ConnectTimeout > 0 {
		return cfg.ConnectTimeout
	}
	return 10 * time.Second
}

package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/tidings-dev/tidings/db"
	"github.com/tidings-dev/tidings/internal/config"
	"github.com/tidings-dev/tidings/internal/models"
	"github.com/tidings-dev/tidings/internal/validation"
	"github.com/tidings-dev/tidings/pkg/logger"
)

func main() {
	citiesPath := flag.String("cities", "", "path to a JSON array of cities to upsert by id")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall timeout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Options{}).Critical("config: load failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, Development: cfg.IsDevelopment()})

	if err := run(cfg, log, *citiesPath, *timeout); err != nil {
		log.Critical("migrate: failed", "err", err)
		os.Exit(1)
	}

	log.Info("migrate: done")
}

func run(cfg config.Config, log logger.Logger, citiesPath string, timeout time.Duration) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	conn, err := db.Connect(ctx, cfg.DB, log)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, conn.Store.Close(context.Background()))
	}()

	if err := conn.Migrate(ctx); err != nil {
		return err
	}
	log.Info("migrate: schema up to date")

	if citiesPath == "" {
		return nil
	}

	cities, err := readCities(citiesPath)
	if err != nil {
		return err
	}

	if err := conn.Store.Cities.Upsert(ctx, cities); err != nil {
		return err
	}
	log.Info("migrate: cities seeded", "count", len(cities))

	return nil
}

func readCities(path string) ([]models.City, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cities: %w", err)
	}

	var cities []models.City
	if err := json.Unmarshal(raw, &cities); err != nil {
		return nil, fmt.Errorf("parse cities: %w", err)
	}

	seen := make(map[int]struct{}, len(cities))
	for i := range cities {
		if err := validation.Validate(cities[i]); err != nil {
			return nil, fmt.Errorf("city #%d: %w", i, err)
		}
		if _, dup := seen[cities[i].ID]; dup {
			return nil, fmt.Errorf("city #%d: duplicate id %d", i, cities[i].ID)
		}
		seen[cities[i].ID] = struct{}{}
	}

	return cities, nil
}

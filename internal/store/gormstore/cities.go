package gormstore

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tidings-dev/tidings/internal/models"
	"github.com/tidings-dev/tidings/internal/store"
)

type CityRepository struct {
	db *gorm.DB
}

func (r *CityRepository) List(ctx context.Context, sorting store.CitySorting) ([]models.City, error) {
	order := "name ASC, id ASC"
	if sorting == store.CitySortID {
		order = "id ASC"
	}

	cities := []models.City{}

	if err := r.db.WithContext(ctx).Order(order).Find(&cities).Error; err != nil {
		return nil, translate("list cities", err)
	}

	return cities, nil
}

func (r *CityRepository) FindByID(ctx context.Context, id int) (*models.City, error) {
	var city models.City

	err := r.db.WithContext(ctx).Where("id = ?", id).First(&city).Error

	if err != nil {
		return nil, translate("find city", err)
	}

	return &city, nil
}

func (r *CityRepository) Upsert(ctx context.Context, cities []models.City) error {
	if len(cities) == 0 {
		return nil
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "municipality"}),
		}).
		CreateInBatches(cities, 500).Error

	return translate("upsert cities", err)
}

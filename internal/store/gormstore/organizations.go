package gormstore

import (
	"context"

	"gorm.io/gorm"

	"github.com/tidings-dev/tidings/internal/models"
)

type OrganizationRepository struct {
	db *gorm.DB
}

func (r *OrganizationRepository) Create(ctx context.Context, org *models.Organization) error {
	org.ID = newID()
	org.CreatedAt = now()
	org.UpdatedAt = org.CreatedAt

	return translate("create organization", r.db.WithContext(ctx).Create(org).Error)
}

func (r *OrganizationRepository) FindByEmail(ctx context.Context, email string) (*models.Organization, error) {
	var org models.Organization

	err := r.db.WithContext(ctx).Where("email = ?", email).First(&org).Error

	if err != nil {
		return nil, translate("find organization by email", err)
	}

	return &org, nil
}

func (r *OrganizationRepository) List(ctx context.Context) ([]models.Organization, error) {
	orgs := []models.Organization{}

	if err := r.db.WithContext(ctx).Order("name ASC, id ASC").Find(&orgs).Error; err != nil {
		return nil, translate("list organizations", err)
	}

	return orgs, nil
}

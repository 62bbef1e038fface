package gormstore

import (
	"context"

	"gorm.io/gorm"

	"github.com/tidings-dev/tidings/internal/models"
	"github.com/tidings-dev/tidings/internal/store"
)

var announcementOrder = map[store.Sorting]string{
	store.SortNewest:   "created_at DESC, id DESC",
	store.SortOldest:   "created_at ASC, id ASC",
	store.SortNameAsc:  "last_name ASC, first_name ASC, id ASC",
	store.SortNameDesc: "last_name DESC, first_name DESC, id DESC",
}

type AnnouncementRepository struct {
	db *gorm.DB
}

func (r *AnnouncementRepository) List(ctx context.Context, filter store.AnnouncementFilter) ([]models.Announcement, error) {
	query := r.db.WithContext(ctx).Model(&models.Announcement{})

	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}

	order, ok := announcementOrder[filter.Sorting]
	if !ok {
		order = announcementOrder[store.SortNewest]
	}

	announcements := []models.Announcement{}

	if err := query.Order(order).Find(&announcements).Error; err != nil {
		return nil, translate("list announcements", err)
	}

	for i := range announcements {
		announcements[i].Normalize()
	}

	return announcements, nil
}

func (r *AnnouncementRepository) FindByID(ctx context.Context, id string) (*models.Announcement, error) {
	var announcement models.Announcement

	err := r.db.WithContext(ctx).Where("id = ?", id).First(&announcement).Error

	if err != nil {
		return nil, translate("find announcement", err)
	}

	announcement.Normalize()
	return &announcement, nil
}

func (r *AnnouncementRepository) Create(ctx context.Context, announcement *models.Announcement) error {
	announcement.ID = newID()
	announcement.SchemaVersion = models.AnnouncementSchemaVersion
	announcement.CreatedAt = now()
	announcement.UpdatedAt = announcement.CreatedAt
	announcement.Normalize()

	return translate("create announcement", r.db.WithContext(ctx).Create(announcement).Error)
}

func (r *AnnouncementRepository) Replace(ctx context.Context, announcement *models.Announcement) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Announcement

		err := tx.Where("id = ? AND user_id = ?", announcement.ID, announcement.UserID).First(&existing).Error

		if err != nil {
			return err
		}

		announcement.SchemaVersion = models.AnnouncementSchemaVersion
		announcement.CreatedAt = existing.CreatedAt
		announcement.UpdatedAt = now()
		announcement.Normalize()

		return tx.Save(announcement).Error
	})

	return translate("replace announcement", err)
}

func (r *AnnouncementRepository) Delete(ctx context.Context, id, userID string) (*models.Announcement, error) {
	var deleted models.Announcement

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("id = ? AND user_id = ?", id, userID).First(&deleted).Error

		if err != nil {
			return err
		}

		result := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Announcement{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})

	if err != nil {
		return nil, translate("delete announcement", err)
	}

	deleted.Normalize()
	return &deleted, nil
}

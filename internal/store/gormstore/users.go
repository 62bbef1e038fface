package gormstore

import (
	"context"

	"gorm.io/gorm"

	"github.com/tidings-dev/tidings/internal/models"
)

type UserRepository struct {
	db *gorm.DB
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	user.ID = newID()
	user.CreatedAt = now()
	user.UpdatedAt = user.CreatedAt

	return translate("create user", r.db.WithContext(ctx).Create(user).Error)
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User

	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error

	if err != nil {
		return nil, translate("find user", err)
	}

	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User

	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error

	if err != nil {
		return nil, translate("find user by email", err)
	}

	return &user, nil
}

func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	user.UpdatedAt = now()

	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"email":      user.Email,
			"name":       user.Name,
			"password":   user.Password,
			"updated_at": user.UpdatedAt,
		})

	if result.Error != nil {
		return translate("update user", result.Error)
	}
	if result.RowsAffected == 0 {
		return translate("update user", gorm.ErrRecordNotFound)
	}

	return nil
}

package repository

import (
	"context"
	"errors"
	"time"

	"github.com/filegram/panel/internal/app/model"
	"gorm.io/gorm"
)

type gormAdminRepository struct {
	db *gorm.DB
}

func newGormAdminRepository(db *gorm.DB) AdminRepository {
	return &gormAdminRepository{db: db}
}

func (r *gormAdminRepository) List(ctx context.Context) ([]model.BotAdmin, error) {
	var admins []model.BotAdmin
	if err := r.db.WithContext(ctx).Order("created_at").Find(&admins).Error; err != nil {
		return nil, err
	}
	return admins, nil
}

func (r *gormAdminRepository) GetByUserID(ctx context.Context, userID int64) (*model.BotAdmin, error) {
	var admin model.BotAdmin
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return &admin, nil
}

func (r *gormAdminRepository) Create(ctx context.Context, admin *model.BotAdmin) error {
	// Existence check first so a duplicate never touches the stored record.
	if _, err := r.GetByUserID(ctx, admin.UserID); err == nil {
		return ErrAdminExists
	} else if !errors.Is(err, ErrAdminNotFound) {
		return err
	}
	return r.db.WithContext(ctx).Create(admin).Error
}

func (r *gormAdminRepository) Update(ctx context.Context, userID int64, upd AdminUpdate) error {
	updates := map[string]interface{}{"updated_at": time.Now().UTC()}
	if upd.Name != nil {
		updates["name"] = *upd.Name
	}
	if upd.Permissions != nil {
		updates["permissions"] = upd.Permissions
	}

	result := r.db.WithContext(ctx).
		Model(&model.BotAdmin{}).
		Where("user_id = ?", userID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAdminNotFound
	}
	return nil
}

func (r *gormAdminRepository) Delete(ctx context.Context, userID int64) error {
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.BotAdmin{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAdminNotFound
	}
	return nil
}

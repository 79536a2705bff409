package repository

import (
	"context"
	"strconv"
	"time"

	"github.com/filegram/panel/internal/app/model"
	"gorm.io/gorm"
)

type gormUserRepository struct {
	db *gorm.DB
}

func newGormUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{db: db}
}

func (r *gormUserRepository) List(ctx context.Context, q UserQuery) ([]model.User, int64, error) {
	page, limit := pageWindow(q.Page, q.Limit)

	tx := r.db.WithContext(ctx).Model(&model.User{})

	if q.Search != "" {
		if id, err := strconv.ParseInt(q.Search, 10, 64); err == nil {
			tx = tx.Where("name ILIKE ? OR user_id = ?", "%"+q.Search+"%", id)
		} else {
			tx = tx.Where("name ILIKE ?", "%"+q.Search+"%")
		}
	}

	switch q.Filter {
	case model.UserFilterActive:
		tx = tx.Where("banned = false")
	case model.UserFilterBanned:
		tx = tx.Where("banned = true")
	case model.UserFilterPremium:
		tx = tx.Where("is_premium = true")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []model.User
	if err := tx.
		Order("joined_date DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *gormUserRepository) SetBanned(ctx context.Context, userID int64, banned bool) error {
	updates := map[string]interface{}{"banned": banned}
	if banned {
		updates["banned_at"] = time.Now().UTC()
	} else {
		updates["banned_at"] = nil
	}

	result := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("user_id = ?", userID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *gormUserRepository) CountActive(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("banned = false").
		Count(&total).Error
	return total, err
}

func (r *gormUserRepository) ClearSpamFlag(ctx context.Context, userID int64) error {
	result := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{"spam_flagged": false, "spam_count": 0})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *gormUserRepository) ListFlagged(ctx context.Context, page, limit int) ([]model.User, int64, error) {
	page, limit = pageWindow(page, limit)

	tx := r.db.WithContext(ctx).Model(&model.User{}).Where("spam_flagged = true")

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []model.User
	if err := tx.
		Order("spam_count DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *gormUserRepository) ListHighActivity(ctx context.Context, since time.Time, limit int) ([]model.User, error) {
	if limit <= 0 {
		limit = 10
	}

	var users []model.User
	err := r.db.WithContext(ctx).
		Where("last_active >= ?", since).
		Order("message_count DESC").
		Limit(limit).
		Find(&users).Error
	return users, err
}

func (r *gormUserRepository) RecentSpamLogs(ctx context.Context, since time.Time, limit int) ([]model.SpamLogEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	// The bot may not have created spam_logs yet; treat errors as empty.
	var logs []model.SpamLogEntry
	err := r.db.WithContext(ctx).
		Where("timestamp >= ?", since).
		Order("message_count DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return []model.SpamLogEntry{}, nil
	}
	return logs, nil
}

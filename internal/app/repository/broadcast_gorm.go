package repository

import (
	"context"
	"errors"
	"time"

	"github.com/filegram/panel/internal/app/model"
	"gorm.io/gorm"
)

type gormBroadcastRepository struct {
	db *gorm.DB
}

func newGormBroadcastRepository(db *gorm.DB) BroadcastRepository {
	return &gormBroadcastRepository{db: db}
}

func (r *gormBroadcastRepository) List(ctx context.Context, page, limit int) ([]model.BroadcastJob, int64, error) {
	page, limit = pageWindow(page, limit)

	tx := r.db.WithContext(ctx).Model(&model.BroadcastJob{})

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var jobs []model.BroadcastJob
	if err := tx.
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&jobs).Error; err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

func (r *gormBroadcastRepository) Get(ctx context.Context, id string) (*model.BroadcastJob, error) {
	var job model.BroadcastJob
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBroadcastNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *gormBroadcastRepository) Create(ctx context.Context, job *model.BroadcastJob) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *gormBroadcastRepository) CancelPending(ctx context.Context, id string) error {
	// Guard in the WHERE clause so a job the bot already picked up is
	// never modified.
	result := r.db.WithContext(ctx).
		Model(&model.BroadcastJob{}).
		Where("id = ? AND status = ?", id, model.BroadcastPending).
		Updates(map[string]interface{}{
			"status":       model.BroadcastCancelled,
			"cancelled_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := r.Get(ctx, id); errors.Is(err, ErrBroadcastNotFound) {
			return ErrBroadcastNotFound
		}
		return ErrBroadcastNotPending
	}
	return nil
}

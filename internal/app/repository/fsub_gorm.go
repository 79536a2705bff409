package repository

import (
	"context"
	"errors"

	"github.com/filegram/panel/internal/app/model"
	"gorm.io/gorm"
)

type gormFsubRepository struct {
	db *gorm.DB
}

func newGormFsubRepository(db *gorm.DB) FsubRepository {
	return &gormFsubRepository{db: db}
}

func (r *gormFsubRepository) List(ctx context.Context) ([]model.FsubChannel, error) {
	var channels []model.FsubChannel
	if err := r.db.WithContext(ctx).Order("added_at").Find(&channels).Error; err != nil {
		return nil, err
	}
	return channels, nil
}

func (r *gormFsubRepository) Add(ctx context.Context, ch *model.FsubChannel) error {
	var existing model.FsubChannel
	err := r.db.WithContext(ctx).Where("channel_id = ?", ch.ChannelID).First(&existing).Error
	if err == nil {
		return ErrChannelExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.db.WithContext(ctx).Create(ch).Error
}

func (r *gormFsubRepository) Remove(ctx context.Context, channelID int64) error {
	result := r.db.WithContext(ctx).Where("channel_id = ?", channelID).Delete(&model.FsubChannel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrChannelNotFound
	}
	return nil
}

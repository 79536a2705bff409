package repository

import (
	"context"
	"errors"
	"time"

	"github.com/filegram/panel/internal/app/model"
	"gorm.io/gorm"
)

type gormStatsRepository struct {
	db *gorm.DB
}

func newGormStatsRepository(db *gorm.DB) StatsRepository {
	return &gormStatsRepository{db: db}
}

func (r *gormStatsRepository) Collect(ctx context.Context) (*model.Stats, error) {
	stats := &model.Stats{}
	users := r.db.WithContext(ctx).Model(&model.User{})

	if err := users.Session(&gorm.Session{}).Count(&stats.Users.Total).Error; err != nil {
		return nil, err
	}
	if err := users.Session(&gorm.Session{}).Where("banned = true").Count(&stats.Users.Banned).Error; err != nil {
		return nil, err
	}
	if err := users.Session(&gorm.Session{}).Where("is_premium = true").Count(&stats.Users.Premium).Error; err != nil {
		return nil, err
	}

	weekAgo := time.Now().UTC().AddDate(0, 0, -7)
	if err := users.Session(&gorm.Session{}).Where("joined_date >= ?", weekAgo).Count(&stats.Users.RecentWeek).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Model(&model.File{}).Count(&stats.Files.Total).Error; err != nil {
		return nil, err
	}

	var totalSize *int64
	if err := r.db.WithContext(ctx).Model(&model.File{}).
		Select("SUM(file_size)").Scan(&totalSize).Error; err != nil {
		return nil, err
	}
	if totalSize != nil {
		stats.Files.TotalStorageBytes = *totalSize
	}
	return stats, nil
}

type gormStatusRepository struct {
	db *gorm.DB
}

func newGormStatusRepository(db *gorm.DB) StatusRepository {
	return &gormStatusRepository{db: db}
}

func (r *gormStatusRepository) Get(ctx context.Context) (*model.BotStatus, error) {
	var status model.BotStatus
	err := r.db.WithContext(ctx).Where("id = ?", model.StatusID).First(&status).Error
	if err == nil {
		return &status, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// Fall back to whatever the settings document carries.
	var rec model.SettingsRecord
	err = r.db.WithContext(ctx).Where("id = ?", model.SettingsID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return statusFromSettings(rec.Data), nil
}

package repository

import (
	"context"
	"errors"
	"time"

	"github.com/filegram/panel/internal/app/model"
	"gorm.io/gorm"
)

type gormSettingsRepository struct {
	db *gorm.DB
}

func newGormSettingsRepository(db *gorm.DB) SettingsRepository {
	return &gormSettingsRepository{db: db}
}

func (r *gormSettingsRepository) Get(ctx context.Context) (model.Settings, error) {
	var rec model.SettingsRecord
	err := r.db.WithContext(ctx).Where("id = ?", model.SettingsID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec.Data, nil
}

func (r *gormSettingsRepository) Update(ctx context.Context, updates model.Settings) error {
	stored, err := r.Get(ctx)
	if err != nil {
		return err
	}
	if stored == nil {
		stored = model.Settings{}
	}
	for k, v := range updates {
		stored[k] = v
	}
	stored["updated_at"] = time.Now().UTC()

	rec := model.SettingsRecord{ID: model.SettingsID, Data: stored}
	return r.db.WithContext(ctx).Save(&rec).Error
}

package repository

import (
	"context"

	"github.com/filegram/panel/internal/app/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormEnvVarRepository struct {
	db *gorm.DB
}

func newGormEnvVarRepository(db *gorm.DB) EnvVarRepository {
	return &gormEnvVarRepository{db: db}
}

func (r *gormEnvVarRepository) List(ctx context.Context) ([]model.EnvVar, error) {
	var vars []model.EnvVar
	if err := r.db.WithContext(ctx).Order("key").Find(&vars).Error; err != nil {
		return nil, err
	}
	return vars, nil
}

func (r *gormEnvVarRepository) Upsert(ctx context.Context, v *model.EnvVar) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "description", "is_secret", "updated_at"}),
		}).
		Create(v).Error
}

func (r *gormEnvVarRepository) Delete(ctx context.Context, key string) error {
	result := r.db.WithContext(ctx).Where("key = ?", key).Delete(&model.EnvVar{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEnvVarNotFound
	}
	return nil
}

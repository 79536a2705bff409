package repository

import (
	"context"

	"github.com/filegram/panel/internal/app/model"
	"gorm.io/gorm"
)

type gormFileRepository struct {
	db *gorm.DB
}

func newGormFileRepository(db *gorm.DB) FileRepository {
	return &gormFileRepository{db: db}
}

func (r *gormFileRepository) List(ctx context.Context, q FileQuery) ([]model.File, int64, error) {
	page, limit := pageWindow(q.Page, q.Limit)

	tx := r.db.WithContext(ctx).Model(&model.File{})

	if q.Search != "" {
		tx = tx.Where("file_name ILIKE ? OR caption ILIKE ?", "%"+q.Search+"%", "%"+q.Search+"%")
	}
	if q.Type != "" {
		tx = tx.Where("file_type = ?", q.Type)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var files []model.File
	if err := tx.
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&files).Error; err != nil {
		return nil, 0, err
	}
	return files, total, nil
}

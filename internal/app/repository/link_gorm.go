package repository

import (
	"context"
	"errors"

	"github.com/filegram/panel/internal/app/model"
	"gorm.io/gorm"
)

type gormLinkRepository struct {
	db *gorm.DB
}

func newGormLinkRepository(db *gorm.DB) LinkRepository {
	return &gormLinkRepository{db: db}
}

func (r *gormLinkRepository) List(ctx context.Context, q LinkQuery) ([]model.BotLink, int64, error) {
	page, limit := pageWindow(q.Page, q.Limit)

	tx := r.db.WithContext(ctx).Model(&model.BotLink{})

	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		tx = tx.Where("name ILIKE ? OR bot_link ILIKE ? OR notes ILIKE ?", pattern, pattern, pattern)
	}
	if q.CategoryID != "" {
		tx = tx.Where("category_id = ?", q.CategoryID)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var links []model.BotLink
	if err := tx.
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&links).Error; err != nil {
		return nil, 0, err
	}

	if err := r.attachCategories(ctx, links); err != nil {
		return nil, 0, err
	}
	return links, total, nil
}

// attachCategories populates the joined Category field on each link.
func (r *gormLinkRepository) attachCategories(ctx context.Context, links []model.BotLink) error {
	ids := make([]string, 0, len(links))
	for _, l := range links {
		if l.CategoryID != nil {
			ids = append(ids, *l.CategoryID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	var cats []model.LinkCategory
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&cats).Error; err != nil {
		return err
	}

	byID := make(map[string]model.LinkCategory, len(cats))
	for _, c := range cats {
		byID[c.ID] = c
	}
	for i := range links {
		if links[i].CategoryID == nil {
			continue
		}
		if c, ok := byID[*links[i].CategoryID]; ok {
			cat := c
			links[i].Category = &cat
		}
	}
	return nil
}

func (r *gormLinkRepository) Get(ctx context.Context, id string) (*model.BotLink, error) {
	var link model.BotLink
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLinkNotFound
		}
		return nil, err
	}
	return &link, nil
}

func (r *gormLinkRepository) Create(ctx context.Context, link *model.BotLink) error {
	return r.db.WithContext(ctx).Create(link).Error
}

func (r *gormLinkRepository) Update(ctx context.Context, link *model.BotLink) error {
	// Struct update with an explicit field list so zero values are written
	// and the shared_with serializer applies.
	result := r.db.WithContext(ctx).
		Model(&model.BotLink{}).
		Where("id = ?", link.ID).
		Select("name", "bot_link", "category_id", "link_type", "is_active", "shared_with", "notes").
		Updates(link)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLinkNotFound
	}
	return r.db.WithContext(ctx).Where("id = ?", link.ID).First(link).Error
}

func (r *gormLinkRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.BotLink{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLinkNotFound
	}
	return nil
}

func (r *gormLinkRepository) Stats(ctx context.Context) (*model.LinkStats, error) {
	stats := &model.LinkStats{ByCategory: []model.LinkCategoryCount{}}

	if err := r.db.WithContext(ctx).Model(&model.BotLink{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&model.BotLink{}).
		Where("is_active = true").Count(&stats.Active).Error; err != nil {
		return nil, err
	}

	rows := []model.LinkCategoryCount{}
	err := r.db.WithContext(ctx).Model(&model.BotLink{}).
		Select("link_categories.id AS category_id, link_categories.name, link_categories.color, COUNT(bot_links.id) AS count").
		Joins("JOIN link_categories ON link_categories.id = bot_links.category_id").
		Group("link_categories.id, link_categories.name, link_categories.color").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	stats.ByCategory = rows
	return stats, nil
}

func (r *gormLinkRepository) ListCategories(ctx context.Context) ([]model.LinkCategory, error) {
	var cats []model.LinkCategory
	if err := r.db.WithContext(ctx).Order("name").Find(&cats).Error; err != nil {
		return nil, err
	}
	return cats, nil
}

func (r *gormLinkRepository) CreateCategory(ctx context.Context, cat *model.LinkCategory) error {
	return r.db.WithContext(ctx).Create(cat).Error
}

func (r *gormLinkRepository) UpdateCategory(ctx context.Context, cat *model.LinkCategory) error {
	result := r.db.WithContext(ctx).
		Model(&model.LinkCategory{}).
		Where("id = ?", cat.ID).
		Updates(map[string]interface{}{"name": cat.Name, "color": cat.Color})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *gormLinkRepository) DeleteCategory(ctx context.Context, id string) error {
	// Unlink referencing links first; partial failure leaves links intact.
	if err := r.db.WithContext(ctx).
		Model(&model.BotLink{}).
		Where("category_id = ?", id).
		Update("category_id", nil).Error; err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.LinkCategory{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *gormLinkRepository) AppendActivity(ctx context.Context, entry *model.ActivityLogEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *gormLinkRepository) ListActivity(ctx context.Context, page, limit int) ([]model.ActivityLogEntry, int64, error) {
	page, limit = pageWindow(page, limit)

	tx := r.db.WithContext(ctx).Model(&model.ActivityLogEntry{})

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []model.ActivityLogEntry
	if err := tx.
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&entries).Error; err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

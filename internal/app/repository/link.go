package repository

import (
	"context"
	"errors"

	"github.com/filegram/panel/internal/app/model"
)

var (
	// ErrLinkNotFound signals that the requested link does not exist.
	ErrLinkNotFound = errors.New("link not found")

	// ErrCategoryNotFound signals that the requested category does not exist.
	ErrCategoryNotFound = errors.New("link category not found")
)

// LinkQuery parameterizes the links list.
type LinkQuery struct {
	Page       int
	Limit      int
	Search     string // matches name, target link or notes
	CategoryID string
}

// LinkRepository manages sharing links, their categories and the activity
// log the mutation handlers append to.
type LinkRepository interface {
	List(ctx context.Context, q LinkQuery) ([]model.BotLink, int64, error)
	Get(ctx context.Context, id string) (*model.BotLink, error)
	Create(ctx context.Context, link *model.BotLink) error
	Update(ctx context.Context, link *model.BotLink) error
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*model.LinkStats, error)

	ListCategories(ctx context.Context) ([]model.LinkCategory, error)
	CreateCategory(ctx context.Context, cat *model.LinkCategory) error
	UpdateCategory(ctx context.Context, cat *model.LinkCategory) error
	// DeleteCategory nulls category_id on all referencing links, then
	// removes the category. Links are never deleted.
	DeleteCategory(ctx context.Context, id string) error

	AppendActivity(ctx context.Context, entry *model.ActivityLogEntry) error
	ListActivity(ctx context.Context, page, limit int) ([]model.ActivityLogEntry, int64, error)
}

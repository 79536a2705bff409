package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/filegram/panel/internal/app/model"
	"github.com/filegram/panel/internal/app/repository"
	"github.com/filegram/panel/internal/infra/logger"
	"go.uber.org/zap"
)

var (
	// ErrInvalidLink signals a create request without name or target link.
	ErrInvalidLink = errors.New("link name and target are required")

	// ErrInvalidCategory signals a category request without a name.
	ErrInvalidCategory = errors.New("category name is required")
)

// LinkService manages sharing links, their categories and the activity log.
// Every mutation appends an activity entry; the append is best-effort and
// never rolls back the primary write.
type LinkService interface {
	ListLinks(ctx context.Context, q repository.LinkQuery) ([]model.BotLink, int64, error)
	CreateLink(ctx context.Context, input CreateLinkInput) (*model.BotLink, error)
	UpdateLink(ctx context.Context, id string, input UpdateLinkInput) (*model.BotLink, error)
	DeleteLink(ctx context.Context, id string, actor Actor) error
	LinkStats(ctx context.Context) (*model.LinkStats, error)

	ListCategories(ctx context.Context) ([]model.LinkCategory, error)
	CreateCategory(ctx context.Context, name, color string) (*model.LinkCategory, error)
	UpdateCategory(ctx context.Context, id, name, color string) (*model.LinkCategory, error)
	DeleteCategory(ctx context.Context, id string) error

	ListActivity(ctx context.Context, page, limit int) ([]model.ActivityLogEntry, int64, error)
}

type linkService struct {
	repo      repository.LinkRepository
	publisher *ActivityPublisher
}

// NewLinkService returns a service backed by the given repository. The
// publisher may be nil when NATS is not configured.
func NewLinkService(repo repository.LinkRepository, publisher *ActivityPublisher) LinkService {
	return &linkService{repo: repo, publisher: publisher}
}

// Actor identifies who performed a mutation, for the activity log.
type Actor struct {
	ID   string
	Name string
}

// CreateLinkInput captures data required to create a sharing link.
type CreateLinkInput struct {
	Name       string
	BotLink    string
	CategoryID *string
	LinkType   string
	Notes      string
	SharedWith []string
	Actor      Actor
}

// UpdateLinkInput captures fields that can be changed on an existing link;
// nil means unchanged.
type UpdateLinkInput struct {
	Name       *string
	BotLink    *string
	CategoryID *string
	ClearCat   bool
	LinkType   *string
	IsActive   *bool
	Notes      *string
	SharedWith []string
	Actor      Actor
}

func (s *linkService) ListLinks(ctx context.Context, q repository.LinkQuery) ([]model.BotLink, int64, error) {
	links, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, 0, fmt.Errorf("list links: %w", err)
	}
	return links, total, nil
}

func (s *linkService) CreateLink(ctx context.Context, input CreateLinkInput) (*model.BotLink, error) {
	if input.Name == "" || input.BotLink == "" {
		return nil, ErrInvalidLink
	}

	link := &model.BotLink{
		Name:          input.Name,
		BotLink:       input.BotLink,
		CategoryID:    input.CategoryID,
		CreatedBy:     input.Actor.ID,
		CreatedByName: input.Actor.Name,
		LinkType:      input.LinkType,
		IsActive:      true,
		SharedWith:    input.SharedWith,
		Notes:         input.Notes,
	}
	if link.LinkType == "" {
		link.LinkType = model.LinkTypeSingle
	}

	if err := s.repo.Create(ctx, link); err != nil {
		return nil, fmt.Errorf("create link: %w", err)
	}

	s.logActivity(ctx, &model.ActivityLogEntry{
		Action:      "link_created",
		Description: fmt.Sprintf("Created link %q", link.Name),
		UserID:      input.Actor.ID,
		UserName:    input.Actor.Name,
		LinkID:      &link.ID,
	})
	return link, nil
}

func (s *linkService) UpdateLink(ctx context.Context, id string, input UpdateLinkInput) (*model.BotLink, error) {
	link, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrLinkNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load link: %w", err)
	}

	if input.Name != nil {
		link.Name = *input.Name
	}
	if input.BotLink != nil {
		link.BotLink = *input.BotLink
	}
	if input.ClearCat {
		link.CategoryID = nil
	} else if input.CategoryID != nil {
		link.CategoryID = input.CategoryID
	}
	if input.LinkType != nil {
		link.LinkType = *input.LinkType
	}
	if input.IsActive != nil {
		link.IsActive = *input.IsActive
	}
	if input.Notes != nil {
		link.Notes = *input.Notes
	}
	if input.SharedWith != nil {
		link.SharedWith = input.SharedWith
	}

	if err := s.repo.Update(ctx, link); err != nil {
		return nil, fmt.Errorf("update link: %w", err)
	}

	s.logActivity(ctx, &model.ActivityLogEntry{
		Action:      "link_updated",
		Description: fmt.Sprintf("Updated link %q", link.Name),
		UserID:      input.Actor.ID,
		UserName:    input.Actor.Name,
		LinkID:      &link.ID,
	})
	return link, nil
}

func (s *linkService) DeleteLink(ctx context.Context, id string, actor Actor) error {
	link, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrLinkNotFound) {
			return err
		}
		return fmt.Errorf("load link: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete link: %w", err)
	}

	s.logActivity(ctx, &model.ActivityLogEntry{
		Action:      "link_deleted",
		Description: fmt.Sprintf("Deleted link %q", link.Name),
		UserID:      actor.ID,
		UserName:    actor.Name,
	})
	return nil
}

func (s *linkService) LinkStats(ctx context.Context) (*model.LinkStats, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("link stats: %w", err)
	}
	return stats, nil
}

func (s *linkService) ListCategories(ctx context.Context) ([]model.LinkCategory, error) {
	cats, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

func (s *linkService) CreateCategory(ctx context.Context, name, color string) (*model.LinkCategory, error) {
	if name == "" {
		return nil, ErrInvalidCategory
	}
	cat := &model.LinkCategory{Name: name, Color: color}
	if err := s.repo.CreateCategory(ctx, cat); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return cat, nil
}

func (s *linkService) UpdateCategory(ctx context.Context, id, name, color string) (*model.LinkCategory, error) {
	if name == "" {
		return nil, ErrInvalidCategory
	}
	cat := &model.LinkCategory{ID: id, Name: name, Color: color}
	if err := s.repo.UpdateCategory(ctx, cat); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update category: %w", err)
	}
	return cat, nil
}

func (s *linkService) DeleteCategory(ctx context.Context, id string) error {
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return err
		}
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

func (s *linkService) ListActivity(ctx context.Context, page, limit int) ([]model.ActivityLogEntry, int64, error) {
	entries, total, err := s.repo.ListActivity(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list activity: %w", err)
	}
	return entries, total, nil
}

// logActivity appends an audit entry and publishes it. Failures are logged
// and swallowed so they never undo the mutation that triggered them.
func (s *linkService) logActivity(ctx context.Context, entry *model.ActivityLogEntry) {
	if err := s.repo.AppendActivity(ctx, entry); err != nil {
		logger.L().Warn("activity log append failed",
			zap.String("action", entry.Action),
			zap.Error(err))
	}
	if err := s.publisher.PublishEntry(entry); err != nil {
		logger.L().Warn("activity event publish failed",
			zap.String("action", entry.Action),
			zap.Error(err))
	}
}

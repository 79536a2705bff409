package service

import (
	"context"
	"errors"
	"testing"

	"github.com/filegram/panel/internal/app/model"
	"github.com/filegram/panel/internal/app/repository"
)

type mockLinkRepository struct {
	listFn           func(ctx context.Context, q repository.LinkQuery) ([]model.BotLink, int64, error)
	getFn            func(ctx context.Context, id string) (*model.BotLink, error)
	createFn         func(ctx context.Context, link *model.BotLink) error
	updateFn         func(ctx context.Context, link *model.BotLink) error
	deleteFn         func(ctx context.Context, id string) error
	statsFn          func(ctx context.Context) (*model.LinkStats, error)
	listCatsFn       func(ctx context.Context) ([]model.LinkCategory, error)
	createCatFn      func(ctx context.Context, cat *model.LinkCategory) error
	updateCatFn      func(ctx context.Context, cat *model.LinkCategory) error
	deleteCatFn      func(ctx context.Context, id string) error
	appendActivityFn func(ctx context.Context, entry *model.ActivityLogEntry) error
	listActivityFn   func(ctx context.Context, page, limit int) ([]model.ActivityLogEntry, int64, error)
}

func (m *mockLinkRepository) List(ctx context.Context, q repository.LinkQuery) ([]model.BotLink, int64, error) {
	if m.listFn != nil {
		return m.listFn(ctx, q)
	}
	return nil, 0, nil
}

func (m *mockLinkRepository) Get(ctx context.Context, id string) (*model.BotLink, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, repository.ErrLinkNotFound
}

func (m *mockLinkRepository) Create(ctx context.Context, link *model.BotLink) error {
	if m.createFn != nil {
		return m.createFn(ctx, link)
	}
	return nil
}

func (m *mockLinkRepository) Update(ctx context.Context, link *model.BotLink) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, link)
	}
	return nil
}

func (m *mockLinkRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockLinkRepository) Stats(ctx context.Context) (*model.LinkStats, error) {
	if m.statsFn != nil {
		return m.statsFn(ctx)
	}
	return &model.LinkStats{}, nil
}

func (m *mockLinkRepository) ListCategories(ctx context.Context) ([]model.LinkCategory, error) {
	if m.listCatsFn != nil {
		return m.listCatsFn(ctx)
	}
	return nil, nil
}

func (m *mockLinkRepository) CreateCategory(ctx context.Context, cat *model.LinkCategory) error {
	if m.createCatFn != nil {
		return m.createCatFn(ctx, cat)
	}
	return nil
}

func (m *mockLinkRepository) UpdateCategory(ctx context.Context, cat *model.LinkCategory) error {
	if m.updateCatFn != nil {
		return m.updateCatFn(ctx, cat)
	}
	return nil
}

func (m *mockLinkRepository) DeleteCategory(ctx context.Context, id string) error {
	if m.deleteCatFn != nil {
		return m.deleteCatFn(ctx, id)
	}
	return nil
}

func (m *mockLinkRepository) AppendActivity(ctx context.Context, entry *model.ActivityLogEntry) error {
	if m.appendActivityFn != nil {
		return m.appendActivityFn(ctx, entry)
	}
	return nil
}

func (m *mockLinkRepository) ListActivity(ctx context.Context, page, limit int) ([]model.ActivityLogEntry, int64, error) {
	if m.listActivityFn != nil {
		return m.listActivityFn(ctx, page, limit)
	}
	return nil, 0, nil
}

func TestLinkService_CreateLink(t *testing.T) {
	var logged *model.ActivityLogEntry
	repo := &mockLinkRepository{
		createFn: func(ctx context.Context, link *model.BotLink) error {
			link.ID = "l1"
			return nil
		},
		appendActivityFn: func(ctx context.Context, entry *model.ActivityLogEntry) error {
			logged = entry
			return nil
		},
	}

	svc := NewLinkService(repo, nil)
	link, err := svc.CreateLink(context.Background(), CreateLinkInput{
		Name:    "promo",
		BotLink: "https://t.me/bot?start=abc",
		Actor:   Actor{ID: "u1", Name: "Alice"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if link.LinkType != model.LinkTypeSingle {
		t.Fatalf("expected default single type, got %q", link.LinkType)
	}
	if !link.IsActive {
		t.Fatal("new links must start active")
	}
	if logged == nil || logged.Action != "link_created" {
		t.Fatalf("expected link_created activity entry, got %+v", logged)
	}
	if logged.LinkID == nil || *logged.LinkID != "l1" {
		t.Fatal("activity entry must reference the created link")
	}
}

func TestLinkService_CreateLinkValidation(t *testing.T) {
	svc := NewLinkService(&mockLinkRepository{}, nil)

	_, err := svc.CreateLink(context.Background(), CreateLinkInput{Name: "promo"})
	if !errors.Is(err, ErrInvalidLink) {
		t.Fatalf("expected ErrInvalidLink, got %v", err)
	}
}

func TestLinkService_CreateLinkActivityFailureDoesNotRollBack(t *testing.T) {
	repo := &mockLinkRepository{
		appendActivityFn: func(ctx context.Context, entry *model.ActivityLogEntry) error {
			return errors.New("activity table missing")
		},
	}

	svc := NewLinkService(repo, nil)
	link, err := svc.CreateLink(context.Background(), CreateLinkInput{
		Name:    "promo",
		BotLink: "https://t.me/bot?start=abc",
	})
	if err != nil {
		t.Fatalf("activity failure must not fail the create: %v", err)
	}
	if link == nil {
		t.Fatal("expected the created link back")
	}
}

func TestLinkService_UpdateLinkPartial(t *testing.T) {
	stored := &model.BotLink{ID: "l1", Name: "old", BotLink: "https://t.me/a", IsActive: true}
	var updated *model.BotLink
	repo := &mockLinkRepository{
		getFn: func(ctx context.Context, id string) (*model.BotLink, error) {
			cp := *stored
			return &cp, nil
		},
		updateFn: func(ctx context.Context, link *model.BotLink) error {
			updated = link
			return nil
		},
	}

	svc := NewLinkService(repo, nil)
	active := false
	_, err := svc.UpdateLink(context.Background(), "l1", UpdateLinkInput{IsActive: &active})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.IsActive {
		t.Fatal("expected link to be deactivated")
	}
	if updated.Name != "old" {
		t.Fatal("untouched fields must survive a partial update")
	}
}

func TestLinkService_UpdateLinkNotFound(t *testing.T) {
	svc := NewLinkService(&mockLinkRepository{}, nil)
	_, err := svc.UpdateLink(context.Background(), "missing", UpdateLinkInput{})
	if !errors.Is(err, repository.ErrLinkNotFound) {
		t.Fatalf("expected ErrLinkNotFound, got %v", err)
	}
}

func TestLinkService_DeleteCategory(t *testing.T) {
	deleted := ""
	repo := &mockLinkRepository{
		deleteCatFn: func(ctx context.Context, id string) error {
			deleted = id
			return nil
		},
	}

	svc := NewLinkService(repo, nil)
	if err := svc.DeleteCategory(context.Background(), "c1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != "c1" {
		t.Fatal("expected repository delete to run")
	}
}

func TestLinkService_CreateCategoryValidation(t *testing.T) {
	svc := NewLinkService(&mockLinkRepository{}, nil)
	if _, err := svc.CreateCategory(context.Background(), "", "#fff"); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}
}

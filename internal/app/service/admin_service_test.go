package service

import (
	"context"
	"errors"
	"testing"

	"github.com/filegram/panel/internal/app/model"
	"github.com/filegram/panel/internal/app/repository"
)

type mockAdminRepository struct {
	listFn   func(ctx context.Context) ([]model.BotAdmin, error)
	getFn    func(ctx context.Context, userID int64) (*model.BotAdmin, error)
	createFn func(ctx context.Context, admin *model.BotAdmin) error
	updateFn func(ctx context.Context, userID int64, upd repository.AdminUpdate) error
	deleteFn func(ctx context.Context, userID int64) error
}

func (m *mockAdminRepository) List(ctx context.Context) ([]model.BotAdmin, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockAdminRepository) GetByUserID(ctx context.Context, userID int64) (*model.BotAdmin, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID)
	}
	return nil, repository.ErrAdminNotFound
}

func (m *mockAdminRepository) Create(ctx context.Context, admin *model.BotAdmin) error {
	if m.createFn != nil {
		return m.createFn(ctx, admin)
	}
	return nil
}

func (m *mockAdminRepository) Update(ctx context.Context, userID int64, upd repository.AdminUpdate) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, userID, upd)
	}
	return nil
}

func (m *mockAdminRepository) Delete(ctx context.Context, userID int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID)
	}
	return nil
}

func TestAdminService_CreateAdminMergesDefaults(t *testing.T) {
	var created *model.BotAdmin
	repo := &mockAdminRepository{
		createFn: func(ctx context.Context, admin *model.BotAdmin) error {
			created = admin
			return nil
		},
	}

	svc := NewAdminService(repo)
	_, err := svc.CreateAdmin(context.Background(), CreateAdminInput{
		UserID:      123,
		Name:        "Alice",
		Permissions: model.Permissions{"can_delete_files": true},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil {
		t.Fatal("expected create to be called")
	}
	if !created.Permissions["can_delete_files"] {
		t.Fatal("submitted permission lost")
	}
	if !created.Permissions["can_broadcast"] {
		t.Fatal("default permission not merged in")
	}
	if created.Permissions["can_manage_fsub"] {
		t.Fatal("expected can_manage_fsub to keep its false default")
	}
}

func TestAdminService_CreateAdminDuplicate(t *testing.T) {
	repo := &mockAdminRepository{
		createFn: func(ctx context.Context, admin *model.BotAdmin) error {
			return repository.ErrAdminExists
		},
	}

	svc := NewAdminService(repo)
	_, err := svc.CreateAdmin(context.Background(), CreateAdminInput{UserID: 123})
	if !errors.Is(err, repository.ErrAdminExists) {
		t.Fatalf("expected ErrAdminExists, got %v", err)
	}
}

func TestAdminService_CreateAdminMissingID(t *testing.T) {
	svc := NewAdminService(&mockAdminRepository{})
	if _, err := svc.CreateAdmin(context.Background(), CreateAdminInput{}); !errors.Is(err, ErrInvalidAdminID) {
		t.Fatalf("expected ErrInvalidAdminID, got %v", err)
	}
}

func TestAdminService_ListAdminsMergesStoredPartialSets(t *testing.T) {
	repo := &mockAdminRepository{
		listFn: func(ctx context.Context) ([]model.BotAdmin, error) {
			return []model.BotAdmin{
				{UserID: 1, Permissions: model.Permissions{"can_broadcast": false}},
				{UserID: 2, Permissions: nil},
			}, nil
		},
	}

	svc := NewAdminService(repo)
	admins, err := svc.ListAdmins(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if admins[0].Permissions["can_broadcast"] {
		t.Fatal("stored override must win over the default")
	}
	if !admins[0].Permissions["can_ban"] {
		t.Fatal("missing key must fall back to the default")
	}
	if !admins[1].Permissions["can_genlink"] {
		t.Fatal("nil stored set must resolve to pure defaults")
	}
}

func TestAdminService_UpdateAdminNotFound(t *testing.T) {
	repo := &mockAdminRepository{
		updateFn: func(ctx context.Context, userID int64, upd repository.AdminUpdate) error {
			return repository.ErrAdminNotFound
		},
	}

	svc := NewAdminService(repo)
	_, err := svc.UpdateAdmin(context.Background(), 999, UpdateAdminInput{})
	if !errors.Is(err, repository.ErrAdminNotFound) {
		t.Fatalf("expected ErrAdminNotFound, got %v", err)
	}
}

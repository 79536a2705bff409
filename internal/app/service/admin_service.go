package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/filegram/panel/internal/app/model"
	"github.com/filegram/panel/internal/app/repository"
)

// ErrInvalidAdminID signals a create or update without a usable user id.
var ErrInvalidAdminID = errors.New("admin user_id is required")

// AdminService manages the bot admin roster. Stored permission sets may be
// partial; every read path merges the fixed defaults underneath.
type AdminService interface {
	ListAdmins(ctx context.Context) ([]model.BotAdmin, error)
	CreateAdmin(ctx context.Context, input CreateAdminInput) (*model.BotAdmin, error)
	UpdateAdmin(ctx context.Context, userID int64, input UpdateAdminInput) (*model.BotAdmin, error)
	DeleteAdmin(ctx context.Context, userID int64) error
}

type adminService struct {
	repo repository.AdminRepository
}

// NewAdminService returns a service backed by the given repository.
func NewAdminService(repo repository.AdminRepository) AdminService {
	return &adminService{repo: repo}
}

// CreateAdminInput captures data required to promote a user.
type CreateAdminInput struct {
	UserID      int64
	Name        string
	Permissions model.Permissions
}

// UpdateAdminInput captures mutable admin fields; nil means unchanged.
type UpdateAdminInput struct {
	Name        *string
	Permissions model.Permissions
}

func (s *adminService) ListAdmins(ctx context.Context) ([]model.BotAdmin, error) {
	admins, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	for i := range admins {
		admins[i].Permissions = admins[i].Permissions.Merged()
	}
	return admins, nil
}

func (s *adminService) CreateAdmin(ctx context.Context, input CreateAdminInput) (*model.BotAdmin, error) {
	if input.UserID == 0 {
		return nil, ErrInvalidAdminID
	}

	admin := &model.BotAdmin{
		UserID:      input.UserID,
		Name:        input.Name,
		Permissions: input.Permissions.Merged(),
	}

	if err := s.repo.Create(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrAdminExists) {
			return nil, err
		}
		return nil, fmt.Errorf("create admin: %w", err)
	}
	return admin, nil
}

func (s *adminService) UpdateAdmin(ctx context.Context, userID int64, input UpdateAdminInput) (*model.BotAdmin, error) {
	if userID == 0 {
		return nil, ErrInvalidAdminID
	}

	upd := repository.AdminUpdate{Name: input.Name}
	if input.Permissions != nil {
		upd.Permissions = input.Permissions.Merged()
	}

	if err := s.repo.Update(ctx, userID, upd); err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update admin: %w", err)
	}

	admin, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load admin: %w", err)
	}
	admin.Permissions = admin.Permissions.Merged()
	return admin, nil
}

func (s *adminService) DeleteAdmin(ctx context.Context, userID int64) error {
	if err := s.repo.Delete(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			return err
		}
		return fmt.Errorf("delete admin: %w", err)
	}
	return nil
}

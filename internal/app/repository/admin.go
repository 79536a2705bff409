package repository

import (
	"context"
	"errors"

	"github.com/filegram/panel/internal/app/model"
)

var (
	// ErrAdminExists signals a duplicate admin user_id on create.
	ErrAdminExists = errors.New("admin already exists")

	// ErrAdminNotFound signals that no admin matches the given user_id.
	ErrAdminNotFound = errors.New("admin not found")
)

// AdminUpdate carries the mutable admin fields; nil means unchanged.
type AdminUpdate struct {
	Name        *string
	Permissions model.Permissions
}

// AdminRepository manages the bot admin roster (owner-only resource).
type AdminRepository interface {
	List(ctx context.Context) ([]model.BotAdmin, error)
	GetByUserID(ctx context.Context, userID int64) (*model.BotAdmin, error)
	// Create fails with ErrAdminExists when the user_id is already present,
	// leaving the existing record untouched.
	Create(ctx context.Context, admin *model.BotAdmin) error
	Update(ctx context.Context, userID int64, upd AdminUpdate) error
	Delete(ctx context.Context, userID int64) error
}

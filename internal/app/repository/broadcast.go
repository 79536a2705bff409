package repository

import (
	"context"
	"errors"

	"github.com/filegram/panel/internal/app/model"
)

var (
	// ErrBroadcastNotFound signals that no broadcast matches the given id.
	ErrBroadcastNotFound = errors.New("broadcast not found")

	// ErrBroadcastNotPending signals a cancel attempt on a job the bot has
	// already picked up (or that was already cancelled).
	ErrBroadcastNotPending = errors.New("broadcast is not pending")
)

// BroadcastRepository stores broadcast jobs. Creation inserts a pending row
// for the external bot to poll; CancelPending is the only transition this
// codebase performs.
type BroadcastRepository interface {
	List(ctx context.Context, page, limit int) ([]model.BroadcastJob, int64, error)
	Get(ctx context.Context, id string) (*model.BroadcastJob, error)
	Create(ctx context.Context, job *model.BroadcastJob) error
	// CancelPending moves pending → cancelled. Any other stored status
	// fails with ErrBroadcastNotPending and leaves the row untouched.
	CancelPending(ctx context.Context, id string) error
}

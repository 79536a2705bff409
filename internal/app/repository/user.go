package repository

import (
	"context"
	"errors"
	"time"

	"github.com/filegram/panel/internal/app/model"
)

// ErrUserNotFound signals that no user matches the given id.
var ErrUserNotFound = errors.New("user not found")

// UserQuery parameterizes the users list.
type UserQuery struct {
	Page   int
	Limit  int
	Search string // free-text name match, or an exact numeric user id
	Filter string // all | active | banned | premium
}

// UserRepository reads bot users and toggles the few fields the dashboard
// owns (ban state, spam flag).
type UserRepository interface {
	List(ctx context.Context, q UserQuery) ([]model.User, int64, error)
	SetBanned(ctx context.Context, userID int64, banned bool) error
	CountActive(ctx context.Context) (int64, error)
	ClearSpamFlag(ctx context.Context, userID int64) error
	ListFlagged(ctx context.Context, page, limit int) ([]model.User, int64, error)
	ListHighActivity(ctx context.Context, since time.Time, limit int) ([]model.User, error)
	RecentSpamLogs(ctx context.Context, since time.Time, limit int) ([]model.SpamLogEntry, error)
}

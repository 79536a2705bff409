package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/filegram/panel/internal/app/model"
	"github.com/filegram/panel/internal/app/repository"
)

// ErrEmptyBroadcast signals a create request without message text.
var ErrEmptyBroadcast = errors.New("broadcast message is required")

// BroadcastService defines behaviour-level operations on broadcast jobs.
// Jobs are handed to the external bot process through the store; the only
// transitions performed here are create (pending) and cancel.
type BroadcastService interface {
	ListBroadcasts(ctx context.Context, page, limit int) ([]model.BroadcastJob, int64, error)
	CreateBroadcast(ctx context.Context, input CreateBroadcastInput) (*model.BroadcastJob, error)
	CancelBroadcast(ctx context.Context, id string) error
}

type broadcastService struct {
	broadcasts repository.BroadcastRepository
	users      repository.UserRepository
}

// NewBroadcastService returns a service backed by the given repositories.
func NewBroadcastService(broadcasts repository.BroadcastRepository, users repository.UserRepository) BroadcastService {
	return &broadcastService{broadcasts: broadcasts, users: users}
}

// CreateBroadcastInput captures data required to queue a broadcast.
type CreateBroadcastInput struct {
	Message   string
	Type      string
	CreatedBy string
	Options   model.BroadcastOptions
}

func (s *broadcastService) ListBroadcasts(ctx context.Context, page, limit int) ([]model.BroadcastJob, int64, error) {
	jobs, total, err := s.broadcasts.List(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list broadcasts: %w", err)
	}
	return jobs, total, nil
}

func (s *broadcastService) CreateBroadcast(ctx context.Context, input CreateBroadcastInput) (*model.BroadcastJob, error) {
	message := strings.TrimSpace(input.Message)
	if message == "" {
		return nil, ErrEmptyBroadcast
	}

	// Snapshot the reachable audience at creation time; the bot's own
	// counters start at zero.
	total, err := s.users.CountActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("count recipients: %w", err)
	}

	job := &model.BroadcastJob{
		Message:    message,
		Type:       input.Type,
		Status:     model.BroadcastPending,
		TotalUsers: total,
		CreatedBy:  input.CreatedBy,
		Options:    input.Options,
	}
	if job.Type == "" {
		job.Type = model.BroadcastTypeText
	}

	if err := s.broadcasts.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("create broadcast: %w", err)
	}
	return job, nil
}

func (s *broadcastService) CancelBroadcast(ctx context.Context, id string) error {
	if err := s.broadcasts.CancelPending(ctx, id); err != nil {
		if errors.Is(err, repository.ErrBroadcastNotFound) || errors.Is(err, repository.ErrBroadcastNotPending) {
			return err
		}
		return fmt.Errorf("cancel broadcast: %w", err)
	}
	return nil
}

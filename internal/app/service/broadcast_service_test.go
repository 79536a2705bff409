package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/filegram/panel/internal/app/model"
	"github.com/filegram/panel/internal/app/repository"
)

type mockBroadcastRepository struct {
	listFn   func(ctx context.Context, page, limit int) ([]model.BroadcastJob, int64, error)
	getFn    func(ctx context.Context, id string) (*model.BroadcastJob, error)
	createFn func(ctx context.Context, job *model.BroadcastJob) error
	cancelFn func(ctx context.Context, id string) error
}

func (m *mockBroadcastRepository) List(ctx context.Context, page, limit int) ([]model.BroadcastJob, int64, error) {
	if m.listFn != nil {
		return m.listFn(ctx, page, limit)
	}
	return nil, 0, nil
}

func (m *mockBroadcastRepository) Get(ctx context.Context, id string) (*model.BroadcastJob, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, repository.ErrBroadcastNotFound
}

func (m *mockBroadcastRepository) Create(ctx context.Context, job *model.BroadcastJob) error {
	if m.createFn != nil {
		return m.createFn(ctx, job)
	}
	return nil
}

func (m *mockBroadcastRepository) CancelPending(ctx context.Context, id string) error {
	if m.cancelFn != nil {
		return m.cancelFn(ctx, id)
	}
	return nil
}

type mockUserRepository struct {
	listFn         func(ctx context.Context, q repository.UserQuery) ([]model.User, int64, error)
	setBannedFn    func(ctx context.Context, userID int64, banned bool) error
	countActiveFn  func(ctx context.Context) (int64, error)
	clearSpamFn    func(ctx context.Context, userID int64) error
	listFlaggedFn  func(ctx context.Context, page, limit int) ([]model.User, int64, error)
	highActivityFn func(ctx context.Context, since time.Time, limit int) ([]model.User, error)
	spamLogsFn     func(ctx context.Context, since time.Time, limit int) ([]model.SpamLogEntry, error)
}

func (m *mockUserRepository) List(ctx context.Context, q repository.UserQuery) ([]model.User, int64, error) {
	if m.listFn != nil {
		return m.listFn(ctx, q)
	}
	return nil, 0, nil
}

func (m *mockUserRepository) SetBanned(ctx context.Context, userID int64, banned bool) error {
	if m.setBannedFn != nil {
		return m.setBannedFn(ctx, userID, banned)
	}
	return nil
}

func (m *mockUserRepository) CountActive(ctx context.Context) (int64, error) {
	if m.countActiveFn != nil {
		return m.countActiveFn(ctx)
	}
	return 0, nil
}

func (m *mockUserRepository) ClearSpamFlag(ctx context.Context, userID int64) error {
	if m.clearSpamFn != nil {
		return m.clearSpamFn(ctx, userID)
	}
	return nil
}

func (m *mockUserRepository) ListFlagged(ctx context.Context, page, limit int) ([]model.User, int64, error) {
	if m.listFlaggedFn != nil {
		return m.listFlaggedFn(ctx, page, limit)
	}
	return nil, 0, nil
}

func (m *mockUserRepository) ListHighActivity(ctx context.Context, since time.Time, limit int) ([]model.User, error) {
	if m.highActivityFn != nil {
		return m.highActivityFn(ctx, since, limit)
	}
	return nil, nil
}

func (m *mockUserRepository) RecentSpamLogs(ctx context.Context, since time.Time, limit int) ([]model.SpamLogEntry, error) {
	if m.spamLogsFn != nil {
		return m.spamLogsFn(ctx, since, limit)
	}
	return nil, nil
}

func TestBroadcastService_CreateBroadcast(t *testing.T) {
	var created *model.BroadcastJob
	broadcasts := &mockBroadcastRepository{
		createFn: func(ctx context.Context, job *model.BroadcastJob) error {
			created = job
			return nil
		},
	}
	users := &mockUserRepository{
		countActiveFn: func(ctx context.Context) (int64, error) { return 42, nil },
	}

	svc := NewBroadcastService(broadcasts, users)
	job, err := svc.CreateBroadcast(context.Background(), CreateBroadcastInput{
		Message:   "  hello everyone  ",
		CreatedBy: "owner-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil {
		t.Fatal("expected create to be called")
	}
	if job.Message != "hello everyone" {
		t.Fatalf("expected trimmed message, got %q", job.Message)
	}
	if job.Status != model.BroadcastPending {
		t.Fatalf("expected pending status, got %q", job.Status)
	}
	if job.TotalUsers != 42 {
		t.Fatalf("expected snapshot of 42 users, got %d", job.TotalUsers)
	}
	if job.Type != model.BroadcastTypeText {
		t.Fatalf("expected default text type, got %q", job.Type)
	}
	if job.SentCount != 0 || job.FailedCount != 0 {
		t.Fatal("expected zero counters on creation")
	}
}

func TestBroadcastService_CreateBroadcastEmptyMessage(t *testing.T) {
	svc := NewBroadcastService(&mockBroadcastRepository{}, &mockUserRepository{})

	_, err := svc.CreateBroadcast(context.Background(), CreateBroadcastInput{Message: "   "})
	if !errors.Is(err, ErrEmptyBroadcast) {
		t.Fatalf("expected ErrEmptyBroadcast, got %v", err)
	}
}

func TestBroadcastService_CreateBroadcastCountFails(t *testing.T) {
	users := &mockUserRepository{
		countActiveFn: func(ctx context.Context) (int64, error) {
			return 0, errors.New("db down")
		},
	}
	broadcasts := &mockBroadcastRepository{
		createFn: func(ctx context.Context, job *model.BroadcastJob) error {
			t.Fatal("create must not run when the count fails")
			return nil
		},
	}

	svc := NewBroadcastService(broadcasts, users)
	if _, err := svc.CreateBroadcast(context.Background(), CreateBroadcastInput{Message: "hi"}); err == nil {
		t.Fatal("expected error")
	}
}

func TestBroadcastService_CancelBroadcast(t *testing.T) {
	tests := []struct {
		name    string
		repoErr error
		wantErr error
	}{
		{"pending job", nil, nil},
		{"unknown id", repository.ErrBroadcastNotFound, repository.ErrBroadcastNotFound},
		{"already running", repository.ErrBroadcastNotPending, repository.ErrBroadcastNotPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			broadcasts := &mockBroadcastRepository{
				cancelFn: func(ctx context.Context, id string) error { return tt.repoErr },
			}
			svc := NewBroadcastService(broadcasts, &mockUserRepository{})

			err := svc.CancelBroadcast(context.Background(), "b1")
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/filegram/panel/internal/app/model"
	"github.com/filegram/panel/internal/app/repository"
	"github.com/filegram/panel/internal/infra/render"
)

type mockEnvVarRepository struct {
	listFn   func(ctx context.Context) ([]model.EnvVar, error)
	upsertFn func(ctx context.Context, v *model.EnvVar) error
	deleteFn func(ctx context.Context, key string) error
}

func (m *mockEnvVarRepository) List(ctx context.Context) ([]model.EnvVar, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockEnvVarRepository) Upsert(ctx context.Context, v *model.EnvVar) error {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, v)
	}
	return nil
}

func (m *mockEnvVarRepository) Delete(ctx context.Context, key string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, key)
	}
	return nil
}

type mockSyncer struct {
	configured bool
	upsertFn   func(ctx context.Context, key, value string) render.SyncResult
	deleteFn   func(ctx context.Context, key string) render.SyncResult
}

func (m *mockSyncer) Configured() bool { return m.configured }

func (m *mockSyncer) UpsertEnvVar(ctx context.Context, key, value string) render.SyncResult {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, key, value)
	}
	return render.SyncResult{Key: key}
}

func (m *mockSyncer) DeleteEnvVar(ctx context.Context, key string) render.SyncResult {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, key)
	}
	return render.SyncResult{Key: key}
}

func TestEnvService_UpsertSecretStoresPlaceholder(t *testing.T) {
	var stored *model.EnvVar
	var forwarded string
	repo := &mockEnvVarRepository{
		upsertFn: func(ctx context.Context, v *model.EnvVar) error {
			stored = v
			return nil
		},
	}
	syncer := &mockSyncer{
		configured: true,
		upsertFn: func(ctx context.Context, key, value string) render.SyncResult {
			forwarded = value
			return render.SyncResult{Key: key}
		},
	}

	svc := NewEnvService(repo, syncer)
	v, result, err := svc.UpsertEnvVar(context.Background(), UpsertEnvVarInput{
		Key:      "BOT_TOKEN",
		Value:    "123:secret",
		IsSecret: true,
		Sync:     true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Value != model.SecretPlaceholder {
		t.Fatalf("secret must be stored as the placeholder, got %q", stored.Value)
	}
	if v.Value != model.SecretPlaceholder {
		t.Fatalf("returned value must be the placeholder, got %q", v.Value)
	}
	if forwarded != "123:secret" {
		t.Fatalf("plaintext must reach the provider, got %q", forwarded)
	}
	if result == nil || !result.Synced() {
		t.Fatalf("expected a successful sync result, got %+v", result)
	}
}

func TestEnvService_UpsertNonSecretKeepsValue(t *testing.T) {
	var stored *model.EnvVar
	repo := &mockEnvVarRepository{
		upsertFn: func(ctx context.Context, v *model.EnvVar) error {
			stored = v
			return nil
		},
	}

	svc := NewEnvService(repo, nil)
	_, result, err := svc.UpsertEnvVar(context.Background(), UpsertEnvVarInput{
		Key:   "LOG_LEVEL",
		Value: "debug",
		Sync:  true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Value != "debug" {
		t.Fatalf("non-secret value changed, got %q", stored.Value)
	}
	if result != nil {
		t.Fatal("no syncer configured, expected nil sync result")
	}
}

func TestEnvService_SyncFailureDoesNotFailWrite(t *testing.T) {
	repo := &mockEnvVarRepository{}
	syncer := &mockSyncer{
		configured: true,
		upsertFn: func(ctx context.Context, key, value string) render.SyncResult {
			return render.SyncResult{Key: key, Err: errors.New("render 500")}
		},
	}

	svc := NewEnvService(repo, syncer)
	_, result, err := svc.UpsertEnvVar(context.Background(), UpsertEnvVarInput{
		Key:   "LOG_LEVEL",
		Value: "info",
		Sync:  true,
	})
	if err != nil {
		t.Fatalf("sync failure must not fail the write: %v", err)
	}
	if result == nil || result.Synced() {
		t.Fatalf("expected a failed sync result, got %+v", result)
	}
}

func TestEnvService_DeleteMissingKey(t *testing.T) {
	repo := &mockEnvVarRepository{
		deleteFn: func(ctx context.Context, key string) error {
			return repository.ErrEnvVarNotFound
		},
	}

	svc := NewEnvService(repo, nil)
	_, err := svc.DeleteEnvVar(context.Background(), "NOPE", false)
	if !errors.Is(err, repository.ErrEnvVarNotFound) {
		t.Fatalf("expected ErrEnvVarNotFound, got %v", err)
	}
}

func TestEnvService_UpsertRequiresKey(t *testing.T) {
	svc := NewEnvService(&mockEnvVarRepository{}, nil)
	_, _, err := svc.UpsertEnvVar(context.Background(), UpsertEnvVarInput{Value: "x"})
	if !errors.Is(err, ErrInvalidEnvKey) {
		t.Fatalf("expected ErrInvalidEnvKey, got %v", err)
	}
}

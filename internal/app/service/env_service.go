package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/filegram/panel/internal/app/model"
	"github.com/filegram/panel/internal/app/repository"
	"github.com/filegram/panel/internal/infra/logger"
	"github.com/filegram/panel/internal/infra/render"
	"go.uber.org/zap"
)

// ErrInvalidEnvKey signals an upsert or delete without a key.
var ErrInvalidEnvKey = errors.New("env var key is required")

// EnvSyncer mirrors variables to the hosting provider. *render.Client
// satisfies it.
type EnvSyncer interface {
	Configured() bool
	UpsertEnvVar(ctx context.Context, key, value string) render.SyncResult
	DeleteEnvVar(ctx context.Context, key string) render.SyncResult
}

// EnvService manages the dashboard's view of bot environment variables.
// Secret values are stored as the fixed placeholder; the plaintext is only
// ever forwarded to the hosting provider during sync.
type EnvService interface {
	ListEnvVars(ctx context.Context) ([]model.EnvVar, error)
	UpsertEnvVar(ctx context.Context, input UpsertEnvVarInput) (*model.EnvVar, *render.SyncResult, error)
	DeleteEnvVar(ctx context.Context, key string, sync bool) (*render.SyncResult, error)
}

type envService struct {
	repo   repository.EnvVarRepository
	syncer EnvSyncer
}

// NewEnvService returns a service backed by the given repository. The syncer
// may be nil when no hosting provider is configured.
func NewEnvService(repo repository.EnvVarRepository, syncer EnvSyncer) EnvService {
	return &envService{repo: repo, syncer: syncer}
}

// UpsertEnvVarInput captures an env var write.
type UpsertEnvVarInput struct {
	Key         string
	Value       string
	Description string
	IsSecret    bool
	Sync        bool
}

func (s *envService) ListEnvVars(ctx context.Context) ([]model.EnvVar, error) {
	vars, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list env vars: %w", err)
	}
	return vars, nil
}

func (s *envService) UpsertEnvVar(ctx context.Context, input UpsertEnvVarInput) (*model.EnvVar, *render.SyncResult, error) {
	if input.Key == "" {
		return nil, nil, ErrInvalidEnvKey
	}

	stored := input.Value
	if input.IsSecret {
		stored = model.SecretPlaceholder
	}

	v := &model.EnvVar{
		Key:         input.Key,
		Value:       stored,
		Description: input.Description,
		IsSecret:    input.IsSecret,
	}
	if err := s.repo.Upsert(ctx, v); err != nil {
		return nil, nil, fmt.Errorf("upsert env var: %w", err)
	}

	var result *render.SyncResult
	if input.Sync && s.syncable() {
		// Forward the plaintext, never the placeholder. Sync failure is
		// reported in the result without failing the stored write.
		r := s.syncer.UpsertEnvVar(ctx, input.Key, input.Value)
		result = &r
		if !r.Synced() {
			logger.L().Warn("env var sync failed",
				zap.String("key", input.Key),
				zap.Error(r.Err))
		}
	}
	return v, result, nil
}

func (s *envService) DeleteEnvVar(ctx context.Context, key string, sync bool) (*render.SyncResult, error) {
	if key == "" {
		return nil, ErrInvalidEnvKey
	}

	if err := s.repo.Delete(ctx, key); err != nil {
		if errors.Is(err, repository.ErrEnvVarNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("delete env var: %w", err)
	}

	var result *render.SyncResult
	if sync && s.syncable() {
		r := s.syncer.DeleteEnvVar(ctx, key)
		result = &r
		if !r.Synced() {
			logger.L().Warn("env var delete sync failed",
				zap.String("key", key),
				zap.Error(r.Err))
		}
	}
	return result, nil
}

func (s *envService) syncable() bool {
	return s.syncer != nil && s.syncer.Configured()
}

package repository

import (
	"context"
	"errors"

	"github.com/filegram/panel/internal/app/model"
)

// ErrEnvVarNotFound signals that no variable matches the given key.
var ErrEnvVarNotFound = errors.New("env var not found")

// EnvVarRepository stores the dashboard's view of bot environment variables.
type EnvVarRepository interface {
	List(ctx context.Context) ([]model.EnvVar, error)
	Upsert(ctx context.Context, v *model.EnvVar) error
	Delete(ctx context.Context, key string) error
}

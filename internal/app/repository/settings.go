package repository

import (
	"context"

	"github.com/filegram/panel/internal/app/model"
)

// SettingsRepository stores the singleton bot settings document. Get returns
// the raw stored document (nil when nothing was ever saved); callers merge
// defaults. Update upserts the given keys into the document.
type SettingsRepository interface {
	Get(ctx context.Context) (model.Settings, error)
	Update(ctx context.Context, updates model.Settings) error
}

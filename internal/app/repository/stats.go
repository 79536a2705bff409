package repository

import (
	"context"
	"time"

	"github.com/filegram/panel/internal/app/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StatsRepository computes the aggregate dashboard summary.
type StatsRepository interface {
	Collect(ctx context.Context) (*model.Stats, error)
}

// StatusRepository reads the bot heartbeat record. Get returns nil (no
// error) when neither bot_status nor a settings fallback exists.
type StatusRepository interface {
	Get(ctx context.Context) (*model.BotStatus, error)
}

// statusFromSettings builds a degraded status from the settings document
// when the bot never wrote a bot_status record.
func statusFromSettings(s model.Settings) *model.BotStatus {
	status := &model.BotStatus{ID: model.StatusID, Online: true}
	if v, ok := s["version"].(string); ok {
		status.Version = v
	}
	if t, ok := settingsTime(s["started_at"]); ok {
		status.StartedAt = &t
	}
	if t, ok := settingsTime(s["last_heartbeat"]); ok {
		status.LastHeartbeat = &t
	}
	return status
}

func settingsTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case primitive.DateTime:
		return t.Time().UTC(), true
	case string:
		parsed, err := time.Parse(time.RFC3339, t)
		if err != nil {
			return time.Time{}, false
		}
		return parsed, true
	default:
		return time.Time{}, false
	}
}

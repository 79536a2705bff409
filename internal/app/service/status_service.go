package service

import (
	"context"
	"fmt"
	"time"

	"github.com/filegram/panel/internal/app/model"
	"github.com/filegram/panel/internal/app/repository"
)

// Bot states derived from the heartbeat record.
const (
	StateOnline      = "online"
	StateOffline     = "offline"
	StateMaintenance = "maintenance"
)

// heartbeatWindow is how stale a heartbeat may be before the bot is
// considered offline.
const heartbeatWindow = 2 * time.Minute

// Pinger reports database liveness. *db.Handle satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// StatusReport is the assembled bot-status response.
type StatusReport struct {
	State         string     `json:"state"`
	Version       string     `json:"version,omitempty"`
	Uptime        string     `json:"uptime,omitempty"`
	StartedAt     *time.Time `json:"started_at,omitempty"`
	LastHeartbeat *time.Time `json:"last_heartbeat,omitempty"`
	DBLatencyMS   int64      `json:"db_latency_ms"`
	DBError       string     `json:"db_error,omitempty"`
}

// StatusService assembles the bot status from the heartbeat record and a
// live database ping.
type StatusService interface {
	Status(ctx context.Context) (*StatusReport, error)
}

type statusService struct {
	repo   repository.StatusRepository
	pinger Pinger
	now    func() time.Time
}

// NewStatusService returns a service backed by the given repository and
// database handle.
func NewStatusService(repo repository.StatusRepository, pinger Pinger) StatusService {
	return &statusService{repo: repo, pinger: pinger, now: time.Now}
}

func (s *statusService) Status(ctx context.Context) (*StatusReport, error) {
	status, err := s.repo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load status: %w", err)
	}

	report := &StatusReport{State: StateOffline}

	start := s.now()
	if err := s.pinger.Ping(ctx); err != nil {
		report.DBError = err.Error()
	}
	report.DBLatencyMS = s.now().Sub(start).Milliseconds()

	if status == nil {
		return report, nil
	}

	report.Version = status.Version
	report.StartedAt = status.StartedAt
	report.LastHeartbeat = status.LastHeartbeat
	report.State = s.deriveState(status)

	if status.StartedAt != nil && report.State != StateOffline {
		report.Uptime = formatUptime(s.now().Sub(*status.StartedAt))
	}
	return report, nil
}

func (s *statusService) deriveState(status *model.BotStatus) string {
	if status.Maintenance {
		return StateMaintenance
	}
	if status.LastHeartbeat == nil {
		if status.Online {
			return StateOnline
		}
		return StateOffline
	}
	if s.now().Sub(*status.LastHeartbeat) < heartbeatWindow {
		return StateOnline
	}
	return StateOffline
}

// formatUptime renders a duration as "Nd Nh Nm".
func formatUptime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	days := int64(d.Hours()) / 24
	hours := int64(d.Hours()) % 24
	minutes := int64(d.Minutes()) % 60
	return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
}

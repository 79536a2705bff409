package service

import (
	"encoding/json"
	"time"

	"github.com/filegram/panel/internal/app/model"
	"github.com/nats-io/nats.go"
)

// ActivityStreamSubject is the JetStream subject mutation events go to.
const ActivityStreamSubject = "panel.activity"

// ActivityPublisher publishes dashboard mutation events to NATS JetStream.
// A nil publisher (or one created without a JetStream context) is a no-op,
// so callers never guard the call site.
type ActivityPublisher struct {
	js nats.JetStreamContext
}

// NewActivityPublisher creates a new mutation event publisher.
func NewActivityPublisher(js nats.JetStreamContext) *ActivityPublisher {
	return &ActivityPublisher{js: js}
}

// ActivityEvent is the wire form of a published mutation.
type ActivityEvent struct {
	Action    string         `json:"action"`
	Resource  string         `json:"resource"`
	ActorID   string         `json:"actor_id,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// Publish sends a mutation event to the activity stream.
func (p *ActivityPublisher) Publish(action, resource, actorID string, metadata map[string]any) error {
	if p == nil || p.js == nil {
		return nil
	}

	event := ActivityEvent{
		Action:    action,
		Resource:  resource,
		ActorID:   actorID,
		Metadata:  metadata,
		Timestamp: time.Now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	_, err = p.js.Publish(ActivityStreamSubject, data)
	return err
}

// PublishEntry sends an event mirroring a persisted activity-log entry.
func (p *ActivityPublisher) PublishEntry(entry *model.ActivityLogEntry) error {
	if entry == nil {
		return nil
	}
	return p.Publish(entry.Action, "links", entry.UserID, entry.Metadata)
}

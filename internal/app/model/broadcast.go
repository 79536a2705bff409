package model

import "time"

// Broadcast job statuses. This service only ever creates pending jobs and
// moves pending to cancelled; every other transition belongs to the external
// bot process polling the broadcasts collection.
const (
	BroadcastPending    = "pending"
	BroadcastInProgress = "in_progress"
	BroadcastCompleted  = "completed"
	BroadcastFailed     = "failed"
	BroadcastCancelled  = "cancelled"
)

// Broadcast message types.
const (
	BroadcastTypeText     = "text"
	BroadcastTypePhoto    = "photo"
	BroadcastTypeVideo    = "video"
	BroadcastTypeDocument = "document"
)

// BroadcastOptions are delivery flags interpreted by the bot.
type BroadcastOptions struct {
	Pin         bool   `json:"pin" bson:"pin"`
	DeleteAfter *int64 `json:"delete_after" bson:"delete_after,omitempty"` // seconds
	Forward     bool   `json:"forward" bson:"forward"`
}

// BroadcastJob is an intent-to-message-everyone record. total_users is a
// snapshot of the non-banned user count at creation time; sent/failed
// counters are incremented by the bot, not by this codebase.
type BroadcastJob struct {
	ID          string           `json:"_id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()" bson:"-"`
	Message     string           `json:"message" gorm:"type:text;not null" bson:"message"`
	Type        string           `json:"type" gorm:"size:32;not null;default:text" bson:"type"`
	Status      string           `json:"status" gorm:"size:32;not null;default:pending;index" bson:"status"`
	TotalUsers  int64            `json:"total_users" gorm:"not null;default:0" bson:"total_users"`
	SentCount   int64            `json:"sent_count" gorm:"not null;default:0" bson:"sent_count"`
	FailedCount int64            `json:"failed_count" gorm:"not null;default:0" bson:"failed_count"`
	CreatedBy   string           `json:"created_by" gorm:"size:64" bson:"created_by"`
	Options     BroadcastOptions `json:"options" gorm:"serializer:json" bson:"options"`
	CreatedAt   time.Time        `json:"created_at" gorm:"autoCreateTime;index" bson:"created_at"`
	CompletedAt *time.Time       `json:"completed_at,omitempty" bson:"completed_at,omitempty"`
	CancelledAt *time.Time       `json:"cancelled_at,omitempty" bson:"cancelled_at,omitempty"`
}

func (BroadcastJob) TableName() string { return "broadcasts" }

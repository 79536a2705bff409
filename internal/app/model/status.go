package model

import "time"

// StatusID is the fixed key of the bot heartbeat record.
const StatusID = "status"

// BotStatus is the heartbeat record maintained by the external bot process.
type BotStatus struct {
	ID             string     `json:"id" gorm:"primaryKey;size:64" bson:"-"`
	Online         bool       `json:"online" bson:"online"`
	Maintenance    bool       `json:"maintenance" bson:"maintenance"`
	Version        string     `json:"version" gorm:"size:32" bson:"version,omitempty"`
	StartedAt      *time.Time `json:"started_at,omitempty" bson:"started_at,omitempty"`
	LastHeartbeat  *time.Time `json:"last_heartbeat,omitempty" bson:"last_heartbeat,omitempty"`
	ResponseTimeMS *int64     `json:"response_time_ms,omitempty" bson:"response_time_ms,omitempty"`
}

func (BotStatus) TableName() string { return "bot_status" }

// Stats is the aggregate dashboard summary.
type Stats struct {
	Users UserStats `json:"users"`
	Files FileStats `json:"files"`
}

type UserStats struct {
	Total      int64 `json:"total"`
	Banned     int64 `json:"banned"`
	Premium    int64 `json:"premium"`
	RecentWeek int64 `json:"recentWeek"`
}

type FileStats struct {
	Total             int64 `json:"total"`
	TotalStorageBytes int64 `json:"totalStorageBytes"`
}

// SpamLogEntry is a row from the bot's spam_logs collection, read
// best-effort (the collection may not exist yet).
type SpamLogEntry struct {
	UserID       int64     `json:"user_id" gorm:"column:user_id" bson:"user_id"`
	Name         string    `json:"name" gorm:"size:255" bson:"name"`
	MessageCount int64     `json:"message_count" bson:"message_count"`
	Timestamp    time.Time `json:"timestamp" gorm:"index" bson:"timestamp"`
}

func (SpamLogEntry) TableName() string { return "spam_logs" }

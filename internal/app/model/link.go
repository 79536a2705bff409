package model

import "time"

// Link types supported by the bot.
const (
	LinkTypeSingle      = "single"
	LinkTypeBatch       = "batch"
	LinkTypeCustomBatch = "custom_batch"
)

// BotLink is a sharing link managed through the dashboard.
type BotLink struct {
	ID            string     `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()" bson:"-"`
	Name          string     `json:"name" gorm:"size:255;not null" bson:"name"`
	BotLink       string     `json:"bot_link" gorm:"column:bot_link;type:text;not null" bson:"bot_link"`
	CategoryID    *string    `json:"category_id" gorm:"type:uuid;index" bson:"category_id,omitempty"`
	CreatedBy     string     `json:"created_by" gorm:"size:64" bson:"created_by"`
	CreatedByName string     `json:"created_by_name" gorm:"size:255" bson:"created_by_name"`
	FirstMsgID    *int64     `json:"first_msg_id,omitempty" bson:"first_msg_id,omitempty"`
	LastMsgID     *int64     `json:"last_msg_id,omitempty" bson:"last_msg_id,omitempty"`
	LinkType      string     `json:"link_type" gorm:"size:32;not null;default:single" bson:"link_type"`
	IsActive      bool       `json:"is_active" gorm:"not null;default:true" bson:"is_active"`
	ClickCount    int64      `json:"click_count" gorm:"not null;default:0" bson:"click_count"`
	SharedWith    []string   `json:"shared_with" gorm:"serializer:json" bson:"shared_with,omitempty"`
	Notes         string     `json:"notes,omitempty" gorm:"type:text" bson:"notes,omitempty"`
	CreatedAt     time.Time  `json:"created_at" gorm:"autoCreateTime;index" bson:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" gorm:"autoUpdateTime" bson:"updated_at"`

	// Joined category, populated on reads; not a stored column.
	Category *LinkCategory `json:"category,omitempty" gorm:"-" bson:"-"`
}

func (BotLink) TableName() string { return "bot_links" }

// LinkCategory groups links. Deleting a category nulls category_id on its
// links; it never cascades.
type LinkCategory struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()" bson:"-"`
	Name      string    `json:"name" gorm:"size:255;not null;uniqueIndex" bson:"name"`
	Color     string    `json:"color" gorm:"size:32" bson:"color"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime" bson:"created_at"`
}

func (LinkCategory) TableName() string { return "link_categories" }

// ActivityLogEntry is an append-only audit row written by mutation handlers.
type ActivityLogEntry struct {
	ID          string         `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()" bson:"-"`
	Action      string         `json:"action" gorm:"size:64;not null;index" bson:"action"`
	Description string         `json:"description,omitempty" gorm:"type:text" bson:"description,omitempty"`
	UserID      string         `json:"user_id,omitempty" gorm:"size:64" bson:"user_id,omitempty"`
	UserName    string         `json:"user_name,omitempty" gorm:"size:255" bson:"user_name,omitempty"`
	LinkID      *string        `json:"link_id,omitempty" gorm:"type:uuid" bson:"link_id,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty" gorm:"serializer:json" bson:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"created_at" gorm:"autoCreateTime;index" bson:"created_at"`
}

func (ActivityLogEntry) TableName() string { return "activity_log" }

// LinkStats summarizes the link inventory for the dashboard.
type LinkStats struct {
	Total      int64               `json:"total"`
	Active     int64               `json:"active"`
	ByCategory []LinkCategoryCount `json:"by_category"`
}

type LinkCategoryCount struct {
	CategoryID string `json:"category_id"`
	Name       string `json:"name"`
	Color      string `json:"color"`
	Count      int64  `json:"count"`
}

package model

import "time"

// Permissions is the per-admin capability set. Stored sets may be partial;
// readers must merge DefaultPermissions underneath before use.
type Permissions map[string]bool

// DefaultPermissions returns the fixed default capability set granted to new
// admins and merged under any stored partial set.
func DefaultPermissions() Permissions {
	return Permissions{
		"can_broadcast":       true,
		"can_ban":             true,
		"can_genlink":         true,
		"can_batch":           true,
		"can_custom_batch":    true,
		"can_auto_link":       false,
		"can_delete_files":    false,
		"can_view_stats":      true,
		"can_manage_fsub":     false,
		"can_set_delete_time": false,
	}
}

// Merged returns defaults shallow-merged with p; p wins on conflicts. The
// receiver is not modified.
func (p Permissions) Merged() Permissions {
	out := DefaultPermissions()
	for k, v := range p {
		out[k] = v
	}
	return out
}

// BotAdmin is an elevated bot user managed exclusively by owners.
type BotAdmin struct {
	UserID      int64       `json:"user_id" gorm:"primaryKey;column:user_id" bson:"user_id"`
	Name        string      `json:"name" gorm:"size:255" bson:"name"`
	Permissions Permissions `json:"permissions" gorm:"serializer:json" bson:"permissions"`
	CreatedAt   time.Time   `json:"created_at" gorm:"autoCreateTime" bson:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" gorm:"autoUpdateTime" bson:"updated_at,omitempty"`
}

func (BotAdmin) TableName() string { return "admins" }

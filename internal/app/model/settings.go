package model

import "time"

// SettingsID is the fixed key of the singleton settings record.
const SettingsID = "bot_settings"

// Settings is the loose behavior-toggle document shared with the bot. The
// bot adds keys of its own, so it is kept schemaless; readers merge
// DefaultSettings underneath whatever is stored.
type Settings map[string]any

// DefaultSettings returns the documented default toggles and thresholds.
func DefaultSettings() Settings {
	return Settings{
		"auto_link":               false,
		"fsub_mode":               true,
		"preview":                 true,
		"delete_style":            "text",
		"auto_delete":             true,
		"auto_delete_time":        600, // seconds
		"spam_protection":         true,
		"spam_limit":              10, // messages
		"spam_rate":               60, // seconds
		"force_subscribe_enabled": true,
	}
}

// Merged returns defaults overlaid with s; s wins on conflicts.
func (s Settings) Merged() Settings {
	out := DefaultSettings()
	for k, v := range s {
		out[k] = v
	}
	return out
}

// SettingsRecord is the relational shape of the singleton: one row keyed by
// SettingsID with the document in a JSON column. The document backend stores
// the map directly under _id == SettingsID.
type SettingsRecord struct {
	ID        string    `json:"id" gorm:"primaryKey;size:64"`
	Data      Settings  `json:"data" gorm:"serializer:json"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (SettingsRecord) TableName() string { return "settings" }

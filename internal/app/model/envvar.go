package model

import "time"

// SecretPlaceholder is stored in place of secret values; the plaintext only
// ever reaches the hosting provider's API during sync.
const SecretPlaceholder = "***HIDDEN***"

// EnvVar is a bot environment variable tracked in the dashboard, optionally
// mirrored to the hosting provider.
type EnvVar struct {
	Key         string    `json:"key" gorm:"primaryKey;size:255" bson:"key"`
	Value       string    `json:"value" gorm:"type:text" bson:"value"`
	Description string    `json:"description,omitempty" gorm:"type:text" bson:"description,omitempty"`
	IsSecret    bool      `json:"is_secret" gorm:"not null;default:false" bson:"is_secret"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime" bson:"updated_at"`
}

func (EnvVar) TableName() string { return "bot_env_vars" }

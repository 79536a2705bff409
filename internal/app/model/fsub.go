package model

import "time"

// FsubChannel is a force-subscribe channel: bot users must join it before
// using bot features.
type FsubChannel struct {
	ID              string    `json:"_id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()" bson:"-"`
	ChannelID       int64     `json:"channel_id" gorm:"uniqueIndex;not null" bson:"channel_id"`
	ChannelName     string    `json:"channel_name" gorm:"size:255" bson:"channel_name"`
	ChannelUsername string    `json:"channel_username,omitempty" gorm:"size:255" bson:"channel_username,omitempty"`
	AddedAt         time.Time `json:"added_at" gorm:"autoCreateTime" bson:"added_at"`
	AddedBy         string    `json:"added_by" gorm:"size:64" bson:"added_by"`
}

func (FsubChannel) TableName() string { return "fsub_channels" }

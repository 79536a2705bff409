package model

import "time"

// File is a stored file record written by the bot; the dashboard is
// read-only over it.
type File struct {
	ID        string    `json:"_id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()" bson:"-"`
	FileID    string    `json:"file_id" gorm:"size:255;index" bson:"file_id"`
	FileName  string    `json:"file_name" gorm:"size:512" bson:"file_name"`
	FileType  string    `json:"file_type" gorm:"size:64;index" bson:"file_type"`
	FileSize  int64     `json:"file_size" gorm:"not null;default:0" bson:"file_size"`
	Caption   string    `json:"caption" gorm:"type:text" bson:"caption,omitempty"`
	Downloads int64     `json:"downloads" gorm:"not null;default:0" bson:"downloads"`
	CreatedAt time.Time `json:"created_at" gorm:"index" bson:"created_at"`
}

func (File) TableName() string { return "files" }

package model

import "time"

// User is a bot user record, owned by the external bot process. The panel
// only reads it and toggles the ban / spam-flag fields.
type User struct {
	UserID       int64      `json:"user_id" gorm:"primaryKey;column:user_id" bson:"user_id"`
	Name         string     `json:"name" gorm:"size:255" bson:"name"`
	Username     string     `json:"username,omitempty" gorm:"size:255" bson:"username,omitempty"`
	Phone        string     `json:"phone,omitempty" gorm:"size:32" bson:"phone,omitempty"`
	Banned       bool       `json:"banned" gorm:"not null;default:false;index" bson:"banned"`
	BannedAt     *time.Time `json:"banned_at,omitempty" bson:"banned_at,omitempty"`
	IsPremium    bool       `json:"is_premium" gorm:"not null;default:false" bson:"is_premium"`
	JoinedDate   time.Time  `json:"joined_date" gorm:"index" bson:"joined_date"`
	SpamFlagged  bool       `json:"spam_flagged" gorm:"not null;default:false;index" bson:"spam_flagged"`
	SpamCount    int        `json:"spam_count" gorm:"not null;default:0" bson:"spam_count"`
	LastSpam     *time.Time `json:"last_spam,omitempty" bson:"last_spam,omitempty"`
	MessageCount int64      `json:"message_count" gorm:"not null;default:0" bson:"message_count"`
	LastActive   *time.Time `json:"last_active,omitempty" bson:"last_active,omitempty"`
}

func (User) TableName() string { return "users" }

// User list filters accepted by the users endpoint.
const (
	UserFilterAll     = "all"
	UserFilterActive  = "active"
	UserFilterBanned  = "banned"
	UserFilterPremium = "premium"
)

package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification types delivered to a recipient's feed.
const (
	NotificationTypeLike = "like"
)

// Notification matches the Supabase notifications table. UserID is the
// recipient; ActorID is the account whose action produced the row and is
// never equal to UserID (self-notifications are suppressed at creation).
type Notification struct {
	NotificationID uuid.UUID  `gorm:"column:notification_id;type:uuid;primaryKey" json:"notification_id"`
	UserID         uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	ActorID        *uuid.UUID `gorm:"column:actor_id;type:uuid" json:"actor_id"`
	Type           string     `gorm:"column:type;type:varchar(50);not null" json:"type"`
	Title          string     `gorm:"column:title" json:"title"`
	Message        string     `gorm:"column:message;type:text" json:"message"`
	Link           string     `gorm:"column:link" json:"link"`
	IsRead         bool       `gorm:"column:is_read;default:false" json:"is_read"`
	CreatedAt      time.Time  `json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.NotificationID == uuid.Nil {
		n.NotificationID = uuid.New()
	}
	return nil
}

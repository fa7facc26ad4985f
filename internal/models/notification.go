package models

import "time"

// NotificationType enumerates the events that produce a notification.
type NotificationType string

const (
	// NotificationTypeLike is emitted when a user likes a post.
	NotificationTypeLike NotificationType = "like"
	// NotificationTypeFollow is emitted when a user follows another user.
	NotificationTypeFollow NotificationType = "follow"
)

// Notification is a message from one user to another produced as a side
// effect of a like or follow.
type Notification struct {
	ID         uint             `gorm:"primaryKey" json:"id"`
	Type       NotificationType `gorm:"type:varchar(20);not null" json:"type"`
	FromUserID uint             `gorm:"not null;index" json:"from_user_id"`
	ToUserID   uint             `gorm:"not null;index" json:"to_user_id"`
	Read       bool             `gorm:"default:false" json:"read"`
	CreatedAt  time.Time        `json:"created_at"`

	FromUser User `gorm:"foreignKey:FromUserID" json:"from_user"`
}

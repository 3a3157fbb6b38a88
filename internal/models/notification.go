package models

import (
	"time"

	"gorm.io/datatypes"
)

type NotificationType string

const (
	NotificationApplicationSubmitted NotificationType = "application.submitted"
	NotificationApplicationStatus    NotificationType = "application.status_changed"
	NotificationTaskAssigned         NotificationType = "task.assigned"
	NotificationDeadlineReminder     NotificationType = "task.deadline_reminder"
)

// Notification is the persisted mirror of an emitted event, kept so users
// have an in-app feed. Delivery to external channels (email etc.) is the
// event consumer's concern, not ours.
type Notification struct {
	ID        uint             `json:"id" gorm:"primaryKey"`
	UserID    uint             `json:"user_id" gorm:"not null;index"`
	Type      NotificationType `json:"type" gorm:"not null;size:100;index"`
	Title     string           `json:"title" gorm:"not null;size:255"`
	Message   string           `json:"message" gorm:"type:text"`
	Payload   datatypes.JSON   `json:"payload"`
	IsRead    bool             `json:"is_read" gorm:"default:false;index"`
	CreatedAt time.Time        `json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

package models

import "time"

type NotificationStatus string

const (
	NotificationUnread NotificationStatus = "unread"
	NotificationRead   NotificationStatus = "read"
)

type Notification struct {
	ID        uint               `json:"id" gorm:"primaryKey"`
	UserID    uint               `json:"user_id" gorm:"not null;index"`
	QuizID    *uint              `json:"quiz_id"`
	Message   string             `json:"message" gorm:"not null"`
	Status    NotificationStatus `json:"status" gorm:"type:varchar(10);not null;default:'unread'"`
	Timestamp time.Time          `json:"timestamp"`
}

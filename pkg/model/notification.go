package model

import "time"

// Notification is an in-app notification attached to an event. UserID is nil
// for event-wide notifications.
type Notification struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	EventID   uint      `gorm:"not null" json:"eventId"`
	Event     *Event    `json:"-"`
	UserID    *uint     `json:"userId,omitempty"`
	Message   string    `gorm:"not null" json:"message"`
}

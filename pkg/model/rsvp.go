package model

import "time"

const (
	RSVPAccepted = "accepted"
	RSVPDeclined = "declined"
	RSVPPending  = "pending"
)

// RSVP records a user's stated pre-event intent to attend. The composite
// unique index keeps at most one row per (event, user) pair, a second RSVP is
// an upsert.
type RSVP struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	EventID   uint      `gorm:"not null;uniqueIndex:idx_rsvp_event_user" json:"eventId"`
	Event     *Event    `json:"event,omitempty"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_rsvp_event_user" json:"userId"`
	User      *User     `json:"user,omitempty"`
	Status    string    `gorm:"not null;default:pending" json:"status"`
}

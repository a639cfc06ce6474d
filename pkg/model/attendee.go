package model

import "time"

const (
	AttendanceAttended = "attended"
	AttendanceAbsent   = "absent"
)

// Attendee records post-event attendance. It is deliberately distinct from
// RSVP: an RSVP states intent before the event, an Attendee row states what
// actually happened. The two are related only through the (event, user) pair.
type Attendee struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	EventID   uint      `gorm:"not null;uniqueIndex:idx_attendee_event_user" json:"eventId"`
	Event     *Event    `json:"-"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_attendee_event_user" json:"userId"`
	User      *User     `json:"user,omitempty"`
	Status    string    `gorm:"not null" json:"status"`
}

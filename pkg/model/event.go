package model

import "time"

// Event domain object. CreatedByID is always the authenticated caller, never
// client supplied. Attendees is the resolved view of the event's RSVPs.
type Event struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	ImageURL    string     `json:"imageUrl,omitempty"`
	StartTime   time.Time  `gorm:"not null" json:"startTime"`
	EndTime     *time.Time `json:"endTime,omitempty"`
	CreatedByID uint       `gorm:"not null" json:"createdBy"`
	CreatedBy   *User      `json:"-"`
	Attendees   []User     `gorm:"many2many:event_attendees" json:"attendees"`
}

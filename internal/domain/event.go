package domain

import (
	"time"

	"github.com/google/uuid"
)

type Event struct {
	ID          EventID   `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"type:text;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Location    string    `gorm:"type:text" json:"location"`
	StartsAt    time.Time `gorm:"not null;index" json:"startsAt"`
	// Capacity 0 means unlimited.
	Capacity    int       `gorm:"not null;default:0" json:"capacity"`
	CreatedByID UserID    `gorm:"type:uuid;index" json:"createdById"`
	CreatedAt   time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"not null" json:"updatedAt"`
}

func (Event) TableName() string { return "events" }

// RSVP joins a user to an event. At most one row per (user, event).
type RSVP struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	EventID   EventID   `gorm:"type:uuid;not null;uniqueIndex:ux_rsvps_event_user" json:"eventId"`
	UserID    UserID    `gorm:"type:uuid;not null;uniqueIndex:ux_rsvps_event_user" json:"userId"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
}

func (RSVP) TableName() string { return "rsvps" }

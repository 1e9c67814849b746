package models

import (
	"time"

	"github.com/google/uuid"
)

// RsvpStatus is the closed set of RSVP states. The store does not constrain
// transitions between them; capacity-aware waitlisting lives in the store's
// RSVP operation, not in the schema.
type RsvpStatus string

const (
	RsvpConfirmed  RsvpStatus = "CONFIRMED"
	RsvpWaitlisted RsvpStatus = "WAITLISTED"
	RsvpCancelled  RsvpStatus = "CANCELLED"
)

// Valid reports whether s is one of the declared statuses.
func (s RsvpStatus) Valid() bool {
	switch s {
	case RsvpConfirmed, RsvpWaitlisted, RsvpCancelled:
		return true
	}
	return false
}

// Event is a scheduled happening users can RSVP to. Capacity is optional;
// nil means unlimited.
type Event struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Title       string    `gorm:"type:text;not null"`
	Description string    `gorm:"type:text;not null"`
	Location    string    `gorm:"type:text;not null"`
	StartsAt    time.Time `gorm:"not null;index:idx_events_published,priority:2"`
	EndsAt      time.Time `gorm:"not null"`
	Capacity    *int
	Image       *string   `gorm:"type:text"`
	IsPublished bool      `gorm:"not null;default:false;index:idx_events_published,priority:1"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`

	Rsvps []EventRsvp `gorm:"constraint:OnDelete:CASCADE"`
}

// EventRsvp records one user's response to one event. The composite unique
// index means a repeat RSVP updates the existing row instead of adding one.
type EventRsvp struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_event_rsvps_user_event,priority:1"`
	EventID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_event_rsvps_user_event,priority:2"`
	Status    RsvpStatus `gorm:"type:text;not null;default:'CONFIRMED'"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`

	User  User  `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID"`
	Event Event `gorm:"constraint:OnDelete:CASCADE;foreignKey:EventID;references:ID"`
}

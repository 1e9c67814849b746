package models

import (
	"time"

	"github.com/google/uuid"
)

// SubscriptionStatus is the closed set of membership billing states.
type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "ACTIVE"
	SubscriptionInactive  SubscriptionStatus = "INACTIVE"
	SubscriptionCancelled SubscriptionStatus = "CANCELLED"
	SubscriptionPastDue   SubscriptionStatus = "PAST_DUE"
)

// Valid reports whether s is one of the declared statuses.
func (s SubscriptionStatus) Valid() bool {
	switch s {
	case SubscriptionActive, SubscriptionInactive, SubscriptionCancelled, SubscriptionPastDue:
		return true
	}
	return false
}

// MembershipSubscription holds the paid-membership state for a user, at most
// one row per user. The external identifiers come from the billing provider
// and are unique when present.
type MembershipSubscription struct {
	ID                     uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID                 uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex"`
	ExternalCustomerID     *string            `gorm:"type:text;uniqueIndex"`
	ExternalSubscriptionID *string            `gorm:"type:text;uniqueIndex"`
	Status                 SubscriptionStatus `gorm:"type:text;not null;default:'INACTIVE'"`
	CurrentPeriodEnd       *time.Time
	CancelledAt            *time.Time
	CreatedAt              time.Time `gorm:"autoCreateTime"`
	UpdatedAt              time.Time `gorm:"autoUpdateTime"`

	User User `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID"`
}

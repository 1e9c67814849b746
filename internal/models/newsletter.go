package models

import (
	"time"

	"github.com/google/uuid"
)

// NewsletterSubscription tracks a newsletter signup keyed by email. The user
// link is optional: deleting the account clears UserID but the subscription
// row survives.
type NewsletterSubscription struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email          string     `gorm:"type:text;uniqueIndex;not null"`
	UserID         *uuid.UUID `gorm:"type:uuid;index"`
	IsActive       bool       `gorm:"not null;default:true"`
	ConfirmToken   *string    `gorm:"type:text;uniqueIndex"`
	SubscribedAt   time.Time  `gorm:"autoCreateTime"`
	UnsubscribedAt *time.Time

	User *User `gorm:"constraint:OnDelete:SET NULL;foreignKey:UserID;references:ID"`
}

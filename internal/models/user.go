package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered reader or author of the platform.
type User struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email         string    `gorm:"type:text;uniqueIndex;not null"`
	Username      *string   `gorm:"type:text;uniqueIndex"`
	PasswordHash  string    `gorm:"type:text;not null"`
	EmailVerified bool      `gorm:"not null;default:false"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`

	Sessions      []Session      `gorm:"constraint:OnDelete:CASCADE"`
	Articles      []Article      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	SavedArticles []SavedArticle `gorm:"constraint:OnDelete:CASCADE"`
	Comments      []Comment      `gorm:"constraint:OnDelete:CASCADE"`
	EventRsvps    []EventRsvp    `gorm:"constraint:OnDelete:CASCADE"`

	// Deleting the user clears the link but keeps the subscription row.
	NewsletterSubscriptions []NewsletterSubscription `gorm:"constraint:OnDelete:SET NULL"`

	Membership *MembershipSubscription `gorm:"constraint:OnDelete:CASCADE"`
}

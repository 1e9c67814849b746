package models

import (
	"time"

	"github.com/google/uuid"
)

// EmailVerificationToken confirms ownership of an email address.
//
// UserID is intentionally not a declared relation: token rows are not
// cascade-deleted with the user and may outlive it.
type EmailVerificationToken struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Token     string    `gorm:"type:text;uniqueIndex;not null"`
	Email     string    `gorm:"type:text;not null"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// PasswordResetToken authorizes a one-time password reset. Same loose
// coupling to users as EmailVerificationToken.
type PasswordResetToken struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Token     string    `gorm:"type:text;uniqueIndex;not null"`
	Email     string    `gorm:"type:text;not null"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

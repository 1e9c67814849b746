package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a reader comment on an article.
type Comment struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Body      string    `gorm:"type:text;not null"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ArticleID uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	User    User    `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID"`
	Article Article `gorm:"constraint:OnDelete:CASCADE;foreignKey:ArticleID;references:ID"`
}

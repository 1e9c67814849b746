package models

import (
	"time"

	"github.com/google/uuid"
)

// SavedArticle is a per-user bookmark. A user can save an article at most
// once; the composite primary key enforces that.
type SavedArticle struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	ArticleID uuid.UUID `gorm:"type:uuid;primaryKey"`
	SavedAt   time.Time `gorm:"autoCreateTime"`

	User    User    `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID"`
	Article Article `gorm:"constraint:OnDelete:CASCADE;foreignKey:ArticleID;references:ID"`
}

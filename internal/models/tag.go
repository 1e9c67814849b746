package models

import (
	"time"

	"github.com/google/uuid"
)

// Tag labels articles across categories.
type Tag struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"type:text;uniqueIndex;not null"`
	Slug      string    `gorm:"type:text;uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	Articles []Article `gorm:"many2many:article_tags"`
}

// ArticleTag is the join row between articles and tags. It is removed when
// either side is deleted.
type ArticleTag struct {
	ArticleID uuid.UUID `gorm:"type:uuid;primaryKey"`
	TagID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	Article Article `gorm:"constraint:OnDelete:CASCADE;foreignKey:ArticleID;references:ID"`
	Tag     Tag     `gorm:"constraint:OnDelete:CASCADE;foreignKey:TagID;references:ID"`
}

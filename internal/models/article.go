package models

import (
	"time"

	"github.com/google/uuid"
)

// Article is a piece of content authored by a user and filed under exactly
// one category. The slug is the stable external identifier used in URLs and
// must not change once the article is published.
type Article struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Slug           string     `gorm:"type:text;uniqueIndex;not null"`
	Title          string     `gorm:"type:text;not null"`
	Content        string     `gorm:"type:text;not null"`
	Excerpt        string     `gorm:"type:text;not null"`
	CoverImage     *string    `gorm:"type:text"`
	ReadingTime    int        `gorm:"not null;default:5"`
	IsPremium      bool       `gorm:"not null;default:false"`
	IsPublished    bool       `gorm:"not null;default:false;index:idx_articles_published,priority:1"`
	PublishedAt    *time.Time `gorm:"index:idx_articles_published,priority:2,sort:desc"`
	Views          int64      `gorm:"not null;default:0"`
	SEOTitle       *string    `gorm:"type:text"`
	SEODescription *string    `gorm:"type:text"`
	AuthorID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	CategoryID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	CreatedAt      time.Time  `gorm:"autoCreateTime"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime"`

	Author   User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:AuthorID;references:ID"`
	Category Category `gorm:"constraint:OnDelete:RESTRICT;foreignKey:CategoryID;references:ID"`

	Tags     []Tag          `gorm:"many2many:article_tags"`
	SavedBy  []SavedArticle `gorm:"constraint:OnDelete:CASCADE"`
	Comments []Comment      `gorm:"constraint:OnDelete:CASCADE"`
}

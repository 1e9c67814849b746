package models

import (
	"time"

	"github.com/google/uuid"
)

// Category groups articles. Articles reference it with a required foreign
// key, so a category that still has articles cannot be deleted.
type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string    `gorm:"type:text;uniqueIndex;not null"`
	Slug        string    `gorm:"type:text;uniqueIndex;not null"`
	Description *string   `gorm:"type:text"`
	Color       *string   `gorm:"type:text"`
	SortOrder   *int
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`

	Articles []Article `gorm:"constraint:OnDelete:RESTRICT"`
}

package db

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"quill/internal/models"
)

// Seed inserts baseline lookup data such as default categories.
func Seed(ctx context.Context, database *gorm.DB) error {
	defaults := []struct {
		name string
		slug string
	}{
		{"General", "general"},
		{"Announcements", "announcements"},
	}
	for _, c := range defaults {
		category := models.Category{Name: c.name, Slug: c.slug}
		if err := database.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&category).Error; err != nil {
			return err
		}
	}
	return nil
}

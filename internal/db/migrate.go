package db

import (
	"context"

	"gorm.io/gorm"

	"quill/internal/models"
)

// Migrate performs schema migrations for the persistent models. The order
// matters: referenced tables must exist before the tables that point at them.
func Migrate(ctx context.Context, database *gorm.DB) error {
	if err := database.SetupJoinTable(&models.Article{}, "Tags", &models.ArticleTag{}); err != nil {
		return err
	}
	if err := database.SetupJoinTable(&models.Tag{}, "Articles", &models.ArticleTag{}); err != nil {
		return err
	}

	return database.WithContext(ctx).AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.EmailVerificationToken{},
		&models.PasswordResetToken{},
		&models.Category{},
		&models.Tag{},
		&models.Article{},
		&models.ArticleTag{},
		&models.SavedArticle{},
		&models.Comment{},
		&models.NewsletterSubscription{},
		&models.Event{},
		&models.EventRsvp{},
		&models.MembershipSubscription{},
	)
}

package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"quill/internal/models"
)

// Subscribe signs an email up for the newsletter. A previously unsubscribed
// address is reactivated in place rather than duplicated; the unique email
// index backs that up. The confirmation token is issued fresh either way.
func (s *Store) Subscribe(ctx context.Context, email string, userID *uuid.UUID) (*models.NewsletterSubscription, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	token := uuid.NewString()
	var sub models.NewsletterSubscription
	err := s.tx(ctx, func(tx *gorm.DB) error {
		err := tx.First(&sub, "email = ?", email).Error
		switch {
		case err == nil:
			return tx.Model(&sub).Updates(map[string]any{
				"is_active":       true,
				"unsubscribed_at": nil,
				"confirm_token":   token,
				"user_id":         userID,
			}).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			sub = models.NewsletterSubscription{
				Email:        email,
				UserID:       userID,
				IsActive:     true,
				ConfirmToken: &token,
			}
			return tx.Create(&sub).Error
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// ConfirmSubscription redeems a double-opt-in token. The token is cleared so
// it cannot be replayed.
func (s *Store) ConfirmSubscription(ctx context.Context, token string) (*models.NewsletterSubscription, error) {
	var sub models.NewsletterSubscription
	err := s.tx(ctx, func(tx *gorm.DB) error {
		if err := tx.First(&sub, "confirm_token = ?", token).Error; err != nil {
			return err
		}
		return tx.Model(&sub).Updates(map[string]any{
			"is_active":     true,
			"confirm_token": nil,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// Unsubscribe deactivates the subscription for an address. The row is kept
// so the unsubscribe state survives resubscription attempts by third parties.
func (s *Store) Unsubscribe(ctx context.Context, email string) error {
	res := s.db.WithContext(ctx).Model(&models.NewsletterSubscription{}).
		Where("email = ?", email).
		Updates(map[string]any{
			"is_active":       false,
			"unsubscribed_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SubscriptionByEmail returns the subscription row or ErrNotFound.
func (s *Store) SubscriptionByEmail(ctx context.Context, email string) (*models.NewsletterSubscription, error) {
	var sub models.NewsletterSubscription
	if err := s.db.WithContext(ctx).First(&sub, "email = ?", email).Error; err != nil {
		return nil, translate(err)
	}
	return &sub, nil
}

// ListActiveSubscribers returns active subscriptions for a mailing pass.
func (s *Store) ListActiveSubscribers(ctx context.Context, p Page) ([]models.NewsletterSubscription, error) {
	var subs []models.NewsletterSubscription
	err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("subscribed_at ASC, id ASC").
		Limit(p.limit()).
		Offset(p.Offset).
		Find(&subs).Error
	return subs, translate(err)
}

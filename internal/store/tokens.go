package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"quill/internal/models"
)

// CreateEmailVerificationToken issues a verification token for the address.
// Token generation is left to the caller (an email service owns delivery);
// the store only guarantees token uniqueness.
func (s *Store) CreateEmailVerificationToken(ctx context.Context, t *models.EmailVerificationToken) error {
	if err := validateEmail(t.Email); err != nil {
		return err
	}
	return translate(s.db.WithContext(ctx).Create(t).Error)
}

// ConsumeEmailVerificationToken deletes the token and marks the owning user
// verified in one transaction. Expired or unknown tokens read as ErrNotFound.
func (s *Store) ConsumeEmailVerificationToken(ctx context.Context, token string) (*models.EmailVerificationToken, error) {
	var t models.EmailVerificationToken
	err := s.tx(ctx, func(tx *gorm.DB) error {
		if err := tx.First(&t, "token = ? AND expires_at > ?", token, time.Now().UTC()).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.EmailVerificationToken{}, "id = ?", t.ID).Error; err != nil {
			return err
		}
		// The user may have been deleted since the token was issued; the
		// token table has no enforced relation, so tolerate a miss here.
		res := tx.Model(&models.User{}).Where("id = ?", t.UserID).Update("email_verified", true)
		return res.Error
	})
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// CreatePasswordResetToken issues a reset token for the address.
func (s *Store) CreatePasswordResetToken(ctx context.Context, t *models.PasswordResetToken) error {
	if err := validateEmail(t.Email); err != nil {
		return err
	}
	return translate(s.db.WithContext(ctx).Create(t).Error)
}

// ConsumePasswordResetToken deletes and returns the token while it is still
// valid, so the caller can apply the new password hash exactly once.
func (s *Store) ConsumePasswordResetToken(ctx context.Context, token string) (*models.PasswordResetToken, error) {
	var t models.PasswordResetToken
	err := s.tx(ctx, func(tx *gorm.DB) error {
		if err := tx.First(&t, "token = ? AND expires_at > ?", token, time.Now().UTC()).Error; err != nil {
			return err
		}
		return tx.Delete(&models.PasswordResetToken{}, "id = ?", t.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// DeleteExpiredTokens sweeps both token tables and reports total rows removed.
func (s *Store) DeleteExpiredTokens(ctx context.Context) (int64, error) {
	now := time.Now().UTC()
	var removed int64

	res := s.db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&models.EmailVerificationToken{})
	if res.Error != nil {
		return removed, translate(res.Error)
	}
	removed += res.RowsAffected

	res = s.db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&models.PasswordResetToken{})
	if res.Error != nil {
		return removed, translate(res.Error)
	}
	removed += res.RowsAffected

	return removed, nil
}

// TokensForUser lists outstanding verification tokens for a user id. Rows
// can outlive the user because the relation is not enforced.
func (s *Store) TokensForUser(ctx context.Context, userID uuid.UUID) ([]models.EmailVerificationToken, error) {
	var tokens []models.EmailVerificationToken
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&tokens).Error
	return tokens, translate(err)
}

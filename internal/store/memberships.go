package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm/clause"

	"quill/internal/models"
)

// UpsertMembership creates or replaces the user's single membership row.
// The unique user_id index makes the upsert race-safe.
func (s *Store) UpsertMembership(ctx context.Context, m *models.MembershipSubscription) error {
	if !m.Status.Valid() {
		return &ValidationError{Field: "status", Message: "unknown subscription status"}
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"external_customer_id", "external_subscription_id",
			"status", "current_period_end", "cancelled_at", "updated_at",
		}),
	}).Create(m).Error
	return translate(err)
}

// MembershipByUser returns the user's membership or ErrNotFound.
func (s *Store) MembershipByUser(ctx context.Context, userID uuid.UUID) (*models.MembershipSubscription, error) {
	var m models.MembershipSubscription
	if err := s.db.WithContext(ctx).First(&m, "user_id = ?", userID).Error; err != nil {
		return nil, translate(err)
	}
	return &m, nil
}

// UpdateMembershipByExternalID applies a billing-webhook state change keyed
// by the provider's subscription identifier.
func (s *Store) UpdateMembershipByExternalID(ctx context.Context, externalSubscriptionID string, status models.SubscriptionStatus, periodEnd *time.Time) error {
	if !status.Valid() {
		return &ValidationError{Field: "status", Message: "unknown subscription status"}
	}

	updates := map[string]any{
		"status":             status,
		"current_period_end": periodEnd,
	}
	switch status {
	case models.SubscriptionCancelled:
		updates["cancelled_at"] = time.Now().UTC()
	case models.SubscriptionActive, models.SubscriptionInactive, models.SubscriptionPastDue:
		updates["cancelled_at"] = nil
	}

	res := s.db.WithContext(ctx).Model(&models.MembershipSubscription{}).
		Where("external_subscription_id = ?", externalSubscriptionID).
		Updates(updates)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// HasActiveMembership reports whether the user can read premium content.
func (s *Store) HasActiveMembership(ctx context.Context, userID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.MembershipSubscription{}).
		Where("user_id = ? AND status = ?", userID, models.SubscriptionActive).
		Count(&count).Error
	if err != nil {
		return false, translate(err)
	}
	return count > 0, nil
}

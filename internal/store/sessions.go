package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"quill/internal/models"
)

// CreateSession opens a session for the user with the given lifetime.
func (s *Store) CreateSession(ctx context.Context, userID uuid.UUID, ttl time.Duration) (*models.Session, error) {
	session := models.Session{
		UserID:    userID,
		ExpiresAt: time.Now().UTC().Add(ttl),
	}
	if err := s.db.WithContext(ctx).Create(&session).Error; err != nil {
		return nil, translate(err)
	}
	return &session, nil
}

// ValidSession returns the session only while it has not expired. An
// expired row still exists but reads as ErrNotFound.
func (s *Store) ValidSession(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	var session models.Session
	err := s.db.WithContext(ctx).
		First(&session, "id = ? AND expires_at > ?", id, time.Now().UTC()).Error
	if err != nil {
		return nil, translate(err)
	}
	return &session, nil
}

// DeleteSession removes a single session (logout).
func (s *Store) DeleteSession(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&models.Session{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteExpiredSessions is the operator-invoked cleanup sweep for rows whose
// expiry has passed. It reports how many rows were removed.
func (s *Store) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("expires_at <= ?", time.Now().UTC()).
		Delete(&models.Session{})
	return res.RowsAffected, translate(res.Error)
}

package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"quill/internal/models"
)

// CreateEvent inserts an event.
func (s *Store) CreateEvent(ctx context.Context, e *models.Event) error {
	if !e.EndsAt.After(e.StartsAt) {
		return &ValidationError{Field: "ends_at", Message: "must be after starts_at"}
	}
	if e.Capacity != nil && *e.Capacity <= 0 {
		return &ValidationError{Field: "capacity", Message: "must be positive when set"}
	}
	return translate(s.db.WithContext(ctx).Create(e).Error)
}

// EventByID returns the event or ErrNotFound.
func (s *Store) EventByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	var e models.Event
	if err := s.db.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &e, nil
}

// ListUpcoming returns published events starting at or after the given time,
// soonest first. The (is_published, starts_at) index keeps this a range scan.
func (s *Store) ListUpcoming(ctx context.Context, from time.Time, p Page) ([]models.Event, error) {
	var events []models.Event
	err := s.db.WithContext(ctx).
		Where("is_published = ? AND starts_at >= ?", true, from).
		Order("starts_at ASC, id ASC").
		Limit(p.limit()).
		Offset(p.Offset).
		Find(&events).Error
	return events, translate(err)
}

// UpdateEvent persists edits to a loaded event.
func (s *Store) UpdateEvent(ctx context.Context, e *models.Event) error {
	if !e.EndsAt.After(e.StartsAt) {
		return &ValidationError{Field: "ends_at", Message: "must be after starts_at"}
	}
	res := s.db.WithContext(ctx).Model(e).Select(
		"title", "description", "location", "starts_at", "ends_at",
		"capacity", "image", "is_published",
	).Updates(e)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteEvent removes an event and, via cascade, all its RSVPs.
func (s *Store) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&models.Event{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateRsvp inserts an RSVP row as-is. A second RSVP for the same
// (user, event) pair fails with ErrDuplicate; use RSVP for the
// capacity-aware upsert path.
func (s *Store) CreateRsvp(ctx context.Context, r *models.EventRsvp) error {
	if !r.Status.Valid() {
		return &ValidationError{Field: "status", Message: "unknown RSVP status"}
	}
	return translate(s.db.WithContext(ctx).Create(r).Error)
}

// RSVP records a user's attendance for an event, confirming them if the
// event still has room and waitlisting them otherwise. The event row is
// locked for the capacity check so concurrent RSVPs cannot oversubscribe.
// A repeat RSVP updates the user's existing row in place.
func (s *Store) RSVP(ctx context.Context, userID, eventID uuid.UUID) (*models.EventRsvp, error) {
	var rsvp models.EventRsvp
	err := s.tx(ctx, func(tx *gorm.DB) error {
		var event models.Event
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&event, "id = ?", eventID).Error; err != nil {
			return err
		}

		status := models.RsvpConfirmed
		if event.Capacity != nil {
			var confirmed int64
			err := tx.Model(&models.EventRsvp{}).
				Where("event_id = ? AND status = ? AND user_id <> ?",
					eventID, models.RsvpConfirmed, userID).
				Count(&confirmed).Error
			if err != nil {
				return err
			}
			if confirmed >= int64(*event.Capacity) {
				status = models.RsvpWaitlisted
			}
		}

		rsvp = models.EventRsvp{UserID: userID, EventID: eventID, Status: status}
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "event_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"status":     status,
				"updated_at": time.Now().UTC(),
			}),
		}).Create(&rsvp).Error
	})
	if err != nil {
		return nil, err
	}
	return &rsvp, nil
}

// CancelRsvp marks the user's RSVP cancelled and, when the event is
// capacity-limited, promotes the longest-waiting waitlisted RSVP into the
// freed seat within the same transaction.
func (s *Store) CancelRsvp(ctx context.Context, userID, eventID uuid.UUID) error {
	return s.tx(ctx, func(tx *gorm.DB) error {
		var event models.Event
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&event, "id = ?", eventID).Error; err != nil {
			return err
		}

		var rsvp models.EventRsvp
		if err := tx.First(&rsvp, "user_id = ? AND event_id = ?", userID, eventID).Error; err != nil {
			return err
		}
		wasConfirmed := rsvp.Status == models.RsvpConfirmed
		if err := tx.Model(&rsvp).Update("status", models.RsvpCancelled).Error; err != nil {
			return err
		}

		if !wasConfirmed || event.Capacity == nil {
			return nil
		}
		return promoteWaitlist(tx, eventID)
	})
}

// UpdateRsvpStatus sets an RSVP's status directly. Any declared status is
// legal at any time; capacity accounting is the responsibility of the
// RSVP/CancelRsvp pair.
func (s *Store) UpdateRsvpStatus(ctx context.Context, userID, eventID uuid.UUID, status models.RsvpStatus) error {
	if !status.Valid() {
		return &ValidationError{Field: "status", Message: "unknown RSVP status"}
	}
	res := s.db.WithContext(ctx).Model(&models.EventRsvp{}).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Update("status", status)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// RsvpsForEvent lists an event's RSVPs in signup order.
func (s *Store) RsvpsForEvent(ctx context.Context, eventID uuid.UUID, p Page) ([]models.EventRsvp, error) {
	var rsvps []models.EventRsvp
	err := s.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at ASC, id ASC").
		Limit(p.limit()).
		Offset(p.Offset).
		Find(&rsvps).Error
	return rsvps, translate(err)
}

// promoteWaitlist confirms the oldest waitlisted RSVP for the event. Called
// with the event row already locked.
func promoteWaitlist(tx *gorm.DB, eventID uuid.UUID) error {
	var next models.EventRsvp
	err := tx.Where("event_id = ? AND status = ?", eventID, models.RsvpWaitlisted).
		Order("created_at ASC, id ASC").
		First(&next).Error
	switch {
	case err == nil:
		return tx.Model(&next).Update("status", models.RsvpConfirmed).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil
	default:
		return err
	}
}

package store

import (
	"context"

	"github.com/google/uuid"

	"quill/internal/models"
)

// CreateUser inserts a new user. Email and username collisions surface as
// ErrDuplicate.
func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	if err := validateEmail(u.Email); err != nil {
		return err
	}
	if u.Username != nil {
		if err := validateSlug("username", *u.Username); err != nil {
			return err
		}
	}
	return translate(s.db.WithContext(ctx).Create(u).Error)
}

// UserByID returns the user or ErrNotFound.
func (s *Store) UserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

// UserByEmail returns the user or ErrNotFound.
func (s *Store) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, "email = ?", email).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

// UserByUsername returns the user or ErrNotFound.
func (s *Store) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, "username = ?", username).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

// UpdateUser persists changes to a loaded user record and refreshes its
// UpdatedAt timestamp.
func (s *Store) UpdateUser(ctx context.Context, u *models.User) error {
	if err := validateEmail(u.Email); err != nil {
		return err
	}
	if u.Username != nil {
		if err := validateSlug("username", *u.Username); err != nil {
			return err
		}
	}
	res := s.db.WithContext(ctx).Model(u).Select(
		"email", "username", "password_hash", "email_verified",
	).Updates(u)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkEmailVerified flips the verified flag for the user.
func (s *Store) MarkEmailVerified(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Update("email_verified", true)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteUser removes the user. Sessions, saved articles, comments, RSVPs,
// authored articles, and the membership row cascade away; newsletter rows
// keep their email but lose the user link.
func (s *Store) DeleteUser(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

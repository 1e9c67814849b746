package store

import (
	"context"

	"github.com/google/uuid"

	"quill/internal/models"
)

// CreateTag inserts a tag. Name and slug are unique.
func (s *Store) CreateTag(ctx context.Context, t *models.Tag) error {
	if err := validateSlug("slug", t.Slug); err != nil {
		return err
	}
	return translate(s.db.WithContext(ctx).Create(t).Error)
}

// TagBySlug returns the tag or ErrNotFound.
func (s *Store) TagBySlug(ctx context.Context, slug string) (*models.Tag, error) {
	var t models.Tag
	if err := s.db.WithContext(ctx).First(&t, "slug = ?", slug).Error; err != nil {
		return nil, translate(err)
	}
	return &t, nil
}

// ListTags returns all tags alphabetically.
func (s *Store) ListTags(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	err := s.db.WithContext(ctx).Order("name ASC").Find(&tags).Error
	return tags, translate(err)
}

// DeleteTag removes a tag; its join rows cascade away, articles survive.
func (s *Store) DeleteTag(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&models.Tag{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

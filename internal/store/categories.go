package store

import (
	"context"

	"github.com/google/uuid"

	"quill/internal/models"
)

// CreateCategory inserts a category. Name and slug are unique.
func (s *Store) CreateCategory(ctx context.Context, c *models.Category) error {
	if err := validateSlug("slug", c.Slug); err != nil {
		return err
	}
	return translate(s.db.WithContext(ctx).Create(c).Error)
}

// CategoryByID returns the category or ErrNotFound.
func (s *Store) CategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var c models.Category
	if err := s.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

// CategoryBySlug returns the category or ErrNotFound.
func (s *Store) CategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var c models.Category
	if err := s.db.WithContext(ctx).First(&c, "slug = ?", slug).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

// ListCategories returns all categories in display order.
func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	var cats []models.Category
	err := s.db.WithContext(ctx).
		Order("sort_order ASC NULLS LAST, name ASC").
		Find(&cats).Error
	return cats, translate(err)
}

// UpdateCategory persists changes to a loaded category.
func (s *Store) UpdateCategory(ctx context.Context, c *models.Category) error {
	if err := validateSlug("slug", c.Slug); err != nil {
		return err
	}
	res := s.db.WithContext(ctx).Model(c).Select(
		"name", "slug", "description", "color", "sort_order",
	).Updates(c)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCategory removes a category. Articles hold a required reference, so
// deleting a category that still has articles fails with ErrForeignKey;
// callers must reassign those articles first.
func (s *Store) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&models.Category{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

package store

import (
	"context"

	"github.com/google/uuid"

	"quill/internal/models"
)

// CreateComment inserts a comment. Both the user and the article must exist.
func (s *Store) CreateComment(ctx context.Context, c *models.Comment) error {
	if c.Body == "" {
		return &ValidationError{Field: "body", Message: "must not be empty"}
	}
	return translate(s.db.WithContext(ctx).Create(c).Error)
}

// CommentByID returns the comment or ErrNotFound.
func (s *Store) CommentByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	var c models.Comment
	if err := s.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

// CommentsForArticle lists an article's comments oldest first.
func (s *Store) CommentsForArticle(ctx context.Context, articleID uuid.UUID, p Page) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.WithContext(ctx).
		Where("article_id = ?", articleID).
		Order("created_at ASC, id ASC").
		Limit(p.limit()).
		Offset(p.Offset).
		Find(&comments).Error
	return comments, translate(err)
}

// UpdateComment edits a comment body and refreshes UpdatedAt.
func (s *Store) UpdateComment(ctx context.Context, id uuid.UUID, body string) error {
	if body == "" {
		return &ValidationError{Field: "body", Message: "must not be empty"}
	}
	res := s.db.WithContext(ctx).Model(&models.Comment{}).
		Where("id = ?", id).
		Update("body", body)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteComment removes a single comment.
func (s *Store) DeleteComment(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&models.Comment{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

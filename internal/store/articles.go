package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"quill/internal/models"
)

// ArticleFilter narrows article listings. Zero values mean "no filter".
type ArticleFilter struct {
	CategorySlug string
	TagSlug      string
	Premium      *bool
}

// CreateArticle inserts a new article. The slug must be URL-safe and unique;
// author and category must exist. An article created already published gets
// its publish timestamp stamped now, so every published row has one and date
// ordering never sees a NULL.
func (s *Store) CreateArticle(ctx context.Context, a *models.Article) error {
	if err := validateSlug("slug", a.Slug); err != nil {
		return err
	}
	if a.IsPublished && a.PublishedAt == nil {
		now := time.Now().UTC()
		a.PublishedAt = &now
	}
	return translate(s.db.WithContext(ctx).Create(a).Error)
}

// ArticleByID returns the article with its category and tags preloaded.
func (s *Store) ArticleByID(ctx context.Context, id uuid.UUID) (*models.Article, error) {
	var a models.Article
	err := s.db.WithContext(ctx).
		Preload("Category").Preload("Tags").
		First(&a, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

// ArticleBySlug returns the article with its category and tags preloaded.
func (s *Store) ArticleBySlug(ctx context.Context, slug string) (*models.Article, error) {
	var a models.Article
	err := s.db.WithContext(ctx).
		Preload("Category").Preload("Tags").
		First(&a, "slug = ?", slug).Error
	if err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

// UpdateArticle persists edits to a loaded article. Slugs are immutable once
// the article is published.
func (s *Store) UpdateArticle(ctx context.Context, a *models.Article) error {
	if err := validateSlug("slug", a.Slug); err != nil {
		return err
	}
	return s.tx(ctx, func(tx *gorm.DB) error {
		var current models.Article
		if err := tx.Select("slug", "is_published").First(&current, "id = ?", a.ID).Error; err != nil {
			return err
		}
		if current.IsPublished && current.Slug != a.Slug {
			return &ValidationError{Field: "slug", Message: "immutable once published"}
		}
		return tx.Model(a).Select(
			"slug", "title", "content", "excerpt", "cover_image", "reading_time",
			"is_premium", "seo_title", "seo_description", "category_id",
		).Updates(a).Error
	})
}

// PublishArticle flips the article live. PublishedAt is set on first publish
// and preserved on republish.
func (s *Store) PublishArticle(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Model(&models.Article{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"is_published": true,
			"published_at": gorm.Expr("COALESCE(published_at, ?)", time.Now().UTC()),
		})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UnpublishArticle takes the article off the public listing. PublishedAt is
// kept so a republish does not reset its position in date ordering.
func (s *Store) UnpublishArticle(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Model(&models.Article{}).
		Where("id = ?", id).
		Update("is_published", false)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteArticle removes the article; its tag joins, bookmarks, and comments
// cascade away while the category and author are untouched.
func (s *Store) DeleteArticle(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&models.Article{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListPublished returns published articles ordered by publish date
// descending with offset pagination. The (is_published, published_at) index
// keeps this a range scan.
func (s *Store) ListPublished(ctx context.Context, f ArticleFilter, p Page) ([]models.Article, error) {
	q := s.publishedQuery(ctx, f)
	var articles []models.Article
	err := q.Order("articles.published_at DESC, articles.id DESC").
		Limit(p.limit()).
		Offset(p.Offset).
		Find(&articles).Error
	return articles, translate(err)
}

// ListPublishedAfter is the keyset variant of ListPublished: it returns the
// page strictly after the cursor plus the cursor for the following page, or
// nil when the listing is exhausted.
func (s *Store) ListPublishedAfter(ctx context.Context, f ArticleFilter, cursor *Cursor, limit int) ([]models.Article, *Cursor, error) {
	q := s.publishedQuery(ctx, f)
	if cursor != nil {
		q = q.Where("(articles.published_at, articles.id) < (?, ?)", cursor.PublishedAt, cursor.ID)
	}
	if limit <= 0 || limit > maxPageSize {
		limit = defaultPageSize
	}

	var articles []models.Article
	err := q.Order("articles.published_at DESC, articles.id DESC").
		Limit(limit + 1).
		Find(&articles).Error
	if err != nil {
		return nil, nil, translate(err)
	}

	var next *Cursor
	if len(articles) > limit {
		articles = articles[:limit]
		last := articles[len(articles)-1]
		// A published row always carries a timestamp; a pre-existing NULL
		// ends the paging instead of minting a bad cursor.
		if last.PublishedAt != nil {
			next = &Cursor{PublishedAt: *last.PublishedAt, ID: last.ID}
		}
	}
	return articles, next, nil
}

func (s *Store) publishedQuery(ctx context.Context, f ArticleFilter) *gorm.DB {
	q := s.db.WithContext(ctx).Model(&models.Article{}).
		Preload("Category").Preload("Tags").
		Where("articles.is_published = ?", true)

	if f.CategorySlug != "" {
		q = q.Joins("JOIN categories ON categories.id = articles.category_id").
			Where("categories.slug = ?", f.CategorySlug)
	}
	if f.TagSlug != "" {
		q = q.Joins("JOIN article_tags ON article_tags.article_id = articles.id").
			Joins("JOIN tags ON tags.id = article_tags.tag_id").
			Where("tags.slug = ?", f.TagSlug)
	}
	if f.Premium != nil {
		q = q.Where("articles.is_premium = ?", *f.Premium)
	}
	return q
}

// IncrementViews bumps the view counter atomically. The column update
// deliberately skips UpdatedAt: a page view is not a content edit.
func (s *Store) IncrementViews(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Model(&models.Article{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1"))
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetTags replaces the article's tag set in one transaction.
func (s *Store) SetTags(ctx context.Context, articleID uuid.UUID, tagIDs []uuid.UUID) error {
	return s.tx(ctx, func(tx *gorm.DB) error {
		if err := tx.Delete(&models.ArticleTag{}, "article_id = ?", articleID).Error; err != nil {
			return err
		}
		for _, tagID := range tagIDs {
			join := models.ArticleTag{ArticleID: articleID, TagID: tagID}
			if err := tx.Create(&join).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// SaveArticle bookmarks an article for a user. Saving twice is ErrDuplicate.
func (s *Store) SaveArticle(ctx context.Context, userID, articleID uuid.UUID) error {
	saved := models.SavedArticle{UserID: userID, ArticleID: articleID}
	return translate(s.db.WithContext(ctx).Create(&saved).Error)
}

// UnsaveArticle removes a bookmark. Removing a bookmark that does not exist
// is a no-op, so the operation is idempotent.
func (s *Store) UnsaveArticle(ctx context.Context, userID, articleID uuid.UUID) error {
	res := s.db.WithContext(ctx).
		Delete(&models.SavedArticle{UserID: userID, ArticleID: articleID})
	return translate(res.Error)
}

// SavedArticles lists a user's bookmarked articles, most recently saved
// first.
func (s *Store) SavedArticles(ctx context.Context, userID uuid.UUID, p Page) ([]models.Article, error) {
	var articles []models.Article
	err := s.db.WithContext(ctx).Model(&models.Article{}).
		Preload("Category").Preload("Tags").
		Joins("JOIN saved_articles ON saved_articles.article_id = articles.id").
		Where("saved_articles.user_id = ?", userID).
		Order("saved_articles.saved_at DESC").
		Limit(p.limit()).
		Offset(p.Offset).
		Find(&articles).Error
	return articles, translate(err)
}

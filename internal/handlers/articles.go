package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"quill/internal/models"
	"quill/internal/routes"
	"quill/internal/store"
)

type articleResponse struct {
	ID          uuid.UUID `json:"id"`
	Slug        string    `json:"slug"`
	Path        string    `json:"path"`
	Title       string    `json:"title"`
	Excerpt     string    `json:"excerpt"`
	CoverImage  *string   `json:"cover_image,omitempty"`
	ReadingTime int       `json:"reading_time"`
	IsPremium   bool      `json:"is_premium"`
	PublishedAt *string   `json:"published_at,omitempty"`
	Views       int64     `json:"views"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags"`
}

func toArticleResponse(a models.Article) articleResponse {
	res := articleResponse{
		ID:          a.ID,
		Slug:        a.Slug,
		Path:        routes.ArticlePath(a.Slug),
		Title:       a.Title,
		Excerpt:     a.Excerpt,
		CoverImage:  a.CoverImage,
		ReadingTime: a.ReadingTime,
		IsPremium:   a.IsPremium,
		Views:       a.Views,
		Category:    a.Category.Slug,
		Tags:        make([]string, 0, len(a.Tags)),
	}
	if a.PublishedAt != nil {
		s := a.PublishedAt.UTC().Format(time.RFC3339)
		res.PublishedAt = &s
	}
	for _, t := range a.Tags {
		res.Tags = append(res.Tags, t.Slug)
	}
	return res
}

func (a *API) handleListArticles(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	q := r.URL.Query()
	filter := store.ArticleFilter{
		CategorySlug: q.Get("category"),
		TagSlug:      q.Get("tag"),
	}
	if v := q.Get("premium"); v != "" {
		premium := v == "true"
		filter.Premium = &premium
	}

	if token := q.Get("cursor"); token != "" || q.Get("paginate") == "cursor" {
		var cursor *store.Cursor
		if token != "" {
			c, err := store.DecodeCursor(token)
			if err != nil {
				respondStoreError(w, err)
				return
			}
			cursor = &c
		}
		articles, next, err := a.store.ListPublishedAfter(ctx, filter, cursor, pageFromRequest(r).Limit)
		if err != nil {
			respondStoreError(w, err)
			return
		}
		payload := map[string]any{"articles": toArticleResponses(articles)}
		if next != nil {
			payload["next_cursor"] = next.Encode()
		}
		respondJSON(w, http.StatusOK, payload)
		return
	}

	articles, err := a.store.ListPublished(ctx, filter, pageFromRequest(r))
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"articles": toArticleResponses(articles)})
}

func toArticleResponses(articles []models.Article) []articleResponse {
	items := make([]articleResponse, 0, len(articles))
	for _, a := range articles {
		items = append(items, toArticleResponse(a))
	}
	return items
}

func (a *API) handleGetArticle(w http.ResponseWriter, r *http.Request) {
	slug := strings.TrimSpace(chi.URLParam(r, "slug"))

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	article, err := a.store.ArticleBySlug(ctx, slug)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	if err := a.store.IncrementViews(ctx, article.ID); err != nil {
		log.Warn().Err(err).Str("slug", slug).Msg("bump article views")
	}

	res := toArticleResponse(*article)

	// Premium content is metadata-only for readers without an active
	// membership; the body stays server-side.
	if article.IsPremium && !a.readerHasMembership(ctx, r) {
		respondJSON(w, http.StatusOK, map[string]any{
			"article": res,
			"locked":  true,
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"article": res,
		"content": article.Content,
	})
}

func (a *API) readerHasMembership(ctx context.Context, r *http.Request) bool {
	userID, err := userIDFromRequest(r)
	if err != nil {
		return false
	}
	active, err := a.store.HasActiveMembership(ctx, userID)
	if err != nil {
		log.Warn().Err(err).Stringer("user_id", userID).Msg("membership lookup")
		return false
	}
	return active
}

func (a *API) handleUnpublishArticle(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "articleID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, errors.New("invalid article id"))
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	if err := a.store.UnpublishArticle(ctx, id); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

func (a *API) handleCreateArticle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Slug           string    `json:"slug"`
		Title          string    `json:"title"`
		Content        string    `json:"content"`
		Excerpt        string    `json:"excerpt"`
		CoverImage     *string   `json:"cover_image"`
		ReadingTime    int       `json:"reading_time"`
		IsPremium      bool      `json:"is_premium"`
		SEOTitle       *string   `json:"seo_title"`
		SEODescription *string   `json:"seo_description"`
		CategoryID     uuid.UUID `json:"category_id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	authorID, err := userIDFromRequest(r)
	if err != nil {
		respondError(w, http.StatusUnauthorized, err)
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		respondError(w, http.StatusBadRequest, errors.New("title is required"))
		return
	}
	if req.Slug == "" {
		req.Slug = store.Slugify(req.Title)
	}
	if req.ReadingTime <= 0 {
		req.ReadingTime = 5
	}

	article := models.Article{
		Slug:           req.Slug,
		Title:          req.Title,
		Content:        req.Content,
		Excerpt:        req.Excerpt,
		CoverImage:     req.CoverImage,
		ReadingTime:    req.ReadingTime,
		IsPremium:      req.IsPremium,
		SEOTitle:       req.SEOTitle,
		SEODescription: req.SEODescription,
		AuthorID:       authorID,
		CategoryID:     req.CategoryID,
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	if err := a.store.CreateArticle(ctx, &article); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"id": article.ID, "slug": article.Slug})
}

func (a *API) handleUpdateArticle(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "articleID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, errors.New("invalid article id"))
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	article, err := a.store.ArticleByID(ctx, id)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	var req struct {
		Slug           *string    `json:"slug"`
		Title          *string    `json:"title"`
		Content        *string    `json:"content"`
		Excerpt        *string    `json:"excerpt"`
		CoverImage     *string    `json:"cover_image"`
		ReadingTime    *int       `json:"reading_time"`
		IsPremium      *bool      `json:"is_premium"`
		SEOTitle       *string    `json:"seo_title"`
		SEODescription *string    `json:"seo_description"`
		CategoryID     *uuid.UUID `json:"category_id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	if req.Slug != nil {
		article.Slug = *req.Slug
	}
	if req.Title != nil {
		article.Title = *req.Title
	}
	if req.Content != nil {
		article.Content = *req.Content
	}
	if req.Excerpt != nil {
		article.Excerpt = *req.Excerpt
	}
	if req.CoverImage != nil {
		article.CoverImage = req.CoverImage
	}
	if req.ReadingTime != nil {
		article.ReadingTime = *req.ReadingTime
	}
	if req.IsPremium != nil {
		article.IsPremium = *req.IsPremium
	}
	if req.SEOTitle != nil {
		article.SEOTitle = req.SEOTitle
	}
	if req.SEODescription != nil {
		article.SEODescription = req.SEODescription
	}
	if req.CategoryID != nil {
		article.CategoryID = *req.CategoryID
	}

	if err := a.store.UpdateArticle(ctx, article); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"id": article.ID, "slug": article.Slug})
}

func (a *API) handlePublishArticle(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "articleID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, errors.New("invalid article id"))
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	if err := a.store.PublishArticle(ctx, id); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

func (a *API) handleDeleteArticle(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "articleID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, errors.New("invalid article id"))
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	if err := a.store.DeleteArticle(ctx, id); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (a *API) handleSetArticleTags(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "articleID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, errors.New("invalid article id"))
		return
	}

	var req struct {
		TagIDs []uuid.UUID `json:"tag_ids"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	if err := a.store.SetTags(ctx, id, req.TagIDs); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

func (a *API) handleSaveArticle(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		respondError(w, http.StatusUnauthorized, err)
		return
	}
	articleID, err := uuid.Parse(chi.URLParam(r, "articleID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, errors.New("invalid article id"))
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	if err := a.store.SaveArticle(ctx, userID, articleID); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, nil)
}

func (a *API) handleUnsaveArticle(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		respondError(w, http.StatusUnauthorized, err)
		return
	}
	articleID, err := uuid.Parse(chi.URLParam(r, "articleID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, errors.New("invalid article id"))
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	if err := a.store.UnsaveArticle(ctx, userID, articleID); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (a *API) handleListSaved(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		respondError(w, http.StatusUnauthorized, err)
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	articles, err := a.store.SavedArticles(ctx, userID, pageFromRequest(r))
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"articles": toArticleResponses(articles)})
}

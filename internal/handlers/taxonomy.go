package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"quill/internal/models"
	"quill/internal/routes"
	"quill/internal/store"
)

func (a *API) handleListCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	cats, err := a.store.ListCategories(ctx)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	items := make([]map[string]any, 0, len(cats))
	for _, c := range cats {
		items = append(items, map[string]any{
			"id":          c.ID,
			"name":        c.Name,
			"slug":        c.Slug,
			"path":        routes.CategoryPath(c.Slug),
			"description": c.Description,
			"color":       c.Color,
		})
	}
	respondJSON(w, http.StatusOK, map[string]any{"categories": items})
}

func (a *API) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string  `json:"name"`
		Slug        string  `json:"slug"`
		Description *string `json:"description"`
		Color       *string `json:"color"`
		SortOrder   *int    `json:"sort_order"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, errors.New("name is required"))
		return
	}
	if req.Slug == "" {
		req.Slug = store.Slugify(req.Name)
	}

	category := models.Category{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Color:       req.Color,
		SortOrder:   req.SortOrder,
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	if err := a.store.CreateCategory(ctx, &category); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"id": category.ID, "slug": category.Slug})
}

func (a *API) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	c, err := a.store.CategoryBySlug(ctx, slug)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"id":          c.ID,
		"name":        c.Name,
		"slug":        c.Slug,
		"path":        routes.CategoryPath(c.Slug),
		"description": c.Description,
		"color":       c.Color,
	})
}

func (a *API) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "categoryID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, errors.New("invalid category id"))
		return
	}

	var req struct {
		Name        *string `json:"name"`
		Slug        *string `json:"slug"`
		Description *string `json:"description"`
		Color       *string `json:"color"`
		SortOrder   *int    `json:"sort_order"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	category, err := a.store.CategoryByID(ctx, id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if req.Name != nil {
		category.Name = strings.TrimSpace(*req.Name)
	}
	if req.Slug != nil {
		category.Slug = *req.Slug
	}
	if req.Description != nil {
		category.Description = req.Description
	}
	if req.Color != nil {
		category.Color = req.Color
	}
	if req.SortOrder != nil {
		category.SortOrder = req.SortOrder
	}

	if err := a.store.UpdateCategory(ctx, category); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"id": category.ID, "slug": category.Slug})
}

func (a *API) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "categoryID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, errors.New("invalid category id"))
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	// Fails with a conflict while any article still references the category.
	if err := a.store.DeleteCategory(ctx, id); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (a *API) handleListTags(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	tags, err := a.store.ListTags(ctx)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	items := make([]map[string]any, 0, len(tags))
	for _, t := range tags {
		items = append(items, map[string]any{
			"id":   t.ID,
			"name": t.Name,
			"slug": t.Slug,
			"path": routes.TagPath(t.Slug),
		})
	}
	respondJSON(w, http.StatusOK, map[string]any{"tags": items})
}

func (a *API) handleCreateTag(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
		Slug string `json:"slug"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, errors.New("name is required"))
		return
	}
	if req.Slug == "" {
		req.Slug = store.Slugify(req.Name)
	}

	tag := models.Tag{Name: req.Name, Slug: req.Slug}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	if err := a.store.CreateTag(ctx, &tag); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"id": tag.ID, "slug": tag.Slug})
}

func (a *API) handleDeleteTag(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "tagID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, errors.New("invalid tag id"))
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	// Join rows cascade away; articles themselves are untouched.
	if err := a.store.DeleteTag(ctx, id); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

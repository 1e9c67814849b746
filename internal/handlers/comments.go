package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"quill/internal/models"
)

func (a *API) handleListComments(w http.ResponseWriter, r *http.Request) {
	articleID, err := uuid.Parse(chi.URLParam(r, "articleID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, errors.New("invalid article id"))
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	comments, err := a.store.CommentsForArticle(ctx, articleID, pageFromRequest(r))
	if err != nil {
		respondStoreError(w, err)
		return
	}

	items := make([]map[string]any, 0, len(comments))
	for _, c := range comments {
		items = append(items, map[string]any{
			"id":         c.ID,
			"body":       c.Body,
			"user_id":    c.UserID,
			"created_at": c.CreatedAt,
		})
	}
	respondJSON(w, http.StatusOK, map[string]any{"comments": items})
}

func (a *API) handleCreateComment(w http.ResponseWriter, r *http.Request) {
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

	var req struct {
		Body string `json:"body"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	comment := models.Comment{Body: req.Body, UserID: userID, ArticleID: articleID}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	if err := a.store.CreateComment(ctx, &comment); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"id": comment.ID})
}

func (a *API) handleUpdateComment(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		respondError(w, http.StatusUnauthorized, err)
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "commentID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, errors.New("invalid comment id"))
		return
	}

	var req struct {
		Body string `json:"body"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	comment, err := a.store.CommentByID(ctx, id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if comment.UserID != userID {
		respondError(w, http.StatusForbidden, errors.New("not the comment author"))
		return
	}

	if err := a.store.UpdateComment(ctx, id, req.Body); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"id": id})
}

func (a *API) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "commentID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, errors.New("invalid comment id"))
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	if err := a.store.DeleteComment(ctx, id); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

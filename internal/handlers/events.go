package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"quill/internal/models"
	"quill/internal/routes"
)

func (a *API) handleListEvents(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	from := time.Now().UTC()
	if v := r.URL.Query().Get("from"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			respondError(w, http.StatusBadRequest, errors.New("invalid from timestamp"))
			return
		}
		from = parsed
	}

	events, err := a.store.ListUpcoming(ctx, from, pageFromRequest(r))
	if err != nil {
		respondStoreError(w, err)
		return
	}

	items := make([]map[string]any, 0, len(events))
	for _, e := range events {
		items = append(items, map[string]any{
			"id":        e.ID,
			"title":     e.Title,
			"location":  e.Location,
			"starts_at": e.StartsAt,
			"ends_at":   e.EndsAt,
			"capacity":  e.Capacity,
			"path":      routes.EventPath(e.ID.String()),
		})
	}
	respondJSON(w, http.StatusOK, map[string]any{"events": items})
}

func (a *API) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string    `json:"title"`
		Description string    `json:"description"`
		Location    string    `json:"location"`
		StartsAt    time.Time `json:"starts_at"`
		EndsAt      time.Time `json:"ends_at"`
		Capacity    *int      `json:"capacity"`
		Image       *string   `json:"image"`
		IsPublished bool      `json:"is_published"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		respondError(w, http.StatusBadRequest, errors.New("title is required"))
		return
	}

	event := models.Event{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		Capacity:    req.Capacity,
		Image:       req.Image,
		IsPublished: req.IsPublished,
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	if err := a.store.CreateEvent(ctx, &event); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"id": event.ID})
}

func (a *API) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "eventID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, errors.New("invalid event id"))
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	event, err := a.store.EventByID(ctx, id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"event": map[string]any{
		"id":           event.ID,
		"title":        event.Title,
		"description":  event.Description,
		"location":     event.Location,
		"starts_at":    event.StartsAt,
		"ends_at":      event.EndsAt,
		"capacity":     event.Capacity,
		"image":        event.Image,
		"is_published": event.IsPublished,
	}})
}

func (a *API) handleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "eventID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, errors.New("invalid event id"))
		return
	}

	var req struct {
		Title       *string    `json:"title"`
		Description *string    `json:"description"`
		Location    *string    `json:"location"`
		StartsAt    *time.Time `json:"starts_at"`
		EndsAt      *time.Time `json:"ends_at"`
		Capacity    *int       `json:"capacity"`
		Image       *string    `json:"image"`
		IsPublished *bool      `json:"is_published"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	event, err := a.store.EventByID(ctx, id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if req.Title != nil {
		event.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.StartsAt != nil {
		event.StartsAt = *req.StartsAt
	}
	if req.EndsAt != nil {
		event.EndsAt = *req.EndsAt
	}
	if req.Capacity != nil {
		event.Capacity = req.Capacity
	}
	if req.Image != nil {
		event.Image = req.Image
	}
	if req.IsPublished != nil {
		event.IsPublished = *req.IsPublished
	}

	if err := a.store.UpdateEvent(ctx, event); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"id": event.ID})
}

func (a *API) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "eventID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, errors.New("invalid event id"))
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	if err := a.store.DeleteEvent(ctx, id); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (a *API) handleListRsvps(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "eventID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, errors.New("invalid event id"))
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	rsvps, err := a.store.RsvpsForEvent(ctx, id, pageFromRequest(r))
	if err != nil {
		respondStoreError(w, err)
		return
	}

	items := make([]map[string]any, 0, len(rsvps))
	for _, rs := range rsvps {
		items = append(items, map[string]any{
			"user_id":    rs.UserID,
			"status":     rs.Status,
			"created_at": rs.CreatedAt,
		})
	}
	respondJSON(w, http.StatusOK, map[string]any{"rsvps": items})
}

func (a *API) handleRsvp(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		respondError(w, http.StatusUnauthorized, err)
		return
	}
	eventID, err := uuid.Parse(chi.URLParam(r, "eventID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, errors.New("invalid event id"))
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	rsvp, err := a.store.RSVP(ctx, userID, eventID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"status": rsvp.Status})
}

func (a *API) handleCancelRsvp(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		respondError(w, http.StatusUnauthorized, err)
		return
	}
	eventID, err := uuid.Parse(chi.URLParam(r, "eventID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, errors.New("invalid event id"))
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	if err := a.store.CancelRsvp(ctx, userID, eventID); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"status": models.RsvpCancelled})
}

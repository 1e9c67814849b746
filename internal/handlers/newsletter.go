package handlers

import (
	"net/http"

	"github.com/google/uuid"
)

func (a *API) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	// Link the subscription to the account when the caller is signed in;
	// anonymous signups are fine too.
	var userID *uuid.UUID
	if id, err := userIDFromRequest(r); err == nil {
		userID = &id
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	sub, err := a.store.Subscribe(ctx, req.Email, userID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"id": sub.ID})
}

func (a *API) handleConfirmSubscription(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	sub, err := a.store.ConfirmSubscription(ctx, req.Token)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"id": sub.ID, "email": sub.Email})
}

// handleListSubscribers feeds the newsletter send pipeline: confirmed, active
// subscriptions only.
func (a *API) handleListSubscribers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	subs, err := a.store.ListActiveSubscribers(ctx, pageFromRequest(r))
	if err != nil {
		respondStoreError(w, err)
		return
	}

	items := make([]map[string]any, 0, len(subs))
	for _, s := range subs {
		items = append(items, map[string]any{
			"email":   s.Email,
			"user_id": s.UserID,
		})
	}
	respondJSON(w, http.StatusOK, map[string]any{"subscribers": items})
}

func (a *API) handleUnsubscribe(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	if err := a.store.Unsubscribe(ctx, req.Email); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

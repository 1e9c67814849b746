package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"quill/internal/models"
)

func (a *API) handleGetMembership(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		respondError(w, http.StatusUnauthorized, err)
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	m, err := a.store.MembershipByUser(ctx, userID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"status":             m.Status,
		"current_period_end": m.CurrentPeriodEnd,
		"cancelled_at":       m.CancelledAt,
	})
}

// handleBillingWebhook applies membership state changes pushed by the
// billing provider. Payment processing itself happens upstream; this
// endpoint only persists the resulting status.
func (a *API) handleBillingWebhook(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type                   string     `json:"type"`
		ExternalSubscriptionID string     `json:"subscription_id"`
		CurrentPeriodEnd       *time.Time `json:"current_period_end"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	if req.ExternalSubscriptionID == "" {
		respondError(w, http.StatusBadRequest, errors.New("subscription_id is required"))
		return
	}

	var status models.SubscriptionStatus
	switch req.Type {
	case "subscription.activated", "invoice.paid":
		status = models.SubscriptionActive
	case "invoice.payment_failed":
		status = models.SubscriptionPastDue
	case "subscription.cancelled":
		status = models.SubscriptionCancelled
	case "subscription.paused":
		status = models.SubscriptionInactive
	default:
		// Unknown event types are acknowledged so the provider stops
		// retrying them.
		log.Info().Str("type", req.Type).Msg("ignoring billing event")
		respondJSON(w, http.StatusOK, nil)
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	err := a.store.UpdateMembershipByExternalID(ctx, req.ExternalSubscriptionID, status, req.CurrentPeriodEnd)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

// handleVerifyEmail redeems an email verification token. The token is
// single-use: consuming it deletes the row and marks the user verified.
func (a *API) handleVerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	t, err := a.store.ConsumeEmailVerificationToken(ctx, req.Token)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"user_id": t.UserID})
}

// handleCleanup is the operator-invoked sweep for expired sessions and
// tokens. Nothing expires rows in the background; this is the only
// eviction path.
func (a *API) handleCleanup(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	sessions, err := a.store.DeleteExpiredSessions(ctx)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	tokens, err := a.store.DeleteExpiredTokens(ctx)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	log.Info().Int64("sessions", sessions).Int64("tokens", tokens).Msg("expired rows removed")
	respondJSON(w, http.StatusOK, map[string]any{
		"sessions_removed": sessions,
		"tokens_removed":   tokens,
	})
}

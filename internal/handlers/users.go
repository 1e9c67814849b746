package handlers

import (
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

func (a *API) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email        string  `json:"email"`
		Username     *string `json:"username"`
		PasswordHash string  `json:"password_hash"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.PasswordHash == "" {
		respondError(w, http.StatusBadRequest, errors.New("password_hash is required"))
		return
	}

	user := models.User{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: req.PasswordHash,
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	if err := a.store.CreateUser(ctx, &user); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"id": user.ID})
}

func (a *API) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, errors.New("invalid user id"))
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	user, err := a.store.UserByID(ctx, id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"id":             user.ID,
		"email":          user.Email,
		"username":       user.Username,
		"email_verified": user.EmailVerified,
		"created_at":     user.CreatedAt,
	})
}

func (a *API) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, errors.New("invalid user id"))
		return
	}

	var req struct {
		Email        *string `json:"email"`
		Username     *string `json:"username"`
		PasswordHash *string `json:"password_hash"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	user, err := a.store.UserByID(ctx, id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if req.Email != nil {
		user.Email = strings.TrimSpace(strings.ToLower(*req.Email))
	}
	if req.Username != nil {
		user.Username = req.Username
	}
	if req.PasswordHash != nil {
		user.PasswordHash = *req.PasswordHash
	}

	if err := a.store.UpdateUser(ctx, user); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"id": user.ID})
}

// handleGetProfile resolves a public profile by username, the lookup behind
// the profile route template.
func (a *API) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	user, err := a.store.UserByUsername(ctx, username)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"id":       user.ID,
		"username": user.Username,
		"path":     routes.ProfilePath(username),
	})
}

// handleVerifyUser is the admin override for email verification, for support
// cases where the token email never arrived.
func (a *API) handleVerifyUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, errors.New("invalid user id"))
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	if err := a.store.MarkEmailVerified(ctx, id); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// handleRequestPasswordReset issues a reset token for a known address. The
// response is identical whether or not the address exists, so the endpoint
// cannot be used to probe for accounts.
func (a *API) handleRequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	user, err := a.store.UserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondJSON(w, http.StatusAccepted, map[string]any{"status": "accepted"})
			return
		}
		respondStoreError(w, err)
		return
	}

	token := models.PasswordResetToken{
		Token:     uuid.NewString(),
		Email:     user.Email,
		UserID:    user.ID,
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}
	if err := a.store.CreatePasswordResetToken(ctx, &token); err != nil {
		respondStoreError(w, err)
		return
	}

	// Delivery belongs to the mail service; the token never appears in the
	// response, which must match the unknown-address branch exactly.
	log.Debug().Str("email", user.Email).Str("token", token.Token).Msg("password reset token issued")

	respondJSON(w, http.StatusAccepted, map[string]any{"status": "accepted"})
}

// handleConfirmPasswordReset redeems a reset token and stores the new hash.
func (a *API) handleConfirmPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token        string `json:"token"`
		PasswordHash string `json:"password_hash"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	if req.PasswordHash == "" {
		respondError(w, http.StatusBadRequest, errors.New("password_hash is required"))
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	t, err := a.store.ConsumePasswordResetToken(ctx, req.Token)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	user, err := a.store.UserByID(ctx, t.UserID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	user.PasswordHash = req.PasswordHash
	if err := a.store.UpdateUser(ctx, user); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"user_id": user.ID})
}

func (a *API) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, errors.New("invalid user id"))
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	if err := a.store.DeleteUser(ctx, id); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

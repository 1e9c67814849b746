package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quill/internal/store"
)

func TestHealthEndpoints(t *testing.T) {
	r := Router(RouterOptions{})

	for _, path := range []string{"/healthz", "/readyz", "/metrics"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, "GET %s", path)
	}
}

func TestRespondStoreErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", store.ErrNotFound, http.StatusNotFound},
		{"duplicate", store.ErrDuplicate, http.StatusConflict},
		{"foreign key", store.ErrForeignKey, http.StatusConflict},
		{"validation", &store.ValidationError{Field: "slug", Message: "bad"}, http.StatusBadRequest},
		{"opaque", assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respondStoreError(rec, tt.err)
			assert.Equal(t, tt.want, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestUserIDFromRequest(t *testing.T) {
	id := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-User-ID", id.String())
	got, err := userIDFromRequest(req)
	require.NoError(t, err)
	assert.Equal(t, id, got)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	_, err = userIDFromRequest(req)
	assert.Error(t, err)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-User-ID", "not-a-uuid")
	_, err = userIDFromRequest(req)
	assert.Error(t, err)
}

func TestPageFromRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?limit=10&offset=30", nil)
	p := pageFromRequest(req)
	assert.Equal(t, store.Page{Limit: 10, Offset: 30}, p)

	req = httptest.NewRequest(http.MethodGet, "/?limit=abc", nil)
	assert.Equal(t, store.Page{}, pageFromRequest(req))
}

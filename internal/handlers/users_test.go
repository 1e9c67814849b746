package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quill/internal/db"
	"quill/internal/models"
	"quill/internal/store"
)

func newTestRouter(t *testing.T) (http.Handler, *store.Store) {
	t.Helper()

	dsn := os.Getenv("QUILL_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("QUILL_TEST_DATABASE_URL not set; skipping database-backed tests")
	}

	ctx := context.Background()
	database, err := db.Connect(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(database) })
	require.NoError(t, db.Migrate(ctx, database))

	s := store.New(database)
	return Router(RouterOptions{Store: s}), s
}

// A reset request must not reveal whether the address has an account: both
// branches return the same status and body.
func TestPasswordResetDoesNotRevealAccounts(t *testing.T) {
	r, s := newTestRouter(t)

	email := fmt.Sprintf("reset-%s@example.com", uuid.NewString())
	user := models.User{Email: email, PasswordHash: "x"}
	require.NoError(t, s.CreateUser(context.Background(), &user))

	request := func(addr string) *httptest.ResponseRecorder {
		body := strings.NewReader(fmt.Sprintf(`{"email":%q}`, addr))
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/password-reset", body)
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	known := request(email)
	unknown := request(fmt.Sprintf("nobody-%s@example.com", uuid.NewString()))

	assert.Equal(t, http.StatusAccepted, known.Code)
	assert.Equal(t, known.Code, unknown.Code)
	assert.Equal(t, known.Body.String(), unknown.Body.String())
	assert.NotContains(t, known.Body.String(), "token")
}

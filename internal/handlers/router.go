package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"quill/internal/store"
)

// RouterOptions configures the HTTP surface.
type RouterOptions struct {
	Store          *store.Store
	AllowedOrigins []string
	RateLimit      int
	RateWindow     time.Duration
	SessionTTL     time.Duration
}

// API carries handler dependencies.
type API struct {
	store      *store.Store
	sessionTTL time.Duration
}

// Router builds the HTTP router: health, readiness, metrics, and the
// content/membership API.
func Router(opts RouterOptions) http.Handler {
	a := &API{store: opts.Store, sessionTTL: opts.SessionTTL}

	r := chi.NewRouter()

	allowed := opts.AllowedOrigins
	if len(allowed) == 0 {
		allowed = []string{"*"}
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowed,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-User-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           int((10 * time.Minute).Seconds()),
	}))

	limit := opts.RateLimit
	if limit <= 0 {
		limit = 100
	}
	window := opts.RateWindow
	if window <= 0 {
		window = time.Minute
	}
	r.Use(httprate.Limit(limit, window))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	r.Method("GET", "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/articles", a.handleListArticles)
		r.Post("/articles", a.handleCreateArticle)
		r.Get("/articles/{slug}", a.handleGetArticle)
		r.Put("/articles/{articleID}", a.handleUpdateArticle)
		r.Post("/articles/{articleID}/publish", a.handlePublishArticle)
		r.Post("/articles/{articleID}/unpublish", a.handleUnpublishArticle)
		r.Delete("/articles/{articleID}", a.handleDeleteArticle)
		r.Put("/articles/{articleID}/tags", a.handleSetArticleTags)
		r.Get("/articles/{articleID}/comments", a.handleListComments)
		r.Post("/articles/{articleID}/comments", a.handleCreateComment)
		r.Post("/articles/{articleID}/save", a.handleSaveArticle)
		r.Delete("/articles/{articleID}/save", a.handleUnsaveArticle)

		r.Put("/comments/{commentID}", a.handleUpdateComment)
		r.Delete("/comments/{commentID}", a.handleDeleteComment)
		r.Get("/saved", a.handleListSaved)

		r.Get("/categories", a.handleListCategories)
		r.Post("/categories", a.handleCreateCategory)
		r.Get("/categories/{slug}", a.handleGetCategory)
		r.Put("/categories/{categoryID}", a.handleUpdateCategory)
		r.Delete("/categories/{categoryID}", a.handleDeleteCategory)

		r.Get("/tags", a.handleListTags)
		r.Post("/tags", a.handleCreateTag)
		r.Delete("/tags/{tagID}", a.handleDeleteTag)

		r.Get("/events", a.handleListEvents)
		r.Post("/events", a.handleCreateEvent)
		r.Get("/events/{eventID}", a.handleGetEvent)
		r.Put("/events/{eventID}", a.handleUpdateEvent)
		r.Delete("/events/{eventID}", a.handleDeleteEvent)
		r.Get("/events/{eventID}/rsvps", a.handleListRsvps)
		r.Post("/events/{eventID}/rsvp", a.handleRsvp)
		r.Delete("/events/{eventID}/rsvp", a.handleCancelRsvp)

		r.Post("/newsletter", a.handleSubscribe)
		r.Post("/newsletter/confirm", a.handleConfirmSubscription)
		r.Post("/newsletter/unsubscribe", a.handleUnsubscribe)
		r.Get("/newsletter/subscribers", a.handleListSubscribers)

		r.Post("/sessions", a.handleCreateSession)
		r.Get("/sessions/{sessionID}", a.handleGetSession)
		r.Delete("/sessions/{sessionID}", a.handleDeleteSession)

		r.Post("/users", a.handleCreateUser)
		r.Get("/users/{userID}", a.handleGetUser)
		r.Put("/users/{userID}", a.handleUpdateUser)
		r.Delete("/users/{userID}", a.handleDeleteUser)
		r.Post("/users/{userID}/verify", a.handleVerifyUser)
		r.Post("/users/verify-email", a.handleVerifyEmail)

		r.Get("/profiles/{username}", a.handleGetProfile)

		r.Post("/auth/password-reset", a.handleRequestPasswordReset)
		r.Post("/auth/password-reset/confirm", a.handleConfirmPasswordReset)

		r.Post("/maintenance/cleanup", a.handleCleanup)

		r.Get("/membership", a.handleGetMembership)
	})

	r.Post("/webhooks/billing", a.handleBillingWebhook)

	return r
}

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, 5*time.Second)
}

// userIDFromRequest identifies the acting user. Authentication itself lives
// in front of this service; by the time a request arrives the gateway has
// resolved the session and forwards the user id in a trusted header.
func userIDFromRequest(r *http.Request) (uuid.UUID, error) {
	raw := r.Header.Get("X-User-ID")
	if raw == "" {
		return uuid.Nil, errors.New("missing X-User-ID header")
	}
	return uuid.Parse(raw)
}

func pageFromRequest(r *http.Request) store.Page {
	q := r.URL.Query()
	p := store.Page{}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			p.Limit = n
		}
	}
	if v := q.Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			p.Offset = n
		}
	}
	return p
}

package store

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quill/internal/db"
	"quill/internal/models"
)

// newTestStore connects to the database named by QUILL_TEST_DATABASE_URL,
// migrates the schema, and wipes all rows so each test starts clean. Tests
// in this file are skipped when the variable is unset.
func newTestStore(t *testing.T) *Store {
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

	err = database.Exec(`TRUNCATE TABLE
		membership_subscriptions, event_rsvps, events,
		newsletter_subscriptions, comments, saved_articles, article_tags,
		articles, tags, categories,
		password_reset_tokens, email_verification_tokens, sessions, users
		RESTART IDENTITY CASCADE`).Error
	require.NoError(t, err)

	return New(database)
}

func newUser(t *testing.T, s *Store) *models.User {
	t.Helper()
	u := &models.User{
		Email:        fmt.Sprintf("u-%s@example.com", uuid.NewString()),
		PasswordHash: "x",
	}
	require.NoError(t, s.CreateUser(context.Background(), u))
	return u
}

func newCategory(t *testing.T, s *Store, name, slug string) *models.Category {
	t.Helper()
	c := &models.Category{Name: name, Slug: slug}
	require.NoError(t, s.CreateCategory(context.Background(), c))
	return c
}

func newArticle(t *testing.T, s *Store, author *models.User, category *models.Category, slug string) *models.Article {
	t.Helper()
	a := &models.Article{
		Slug:       slug,
		Title:      slug,
		Content:    "body",
		Excerpt:    "excerpt",
		AuthorID:   author.ID,
		CategoryID: category.ID,
	}
	require.NoError(t, s.CreateArticle(context.Background(), a))
	return a
}

func newEvent(t *testing.T, s *Store, capacity *int) *models.Event {
	t.Helper()
	e := &models.Event{
		Title:       "meetup",
		Description: "d",
		Location:    "online",
		StartsAt:    time.Now().UTC().Add(24 * time.Hour),
		EndsAt:      time.Now().UTC().Add(26 * time.Hour),
		Capacity:    capacity,
		IsPublished: true,
	}
	require.NoError(t, s.CreateEvent(context.Background(), e))
	return e
}

func TestUniqueConstraints(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := newUser(t, s)
	dup := &models.User{Email: u.Email, PasswordHash: "y"}
	assert.ErrorIs(t, s.CreateUser(ctx, dup), ErrDuplicate)

	cat := newCategory(t, s, "Tech", "tech")
	newArticle(t, s, u, cat, "hello-world")
	again := &models.Article{
		Slug: "hello-world", Title: "t", Content: "c", Excerpt: "e",
		AuthorID: u.ID, CategoryID: cat.ID,
	}
	assert.ErrorIs(t, s.CreateArticle(ctx, again), ErrDuplicate)
}

func TestCreateArticleRequiresRelations(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := newUser(t, s)
	orphan := &models.Article{
		Slug: "no-category", Title: "t", Content: "c", Excerpt: "e",
		AuthorID: u.ID, CategoryID: uuid.New(),
	}
	assert.ErrorIs(t, s.CreateArticle(ctx, orphan), ErrForeignKey)
}

func TestDeleteUserCascades(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := newUser(t, s)
	cat := newCategory(t, s, "Tech", "tech")
	article := newArticle(t, s, u, cat, "cascade-check")

	_, err := s.CreateSession(ctx, u.ID, time.Hour)
	require.NoError(t, err)
	require.NoError(t, s.SaveArticle(ctx, u.ID, article.ID))
	require.NoError(t, s.CreateComment(ctx, &models.Comment{
		Body: "hi", UserID: u.ID, ArticleID: article.ID,
	}))

	event := newEvent(t, s, nil)
	_, err = s.RSVP(ctx, u.ID, event.ID)
	require.NoError(t, err)

	require.NoError(t, s.UpsertMembership(ctx, &models.MembershipSubscription{
		UserID: u.ID, Status: models.SubscriptionActive,
	}))

	sub, err := s.Subscribe(ctx, fmt.Sprintf("n-%s@example.com", uuid.NewString()), &u.ID)
	require.NoError(t, err)

	require.NoError(t, s.DeleteUser(ctx, u.ID))

	_, err = s.UserByID(ctx, u.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	var count int64
	require.NoError(t, s.db.Model(&models.Session{}).Where("user_id = ?", u.ID).Count(&count).Error)
	assert.Zero(t, count, "sessions should cascade")
	require.NoError(t, s.db.Model(&models.SavedArticle{}).Where("user_id = ?", u.ID).Count(&count).Error)
	assert.Zero(t, count, "saved articles should cascade")
	require.NoError(t, s.db.Model(&models.Comment{}).Where("user_id = ?", u.ID).Count(&count).Error)
	assert.Zero(t, count, "comments should cascade")
	require.NoError(t, s.db.Model(&models.EventRsvp{}).Where("user_id = ?", u.ID).Count(&count).Error)
	assert.Zero(t, count, "RSVPs should cascade")

	_, err = s.MembershipByUser(ctx, u.ID)
	assert.ErrorIs(t, err, ErrNotFound, "membership should cascade")

	// The newsletter row survives with the user link cleared.
	kept, err := s.SubscriptionByEmail(ctx, sub.Email)
	require.NoError(t, err)
	assert.Nil(t, kept.UserID)
}

func TestDeleteArticleCascades(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	author := newUser(t, s)
	reader := newUser(t, s)
	cat := newCategory(t, s, "Tech", "tech")
	article := newArticle(t, s, author, cat, "doomed")

	tag := &models.Tag{Name: "Go", Slug: "go"}
	require.NoError(t, s.CreateTag(ctx, tag))
	require.NoError(t, s.SetTags(ctx, article.ID, []uuid.UUID{tag.ID}))
	require.NoError(t, s.SaveArticle(ctx, reader.ID, article.ID))
	require.NoError(t, s.CreateComment(ctx, &models.Comment{
		Body: "nice", UserID: reader.ID, ArticleID: article.ID,
	}))

	require.NoError(t, s.DeleteArticle(ctx, article.ID))

	var count int64
	require.NoError(t, s.db.Model(&models.ArticleTag{}).Where("article_id = ?", article.ID).Count(&count).Error)
	assert.Zero(t, count, "tag joins should cascade")
	require.NoError(t, s.db.Model(&models.SavedArticle{}).Where("article_id = ?", article.ID).Count(&count).Error)
	assert.Zero(t, count, "bookmarks should cascade")
	require.NoError(t, s.db.Model(&models.Comment{}).Where("article_id = ?", article.ID).Count(&count).Error)
	assert.Zero(t, count, "comments should cascade")

	// Category, author, and tag are untouched.
	_, err := s.CategoryByID(ctx, cat.ID)
	assert.NoError(t, err)
	_, err = s.UserByID(ctx, author.ID)
	assert.NoError(t, err)
	_, err = s.TagBySlug(ctx, "go")
	assert.NoError(t, err)
}

func TestDeleteReferencedCategoryRejected(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := newUser(t, s)
	cat := newCategory(t, s, "Tech", "tech")
	article := newArticle(t, s, u, cat, "holding-reference")

	assert.ErrorIs(t, s.DeleteCategory(ctx, cat.ID), ErrForeignKey)

	require.NoError(t, s.DeleteArticle(ctx, article.ID))
	assert.NoError(t, s.DeleteCategory(ctx, cat.ID))
}

func TestRsvpUniquePerUserAndEvent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := newUser(t, s)
	event := newEvent(t, s, nil)

	first := &models.EventRsvp{UserID: u.ID, EventID: event.ID, Status: models.RsvpConfirmed}
	require.NoError(t, s.CreateRsvp(ctx, first))

	second := &models.EventRsvp{UserID: u.ID, EventID: event.ID, Status: models.RsvpWaitlisted}
	assert.ErrorIs(t, s.CreateRsvp(ctx, second), ErrDuplicate)

	// Updating the existing row instead succeeds.
	require.NoError(t, s.UpdateRsvpStatus(ctx, u.ID, event.ID, models.RsvpCancelled))

	var count int64
	require.NoError(t, s.db.Model(&models.EventRsvp{}).
		Where("user_id = ? AND event_id = ?", u.ID, event.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRsvpCapacityWaitlisting(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	one := 1
	event := newEvent(t, s, &one)
	alice := newUser(t, s)
	bob := newUser(t, s)

	got, err := s.RSVP(ctx, alice.ID, event.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RsvpConfirmed, got.Status)

	got, err = s.RSVP(ctx, bob.ID, event.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RsvpWaitlisted, got.Status)

	// Cancelling the confirmed seat promotes the oldest waitlisted RSVP.
	require.NoError(t, s.CancelRsvp(ctx, alice.ID, event.ID))

	var promoted models.EventRsvp
	require.NoError(t, s.db.First(&promoted, "user_id = ? AND event_id = ?", bob.ID, event.ID).Error)
	assert.Equal(t, models.RsvpConfirmed, promoted.Status)
}

func TestPublishedListingScenario(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := newUser(t, s)
	cat := newCategory(t, s, "Tech", "tech")
	article := newArticle(t, s, u, cat, "hello-world")

	listed, err := s.ListPublished(ctx, ArticleFilter{}, Page{})
	require.NoError(t, err)
	assert.Empty(t, listed)

	require.NoError(t, s.PublishArticle(ctx, article.ID))

	listed, err = s.ListPublished(ctx, ArticleFilter{}, Page{})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "hello-world", listed[0].Slug)
	require.NotNil(t, listed[0].PublishedAt)

	// Republish keeps the original publish timestamp.
	firstPublished := *listed[0].PublishedAt
	require.NoError(t, s.PublishArticle(ctx, article.ID))
	reloaded, err := s.ArticleByID(ctx, article.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.PublishedAt.Equal(firstPublished))
}

func TestPublishedOrderingAndCursor(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := newUser(t, s)
	cat := newCategory(t, s, "Tech", "tech")
	for i := 0; i < 5; i++ {
		a := newArticle(t, s, u, cat, fmt.Sprintf("article-%d", i))
		require.NoError(t, s.PublishArticle(ctx, a.ID))
		time.Sleep(5 * time.Millisecond) // distinct publish timestamps
	}

	firstPage, next, err := s.ListPublishedAfter(ctx, ArticleFilter{}, nil, 3)
	require.NoError(t, err)
	require.Len(t, firstPage, 3)
	require.NotNil(t, next)
	assert.Equal(t, "article-4", firstPage[0].Slug, "newest first")

	secondPage, next, err := s.ListPublishedAfter(ctx, ArticleFilter{}, next, 3)
	require.NoError(t, err)
	require.Len(t, secondPage, 2)
	assert.Nil(t, next)

	seen := map[string]bool{}
	for _, a := range append(firstPage, secondPage...) {
		assert.False(t, seen[a.Slug], "article %s listed twice", a.Slug)
		seen[a.Slug] = true
	}
}

func TestSlugImmutableOncePublished(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := newUser(t, s)
	cat := newCategory(t, s, "Tech", "tech")
	article := newArticle(t, s, u, cat, "frozen")
	require.NoError(t, s.PublishArticle(ctx, article.ID))

	loaded, err := s.ArticleByID(ctx, article.ID)
	require.NoError(t, err)
	loaded.Slug = "thawed"

	var verr *ValidationError
	assert.ErrorAs(t, s.UpdateArticle(ctx, loaded), &verr)
}

func TestSessionExpiryIsReadTime(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := newUser(t, s)
	expired, err := s.CreateSession(ctx, u.ID, -time.Hour)
	require.NoError(t, err)

	_, err = s.ValidSession(ctx, expired.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	removed, err := s.DeleteExpiredSessions(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, removed, int64(1))
}

func TestNewsletterResubscribeReusesRow(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	email := fmt.Sprintf("n-%s@example.com", uuid.NewString())
	first, err := s.Subscribe(ctx, email, nil)
	require.NoError(t, err)

	require.NoError(t, s.Unsubscribe(ctx, email))

	second, err := s.Subscribe(ctx, email, nil)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "resubscribe reactivates in place")

	sub, err := s.SubscriptionByEmail(ctx, email)
	require.NoError(t, err)
	assert.True(t, sub.IsActive)
	assert.Nil(t, sub.UnsubscribedAt)
}

func TestMembershipWebhookUpdates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := newUser(t, s)
	extID := "sub_" + uuid.NewString()
	require.NoError(t, s.UpsertMembership(ctx, &models.MembershipSubscription{
		UserID:                 u.ID,
		ExternalSubscriptionID: &extID,
		Status:                 models.SubscriptionActive,
	}))

	require.NoError(t, s.UpdateMembershipByExternalID(ctx, extID, models.SubscriptionCancelled, nil))

	m, err := s.MembershipByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionCancelled, m.Status)
	assert.NotNil(t, m.CancelledAt)

	assert.ErrorIs(t,
		s.UpdateMembershipByExternalID(ctx, "sub_unknown", models.SubscriptionActive, nil),
		ErrNotFound)
}

func TestVerificationTokenOutlivesUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := newUser(t, s)
	token := &models.EmailVerificationToken{
		Token:     uuid.NewString(),
		Email:     u.Email,
		UserID:    u.ID,
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}
	require.NoError(t, s.CreateEmailVerificationToken(ctx, token))

	require.NoError(t, s.DeleteUser(ctx, u.ID))

	// No declared relation: the token row is not cascade-deleted.
	kept, err := s.TokensForUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, kept, 1)
}

func TestCreatePublishedArticleStampsTimestamp(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := newUser(t, s)
	c := newCategory(t, s, "General", "general")

	a := &models.Article{
		Slug:        "launched-live",
		Title:       "Launched live",
		Content:     "body",
		Excerpt:     "excerpt",
		AuthorID:    u.ID,
		CategoryID:  c.ID,
		IsPublished: true,
	}
	require.NoError(t, s.CreateArticle(ctx, a))
	require.NotNil(t, a.PublishedAt)

	// Rows published at creation must page cleanly: the cursor is built
	// from the boundary row's publish timestamp.
	for i := 0; i < 2; i++ {
		extra := &models.Article{
			Slug:        fmt.Sprintf("launched-live-%d", i),
			Title:       "Launched live",
			Content:     "body",
			Excerpt:     "excerpt",
			AuthorID:    u.ID,
			CategoryID:  c.ID,
			IsPublished: true,
		}
		require.NoError(t, s.CreateArticle(ctx, extra))
	}

	page, next, err := s.ListPublishedAfter(ctx, ArticleFilter{}, nil, 2)
	require.NoError(t, err)
	assert.Len(t, page, 2)
	require.NotNil(t, next)

	rest, _, err := s.ListPublishedAfter(ctx, ArticleFilter{}, next, 2)
	require.NoError(t, err)
	assert.Len(t, rest, 1)
}

func TestUnsaveArticleIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := newUser(t, s)
	c := newCategory(t, s, "General", "general")
	a := newArticle(t, s, u, c, "bookmark-me")

	require.NoError(t, s.SaveArticle(ctx, u.ID, a.ID))
	require.NoError(t, s.UnsaveArticle(ctx, u.ID, a.ID))

	// Removing an absent bookmark is a no-op, not an error.
	require.NoError(t, s.UnsaveArticle(ctx, u.ID, a.ID))
	require.NoError(t, s.UnsaveArticle(ctx, uuid.New(), a.ID))

	saved, err := s.SavedArticles(ctx, u.ID, Page{})
	require.NoError(t, err)
	assert.Empty(t, saved)
}

func TestTokensAreSingleUse(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := newUser(t, s)

	vt := &models.EmailVerificationToken{
		Token:     uuid.NewString(),
		Email:     u.Email,
		UserID:    u.ID,
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}
	require.NoError(t, s.CreateEmailVerificationToken(ctx, vt))

	_, err := s.ConsumeEmailVerificationToken(ctx, vt.Token)
	require.NoError(t, err)
	_, err = s.ConsumeEmailVerificationToken(ctx, vt.Token)
	assert.ErrorIs(t, err, ErrNotFound)

	rt := &models.PasswordResetToken{
		Token:     uuid.NewString(),
		Email:     u.Email,
		UserID:    u.ID,
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}
	require.NoError(t, s.CreatePasswordResetToken(ctx, rt))

	_, err = s.ConsumePasswordResetToken(ctx, rt.Token)
	require.NoError(t, err)
	_, err = s.ConsumePasswordResetToken(ctx, rt.Token)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateUserValidatesUsername(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := newUser(t, s)
	bad := "Not A Slug"
	u.Username = &bad

	var verr *ValidationError
	assert.ErrorAs(t, s.UpdateUser(ctx, u), &verr)

	ok := "fine-name"
	u.Username = &ok
	require.NoError(t, s.UpdateUser(ctx, u))
}

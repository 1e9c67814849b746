// Package routes is the static route table shared with the UI layer: a pure
// mapping from logical names to URL path templates plus string-building
// helpers for parameterized paths.
package routes

import "strings"

// Logical route names. The UI references routes by these names, never by
// raw paths.
const (
	Home          = "home"
	Articles      = "articles"
	ArticleDetail = "article-detail"
	Category      = "category"
	Tag           = "tag"
	Events        = "events"
	EventDetail   = "event-detail"
	Membership    = "membership"
	Newsletter    = "newsletter"
	Profile       = "profile"
	SavedArticles = "saved-articles"
	Login         = "login"
	Register      = "register"
)

// Table maps logical route names to path templates. Parameter segments use
// the {name} form the router expects.
var Table = map[string]string{
	Home:          "/",
	Articles:      "/articles",
	ArticleDetail: "/articles/{slug}",
	Category:      "/categories/{slug}",
	Tag:           "/tags/{slug}",
	Events:        "/events",
	EventDetail:   "/events/{id}",
	Membership:    "/membership",
	Newsletter:    "/newsletter",
	Profile:       "/profile/{username}",
	SavedArticles: "/saved",
	Login:         "/login",
	Register:      "/register",
}

func expand(name, param, value string) string {
	return strings.Replace(Table[name], "{"+param+"}", value, 1)
}

// ArticlePath builds the canonical URL path for an article slug.
func ArticlePath(slug string) string { return expand(ArticleDetail, "slug", slug) }

// CategoryPath builds the canonical URL path for a category slug.
func CategoryPath(slug string) string { return expand(Category, "slug", slug) }

// TagPath builds the canonical URL path for a tag slug.
func TagPath(slug string) string { return expand(Tag, "slug", slug) }

// EventPath builds the canonical URL path for an event id.
func EventPath(id string) string { return expand(EventDetail, "id", id) }

// ProfilePath builds the canonical URL path for a username.
func ProfilePath(username string) string { return expand(Profile, "username", username) }

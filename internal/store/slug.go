package store

import (
	"regexp"
	"strings"
)

// slugPattern matches lowercase URL-safe slugs: letters, digits, and single
// hyphens between segments.
var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

func validateSlug(field, slug string) error {
	if slug == "" {
		return &ValidationError{Field: field, Message: "must not be empty"}
	}
	if !slugPattern.MatchString(slug) {
		return &ValidationError{Field: field, Message: "must be a lowercase URL-safe slug"}
	}
	return nil
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL-safe slug from a title. Callers still own
// uniqueness; a collision on insert surfaces as ErrDuplicate.
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = nonSlugChars.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

func validateEmail(email string) error {
	// Deliverability is the mail provider's problem; the store only rejects
	// obviously malformed values before they hit a unique index.
	if email == "" || !strings.Contains(email, "@") || strings.ContainsAny(email, " \t\n") {
		return &ValidationError{Field: "email", Message: "malformed email address"}
	}
	return nil
}

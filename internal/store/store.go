// Package store implements the relational content and membership store:
// durable persistence for users, articles, events, and memberships with
// uniqueness and referential-integrity enforcement surfaced as typed errors.
package store

import (
	"context"

	"gorm.io/gorm"
)

// Store wraps a shared GORM handle. It is safe for concurrent use; all
// coordination is delegated to the database's transaction isolation.
type Store struct {
	db *gorm.DB
}

// New returns a Store backed by the provided database handle.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// tx runs fn inside a single database transaction, translating any error
// that escapes it.
func (s *Store) tx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return translate(s.db.WithContext(ctx).Transaction(fn))
}

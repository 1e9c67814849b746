package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a lookup by id or unique key misses.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when a write collides with a unique
	// constraint (email, slug, username, token, external ids).
	ErrDuplicate = errors.New("duplicate key value")

	// ErrForeignKey is returned when a required relation target does not
	// exist, or when a delete would orphan a required reference.
	ErrForeignKey = errors.New("foreign key violation")
)

// ValidationError reports an application-level rule violation caught before
// the write reaches the database.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translate maps driver and ORM errors onto the store's taxonomy. Every
// store method routes its result through here so callers only ever see
// typed failures.
func translate(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrForeignKey
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return ErrDuplicate
		case pgForeignKeyViolation:
			return ErrForeignKey
		}
	}

	return err
}

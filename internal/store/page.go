package store

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Page describes offset pagination for list operations.
type Page struct {
	Limit  int
	Offset int
}

func (p Page) limit() int {
	switch {
	case p.Limit <= 0:
		return defaultPageSize
	case p.Limit > maxPageSize:
		return maxPageSize
	}
	return p.Limit
}

// Cursor is an opaque keyset position over (published_at DESC, id DESC).
// Listing after a cursor never rescans earlier pages, so it stays stable
// while new articles are published.
type Cursor struct {
	PublishedAt time.Time
	ID          uuid.UUID
}

// Encode renders the cursor as an opaque URL-safe token.
func (c Cursor) Encode() string {
	raw := fmt.Sprintf("%d|%s", c.PublishedAt.UnixMicro(), c.ID)
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// DecodeCursor parses a token produced by Encode.
func DecodeCursor(token string) (Cursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, &ValidationError{Field: "cursor", Message: "malformed token"}
	}
	parts := strings.SplitN(string(raw), "|", 2)
	if len(parts) != 2 {
		return Cursor{}, &ValidationError{Field: "cursor", Message: "malformed token"}
	}
	micros, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return Cursor{}, &ValidationError{Field: "cursor", Message: "malformed timestamp"}
	}
	id, err := uuid.Parse(parts[1])
	if err != nil {
		return Cursor{}, &ValidationError{Field: "cursor", Message: "malformed id"}
	}
	return Cursor{PublishedAt: time.UnixMicro(micros).UTC(), ID: id}, nil
}

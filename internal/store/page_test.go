package store

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorRoundTrip(t *testing.T) {
	orig := Cursor{
		PublishedAt: time.Date(2026, 3, 14, 9, 26, 53, 589000, time.UTC),
		ID:          uuid.New(),
	}

	decoded, err := DecodeCursor(orig.Encode())
	require.NoError(t, err)
	assert.True(t, decoded.PublishedAt.Equal(orig.PublishedAt))
	assert.Equal(t, orig.ID, decoded.ID)
}

func TestDecodeCursorRejectsGarbage(t *testing.T) {
	var verr *ValidationError

	tests := []struct {
		name  string
		token string
	}{
		{"not base64", "%%%"},
		{"missing separator", "aGVsbG8"},
		{"bad timestamp", "eHx8"}, // "x||" encoded
		{"trailing garbage in timestamp", base64.RawURLEncoding.EncodeToString(
			[]byte("12abc|" + uuid.Nil.String()))},
		{"bad uuid", Cursor{}.Encode()[:4]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeCursor(tt.token)
			assert.ErrorAs(t, err, &verr)
		})
	}
}

func TestPageLimitClamping(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{"zero gets default", 0, defaultPageSize},
		{"negative gets default", -5, defaultPageSize},
		{"within range passes", 42, 42},
		{"above max clamps", 5000, maxPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Page{Limit: tt.in}.limit())
		})
	}
}

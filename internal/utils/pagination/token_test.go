package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeCursor(t *testing.T) {
	createdAt := time.Date(2024, 5, 15, 14, 30, 45, 123456789, time.UTC)

	token := EncodeCursor(createdAt, "b7c1e0d2-0000-4000-8000-000000000001")
	assert.NotEmpty(t, token)

	cur, err := DecodeCursor(token)
	require.NoError(t, err)
	assert.True(t, createdAt.Equal(cur.CreatedAt))
	assert.Equal(t, "b7c1e0d2-0000-4000-8000-000000000001", cur.ID)
}

func TestEncodeCursor_NormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("WAT", 3600)
	createdAt := time.Date(2024, 1, 1, 1, 0, 0, 0, loc)

	cur, err := DecodeCursor(EncodeCursor(createdAt, "id"))
	require.NoError(t, err)
	assert.True(t, createdAt.Equal(cur.CreatedAt))
	assert.Equal(t, time.UTC, cur.CreatedAt.Location())
}

func TestDecodeCursor_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"not base64", "%%%"},
		{"single field", EncodeMultiFieldToken("2024-01-01T00:00:00Z")},
		{"bad time", EncodeMultiFieldToken("yesterday", "id")},
		{"empty id", EncodeMultiFieldToken("2024-01-01T00:00:00Z", "")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeCursor(tt.token)
			assert.Error(t, err)
		})
	}
}

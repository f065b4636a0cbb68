package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeToken(t *testing.T) {
	entryDate := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	token := EncodeToken(entryDate, 42)
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedDate, decodedID, err := DecodeToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, entryDate, decodedDate, "Entry date should match after decode")
	assert.Equal(t, int64(42), decodedID, "Entry ID should match after decode")

	// Time of day is not part of the cursor
	withClock := time.Date(2024, 1, 15, 13, 45, 0, 0, time.UTC)
	decodedDate, _, err = DecodeToken(EncodeToken(withClock, 7))
	assert.NoError(t, err)
	assert.Equal(t, entryDate, decodedDate)
}

func TestDecodeTokenError(t *testing.T) {
	_, _, err := DecodeToken("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode")

	noSeparator := base64.URLEncoding.EncodeToString([]byte("2024-01-15"))
	_, _, err = DecodeToken(noSeparator)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	badDate := base64.URLEncoding.EncodeToString([]byte("notadate|4"))
	_, _, err = DecodeToken(badDate)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "entry date parse")

	badID := base64.URLEncoding.EncodeToString([]byte("2024-01-15|abc"))
	_, _, err = DecodeToken(badID)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "entry id parse")

	zeroID := base64.URLEncoding.EncodeToString([]byte("2024-01-15|0"))
	_, _, err = DecodeToken(zeroID)
	assert.Error(t, err)
}

package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPadTicketNumber(t *testing.T) {
	assert.Equal(t, "00001", PadTicketNumber("1"))
	assert.Equal(t, "00042", PadTicketNumber("42"))
	assert.Equal(t, "12345", PadTicketNumber("12345"))
	assert.Equal(t, "123456", PadTicketNumber("123456"), "wider numbers pass through")
	assert.Equal(t, "A-17", PadTicketNumber("A-17"), "non-numeric values pass through")
	assert.Equal(t, "", PadTicketNumber(""))
}

func TestParseTicketDate(t *testing.T) {
	t.Run("RFC3339", func(t *testing.T) {
		parsed, err := ParseTicketDate("2024-01-01T10:30:00Z")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC), parsed)
	})

	t.Run("Bare date", func(t *testing.T) {
		parsed, err := ParseTicketDate("2024-01-01")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), parsed)
	})

	t.Run("Empty is the zero time", func(t *testing.T) {
		parsed, err := ParseTicketDate("")
		require.NoError(t, err)
		assert.True(t, parsed.IsZero())
	})

	t.Run("Failed - unparseable", func(t *testing.T) {
		_, err := ParseTicketDate("first of January")
		assert.Error(t, err)
	})
}

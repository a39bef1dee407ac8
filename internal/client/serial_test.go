package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandSerial(t *testing.T) {
	t.Run("Expands and zero-pads", func(t *testing.T) {
		numbers, err := ExpandSerial("1", "3")
		require.NoError(t, err)
		assert.Equal(t, []string{"00001", "00002", "00003"}, numbers)
	})

	t.Run("Accepts already padded bounds", func(t *testing.T) {
		numbers, err := ExpandSerial("00010", "00012")
		require.NoError(t, err)
		assert.Equal(t, []string{"00010", "00011", "00012"}, numbers)
	})

	t.Run("Single-ticket range", func(t *testing.T) {
		numbers, err := ExpandSerial("00042", "00042")
		require.NoError(t, err)
		assert.Equal(t, []string{"00042"}, numbers)
	})

	t.Run("Failed - start past end", func(t *testing.T) {
		_, err := ExpandSerial("00010", "00009")
		assert.ErrorIs(t, err, ErrSerialOrder)
	})

	t.Run("Failed - non-numeric bound", func(t *testing.T) {
		_, err := ExpandSerial("abc", "00010")
		assert.ErrorIs(t, err, ErrSerialBounds)

		_, err = ExpandSerial("00001", "")
		assert.ErrorIs(t, err, ErrSerialBounds)
	})

	t.Run("Failed - bound too wide", func(t *testing.T) {
		_, err := ExpandSerial("000001", "000002")
		assert.ErrorIs(t, err, ErrSerialBounds)
	})

	t.Run("Failed - range too large", func(t *testing.T) {
		_, err := ExpandSerial("00001", "99999")
		assert.Error(t, err)
	})
}

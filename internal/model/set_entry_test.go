package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEntry(t *testing.T) {
	t.Run("legacy string entry", func(t *testing.T) {
		entry, err := NormalizeEntry("push-key-1", json.RawMessage(`"G1A_2_1"`))
		require.NoError(t, err)
		assert.Equal(t, "push-key-1", entry.Key)
		assert.Equal(t, "G1A_2_1", entry.ID)
		assert.True(t, entry.Legacy)
		assert.False(t, entry.HasOrder)
	})

	t.Run("object entry with order", func(t *testing.T) {
		entry, err := NormalizeEntry("k1", json.RawMessage(`{"id":"q7","order":0,"addedAt":1700000000000}`))
		require.NoError(t, err)
		assert.Equal(t, "q7", entry.ID)
		assert.True(t, entry.HasOrder)
		assert.Equal(t, 0, entry.Order)
		assert.Equal(t, int64(1700000000000), entry.AddedAt)
		assert.False(t, entry.Legacy)
	})

	t.Run("object entry without order keeps HasOrder false", func(t *testing.T) {
		entry, err := NormalizeEntry("k1", json.RawMessage(`{"id":"q7"}`))
		require.NoError(t, err)
		assert.False(t, entry.HasOrder)
		assert.Equal(t, 0, entry.Order)
	})

	t.Run("object entry without id falls back to the key", func(t *testing.T) {
		entry, err := NormalizeEntry("q9", json.RawMessage(`{"order":3}`))
		require.NoError(t, err)
		assert.Equal(t, "q9", entry.ID)
	})

	t.Run("garbage is an error", func(t *testing.T) {
		_, err := NormalizeEntry("k1", json.RawMessage(`[1,2]`))
		assert.Error(t, err)
	})
}

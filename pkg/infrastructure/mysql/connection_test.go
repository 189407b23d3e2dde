package mysql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDSN(t *testing.T) {
	normalized, err := normalizeDSN("shop:secret@tcp(localhost:3306)/shop")
	require.NoError(t, err)
	assert.Contains(t, normalized, "parseTime=true")
	assert.Contains(t, normalized, "clientFoundRows=true")

	t.Run("existing params survive", func(t *testing.T) {
		normalized, err := normalizeDSN("shop:secret@tcp(localhost:3306)/shop?charset=utf8mb4")
		require.NoError(t, err)
		assert.Contains(t, normalized, "charset=utf8mb4")
		assert.Contains(t, normalized, "clientFoundRows=true")
	})

	t.Run("malformed DSN is rejected", func(t *testing.T) {
		_, err := normalizeDSN("shop:secret@tcp(localhost")
		assert.Error(t, err)
	})
}

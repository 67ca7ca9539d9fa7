package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	h, err := HashPassword("pw123")
	require.NoError(t, err)
	require.NotEqual(t, "pw123", h)

	require.True(t, CheckPassword(h, "pw123"))
	require.False(t, CheckPassword(h, "pw124"))
}

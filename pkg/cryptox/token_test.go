package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRandomString(t *testing.T) {
	s, err := RandomString(10, Alphanumeric)
	require.NoError(t, err)
	require.Len(t, s, 10)
	for _, c := range s {
		require.True(t, strings.ContainsRune(Alphanumeric, c), "unexpected char %q", c)
	}

	_, err = RandomString(0, Alphanumeric)
	require.Error(t, err)

	_, err = RandomString(4, "")
	require.Error(t, err)
}

package totpx_test

import (
	"strings"
	"testing"

	"github.com/aussiebroadwan/inkwell/pkg/totpx"
	"github.com/stretchr/testify/require"
)

func TestGenerateRecoveryCodes(t *testing.T) {
	for range 50 {
		codes, err := totpx.GenerateRecoveryCodes()
		require.NoError(t, err)
		require.Len(t, codes, totpx.RecoveryCodeCount)

		seen := make(map[string]struct{}, len(codes))
		for _, code := range codes {
			require.True(t, totpx.IsRecoveryCode(code), "bad format %q", code)

			left, right, ok := strings.Cut(code, totpx.RecoveryCodeSeparator)
			require.True(t, ok)
			require.Len(t, left, totpx.RecoveryCodeSegmentLength)
			require.Len(t, right, totpx.RecoveryCodeSegmentLength)

			_, dup := seen[code]
			require.False(t, dup, "duplicate code %q", code)
			seen[code] = struct{}{}
		}
	}
}

func TestIsRecoveryCode(t *testing.T) {
	require.True(t, totpx.IsRecoveryCode("abcdeFGHIJ-0123456789"))
	require.False(t, totpx.IsRecoveryCode("abcdeFGHIJ0123456789"))
	require.False(t, totpx.IsRecoveryCode("abcde-0123456789"))
	require.False(t, totpx.IsRecoveryCode("abcdeFGHI!-0123456789"))
}

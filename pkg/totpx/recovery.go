package totpx

import (
	"fmt"
	"regexp"

	"github.com/aussiebroadwan/inkwell/pkg/cryptox"
)

const (
	RecoveryCodeCount         = 8
	RecoveryCodeSegmentLength = 10
	RecoveryCodeSeparator     = "-"
)

var recoveryCodePattern = regexp.MustCompile(`^[A-Za-z0-9]{10}-[A-Za-z0-9]{10}$`)

// GenerateRecoveryCodes returns RecoveryCodeCount pairwise distinct codes of
// the form <10 alnum>-<10 alnum>. A code that collides with one already in
// the set is drawn again.
func GenerateRecoveryCodes() ([]string, error) {
	codes := make([]string, 0, RecoveryCodeCount)
	seen := make(map[string]struct{}, RecoveryCodeCount)

	for len(codes) < RecoveryCodeCount {
		code, err := newRecoveryCode()
		if err != nil {
			return nil, err
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}
	return codes, nil
}

// IsRecoveryCode reports whether s has the recovery code shape.
func IsRecoveryCode(s string) bool {
	return recoveryCodePattern.MatchString(s)
}

func newRecoveryCode() (string, error) {
	left, err := cryptox.RandomString(RecoveryCodeSegmentLength, cryptox.Alphanumeric)
	if err != nil {
		return "", fmt.Errorf("failed to generate recovery code: %w", err)
	}
	right, err := cryptox.RandomString(RecoveryCodeSegmentLength, cryptox.Alphanumeric)
	if err != nil {
		return "", fmt.Errorf("failed to generate recovery code: %w", err)
	}
	return left + RecoveryCodeSeparator + right, nil
}

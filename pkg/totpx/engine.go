// Package totpx wraps github.com/pquerna/otp with the fixed parameters the
// service enrolls authenticators with, and generates recovery code sets.
package totpx

import (
	"encoding/base32"
	"fmt"
	"strings"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const (
	// SecretSize is the raw secret length in bytes (160 bits, the RFC 4226
	// recommendation for HMAC-SHA1).
	SecretSize = 20
	Period     = 30
	Skew       = 1
)

// secretEncoding matches what otp.Key.Secret() emits.
var secretEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// Engine generates and checks RFC 6238 codes: 30-second step, 6 digits,
// HMAC-SHA1, one step of drift tolerated either side.
type Engine struct {
	opts totp.ValidateOpts
}

func NewEngine() *Engine {
	return &Engine{
		opts: totp.ValidateOpts{
			Period:    Period,
			Skew:      Skew,
			Digits:    otp.DigitsSix,
			Algorithm: otp.AlgorithmSHA1,
		},
	}
}

// GenerateSecret returns a fresh base32 encoded secret.
func (e *Engine) GenerateSecret() (string, error) {
	// Issuer and account are required by Generate but only feed the URL,
	// which is rebuilt by ProvisioningURI when needed.
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "inkwell",
		AccountName: "secret",
		Period:      e.opts.Period,
		SecretSize:  SecretSize,
		Digits:      e.opts.Digits,
		Algorithm:   e.opts.Algorithm,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate TOTP secret: %w", err)
	}
	return key.Secret(), nil
}

// Verify reports whether code is valid for secret at now, accepting the
// windows immediately before and after the current one. It never errors:
// malformed input simply fails verification.
func (e *Engine) Verify(secret, code string, now time.Time) bool {
	code = strings.ReplaceAll(strings.TrimSpace(code), " ", "")
	if len(code) != e.opts.Digits.Length() {
		return false
	}

	ok, err := totp.ValidateCustom(code, secret, now, e.opts)
	if err != nil {
		return false
	}
	return ok
}

// Code computes the code for secret at t. Authenticator apps do this on the
// client side; the service uses it in tests and tooling.
func (e *Engine) Code(secret string, t time.Time) (string, error) {
	return totp.GenerateCodeCustom(secret, t, e.opts)
}

// ProvisioningURI builds the otpauth://totp/ URI for secret so it can be
// handed to a QR renderer. The embedded secret is exactly the one passed in.
func (e *Engine) ProvisioningURI(issuer, accountLabel, secret string) (string, error) {
	raw, err := secretEncoding.DecodeString(strings.ToUpper(secret))
	if err != nil {
		return "", fmt.Errorf("failed to decode TOTP secret: %w", err)
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      issuer,
		AccountName: accountLabel,
		Period:      e.opts.Period,
		Secret:      raw,
		Digits:      e.opts.Digits,
		Algorithm:   e.opts.Algorithm,
	})
	if err != nil {
		return "", fmt.Errorf("failed to build provisioning URI: %w", err)
	}
	return key.URL(), nil
}

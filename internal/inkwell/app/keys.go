package app

import (
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/inkwell/pkg/cryptox"
	"github.com/aussiebroadwan/inkwell/pkg/jwtx"
)

// signingKID identifies the single access token key.
const signingKID = "inkwell-1"

// InitVault builds the vault that seals MFA secrets and recovery codes.
// The key lives outside the database: INKWELL_VAULT_KEY when set, otherwise
// the key file, which is created on first start.
func InitVault(cfg Config, logger *slog.Logger) (*cryptox.Vault, error) {
	var key []byte
	if cfg.VaultKey != "" {
		key = cryptox.DeriveVaultKey([]byte(cfg.VaultKey))
		logger.Info("vault key loaded from environment")
	} else {
		var err error
		key, err = cryptox.LoadOrCreateVaultKey(cfg.VaultKeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load vault key: %w", err)
		}
		logger.Info("vault key loaded", "path", cfg.VaultKeyFile)
	}
	return cryptox.NewVault(key)
}

// InitSigner loads or creates the Ed25519 access token key.
//
// With INKWELL_SIGNING_KEY_FILE set the key is persisted and tokens survive
// restarts. Otherwise a fresh key is generated on every start and all
// existing tokens become invalid.
func InitSigner(cfg Config, logger *slog.Logger) (*jwtx.EdDSASigner, jwtx.Verifier, error) {
	var (
		pemKey []byte
		err    error
	)
	if cfg.SigningKeyFile != "" {
		pemKey, err = cryptox.LoadOrCreateEd25519Key(cfg.SigningKeyFile)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load signing key: %w", err)
		}
		logger.Info("persistent signing key loaded", "path", cfg.SigningKeyFile)
	} else {
		pemKey, err = cryptox.GenerateEd25519Key()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to generate signing key: %w", err)
		}
		logger.Warn("generated ephemeral signing key; all existing tokens are now invalid")
	}

	signer, err := jwtx.NewSignerEdDSA(signingKID, pemKey)
	if err != nil {
		return nil, nil, err
	}
	return signer, jwtx.NewVerifierEdDSA(signer.KID(), signer.PublicKey(), cfg.Issuer), nil
}

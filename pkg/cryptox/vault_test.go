package cryptox_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/inkwell/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func newTestVault(t *testing.T, material string) *cryptox.Vault {
	t.Helper()
	v, err := cryptox.NewVault(cryptox.DeriveVaultKey([]byte(material)))
	require.NoError(t, err)
	return v
}

func TestVaultSealOpen(t *testing.T) {
	v := newTestVault(t, "test-master-key-for-encryption-12345")
	secret := []byte("JBSWY3DPEHPK3PXPJBSWY3DPEHPK3PXP")

	sealed, err := v.Seal(secret)
	require.NoError(t, err)
	require.NotEqual(t, secret, sealed, "sealed data should differ from plaintext")

	opened, err := v.Open(sealed)
	require.NoError(t, err)
	require.Equal(t, secret, opened)
}

func TestVaultSealUsesFreshNonce(t *testing.T) {
	v := newTestVault(t, "test-master-key-multiple-times-xyz")
	data := []byte("same plaintext")

	a, err := v.Seal(data)
	require.NoError(t, err)
	b, err := v.Seal(data)
	require.NoError(t, err)
	require.NotEqual(t, a, b, "two seals of the same plaintext must differ")

	for _, sealed := range [][]byte{a, b} {
		opened, err := v.Open(sealed)
		require.NoError(t, err)
		require.Equal(t, data, opened)
	}
}

func TestVaultOpenRejectsTampering(t *testing.T) {
	v := newTestVault(t, "test-master-key-tampered")

	sealed, err := v.Seal([]byte("original-data"))
	require.NoError(t, err)

	tampered := append([]byte(nil), sealed...)
	tampered[len(tampered)-1] ^= 0xFF

	_, err = v.Open(tampered)
	require.ErrorIs(t, err, cryptox.ErrSealedDataCorrupt)
}

func TestVaultOpenRejectsWrongKey(t *testing.T) {
	sealed, err := newTestVault(t, "key-one").Seal([]byte("secret"))
	require.NoError(t, err)

	_, err = newTestVault(t, "key-two").Open(sealed)
	require.ErrorIs(t, err, cryptox.ErrSealedDataCorrupt)
}

func TestVaultOpenTooShort(t *testing.T) {
	v := newTestVault(t, "test-master-key-short")

	_, err := v.Open([]byte("short"))
	require.ErrorIs(t, err, cryptox.ErrSealedDataCorrupt)
	require.Contains(t, err.Error(), "too short")
}

func TestNewVaultKeySize(t *testing.T) {
	_, err := cryptox.NewVault([]byte("too-short"))
	require.ErrorIs(t, err, cryptox.ErrVaultKeySize)
}

func TestLoadOrCreateVaultKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys", "vault.key")

	first, err := cryptox.LoadOrCreateVaultKey(path)
	require.NoError(t, err)
	require.Len(t, first, cryptox.VaultKeySize)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())

	second, err := cryptox.LoadOrCreateVaultKey(path)
	require.NoError(t, err)
	require.Equal(t, first, second)

	v, err := cryptox.NewVault(first)
	require.NoError(t, err)
	sealed, err := v.Seal([]byte("secret"))
	require.NoError(t, err)

	again, err := cryptox.NewVault(second)
	require.NoError(t, err)
	plain, err := again.Open(sealed)
	require.NoError(t, err)
	require.Equal(t, "secret", string(plain))
}

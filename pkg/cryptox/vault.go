package cryptox

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// VaultKeySize is the AES-256 key length the vault expects.
const VaultKeySize = 32

var (
	// ErrSealedDataCorrupt is returned by Open when the ciphertext fails
	// authentication: it was modified, truncated, or sealed under another key.
	ErrSealedDataCorrupt = errors.New("cryptox: sealed data corrupt")

	ErrVaultKeySize = errors.New("cryptox: vault key must be 32 bytes")
)

// Vault seals small secrets for storage at rest using AES-256-GCM.
//
// Output format: [12-byte nonce][ciphertext][16-byte auth tag]. A fresh
// random nonce is drawn for every Seal call, so sealing the same plaintext
// twice never yields the same bytes.
type Vault struct {
	aead cipher.AEAD
}

// NewVault builds a vault around a 32-byte key. The key is held outside the
// data store; see DeriveVaultKey for turning arbitrary key material into one.
func NewVault(key []byte) (*Vault, error) {
	if len(key) != VaultKeySize {
		return nil, ErrVaultKeySize
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &Vault{aead: gcm}, nil
}

// DeriveVaultKey stretches operator supplied key material (a passphrase or
// the contents of a key file) into a 32-byte AES key with SHA-256.
func DeriveVaultKey(material []byte) []byte {
	sum := sha256.Sum256(material)
	return sum[:]
}

// Seal encrypts and authenticates plaintext.
func (v *Vault) Seal(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, v.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	// Seal appends ciphertext and tag to the nonce prefix.
	return v.aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Open reverses Seal. Any authentication failure is reported as
// ErrSealedDataCorrupt; callers must treat it as fatal for the record.
func (v *Vault) Open(sealed []byte) ([]byte, error) {
	nonceSize := v.aead.NonceSize()
	if len(sealed) < nonceSize+v.aead.Overhead() {
		return nil, fmt.Errorf("%w: ciphertext too short", ErrSealedDataCorrupt)
	}

	nonce, ciphertext := sealed[:nonceSize], sealed[nonceSize:]
	plaintext, err := v.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSealedDataCorrupt, err)
	}

	return plaintext, nil
}

// LoadOrCreateVaultKey reads key material from path and derives a vault key
// from it. A missing file is created (0600) with fresh random material.
// Losing the file makes every sealed record unreadable.
func LoadOrCreateVaultKey(path string) ([]byte, error) {
	path = filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err == nil {
		return DeriveVaultKey(bytes.TrimSpace(data)), nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	raw := make([]byte, VaultKeySize)
	if _, err := rand.Read(raw); err != nil {
		return nil, err
	}
	material := []byte(base64.RawURLEncoding.EncodeToString(raw))

	if err := os.WriteFile(path, material, 0600); err != nil {
		return nil, err
	}
	return DeriveVaultKey(material), nil
}

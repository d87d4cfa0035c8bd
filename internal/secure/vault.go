// Package secure seals key-value slot contents at rest.
//
// A Vault wraps any slot store. Values are encrypted with
// XChaCha20-Poly1305 under a key derived from a master key with
// HKDF-SHA256, and the slot key is bound as associated data so a
// sealed value cannot be moved to another key.
package secure

import (
	"context"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

// KeySize is the master key length in bytes.
const KeySize = 32

// hkdfInfo separates the slot encryption key from any other use of the
// master key.
var hkdfInfo = []byte("tasklist slot seal v1")

var (
	// ErrInvalidKeyLength is returned when a master key is not KeySize bytes.
	ErrInvalidKeyLength = errors.New("invalid key length")

	// ErrUnsealFailed is returned when a stored value fails authentication.
	ErrUnsealFailed = errors.New("sealed value failed authentication")
)

// Slots is the storage the vault wraps.
type Slots interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Vault seals values on Set and opens them on Get.
type Vault struct {
	inner Slots
	aead  cipher.AEAD
	rand  io.Reader
}

// NewVault returns a Vault over inner using the given master key.
func NewVault(inner Slots, master []byte) (*Vault, error) {
	if len(master) != KeySize {
		return nil, fmt.Errorf("new vault: %w: got %d bytes, want %d", ErrInvalidKeyLength, len(master), KeySize)
	}

	key, err := deriveKey(master)
	if err != nil {
		return nil, fmt.Errorf("new vault: %w", err)
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("new vault: %w", err)
	}

	return &Vault{inner: inner, aead: aead, rand: rand.Reader}, nil
}

// deriveKey derives the slot encryption key from the master key using HKDF-SHA256.
func deriveKey(master []byte) ([]byte, error) {
	h := hkdf.New(sha256.New, master, nil, hkdfInfo)
	out := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(h, out); err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	return out, nil
}

// Set seals value and writes it under key.
func (v *Vault) Set(ctx context.Context, key, value string) error {
	nonce := make([]byte, v.aead.NonceSize(), v.aead.NonceSize()+len(value)+v.aead.Overhead())
	if _, err := io.ReadFull(v.rand, nonce); err != nil {
		return fmt.Errorf("seal %q: nonce: %w", key, err)
	}

	sealed := v.aead.Seal(nonce, nonce, []byte(value), []byte(key))
	return v.inner.Set(ctx, key, base64.StdEncoding.EncodeToString(sealed))
}

// Get reads and opens the value under key.
// found is false if the key was never written.
func (v *Vault) Get(ctx context.Context, key string) (string, bool, error) {
	raw, found, err := v.inner.Get(ctx, key)
	if err != nil || !found {
		return "", found, err
	}

	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return "", true, fmt.Errorf("unseal %q: %w: %v", key, ErrUnsealFailed, err)
	}

	ns := v.aead.NonceSize()
	if len(data) < ns+v.aead.Overhead() {
		return "", true, fmt.Errorf("unseal %q: %w: value too short", key, ErrUnsealFailed)
	}

	plain, err := v.aead.Open(nil, data[:ns], data[ns:], []byte(key))
	if err != nil {
		return "", true, fmt.Errorf("unseal %q: %w", key, ErrUnsealFailed)
	}
	return string(plain), true, nil
}

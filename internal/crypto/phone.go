// Package crypto provides the phone credential helpers: a one-way hash used
// as the lookup key and reversible encryption for contact reveal in SMS.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCiphertext is returned when an encrypted phone blob is malformed
// or fails authentication.
var ErrInvalidCiphertext = errors.New("invalid phone ciphertext")

// PhoneCipher encrypts and hashes phone numbers with a fixed 32-byte key.
type PhoneCipher struct {
	aead cipher.AEAD
}

// NewPhoneCipher builds a cipher from a hex-encoded 32-byte key.
func NewPhoneCipher(hexKey string) (*PhoneCipher, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("decode phone encryption key: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("phone encryption key must be 32 bytes, got %d", len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return &PhoneCipher{aead: aead}, nil
}

// HashPhone returns the SHA-256 hex digest of a normalized phone number.
// The hash is the unique lookup key; the plaintext is never stored.
func HashPhone(phone string) string {
	sum := sha256.Sum256([]byte(phone))
	return hex.EncodeToString(sum[:])
}

// Encrypt seals a phone number as hex "nonce:tag:ciphertext".
func (c *PhoneCipher) Encrypt(phone string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	sealed := c.aead.Seal(nil, nonce, []byte(phone), nil)
	// Seal appends the tag after the ciphertext; split for the wire format.
	tagStart := len(sealed) - c.aead.Overhead()
	ct, tag := sealed[:tagStart], sealed[tagStart:]

	return hex.EncodeToString(nonce) + ":" + hex.EncodeToString(tag) + ":" + hex.EncodeToString(ct), nil
}

// Decrypt reverses Encrypt.
func (c *PhoneCipher) Decrypt(encrypted string) (string, error) {
	parts := strings.Split(encrypted, ":")
	if len(parts) != 3 {
		return "", ErrInvalidCiphertext
	}

	nonce, err := hex.DecodeString(parts[0])
	if err != nil || len(nonce) != c.aead.NonceSize() {
		return "", ErrInvalidCiphertext
	}
	tag, err := hex.DecodeString(parts[1])
	if err != nil {
		return "", ErrInvalidCiphertext
	}
	ct, err := hex.DecodeString(parts[2])
	if err != nil {
		return "", ErrInvalidCiphertext
	}

	plain, err := c.aead.Open(nil, nonce, append(ct, tag...), nil)
	if err != nil {
		return "", ErrInvalidCiphertext
	}
	return string(plain), nil
}

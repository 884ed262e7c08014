package crypto

import (
	"strings"
	"testing"
)

const testKey = "0101010101010101010101010101010101010101010101010101010101010101"

func TestNewPhoneCipher_RejectsBadKeys(t *testing.T) {
	if _, err := NewPhoneCipher("not-hex"); err == nil {
		t.Error("expected error for non-hex key")
	}
	if _, err := NewPhoneCipher("abcd"); err == nil {
		t.Error("expected error for short key")
	}
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	c, err := NewPhoneCipher(testKey)
	if err != nil {
		t.Fatalf("cipher: %v", err)
	}

	encrypted, err := c.Encrypt("+355691234567")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if parts := strings.Split(encrypted, ":"); len(parts) != 3 {
		t.Fatalf("expected nonce:tag:ciphertext, got %q", encrypted)
	}

	plain, err := c.Decrypt(encrypted)
	if err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	if plain != "+355691234567" {
		t.Errorf("got %q", plain)
	}
}

func TestEncrypt_NoncesDiffer(t *testing.T) {
	c, _ := NewPhoneCipher(testKey)

	a, _ := c.Encrypt("+355691234567")
	b, _ := c.Encrypt("+355691234567")
	if a == b {
		t.Error("two encryptions of the same phone should differ")
	}
}

func TestDecrypt_RejectsTampering(t *testing.T) {
	c, _ := NewPhoneCipher(testKey)

	encrypted, _ := c.Encrypt("+355691234567")
	parts := strings.Split(encrypted, ":")

	// Flip a ciphertext character.
	ct := []byte(parts[2])
	if ct[0] == 'a' {
		ct[0] = 'b'
	} else {
		ct[0] = 'a'
	}
	tampered := parts[0] + ":" + parts[1] + ":" + string(ct)

	if _, err := c.Decrypt(tampered); err != ErrInvalidCiphertext {
		t.Errorf("expected ErrInvalidCiphertext, got %v", err)
	}
}

func TestDecrypt_RejectsMalformedInput(t *testing.T) {
	c, _ := NewPhoneCipher(testKey)

	for _, in := range []string{"", "abc", "a:b", "x:y:z:w", "zz:zz:zz"} {
		if _, err := c.Decrypt(in); err != ErrInvalidCiphertext {
			t.Errorf("%q: expected ErrInvalidCiphertext, got %v", in, err)
		}
	}
}

func TestHashPhone_DeterministicAndDistinct(t *testing.T) {
	a := HashPhone("+355691234567")
	b := HashPhone("+355691234567")
	c := HashPhone("+355691234568")

	if a != b {
		t.Error("hash should be deterministic")
	}
	if a == c {
		t.Error("different phones should hash differently")
	}
	if len(a) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(a))
	}
}

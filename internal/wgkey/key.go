// Package wgkey implements WireGuard key material: Curve25519 private and
// public keys plus symmetric preshared keys, with the canonical base64
// encoding used in configuration files.
package wgkey

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/curve25519"
)

// KeySize is the length in bytes of all WireGuard keys.
const KeySize = 32

// PrivateKey is a Curve25519 private key.
type PrivateKey [KeySize]byte

// PublicKey is a Curve25519 public key.
type PublicKey [KeySize]byte

// PresharedKey is an optional symmetric key mixed into the handshake.
type PresharedKey [KeySize]byte

// GeneratePrivateKey returns a new random private key.
func GeneratePrivateKey() (PrivateKey, error) {
	var key PrivateKey
	if _, err := rand.Read(key[:]); err != nil {
		return PrivateKey{}, fmt.Errorf("generate private key: %w", err)
	}

	// Clamp per Curve25519 requirements.
	key[0] &= 248
	key[31] &= 127
	key[31] |= 64

	return key, nil
}

// GeneratePresharedKey returns a new random preshared key.
func GeneratePresharedKey() (PresharedKey, error) {
	var key PresharedKey
	if _, err := rand.Read(key[:]); err != nil {
		return PresharedKey{}, fmt.Errorf("generate preshared key: %w", err)
	}
	return key, nil
}

// Public derives the public key matching k.
func (k PrivateKey) Public() PublicKey {
	pub, err := curve25519.X25519(k[:], curve25519.Basepoint)
	if err != nil {
		// X25519 only fails when the result is the all-zero point, which
		// basepoint multiplication of a clamped scalar never produces.
		return PublicKey{}
	}

	var out PublicKey
	copy(out[:], pub)
	return out
}

func decodeKey(s string) ([KeySize]byte, error) {
	var key [KeySize]byte
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return key, fmt.Errorf("decode key: %w", err)
	}
	if len(raw) != KeySize {
		return key, fmt.Errorf("decode key: got %d bytes, want %d", len(raw), KeySize)
	}
	copy(key[:], raw)
	return key, nil
}

// ParsePrivateKey decodes a base64-encoded private key.
func ParsePrivateKey(s string) (PrivateKey, error) {
	key, err := decodeKey(s)
	if err != nil {
		return PrivateKey{}, fmt.Errorf("invalid private key: %w", err)
	}
	return PrivateKey(key), nil
}

// ParsePublicKey decodes a base64-encoded public key.
func ParsePublicKey(s string) (PublicKey, error) {
	key, err := decodeKey(s)
	if err != nil {
		return PublicKey{}, fmt.Errorf("invalid public key: %w", err)
	}
	return PublicKey(key), nil
}

// ParsePresharedKey decodes a base64-encoded preshared key.
func ParsePresharedKey(s string) (PresharedKey, error) {
	key, err := decodeKey(s)
	if err != nil {
		return PresharedKey{}, fmt.Errorf("invalid preshared key: %w", err)
	}
	return PresharedKey(key), nil
}

// String returns the canonical base64 encoding.
func (k PrivateKey) String() string { return base64.StdEncoding.EncodeToString(k[:]) }

// String returns the canonical base64 encoding.
func (k PublicKey) String() string { return base64.StdEncoding.EncodeToString(k[:]) }

// String returns the canonical base64 encoding.
func (k PresharedKey) String() string { return base64.StdEncoding.EncodeToString(k[:]) }

// IsZero reports whether k is the zero value.
func (k PrivateKey) IsZero() bool { return k == PrivateKey{} }

// IsZero reports whether k is the zero value.
func (k PublicKey) IsZero() bool { return k == PublicKey{} }

// MarshalText implements encoding.TextMarshaler.
func (k PrivateKey) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *PrivateKey) UnmarshalText(text []byte) error {
	parsed, err := ParsePrivateKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (k PublicKey) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *PublicKey) UnmarshalText(text []byte) error {
	parsed, err := ParsePublicKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (k PresharedKey) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *PresharedKey) UnmarshalText(text []byte) error {
	parsed, err := ParsePresharedKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

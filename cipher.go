// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// CipherID identifies the AEAD suite that sealed an envelope. Exactly
// one suite is bound to a vault at build time and recorded in every
// envelope it seals (1 byte). These values are protocol constants —
// changing them breaks envelope compatibility. Adding a suite means
// adding one constant and one newAEAD case; existing envelopes keep
// their meaning.
type CipherID uint8

const (
	// CipherAESGCM is AES-256 in Galois/Counter Mode. The default:
	// hardware-accelerated on essentially all server CPUs.
	CipherAESGCM CipherID = 1

	// CipherChaCha20Poly1305 is ChaCha20-Poly1305. Constant-time in
	// software; preferable on targets without AES instructions.
	CipherChaCha20Poly1305 CipherID = 2
)

// String returns the human-readable name of a cipher suite.
func (id CipherID) String() string {
	switch id {
	case CipherAESGCM:
		return "aes256-gcm"
	case CipherChaCha20Poly1305:
		return "chacha20-poly1305"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(id))
	}
}

// ParseCipherID parses a cipher suite from its string representation.
func ParseCipherID(name string) (CipherID, error) {
	switch name {
	case "aes256-gcm":
		return CipherAESGCM, nil
	case "chacha20-poly1305":
		return CipherChaCha20Poly1305, nil
	default:
		return 0, fmt.Errorf("unknown cipher: %q", name)
	}
}

// newAEAD constructs the AEAD primitive for a suite. The key must be
// exactly KeySize (32) bytes — both suites take 256-bit keys and use
// 96-bit nonces with 128-bit tags.
func newAEAD(id CipherID, key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("cipher key must be %d bytes, got %d", KeySize, len(key))
	}

	switch id {
	case CipherAESGCM:
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, fmt.Errorf("creating AES-256 cipher: %w", err)
		}
		aead, err := cipher.NewGCM(block)
		if err != nil {
			return nil, fmt.Errorf("creating GCM mode: %w", err)
		}
		return aead, nil

	case CipherChaCha20Poly1305:
		aead, err := chacha20poly1305.New(key)
		if err != nil {
			return nil, fmt.Errorf("creating ChaCha20-Poly1305 cipher: %w", err)
		}
		return aead, nil

	default:
		return nil, fmt.Errorf("unsupported cipher: %d", id)
	}
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package vault

import (
	"testing"
)

func TestCipherID_ParseAndString(t *testing.T) {
	for _, id := range []CipherID{CipherAESGCM, CipherChaCha20Poly1305} {
		parsed, err := ParseCipherID(id.String())
		if err != nil {
			t.Errorf("ParseCipherID(%q): %v", id.String(), err)
		}
		if parsed != id {
			t.Errorf("ParseCipherID(%q) = %v, want %v", id.String(), parsed, id)
		}
	}

	if _, err := ParseCipherID("des"); err == nil {
		t.Error("expected error for unknown cipher name")
	}
}

func TestNewAEAD_NonceAndTagSizes(t *testing.T) {
	key := make([]byte, KeySize)

	for _, id := range []CipherID{CipherAESGCM, CipherChaCha20Poly1305} {
		t.Run(id.String(), func(t *testing.T) {
			aead, err := newAEAD(id, key)
			if err != nil {
				t.Fatalf("newAEAD: %v", err)
			}
			if aead.NonceSize() != NonceSize {
				t.Errorf("nonce size %d, want %d", aead.NonceSize(), NonceSize)
			}
			if aead.Overhead() != TagSize {
				t.Errorf("tag overhead %d, want %d", aead.Overhead(), TagSize)
			}
		})
	}
}

func TestNewAEAD_RejectsBadKeySize(t *testing.T) {
	for _, size := range []int{0, 16, 31, 33} {
		if _, err := newAEAD(CipherAESGCM, make([]byte, size)); err == nil {
			t.Errorf("expected error for %d-byte key", size)
		}
	}
}

func TestDomain_ParseAndString(t *testing.T) {
	for _, domain := range []Domain{DomainLocal, DomainFleet} {
		parsed, err := ParseDomain(domain.String())
		if err != nil {
			t.Errorf("ParseDomain(%q): %v", domain.String(), err)
		}
		if parsed != domain {
			t.Errorf("ParseDomain(%q) = %v, want %v", domain.String(), parsed, domain)
		}
	}

	if _, err := ParseDomain("galaxy"); err == nil {
		t.Error("expected error for unknown domain name")
	}
}

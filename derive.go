// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package vault

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/bureau-foundation/vault/lib/secret"
)

// KeySize is the size in bytes of every symmetric key in the vault:
// both AEAD suites take 256-bit keys, and HKDF expansion produces
// exactly this much per domain.
const KeySize = 32

// HKDF info strings. These are the "info" parameter to HKDF-SHA256
// expansion, providing domain separation between the Local and Fleet
// keys. The node identifier is appended to the local info so the same
// master secret derives a different Local key on every node. Changing
// either value invalidates all ciphertext sealed under that domain.
var (
	hkdfInfoLocal = []byte("v1_local:")
	hkdfInfoFleet = []byte("v1_fleet:")
)

// deriveDomainKeys derives the Local and Fleet keys from the master
// secret. A single HKDF-SHA256 extraction produces the pseudorandom
// key; two expansions with disjoint info strings produce the domain
// keys, so neither key is computable from the other.
//
// The caller owns masterSecret, salt, and nodeID and should wipe them
// (secret.Zero) once the vault is built. The returned buffers must be
// closed by the caller — the vault owns them for its lifetime.
func deriveDomainKeys(masterSecret, salt, nodeID []byte) (local, fleet *secret.Buffer, err error) {
	pseudorandomKey := hkdf.Extract(sha256.New, masterSecret, salt)
	defer secret.Zero(pseudorandomKey)

	info := make([]byte, 0, len(hkdfInfoLocal)+len(nodeID))
	info = append(info, hkdfInfoLocal...)
	info = append(info, nodeID...)

	local, err = expandKey(pseudorandomKey, info)
	if err != nil {
		return nil, nil, fmt.Errorf("deriving local key: %w", err)
	}

	fleet, err = expandKey(pseudorandomKey, hkdfInfoFleet)
	if err != nil {
		local.Close()
		return nil, nil, fmt.Errorf("deriving fleet key: %w", err)
	}

	return local, fleet, nil
}

// expandKey runs the HKDF expand step for one domain and moves the
// derived key into guarded memory.
func expandKey(pseudorandomKey, info []byte) (*secret.Buffer, error) {
	reader := hkdf.Expand(sha256.New, pseudorandomKey, info)
	derived := make([]byte, KeySize)
	if _, err := io.ReadFull(reader, derived); err != nil {
		secret.Zero(derived)
		return nil, fmt.Errorf("HKDF expansion failed: %w", err)
	}
	// NewFromBytes copies into mmap and zeros the heap slice.
	return secret.NewFromBytes(derived)
}

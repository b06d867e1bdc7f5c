// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package vault

import (
	"fmt"

	"github.com/zeebo/blake3"
)

// fingerprintDomain is the data prefix for the keyed BLAKE3 hash that
// produces a vault's fingerprint. Changing it changes every
// fingerprint (but no ciphertext).
var fingerprintDomain = []byte("vault.fingerprint.v1")

// Builder configures and constructs a Vault. The zero value is not
// usable; start from NewBuilder.
//
// The builder borrows the master secret, salt, and node identifier —
// it does not copy them. The caller should wipe them (secret.Zero)
// once Build returns, since derivation is eager and the vault keeps
// only the derived keys.
type Builder struct {
	cipher       CipherID
	compression  Compression
	masterSecret []byte
	salt         []byte
	nodeID       []byte
}

// NewBuilder returns a builder with the default cipher (AES-256-GCM)
// and compression disabled.
func NewBuilder() *Builder {
	return &Builder{
		cipher:      CipherAESGCM,
		compression: CompressionNone,
	}
}

// Cipher selects the AEAD suite. Exactly one suite is bound per vault;
// the suite is recorded in every envelope, and unsealing an envelope
// sealed under a different suite fails with ErrCipherMismatch.
func (builder *Builder) Cipher(id CipherID) *Builder {
	builder.cipher = id
	return builder
}

// Compression selects the codec applied to plaintext before
// encryption. Payloads that do not shrink under the codec are stored
// uncompressed regardless (the envelope records which happened).
//
// Compression before encryption leaks payload compressibility via
// ciphertext length; see the package documentation for the threat
// model.
func (builder *Builder) Compression(codec Compression) *Builder {
	builder.compression = codec
	return builder
}

// Keys supplies the derivation inputs: the master secret (input keying
// material), a salt uniquifying keys across environments, and the node
// identifier that scopes the Local domain to this machine.
func (builder *Builder) Keys(masterSecret, salt, nodeID []byte) *Builder {
	builder.masterSecret = masterSecret
	builder.salt = salt
	builder.nodeID = nodeID
	return builder
}

// Build validates the configuration, eagerly derives both domain keys,
// and constructs the AEAD state. Returns ErrInvalidKey if any
// derivation input is empty or the cipher selection is unknown.
//
// The caller must Close the returned vault to release key material.
func (builder *Builder) Build() (*Vault, error) {
	if len(builder.masterSecret) == 0 {
		return nil, fmt.Errorf("%w: master secret is empty", ErrInvalidKey)
	}
	if len(builder.salt) == 0 {
		return nil, fmt.Errorf("%w: salt is empty", ErrInvalidKey)
	}
	if len(builder.nodeID) == 0 {
		return nil, fmt.Errorf("%w: node identifier is empty", ErrInvalidKey)
	}
	switch builder.cipher {
	case CipherAESGCM, CipherChaCha20Poly1305:
	default:
		return nil, fmt.Errorf("%w: unknown cipher suite %d", ErrInvalidKey, builder.cipher)
	}
	switch builder.compression {
	case CompressionNone, CompressionLZ4, CompressionZstd:
	default:
		return nil, fmt.Errorf("%w: unknown compression codec %d", ErrInvalidKey, builder.compression)
	}

	localKey, fleetKey, err := deriveDomainKeys(builder.masterSecret, builder.salt, builder.nodeID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}

	localAEAD, err := newAEAD(builder.cipher, localKey.Bytes())
	if err != nil {
		localKey.Close()
		fleetKey.Close()
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	fleetAEAD, err := newAEAD(builder.cipher, fleetKey.Bytes())
	if err != nil {
		localKey.Close()
		fleetKey.Close()
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}

	fingerprint, err := computeFingerprint(builder.cipher, localKey.Bytes(), fleetKey.Bytes())
	if err != nil {
		localKey.Close()
		fleetKey.Close()
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}

	return &Vault{
		cipher:      builder.cipher,
		compression: builder.compression,
		localAEAD:   localAEAD,
		fleetAEAD:   fleetAEAD,
		localKey:    localKey,
		fleetKey:    fleetKey,
		fingerprint: fingerprint,
	}, nil
}

// computeFingerprint produces a stable, non-reversible identifier for
// a vault's derived configuration: a BLAKE3 hash keyed with the fleet
// key over a fixed domain prefix, the cipher discriminator, and the
// local key. Vaults built from identical (master secret, salt, node
// id, cipher) agree; changing any input changes the fingerprint.
// Safe to log and compare across nodes — it is a MAC output, not key
// material.
func computeFingerprint(cipher CipherID, localKey, fleetKey []byte) (string, error) {
	hasher, err := blake3.NewKeyed(fleetKey)
	if err != nil {
		return "", fmt.Errorf("BLAKE3 keyed hash initialization failed: %w", err)
	}
	hasher.Write(fingerprintDomain)
	hasher.Write([]byte{uint8(cipher)})
	hasher.Write(localKey)
	return fmt.Sprintf("%x", hasher.Sum(nil)), nil
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package vault provides a domain-aware authenticated-encryption vault:
// it seals structured payloads and raw byte buffers with an AEAD cipher,
// binds every ciphertext to its semantic type through additional
// authenticated data, and derives independent per-domain keys from a
// single master secret.
//
// # Domains
//
// The vault manages two key domains derived from the same master secret:
//
//   - [DomainLocal]: the derivation mixes in the node identifier, so the
//     same master secret yields a different Local key on every node.
//     Local envelopes cannot be unsealed on another machine.
//   - [DomainFleet]: the derivation omits the node identifier, so every
//     node built from the same master secret and salt shares the Fleet
//     key. Fleet envelopes travel across the cluster.
//
// Both keys are expanded from one HKDF-SHA256 extraction with disjoint
// info strings, so compromise of one domain key reveals nothing about
// the other.
//
// # Envelope format
//
// Sealed data is carried in a versioned [Envelope]:
//
//	[version:1][cipher:1][domain:1][codec:1][nonce:12][ciphertext+tag]
//
// Every header field is bound into the AEAD's additional authenticated
// data together with the caller's context tag, so relabeling a
// ciphertext — a different type tag, the other domain, a flipped
// compression codec — fails authentication instead of decrypting into
// the wrong shape. Envelopes serialize to this binary layout via
// [Envelope.MarshalBinary] and to JSON (binary fields base64-encoded)
// via [Envelope.MarshalJSON].
//
// # Nonce policy
//
// Every seal draws a fresh random 96-bit nonce from crypto/rand. Random
// nonces are the standard approach for AES-GCM and ChaCha20-Poly1305,
// but they are probabilistic: under extremely high seal volume per key,
// rotate the master secret rather than relying on collision odds.
//
// # Compression threat model
//
// Compression (LZ4 or zstd) is applied before encryption when enabled.
// Ciphertext length then reveals payload compressibility. This is
// acceptable for internal structured records where lengths are not
// attacker-observable; disable compression when sealing
// attacker-influenced data on public surfaces.
//
// # Lifecycle and concurrency
//
// A vault is constructed once through [Builder] and is safe for
// unbounded concurrent use: keys and cipher state are immutable after
// Build, and every seal/unseal call is self-contained. Derived key
// material lives in guarded memory (lib/secret) for the vault's
// lifetime. Close zeroes it and is mandatory — Go finalizers are not
// prompt enough for key hygiene, so release is an explicit contract.
// Operations on a closed vault return [ErrClosed]. Note that the AEAD
// key schedules inside cipher state cannot be wiped from Go; the
// guarded buffers are the best-effort boundary.
//
// # Usage
//
//	v, err := vault.NewBuilder().
//		Keys(masterSecret, salt, nodeID).
//		Cipher(vault.CipherAESGCM).
//		Compression(vault.CompressionLZ4).
//		Build()
//	if err != nil {
//		return err
//	}
//	defer v.Close()
//
//	envelope, err := v.SealBytes(vault.DomainLocal, []byte("v1.token"), data)
//
// Structured values implement [Tagged] and go through the generic
// [Seal] and [Unseal] functions, which serialize to deterministic CBOR
// before encryption.
package vault

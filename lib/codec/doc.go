// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the vault's standard CBOR encoding configuration.
//
// Sealed payloads cross two serialization boundaries with a clear split:
//
//   - CBOR for plaintext payload values: the structured value handed to
//     Seal is encoded to CBOR before compression and encryption, and
//     decoded from CBOR after decryption.
//   - JSON for the envelope's text form: envelopes are the external
//     surface handed to storage and transport collaborators, and their
//     text form is JSON with base64 binary fields (see the vault
//     package's Envelope type).
//
// This package provides the shared CBOR encoding and decoding modes so
// that every payload encodes identically without duplicating
// configuration. The encoder uses Core Deterministic Encoding (RFC 8949
// §4.2): sorted map keys, smallest integer encoding, no
// indefinite-length items. Same logical data always produces identical
// bytes — which matters here because payload bytes feed directly into
// the AEAD, and a nondeterministic encoder would make otherwise-equal
// values produce differently sized ciphertext.
//
// Unknown fields are ignored on decode for forward compatibility.
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
package codec

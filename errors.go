// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package vault

import "errors"

// Sentinel errors for the vault's failure kinds. Callers classify
// failures with errors.Is; wrapped context never includes key material
// or plaintext.
var (
	// ErrInvalidKey reports empty or malformed construction inputs.
	// Fatal to vault construction and not retryable.
	ErrInvalidKey = errors.New("vault: invalid key material")

	// ErrCipherMismatch reports an envelope whose recorded cipher
	// differs from the vault's configured cipher. The unseal is
	// rejected before any decryption is attempted.
	ErrCipherMismatch = errors.New("vault: envelope cipher does not match vault cipher")

	// ErrAuthentication reports an AEAD tag check failure: tampered
	// ciphertext, wrong domain, wrong context tag, or wrong key. The
	// error deliberately carries no cause — distinguishing why
	// authentication failed would hand an attacker an oracle.
	ErrAuthentication = errors.New("vault: authentication failed")

	// ErrDecompression reports a corrupt compressed block found after
	// successful authentication. Treated as data corruption.
	ErrDecompression = errors.New("vault: decompression failed")

	// ErrSerialization reports malformed envelope framing, a payload
	// that does not decode into the requested shape, or an out-of-range
	// domain selector.
	ErrSerialization = errors.New("vault: malformed envelope or payload")

	// ErrClosed reports an operation on a vault whose key material has
	// been released with Close.
	ErrClosed = errors.New("vault: vault is closed")
)

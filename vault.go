// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package vault

import (
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/bureau-foundation/vault/lib/codec"
	"github.com/bureau-foundation/vault/lib/secret"
)

// Tagged is the contract for types that can be sealed with a static
// type binding. VaultTag must return a stable constant string — it is
// authentication input, not metadata: the same logical type must keep
// the same tag across compatible versions, and changing a tag
// deliberately invalidates all previously sealed ciphertext of that
// type. Tag uniqueness across types is enforced by convention and
// tests, not by the compiler.
//
// Implement VaultTag on the value receiver: Unseal instantiates a zero
// value of the type to read the tag before decoding.
type Tagged interface {
	VaultTag() string
}

// Vault seals and unseals payloads under two derived key domains. It
// is safe for unbounded concurrent use after Build: cipher state and
// keys are immutable, and every operation draws its own nonce. The
// only mutable state is the Close latch.
//
// Close is mandatory and idempotent; it zeroes the derived key
// buffers. Operations after Close return ErrClosed.
type Vault struct {
	cipher      CipherID
	compression Compression
	localAEAD   cipher.AEAD
	fleetAEAD   cipher.AEAD
	localKey    *secret.Buffer
	fleetKey    *secret.Buffer
	fingerprint string
	closed      atomic.Bool
}

// Cipher returns the AEAD suite bound to this vault.
func (v *Vault) Cipher() CipherID {
	return v.cipher
}

// Fingerprint returns a stable hex identifier for the vault's derived
// configuration. Two vaults agree exactly when they were built from
// the same master secret, salt, node identifier, and cipher — useful
// for verifying derivation determinism across nodes without revealing
// key material.
func (v *Vault) Fingerprint() string {
	return v.fingerprint
}

// Close zeroes and releases the derived key material. Idempotent.
// After Close, all seal and unseal operations return ErrClosed. The
// AEAD key schedules held by cipher state cannot be wiped from Go;
// the guarded key buffers are the best-effort hygiene boundary.
func (v *Vault) Close() error {
	if v.closed.Swap(true) {
		return nil
	}
	firstError := v.localKey.Close()
	if err := v.fleetKey.Close(); err != nil && firstError == nil {
		firstError = err
	}
	return firstError
}

// aead selects the AEAD for a domain.
func (v *Vault) aead(domain Domain) (cipher.AEAD, error) {
	switch domain {
	case DomainLocal:
		return v.localAEAD, nil
	case DomainFleet:
		return v.fleetAEAD, nil
	default:
		return nil, fmt.Errorf("%w: unknown domain %d", ErrSerialization, domain)
	}
}

// SealBytes encrypts raw bytes under the given domain's key, bound to
// caller-supplied context bytes. The context plays the role of a type
// tag for payloads with no static type binding: unsealing requires the
// identical context.
//
// The plaintext is optionally compressed (per the vault's configured
// codec), then encrypted with a fresh random nonce. If the payload
// does not shrink under the codec, it is stored uncompressed and the
// envelope records that.
func (v *Vault) SealBytes(domain Domain, context, plaintext []byte) (*Envelope, error) {
	if v.closed.Load() {
		return nil, ErrClosed
	}
	aead, err := v.aead(domain)
	if err != nil {
		return nil, err
	}

	payloadCodec := v.compression
	payload := plaintext
	if payloadCodec != CompressionNone {
		compressed, err := compressPayload(plaintext, payloadCodec)
		if err != nil {
			// Incompressible data or a failed codec: store
			// uncompressed rather than failing the seal.
			payloadCodec = CompressionNone
		} else {
			payload = compressed
		}
	}

	var nonce [NonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("generating random nonce: %w", err)
	}

	aad := buildAAD(EnvelopeVersion, v.cipher, domain, payloadCodec, context)
	ciphertext := aead.Seal(nil, nonce[:], payload, aad)

	return &Envelope{
		Version:     EnvelopeVersion,
		Cipher:      v.cipher,
		Domain:      domain,
		Compression: payloadCodec,
		Nonce:       nonce,
		Ciphertext:  ciphertext,
	}, nil
}

// UnsealBytes authenticates and decrypts an envelope sealed with
// SealBytes. The domain selects the decryption key; the context must
// match the bytes supplied at seal time. The AAD is recomputed from
// the envelope's recorded header fields plus the context, so any
// tampering — flipped domain byte, altered codec, modified nonce or
// ciphertext — and any cross-domain or cross-context unseal surfaces
// uniformly as ErrAuthentication.
//
// Steps run strictly in order: envelope checks, authentication,
// decompression. A later step never runs after an earlier one fails.
func (v *Vault) UnsealBytes(domain Domain, context []byte, envelope *Envelope) ([]byte, error) {
	if v.closed.Load() {
		return nil, ErrClosed
	}
	if envelope.Version != EnvelopeVersion {
		return nil, fmt.Errorf("%w: unsupported envelope version %d", ErrSerialization, envelope.Version)
	}
	if envelope.Cipher != v.cipher {
		return nil, fmt.Errorf("%w: envelope sealed with %s, vault configured for %s",
			ErrCipherMismatch, envelope.Cipher, v.cipher)
	}
	if len(envelope.Ciphertext) < TagSize {
		return nil, fmt.Errorf("%w: ciphertext is %d bytes, minimum is the %d-byte tag",
			ErrSerialization, len(envelope.Ciphertext), TagSize)
	}
	aead, err := v.aead(domain)
	if err != nil {
		return nil, err
	}

	aad := buildAAD(envelope.Version, envelope.Cipher, envelope.Domain, envelope.Compression, context)

	payload, err := aead.Open(nil, envelope.Nonce[:], envelope.Ciphertext, aad)
	if err != nil {
		// Deliberately drop the underlying error: which check failed
		// must not be distinguishable.
		return nil, ErrAuthentication
	}

	plaintext, err := decompressPayload(payload, envelope.Compression)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecompression, err)
	}
	return plaintext, nil
}

// Seal serializes a tagged value to deterministic CBOR, then seals it
// under the given domain with the value's tag as authentication
// context.
func Seal[T Tagged](v *Vault, domain Domain, value T) (*Envelope, error) {
	payload, err := codec.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding payload: %v", ErrSerialization, err)
	}
	return v.SealBytes(domain, []byte(value.VaultTag()), payload)
}

// Unseal authenticates, decrypts, and decodes a value sealed with
// Seal. The type parameter supplies the expected tag; an envelope
// sealed under a different tag, domain, or key fails with
// ErrAuthentication before any decoding is attempted.
func Unseal[T Tagged](v *Vault, domain Domain, envelope *Envelope) (T, error) {
	var value T
	payload, err := v.UnsealBytes(domain, []byte(value.VaultTag()), envelope)
	if err != nil {
		return value, err
	}
	if err := codec.Unmarshal(payload, &value); err != nil {
		return value, fmt.Errorf("%w: decoding payload: %v", ErrSerialization, err)
	}
	return value, nil
}

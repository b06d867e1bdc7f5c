// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package vault

import (
	"encoding/json"
	"fmt"
)

// EnvelopeVersion is the envelope format version recorded in the first
// header byte and authenticated via the AAD. Bump on any layout change.
const EnvelopeVersion uint8 = 1

const (
	// NonceSize is the AEAD nonce length (96-bit). Both cipher suites
	// use 96-bit nonces.
	NonceSize = 12

	// TagSize is the AEAD authentication tag length (128-bit).
	TagSize = 16

	// headerSize is the fixed envelope header:
	// [version][cipher][domain][codec].
	headerSize = 4

	// minEnvelopeSize is the smallest well-formed binary envelope:
	// header + nonce + tag (empty plaintext).
	minEnvelopeSize = headerSize + NonceSize + TagSize
)

// Envelope is the sealed container for one payload. It carries
// everything needed to authenticate and decrypt: the format version,
// the cipher suite, the key domain, the compression codec, the nonce,
// and the ciphertext with its trailing tag. No field is secret, but
// all header fields are authenticated — tampering with any of them
// fails the unseal.
//
// Envelopes are immutable value types once sealed. The binary layout
// is:
//
//	[version:1][cipher:1][domain:1][codec:1][nonce:12][ciphertext+tag]
//
// The text form is JSON with the binary fields base64-encoded; it is
// stable under pretty-printing and round-trips exactly.
type Envelope struct {
	Version     uint8
	Cipher      CipherID
	Domain      Domain
	Compression Compression
	Nonce       [NonceSize]byte
	Ciphertext  []byte
}

// MarshalBinary encodes the envelope in the compact binary layout.
func (envelope *Envelope) MarshalBinary() ([]byte, error) {
	out := make([]byte, 0, headerSize+NonceSize+len(envelope.Ciphertext))
	out = append(out, envelope.Version, uint8(envelope.Cipher), uint8(envelope.Domain), uint8(envelope.Compression))
	out = append(out, envelope.Nonce[:]...)
	out = append(out, envelope.Ciphertext...)
	return out, nil
}

// UnmarshalBinary decodes an envelope from the compact binary layout.
// Only framing is validated here: length and format version. The
// cipher, domain, and codec bytes are authenticated during unseal, so
// a tampered value surfaces as an authentication failure rather than a
// parse error.
func (envelope *Envelope) UnmarshalBinary(data []byte) error {
	if len(data) < minEnvelopeSize {
		return fmt.Errorf("%w: envelope is %d bytes, minimum is %d", ErrSerialization, len(data), minEnvelopeSize)
	}
	if data[0] != EnvelopeVersion {
		return fmt.Errorf("%w: unsupported envelope version %d", ErrSerialization, data[0])
	}

	envelope.Version = data[0]
	envelope.Cipher = CipherID(data[1])
	envelope.Domain = Domain(data[2])
	envelope.Compression = Compression(data[3])
	copy(envelope.Nonce[:], data[headerSize:headerSize+NonceSize])

	// Copy so the envelope does not alias the caller's buffer.
	envelope.Ciphertext = make([]byte, len(data)-headerSize-NonceSize)
	copy(envelope.Ciphertext, data[headerSize+NonceSize:])
	return nil
}

// envelopeJSON is the text form of an envelope. Enum fields use their
// string names for readability in storage and transport layers;
// encoding/json base64-encodes the []byte fields.
type envelopeJSON struct {
	Version     uint8  `json:"version"`
	Cipher      string `json:"cipher"`
	Domain      string `json:"domain"`
	Compression string `json:"compression"`
	Nonce       []byte `json:"nonce"`
	Ciphertext  []byte `json:"ciphertext"`
}

// MarshalJSON encodes the envelope in its text form.
func (envelope *Envelope) MarshalJSON() ([]byte, error) {
	return json.Marshal(envelopeJSON{
		Version:     envelope.Version,
		Cipher:      envelope.Cipher.String(),
		Domain:      envelope.Domain.String(),
		Compression: envelope.Compression.String(),
		Nonce:       envelope.Nonce[:],
		Ciphertext:  envelope.Ciphertext,
	})
}

// UnmarshalJSON decodes an envelope from its text form. Unlike the
// binary form, the text form names the cipher, domain, and codec, so
// unknown names are rejected here as serialization errors.
func (envelope *Envelope) UnmarshalJSON(data []byte) error {
	var decoded envelopeJSON
	if err := json.Unmarshal(data, &decoded); err != nil {
		return fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	if decoded.Version != EnvelopeVersion {
		return fmt.Errorf("%w: unsupported envelope version %d", ErrSerialization, decoded.Version)
	}

	cipher, err := ParseCipherID(decoded.Cipher)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	domain, err := ParseDomain(decoded.Domain)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	codec, err := ParseCompression(decoded.Compression)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	if len(decoded.Nonce) != NonceSize {
		return fmt.Errorf("%w: nonce is %d bytes, expected %d", ErrSerialization, len(decoded.Nonce), NonceSize)
	}
	if len(decoded.Ciphertext) < TagSize {
		return fmt.Errorf("%w: ciphertext is %d bytes, minimum is the %d-byte tag", ErrSerialization, len(decoded.Ciphertext), TagSize)
	}

	envelope.Version = decoded.Version
	envelope.Cipher = cipher
	envelope.Domain = domain
	envelope.Compression = codec
	copy(envelope.Nonce[:], decoded.Nonce)
	envelope.Ciphertext = decoded.Ciphertext
	return nil
}

// Compressed reports whether the payload was compressed before
// encryption.
func (envelope *Envelope) Compressed() bool {
	return envelope.Compression != CompressionNone
}

// Size returns the total serialized binary size in bytes.
func (envelope *Envelope) Size() int {
	return headerSize + NonceSize + len(envelope.Ciphertext)
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package vault

import "encoding/binary"

// buildAAD constructs the additional authenticated data for AEAD
// operations: the four envelope header bytes followed by the
// length-prefixed context tag. Seal and unseal recompute it from
// context identically; it is never transmitted.
//
// Binding the header means a flipped domain or codec byte fails
// authentication. Binding the tag means ciphertext cannot be replayed
// as a different payload type. The length prefix keeps variable-length
// tags from colliding across the field boundary (the framing of
// ("ab","c") can never equal that of ("a","bc")).
func buildAAD(version uint8, cipher CipherID, domain Domain, codec Compression, context []byte) []byte {
	aad := make([]byte, 8+len(context))
	aad[0] = version
	aad[1] = uint8(cipher)
	aad[2] = uint8(domain)
	aad[3] = uint8(codec)
	binary.BigEndian.PutUint32(aad[4:], uint32(len(context)))
	copy(aad[8:], context)
	return aad
}

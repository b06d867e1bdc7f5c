// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package vault

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies the codec applied to the plaintext before
// encryption. The codec is recorded in the envelope header (1 byte)
// and bound into the AAD, so a flipped codec byte fails authentication
// instead of feeding ciphertext-shaped garbage to a decompressor.
// These values are protocol constants — changing them breaks envelope
// compatibility.
type Compression uint8

const (
	// CompressionNone indicates an uncompressed payload.
	CompressionNone Compression = 0

	// CompressionLZ4 indicates LZ4 block compression with a 4-byte
	// little-endian uncompressed-size prefix. Fast default for
	// structured records (~1.5-2x ratio, ~4 GB/s decode).
	CompressionLZ4 Compression = 1

	// CompressionZstd indicates zstd at the default level. Better
	// ratios for text-heavy payloads (~3-5x ratio, ~1.5 GB/s decode).
	CompressionZstd Compression = 2
)

// String returns the human-readable name of a compression codec.
func (codec Compression) String() string {
	switch codec {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(codec))
	}
}

// ParseCompression parses a compression codec from its string
// representation.
func ParseCompression(name string) (Compression, error) {
	switch name {
	case "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZstd, nil
	default:
		return 0, fmt.Errorf("unknown compression codec: %q", name)
	}
}

// maxDecompressedSize caps the size a compressed payload may claim to
// expand to. Decompression only runs after authentication succeeds, so
// the size field is trusted, but a cap keeps a corrupted-then-resealed
// payload from requesting an absurd allocation.
const maxDecompressedSize = 1 << 30

// errIncompressible is returned by compression when the output is not
// smaller than the input. Seal falls back to CompressionNone.
var errIncompressible = errors.New("data is incompressible")

// zstdEncoder and zstdDecoder are reused across calls to avoid
// repeated initialization overhead. Both are safe for concurrent use.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedDefault),
	)
	if err != nil {
		panic("vault: zstd encoder initialization failed: " + err.Error())
	}

	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("vault: zstd decoder initialization failed: " + err.Error())
	}
}

// compressPayload compresses plaintext with the given codec. Returns
// errIncompressible when the result would not be smaller than the
// input.
func compressPayload(data []byte, codec Compression) ([]byte, error) {
	switch codec {
	case CompressionNone:
		return data, nil

	case CompressionLZ4:
		return compressLZ4(data)

	case CompressionZstd:
		return compressZstd(data)

	default:
		return nil, fmt.Errorf("unsupported compression codec: %d", codec)
	}
}

// decompressPayload reverses compressPayload. Runs strictly after
// authentication.
func decompressPayload(data []byte, codec Compression) ([]byte, error) {
	switch codec {
	case CompressionNone:
		return data, nil

	case CompressionLZ4:
		return decompressLZ4(data)

	case CompressionZstd:
		return decompressZstd(data)

	default:
		return nil, fmt.Errorf("unsupported compression codec: %d", codec)
	}
}

// LZ4 block framing: [uncompressed size: 4 bytes LE][lz4 block]. The
// block format does not carry the original length, so it is prefixed
// explicitly.

func compressLZ4(data []byte) ([]byte, error) {
	bound := lz4.CompressBlockBound(len(data))
	destination := make([]byte, 4+bound)
	binary.LittleEndian.PutUint32(destination, uint32(len(data)))

	written, err := lz4.CompressBlock(data, destination[4:], nil)
	if err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}

	// CompressBlock returns 0 when it determines the data is
	// incompressible. The prefix must also pay for itself.
	if written == 0 || 4+written >= len(data) {
		return nil, errIncompressible
	}

	return destination[:4+written], nil
}

func decompressLZ4(data []byte) ([]byte, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("lz4 payload too short for size prefix: %d bytes", len(data))
	}

	size := binary.LittleEndian.Uint32(data)
	if size > maxDecompressedSize {
		return nil, fmt.Errorf("lz4 payload claims %d decompressed bytes, cap is %d", size, maxDecompressedSize)
	}

	destination := make([]byte, size)
	read, err := lz4.UncompressBlock(data[4:], destination)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompress: %w", err)
	}
	if read != int(size) {
		return nil, fmt.Errorf("lz4 decompress: got %d bytes, expected %d", read, size)
	}
	return destination, nil
}

// Zstd frames carry their own content size, so no prefix is needed.

func compressZstd(data []byte) ([]byte, error) {
	compressed := zstdEncoder.EncodeAll(data, nil)
	if len(compressed) >= len(data) {
		return nil, errIncompressible
	}
	return compressed, nil
}

func decompressZstd(data []byte) ([]byte, error) {
	result, err := zstdDecoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decompress: %w", err)
	}
	if len(result) > maxDecompressedSize {
		return nil, fmt.Errorf("zstd payload decompressed to %d bytes, cap is %d", len(result), maxDecompressedSize)
	}
	return result, nil
}

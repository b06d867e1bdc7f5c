// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package vault

import (
	"bytes"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"testing"
)

func TestCompressDecompress_RoundTrip(t *testing.T) {
	payload := bytes.Repeat([]byte("structured record with repeating content "), 50)

	for _, codec := range []Compression{CompressionLZ4, CompressionZstd} {
		t.Run(codec.String(), func(t *testing.T) {
			compressed, err := compressPayload(payload, codec)
			if err != nil {
				t.Fatalf("compressPayload: %v", err)
			}
			if len(compressed) >= len(payload) {
				t.Errorf("compressed size %d not smaller than input %d", len(compressed), len(payload))
			}

			decompressed, err := decompressPayload(compressed, codec)
			if err != nil {
				t.Fatalf("decompressPayload: %v", err)
			}
			if !bytes.Equal(decompressed, payload) {
				t.Error("roundtrip mismatch")
			}
		})
	}
}

func TestCompress_None_PassesThrough(t *testing.T) {
	payload := []byte("untouched")
	result, err := compressPayload(payload, CompressionNone)
	if err != nil {
		t.Fatalf("compressPayload: %v", err)
	}
	if !bytes.Equal(result, payload) {
		t.Error("CompressionNone modified the payload")
	}
}

func TestCompress_Incompressible(t *testing.T) {
	payload := make([]byte, 256)
	if _, err := rand.Read(payload); err != nil {
		t.Fatalf("generating random payload: %v", err)
	}

	for _, codec := range []Compression{CompressionLZ4, CompressionZstd} {
		t.Run(codec.String(), func(t *testing.T) {
			_, err := compressPayload(payload, codec)
			if !errors.Is(err, errIncompressible) {
				t.Errorf("got %v, want errIncompressible", err)
			}
		})
	}
}

func TestDecompressLZ4_TruncatedPrefix(t *testing.T) {
	_, err := decompressPayload([]byte{1, 2}, CompressionLZ4)
	if err == nil {
		t.Error("expected error for truncated size prefix")
	}
}

func TestDecompressLZ4_TruncatedBlock(t *testing.T) {
	payload := bytes.Repeat([]byte("truncate me "), 50)
	compressed, err := compressPayload(payload, CompressionLZ4)
	if err != nil {
		t.Fatalf("compressPayload: %v", err)
	}

	// Cutting the block short means it can no longer produce the
	// number of bytes the prefix promises.
	truncated := compressed[:len(compressed)-8]

	if _, err := decompressPayload(truncated, CompressionLZ4); err == nil {
		t.Error("expected error for truncated lz4 block")
	}
}

func TestDecompressLZ4_SizeCap(t *testing.T) {
	payload := bytes.Repeat([]byte("oversized claim "), 50)
	compressed, err := compressPayload(payload, CompressionLZ4)
	if err != nil {
		t.Fatalf("compressPayload: %v", err)
	}

	// Rewrite the prefix to claim an absurd decompressed size.
	binary.LittleEndian.PutUint32(compressed, maxDecompressedSize+1)

	if _, err := decompressPayload(compressed, CompressionLZ4); err == nil {
		t.Error("expected error for size above cap")
	}
}

func TestDecompressZstd_Corrupt(t *testing.T) {
	if _, err := decompressPayload([]byte("not a zstd frame"), CompressionZstd); err == nil {
		t.Error("expected error for corrupt zstd data")
	}
}

func TestCompression_ParseAndString(t *testing.T) {
	for _, codec := range []Compression{CompressionNone, CompressionLZ4, CompressionZstd} {
		parsed, err := ParseCompression(codec.String())
		if err != nil {
			t.Errorf("ParseCompression(%q): %v", codec.String(), err)
		}
		if parsed != codec {
			t.Errorf("ParseCompression(%q) = %v, want %v", codec.String(), parsed, codec)
		}
	}

	if _, err := ParseCompression("brotli"); err == nil {
		t.Error("expected error for unknown codec name")
	}
}

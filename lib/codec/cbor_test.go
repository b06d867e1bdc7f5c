// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"testing"
)

// samplePayload is a representative structured payload using cbor
// struct tags.
type samplePayload struct {
	Value   string `cbor:"value"`
	Comment string `cbor:"comment,omitempty"`
	Count   int    `cbor:"count"`
}

// sampleDualPayload uses json struct tags (fxamacker/cbor reads json
// tags as fallback, so types shared with JSON surfaces need only one
// tag set).
type sampleDualPayload struct {
	Version int    `json:"version"`
	Name    string `json:"name"`
}

func TestMarshalUnmarshalRoundtrip(t *testing.T) {
	original := samplePayload{
		Value:   "sensitive data",
		Comment: "internal record",
		Count:   42,
	}

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	if len(data) == 0 {
		t.Fatal("Marshal produced empty output")
	}

	var decoded samplePayload
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if decoded != original {
		t.Errorf("roundtrip mismatch: got %+v, want %+v", decoded, original)
	}
}

func TestMarshalDeterministic(t *testing.T) {
	payload := samplePayload{
		Value:   "record",
		Comment: "stable bytes",
		Count:   7,
	}

	first, err := Marshal(payload)
	if err != nil {
		t.Fatalf("first Marshal: %v", err)
	}

	second, err := Marshal(payload)
	if err != nil {
		t.Fatalf("second Marshal: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Errorf("deterministic encoding violated: %x != %x", first, second)
	}
}

func TestJSONTagFallback(t *testing.T) {
	// Types with json tags (no cbor tags) should encode/decode
	// correctly through our modes, using json tag names as CBOR
	// map keys.
	original := sampleDualPayload{Version: 3, Name: "profile"}

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded sampleDualPayload
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if decoded != original {
		t.Errorf("json-tag roundtrip mismatch: got %+v, want %+v", decoded, original)
	}
}

func TestOmitemptyRespected(t *testing.T) {
	// A zero-value omitempty field should not appear in output.
	withComment := samplePayload{Value: "a", Comment: "x", Count: 1}
	withoutComment := samplePayload{Value: "a", Count: 1}

	dataWith, err := Marshal(withComment)
	if err != nil {
		t.Fatal(err)
	}
	dataWithout, err := Marshal(withoutComment)
	if err != nil {
		t.Fatal(err)
	}

	// The encoding without the comment field should be shorter
	// because the omitted field is not present.
	if len(dataWithout) >= len(dataWith) {
		t.Errorf("omitempty not effective: without=%d bytes, with=%d bytes",
			len(dataWithout), len(dataWith))
	}
}

func TestUnmarshalInvalidCBOR(t *testing.T) {
	var payload samplePayload
	err := Unmarshal([]byte{0xFF, 0xFE, 0xFD}, &payload)
	if err == nil {
		t.Error("Unmarshal should reject invalid CBOR")
	}
}

func TestByteStringRoundtrip(t *testing.T) {
	// Verify that []byte fields encode as CBOR byte strings (major
	// type 2), not text strings. This matters for payloads carrying
	// binary blobs (keys, pre-serialized records).
	type record struct {
		Blob []byte `cbor:"blob"`
	}

	original := record{Blob: []byte(`{"key":"value"}`)}

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded record
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if !bytes.Equal(decoded.Blob, original.Blob) {
		t.Errorf("byte string roundtrip: got %q, want %q", decoded.Blob, original.Blob)
	}
}

func BenchmarkMarshal(b *testing.B) {
	payload := samplePayload{
		Value:   "sensitive data",
		Comment: "internal record",
		Count:   42,
	}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		Marshal(payload)
	}
}

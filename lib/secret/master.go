// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// ReadMasterSecret loads a vault master secret from a key file, or from
// stdin when path is "-", into a guarded buffer. Surrounding whitespace
// (trailing newlines from editors, shell heredocs) is trimmed, and every
// intermediate heap copy is wiped before returning. The caller owns the
// buffer and must Close it once key derivation is done — the vault keeps
// only the derived domain keys.
func ReadMasterSecret(path string) (*Buffer, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading master secret from stdin: %w", err)
		}
	} else {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading master secret: %w", err)
		}
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		Zero(data)
		return nil, fmt.Errorf("master secret source is empty")
	}

	// NewFromBytes wipes trimmed; Zero covers the surrounding
	// whitespace bytes trimmed does not alias.
	buffer, err := NewFromBytes(trimmed)
	Zero(data)
	if err != nil {
		return nil, err
	}
	return buffer, nil
}

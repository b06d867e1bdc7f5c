// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package vault

import "fmt"

// Domain is a key-scoping boundary. The domain selects which derived
// key seals an envelope and is recorded in the envelope header (1
// byte). These values are protocol constants — changing them breaks
// envelope compatibility.
type Domain uint8

const (
	// DomainLocal scopes envelopes to a single node. The Local key
	// derivation mixes in the node identifier, so Local envelopes
	// sealed on one machine cannot be unsealed on another even with
	// the same master secret.
	DomainLocal Domain = 1

	// DomainFleet scopes envelopes to the whole cluster. The Fleet key
	// derivation omits the node identifier, so any node built from the
	// same master secret and salt can unseal Fleet envelopes.
	DomainFleet Domain = 2
)

// String returns the human-readable name of a domain.
func (domain Domain) String() string {
	switch domain {
	case DomainLocal:
		return "local"
	case DomainFleet:
		return "fleet"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(domain))
	}
}

// ParseDomain parses a domain from its string representation.
func ParseDomain(name string) (Domain, error) {
	switch name {
	case "local":
		return DomainLocal, nil
	case "fleet":
		return DomainFleet, nil
	default:
		return 0, fmt.Errorf("unknown domain: %q", name)
	}
}

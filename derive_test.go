// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package vault

import (
	"bytes"
	"testing"

	"github.com/bureau-foundation/vault/lib/secret"
)

// deriveForTest derives both domain keys and registers cleanup.
func deriveForTest(t *testing.T, master, salt, nodeID string) (local, fleet *secret.Buffer) {
	t.Helper()
	local, fleet, err := deriveDomainKeys([]byte(master), []byte(salt), []byte(nodeID))
	if err != nil {
		t.Fatalf("deriveDomainKeys: %v", err)
	}
	t.Cleanup(func() {
		local.Close()
		fleet.Close()
	})
	return local, fleet
}

func TestDeriveDomainKeys_Deterministic(t *testing.T) {
	localA, fleetA := deriveForTest(t, "master", "salt", "node")
	localB, fleetB := deriveForTest(t, "master", "salt", "node")

	if !bytes.Equal(localA.Bytes(), localB.Bytes()) {
		t.Error("identical inputs produced different local keys")
	}
	if !bytes.Equal(fleetA.Bytes(), fleetB.Bytes()) {
		t.Error("identical inputs produced different fleet keys")
	}
}

func TestDeriveDomainKeys_DomainsIndependent(t *testing.T) {
	local, fleet := deriveForTest(t, "master", "salt", "node")

	if local.Len() != KeySize || fleet.Len() != KeySize {
		t.Fatalf("key sizes: local=%d fleet=%d, want %d", local.Len(), fleet.Len(), KeySize)
	}
	if bytes.Equal(local.Bytes(), fleet.Bytes()) {
		t.Error("local and fleet keys are identical")
	}
}

func TestDeriveDomainKeys_NodeIDScopesLocalOnly(t *testing.T) {
	localA, fleetA := deriveForTest(t, "master", "salt", "node-a")
	localB, fleetB := deriveForTest(t, "master", "salt", "node-b")

	// The node identifier feeds only the local derivation.
	if bytes.Equal(localA.Bytes(), localB.Bytes()) {
		t.Error("different node ids produced the same local key")
	}
	if !bytes.Equal(fleetA.Bytes(), fleetB.Bytes()) {
		t.Error("different node ids changed the fleet key")
	}
}

func TestDeriveDomainKeys_SaltAndSecretScopeBoth(t *testing.T) {
	baseLocal, baseFleet := deriveForTest(t, "master", "salt", "node")

	variants := map[string]struct {
		master, salt string
	}{
		"master secret": {"other-master", "salt"},
		"salt":          {"master", "other-salt"},
	}
	for name, variant := range variants {
		local, fleet := deriveForTest(t, variant.master, variant.salt, "node")
		if bytes.Equal(local.Bytes(), baseLocal.Bytes()) {
			t.Errorf("changing %s did not change the local key", name)
		}
		if bytes.Equal(fleet.Bytes(), baseFleet.Bytes()) {
			t.Errorf("changing %s did not change the fleet key", name)
		}
	}
}

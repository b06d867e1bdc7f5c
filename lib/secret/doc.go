// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package secret provides a memory-safe buffer for sensitive data such
// as master secrets and derived encryption keys.
//
// Buffer allocates memory outside the Go heap via mmap(MAP_ANONYMOUS),
// locks it into physical RAM via mlock (preventing swap), and marks it
// excluded from core dumps via madvise(MADV_DONTDUMP). On Close, the
// memory is zeroed, unlocked, and unmapped.
//
// Because the memory is allocated outside the Go heap, the garbage
// collector never sees it and cannot copy or relocate it. This is the
// only way to guarantee that key material does not persist in memory
// after it is no longer needed.
//
// Key exports:
//
//   - [New] / [NewFromBytes] -- allocate a guarded buffer
//   - [ReadMasterSecret] -- load a master secret from a key file or stdin
//   - [Zero] -- wipe a heap slice in place
//
// The vault stores its derived domain keys in Buffer values for the
// lifetime of the vault; the vault-seal CLI uses ReadMasterSecret to
// take the master secret from a key file or stdin without echoing it
// into process arguments.
package secret

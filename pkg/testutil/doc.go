// Package testutil provides helpers for testing bls components.
//
// Key components:
//   - MemoryFS: in-memory filesystem with error injection and a record of
//     every directory listed, for testing traversal pruning
//   - GlobTestFiles: the reference tree used by the globber scenarios, built
//     on disk or in a MemoryFS
//   - File helpers: create and inspect files in t.TempDir trees
//
// Tests that need real metadata or the OS walker build trees under
// t.TempDir. Everything else uses MemoryFS.
package testutil

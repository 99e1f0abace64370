// Package testutils provides shared helpers for tests across the codebase.
//
// RunPostStoreContract exercises any store.PostStore implementation against
// the persistence contract, so the memory store and every SQL dialect are
// held to the same behavior.
//
// Nothing in this package may be imported from production code.
package testutils

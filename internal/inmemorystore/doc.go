// Package inmemorystore provides an ephemeral, thread-safe, in-memory
// compute-once cache.
//
// # Purpose
//
// Layout classification walks a template chain and is requested for the
// same layout by many concurrent build units. Memo guarantees that the work
// for a given key runs exactly once and that every caller observes the same
// memoized result, error included.
//
// # Concurrency Model
//
// Entries live in a sync.Map keyed by the caller's key. Each entry owns a
// sync.Once, so construction for one key is serialized while distinct keys
// proceed in parallel without a global lock.
package inmemorystore

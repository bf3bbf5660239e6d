// Package search coordinates a user's book search: it owns the term and
// filter, drives a catalog.Fetcher, and publishes Idle, Loading, Success and
// Failure through a state.Store.
//
// Search with an empty term is a no-op. Otherwise the store moves to Loading
// before the fetch begins. Overlapping searches are resolved
// last-invocation-wins: the superseded call's context is cancelled and any
// result it still produces is discarded by generation.
//
// Failure kinds are logged with the query and a per-invocation id; the UI
// only sees a Failure. Retry is Search again and is allowed from any state.
package search

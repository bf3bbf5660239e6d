// Package state holds the search lifecycle shared by the coordinator and the
// UI.
//
// # Overview
//
// Lifecycle is a closed sum type: Idle, Loading, Success and Failure are the
// only implementations. Presentation code switches over the concrete types.
//
// Store is the single writer-safe container for the current Lifecycle:
//
//	Coordinator:                      UI:
//	┌──────────────────┐             ┌──────────────────┐
//	│ gen := Begin(req)│             │ ch := Subscribe()│
//	│ resp, err := ... │──(mutex)───→│ snap := <-ch     │
//	│ Resolve(gen, ...)│             │ render snap      │
//	└──────────────────┘             └──────────────────┘
//
// # Generations
//
// Every Begin increments the generation. Resolve only applies when its
// generation is still current and the store is still Loading, so a slow
// response for an earlier search can never overwrite the state produced by a
// later one.
//
// # Copying
//
// Success responses are deep-copied when stored and again when read, so a
// published Success is never mutated; the next search replaces it.
//
// # Notification
//
// Subscribers get a 1-slot channel. Publishing replaces any unread snapshot
// and never blocks, so a slow reader only ever sees the latest state.
package state

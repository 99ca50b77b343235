// Package effects owns the timeline effect model and the mutation batch used
// to commit sync passes atomically.
//
// Every effect type declares its binding kind once (global, clip-bound,
// time-based, managed); all sync services consult that single table instead
// of keeping their own type sets. Effect payloads are a tagged union keyed by
// the effect type, with JSON encoding for persistence.
//
// The Store is the only writer of the effect list. Sync services collect
// removals, updates, and additions into a MutationBatch and the orchestrator
// applies it in one pass, which keeps the whole synchronization a single
// observable state transition.
package effects

// Package workflow sequences the synchronization services that keep every
// time-anchored artifact consistent after one clip edit.
//
// The Orchestrator consumes each ClipChange exactly once, synchronously,
// before the edit is considered committed: clip-bound and time-based effect
// mutations are collected into one batch, the linked webcam track is
// mirrored, the batch is applied atomically, managed keystroke effects are
// regenerated from the post-batch state, orphaned effects are dropped, and
// registered invalidation listeners are signaled.
//
// The pass is single-writer and has no suspension points; it assumes the
// caller wraps it in its own transaction (the undo/redo command boundary)
// and that all inputs are resident in memory. Nothing in the pass can fail
// fatally: bad sub-inputs degrade to skipped sub-cases.
package workflow

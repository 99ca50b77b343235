// Package effectsync computes the effect mutations one clip edit requires.
//
// ClipBound mirrors clip-anchored effects onto their clip's current range,
// TimeBased shifts, truncates, and remaps timeline-anchored effects, and
// CleanupOrphans drops effects whose clip no longer exists. All three only
// populate a mutation batch; they never touch the effect list directly, so
// the orchestrator can commit the whole pass as one state transition.
//
// Missing before/after snapshots, unknown clips, and empty segment mappings
// make the affected sub-case a silent no-op. Skipping a sync step degrades to
// stale positions, which is recoverable; moving effects from bad inputs is
// not.
package effectsync

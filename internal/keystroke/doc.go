// Package keystroke regenerates the derived keystroke highlight blocks from
// recording metadata.
//
// Regeneration is a full deterministic rebuild: keyboard events are clustered
// by gap, padded in source time, projected through every clip of their
// recording into timeline time, and merged into one managed effect per
// resulting range. Managed effects carry structured ids derived from
// (recording, cluster, range), which lets a rebuild preserve the enabled
// toggles users set on previous generations. User-authored keystroke effects
// are never touched.
//
// A rebuild is skipped entirely while no recording has metadata loaded;
// running against half-loaded state would wipe user toggles for blocks that
// only look missing.
package keystroke

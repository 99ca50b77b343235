// Package clipops implements the clip mutation primitives on the primary
// track: add, delete, trim, split, reorder, rate change, and variable-speed
// application.
//
// Each primitive performs the structural track edit, keeps the primary track
// contiguous, constructs the ClipChange describing exactly what moved, and
// hands it to the orchestrator before returning. The ClipChange carries the
// before/after timing snapshots, the net timeline delta, new clip ids, and
// the segment mapping for speed changes; getting those right here is what
// keeps every downstream artifact consistent.
package clipops

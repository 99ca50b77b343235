// Package timeline defines the clip and track model plus the pure timing
// math the sync engine is built on.
//
// Clips reference a time range of a recording placed on a track, with their
// own trim and speed parameters. All times are float64 milliseconds. The
// package owns the source-time/timeline-time conversion, the ClipChange
// contract produced by clip mutations, and the segment mapping used to remap
// instants through variable-speed regions.
//
// Everything here is pure data and pure functions; nothing in this package
// touches project state or effects.
package timeline

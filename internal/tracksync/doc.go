// Package tracksync mirrors primary-track edits onto the linked webcam
// track.
//
// Unlike effect sync, this service mutates the secondary track's clips
// directly: split points are propagated at the same absolute timeline
// instant, deletions trim or remove overlapping webcam clips before rippling
// the rest, and speed changes re-split overlapping webcam clips per primary
// segment with compounded playback rates. A rate change on the webcam track
// itself only shifts the clips after it.
package tracksync

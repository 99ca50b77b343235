// Package main hosts the montage CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into project
// store operations and clip edits. Every edit runs through the sync
// orchestrator, so effects, the webcam track, and keystroke overlays stay
// consistent with the primary timeline before the project is saved back.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main

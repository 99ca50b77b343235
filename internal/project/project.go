// Package project holds the in-memory project aggregate the sync engine
// operates on: tracks of clips, the effect store, and recording metadata.
package project

import (
	"montage/internal/effects"
	"montage/internal/timeline"
)

// KeyEvent is one keyboard event captured during a recording.
type KeyEvent struct {
	Timestamp float64 `json:"timestamp"`
	Key       string  `json:"key,omitempty"`
}

// Recording is a captured source a clip can reference. Keyboard events are
// loaded asynchronously by the host application; MetadataLoaded guards
// regeneration against half-loaded state.
type Recording struct {
	ID             string
	Name           string
	Duration       float64
	KeyboardEvents []KeyEvent
	MetadataLoaded bool
}

// Project is the mutable draft of editor state that one sync pass transforms.
type Project struct {
	ID         string
	Name       string
	Tracks     []*timeline.Track
	Effects    *effects.Store
	Recordings []*Recording
}

// New returns an empty project with an initialized effect store.
func New(id, name string) *Project {
	return &Project{ID: id, Name: name, Effects: effects.NewStore()}
}

// TrackOfType returns the first track of the given type, or nil.
func (p *Project) TrackOfType(typ timeline.TrackType) *timeline.Track {
	for _, t := range p.Tracks {
		if t.Type == typ {
			return t
		}
	}
	return nil
}

// ClipByID searches all tracks for the clip with the given id.
func (p *Project) ClipByID(id string) *timeline.Clip {
	for _, t := range p.Tracks {
		if c := t.ClipByID(id); c != nil {
			return c
		}
	}
	return nil
}

// TrackOfClip returns the track containing the clip with the given id.
func (p *Project) TrackOfClip(id string) *timeline.Track {
	for _, t := range p.Tracks {
		if t.ClipByID(id) != nil {
			return t
		}
	}
	return nil
}

// AllClipIDs returns the set of every clip id across all tracks.
func (p *Project) AllClipIDs() map[string]struct{} {
	ids := make(map[string]struct{})
	for _, t := range p.Tracks {
		for _, c := range t.Clips {
			ids[c.ID] = struct{}{}
		}
	}
	return ids
}

// ClipsOfRecording returns every clip referencing the recording, across all
// tracks, in track order.
func (p *Project) ClipsOfRecording(recordingID string) []*timeline.Clip {
	var out []*timeline.Clip
	for _, t := range p.Tracks {
		for _, c := range t.Clips {
			if c.RecordingID == recordingID {
				out = append(out, c)
			}
		}
	}
	return out
}

// RecordingByID returns the recording with the given id, or nil.
func (p *Project) RecordingByID(id string) *Recording {
	for _, r := range p.Recordings {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// Duration returns the timeline end of the longest track.
func (p *Project) Duration() float64 {
	end := 0.0
	for _, t := range p.Tracks {
		if trackEnd := t.EndTime(); trackEnd > end {
			end = trackEnd
		}
	}
	return end
}

// MetadataLoaded reports whether keyboard metadata has been loaded for any
// recording. Regeneration is skipped until the first load completes so a slow
// load cannot wipe user toggles.
func (p *Project) MetadataLoaded() bool {
	for _, r := range p.Recordings {
		if r.MetadataLoaded {
			return true
		}
	}
	return false
}

package timeline

import "sort"

// TrackType distinguishes the primary (screen) track from linked tracks.
type TrackType string

const (
	TrackPrimary TrackType = "primary"
	TrackWebcam  TrackType = "webcam"
)

// TimeTolerance is the tolerance, in milliseconds, under which two timeline
// instants are considered equal by the sync services.
const TimeTolerance = 1.0

// ClipState is a timing snapshot of a clip at one instant. It is captured
// before and after an edit so sync services can reason about what moved.
type ClipState struct {
	StartTime    float64
	EndTime      float64
	PlaybackRate float64
	SourceIn     float64
	SourceOut    float64
}

// Duration returns the clip's timeline duration.
func (s ClipState) Duration() float64 {
	return s.EndTime - s.StartTime
}

// Clip is a reference to a time range of a recording placed on a track.
type Clip struct {
	ID           string
	RecordingID  string
	StartTime    float64
	EndTime      float64
	PlaybackRate float64
	SourceIn     float64
	SourceOut    float64
}

// State captures the clip's current timing as an immutable snapshot.
func (c *Clip) State() ClipState {
	return ClipState{
		StartTime:    c.StartTime,
		EndTime:      c.EndTime,
		PlaybackRate: c.PlaybackRate,
		SourceIn:     c.SourceIn,
		SourceOut:    c.SourceOut,
	}
}

// Duration returns the clip's timeline duration.
func (c *Clip) Duration() float64 {
	return c.EndTime - c.StartTime
}

// Contains reports whether t falls inside the clip's timeline range.
func (c *Clip) Contains(t float64) bool {
	return t >= c.StartTime && t < c.EndTime
}

// Overlaps reports whether the clip's timeline range intersects [start, end).
func (c *Clip) Overlaps(start, end float64) bool {
	return c.StartTime < end && c.EndTime > start
}

// Track is an ordered collection of non-overlapping clips.
type Track struct {
	ID    string
	Type  TrackType
	Clips []*Clip
}

// ClipByID returns the clip with the given id, or nil.
func (t *Track) ClipByID(id string) *Clip {
	for _, c := range t.Clips {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// EndTime returns the timeline end of the last clip, or zero for an empty track.
func (t *Track) EndTime() float64 {
	end := 0.0
	for _, c := range t.Clips {
		if c.EndTime > end {
			end = c.EndTime
		}
	}
	return end
}

// RemoveClip deletes the clip with the given id, preserving order.
func (t *Track) RemoveClip(id string) bool {
	for i, c := range t.Clips {
		if c.ID == id {
			t.Clips = append(t.Clips[:i], t.Clips[i+1:]...)
			return true
		}
	}
	return false
}

// SortClips orders the track's clips by start time.
func (t *Track) SortClips() {
	sort.SliceStable(t.Clips, func(i, j int) bool {
		return t.Clips[i].StartTime < t.Clips[j].StartTime
	})
}

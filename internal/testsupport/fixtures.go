package testsupport

import (
	"testing"

	"montage/internal/effects"
	"montage/internal/project"
	"montage/internal/timeline"
)

// NewProject builds a small editable project: two primary clips, one webcam
// clip, a zoom effect, and a recording with a couple of keystrokes.
func NewProject(t testing.TB, id string) *project.Project {
	t.Helper()

	p := project.New(id, "Test Project")
	p.Tracks = []*timeline.Track{
		{
			ID:   "track-primary",
			Type: timeline.TrackPrimary,
			Clips: []*timeline.Clip{
				{ID: "clip-a", RecordingID: "rec-1", StartTime: 0, EndTime: 5000, PlaybackRate: 1, SourceIn: 0, SourceOut: 5000},
				{ID: "clip-b", RecordingID: "rec-1", StartTime: 5000, EndTime: 10000, PlaybackRate: 1, SourceIn: 5000, SourceOut: 10000},
			},
		},
		{
			ID:   "track-webcam",
			Type: timeline.TrackWebcam,
			Clips: []*timeline.Clip{
				{ID: "clip-cam", RecordingID: "rec-cam", StartTime: 0, EndTime: 10000, PlaybackRate: 1, SourceIn: 0, SourceOut: 10000},
			},
		},
	}
	p.Effects.Add(&effects.Effect{
		ID:        "zoom-1",
		Type:      effects.TypeZoom,
		StartTime: 2000,
		EndTime:   4000,
		Enabled:   true,
		Data:      &effects.ZoomData{Scale: 1.5, CenterX: 0.5, CenterY: 0.5},
	})
	p.Recordings = []*project.Recording{
		{
			ID:       "rec-1",
			Name:     "Screen Recording",
			Duration: 10000,
			KeyboardEvents: []project.KeyEvent{
				{Timestamp: 1000, Key: "g"},
				{Timestamp: 1400, Key: "o"},
			},
			MetadataLoaded: true,
		},
	}
	return p
}

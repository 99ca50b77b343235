package workflow_test

import (
	"testing"

	"montage/internal/effects"
	"montage/internal/project"
	"montage/internal/timeline"
	"montage/internal/workflow"
)

// deleteFixture builds a project where the primary clip [3000, 5000) was
// just removed from the track, with artifacts of every binding kind layered
// around it.
func deleteFixture() (*project.Project, *timeline.ClipChange) {
	p := project.New("p1", "fixture")
	p.Tracks = []*timeline.Track{
		{ID: "t1", Type: timeline.TrackPrimary, Clips: []*timeline.Clip{
			{ID: "c0", RecordingID: "r1", StartTime: 0, EndTime: 3000, PlaybackRate: 1, SourceIn: 0, SourceOut: 3000},
			{ID: "c2", RecordingID: "r1", StartTime: 3000, EndTime: 6000, PlaybackRate: 1, SourceIn: 6000, SourceOut: 9000},
		}},
		{ID: "t2", Type: timeline.TrackWebcam, Clips: []*timeline.Clip{
			{ID: "w1", RecordingID: "wr1", StartTime: 0, EndTime: 8000, PlaybackRate: 1, SourceIn: 0, SourceOut: 8000},
		}},
	}
	p.Recordings = []*project.Recording{{
		ID: "r1", Duration: 9000,
		KeyboardEvents: []project.KeyEvent{{Timestamp: 1000, Key: "a"}},
		MetadataLoaded: true,
	}}
	p.Effects.AddMany([]*effects.Effect{
		{ID: "downstream-zoom", Type: effects.TypeZoom, StartTime: 6000, EndTime: 7000, Enabled: true},
		{ID: "orphan", Type: effects.TypeAnnotation, ClipID: "c1", StartTime: 3000, EndTime: 5000, Enabled: true},
		{ID: "bound", Type: effects.TypeZoom, ClipID: "c2", StartTime: 5000, EndTime: 8000, Enabled: true},
		{ID: "background", Type: effects.TypeBackground, StartTime: 0, EndTime: 8000, Enabled: true},
	})

	// Clip c1 occupied [3000, 5000); the track edit already ran: c2 moved
	// from [5000, 8000) to [3000, 6000).
	change := timeline.NewChange(timeline.ChangeDelete, "c1", "r1",
		&timeline.ClipState{StartTime: 3000, EndTime: 5000, PlaybackRate: 1, SourceIn: 3000, SourceOut: 5000},
		nil, -2000).WithSourceTrack(timeline.TrackPrimary)
	return p, change
}

func TestCommitDeleteSynchronizesEverything(t *testing.T) {
	p, change := deleteFixture()
	orch := workflow.NewOrchestrator(nil)

	invalidated := ""
	orch.AddListener(workflow.InvalidationFunc(func(id string) { invalidated = id }))

	orch.Commit(p, change)

	// Time-based effect past the deletion shifted back.
	zoomEff := p.Effects.ByID("downstream-zoom")
	if zoomEff.StartTime != 4000 || zoomEff.EndTime != 5000 {
		t.Fatalf("downstream zoom = [%v, %v), want [4000, 5000)", zoomEff.StartTime, zoomEff.EndTime)
	}

	// Clip-bound effect mirrors its clip's post-edit range.
	bound := p.Effects.ByID("bound")
	if bound.StartTime != 3000 || bound.EndTime != 6000 {
		t.Fatalf("bound effect = [%v, %v), want [3000, 6000)", bound.StartTime, bound.EndTime)
	}

	// Orphan cleanup dropped the effect bound to the deleted clip.
	if p.Effects.ByID("orphan") != nil {
		t.Fatal("orphaned effect survived commit")
	}

	// Global effect untouched.
	bg := p.Effects.ByID("background")
	if bg == nil || bg.StartTime != 0 {
		t.Fatal("global effect was moved")
	}

	// Webcam track trimmed at the deletion window.
	webcam := p.Tracks[1]
	w1 := webcam.ClipByID("w1")
	if w1 == nil || w1.EndTime != 3000 {
		t.Fatalf("webcam clip not trimmed: %#v", w1)
	}

	// Keystroke blocks regenerated from the post-edit state.
	if p.Effects.ByID(effects.ManagedKeystrokeID("r1", 0, 0)) == nil {
		t.Fatal("managed keystroke block missing after commit")
	}
	if p.Effects.ByID(effects.KeystrokeStyleID) == nil {
		t.Fatal("style singleton missing after commit")
	}

	if invalidated != "p1" {
		t.Fatalf("invalidation listener got %q, want p1", invalidated)
	}
}

func TestCommitNilChangeIsNoop(t *testing.T) {
	p, _ := deleteFixture()
	before := len(p.Effects.All())

	orch := workflow.NewOrchestrator(nil)
	orch.Commit(p, nil)
	orch.Commit(nil, nil)

	if len(p.Effects.All()) != before {
		t.Fatal("nil change mutated effects")
	}
}

func TestCommitPostSyncInvariants(t *testing.T) {
	p, change := deleteFixture()
	workflow.NewOrchestrator(nil).Commit(p, change)

	clipIDs := p.AllClipIDs()
	for _, eff := range p.Effects.All() {
		if eff.Type.Binding() != effects.BindingGlobal && eff.ClipID != "" {
			if _, ok := clipIDs[eff.ClipID]; !ok {
				t.Fatalf("effect %s references deleted clip %s", eff.ID, eff.ClipID)
			}
		}
		if eff.Binding() == effects.BindingClipBound {
			clip := p.ClipByID(eff.ClipID)
			if eff.StartTime != clip.StartTime || eff.EndTime != clip.EndTime {
				t.Fatalf("clip-bound effect %s out of sync with clip", eff.ID)
			}
		}
		if eff.StartTime > eff.EndTime {
			t.Fatalf("effect %s has inverted range [%v, %v)", eff.ID, eff.StartTime, eff.EndTime)
		}
	}
}

package effectsync_test

import (
	"testing"

	"montage/internal/effects"
	"montage/internal/effectsync"
	"montage/internal/project"
	"montage/internal/timeline"
)

func projectWithPrimaryClips(clips ...*timeline.Clip) *project.Project {
	p := project.New("p1", "test")
	p.Tracks = []*timeline.Track{{ID: "t1", Type: timeline.TrackPrimary, Clips: clips}}
	return p
}

func TestClipBoundMirrorsClipRange(t *testing.T) {
	p := projectWithPrimaryClips(&timeline.Clip{
		ID: "c1", RecordingID: "r1", StartTime: 1000, EndTime: 4000, PlaybackRate: 1, SourceIn: 0, SourceOut: 3000,
	})
	eff := &effects.Effect{ID: "e1", Type: effects.TypeZoom, ClipID: "c1", StartTime: 500, EndTime: 2000}
	p.Effects.Add(eff)

	change := timeline.NewChange(timeline.ChangeTrimEnd, "c1", "r1",
		&timeline.ClipState{StartTime: 1000, EndTime: 5000, PlaybackRate: 1, SourceIn: 0, SourceOut: 4000},
		&timeline.ClipState{StartTime: 1000, EndTime: 4000, PlaybackRate: 1, SourceIn: 0, SourceOut: 3000},
		-1000)

	batch := effects.NewBatch()
	effectsync.ClipBound(p, change, batch)
	p.Effects.ApplyBatch(batch)

	requireRange(t, p, "e1", 1000, 4000)
}

func TestClipBoundSuppressesNoopUpdate(t *testing.T) {
	p := projectWithPrimaryClips(&timeline.Clip{
		ID: "c1", RecordingID: "r1", StartTime: 1000, EndTime: 4000, PlaybackRate: 1, SourceIn: 0, SourceOut: 3000,
	})
	p.Effects.Add(&effects.Effect{ID: "e1", Type: effects.TypeZoom, ClipID: "c1", StartTime: 1000, EndTime: 4000})

	change := timeline.NewChange(timeline.ChangeUpdate, "c1", "r1",
		&timeline.ClipState{StartTime: 1000, EndTime: 4000, PlaybackRate: 1, SourceIn: 0, SourceOut: 3000},
		&timeline.ClipState{StartTime: 1000, EndTime: 4000, PlaybackRate: 1, SourceIn: 0, SourceOut: 3000},
		0)

	batch := effects.NewBatch()
	effectsync.ClipBound(p, change, batch)
	if !batch.Empty() {
		t.Fatal("already-aligned effect queued a needless update")
	}
}

func TestClipBoundSplitRebindsAndClones(t *testing.T) {
	p := projectWithPrimaryClips(
		&timeline.Clip{ID: "c1a", RecordingID: "r1", StartTime: 0, EndTime: 2000, PlaybackRate: 1, SourceIn: 0, SourceOut: 2000},
		&timeline.Clip{ID: "c1b", RecordingID: "r1", StartTime: 2000, EndTime: 5000, PlaybackRate: 1, SourceIn: 2000, SourceOut: 5000},
	)
	p.Effects.Add(&effects.Effect{
		ID: "e1", Type: effects.TypeAnnotation, ClipID: "c1", StartTime: 0, EndTime: 5000,
		Data: &effects.AnnotationData{Text: "hello"},
	})

	change := timeline.NewChange(timeline.ChangeSplit, "c1", "r1",
		&timeline.ClipState{StartTime: 0, EndTime: 5000, PlaybackRate: 1, SourceIn: 0, SourceOut: 5000},
		nil, 0).WithNewClips("c1a", "c1b")

	batch := effects.NewBatch()
	effectsync.ClipBound(p, change, batch)
	p.Effects.ApplyBatch(batch)

	all := p.Effects.All()
	if len(all) != 2 {
		t.Fatalf("expected original + 1 clone, got %d effects", len(all))
	}

	original := p.Effects.ByID("e1")
	if original.ClipID != "c1a" || original.StartTime != 0 || original.EndTime != 2000 {
		t.Fatalf("original not rebound to first split piece: %#v", original)
	}

	var clone *effects.Effect
	for _, e := range all {
		if e.ID != "e1" {
			clone = e
		}
	}
	if clone == nil || clone.ClipID != "c1b" {
		t.Fatalf("clone not bound to second split piece: %#v", clone)
	}
	if clone.StartTime != 2000 || clone.EndTime != 5000 {
		t.Fatalf("clone range = [%v, %v), want [2000, 5000)", clone.StartTime, clone.EndTime)
	}
	if clone.ID == original.ID {
		t.Fatal("clone shares id with original")
	}

	clone.Data.(*effects.AnnotationData).Text = "changed"
	if original.Data.(*effects.AnnotationData).Text != "hello" {
		t.Fatal("clone shares payload with original")
	}
}

func TestClipBoundSkipsDeletedClip(t *testing.T) {
	p := projectWithPrimaryClips()
	p.Effects.Add(&effects.Effect{ID: "e1", Type: effects.TypeZoom, ClipID: "gone", StartTime: 0, EndTime: 1000})

	change := timeline.NewChange(timeline.ChangeDelete, "gone", "r1",
		&timeline.ClipState{StartTime: 0, EndTime: 1000, PlaybackRate: 1, SourceIn: 0, SourceOut: 1000},
		nil, -1000)

	batch := effects.NewBatch()
	effectsync.ClipBound(p, change, batch)
	if !batch.Empty() {
		t.Fatal("delete handling belongs to orphan cleanup, not clip-bound sync")
	}
}

func TestClipBoundSkipsOtherTrackType(t *testing.T) {
	p := project.New("p1", "test")
	p.Tracks = []*timeline.Track{
		{ID: "t1", Type: timeline.TrackPrimary, Clips: []*timeline.Clip{
			{ID: "c1", StartTime: 0, EndTime: 3000, PlaybackRate: 1, SourceIn: 0, SourceOut: 3000},
		}},
		{ID: "t2", Type: timeline.TrackWebcam, Clips: []*timeline.Clip{
			{ID: "w1", StartTime: 0, EndTime: 3000, PlaybackRate: 1, SourceIn: 0, SourceOut: 3000},
		}},
	}
	p.Effects.Add(&effects.Effect{ID: "e1", Type: effects.TypeZoom, ClipID: "w1", StartTime: 100, EndTime: 200})

	change := timeline.NewChange(timeline.ChangeUpdate, "c1", "r1",
		&timeline.ClipState{StartTime: 0, EndTime: 3000, PlaybackRate: 1, SourceIn: 0, SourceOut: 3000},
		&timeline.ClipState{StartTime: 0, EndTime: 3000, PlaybackRate: 1, SourceIn: 0, SourceOut: 3000},
		0).WithSourceTrack(timeline.TrackPrimary)

	batch := effects.NewBatch()
	effectsync.ClipBound(p, change, batch)
	if !batch.Empty() {
		t.Fatal("effect bound to a clip on another track type should be skipped")
	}
}

func TestCleanupOrphans(t *testing.T) {
	p := projectWithPrimaryClips(&timeline.Clip{ID: "c1", StartTime: 0, EndTime: 1000, PlaybackRate: 1})
	p.Effects.AddMany([]*effects.Effect{
		{ID: "keep", Type: effects.TypeZoom, ClipID: "c1"},
		{ID: "orphan", Type: effects.TypeZoom, ClipID: "deleted-clip"},
		{ID: "free", Type: effects.TypeZoom},
		{ID: "global", Type: effects.TypeCursor, ClipID: "deleted-clip"},
	})

	batch := effects.NewBatch()
	effectsync.CleanupOrphans(p, batch)
	p.Effects.ApplyBatch(batch)

	if p.Effects.ByID("orphan") != nil {
		t.Fatal("orphaned effect survived cleanup")
	}
	for _, id := range []string{"keep", "free", "global"} {
		if p.Effects.ByID(id) == nil {
			t.Fatalf("effect %s wrongly removed", id)
		}
	}
}

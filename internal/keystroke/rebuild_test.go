package keystroke_test

import (
	"testing"

	"montage/internal/effects"
	"montage/internal/keystroke"
	"montage/internal/project"
	"montage/internal/timeline"
)

// fixtureProject builds a project with one recording of three key events and
// one primary clip showing the whole recording at rate 1.
func fixtureProject() *project.Project {
	p := project.New("p1", "test")
	p.Recordings = []*project.Recording{{
		ID:       "r1",
		Duration: 20000,
		KeyboardEvents: []project.KeyEvent{
			{Timestamp: 1000, Key: "a"},
			{Timestamp: 1800, Key: "b"},
			{Timestamp: 9000, Key: "c"},
		},
		MetadataLoaded: true,
	}}
	p.Tracks = []*timeline.Track{{
		ID:   "t1",
		Type: timeline.TrackPrimary,
		Clips: []*timeline.Clip{{
			ID: "c1", RecordingID: "r1",
			StartTime: 0, EndTime: 20000, PlaybackRate: 1, SourceIn: 0, SourceOut: 20000,
		}},
	}}
	return p
}

func managedEffects(p *project.Project) []*effects.Effect {
	var out []*effects.Effect
	for _, e := range p.Effects.All() {
		if e.Type == effects.TypeKeystroke && effects.IsManagedKeystrokeID(e.ID) {
			out = append(out, e)
		}
	}
	return out
}

func TestRebuildGeneratesClusterBlocks(t *testing.T) {
	p := fixtureProject()
	keystroke.Rebuild(p)

	managed := managedEffects(p)
	if len(managed) != 2 {
		t.Fatalf("expected 2 managed blocks, got %d", len(managed))
	}

	first := p.Effects.ByID(effects.ManagedKeystrokeID("r1", 0, 0))
	if first == nil {
		t.Fatal("first cluster block missing")
	}
	if first.StartTime != 500 || first.EndTime != 2300 {
		t.Fatalf("first block = [%v, %v), want [500, 2300)", first.StartTime, first.EndTime)
	}
	if !first.Enabled {
		t.Fatal("new block should default to enabled")
	}

	second := p.Effects.ByID(effects.ManagedKeystrokeID("r1", 1, 0))
	if second == nil {
		t.Fatal("second cluster block missing")
	}
	if second.StartTime != 8500 || second.EndTime != 9500 {
		t.Fatalf("second block = [%v, %v), want [8500, 9500)", second.StartTime, second.EndTime)
	}
}

func TestRebuildIsIdempotent(t *testing.T) {
	p := fixtureProject()
	keystroke.Rebuild(p)

	snapshot := make(map[string][2]float64)
	for _, e := range managedEffects(p) {
		snapshot[e.ID] = [2]float64{e.StartTime, e.EndTime}
	}

	keystroke.Rebuild(p)
	managed := managedEffects(p)
	if len(managed) != len(snapshot) {
		t.Fatalf("rebuild changed block count: %d -> %d", len(snapshot), len(managed))
	}
	for _, e := range managed {
		want, ok := snapshot[e.ID]
		if !ok {
			t.Fatalf("rebuild produced new id %s", e.ID)
		}
		if e.StartTime != want[0] || e.EndTime != want[1] {
			t.Fatalf("block %s moved across identical rebuilds", e.ID)
		}
	}
}

func TestRebuildPreservesEnabledFlags(t *testing.T) {
	p := fixtureProject()
	keystroke.Rebuild(p)

	id := effects.ManagedKeystrokeID("r1", 0, 0)
	disabled := false
	p.Effects.Update(id, effects.Patch{Enabled: &disabled})

	keystroke.Rebuild(p)
	if p.Effects.ByID(id).Enabled {
		t.Fatal("user toggle lost across rebuild")
	}
}

func TestRebuildSkipsWhenMetadataUnloaded(t *testing.T) {
	p := fixtureProject()
	keystroke.Rebuild(p)
	before := len(p.Effects.All())

	for _, r := range p.Recordings {
		r.MetadataLoaded = false
	}
	keystroke.Rebuild(p)

	if len(p.Effects.All()) != before {
		t.Fatal("rebuild without loaded metadata must not touch effects")
	}
}

func TestRebuildKeepsUserAuthoredKeystrokeEffects(t *testing.T) {
	p := fixtureProject()
	p.Effects.Add(&effects.Effect{
		ID: "user-block", Type: effects.TypeKeystroke, StartTime: 100, EndTime: 700, Enabled: true,
	})

	keystroke.Rebuild(p)
	if p.Effects.ByID("user-block") == nil {
		t.Fatal("user-authored keystroke effect was regenerated away")
	}
}

func TestRebuildStyleSingleton(t *testing.T) {
	p := fixtureProject()
	keystroke.Rebuild(p)

	style := p.Effects.ByID(effects.KeystrokeStyleID)
	if style == nil {
		t.Fatal("style effect missing after rebuild")
	}
	if style.StartTime != 0 || style.EndTime != p.Duration() {
		t.Fatalf("style range = [%v, %v), want full timeline", style.StartTime, style.EndTime)
	}

	style.Data = &effects.KeystrokeStyleData{Position: "top-left", Size: 2, Theme: "light"}
	keystroke.Rebuild(p)

	styles := p.Effects.ByType(effects.TypeKeystrokeStyle)
	if len(styles) != 1 {
		t.Fatalf("style effect duplicated: %d instances", len(styles))
	}
	if styles[0].Data.(*effects.KeystrokeStyleData).Position != "top-left" {
		t.Fatal("edited style payload reset by rebuild")
	}
}

func TestRebuildDropsSubMinimumRanges(t *testing.T) {
	p := fixtureProject()
	// A clip showing only 50ms of the first cluster.
	p.Tracks[0].Clips = []*timeline.Clip{{
		ID: "c1", RecordingID: "r1",
		StartTime: 0, EndTime: 50, PlaybackRate: 1, SourceIn: 520, SourceOut: 570,
	}}

	keystroke.Rebuild(p)
	if len(managedEffects(p)) != 0 {
		t.Fatal("sub-minimum range should be discarded")
	}
}

func TestRebuildMergesRangesFromSplitClips(t *testing.T) {
	p := fixtureProject()
	// The recording split into two adjacent clips; the first cluster spans
	// the cut, so its two projected ranges touch and must merge into one.
	p.Tracks[0].Clips = []*timeline.Clip{
		{ID: "c1", RecordingID: "r1", StartTime: 0, EndTime: 1500, PlaybackRate: 1, SourceIn: 0, SourceOut: 1500},
		{ID: "c2", RecordingID: "r1", StartTime: 1500, EndTime: 20000, PlaybackRate: 1, SourceIn: 1500, SourceOut: 20000},
	}

	keystroke.Rebuild(p)

	first := p.Effects.ByID(effects.ManagedKeystrokeID("r1", 0, 0))
	if first == nil {
		t.Fatal("merged block missing")
	}
	if first.StartTime != 500 || first.EndTime != 2300 {
		t.Fatalf("merged block = [%v, %v), want [500, 2300)", first.StartTime, first.EndTime)
	}
	if p.Effects.ByID(effects.ManagedKeystrokeID("r1", 0, 1)) != nil {
		t.Fatal("touching ranges were not merged")
	}
}

package timeline_test

import (
	"math"
	"testing"

	"montage/internal/timeline"
)

func TestTimelineToSource(t *testing.T) {
	clip := &timeline.Clip{
		StartTime:    1000,
		EndTime:      3000,
		PlaybackRate: 2,
		SourceIn:     500,
		SourceOut:    4500,
	}

	cases := []struct {
		name string
		t    float64
		want float64
	}{
		{"clip start maps to source in", 1000, 500},
		{"mid clip", 2000, 2500},
		{"clip end maps to source out", 3000, 4500},
		{"before clip extrapolates", 500, -500},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := timeline.TimelineToSource(tc.t, clip); got != tc.want {
				t.Fatalf("TimelineToSource(%v) = %v, want %v", tc.t, got, tc.want)
			}
		})
	}
}

func TestSourceToTimelineRoundTrip(t *testing.T) {
	clip := &timeline.Clip{
		StartTime:    2500,
		EndTime:      5000,
		PlaybackRate: 1.5,
		SourceIn:     1000,
		SourceOut:    4750,
	}

	for _, instant := range []float64{2500, 2600, 3333.25, 4999} {
		source := timeline.TimelineToSource(instant, clip)
		back := timeline.SourceToTimeline(source, clip)
		if math.Abs(back-instant) > 1e-9 {
			t.Fatalf("round trip of %v came back as %v", instant, back)
		}
	}
}

func TestSourceDeltaToTimelineDelta(t *testing.T) {
	if got := timeline.SourceDeltaToTimelineDelta(2000, 2); got != 1000 {
		t.Fatalf("SourceDeltaToTimelineDelta(2000, 2) = %v, want 1000", got)
	}
	if got := timeline.SourceDeltaToTimelineDelta(1500, 0.5); got != 3000 {
		t.Fatalf("SourceDeltaToTimelineDelta(1500, 0.5) = %v, want 3000", got)
	}
}

package clipops

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"montage/internal/timeline"
)

// SpeedRange asks for a source-time span of a clip to play at a multiplier
// of its current rate.
type SpeedRange struct {
	SourceStart float64
	SourceEnd   float64
	Multiplier  float64
}

// ApplySpeedUp partitions the clip into segments covering its whole source
// window (unlisted spans stay at multiplier 1), replaces the clip with one
// clip per segment, and commits the resulting segment mapping. The first
// segment keeps the original clip id.
func (e *Editor) ApplySpeedUp(clipID string, ranges []SpeedRange) error {
	track, clip, err := e.locate(clipID)
	if err != nil {
		return fmt.Errorf("apply speed-up: %w", err)
	}
	if len(ranges) == 0 {
		return fmt.Errorf("apply speed-up: %w: no speed ranges", ErrInvalidEdit)
	}

	sorted := append([]SpeedRange(nil), ranges...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].SourceStart < sorted[j].SourceStart })
	if err := validateRanges(sorted, clip); err != nil {
		return fmt.Errorf("apply speed-up: %w", err)
	}

	before := clip.State()
	mapping := buildMapping(sorted, clip)

	// Replace the clip with one clip per segment; the original id survives
	// on the first piece so bindings follow it.
	pieces := make([]*timeline.Clip, 0, len(mapping.Segments))
	for i, seg := range mapping.Segments {
		id := uuid.NewString()
		if i == 0 {
			id = clip.ID
		}
		pieces = append(pieces, &timeline.Clip{
			ID:           id,
			RecordingID:  clip.RecordingID,
			StartTime:    seg.TimelineStart,
			EndTime:      seg.TimelineEnd,
			PlaybackRate: before.PlaybackRate * seg.SpeedMultiplier,
			SourceIn:     seg.SourceStart,
			SourceOut:    seg.SourceEnd,
		})
	}

	for i, c := range track.Clips {
		if c.ID == clipID {
			replaced := append([]*timeline.Clip{}, track.Clips[:i]...)
			replaced = append(replaced, pieces...)
			track.Clips = append(replaced, track.Clips[i+1:]...)
			break
		}
	}

	delta := mapping.TimelineDelta()
	shiftFromExcluding(track, before.EndTime, delta, pieces)

	ids := make([]string, 0, len(pieces))
	for _, piece := range pieces {
		ids = append(ids, piece.ID)
	}
	after := pieces[0].State()

	change := timeline.NewChange(timeline.ChangeSpeedUp, clipID, clip.RecordingID, &before, &after, delta).
		WithNewClips(ids...).
		WithSegments(mapping).
		WithSourceTrack(track.Type)
	e.orch.Commit(e.project, change)
	return nil
}

func validateRanges(sorted []SpeedRange, clip *timeline.Clip) error {
	prevEnd := clip.SourceIn
	for _, r := range sorted {
		if r.Multiplier <= 0 {
			return fmt.Errorf("%w: multiplier must be positive", ErrInvalidEdit)
		}
		if r.SourceEnd <= r.SourceStart {
			return fmt.Errorf("%w: empty speed range", ErrInvalidEdit)
		}
		if r.SourceStart < prevEnd {
			return fmt.Errorf("%w: speed ranges overlap or fall outside the clip", ErrInvalidEdit)
		}
		prevEnd = r.SourceEnd
	}
	if prevEnd > clip.SourceOut {
		return fmt.Errorf("%w: speed range past clip source end", ErrInvalidEdit)
	}
	return nil
}

// buildMapping covers the clip's whole source window with segments,
// inserting multiplier-1 fillers between the requested ranges.
func buildMapping(sorted []SpeedRange, clip *timeline.Clip) *timeline.SegmentMapping {
	type span struct {
		start, end, mult float64
	}
	var spans []span
	cursor := clip.SourceIn
	for _, r := range sorted {
		if r.SourceStart > cursor {
			spans = append(spans, span{cursor, r.SourceStart, 1})
		}
		spans = append(spans, span{r.SourceStart, r.SourceEnd, r.Multiplier})
		cursor = r.SourceEnd
	}
	if cursor < clip.SourceOut {
		spans = append(spans, span{cursor, clip.SourceOut, 1})
	}

	mapping := &timeline.SegmentMapping{
		OriginalStart: clip.StartTime,
		OriginalEnd:   clip.EndTime,
		BaseRate:      clip.PlaybackRate,
	}
	tlCursor := clip.StartTime
	for _, s := range spans {
		tlDur := (s.end - s.start) / (clip.PlaybackRate * s.mult)
		mapping.Segments = append(mapping.Segments, timeline.Segment{
			SourceStart:     s.start,
			SourceEnd:       s.end,
			TimelineStart:   tlCursor,
			TimelineEnd:     tlCursor + tlDur,
			SpeedMultiplier: s.mult,
		})
		tlCursor += tlDur
	}
	return mapping
}

// shiftFromExcluding ripples clips past the edited region, excluding the freshly
// inserted segment pieces.
func shiftFromExcluding(track *timeline.Track, boundary, delta float64, exclude []*timeline.Clip) {
	if delta == 0 {
		return
	}
	skip := make(map[string]struct{}, len(exclude))
	for _, c := range exclude {
		skip[c.ID] = struct{}{}
	}
	for _, c := range track.Clips {
		if _, ok := skip[c.ID]; ok {
			continue
		}
		if c.StartTime >= boundary {
			c.StartTime += delta
			c.EndTime += delta
		}
	}
}

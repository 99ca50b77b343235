package clipops

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"montage/internal/project"
	"montage/internal/timeline"
	"montage/internal/workflow"
)

// ErrClipNotFound is returned when the targeted clip is on no track.
var ErrClipNotFound = errors.New("clip not found")

// ErrInvalidEdit is returned when an edit's parameters fall outside the
// targeted clip.
var ErrInvalidEdit = errors.New("invalid edit")

// Editor mutates a project's tracks and commits each edit through the sync
// orchestrator before returning.
type Editor struct {
	project *project.Project
	orch    *workflow.Orchestrator
}

// NewEditor constructs an editor for the given project.
func NewEditor(p *project.Project, orch *workflow.Orchestrator) *Editor {
	if orch == nil {
		orch = workflow.NewOrchestrator(nil)
	}
	return &Editor{project: p, orch: orch}
}

// AddClip appends a clip showing [sourceIn, sourceOut) of the recording to
// the end of the primary track.
func (e *Editor) AddClip(recordingID string, sourceIn, sourceOut, rate float64) (*timeline.Clip, error) {
	if rate <= 0 {
		return nil, fmt.Errorf("add clip: %w: rate must be positive", ErrInvalidEdit)
	}
	if sourceOut <= sourceIn {
		return nil, fmt.Errorf("add clip: %w: empty source range", ErrInvalidEdit)
	}
	track := e.project.TrackOfType(timeline.TrackPrimary)
	if track == nil {
		return nil, errors.New("add clip: project has no primary track")
	}

	start := track.EndTime()
	clip := &timeline.Clip{
		ID:           uuid.NewString(),
		RecordingID:  recordingID,
		StartTime:    start,
		EndTime:      start + (sourceOut-sourceIn)/rate,
		PlaybackRate: rate,
		SourceIn:     sourceIn,
		SourceOut:    sourceOut,
	}
	track.Clips = append(track.Clips, clip)

	after := clip.State()
	change := timeline.NewChange(timeline.ChangeAdd, clip.ID, recordingID, nil, &after, clip.Duration()).
		WithSourceTrack(track.Type)
	e.orch.Commit(e.project, change)
	return clip, nil
}

// DeleteClip removes the clip and closes the gap it leaves behind.
func (e *Editor) DeleteClip(clipID string) error {
	track, clip, err := e.locate(clipID)
	if err != nil {
		return fmt.Errorf("delete clip: %w", err)
	}

	before := clip.State()
	track.RemoveClip(clipID)
	delta := -before.Duration()
	shiftFrom(track, before.EndTime, delta)

	change := timeline.NewChange(timeline.ChangeDelete, clipID, clip.RecordingID, &before, nil, delta).
		WithSourceTrack(track.Type)
	e.orch.Commit(e.project, change)
	return nil
}

// TrimStart removes the first trim milliseconds of the clip's timeline
// duration, keeping the clip anchored at its start time.
func (e *Editor) TrimStart(clipID string, trim float64) error {
	track, clip, err := e.locate(clipID)
	if err != nil {
		return fmt.Errorf("trim start: %w", err)
	}
	if trim <= 0 || trim >= clip.Duration() {
		return fmt.Errorf("trim start: %w: trim %v outside clip duration %v", ErrInvalidEdit, trim, clip.Duration())
	}

	before := clip.State()
	clip.SourceIn += trim * clip.PlaybackRate
	clip.EndTime -= trim
	shiftFrom(track, before.EndTime, -trim)

	after := clip.State()
	change := timeline.NewChange(timeline.ChangeTrimStart, clipID, clip.RecordingID, &before, &after, -trim).
		WithSourceTrack(track.Type)
	e.orch.Commit(e.project, change)
	return nil
}

// TrimEnd removes the last trim milliseconds of the clip's timeline
// duration.
func (e *Editor) TrimEnd(clipID string, trim float64) error {
	track, clip, err := e.locate(clipID)
	if err != nil {
		return fmt.Errorf("trim end: %w", err)
	}
	if trim <= 0 || trim >= clip.Duration() {
		return fmt.Errorf("trim end: %w: trim %v outside clip duration %v", ErrInvalidEdit, trim, clip.Duration())
	}

	before := clip.State()
	clip.SourceOut -= trim * clip.PlaybackRate
	clip.EndTime -= trim
	shiftFrom(track, before.EndTime, -trim)

	after := clip.State()
	change := timeline.NewChange(timeline.ChangeTrimEnd, clipID, clip.RecordingID, &before, &after, -trim).
		WithSourceTrack(track.Type)
	e.orch.Commit(e.project, change)
	return nil
}

// SplitClip cuts the clip at the given timeline instant, producing two new
// clips in its place.
func (e *Editor) SplitClip(clipID string, at float64) (first, second *timeline.Clip, err error) {
	track, clip, err := e.locate(clipID)
	if err != nil {
		return nil, nil, fmt.Errorf("split clip: %w", err)
	}
	if at <= clip.StartTime || at >= clip.EndTime {
		return nil, nil, fmt.Errorf("split clip: %w: position %v outside clip", ErrInvalidEdit, at)
	}

	before := clip.State()
	cutSource := timeline.TimelineToSource(at, clip)

	first = &timeline.Clip{
		ID:           uuid.NewString(),
		RecordingID:  clip.RecordingID,
		StartTime:    clip.StartTime,
		EndTime:      at,
		PlaybackRate: clip.PlaybackRate,
		SourceIn:     clip.SourceIn,
		SourceOut:    cutSource,
	}
	second = &timeline.Clip{
		ID:           uuid.NewString(),
		RecordingID:  clip.RecordingID,
		StartTime:    at,
		EndTime:      clip.EndTime,
		PlaybackRate: clip.PlaybackRate,
		SourceIn:     cutSource,
		SourceOut:    clip.SourceOut,
	}

	for i, c := range track.Clips {
		if c.ID == clipID {
			replaced := append([]*timeline.Clip{}, track.Clips[:i]...)
			replaced = append(replaced, first, second)
			track.Clips = append(replaced, track.Clips[i+1:]...)
			break
		}
	}

	change := timeline.NewChange(timeline.ChangeSplit, clipID, clip.RecordingID, &before, nil, 0).
		WithNewClips(first.ID, second.ID).
		WithSourceTrack(track.Type)
	e.orch.Commit(e.project, change)
	return first, second, nil
}

// Reorder moves the clip to a new index on its track and relayouts the
// track contiguously.
func (e *Editor) Reorder(clipID string, newIndex int) error {
	track, clip, err := e.locate(clipID)
	if err != nil {
		return fmt.Errorf("reorder clip: %w", err)
	}
	if newIndex < 0 || newIndex >= len(track.Clips) {
		return fmt.Errorf("reorder clip: %w: index %d out of range", ErrInvalidEdit, newIndex)
	}

	before := clip.State()

	oldIndex := -1
	for i, c := range track.Clips {
		if c.ID == clipID {
			oldIndex = i
			break
		}
	}
	if oldIndex == newIndex {
		return nil
	}
	moved := track.Clips[oldIndex]
	rest := append([]*timeline.Clip{}, track.Clips[:oldIndex]...)
	rest = append(rest, track.Clips[oldIndex+1:]...)
	reordered := append([]*timeline.Clip{}, rest[:newIndex]...)
	reordered = append(reordered, moved)
	track.Clips = append(reordered, rest[newIndex:]...)

	relayout(track)

	after := clip.State()
	change := timeline.NewChange(timeline.ChangeReorder, clipID, clip.RecordingID, &before, &after, 0).
		WithSourceTrack(track.Type)
	e.orch.Commit(e.project, change)
	return nil
}

// SetRate changes the clip's playback rate, preserving its source range and
// rippling later clips by the duration change.
func (e *Editor) SetRate(clipID string, rate float64) error {
	track, clip, err := e.locate(clipID)
	if err != nil {
		return fmt.Errorf("set rate: %w", err)
	}
	if rate <= 0 {
		return fmt.Errorf("set rate: %w: rate must be positive", ErrInvalidEdit)
	}

	before := clip.State()
	clip.PlaybackRate = rate
	clip.EndTime = clip.StartTime + (clip.SourceOut-clip.SourceIn)/rate
	delta := clip.EndTime - before.EndTime
	shiftFrom(track, before.EndTime, delta)

	after := clip.State()
	change := timeline.NewChange(timeline.ChangeRate, clipID, clip.RecordingID, &before, &after, delta).
		WithSourceTrack(track.Type)
	e.orch.Commit(e.project, change)
	return nil
}

func (e *Editor) locate(clipID string) (*timeline.Track, *timeline.Clip, error) {
	track := e.project.TrackOfClip(clipID)
	if track == nil {
		return nil, nil, ErrClipNotFound
	}
	return track, track.ClipByID(clipID), nil
}

// shiftFrom moves every clip starting at or after boundary by delta.
func shiftFrom(track *timeline.Track, boundary, delta float64) {
	if delta == 0 {
		return
	}
	for _, c := range track.Clips {
		if c.StartTime >= boundary {
			c.StartTime += delta
			c.EndTime += delta
		}
	}
}

// relayout packs the track's clips contiguously from zero, preserving
// durations and order.
func relayout(track *timeline.Track) {
	cursor := 0.0
	for _, c := range track.Clips {
		dur := c.Duration()
		c.StartTime = cursor
		c.EndTime = cursor + dur
		cursor = c.EndTime
	}
}

package tracksync

import (
	"math"

	"github.com/google/uuid"

	"montage/internal/project"
	"montage/internal/timeline"
)

// Sync mirrors one primary-track edit onto the linked webcam track. Changes
// originating on the webcam track only shift the webcam clips after the
// edited one; changes with no resolvable source track are treated as
// primary.
func Sync(p *project.Project, change *timeline.ClipChange) {
	if p == nil || change == nil {
		return
	}
	secondary := p.TrackOfType(timeline.TrackWebcam)
	if secondary == nil || len(secondary.Clips) == 0 {
		return
	}

	if sourceTrackType(p, change) == timeline.TrackWebcam {
		syncSecondaryRateChange(secondary, change)
		return
	}

	switch change.Type {
	case timeline.ChangeSplit:
		syncSplit(p, secondary, change)
	case timeline.ChangeTrimStart, timeline.ChangeTrimEnd:
		syncTrim(secondary, change)
	case timeline.ChangeDelete:
		syncDelete(secondary, change)
	case timeline.ChangeRate:
		syncRateChange(secondary, change)
	case timeline.ChangeSpeedUp:
		syncSpeedUp(secondary, change)
	}
}

func sourceTrackType(p *project.Project, change *timeline.ClipChange) timeline.TrackType {
	if change.SourceTrackType != "" {
		return change.SourceTrackType
	}
	if track := p.TrackOfClip(change.ClipID); track != nil {
		return track.Type
	}
	return timeline.TrackPrimary
}

// syncSplit splits webcam clips at the primary split point when that point
// falls strictly inside them.
func syncSplit(p *project.Project, secondary *timeline.Track, change *timeline.ClipChange) {
	if len(change.NewClipIDs) == 0 {
		return
	}
	firstPiece := p.ClipByID(change.NewClipIDs[0])
	if firstPiece == nil {
		return
	}
	splitPoint := firstPiece.EndTime

	var added []*timeline.Clip
	for _, clip := range secondary.Clips {
		if splitPoint <= clip.StartTime || splitPoint >= clip.EndTime {
			continue
		}
		cutSource := timeline.TimelineToSource(splitPoint, clip)
		tail := &timeline.Clip{
			ID:           uuid.NewString(),
			RecordingID:  clip.RecordingID,
			StartTime:    splitPoint,
			EndTime:      clip.EndTime,
			PlaybackRate: clip.PlaybackRate,
			SourceIn:     cutSource,
			SourceOut:    clip.SourceOut,
		}
		clip.EndTime = splitPoint
		clip.SourceOut = cutSource
		added = append(added, tail)
	}
	if len(added) > 0 {
		secondary.Clips = append(secondary.Clips, added...)
		secondary.SortClips()
	}
}

// syncTrim removes the trimmed window from overlapping webcam clips and
// ripples the clips after it, skipping clips the window pass already touched.
func syncTrim(secondary *timeline.Track, change *timeline.ClipChange) {
	if change.Before == nil || change.After == nil {
		return
	}

	var winStart, winEnd float64
	switch change.Type {
	case timeline.ChangeTrimStart:
		if change.After.PlaybackRate <= 0 {
			return
		}
		contentShift := (change.After.SourceIn - change.Before.SourceIn) / change.After.PlaybackRate
		if contentShift <= 0 {
			return
		}
		winStart = change.Before.StartTime
		winEnd = winStart + contentShift
	case timeline.ChangeTrimEnd:
		winStart = change.After.EndTime
		winEnd = change.Before.EndTime
		if winEnd <= winStart {
			return
		}
	default:
		return
	}

	touched := applyCutWindow(secondary, winStart, winEnd)
	for _, clip := range secondary.Clips {
		if _, done := touched[clip.ID]; done {
			continue
		}
		if clip.StartTime >= winEnd {
			clip.StartTime += change.TimelineDelta
			clip.EndTime += change.TimelineDelta
		}
	}
	secondary.SortClips()
}

// syncDelete removes the deleted clip's window from the webcam track, then
// ripples everything after it by the timeline delta.
func syncDelete(secondary *timeline.Track, change *timeline.ClipChange) {
	if change.Before == nil {
		return
	}
	delStart := change.Before.StartTime
	delEnd := change.Before.EndTime
	if delEnd <= delStart {
		return
	}

	touched := applyCutWindow(secondary, delStart, delEnd)
	for _, clip := range secondary.Clips {
		if _, done := touched[clip.ID]; done {
			continue
		}
		if clip.StartTime >= delEnd {
			clip.StartTime += change.TimelineDelta
			clip.EndTime += change.TimelineDelta
		}
	}
	secondary.SortClips()
}

// applyCutWindow resolves every webcam clip against a removed timeline
// window [winStart, winEnd): clips fully inside are deleted, clips spanning
// or ending inside are trimmed to the window start, and clips starting
// inside keep only their content past the window, repositioned at the
// window start. Returns the ids the pass mutated.
func applyCutWindow(secondary *timeline.Track, winStart, winEnd float64) map[string]struct{} {
	touched := make(map[string]struct{})
	var removed []string

	for _, clip := range secondary.Clips {
		switch {
		case clip.EndTime <= winStart || clip.StartTime >= winEnd:
			// No overlap.
		case clip.StartTime >= winStart && clip.EndTime <= winEnd:
			removed = append(removed, clip.ID)
		case clip.StartTime < winStart && clip.EndTime > winEnd:
			clip.SourceOut = timeline.TimelineToSource(winStart, clip)
			clip.EndTime = winStart
			touched[clip.ID] = struct{}{}
		case clip.StartTime < winStart:
			// Ends inside the window.
			clip.SourceOut = timeline.TimelineToSource(winStart, clip)
			clip.EndTime = winStart
			touched[clip.ID] = struct{}{}
		default:
			// Starts inside, ends past the window: keep the tail content and
			// land it at the window start.
			tailDur := clip.EndTime - winEnd
			clip.SourceIn = timeline.TimelineToSource(winEnd, clip)
			clip.StartTime = winStart
			clip.EndTime = winStart + tailDur
			touched[clip.ID] = struct{}{}
		}
	}
	for _, id := range removed {
		secondary.RemoveClip(id)
	}
	return touched
}

// syncRateChange repositions webcam clips proportionally inside the primary
// clip's original extent and shifts the ones after it.
func syncRateChange(secondary *timeline.Track, change *timeline.ClipChange) {
	if change.Before == nil || change.After == nil {
		return
	}
	originalStart := change.Before.StartTime
	originalEnd := change.Before.EndTime
	originalDur := originalEnd - originalStart
	if originalDur <= 0 {
		return
	}
	newDur := change.After.EndTime - change.After.StartTime

	for _, clip := range secondary.Clips {
		switch {
		case clip.StartTime >= originalEnd:
			if math.Abs(change.TimelineDelta) >= timeline.TimeTolerance {
				clip.StartTime += change.TimelineDelta
				clip.EndTime += change.TimelineDelta
			}
		case clip.StartTime >= originalStart:
			dur := clip.Duration()
			newStart := originalStart + ((clip.StartTime-originalStart)/originalDur)*newDur
			clip.StartTime = newStart
			clip.EndTime = newStart + dur
		}
	}
	secondary.SortClips()
}

// syncSpeedUp re-splits webcam clips overlapping the speed-changed region
// into one sub-clip per overlapped primary segment, compounding the speed
// multiplier into each sub-clip's playback rate.
func syncSpeedUp(secondary *timeline.Track, change *timeline.ClipChange) {
	mapping := change.Segments
	if mapping == nil || len(mapping.Segments) == 0 {
		return
	}
	delta := mapping.TimelineDelta()

	var rebuilt []*timeline.Clip
	for _, clip := range secondary.Clips {
		switch {
		case clip.EndTime <= mapping.OriginalStart:
			rebuilt = append(rebuilt, clip)
		case clip.StartTime >= mapping.OriginalEnd:
			clip.StartTime += delta
			clip.EndTime += delta
			rebuilt = append(rebuilt, clip)
		default:
			rebuilt = append(rebuilt, resplitClip(clip, mapping)...)
		}
	}
	secondary.Clips = rebuilt
	secondary.SortClips()
}

// resplitClip cuts one webcam clip along the mapping's segment boundaries.
func resplitClip(clip *timeline.Clip, mapping *timeline.SegmentMapping) []*timeline.Clip {
	var pieces []*timeline.Clip
	first := mapping.Segments[0].SourceStart

	// A clip head hanging before the region is untouched by the remap.
	if clip.StartTime < mapping.OriginalStart {
		pieces = append(pieces, &timeline.Clip{
			ID:           uuid.NewString(),
			RecordingID:  clip.RecordingID,
			StartTime:    clip.StartTime,
			EndTime:      mapping.OriginalStart,
			PlaybackRate: clip.PlaybackRate,
			SourceIn:     clip.SourceIn,
			SourceOut:    timeline.TimelineToSource(mapping.OriginalStart, clip),
		})
	}

	for _, seg := range mapping.Segments {
		segOrigStart := mapping.OriginalStart + (seg.SourceStart-first)/mapping.BaseRate
		segOrigEnd := mapping.OriginalStart + (seg.SourceEnd-first)/mapping.BaseRate

		ovStart := math.Max(clip.StartTime, segOrigStart)
		ovEnd := math.Min(clip.EndTime, segOrigEnd)
		if ovEnd-ovStart <= 0 {
			continue
		}

		pieces = append(pieces, &timeline.Clip{
			ID:           uuid.NewString(),
			RecordingID:  clip.RecordingID,
			StartTime:    mapping.MapInstant(ovStart),
			EndTime:      mapping.MapInstant(ovEnd),
			PlaybackRate: clip.PlaybackRate * seg.SpeedMultiplier,
			SourceIn:     timeline.TimelineToSource(ovStart, clip),
			SourceOut:    timeline.TimelineToSource(ovEnd, clip),
		})
	}

	// A clip tail hanging past the last segment keeps its own rate and
	// shifts with the trailing delta.
	_, lastOrigEnd := lastSegmentExtent(mapping)
	if clip.EndTime > lastOrigEnd {
		tailStart := math.Max(clip.StartTime, lastOrigEnd)
		pieces = append(pieces, &timeline.Clip{
			ID:           uuid.NewString(),
			RecordingID:  clip.RecordingID,
			StartTime:    mapping.MapInstant(tailStart),
			EndTime:      mapping.MapInstant(clip.EndTime),
			PlaybackRate: clip.PlaybackRate,
			SourceIn:     timeline.TimelineToSource(tailStart, clip),
			SourceOut:    clip.SourceOut,
		})
	}
	if len(pieces) == 0 {
		return []*timeline.Clip{clip}
	}
	return pieces
}

func lastSegmentExtent(mapping *timeline.SegmentMapping) (start, end float64) {
	first := mapping.Segments[0].SourceStart
	last := mapping.Segments[len(mapping.Segments)-1]
	start = mapping.OriginalStart + (last.SourceStart-first)/mapping.BaseRate
	end = mapping.OriginalStart + (last.SourceEnd-first)/mapping.BaseRate
	return start, end
}

// syncSecondaryRateChange handles a rate change of a webcam clip itself:
// the other webcam clips after it shift to keep the track overlap-free.
func syncSecondaryRateChange(secondary *timeline.Track, change *timeline.ClipChange) {
	if change.Type != timeline.ChangeRate || change.Before == nil {
		return
	}
	if math.Abs(change.TimelineDelta) < timeline.TimeTolerance {
		return
	}
	boundary := change.Before.EndTime

	for _, clip := range secondary.Clips {
		if clip.ID == change.ClipID {
			continue
		}
		if clip.StartTime >= boundary {
			clip.StartTime += change.TimelineDelta
			clip.EndTime += change.TimelineDelta
		}
	}
	secondary.SortClips()
}

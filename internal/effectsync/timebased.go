package effectsync

import (
	"math"

	"montage/internal/effects"
	"montage/internal/project"
	"montage/internal/timeline"
)

// TimeBased queues the mutations that keep timeline-anchored effects
// positionally correct after the given edit.
func TimeBased(p *project.Project, change *timeline.ClipChange, batch *effects.MutationBatch) {
	if p == nil || change == nil || batch == nil {
		return
	}

	var affected []*effects.Effect
	for _, eff := range p.Effects.All() {
		if eff.Binding() == effects.BindingTimeBased {
			affected = append(affected, eff)
		}
	}
	if len(affected) == 0 {
		return
	}

	switch change.Type {
	case timeline.ChangeDelete:
		timeBasedDelete(affected, change, batch)
	case timeline.ChangeTrimStart:
		timeBasedTrimStart(affected, change, batch)
	case timeline.ChangeTrimEnd:
		timeBasedTrimEnd(affected, change, batch)
	case timeline.ChangeReorder, timeline.ChangeRate, timeline.ChangeUpdate:
		timeBasedShift(affected, change, batch)
	case timeline.ChangeSpeedUp:
		timeBasedSpeedUp(affected, change, batch)
	}
}

// timeBasedDelete handles the five overlap cases against the deleted clip's
// former range [delStart, delEnd).
func timeBasedDelete(affected []*effects.Effect, change *timeline.ClipChange, batch *effects.MutationBatch) {
	if change.Before == nil {
		return
	}
	delStart := change.Before.StartTime
	delEnd := change.Before.EndTime
	delDur := delEnd - delStart
	if delDur <= 0 {
		return
	}

	for _, eff := range affected {
		switch {
		case eff.EndTime <= delStart:
			// Entirely before the deleted range.
		case eff.StartTime >= delEnd:
			batch.Update(eff.ID, effects.RangePatch(eff.StartTime-delDur, eff.EndTime-delDur))
		case eff.StartTime >= delStart && eff.EndTime <= delEnd:
			batch.Remove(eff.ID)
		case eff.StartTime < delStart && eff.EndTime > delEnd:
			end := eff.EndTime - delDur
			batch.Update(eff.ID, effects.Patch{EndTime: &end})
		case eff.StartTime < delStart:
			// Ends inside the deleted range.
			end := delStart
			batch.Update(eff.ID, effects.Patch{EndTime: &end})
		default:
			// Starts inside, ends after: pull the start back to the cut and
			// drop the deleted span from the duration.
			batch.Update(eff.ID, effects.RangePatch(delStart, eff.EndTime-delDur))
		}
	}
}

// timeBasedTrimStart shifts retained-content effects back by the trimmed
// prefix and truncates effects reaching into it.
func timeBasedTrimStart(affected []*effects.Effect, change *timeline.ClipChange, batch *effects.MutationBatch) {
	if change.Before == nil || change.After == nil || change.After.PlaybackRate <= 0 {
		return
	}
	contentShift := (change.After.SourceIn - change.Before.SourceIn) / change.After.PlaybackRate
	if contentShift <= 0 {
		return
	}
	originalStart := change.Before.StartTime
	originalEnd := change.Before.EndTime
	prefixEnd := originalStart + contentShift

	for _, eff := range affected {
		switch {
		case eff.EndTime <= originalStart:
			// Entirely before the clip.
		case eff.StartTime >= originalEnd:
			batch.Update(eff.ID, effects.RangePatch(eff.StartTime+change.TimelineDelta, eff.EndTime+change.TimelineDelta))
		case eff.StartTime >= originalStart && eff.StartTime < prefixEnd:
			if eff.EndTime <= prefixEnd {
				batch.Remove(eff.ID)
				continue
			}
			batch.Update(eff.ID, effects.RangePatch(change.After.StartTime, eff.EndTime-contentShift))
		case eff.StartTime >= prefixEnd:
			batch.Update(eff.ID, effects.RangePatch(eff.StartTime-contentShift, eff.EndTime-contentShift))
		}
	}
}

// timeBasedTrimEnd truncates effects straddling the new clip end, removes
// effects stranded in the trimmed tail, and ripples later effects.
func timeBasedTrimEnd(affected []*effects.Effect, change *timeline.ClipChange, batch *effects.MutationBatch) {
	if change.Before == nil || change.After == nil {
		return
	}
	newEnd := change.After.EndTime
	oldEnd := change.Before.EndTime
	if newEnd >= oldEnd {
		return
	}

	for _, eff := range affected {
		switch {
		case eff.StartTime >= oldEnd:
			batch.Update(eff.ID, effects.RangePatch(eff.StartTime+change.TimelineDelta, eff.EndTime+change.TimelineDelta))
		case eff.StartTime >= newEnd:
			batch.Remove(eff.ID)
		case eff.EndTime > newEnd:
			end := newEnd
			batch.Update(eff.ID, effects.Patch{EndTime: &end})
		}
	}
}

// timeBasedShift moves everything past the clip's original end as a rigid
// block when the edit changed overall timeline duration.
func timeBasedShift(affected []*effects.Effect, change *timeline.ClipChange, batch *effects.MutationBatch) {
	if change.Before == nil {
		return
	}
	if math.Abs(change.TimelineDelta) < timeline.TimeTolerance {
		return
	}
	boundary := change.Before.EndTime

	for _, eff := range affected {
		if eff.StartTime >= boundary {
			batch.Update(eff.ID, effects.RangePatch(eff.StartTime+change.TimelineDelta, eff.EndTime+change.TimelineDelta))
		}
	}
}

// timeBasedSpeedUp remaps effects overlapping the speed-changed region and
// shifts later effects by the region's duration change.
func timeBasedSpeedUp(affected []*effects.Effect, change *timeline.ClipChange, batch *effects.MutationBatch) {
	mapping := change.Segments
	if mapping == nil || len(mapping.Segments) == 0 {
		return
	}
	delta := mapping.TimelineDelta()

	for _, eff := range affected {
		switch {
		case eff.EndTime <= mapping.OriginalStart:
			// Entirely before the region.
		case eff.StartTime >= mapping.OriginalEnd:
			batch.Update(eff.ID, effects.RangePatch(eff.StartTime+delta, eff.EndTime+delta))
		default:
			batch.Update(eff.ID, effects.RangePatch(mapping.MapInstant(eff.StartTime), mapping.MapInstant(eff.EndTime)))
		}
	}
}

package keystroke

import (
	"montage/internal/effects"
	"montage/internal/project"
	"montage/internal/timeline"
)

// Rebuild regenerates every managed keystroke effect from current project
// state and commits the result through one mutation batch.
//
// Enabled toggles survive the rebuild for every block whose structured id
// reappears; blocks appearing for the first time default to enabled. The
// singleton style effect is created on the first rebuild and its payload is
// preserved afterwards.
func Rebuild(p *project.Project) {
	if p == nil || p.Effects == nil {
		return
	}
	if !p.MetadataLoaded() {
		return
	}

	batch := effects.NewBatch()

	enabledByID := make(map[string]bool)
	for _, eff := range p.Effects.All() {
		if eff.Type == effects.TypeKeystroke && effects.IsManagedKeystrokeID(eff.ID) {
			enabledByID[eff.ID] = eff.Enabled
			batch.Remove(eff.ID)
		}
	}

	ensureStyleEffect(p, batch)

	for _, rec := range p.Recordings {
		if !rec.MetadataLoaded || len(rec.KeyboardEvents) == 0 {
			continue
		}
		rebuildRecording(p, rec, enabledByID, batch)
	}

	p.Effects.ApplyBatch(batch)
}

// ensureStyleEffect keeps exactly one full-timeline style effect alive,
// creating it with defaults only when absent.
func ensureStyleEffect(p *project.Project, batch *effects.MutationBatch) {
	duration := p.Duration()
	existing := p.Effects.ByID(effects.KeystrokeStyleID)
	if existing == nil {
		batch.Add(&effects.Effect{
			ID:        effects.KeystrokeStyleID,
			Type:      effects.TypeKeystrokeStyle,
			StartTime: 0,
			EndTime:   duration,
			Enabled:   true,
			Data:      effects.DefaultKeystrokeStyle(),
		})
		return
	}
	if existing.StartTime != 0 || existing.EndTime != duration {
		batch.Update(existing.ID, effects.RangePatch(0, duration))
	}
}

func rebuildRecording(p *project.Project, rec *project.Recording, enabledByID map[string]bool, batch *effects.MutationBatch) {
	clusters := ClusterEvents(rec.KeyboardEvents)
	clips := p.ClipsOfRecording(rec.ID)
	if len(clusters) == 0 || len(clips) == 0 {
		return
	}

	for clusterIdx, cluster := range clusters {
		// A cluster surfaces once per clip that shows its source range; a
		// recording split across several clips yields several ranges.
		var ranges []timeRange
		for _, clip := range clips {
			start := timeline.SourceToTimeline(cluster.Start, clip)
			end := timeline.SourceToTimeline(cluster.End, clip)
			if start < clip.StartTime {
				start = clip.StartTime
			}
			if end > clip.EndTime {
				end = clip.EndTime
			}
			if end-start < MinDuration {
				continue
			}
			ranges = append(ranges, timeRange{start: start, end: end})
		}

		for rangeIdx, r := range mergeRanges(ranges) {
			id := effects.ManagedKeystrokeID(rec.ID, clusterIdx, rangeIdx)
			enabled, seen := enabledByID[id]
			if !seen {
				enabled = true
			}
			batch.Add(&effects.Effect{
				ID:        id,
				Type:      effects.TypeKeystroke,
				StartTime: r.start,
				EndTime:   r.end,
				Enabled:   enabled,
				Data: &effects.KeystrokeData{
					RecordingID:  rec.ID,
					ClusterIndex: clusterIdx,
					RangeIndex:   rangeIdx,
					Keys:         cluster.Keys,
				},
			})
		}
	}
}

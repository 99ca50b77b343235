package effectsync

import (
	"github.com/google/uuid"

	"montage/internal/effects"
	"montage/internal/project"
	"montage/internal/timeline"
)

// ClipBound queues the mutations that keep clip-anchored effects glued to
// their clip after the given edit.
func ClipBound(p *project.Project, change *timeline.ClipChange, batch *effects.MutationBatch) {
	if p == nil || change == nil || batch == nil {
		return
	}

	for _, eff := range p.Effects.All() {
		if eff.Binding() != effects.BindingClipBound {
			continue
		}
		if skipForTrackType(p, eff, change) {
			continue
		}

		switch {
		case change.Type == timeline.ChangeDelete && eff.ClipID == change.ClipID:
			// Orphan cleanup owns removal after the clip is gone.
		case change.Type == timeline.ChangeSplit && eff.ClipID == change.ClipID && len(change.NewClipIDs) >= 2:
			rebindAcrossSplit(p, eff, change.NewClipIDs, batch)
		default:
			mirrorClipRange(p, eff, batch)
		}
	}
}

// skipForTrackType reports whether the effect's bound clip sits on a
// different track type than the one the change originated on.
func skipForTrackType(p *project.Project, eff *effects.Effect, change *timeline.ClipChange) bool {
	if change.SourceTrackType == "" {
		return false
	}
	track := p.TrackOfClip(eff.ClipID)
	return track != nil && track.Type != change.SourceTrackType
}

// rebindAcrossSplit moves the effect onto the first clip the split produced
// and adds a deep-cloned copy for every further piece.
func rebindAcrossSplit(p *project.Project, eff *effects.Effect, newClipIDs []string, batch *effects.MutationBatch) {
	first := p.ClipByID(newClipIDs[0])
	if first == nil {
		return
	}

	patch := effects.RangePatch(first.StartTime, first.EndTime)
	patch.ClipID = &newClipIDs[0]
	batch.Update(eff.ID, patch)

	for _, id := range newClipIDs[1:] {
		clip := p.ClipByID(id)
		if clip == nil {
			continue
		}
		clone := eff.Clone()
		clone.ID = uuid.NewString()
		clone.ClipID = id
		clone.StartTime = clip.StartTime
		clone.EndTime = clip.EndTime
		batch.Add(clone)
	}
}

// mirrorClipRange realigns the effect with its clip's current range,
// suppressing no-op updates to keep the batch small.
func mirrorClipRange(p *project.Project, eff *effects.Effect, batch *effects.MutationBatch) {
	clip := p.ClipByID(eff.ClipID)
	if clip == nil {
		return
	}
	if eff.StartTime == clip.StartTime && eff.EndTime == clip.EndTime {
		return
	}
	batch.Update(eff.ID, effects.RangePatch(clip.StartTime, clip.EndTime))
}

package effectsync

import (
	"montage/internal/effects"
	"montage/internal/project"
)

// CleanupOrphans queues removal of every effect referencing a clip that no
// longer exists on any track. Global effects are exempt; they never bind to
// clips in practice but a stray clip id must not delete them.
func CleanupOrphans(p *project.Project, batch *effects.MutationBatch) {
	if p == nil || batch == nil {
		return
	}

	clipIDs := p.AllClipIDs()
	for _, eff := range p.Effects.All() {
		if eff.ClipID == "" {
			continue
		}
		if eff.Type.Binding() == effects.BindingGlobal {
			continue
		}
		if _, ok := clipIDs[eff.ClipID]; !ok {
			batch.Remove(eff.ID)
		}
	}
}

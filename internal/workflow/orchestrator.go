package workflow

import (
	"log/slog"

	"montage/internal/effects"
	"montage/internal/effectsync"
	"montage/internal/keystroke"
	"montage/internal/logging"
	"montage/internal/project"
	"montage/internal/timeline"
	"montage/internal/tracksync"
)

// InvalidationListener is notified after every committed sync pass so
// downstream caches (rendering, thumbnails) can discard stale state.
type InvalidationListener interface {
	Invalidate(projectID string)
}

// InvalidationFunc adapts a plain function to InvalidationListener.
type InvalidationFunc func(projectID string)

func (f InvalidationFunc) Invalidate(projectID string) { f(projectID) }

// Orchestrator runs the full synchronization pass for one clip change.
type Orchestrator struct {
	logger    *slog.Logger
	listeners []InvalidationListener
}

// NewOrchestrator constructs an orchestrator. A nil logger falls back to a
// no-op logger.
func NewOrchestrator(logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Orchestrator{logger: logger}
}

// AddListener registers a cache-invalidation listener.
func (o *Orchestrator) AddListener(l InvalidationListener) {
	if l != nil {
		o.listeners = append(o.listeners, l)
	}
}

// Commit synchronizes the project against one clip change. The steps are
// strictly ordered: keystroke regeneration and orphan cleanup must observe
// the post-batch effect list, and the webcam track must be consistent before
// the batch lands.
func (o *Orchestrator) Commit(p *project.Project, change *timeline.ClipChange) {
	if p == nil || p.Effects == nil || change == nil {
		return
	}

	batch := effects.NewBatch()
	effectsync.ClipBound(p, change, batch)
	effectsync.TimeBased(p, change, batch)

	tracksync.Sync(p, change)

	p.Effects.ApplyBatch(batch)

	keystroke.Rebuild(p)

	cleanup := effects.NewBatch()
	effectsync.CleanupOrphans(p, cleanup)
	p.Effects.ApplyBatch(cleanup)

	o.logger.Debug("sync pass committed",
		"project", p.ID,
		"change", string(change.Type),
		"clip", change.ClipID,
		"mutations", batch.Size(),
		"orphans", cleanup.Size(),
	)

	for _, l := range o.listeners {
		l.Invalidate(p.ID)
	}
}

package effects

// Patch holds the effect fields a sync service wants to change. Nil fields
// are left untouched when the patch is merged.
type Patch struct {
	StartTime *float64
	EndTime   *float64
	ClipID    *string
	Enabled   *bool
	Data      Data
}

// RangePatch builds a patch that moves an effect to [start, end).
func RangePatch(start, end float64) Patch {
	return Patch{StartTime: &start, EndTime: &end}
}

// MutationBatch collects the effect removals, updates, and additions of one
// sync pass. Services populate the batch; the store applies it exactly once.
type MutationBatch struct {
	removals  map[string]struct{}
	updates   map[string]Patch
	additions []*Effect
}

// NewBatch returns an empty mutation batch.
func NewBatch() *MutationBatch {
	return &MutationBatch{
		removals: make(map[string]struct{}),
		updates:  make(map[string]Patch),
	}
}

// Remove marks the effect id for removal. Removal wins over any queued update.
func (b *MutationBatch) Remove(id string) {
	b.removals[id] = struct{}{}
}

// Update queues a patch for the effect id, merging over any earlier patch for
// the same effect.
func (b *MutationBatch) Update(id string, patch Patch) {
	existing, ok := b.updates[id]
	if !ok {
		b.updates[id] = patch
		return
	}
	existing.merge(patch)
	b.updates[id] = existing
}

// Add queues a new effect for appending.
func (b *MutationBatch) Add(e *Effect) {
	b.additions = append(b.additions, e)
}

// Empty reports whether the batch holds no mutations.
func (b *MutationBatch) Empty() bool {
	return len(b.removals) == 0 && len(b.updates) == 0 && len(b.additions) == 0
}

// Size returns the total number of queued mutations.
func (b *MutationBatch) Size() int {
	return len(b.removals) + len(b.updates) + len(b.additions)
}

func (p *Patch) merge(next Patch) {
	if next.StartTime != nil {
		p.StartTime = next.StartTime
	}
	if next.EndTime != nil {
		p.EndTime = next.EndTime
	}
	if next.ClipID != nil {
		p.ClipID = next.ClipID
	}
	if next.Enabled != nil {
		p.Enabled = next.Enabled
	}
	if next.Data != nil {
		p.Data = next.Data
	}
}

func (p Patch) applyTo(e *Effect) {
	if p.StartTime != nil {
		e.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		e.EndTime = *p.EndTime
	}
	if p.ClipID != nil {
		e.ClipID = *p.ClipID
	}
	if p.Enabled != nil {
		e.Enabled = *p.Enabled
	}
	if p.Data != nil {
		e.Data = p.Data
	}
}

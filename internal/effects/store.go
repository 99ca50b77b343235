package effects

// Store owns a project's timeline effect list. Sync services never mutate the
// list directly; they queue mutations into a MutationBatch and the
// orchestrator commits it through ApplyBatch.
type Store struct {
	effects []*Effect
}

// NewStore returns a store seeded with the given effects.
func NewStore(initial ...*Effect) *Store {
	s := &Store{}
	s.effects = append(s.effects, initial...)
	return s
}

// All returns the live effect slice. Callers must treat it as read-only.
func (s *Store) All() []*Effect {
	return s.effects
}

// ByID returns the effect with the given id, or nil.
func (s *Store) ByID(id string) *Effect {
	for _, e := range s.effects {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// ByType returns all effects of the given type in list order.
func (s *Store) ByType(typ Type) []*Effect {
	var out []*Effect
	for _, e := range s.effects {
		if e.Type == typ {
			out = append(out, e)
		}
	}
	return out
}

// Add appends one effect.
func (s *Store) Add(e *Effect) {
	s.effects = append(s.effects, e)
}

// AddMany appends effects preserving order.
func (s *Store) AddMany(list []*Effect) {
	s.effects = append(s.effects, list...)
}

// Remove deletes the effect with the given id.
func (s *Store) Remove(id string) bool {
	for i, e := range s.effects {
		if e.ID == id {
			s.effects = append(s.effects[:i], s.effects[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveMany deletes every effect whose id is in ids.
func (s *Store) RemoveMany(ids []string) int {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	kept := s.effects[:0]
	removed := 0
	for _, e := range s.effects {
		if _, gone := drop[e.ID]; gone {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	s.effects = kept
	return removed
}

// Update merges a patch into the effect with the given id.
func (s *Store) Update(id string, patch Patch) bool {
	e := s.ByID(id)
	if e == nil {
		return false
	}
	patch.applyTo(e)
	return true
}

// ApplyBatch commits a mutation batch as one atomic pass over the list:
// removals drop effects even when an update is queued for the same id,
// surviving effects have their patches shallow-merged, and additions are
// appended in order.
func (s *Store) ApplyBatch(batch *MutationBatch) {
	if batch == nil || batch.Empty() {
		return
	}

	kept := s.effects[:0]
	for _, e := range s.effects {
		if _, gone := batch.removals[e.ID]; gone {
			continue
		}
		if patch, ok := batch.updates[e.ID]; ok {
			patch.applyTo(e)
		}
		kept = append(kept, e)
	}
	s.effects = append(kept, batch.additions...)
}

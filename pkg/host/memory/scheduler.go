package memory

import (
	"slices"
	"sync"
)

// scheduler tracks instances with pending state updates.
type scheduler struct {
	dirty    []*instance
	dirtySet map[*instance]bool
	mu       sync.Mutex

	// onNeedsFrame is called when an instance is newly scheduled, so an
	// embedder driving frames on demand knows to call Flush.
	onNeedsFrame func()
}

// schedule marks inst as needing a re-render.
func (s *scheduler) schedule(inst *instance) {
	added := func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.dirtySet[inst] {
			return false
		}
		if s.dirtySet == nil {
			s.dirtySet = make(map[*instance]bool)
		}
		s.dirtySet[inst] = true
		s.dirty = append(s.dirty, inst)
		return true
	}()

	if added && s.onNeedsFrame != nil {
		s.onNeedsFrame()
	}
}

// pending reports whether any instance is waiting for a re-render.
func (s *scheduler) pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.dirty) > 0
}

// drain removes and returns the scheduled instances, shallowest first so a
// parent re-render reaches its children before their own entries do.
func (s *scheduler) drain() []*instance {
	s.mu.Lock()
	defer s.mu.Unlock()
	slices.SortStableFunc(s.dirty, func(a, b *instance) int {
		return a.depth - b.depth
	})
	dirty := s.dirty
	s.dirty = nil
	clear(s.dirtySet)
	return dirty
}

package catalog

import (
	"context"
	"sync"
	"sync/atomic"
)

// Loader fetches the full variant list from the source of truth. The store
// rebuilds its index from whatever the loader returns.
type Loader func(ctx context.Context) ([]Variant, error)

// Store owns the current catalog index. All readers share one immutable
// snapshot; Rebuild and Reload swap it wholesale under the lock. The store
// replaces the module-level reactive state of the original client with an
// explicit object whose rebuild timing is a method call.
type Store struct {
	mu       sync.RWMutex
	idx      *Index
	gen      uint64
	inFlight atomic.Bool
	loader   Loader
}

// NewStore returns a store holding an empty index. The loader may be nil if
// only direct Rebuild calls are used.
func NewStore(loader Loader) *Store {
	return &Store{idx: Build(nil), loader: loader}
}

// Index returns the current snapshot. Never nil.
func (s *Store) Index() *Index {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.idx
}

// Rebuild replaces the index from an already-fetched variant list. Bumping
// the generation invalidates any load still in flight, so a slow stale fetch
// cannot overwrite newer data.
func (s *Store) Rebuild(variants []Variant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.idx = Build(variants)
}

// Reload fetches via the loader and rebuilds. A reload already in progress
// makes concurrent calls return immediately without queueing; callers are
// not told their request was coalesced. The result only applies if no newer
// rebuild started while the fetch was running.
func (s *Store) Reload(ctx context.Context) error {
	if s.loader == nil {
		return nil
	}
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil
	}
	defer s.inFlight.Store(false)

	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	variants, err := s.loader(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return nil
	}
	s.idx = Build(variants)
	return nil
}

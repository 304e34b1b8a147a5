package tilemap

import (
	"errors"
	"fmt"
	"sync"
)

// MapID is an opaque handle identifying one map in a registry. Handles are
// issued monotonically and never reused, even after the map is retired.
type MapID int

// ErrCycle is returned by AddSubMap when the requested link would make the
// sub-map graph cyclic.
var ErrCycle = errors.New("sub-map link would form a cycle")

// Registry owns every map it issues. Each entry carries its own
// reader/writer lock, so operations on different ids never block each
// other. All access goes through Read or Write; using an id the registry
// never issued, or one that has been retired, is a programming error and
// panics rather than returning a recoverable error.
type Registry struct {
	mu      sync.RWMutex
	entries []*registryEntry
}

type registryEntry struct {
	mu      sync.RWMutex
	m       Map
	retired bool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// NewSparseMap registers a fresh empty sparse map and returns its handle.
func NewSparseMap(r *Registry) MapID {
	return r.Add(func(id MapID) Map {
		return newSparseMap(r, id)
	})
}

// Add issues the next handle and registers the map that build returns for
// it. The entry stays locked until build finishes, so the handle is safe to
// share the moment Add returns. build must not re-enter the registry with
// its own id.
func (r *Registry) Add(build func(MapID) Map) MapID {
	r.mu.Lock()
	id := MapID(len(r.entries))
	entry := &registryEntry{}
	entry.mu.Lock()
	r.entries = append(r.entries, entry)
	r.mu.Unlock()

	entry.m = build(id)
	entry.mu.Unlock()
	return id
}

// Read runs fn with a shared lock on the map. fn must not retain the map
// beyond the call.
func (r *Registry) Read(id MapID, fn func(Map)) {
	e := r.entry(id)
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.retired {
		panic(fmt.Sprintf("tilemap: map id %d is retired", id))
	}
	fn(e.m)
}

// Write runs fn with an exclusive lock on the map. fn must not retain the
// map beyond the call.
func (r *Registry) Write(id MapID, fn func(Map)) {
	e := r.entry(id)
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.retired {
		panic(fmt.Sprintf("tilemap: map id %d is retired", id))
	}
	fn(e.m)
}

// Retire invalidates the handle and releases the map. The id is never
// reused; any later Read, Write, or Retire with it panics. Links held by
// other maps that still name this id become stale, and following one
// panics the same way.
func (r *Registry) Retire(id MapID) {
	e := r.entry(id)
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.retired {
		panic(fmt.Sprintf("tilemap: map id %d is retired", id))
	}
	e.retired = true
	e.m = nil
}

// Clone deep-copies the map behind id into a fresh entry and returns the
// new handle.
func (r *Registry) Clone(id MapID) MapID {
	var clone MapID
	r.Read(id, func(m Map) {
		clone = m.Clone()
	})
	return clone
}

// Live reports whether the handle is still usable. Unlike Read, it treats
// retirement as an answer rather than a fault.
func (r *Registry) Live(id MapID) bool {
	e := r.entry(id)
	e.mu.RLock()
	defer e.mu.RUnlock()
	return !e.retired
}

// Len returns the number of handles ever issued, retired ones included.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

func (r *Registry) entry(id MapID) *registryEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if id < 0 || int(id) >= len(r.entries) {
		panic(fmt.Sprintf("tilemap: unknown map id %d", id))
	}
	return r.entries[id]
}

// checkAcyclic walks the link graph from start and reports ErrCycle if it
// can reach parent. Nodes are compared against parent before they are
// locked, so the walk never touches a lock the caller already holds.
func (r *Registry) checkAcyclic(start, parent MapID) error {
	if start == parent {
		return ErrCycle
	}
	seen := map[MapID]bool{start: true}
	stack := []MapID{start}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		var links []SubMapLink
		r.Read(id, func(m Map) {
			links = m.SubMaps()
		})
		for _, link := range links {
			if link.Target == parent {
				return ErrCycle
			}
			if !seen[link.Target] {
				seen[link.Target] = true
				stack = append(stack, link.Target)
			}
		}
	}
	return nil
}

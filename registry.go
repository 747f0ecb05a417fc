package fireworks

import (
	"sort"
	"sync"
)

// maxPooled caps the recycled particles kept per kind.
const maxPooled = 4096

// Registry is the ordered collection of live particles. It owns every
// particle it holds; callers must not keep a particle across passes.
//
// All methods are safe for concurrent use. A pass (BeginPass ... EndPass)
// gives the engine a stable index range: particles added while a pass is
// open are parked in a pending list and merged in by EndPass, after the
// stale entries have been removed.
type Registry struct {
	mu      sync.Mutex
	items   []*Particle
	pending []*Particle
	inPass  bool
	free    [kindCount][]*Particle
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{items: make([]*Particle, 0, 256)}
}

// Acquire returns a particle slot for kind, reusing a removed particle when
// one is available. The caller initializes it and passes it to Add.
func (r *Registry) Acquire(kind Kind) *Particle {
	r.mu.Lock()
	defer r.mu.Unlock()
	if kind >= kindCount {
		return &Particle{}
	}
	free := r.free[kind]
	if n := len(free); n > 0 {
		p := free[n-1]
		free[n-1] = nil
		r.free[kind] = free[:n-1]
		return p
	}
	return &Particle{}
}

// Add appends p. During a pass it is parked until EndPass.
func (r *Registry) Add(p *Particle) {
	if p == nil {
		return
	}
	r.mu.Lock()
	if r.inPass {
		r.pending = append(r.pending, p)
	} else {
		r.items = append(r.items, p)
	}
	r.mu.Unlock()
}

// Len returns the number of live particles, excluding pending ones.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// Pending returns the number of particles waiting for the current pass to end.
func (r *Registry) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

// At returns the particle at index i, or nil if i is out of range.
func (r *Registry) At(i int) *Particle {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i < 0 || i >= len(r.items) {
		return nil
	}
	return r.items[i]
}

// RemoveAt removes the particle at index i, shifting later entries down.
// An out-of-range index is a no-op.
func (r *Registry) RemoveAt(i int) {
	r.mu.Lock()
	// An open pass may still hold the particle, so only recycle outside one.
	r.removeLocked(i, !r.inPass)
	r.mu.Unlock()
}

func (r *Registry) removeLocked(i int, recycle bool) bool {
	if i < 0 || i >= len(r.items) {
		return false
	}
	p := r.items[i]
	copy(r.items[i:], r.items[i+1:])
	r.items[len(r.items)-1] = nil
	r.items = r.items[:len(r.items)-1]
	if recycle {
		r.release(p)
	}
	return true
}

func (r *Registry) release(p *Particle) {
	if p == nil || p.kind >= kindCount {
		return
	}
	if len(r.free[p.kind]) < maxPooled {
		p.env = nil
		r.free[p.kind] = append(r.free[p.kind], p)
	}
}

// Clear drops every live and pending particle. Cleared particles are not
// recycled, since a pass in flight may still be reading them.
func (r *Registry) Clear() {
	r.mu.Lock()
	clear(r.items)
	r.items = r.items[:0]
	clear(r.pending)
	r.pending = r.pending[:0]
	r.mu.Unlock()
}

// BeginPass opens a pass and returns the number of particles it covers.
func (r *Registry) BeginPass() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inPass = true
	return len(r.items)
}

// EndPass removes the stale indices in descending order, so earlier indices
// stay valid while later ones go, then merges the pending particles and
// closes the pass. It reports how many particles were removed and merged.
// stale is sorted in place; duplicate and out-of-range indices are ignored.
func (r *Registry) EndPass(stale []int) (removed, merged int) {
	sort.Sort(sort.Reverse(sort.IntSlice(stale)))

	r.mu.Lock()
	defer r.mu.Unlock()
	last := -1
	for _, i := range stale {
		if i == last {
			continue
		}
		last = i
		if r.removeLocked(i, true) {
			removed++
		}
	}
	merged = len(r.pending)
	r.items = append(r.items, r.pending...)
	clear(r.pending)
	r.pending = r.pending[:0]
	r.inPass = false
	return removed, merged
}

// Snapshot appends the live particles to dst and returns it.
func (r *Registry) Snapshot(dst []*Particle) []*Particle {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append(dst, r.items...)
}

// Counts returns the number of live particles of each kind.
func (r *Registry) Counts() (rockets, sparks, trails int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.items {
		switch p.kind {
		case KindRocket:
			rockets++
		case KindSpark:
			sparks++
		case KindTrail:
			trails++
		}
	}
	return rockets, sparks, trails
}

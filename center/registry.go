package center

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrNotFound is returned when a center id does not exist in the
// registry.
var ErrNotFound = errors.New("center not found")

// Registry owns the set of centers and allocates their ids. Ids start
// at 1 and increase monotonically; centers are never removed for the
// lifetime of the process.
type Registry struct {
	mu      sync.RWMutex
	centers map[int]*Center
	nextID  int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		centers: make(map[int]*Center),
		nextID:  1,
	}
}

// Add creates a center with a fresh id, zero load, and the up flag set.
// Capacity is stored as given; a zero or negative capacity is a
// degenerate value that downstream predicted-wait logic treats as an
// infinite wait rather than an error.
func (r *Registry) Add(name string, capacity int) *Center {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := newCenter(r.nextID, name, capacity)
	r.centers[c.ID] = c
	r.nextID++
	return c
}

// Get returns the center with the given id.
func (r *Registry) Get(id int) (*Center, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.centers[id]
	if !ok {
		return nil, fmt.Errorf("center %d: %w", id, ErrNotFound)
	}
	return c, nil
}

// List returns all centers in ascending id order. Deterministic
// iteration order is what makes routing tie-breaks reproducible.
func (r *Registry) List() []*Center {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Center, 0, len(r.centers))
	for _, c := range r.centers {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of registered centers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.centers)
}

package center

import (
	"math"
	"sync"
)

// Center is a single clinic: a routable resource with a fixed parallel
// capacity and a mutable accumulated load. The load and the up flag are
// shared between the router and the decay engine, so every mutation
// goes through the center's own mutex; centers never share a lock, and
// no operation ever holds two center locks at once.
type Center struct {
	ID       int
	Name     string
	Capacity int

	mu   sync.Mutex
	load float64
	up   bool
}

// newCenter is called by the registry, which owns id allocation.
func newCenter(id int, name string, capacity int) *Center {
	return &Center{
		ID:       id,
		Name:     name,
		Capacity: capacity,
		up:       true,
	}
}

// CurrentLoad returns a snapshot of the center's accumulated load. The
// value may be stale by the time the caller acts on it; that is fine
// for ranking candidates, which tolerates slightly stale reads.
func (c *Center) CurrentLoad() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load
}

// IsUp reports whether the center is accepting appointments.
func (c *Center) IsUp() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up
}

// SetUp marks the center up or down.
func (c *Center) SetUp(up bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.up = up
}

// AddLoad adds work to the center and returns the load after the
// addition, so the caller can report a figure consistent with its own
// update without re-reading under a second lock acquisition.
func (c *Center) AddLoad(work float64) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.load += work
	return c.load
}

// Drain removes up to amount work from the center, flooring at zero,
// and returns the remaining load.
func (c *Center) Drain(amount float64) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.load = math.Max(0, c.load-amount)
	return c.load
}

// PredictedWait estimates the completion time for extra units of new
// work: (load + extra) / capacity. A down center or one with
// non-positive capacity predicts an infinite wait, which excludes it
// from any minimum-wait comparison.
func (c *Center) PredictedWait(extra float64) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.up || c.Capacity <= 0 {
		return math.Inf(1)
	}
	return (c.load + extra) / float64(c.Capacity)
}

// Snapshot is a consistent point-in-time copy of a center's state for
// reporting.
type Snapshot struct {
	ID          int
	Name        string
	Capacity    int
	CurrentLoad float64
	Up          bool
}

// Snapshot returns the center's current state under its lock.
func (c *Center) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		ID:          c.ID,
		Name:        c.Name,
		Capacity:    c.Capacity,
		CurrentLoad: c.load,
		Up:          c.up,
	}
}

package routing

import "sync"

// History is the append-only log of routing events. The log order is
// the order in which decisions committed; it is never compacted or
// truncated for the lifetime of the process.
type History struct {
	mu     sync.RWMutex
	events []Event
}

// NewHistory returns an empty history.
func NewHistory() *History {
	return &History{}
}

// Append adds one event to the end of the log.
func (h *History) Append(e Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
}

// Events returns a copy of the log, oldest first. Consumers that want
// most-recent-first display reverse it themselves.
func (h *History) Events() []Event {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]Event, len(h.events))
	copy(out, h.events)
	return out
}

// Len returns the number of recorded events.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.events)
}

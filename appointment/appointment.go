package appointment

import (
	"sync"
	"time"
)

// Urgency bounds. 1 is a routine visit, 10 is the most urgent case.
// Enforcing the range is the transport boundary's job; the factory
// assumes validated input.
const (
	MinUrgency = 1
	MaxUrgency = 10
)

// UrgentThreshold is the lowest urgency treated as a priority case by
// the router.
const UrgentThreshold = 6

// Request is one appointment request. A request is routed at most
// once; AssignedCenterID is set exactly when routing succeeds and is
// immutable afterwards.
type Request struct {
	ID               int
	Urgency          int
	ExpectedDuration float64
	ArrivalTime      time.Time

	AssignedCenterID int
	Assigned         bool
}

// Urgent reports whether the request qualifies for priority routing.
func (r *Request) Urgent() bool {
	return r.Urgency >= UrgentThreshold
}

// Factory mints requests with unique, monotonically increasing ids and
// process-clock arrival timestamps. It is stateless beyond the counter.
type Factory struct {
	mu     sync.Mutex
	nextID int
}

// NewFactory returns a factory whose first request will have id 1.
func NewFactory() *Factory {
	return &Factory{nextID: 1}
}

// New mints a request. Input validation (urgency range, positive
// duration) happens at the boundary before this is called.
func (f *Factory) New(urgency int, expectedDuration float64) *Request {
	f.mu.Lock()
	id := f.nextID
	f.nextID++
	f.mu.Unlock()

	return &Request{
		ID:               id,
		Urgency:          urgency,
		ExpectedDuration: expectedDuration,
		ArrivalTime:      time.Now(),
	}
}

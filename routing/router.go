package routing

import (
	"context"
	"errors"
	"time"

	"github.com/jto5108/Community-Clinic-Load-Manager/appointment"
	"github.com/jto5108/Community-Clinic-Load-Manager/center"
	"github.com/jto5108/Community-Clinic-Load-Manager/util/logger"
	"github.com/jto5108/Community-Clinic-Load-Manager/util/metrics"
	"github.com/jto5108/Community-Clinic-Load-Manager/util/tracing"
)

// ErrNoCandidates is returned when no up center with positive capacity
// exists. Nothing is mutated and no event is logged; the caller must
// submit a new attempt once an operator restores capacity.
var ErrNoCandidates = errors.New("no centers available")

// ErrAlreadyRouted is returned when a request that already has an
// assigned center is routed again. A request is routed at most once.
var ErrAlreadyRouted = errors.New("request already routed")

// Result is a successful routing decision. PredictedWait reflects the
// chosen center's load after this request's work was added.
type Result struct {
	Center        *center.Center
	PredictedWait float64
	Reason        Reason
}

// Router selects a center for each request and applies the load update.
//
// Candidate ranking reads center loads as unsynchronized snapshots: a
// concurrent decay tick or a competing route may change a load between
// the read and this router's locked write. That race only affects which
// center is picked, never the load accounting itself, because the
// increment always happens under the chosen center's lock.
type Router struct {
	registry *center.Registry
	history  *History
	log      *logger.Logger
}

// NewRouter returns a router over the given registry, appending its
// decisions to history.
func NewRouter(registry *center.Registry, history *History) *Router {
	return &Router{
		registry: registry,
		history:  history,
		log:      logger.NewLogger("Router"),
	}
}

// Route picks a center for req, adds the request's expected duration to
// that center's load, marks the request assigned, and appends exactly
// one routing event. On ErrNoCandidates no state changes at all.
func (rt *Router) Route(ctx context.Context, req *appointment.Request) (*Result, error) {
	_, span := tracing.StartSpan(ctx, "router.route")
	span.SetAttrInt("request.id", req.ID)
	span.SetAttrInt("request.urgency", req.Urgency)

	start := time.Now()
	res, err := rt.route(req)
	metrics.ObserveRoutingDuration(time.Since(start).Seconds())

	if err != nil {
		span.End(err)
		return nil, err
	}
	span.SetAttrInt("center.id", res.Center.ID)
	span.SetAttr("reason", string(res.Reason))
	span.End(nil)
	return res, nil
}

func (rt *Router) route(req *appointment.Request) (*Result, error) {
	if req.Assigned {
		return nil, ErrAlreadyRouted
	}

	candidates := rt.candidates()
	if len(candidates) == 0 {
		rt.log.Warnf("request %d: no up center with positive capacity", req.ID)
		metrics.RecordRoutingFailure()
		return nil, ErrNoCandidates
	}

	chosen, reason := choose(candidates, req)

	// Critical section: the only protected mutation. AddLoad returns
	// the post-increment load so the reported wait is consistent with
	// this router's own update.
	newLoad := chosen.AddLoad(req.ExpectedDuration)
	wait := newLoad / float64(chosen.Capacity)

	req.AssignedCenterID = chosen.ID
	req.Assigned = true

	rt.history.Append(Event{
		Timestamp: time.Now(),
		RequestID: req.ID,
		CenterID:  chosen.ID,
		Reason:    reason,
	})

	metrics.RecordRouted(string(reason))
	metrics.SetCenterLoad(chosen.ID, newLoad)

	rt.log.Debugf("request %d (urgency %d, duration %.1f) -> center %d (%s), wait %.2f",
		req.ID, req.Urgency, req.ExpectedDuration, chosen.ID, reason, wait)

	return &Result{Center: chosen, PredictedWait: wait, Reason: reason}, nil
}

// candidates returns all up centers with positive capacity in ascending
// id order, so tie-breaks deterministically favor the lowest id.
func (rt *Router) candidates() []*center.Center {
	all := rt.registry.List()
	out := all[:0]
	for _, c := range all {
		if c.IsUp() && c.Capacity > 0 {
			out = append(out, c)
		}
	}
	return out
}

// choose applies the tiered policy. Routine requests (urgency below the
// urgent threshold) take the shortest-job-first pick. Urgent requests
// compare that pick against the largest-capacity candidate and move to
// the larger facility when the two differ.
func choose(candidates []*center.Center, req *appointment.Request) (*center.Center, Reason) {
	sjf := shortestWait(candidates, req.ExpectedDuration)
	if !req.Urgent() {
		return sjf, ReasonLeastLoadedSJF
	}

	largest := largestCapacity(candidates)
	if largest != sjf {
		return largest, ReasonPriorityOverride
	}
	return sjf, ReasonLeastLoadedSJF
}

func shortestWait(candidates []*center.Center, extra float64) *center.Center {
	best := candidates[0]
	bestWait := best.PredictedWait(extra)
	for _, c := range candidates[1:] {
		if w := c.PredictedWait(extra); w < bestWait {
			best, bestWait = c, w
		}
	}
	return best
}

func largestCapacity(candidates []*center.Center) *center.Center {
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Capacity > best.Capacity {
			best = c
		}
	}
	return best
}

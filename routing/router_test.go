package routing

import (
	"context"
	"errors"
	"testing"

	"github.com/jto5108/Community-Clinic-Load-Manager/appointment"
	"github.com/jto5108/Community-Clinic-Load-Manager/center"
)

func newTestRouter() (*Router, *center.Registry, *History) {
	reg := center.NewRegistry()
	hist := NewHistory()
	return NewRouter(reg, hist), reg, hist
}

func TestRouteRoutinePicksShortestWait(t *testing.T) {
	rt, reg, hist := newTestRouter()
	a := reg.Add("A", 10)
	b := reg.Add("B", 5)

	req := &appointment.Request{ID: 1, Urgency: 3, ExpectedDuration: 20}
	res, err := rt.Route(context.Background(), req)
	if err != nil {
		t.Fatalf("Route failed: %v", err)
	}

	// Predicted waits: A = 20/10 = 2.0, B = 20/5 = 4.0.
	if res.Center != a {
		t.Fatalf("expected center A, got %d", res.Center.ID)
	}
	if res.Reason != ReasonLeastLoadedSJF {
		t.Errorf("expected reason %s, got %s", ReasonLeastLoadedSJF, res.Reason)
	}
	if res.PredictedWait != 2.0 {
		t.Errorf("expected predicted wait 2.0, got %f", res.PredictedWait)
	}
	if got := a.CurrentLoad(); got != 20 {
		t.Errorf("expected A load 20, got %f", got)
	}
	if got := b.CurrentLoad(); got != 0 {
		t.Errorf("expected B untouched, got load %f", got)
	}
	if hist.Len() != 1 {
		t.Errorf("expected exactly 1 event, got %d", hist.Len())
	}
}

func TestRouteTieBreaksOnLowestID(t *testing.T) {
	rt, reg, _ := newTestRouter()
	first := reg.Add("First", 10)
	reg.Add("Second", 10)
	reg.Add("Third", 10)

	req := &appointment.Request{ID: 1, Urgency: 2, ExpectedDuration: 10}
	res, err := rt.Route(context.Background(), req)
	if err != nil {
		t.Fatalf("Route failed: %v", err)
	}
	if res.Center != first {
		t.Errorf("tie should go to lowest id, got center %d", res.Center.ID)
	}
}

func TestRouteUrgentOverridesToLargestCapacity(t *testing.T) {
	rt, reg, hist := newTestRouter()
	small := reg.Add("Small", 10)
	large := reg.Add("Large", 50)
	large.AddLoad(40)

	// SJF waits: small = 5/10 = 0.5, large = 45/50 = 0.9, so SJF picks
	// small; the override sends the urgent case to the larger facility.
	req := &appointment.Request{ID: 1, Urgency: 9, ExpectedDuration: 5}
	res, err := rt.Route(context.Background(), req)
	if err != nil {
		t.Fatalf("Route failed: %v", err)
	}
	if res.Center != large {
		t.Fatalf("expected override to center %d, got %d", large.ID, res.Center.ID)
	}
	if res.Reason != ReasonPriorityOverride {
		t.Errorf("expected reason %s, got %s", ReasonPriorityOverride, res.Reason)
	}
	if got := small.CurrentLoad(); got != 0 {
		t.Errorf("SJF candidate must stay untouched, got load %f", got)
	}
	if got := large.CurrentLoad(); got != 45 {
		t.Errorf("expected large center load 45, got %f", got)
	}

	events := hist.Events()
	if len(events) != 1 || events[0].Reason != ReasonPriorityOverride {
		t.Errorf("expected one priority_override event, got %+v", events)
	}
}

func TestRouteUrgentNoOverrideWhenSJFIsLargest(t *testing.T) {
	rt, reg, _ := newTestRouter()
	reg.Add("Small", 5)
	large := reg.Add("Large", 50)

	// Both picks agree on the large center, so the decision stays SJF
	// and is logged as such.
	req := &appointment.Request{ID: 1, Urgency: 10, ExpectedDuration: 5}
	res, err := rt.Route(context.Background(), req)
	if err != nil {
		t.Fatalf("Route failed: %v", err)
	}
	if res.Center != large {
		t.Fatalf("expected center %d, got %d", large.ID, res.Center.ID)
	}
	if res.Reason != ReasonLeastLoadedSJF {
		t.Errorf("expected reason %s when no override was needed, got %s",
			ReasonLeastLoadedSJF, res.Reason)
	}
}

func TestRouteUrgentChoiceIsAlwaysExplainable(t *testing.T) {
	rt, reg, _ := newTestRouter()
	reg.Add("A", 10)
	reg.Add("B", 30)
	c := reg.Add("C", 30)
	c.AddLoad(100)

	for i := 0; i < 10; i++ {
		req := &appointment.Request{ID: i + 1, Urgency: 8, ExpectedDuration: 3}
		res, err := rt.Route(context.Background(), req)
		if err != nil {
			t.Fatalf("Route failed: %v", err)
		}
		switch res.Reason {
		case ReasonLeastLoadedSJF, ReasonPriorityOverride:
		default:
			t.Fatalf("unexplainable reason %q", res.Reason)
		}
	}
}

func TestRouteNoCandidates(t *testing.T) {
	cases := []struct {
		name  string
		setup func(reg *center.Registry)
	}{
		{"empty registry", func(reg *center.Registry) {}},
		{"all down", func(reg *center.Registry) {
			reg.Add("A", 10).SetUp(false)
			reg.Add("B", 5).SetUp(false)
		}},
		{"all degenerate capacity", func(reg *center.Registry) {
			reg.Add("A", 0)
			reg.Add("B", -1)
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rt, reg, hist := newTestRouter()
			tc.setup(reg)

			req := &appointment.Request{ID: 1, Urgency: 5, ExpectedDuration: 10}
			_, err := rt.Route(context.Background(), req)
			if !errors.Is(err, ErrNoCandidates) {
				t.Fatalf("expected ErrNoCandidates, got %v", err)
			}
			if hist.Len() != 0 {
				t.Errorf("failed route must not append events, got %d", hist.Len())
			}
			if req.Assigned {
				t.Error("failed route must not assign the request")
			}
			for _, c := range reg.List() {
				if c.CurrentLoad() != 0 {
					t.Errorf("failed route must not mutate loads, center %d has %f",
						c.ID, c.CurrentLoad())
				}
			}
		})
	}
}

func TestRouteSkipsDownCenters(t *testing.T) {
	rt, reg, _ := newTestRouter()
	big := reg.Add("Big", 100)
	big.SetUp(false)
	small := reg.Add("Small", 5)

	req := &appointment.Request{ID: 1, Urgency: 9, ExpectedDuration: 10}
	res, err := rt.Route(context.Background(), req)
	if err != nil {
		t.Fatalf("Route failed: %v", err)
	}
	if res.Center != small {
		t.Errorf("down center must not be a candidate, got %d", res.Center.ID)
	}
}

func TestRouteAssignsRequestOnce(t *testing.T) {
	rt, reg, _ := newTestRouter()
	c := reg.Add("A", 10)

	req := &appointment.Request{ID: 1, Urgency: 5, ExpectedDuration: 10}
	if _, err := rt.Route(context.Background(), req); err != nil {
		t.Fatalf("Route failed: %v", err)
	}
	if !req.Assigned || req.AssignedCenterID != c.ID {
		t.Fatalf("request not assigned to %d: %+v", c.ID, req)
	}

	if _, err := rt.Route(context.Background(), req); !errors.Is(err, ErrAlreadyRouted) {
		t.Fatalf("expected ErrAlreadyRouted on second route, got %v", err)
	}
	if got := c.CurrentLoad(); got != 10 {
		t.Errorf("second route must not add load again, got %f", got)
	}
}

func TestRouteEventFields(t *testing.T) {
	rt, reg, hist := newTestRouter()
	c := reg.Add("A", 10)

	req := &appointment.Request{ID: 42, Urgency: 4, ExpectedDuration: 10}
	if _, err := rt.Route(context.Background(), req); err != nil {
		t.Fatalf("Route failed: %v", err)
	}

	events := hist.Events()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	e := events[0]
	if e.RequestID != 42 || e.CenterID != c.ID || e.Reason != ReasonLeastLoadedSJF {
		t.Errorf("unexpected event %+v", e)
	}
	if e.Timestamp.IsZero() {
		t.Error("event timestamp not set")
	}
}

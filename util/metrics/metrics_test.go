package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordRouted(t *testing.T) {
	AppointmentsRoutedTotal.Reset()

	RecordRouted("least_loaded_sjf")
	RecordRouted("least_loaded_sjf")
	RecordRouted("priority_override")

	sjf := testutil.ToFloat64(AppointmentsRoutedTotal.WithLabelValues("least_loaded_sjf"))
	if sjf != 2.0 {
		t.Errorf("expected 2 least_loaded_sjf routes, got %f", sjf)
	}

	override := testutil.ToFloat64(AppointmentsRoutedTotal.WithLabelValues("priority_override"))
	if override != 1.0 {
		t.Errorf("expected 1 priority_override route, got %f", override)
	}
}

func TestSetCenterLoad(t *testing.T) {
	CenterLoad.Reset()

	SetCenterLoad(1, 12.5)
	SetCenterLoad(2, 0)
	SetCenterLoad(1, 7.0)

	if got := testutil.ToFloat64(CenterLoad.WithLabelValues("1")); got != 7.0 {
		t.Errorf("expected center 1 load 7.0, got %f", got)
	}
	if got := testutil.ToFloat64(CenterLoad.WithLabelValues("2")); got != 0.0 {
		t.Errorf("expected center 2 load 0.0, got %f", got)
	}
}

func TestSetCenterUp(t *testing.T) {
	CenterUp.Reset()

	SetCenterUp(3, true)
	if got := testutil.ToFloat64(CenterUp.WithLabelValues("3")); got != 1.0 {
		t.Errorf("expected up gauge 1.0, got %f", got)
	}

	SetCenterUp(3, false)
	if got := testutil.ToFloat64(CenterUp.WithLabelValues("3")); got != 0.0 {
		t.Errorf("expected up gauge 0.0 after marking down, got %f", got)
	}
}

func TestRecordDecayTick(t *testing.T) {
	before := testutil.ToFloat64(DecayTicksTotal)
	RecordDecayTick()
	RecordDecayTick()
	after := testutil.ToFloat64(DecayTicksTotal)
	if after-before != 2.0 {
		t.Errorf("expected decay tick counter to advance by 2, got %f", after-before)
	}
}

package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AppointmentsRoutedTotal counts successful routing decisions by reason code
	AppointmentsRoutedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clinic_appointments_routed_total",
			Help: "Total number of appointment requests routed to a center",
		},
		[]string{"reason"},
	)

	// RoutingFailuresTotal counts routing attempts that found no candidate center
	RoutingFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "clinic_routing_failures_total",
			Help: "Total number of routing attempts rejected because no center was available",
		},
	)

	// RoutingDuration tracks how long one routing decision takes in seconds
	RoutingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "clinic_routing_duration_seconds",
			Help:    "Duration of routing decisions in seconds",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1},
		},
	)

	// CenterLoad tracks the current accumulated load of each center
	CenterLoad = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "clinic_center_load",
			Help: "Current accumulated load (outstanding work units) per center",
		},
		[]string{"center"},
	)

	// CenterUp tracks the availability flag of each center (1 up, 0 down)
	CenterUp = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "clinic_center_up",
			Help: "Whether a center is accepting appointments (1) or marked down (0)",
		},
		[]string{"center"},
	)

	// DecayTicksTotal counts completed decay sweeps over the registry
	DecayTicksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "clinic_decay_ticks_total",
			Help: "Total number of load decay sweeps performed",
		},
	)
)

// RecordRouted increments the routed counter for a given reason code
func RecordRouted(reason string) {
	AppointmentsRoutedTotal.WithLabelValues(reason).Inc()
}

// RecordRoutingFailure increments the no-candidates failure counter
func RecordRoutingFailure() {
	RoutingFailuresTotal.Inc()
}

// ObserveRoutingDuration records the duration of one routing decision in seconds
func ObserveRoutingDuration(seconds float64) {
	RoutingDuration.Observe(seconds)
}

// SetCenterLoad sets the load gauge for a center
func SetCenterLoad(centerID int, load float64) {
	CenterLoad.WithLabelValues(strconv.Itoa(centerID)).Set(load)
}

// SetCenterUp sets the availability gauge for a center
func SetCenterUp(centerID int, up bool) {
	v := 0.0
	if up {
		v = 1.0
	}
	CenterUp.WithLabelValues(strconv.Itoa(centerID)).Set(v)
}

// RecordDecayTick increments the decay sweep counter
func RecordDecayTick() {
	DecayTicksTotal.Inc()
}

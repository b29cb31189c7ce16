package routing

import "time"

// Reason is the fixed vocabulary of routing rationale codes. Every
// decision is explainable as exactly one of these; the policy never
// blends them into a score.
type Reason string

const (
	// ReasonLeastLoadedSJF means the center with the minimum predicted
	// completion time was chosen.
	ReasonLeastLoadedSJF Reason = "least_loaded_sjf"

	// ReasonPriorityOverride means an urgent request bypassed the
	// shortest-job-first choice to reach the largest-capacity center.
	ReasonPriorityOverride Reason = "priority_override"
)

// Event is the immutable audit record of one routing decision.
type Event struct {
	Timestamp time.Time
	RequestID int
	CenterID  int
	Reason    Reason
}

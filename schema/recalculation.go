package schema

// RecalculationTrigger names the operation that made a church's aggregate
// stale.
type RecalculationTrigger string

const (
	RecalculationTriggerCreate RecalculationTrigger = "create"
	RecalculationTriggerUpdate RecalculationTrigger = "update"
	RecalculationTriggerDelete RecalculationTrigger = "delete"
)

// RecalculationPriority throttles administrative batch recalculation.
type RecalculationPriority string

const (
	RecalculationPriorityHigh   RecalculationPriority = "high"
	RecalculationPriorityNormal RecalculationPriority = "normal"
	RecalculationPriorityLow    RecalculationPriority = "low"
)

// RecalculationRequest is an ephemeral work item. It lives only in the
// scheduler's in-memory pending set until the debounce window elapses.
type RecalculationRequest struct {
	ChurchID string               `json:"churchId"`
	Trigger  RecalculationTrigger `json:"trigger"`
	VisitID  string               `json:"visitId,omitempty"`
	ActorID  string               `json:"actorId,omitempty"`
	// Reason is a human-readable line recorded in the activity log when the
	// recalculation executes.
	Reason string `json:"reason,omitempty"`
}

// BatchRecalculationError records one failed church in a batch run.
type BatchRecalculationError struct {
	ChurchID string `json:"churchId"`
	Error    string `json:"error"`
}

// BatchRecalculationResult summarizes an administrative batch run.
// Per-church failures are collected here and never halt the batch.
type BatchRecalculationResult struct {
	Succeeded int                       `json:"succeeded"`
	Failed    int                       `json:"failed"`
	Errors    []BatchRecalculationError `json:"errors,omitempty"`
}

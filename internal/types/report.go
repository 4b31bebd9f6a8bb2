package types

// ItemFailure records one item a stage could not process and why
type ItemFailure struct {
	Item   string `json:"item"`
	Reason string `json:"reason"`
}

// StageReport aggregates per-item outcomes of a pipeline stage. Stages
// favor completing as much as possible: individual failures are
// collected here rather than aborting the stage.
type StageReport struct {
	Completed int           `json:"completed"`
	Failures  []ItemFailure `json:"failures,omitempty"`
}

// Fail records one failed item
func (r *StageReport) Fail(item, reason string) {
	r.Failures = append(r.Failures, ItemFailure{Item: item, Reason: reason})
}

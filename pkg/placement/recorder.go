package placement

import "github.com/hoangt/cerebrum-design-tool-sub004/pkg/model"

// Candidate is one FPGA evaluated for a unit.
type Candidate struct {
	FPGA        string
	Score       float64
	Utilization float64 // average utilization after placing the unit
	Excluded    bool    // rejected by the restrict policy
}

// Decision records where a unit was placed and why.
type Decision struct {
	Unit       model.Unit
	FPGA       string
	Score      float64
	Candidates []Candidate
}

// Run summarizes one DoMapping invocation.
type Run struct {
	ID      string
	Policy  Policy
	Pending int
	Placed  int
	Cost    float64
	Err     string
}

// Recorder receives the decisions of each mapping run. A failed run is still
// recorded, with Err set, after its decisions.
type Recorder interface {
	RecordDecision(runID string, d Decision)
	RecordRun(run Run)
}

// Package placement maps pending units (groups and ungrouped components)
// onto FPGAs with a greedy, deterministic heuristic that minimizes the
// communication cost of their connections.
package placement

import (
	"fmt"
	"io"
	"log"
	"sort"

	"github.com/hoangt/cerebrum-design-tool-sub004/pkg/model"
	"github.com/hoangt/cerebrum-design-tool-sub004/pkg/topology"
	"github.com/rs/xid"
)

// Result is the outcome of a successful mapping run.
type Result struct {
	RunID       string
	Assignments map[model.Unit]string
	Cost        float64
	Placed      []Decision
}

// Engine runs DoMapping. It holds no model state between runs.
type Engine struct {
	opts     Options
	logger   *log.Logger
	recorder Recorder
}

// Builder configures an Engine.
type Builder struct {
	opts     Options
	logger   *log.Logger
	recorder Recorder
}

// MakeBuilder returns a Builder with the default options and a silent
// logger.
func MakeBuilder() Builder {
	return Builder{
		opts:   DefaultOptions(),
		logger: log.New(io.Discard, "", 0),
	}
}

// WithOptions sets the objective options.
func (b Builder) WithOptions(opts Options) Builder {
	b.opts = opts
	return b
}

// WithLogger sets the diagnostics logger.
func (b Builder) WithLogger(logger *log.Logger) Builder {
	if logger != nil {
		b.logger = logger
	}
	return b
}

// WithRecorder attaches a decision recorder.
func (b Builder) WithRecorder(r Recorder) Builder {
	b.recorder = r
	return b
}

// Build creates the Engine.
func (b Builder) Build() *Engine {
	return &Engine{opts: b.opts, logger: b.logger, recorder: b.recorder}
}

// Options returns the engine's objective settings.
func (e *Engine) Options() Options { return e.opts }

// PendingUnits returns the unmapped units in placement order: descending total
// demand, then ID, then groups before components.
func PendingUnits(m *model.Model) []model.Unit {
	var pending []model.Unit
	totals := make(map[model.Unit]int64)
	for _, u := range m.Units() {
		if m.UnitTarget(u) != "" {
			continue
		}
		pending = append(pending, u)
		totals[u] = m.UnitDemand(u).Total()
	}
	sort.SliceStable(pending, func(i, j int) bool {
		a, b := pending[i], pending[j]
		if totals[a] != totals[b] {
			return totals[a] > totals[b]
		}
		return a.Less(b)
	})
	return pending
}

// DoMapping places every unmapped unit. Units that are already mapped stay
// where they are. If any unit cannot be placed the model is restored to its
// state before the run and a CapacityError is returned.
func (e *Engine) DoMapping(m *model.Model) (*Result, error) {
	runID := xid.New().String()
	snapshot := m.Clone()
	g := topology.New(m)
	pending := PendingUnits(m)

	e.logger.Printf("placement: run %s: %d pending units, policy %s", runID, len(pending), e.opts.Policy)

	res := &Result{RunID: runID}
	for _, u := range pending {
		d, err := e.place(m, g, u)
		if err == nil {
			err = m.MapUnit(u, d.FPGA)
		}
		if err != nil {
			m.Restore(snapshot)
			e.logger.Printf("placement: run %s: %v; rolled back", runID, err)
			e.recordRun(Run{ID: runID, Policy: e.opts.Policy, Pending: len(pending),
				Placed: len(res.Placed), Err: err.Error()})
			return nil, err
		}
		e.logger.Printf("placement: %s -> %s (score %.6g, %d candidates)", u, d.FPGA, d.Score, len(d.Candidates))
		if e.recorder != nil {
			e.recorder.RecordDecision(runID, d)
		}
		res.Placed = append(res.Placed, d)
	}

	res.Assignments = m.Assignments()
	res.Cost = TotalCost(m, g, e.opts)
	e.recordRun(Run{ID: runID, Policy: e.opts.Policy, Pending: len(pending),
		Placed: len(res.Placed), Cost: res.Cost})
	return res, nil
}

func (e *Engine) recordRun(r Run) {
	if e.recorder != nil {
		e.recorder.RecordRun(r)
	}
}

// place picks the best FPGA for u without committing it.
func (e *Engine) place(m *model.Model, g *topology.Graph, u model.Unit) (Decision, error) {
	demand := m.UnitDemand(u)
	members := m.UnitMembers(u)
	inUnit := make(map[string]bool, len(members))
	for _, c := range members {
		inUnit[c] = true
	}

	d := Decision{Unit: u}
	best := -1
	for _, f := range g.FPGAs() {
		if !m.CanFit(f, demand) {
			continue
		}
		score, crosses := e.score(m, g, members, inUnit, f)
		c := Candidate{
			FPGA:        f,
			Score:       score,
			Utilization: m.AverageUtilization(f, demand),
			Excluded:    crosses && e.opts.Policy == PolicyRestrict,
		}
		d.Candidates = append(d.Candidates, c)
		if c.Excluded {
			continue
		}
		if best < 0 || better(c, d.Candidates[best]) {
			best = len(d.Candidates) - 1
		}
	}

	if best < 0 {
		msg := "no FPGA has enough remaining capacity"
		if len(d.Candidates) > 0 {
			msg = fmt.Sprintf("every FPGA with capacity breaks the %s cluster policy", e.opts.Policy)
		}
		return d, &model.Error{Kind: model.CapacityError, Op: "DoMapping",
			Entity: u.Kind.String(), ID: u.ID, Msg: fmt.Sprintf("%s for demand %v", msg, demand)}
	}
	d.FPGA = d.Candidates[best].FPGA
	d.Score = d.Candidates[best].Score
	return d, nil
}

// better orders candidates by score, then resulting utilization. FPGAs are
// visited in ID order so the earlier one wins remaining ties.
func better(c, incumbent Candidate) bool {
	if !equal(c.Score, incumbent.Score) {
		return less(c.Score, incumbent.Score)
	}
	return less(c.Utilization, incumbent.Utilization)
}

// score is the incremental cost of placing the unit's members on f, counting
// only connections whose other endpoint is already placed outside the unit.
func (e *Engine) score(m *model.Model, g *topology.Graph, members []string, inUnit map[string]bool, f string) (float64, bool) {
	var score float64
	crosses := false
	for _, comp := range members {
		for _, conn := range g.Neighbors(comp) {
			other := topology.Other(conn, comp)
			if inUnit[other] {
				continue
			}
			of := m.FPGAOf(other)
			if of == "" {
				continue
			}
			if conn.Source == comp {
				score += PairCost(g, conn.Density, f, of, e.opts)
			} else {
				score += PairCost(g, conn.Density, of, f, e.opts)
			}
			if e.opts.Policy != PolicyIgnore && crossCluster(m, f, of) {
				crosses = true
				if e.opts.Policy == PolicyPenalize {
					score += conn.Density * e.opts.CrossClusterPenalty
				}
			}
		}
	}
	return score, crosses
}

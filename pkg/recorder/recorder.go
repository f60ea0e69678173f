// Package recorder stores mapping runs and their placement decisions in a
// SQLite database.
package recorder

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/fatih/structs"

	// SQLite driver.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"
	"github.com/tebeka/atexit"

	"github.com/hoangt/cerebrum-design-tool-sub004/pkg/placement"
)

const (
	runTable       = "mapping_runs"
	decisionTable  = "mapping_decisions"
	candidateTable = "mapping_candidates"
)

type runEntry struct {
	ID      string
	Policy  string
	Pending int
	Placed  int
	Cost    float64
	Err     string
}

type decisionEntry struct {
	RunID    string
	Seq      int
	UnitKind string
	UnitID   string
	FPGA     string
	Score    float64
}

type candidateEntry struct {
	RunID       string
	Seq         int
	FPGA        string
	Score       float64
	Utilization float64
	Excluded    bool
}

// Recorder is a placement.Recorder backed by SQLite. Decisions are buffered
// and written in one transaction when their run is recorded, or when the
// buffer reaches the batch size.
type Recorder struct {
	db        *sql.DB
	mu        sync.Mutex
	batchSize int
	seq       map[string]int

	runs       []any
	decisions  []any
	candidates []any
}

// New opens (or creates) the database at path. An empty path creates a
// uniquely named file in the working directory. Buffered entries are flushed
// when the program exits through atexit.
func New(path string) (*Recorder, error) {
	if path == "" {
		path = "falconmap_runs_" + xid.New().String() + ".sqlite3"
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("recorder: open %s: %w", path, err)
	}
	r, err := NewWithDB(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	atexit.Register(func() { _ = r.Flush() })
	return r, nil
}

// NewWithDB uses an already opened database.
func NewWithDB(db *sql.DB) (*Recorder, error) {
	r := &Recorder{
		db:        db,
		batchSize: 1000,
		seq:       make(map[string]int),
	}
	for name, sample := range map[string]any{
		runTable:       runEntry{},
		decisionTable:  decisionEntry{},
		candidateTable: candidateEntry{},
	} {
		stmt := "CREATE TABLE IF NOT EXISTS " + name + " (" +
			strings.Join(structs.Names(sample), ", ") + ")"
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("recorder: create table %s: %w", name, err)
		}
	}
	return r, nil
}

// RecordDecision buffers one placement decision and its candidates.
func (r *Recorder) RecordDecision(runID string, d placement.Decision) {
	r.mu.Lock()
	seq := r.seq[runID]
	r.seq[runID] = seq + 1
	r.decisions = append(r.decisions, decisionEntry{
		RunID:    runID,
		Seq:      seq,
		UnitKind: d.Unit.Kind.String(),
		UnitID:   d.Unit.ID,
		FPGA:     d.FPGA,
		Score:    d.Score,
	})
	for _, c := range d.Candidates {
		r.candidates = append(r.candidates, candidateEntry{
			RunID:       runID,
			Seq:         seq,
			FPGA:        c.FPGA,
			Score:       c.Score,
			Utilization: c.Utilization,
			Excluded:    c.Excluded,
		})
	}
	full := len(r.decisions)+len(r.candidates) >= r.batchSize
	r.mu.Unlock()

	if full {
		_ = r.Flush()
	}
}

// RecordRun stores the run summary and flushes everything buffered for it.
func (r *Recorder) RecordRun(run placement.Run) {
	r.mu.Lock()
	r.runs = append(r.runs, runEntry{
		ID:      run.ID,
		Policy:  string(run.Policy),
		Pending: run.Pending,
		Placed:  run.Placed,
		Cost:    run.Cost,
		Err:     run.Err,
	})
	delete(r.seq, run.ID)
	r.mu.Unlock()

	_ = r.Flush()
}

// Flush writes all buffered entries in one transaction.
func (r *Recorder) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.runs)+len(r.decisions)+len(r.candidates) == 0 {
		return nil
	}
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("recorder: begin: %w", err)
	}
	for _, batch := range []struct {
		table   string
		entries []any
	}{
		{runTable, r.runs},
		{decisionTable, r.decisions},
		{candidateTable, r.candidates},
	} {
		if err := insert(tx, batch.table, batch.entries); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("recorder: commit: %w", err)
	}
	r.runs, r.decisions, r.candidates = nil, nil, nil
	return nil
}

func insert(tx *sql.Tx, table string, entries []any) error {
	if len(entries) == 0 {
		return nil
	}
	marks := make([]string, len(structs.Names(entries[0])))
	for i := range marks {
		marks[i] = "?"
	}
	stmt, err := tx.Prepare("INSERT INTO " + table + " VALUES (" + strings.Join(marks, ", ") + ")")
	if err != nil {
		return fmt.Errorf("recorder: prepare %s: %w", table, err)
	}
	defer stmt.Close()
	for _, e := range entries {
		if _, err := stmt.Exec(structs.Values(e)...); err != nil {
			return fmt.Errorf("recorder: insert into %s: %w", table, err)
		}
	}
	return nil
}

// Close flushes and closes the database.
func (r *Recorder) Close() error {
	if err := r.Flush(); err != nil {
		return err
	}
	return r.db.Close()
}

// Runs reads back every recorded run in insertion order.
func (r *Recorder) Runs() ([]placement.Run, error) {
	rows, err := r.db.Query("SELECT ID, Policy, Pending, Placed, Cost, Err FROM " + runTable + " ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("recorder: query runs: %w", err)
	}
	defer rows.Close()

	var out []placement.Run
	for rows.Next() {
		var run placement.Run
		var policy string
		if err := rows.Scan(&run.ID, &policy, &run.Pending, &run.Placed, &run.Cost, &run.Err); err != nil {
			return nil, fmt.Errorf("recorder: scan run: %w", err)
		}
		run.Policy = placement.Policy(policy)
		out = append(out, run)
	}
	return out, rows.Err()
}

// DecisionRow is a decision as stored in the database.
type DecisionRow struct {
	Seq        int
	UnitKind   string
	UnitID     string
	FPGA       string
	Score      float64
	Candidates int
}

// Decisions reads back the decisions of one run in placement order.
func (r *Recorder) Decisions(runID string) ([]DecisionRow, error) {
	rows, err := r.db.Query(`SELECT d.Seq, d.UnitKind, d.UnitID, d.FPGA, d.Score,
		(SELECT COUNT(*) FROM `+candidateTable+` c WHERE c.RunID = d.RunID AND c.Seq = d.Seq)
		FROM `+decisionTable+` d WHERE d.RunID = ? ORDER BY d.Seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("recorder: query decisions: %w", err)
	}
	defer rows.Close()

	var out []DecisionRow
	for rows.Next() {
		var d DecisionRow
		if err := rows.Scan(&d.Seq, &d.UnitKind, &d.UnitID, &d.FPGA, &d.Score, &d.Candidates); err != nil {
			return nil, fmt.Errorf("recorder: scan decision: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

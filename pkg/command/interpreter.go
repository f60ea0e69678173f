package command

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/hoangt/cerebrum-design-tool-sub004/pkg/model"
)

// Prepared is a statement whose command has been built.
type Prepared struct {
	Statement *Statement
	Spec      *Spec
	Command   Command
}

// Plan is a validated batch in execution order.
type Plan struct {
	Commands []Prepared
	// Suppressed holds the file-loading commands dropped because the batch
	// bootstraps a project.
	Suppressed []Prepared
}

func unknownVerb(op, verb string) error {
	return model.NewArgumentError(op, "unknown command %q; try help", verb)
}

// Prepare validates every statement and orders the batch: bootstrap
// commands first, then built-ins, then the rest, each in script order. The
// first invalid statement fails the whole batch.
func Prepare(stmts []*Statement) (*Plan, error) {
	prepared := make([]Prepared, 0, len(stmts))
	for _, st := range stmts {
		sp, ok := Lookup(st.Verb)
		if !ok {
			return nil, &ScriptError{Phase: PhaseParse, Pos: st.Pos, Verb: st.Verb, Err: unknownVerb("parse", st.Verb)}
		}
		cmd, err := sp.Build(st.Args)
		if err != nil {
			return nil, &ScriptError{Phase: PhaseValidate, Pos: st.Pos, Verb: sp.Name, Err: err}
		}
		prepared = append(prepared, Prepared{Statement: st, Spec: sp, Command: cmd})
	}

	bootstrap := false
	for _, p := range prepared {
		if p.Spec.Kind == KindBootstrap {
			bootstrap = true
		}
	}

	plan := &Plan{}
	for _, p := range prepared {
		if bootstrap && p.Spec.Kind == KindLoad {
			plan.Suppressed = append(plan.Suppressed, p)
			continue
		}
		plan.Commands = append(plan.Commands, p)
	}
	sort.SliceStable(plan.Commands, func(i, j int) bool {
		return rank(plan.Commands[i].Spec.Kind) < rank(plan.Commands[j].Spec.Kind)
	})
	return plan, nil
}

func rank(k Kind) int {
	switch k {
	case KindBootstrap:
		return 0
	case KindBuiltin:
		return 1
	}
	return 2
}

// RunScript executes a script as one batch. Nothing runs unless every
// statement parses and validates. Execution stops at the first failing
// command; that command's changes are rolled back, earlier ones are kept.
func (s *Session) RunScript(ctx context.Context, name, input string, w io.Writer) error {
	stmts, err := ParseScript(name, input)
	if err != nil {
		return err
	}
	plan, err := Prepare(stmts)
	if err != nil {
		return err
	}
	return s.runPlan(ctx, plan, w)
}

// runPlan reports the suppressed loads of plan, then executes its commands
// in order until one fails.
func (s *Session) runPlan(ctx context.Context, plan *Plan, w io.Writer) error {
	for _, p := range plan.Suppressed {
		fmt.Fprintf(w, "%s: %s skipped, project provides the inputs\n", p.Statement.Pos, p.Spec.Name)
	}
	for _, p := range plan.Commands {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.Execute(p.Command, w); err != nil {
			return &ScriptError{Phase: PhaseExecute, Pos: p.Statement.Pos, Verb: p.Spec.Name, Err: err}
		}
	}
	return nil
}

// RunInteractive reads commands from r one line at a time. Failures are
// reported to w and the loop continues. It returns at end of input, on quit
// or exit, or when ctx is done.
func (s *Session) RunInteractive(ctx context.Context, r io.Reader, w io.Writer, prompt string) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for {
		if prompt != "" {
			fmt.Fprint(w, prompt)
		}
		if !scanner.Scan() {
			return scanner.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "quit" || line == "exit" {
			return nil
		}
		if err := s.runLine(ctx, lineNo, line, w); err != nil {
			fmt.Fprintf(w, "error: %v\n", err)
		}
	}
}

func (s *Session) runLine(ctx context.Context, lineNo int, line string, w io.Writer) error {
	stmts, err := ParseScript("stdin", line)
	if err != nil {
		return err
	}
	for _, st := range stmts {
		st.Pos.Line = lineNo
	}
	plan, err := Prepare(stmts)
	if err != nil {
		return err
	}
	return s.runPlan(ctx, plan, w)
}

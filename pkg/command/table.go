package command

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hoangt/cerebrum-design-tool-sub004/pkg/ledger"
	"github.com/hoangt/cerebrum-design-tool-sub004/pkg/model"
)

// Command is one executable statement. Commands are built by the table from
// positional arguments and run through Session.Execute.
type Command interface {
	Name() string
	Execute(s *Session, w io.Writer) error
}

// readOnly marks commands that never change the model. The session runs
// them without taking a snapshot.
type readOnly interface {
	readOnly()
}

// Kind decides where a command goes when a batch is reordered.
type Kind int

const (
	// KindBootstrap commands run first.
	KindBootstrap Kind = iota
	// KindBuiltin commands are the shell built-ins, run after bootstrap.
	KindBuiltin
	// KindLoad commands read input files and are suppressed by a bootstrap.
	KindLoad
	// KindRegular is everything else.
	KindRegular
)

// Unlimited marks a variadic MaxArgs.
const Unlimited = -1

// Spec describes one verb.
type Spec struct {
	Name    string
	Aliases []string
	MinArgs int
	MaxArgs int
	Usage   string
	Summary string
	Kind    Kind
	build   func(args []string) (Command, error)
}

// Build checks the argument count and builds the typed command.
func (sp *Spec) Build(args []string) (Command, error) {
	if len(args) < sp.MinArgs || (sp.MaxArgs != Unlimited && len(args) > sp.MaxArgs) {
		return nil, model.NewArgumentError(sp.Name, "wrong number of arguments (%d); usage: %s", len(args), sp.Usage)
	}
	return sp.build(args)
}

// Lookup finds a verb or alias.
func Lookup(verb string) (*Spec, bool) {
	sp, ok := index[strings.ToLower(verb)]
	return sp, ok
}

// Specs returns every verb in table order.
func Specs() []*Spec {
	return table
}

func parseFloat(op, what, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, model.NewArgumentError(op, "invalid %s %q", what, s)
	}
	return v, nil
}

func parseAmount(op, s string) (int64, error) {
	v, err := ledger.ParseAmount(s)
	if err != nil {
		return 0, model.NewArgumentError(op, "%v", err)
	}
	return v, nil
}

func parseResources(op string, tokens []string) (ledger.Resources, error) {
	res, err := ledger.ParseList(tokens)
	if err != nil {
		return nil, model.NewArgumentError(op, "%v", err)
	}
	return res, nil
}

func parseSwitch(op, s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	}
	return false, model.NewArgumentError(op, "expected on or off, got %q", s)
}

func parseDirection(op, s string) (bool, error) {
	switch strings.ToLower(s) {
	case "bidir", "bidirectional", "both":
		return true, nil
	case "dir", "directed", "uni":
		return false, nil
	}
	return parseSwitch(op, s)
}

func parseSection(op, s string) (bool, error) {
	switch strings.ToLower(s) {
	case "pre":
		return true, nil
	case "post":
		return false, nil
	}
	return false, model.NewArgumentError(op, "expected pre or post, got %q", s)
}

func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

// help text for one verb.
func (sp *Spec) help() string {
	s := fmt.Sprintf("%-40s %s", sp.Usage, sp.Summary)
	if len(sp.Aliases) > 0 {
		s += fmt.Sprintf(" (alias: %s)", strings.Join(sp.Aliases, ", "))
	}
	return s
}

package command

import (
	"errors"
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"
)

// Phase tells where a script failed.
type Phase int

const (
	PhaseParse Phase = iota + 1
	PhaseValidate
	PhaseExecute
)

func (p Phase) String() string {
	switch p {
	case PhaseParse:
		return "parse"
	case PhaseValidate:
		return "validate"
	case PhaseExecute:
		return "execute"
	}
	return "unknown"
}

// ScriptError reports the failing statement of a script.
type ScriptError struct {
	Phase Phase
	Pos   lexer.Position
	Verb  string
	Err   error
}

func (e *ScriptError) Error() string {
	if e.Verb == "" {
		return fmt.Sprintf("%s: %s failed: %v", e.Pos, e.Phase, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s failed: %v", e.Pos, e.Verb, e.Phase, e.Err)
}

func (e *ScriptError) Unwrap() error { return e.Err }

// IsValidation reports whether err stopped a script before anything ran.
func IsValidation(err error) bool {
	var se *ScriptError
	return errors.As(err, &se) && se.Phase != PhaseExecute
}

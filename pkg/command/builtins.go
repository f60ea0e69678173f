package command

import (
	"fmt"
	"io"
)

// Version is reported by the version command.
const Version = "1.0.0"

type helpCmd struct{ Verb string }

func (helpCmd) Name() string { return "help" }
func (helpCmd) readOnly() {}
func (c helpCmd) Execute(_ *Session, w io.Writer) error {
	if c.Verb != "" {
		sp, ok := Lookup(c.Verb)
		if !ok {
			return unknownVerb("help", c.Verb)
		}
		fmt.Fprintln(w, sp.help())
		return nil
	}
	for _, sp := range Specs() {
		fmt.Fprintln(w, sp.help())
	}
	return nil
}

type versionCmd struct{}

func (versionCmd) Name() string { return "version" }
func (versionCmd) readOnly() {}
func (versionCmd) Execute(_ *Session, w io.Writer) error {
	fmt.Fprintf(w, "falconmap %s\n", Version)
	return nil
}

// verboseCmd sets verbose mode, or toggles it without an argument.
type verboseCmd struct{ On *bool }

func (verboseCmd) Name() string { return "verbose" }
func (verboseCmd) readOnly() {}
func (c verboseCmd) Execute(s *Session, w io.Writer) error {
	on := !s.Verbose()
	if c.On != nil {
		on = *c.On
	}
	s.SetVerbose(on)
	if on {
		fmt.Fprintln(w, "verbose on")
	} else {
		fmt.Fprintln(w, "verbose off")
	}
	return nil
}

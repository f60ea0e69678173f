package command

import (
	"fmt"
	"io"
)

type mapGroupCmd struct{ Group, FPGA string }

func (mapGroupCmd) Name() string { return "mapgroup" }
func (c mapGroupCmd) Execute(s *Session, _ io.Writer) error {
	return s.model.MapGroupToFPGA(c.Group, c.FPGA)
}

type mapCompCmd struct{ Component, FPGA string }

func (mapCompCmd) Name() string { return "mapcomp" }
func (c mapCompCmd) Execute(s *Session, _ io.Writer) error {
	return s.model.MapComponentToFPGA(c.Component, c.FPGA)
}

type unmapGroupCmd struct{ Group string }

func (unmapGroupCmd) Name() string { return "unmapgroup" }
func (c unmapGroupCmd) Execute(s *Session, _ io.Writer) error {
	return s.model.UnMapGroup(c.Group)
}

type unmapCompCmd struct{ Component string }

func (unmapCompCmd) Name() string { return "unmapcomp" }
func (c unmapCompCmd) Execute(s *Session, _ io.Writer) error {
	return s.model.UnMapComponent(c.Component)
}

type unmapAllCmd struct{}

func (unmapAllCmd) Name() string { return "unmapall" }
func (unmapAllCmd) Execute(s *Session, _ io.Writer) error {
	return s.model.UnMapAll()
}

// mapCmd places every unmapped unit with the placement engine.
type mapCmd struct{}

func (mapCmd) Name() string { return "map" }
func (mapCmd) Execute(s *Session, w io.Writer) error {
	return s.doMapping(w)
}

func (s *Session) doMapping(w io.Writer) error {
	res, err := s.engine().DoMapping(s.model)
	if err != nil {
		return err
	}
	s.lastRun = res
	if len(res.Placed) == 0 {
		fmt.Fprintln(w, "nothing to map")
	}
	for _, d := range res.Placed {
		fmt.Fprintf(w, "mapped %s to %s (score %.6g)\n", d.Unit, d.FPGA, d.Score)
	}
	fmt.Fprintf(w, "cost %.6g\n", res.Cost)
	return nil
}

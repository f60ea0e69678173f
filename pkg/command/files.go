package command

import (
	"fmt"
	"io"

	"github.com/hoangt/cerebrum-design-tool-sub004/pkg/config"
	"github.com/hoangt/cerebrum-design-tool-sub004/pkg/output"
	"github.com/hoangt/cerebrum-design-tool-sub004/pkg/sysfile"
)

type loadCmd struct{ Path string }

func (loadCmd) Name() string { return "load" }
func (c loadCmd) Execute(s *Session, w io.Writer) error {
	if err := sysfile.ReadSystemFile(c.Path, s.model); err != nil {
		return err
	}
	fmt.Fprintf(w, "loaded %s\n", c.Path)
	return nil
}

type saveCmd struct{ Path string }

func (saveCmd) Name() string { return "save" }
func (saveCmd) readOnly() {}
func (c saveCmd) Execute(s *Session, w io.Writer) error {
	if err := sysfile.WriteSystemFile(c.Path, s.model); err != nil {
		return err
	}
	fmt.Fprintf(w, "saved %s\n", c.Path)
	return nil
}

type loadCommsCmd struct{ Path string }

func (loadCommsCmd) Name() string { return "loadcomms" }
func (c loadCommsCmd) Execute(s *Session, w io.Writer) error {
	if err := sysfile.ReadConnections(c.Path, s.model); err != nil {
		return err
	}
	fmt.Fprintf(w, "loaded connections from %s\n", c.Path)
	return nil
}

type loadMapCmd struct {
	Path   string
	UsePre bool
}

func (loadMapCmd) Name() string { return "loadmap" }
func (c loadMapCmd) Execute(s *Session, w io.Writer) error {
	if err := sysfile.ReadMappingFile(c.Path, s.model, c.UsePre); err != nil {
		return err
	}
	fmt.Fprintf(w, "loaded %s mapping from %s\n", sectionName(c.UsePre), c.Path)
	return nil
}

type saveMapCmd struct {
	Path     string
	UsePre   bool
	Finalize bool
}

func (saveMapCmd) Name() string { return "savemap" }
func (saveMapCmd) readOnly() {}
func (c saveMapCmd) Execute(s *Session, w io.Writer) error {
	if err := sysfile.WriteMappingFile(c.Path, s.model, c.UsePre, c.Finalize); err != nil {
		return err
	}
	fmt.Fprintf(w, "saved %s mapping to %s\n", sectionName(c.UsePre), c.Path)
	return nil
}

func sectionName(usePre bool) string {
	if usePre {
		return "pre"
	}
	return "post"
}

type addrMapCmd struct{ Path string }

func (addrMapCmd) Name() string { return "addrmap" }
func (addrMapCmd) readOnly() {}
func (c addrMapCmd) Execute(s *Session, w io.Writer) error {
	if err := output.WriteComponentAddressMap(c.Path, s.model, s.cfg); err != nil {
		return err
	}
	fmt.Fprintf(w, "wrote address map %s\n", c.Path)
	return nil
}

type routingCmd struct{ Path string }

func (routingCmd) Name() string { return "routing" }
func (routingCmd) readOnly() {}
func (c routingCmd) Execute(s *Session, w io.Writer) error {
	if err := output.GenerateRouting(c.Path, s.model, s.cfg); err != nil {
		return err
	}
	fmt.Fprintf(w, "wrote routing %s\n", c.Path)
	return nil
}

type outputsCmd struct{}

func (outputsCmd) Name() string { return "outputs" }
func (outputsCmd) readOnly() {}
func (outputsCmd) Execute(s *Session, w io.Writer) error {
	return s.writeOutputs(s.paths, w)
}

func (s *Session) writeOutputs(paths *config.Paths, w io.Writer) error {
	if err := output.WriteFinalOutputs(s.model, paths, s.cfg); err != nil {
		return err
	}
	fmt.Fprintf(w, "wrote %s, %s and %s\n", paths.AddressMapPath(), paths.RoutingPath(), paths.MappingPath())
	return nil
}

// projectCmd bootstraps a session from a paths file, a design file and a
// communications file: it replaces the current model, maps every unit and
// writes the final outputs.
type projectCmd struct{ Paths, Design, Comms string }

func (projectCmd) Name() string { return "project" }
func (c projectCmd) Execute(s *Session, w io.Writer) error {
	paths, err := config.LoadPaths(c.Paths)
	if err != nil {
		return err
	}
	s.model.Reset()
	s.lastRun = nil
	if err := sysfile.ReadSystemFile(c.Design, s.model); err != nil {
		return err
	}
	if err := sysfile.ReadConnections(c.Comms, s.model); err != nil {
		return err
	}
	fmt.Fprintf(w, "project loaded: %s, %s (outputs in %s)\n", c.Design, c.Comms, paths.OutputDir)
	if err := s.doMapping(w); err != nil {
		return err
	}
	if err := s.writeOutputs(paths, w); err != nil {
		return err
	}
	s.paths = paths
	return nil
}

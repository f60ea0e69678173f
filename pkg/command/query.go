package command

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/hoangt/cerebrum-design-tool-sub004/pkg/ledger"
	"github.com/hoangt/cerebrum-design-tool-sub004/pkg/model"
	"github.com/hoangt/cerebrum-design-tool-sub004/pkg/placement"
	"github.com/hoangt/cerebrum-design-tool-sub004/pkg/topology"
)

func newTable(w io.Writer, header ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	return tw
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

type lsCompCmd struct{}

func (lsCompCmd) Name() string { return "lscomp" }
func (lsCompCmd) readOnly() {}
func (lsCompCmd) Execute(s *Session, w io.Writer) error {
	tw := newTable(w, "ID", "NAME", "GROUP", "FPGA", "RESOURCES")
	for _, c := range s.model.Components() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", c.ID, c.Name, orDash(c.GroupID), orDash(s.model.FPGAOf(c.ID)), c.Resources)
	}
	return tw.Flush()
}

type lsFPGACmd struct{}

func (lsFPGACmd) Name() string { return "lsfpga" }
func (lsFPGACmd) readOnly() {}
func (lsFPGACmd) Execute(s *Session, w io.Writer) error {
	islands := topology.New(s.model).Islands()
	island := topology.IslandIndex(islands)
	tw := newTable(w, "ID", "NAME", "ARCH", "CLUSTER", "ISLAND", "USED", "CAPACITY")
	for _, f := range s.model.FPGAs() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n", f.ID, f.Name, f.Architecture, orDash(f.ClusterID),
			island[f.ID], s.model.Consumed(f.ID), f.Capacity)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if len(islands) > 1 {
		fmt.Fprintf(w, "%d islands:", len(islands))
		for _, isl := range islands {
			fmt.Fprintf(w, " [%s]", strings.Join(isl, " "))
		}
		fmt.Fprintln(w)
	}
	return nil
}

type lsGroupCmd struct{}

func (lsGroupCmd) Name() string { return "lsgroup" }
func (lsGroupCmd) readOnly() {}
func (lsGroupCmd) Execute(s *Session, w io.Writer) error {
	tw := newTable(w, "ID", "NAME", "FPGA", "DEMAND", "MEMBERS")
	for _, g := range s.model.Groups() {
		demand, _ := s.model.GroupDemand(g.ID)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", g.ID, g.Name, orDash(g.Target), demand, strings.Join(g.MemberIDs(), " "))
	}
	return tw.Flush()
}

type lsClusterCmd struct{}

func (lsClusterCmd) Name() string { return "lscluster" }
func (lsClusterCmd) readOnly() {}
func (lsClusterCmd) Execute(s *Session, w io.Writer) error {
	tw := newTable(w, "ID", "NAME", "MEMBERS")
	for _, c := range s.model.Clusters() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", c.ID, c.Name, strings.Join(c.MemberIDs(), " "))
	}
	return tw.Flush()
}

type lsConnCmd struct{}

func (lsConnCmd) Name() string { return "lsconn" }
func (lsConnCmd) readOnly() {}
func (lsConnCmd) Execute(s *Session, w io.Writer) error {
	tw := newTable(w, "ID", "NAME", "SOURCE", "SINK", "DENSITY")
	for _, c := range s.model.Connections() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%g\n", c.ID, c.Name, c.Source, c.Sink, c.Density)
	}
	return tw.Flush()
}

type lsLinkCmd struct{}

func (lsLinkCmd) Name() string { return "lslink" }
func (lsLinkCmd) readOnly() {}
func (lsLinkCmd) Execute(s *Session, w io.Writer) error {
	tw := newTable(w, "ID", "NAME", "SOURCE", "SINK", "SPEED", "DIRECTION")
	for _, l := range s.model.Links() {
		dir := "dir"
		if l.Bidirectional {
			dir = "bidir"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%g\t%s\n", l.ID, l.Name, l.Source, l.Sink, l.Speed, dir)
	}
	return tw.Flush()
}

type lsMapCmd struct{}

func (lsMapCmd) Name() string { return "lsmap" }
func (lsMapCmd) readOnly() {}
func (lsMapCmd) Execute(s *Session, w io.Writer) error {
	tw := newTable(w, "UNIT", "KIND", "FPGA", "DEMAND")
	for _, u := range s.model.Units() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", u.ID, u.Kind, orDash(s.model.UnitTarget(u)), s.model.UnitDemand(u))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if !s.model.MappingComplete() {
		fmt.Fprintln(w, "mapping incomplete")
	}
	return nil
}

// utilCmd reports per-resource utilization of one FPGA or all of them.
type utilCmd struct{ FPGA string }

func (utilCmd) Name() string { return "util" }
func (utilCmd) readOnly() {}
func (c utilCmd) Execute(s *Session, w io.Writer) error {
	fpgas := s.model.FPGAs()
	if c.FPGA != "" {
		f, ok := s.model.FPGA(c.FPGA)
		if !ok {
			return &model.Error{Kind: model.ReferenceError, Op: "util", Entity: "fpga", ID: c.FPGA, Msg: "does not exist"}
		}
		fpgas = []model.FPGA{f}
	}
	tw := newTable(w, "FPGA", "RESOURCE", "USED", "CAPACITY", "UTIL")
	for _, f := range fpgas {
		used := s.model.Consumed(f.ID)
		util := s.model.Utilization(f.ID)
		names := ledger.Resources{}.Add(f.Capacity).Add(used).Names()
		for _, r := range names {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%.1f%%\n", f.ID, r, used[r], f.Capacity[r], 100*util[r])
		}
		fmt.Fprintf(tw, "%s\t%s\t\t\t%.1f%%\n", f.ID, "average", 100*s.model.AverageUtilization(f.ID, nil))
	}
	return tw.Flush()
}

type costCmd struct{}

func (costCmd) Name() string { return "cost" }
func (costCmd) readOnly() {}
func (costCmd) Execute(s *Session, w io.Writer) error {
	fmt.Fprintf(w, "cost %.6g\n", placement.Cost(s.model, s.cfg.Placement()))
	return nil
}

type checkCmd struct{}

func (checkCmd) Name() string { return "check" }
func (checkCmd) readOnly() {}
func (checkCmd) Execute(s *Session, w io.Writer) error {
	if err := s.model.CheckIntegrity(); err != nil {
		return err
	}
	fmt.Fprintln(w, "model is consistent")
	return nil
}

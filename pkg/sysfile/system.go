package sysfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/hoangt/cerebrum-design-tool-sub004/pkg/ledger"
	"github.com/hoangt/cerebrum-design-tool-sub004/pkg/model"
)

// ReadSystemFile parses the system file at path and applies it to m.
// Declarations are applied FPGAs first, then clusters, components, groups,
// connections and links, whatever their order in the file. Targets given
// with "on" are mapped last. Any failure leaves m unchanged.
func ReadSystemFile(path string, m *model.Model) error {
	sf, err := parseSystemFile(path)
	if err != nil {
		return err
	}
	return Apply(sf, m)
}

// ReadConnections is ReadSystemFile for communication files: only
// connection declarations are accepted.
func ReadConnections(path string, m *model.Model) error {
	sf, err := parseSystemFile(path)
	if err != nil {
		return err
	}
	for _, d := range sf.Decls {
		if d.Connection == nil {
			return errors.Wrapf(model.NewArgumentError("loadcomms", "only connection declarations are allowed"),
				"%s: %s", d.Pos, d.kind())
		}
	}
	return Apply(sf, m)
}

func parseSystemFile(path string) (*SystemFile, error) {
	p, err := NewParser()
	if err != nil {
		return nil, err
	}
	sf, err := p.ParseFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read system file %s", path)
	}
	return sf, nil
}

// Apply adds every declaration of sf to m as a single step.
func Apply(sf *SystemFile, m *model.Model) error {
	work := m.Clone()
	for _, pass := range applyOrder {
		for _, d := range sf.Decls {
			if err := pass(work, d); err != nil {
				return errors.Wrapf(err, "%s: %s %s", d.Pos, d.kind(), d.id())
			}
		}
	}
	m.Restore(work)
	return nil
}

var applyOrder = []func(*model.Model, *Decl) error{
	func(m *model.Model, d *Decl) error {
		if d.FPGA == nil {
			return nil
		}
		return m.AddFPGA(d.FPGA.ID, d.FPGA.Name, d.FPGA.Architecture, resources(d.FPGA.Capacity))
	},
	func(m *model.Model, d *Decl) error {
		if d.Cluster == nil {
			return nil
		}
		if err := m.AddCluster(d.Cluster.ID, d.Cluster.Name); err != nil {
			return err
		}
		for _, f := range d.Cluster.Members {
			if err := m.AddFPGAToCluster(d.Cluster.ID, f); err != nil {
				return err
			}
		}
		return nil
	},
	func(m *model.Model, d *Decl) error {
		if d.Component == nil {
			return nil
		}
		return m.AddComponent(d.Component.ID, d.Component.Name, resources(d.Component.Resources))
	},
	func(m *model.Model, d *Decl) error {
		if d.Group == nil {
			return nil
		}
		if err := m.AddGroup(d.Group.ID, d.Group.Name); err != nil {
			return err
		}
		for _, c := range d.Group.Members {
			if err := m.AddComponentToGroup(d.Group.ID, c); err != nil {
				return err
			}
		}
		return nil
	},
	func(m *model.Model, d *Decl) error {
		if d.Connection == nil {
			return nil
		}
		c := d.Connection
		return m.AddConnection(c.ID, c.Name, c.Source, c.Sink, c.Density)
	},
	func(m *model.Model, d *Decl) error {
		if d.Link == nil {
			return nil
		}
		l := d.Link
		return m.AddLink(l.ID, l.Name, l.Source, l.Sink, l.Speed, l.Bidirectional())
	},
	func(m *model.Model, d *Decl) error {
		switch {
		case d.Group != nil && d.Group.Target != "":
			return m.MapGroupToFPGA(d.Group.ID, d.Group.Target)
		case d.Component != nil && d.Component.Target != "":
			return m.MapComponentToFPGA(d.Component.ID, d.Component.Target)
		}
		return nil
	},
}

func resources(entries []*Resource) ledger.Resources {
	res := make(ledger.Resources, len(entries))
	for _, e := range entries {
		res.Add(ledger.Resources{e.Name: e.Amount})
	}
	return res
}

func (d *Decl) kind() string {
	switch {
	case d.FPGA != nil:
		return "fpga"
	case d.Cluster != nil:
		return "cluster"
	case d.Component != nil:
		return "component"
	case d.Group != nil:
		return "group"
	case d.Connection != nil:
		return "connection"
	default:
		return "link"
	}
}

func (d *Decl) id() string {
	switch {
	case d.FPGA != nil:
		return d.FPGA.ID
	case d.Cluster != nil:
		return d.Cluster.ID
	case d.Component != nil:
		return d.Component.ID
	case d.Group != nil:
		return d.Group.ID
	case d.Connection != nil:
		return d.Connection.ID
	case d.Link != nil:
		return d.Link.ID
	}
	return ""
}

// WriteSystemFile writes m to path in system file syntax.
func WriteSystemFile(path string, m *model.Model) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("sysfile: %w", err)
	}
	if err := Write(f, m); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Write renders m in system file syntax. Output is sorted by ID within
// each declaration kind, so the same model always produces the same text.
func Write(w io.Writer, m *model.Model) error {
	bw := bufio.NewWriter(w)
	for _, f := range m.FPGAs() {
		fmt.Fprintf(bw, "fpga %s %s arch %s %s\n", ident(f.ID), strconv.Quote(f.Name), ident(f.Architecture), block(f.Capacity))
	}
	for _, c := range m.Clusters() {
		fmt.Fprintf(bw, "cluster %s %s %s\n", ident(c.ID), strconv.Quote(c.Name), members(c.MemberIDs()))
	}
	for _, c := range m.Components() {
		fmt.Fprintf(bw, "component %s %s %s%s\n", ident(c.ID), strconv.Quote(c.Name), block(c.Resources), on(c.Target))
	}
	for _, g := range m.Groups() {
		fmt.Fprintf(bw, "group %s %s %s%s\n", ident(g.ID), strconv.Quote(g.Name), members(g.MemberIDs()), on(g.Target))
	}
	for _, c := range m.Connections() {
		fmt.Fprintf(bw, "connection %s %s %s -> %s density %s\n",
			ident(c.ID), strconv.Quote(c.Name), ident(c.Source), ident(c.Sink), number(c.Density))
	}
	for _, l := range m.Links() {
		arrow := "->"
		if l.Bidirectional {
			arrow = "<->"
		}
		fmt.Fprintf(bw, "link %s %s %s %s %s speed %s\n",
			ident(l.ID), strconv.Quote(l.Name), ident(l.Source), arrow, ident(l.Sink), number(l.Speed))
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("sysfile: %w", err)
	}
	return nil
}

var (
	identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)
	keywords     = map[string]bool{
		"fpga": true, "cluster": true, "component": true, "group": true,
		"connection": true, "link": true, "arch": true, "density": true, "speed": true,
		"on": true,
	}
)

// ident writes an ID bare when it lexes back as an identifier.
func ident(s string) string {
	if identPattern.MatchString(s) && !keywords[s] {
		return s
	}
	return strconv.Quote(s)
}

func on(target string) string {
	if target == "" {
		return ""
	}
	return " on " + ident(target)
}

func block(res ledger.Resources) string {
	parts := make([]string, 0, len(res))
	for _, name := range res.Names() {
		parts = append(parts, fmt.Sprintf("%s = %d", ident(name), res[name]))
	}
	if len(parts) == 0 {
		return "{ }"
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

func members(ids []string) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = ident(id)
	}
	if len(parts) == 0 {
		return "{ }"
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

// number formats a float so that it always lexes as a Number.
func number(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// Package model holds the entity model of a mapping project: components,
// FPGAs, groups, clusters, connections and links, together with the
// group-to-FPGA mapping state and the resource ledger that backs it.
//
// Every mutation is validated before anything is changed, so a failed
// operation leaves the model untouched. Renames re-key every back-reference
// in one step.
package model

import (
	"fmt"

	"github.com/hoangt/cerebrum-design-tool-sub004/pkg/ledger"
	"k8s.io/apimachinery/pkg/util/sets"
)

// Component is a unit of design logic with a resource demand.
type Component struct {
	ID        string
	Name      string
	Resources ledger.Resources
	// GroupID is empty while the component is ungrouped.
	GroupID string
	// Target is the FPGA of an ungrouped component placed on its own. Grouped
	// components are placed through their group and keep this empty.
	Target string
}

// FPGA is a placement target with a finite capacity per resource.
type FPGA struct {
	ID           string
	Name         string
	Architecture string
	Capacity     ledger.Resources
	ClusterID    string
}

// Group is the atomic placement unit aggregating components.
type Group struct {
	ID      string
	Name    string
	Members sets.Set[string]
	Target  string
}

// MemberIDs returns the member component IDs in ascending order.
func (g *Group) MemberIDs() []string {
	return sets.List(g.Members)
}

// Cluster partitions FPGAs into candidate placement pools.
type Cluster struct {
	ID      string
	Name    string
	Members sets.Set[string]
}

// MemberIDs returns the member FPGA IDs in ascending order.
func (c *Cluster) MemberIDs() []string {
	return sets.List(c.Members)
}

// Connection is a directed data-flow edge between two components.
type Connection struct {
	ID      string
	Name    string
	Density float64
	Source  string
	Sink    string
}

// Link is a physical edge between two FPGAs.
type Link struct {
	ID            string
	Name          string
	Speed         float64
	Source        string
	Sink          string
	Bidirectional bool
}

// UnitKind tells groups and ungrouped components apart.
type UnitKind int

const (
	GroupUnit UnitKind = iota
	ComponentUnit
)

func (k UnitKind) String() string {
	if k == GroupUnit {
		return "group"
	}
	return "component"
}

// Unit is a placement unit: a group, or an ungrouped component acting as a
// singleton group.
type Unit struct {
	Kind UnitKind
	ID   string
}

func (u Unit) String() string {
	return fmt.Sprintf("%s %s", u.Kind, u.ID)
}

// Less orders units by ID, groups before components on equal IDs.
func (u Unit) Less(o Unit) bool {
	if u.ID != o.ID {
		return u.ID < o.ID
	}
	return u.Kind < o.Kind
}

func (c *Component) clone() *Component {
	cp := *c
	cp.Resources = c.Resources.Clone()
	return &cp
}

func (f *FPGA) clone() *FPGA {
	cp := *f
	cp.Capacity = f.Capacity.Clone()
	return &cp
}

func (g *Group) clone() *Group {
	cp := *g
	cp.Members = g.Members.Clone()
	return &cp
}

func (c *Cluster) clone() *Cluster {
	cp := *c
	cp.Members = c.Members.Clone()
	return &cp
}

func (c *Connection) clone() *Connection {
	cp := *c
	return &cp
}

func (l *Link) clone() *Link {
	cp := *l
	return &cp
}

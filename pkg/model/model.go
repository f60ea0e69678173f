package model

import (
	"sort"

	"github.com/hoangt/cerebrum-design-tool-sub004/pkg/ledger"
)

// Model is the live mapping project. It is not safe for concurrent use; the
// command session serializes access.
type Model struct {
	components  map[string]*Component
	fpgas       map[string]*FPGA
	groups      map[string]*Group
	clusters    map[string]*Cluster
	connections map[string]*Connection
	links       map[string]*Link
	ledger      *ledger.Ledger
}

// New creates an empty model.
func New() *Model {
	m := &Model{}
	m.Reset()
	return m
}

// Reset clears the entire model back to empty.
func (m *Model) Reset() {
	m.components = make(map[string]*Component)
	m.fpgas = make(map[string]*FPGA)
	m.groups = make(map[string]*Group)
	m.clusters = make(map[string]*Cluster)
	m.connections = make(map[string]*Connection)
	m.links = make(map[string]*Link)
	m.ledger = ledger.New()
}

// Clone returns a deep snapshot of the model.
func (m *Model) Clone() *Model {
	c := &Model{
		components:  make(map[string]*Component, len(m.components)),
		fpgas:       make(map[string]*FPGA, len(m.fpgas)),
		groups:      make(map[string]*Group, len(m.groups)),
		clusters:    make(map[string]*Cluster, len(m.clusters)),
		connections: make(map[string]*Connection, len(m.connections)),
		links:       make(map[string]*Link, len(m.links)),
		ledger:      m.ledger.Clone(),
	}
	for id, v := range m.components {
		c.components[id] = v.clone()
	}
	for id, v := range m.fpgas {
		c.fpgas[id] = v.clone()
	}
	for id, v := range m.groups {
		c.groups[id] = v.clone()
	}
	for id, v := range m.clusters {
		c.clusters[id] = v.clone()
	}
	for id, v := range m.connections {
		c.connections[id] = v.clone()
	}
	for id, v := range m.links {
		c.links[id] = v.clone()
	}
	return c
}

// Restore replaces the model contents with a copy of snapshot.
func (m *Model) Restore(snapshot *Model) {
	*m = *snapshot.Clone()
}

// Empty reports whether the model holds no entities at all.
func (m *Model) Empty() bool {
	return len(m.components)+len(m.fpgas)+len(m.groups)+len(m.clusters)+
		len(m.connections)+len(m.links) == 0
}

func sortedKeys[V any](in map[string]V) []string {
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Components returns copies of all components sorted by ID.
func (m *Model) Components() []Component {
	out := make([]Component, 0, len(m.components))
	for _, id := range sortedKeys(m.components) {
		out = append(out, *m.components[id].clone())
	}
	return out
}

// Component returns a copy of one component.
func (m *Model) Component(id string) (Component, bool) {
	c, ok := m.components[id]
	if !ok {
		return Component{}, false
	}
	return *c.clone(), true
}

// FPGAs returns copies of all FPGAs sorted by ID.
func (m *Model) FPGAs() []FPGA {
	out := make([]FPGA, 0, len(m.fpgas))
	for _, id := range sortedKeys(m.fpgas) {
		out = append(out, *m.fpgas[id].clone())
	}
	return out
}

// FPGA returns a copy of one FPGA.
func (m *Model) FPGA(id string) (FPGA, bool) {
	f, ok := m.fpgas[id]
	if !ok {
		return FPGA{}, false
	}
	return *f.clone(), true
}

// Groups returns copies of all groups sorted by ID.
func (m *Model) Groups() []Group {
	out := make([]Group, 0, len(m.groups))
	for _, id := range sortedKeys(m.groups) {
		out = append(out, *m.groups[id].clone())
	}
	return out
}

// Group returns a copy of one group.
func (m *Model) Group(id string) (Group, bool) {
	g, ok := m.groups[id]
	if !ok {
		return Group{}, false
	}
	return *g.clone(), true
}

// Clusters returns copies of all clusters sorted by ID.
func (m *Model) Clusters() []Cluster {
	out := make([]Cluster, 0, len(m.clusters))
	for _, id := range sortedKeys(m.clusters) {
		out = append(out, *m.clusters[id].clone())
	}
	return out
}

// Cluster returns a copy of one cluster.
func (m *Model) Cluster(id string) (Cluster, bool) {
	c, ok := m.clusters[id]
	if !ok {
		return Cluster{}, false
	}
	return *c.clone(), true
}

// Connections returns copies of all connections sorted by ID.
func (m *Model) Connections() []Connection {
	out := make([]Connection, 0, len(m.connections))
	for _, id := range sortedKeys(m.connections) {
		out = append(out, *m.connections[id])
	}
	return out
}

// Connection returns a copy of one connection.
func (m *Model) Connection(id string) (Connection, bool) {
	c, ok := m.connections[id]
	if !ok {
		return Connection{}, false
	}
	return *c, true
}

// Links returns copies of all links sorted by ID.
func (m *Model) Links() []Link {
	out := make([]Link, 0, len(m.links))
	for _, id := range sortedKeys(m.links) {
		out = append(out, *m.links[id])
	}
	return out
}

// Link returns a copy of one link.
func (m *Model) Link(id string) (Link, bool) {
	l, ok := m.links[id]
	if !ok {
		return Link{}, false
	}
	return *l, true
}

// Utilization returns consumed/capacity per resource of an FPGA.
func (m *Model) Utilization(fpga string) map[string]float64 {
	return m.ledger.UtilizationOf(fpga)
}

// AverageUtilization returns the mean utilization of an FPGA as if extra
// were also placed on it.
func (m *Model) AverageUtilization(fpga string, extra ledger.Resources) float64 {
	return m.ledger.AverageUtilization(fpga, extra)
}

// CanFit reports whether demand fits in the remaining capacity of an FPGA.
func (m *Model) CanFit(fpga string, demand ledger.Resources) bool {
	return m.ledger.CanFit(fpga, demand)
}

// Consumed returns the reserved amounts on an FPGA.
func (m *Model) Consumed(fpga string) ledger.Resources {
	return m.ledger.Consumed(fpga)
}

// Remaining returns the unreserved amounts on an FPGA.
func (m *Model) Remaining(fpga string) ledger.Resources {
	return m.ledger.Remaining(fpga)
}

package model

import (
	"errors"

	"github.com/hoangt/cerebrum-design-tool-sub004/pkg/ledger"
)

// CheckIntegrity walks the whole model and verifies every cross-reference
// and the ledger totals. It returns nil or an IntegrityError per violation,
// joined.
func (m *Model) CheckIntegrity() error {
	const op = "CheckIntegrity"
	var errs []error

	for _, id := range sortedKeys(m.components) {
		c := m.components[id]
		if c.ID != id {
			errs = append(errs, integrity(op, entityComponent, id, "keyed under %s", c.ID))
		}
		if c.GroupID != "" {
			g, ok := m.groups[c.GroupID]
			if !ok {
				errs = append(errs, integrity(op, entityComponent, id, "group %s does not exist", c.GroupID))
			} else if !g.Members.Has(id) {
				errs = append(errs, integrity(op, entityComponent, id, "group %s does not list it", c.GroupID))
			}
			if c.Target != "" {
				errs = append(errs, integrity(op, entityComponent, id, "grouped but carries target %s", c.Target))
			}
		}
		if c.Target != "" {
			if _, ok := m.fpgas[c.Target]; !ok {
				errs = append(errs, integrity(op, entityComponent, id, "target fpga %s does not exist", c.Target))
			}
		}
	}

	for _, id := range sortedKeys(m.groups) {
		g := m.groups[id]
		for _, member := range g.MemberIDs() {
			c, ok := m.components[member]
			if !ok {
				errs = append(errs, integrity(op, entityGroup, id, "member %s does not exist", member))
			} else if c.GroupID != id {
				errs = append(errs, integrity(op, entityGroup, id, "member %s points at group %q", member, c.GroupID))
			}
		}
		if g.Target != "" {
			if _, ok := m.fpgas[g.Target]; !ok {
				errs = append(errs, integrity(op, entityGroup, id, "target fpga %s does not exist", g.Target))
			}
		}
	}

	for _, id := range sortedKeys(m.fpgas) {
		f := m.fpgas[id]
		if f.ClusterID != "" {
			cl, ok := m.clusters[f.ClusterID]
			if !ok {
				errs = append(errs, integrity(op, entityFPGA, id, "cluster %s does not exist", f.ClusterID))
			} else if !cl.Members.Has(id) {
				errs = append(errs, integrity(op, entityFPGA, id, "cluster %s does not list it", f.ClusterID))
			}
		}
		if !m.ledger.Capacity(id).Equal(f.Capacity) {
			errs = append(errs, integrity(op, entityFPGA, id, "ledger capacity %v differs from %v",
				m.ledger.Capacity(id), f.Capacity))
		}
	}

	for _, id := range sortedKeys(m.clusters) {
		for _, member := range m.clusters[id].MemberIDs() {
			f, ok := m.fpgas[member]
			if !ok {
				errs = append(errs, integrity(op, entityCluster, id, "member %s does not exist", member))
			} else if f.ClusterID != id {
				errs = append(errs, integrity(op, entityCluster, id, "member %s points at cluster %q", member, f.ClusterID))
			}
		}
	}

	for _, id := range sortedKeys(m.connections) {
		c := m.connections[id]
		if _, ok := m.components[c.Source]; !ok {
			errs = append(errs, integrity(op, entityConnection, id, "source %s does not exist", c.Source))
		}
		if _, ok := m.components[c.Sink]; !ok {
			errs = append(errs, integrity(op, entityConnection, id, "sink %s does not exist", c.Sink))
		}
	}

	for _, id := range sortedKeys(m.links) {
		l := m.links[id]
		if _, ok := m.fpgas[l.Source]; !ok {
			errs = append(errs, integrity(op, entityLink, id, "source %s does not exist", l.Source))
		}
		if _, ok := m.fpgas[l.Sink]; !ok {
			errs = append(errs, integrity(op, entityLink, id, "sink %s does not exist", l.Sink))
		}
	}

	errs = append(errs, m.checkLedger(op)...)
	return errors.Join(errs...)
}

// checkLedger re-derives consumption from the current assignments and
// compares it with the ledger.
func (m *Model) checkLedger(op string) []error {
	var errs []error
	derived := make(map[string]ledger.Resources, len(m.fpgas))
	for id := range m.fpgas {
		derived[id] = ledger.Resources{}
	}
	for u, fpga := range m.Assignments() {
		if _, ok := derived[fpga]; ok {
			derived[fpga].Add(m.UnitDemand(u))
		}
	}
	for _, id := range sortedKeys(derived) {
		want := derived[id]
		got := m.ledger.Consumed(id)
		if !got.Equal(want) {
			errs = append(errs, integrity(op, entityFPGA, id, "ledger consumed %v, assignments need %v", got, want))
		}
		capacity := m.ledger.Capacity(id)
		for name, used := range got {
			if used < 0 || used > capacity[name] {
				errs = append(errs, integrity(op, entityFPGA, id, "%s consumption %d outside [0, %d]", name, used, capacity[name]))
			}
		}
	}
	for _, id := range m.ledger.FPGAs() {
		if _, ok := m.fpgas[id]; !ok {
			errs = append(errs, integrity(op, entityFPGA, id, "ledger account without fpga"))
		}
	}
	return errs
}

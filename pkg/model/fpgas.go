package model

import (
	"github.com/hoangt/cerebrum-design-tool-sub004/pkg/ledger"
)

const entityFPGA = "fpga"

// AddFPGA creates an FPGA and registers its capacity with the ledger.
func (m *Model) AddFPGA(id, name, arch string, capacity ledger.Resources) error {
	const op = "AddFPGA"
	if err := checkID(op, entityFPGA, id); err != nil {
		return err
	}
	if err := checkResources(op, entityFPGA, id, capacity); err != nil {
		return err
	}
	if _, ok := m.fpgas[id]; ok {
		return duplicate(op, entityFPGA, id)
	}
	if err := m.ledger.Register(id, capacity); err != nil {
		return integrity(op, entityFPGA, id, "%v", err)
	}
	m.fpgas[id] = &FPGA{ID: id, Name: name, Architecture: arch, Capacity: capacity.Clone()}
	return nil
}

// RemoveFPGA deletes an FPGA. It is rejected while any group or component is
// mapped to it. Links touching it are deleted and it leaves its cluster.
func (m *Model) RemoveFPGA(id string) error {
	const op = "RemoveFPGA"
	f, ok := m.fpgas[id]
	if !ok {
		return missing(op, entityFPGA, id)
	}
	if units := m.UnitsOn(id); len(units) > 0 {
		return integrity(op, entityFPGA, id, "%s is still mapped to it; unmap first", units[0])
	}
	if err := m.ledger.Unregister(id); err != nil {
		return integrity(op, entityFPGA, id, "%v", err)
	}
	if f.ClusterID != "" {
		m.clusters[f.ClusterID].Members.Delete(id)
	}
	for _, linkID := range sortedKeys(m.links) {
		l := m.links[linkID]
		if l.Source == id || l.Sink == id {
			delete(m.links, linkID)
		}
	}
	delete(m.fpgas, id)
	return nil
}

// ModifyFPGAID renames an FPGA and redirects group and component targets,
// link endpoints, cluster membership and the ledger account.
func (m *Model) ModifyFPGAID(oldID, newID string) error {
	const op = "ModifyFPGAID"
	f, ok := m.fpgas[oldID]
	if !ok {
		return missing(op, entityFPGA, oldID)
	}
	if err := checkID(op, entityFPGA, newID); err != nil {
		return err
	}
	if oldID == newID {
		return nil
	}
	if _, clash := m.fpgas[newID]; clash {
		return duplicate(op, entityFPGA, newID)
	}
	if err := m.ledger.Rename(oldID, newID); err != nil {
		return integrity(op, entityFPGA, oldID, "%v", err)
	}

	for _, g := range m.groups {
		if g.Target == oldID {
			g.Target = newID
		}
	}
	for _, c := range m.components {
		if c.Target == oldID {
			c.Target = newID
		}
	}
	for _, l := range m.links {
		if l.Source == oldID {
			l.Source = newID
		}
		if l.Sink == oldID {
			l.Sink = newID
		}
	}
	if f.ClusterID != "" {
		cl := m.clusters[f.ClusterID]
		cl.Members.Delete(oldID)
		cl.Members.Insert(newID)
	}
	delete(m.fpgas, oldID)
	f.ID = newID
	m.fpgas[newID] = f
	return nil
}

// ModifyFPGAName changes the display name.
func (m *Model) ModifyFPGAName(id, name string) error {
	f, ok := m.fpgas[id]
	if !ok {
		return missing("ModifyFPGAName", entityFPGA, id)
	}
	f.Name = name
	return nil
}

// ModifyFPGAArchitecture changes the architecture tag.
func (m *Model) ModifyFPGAArchitecture(id, arch string) error {
	f, ok := m.fpgas[id]
	if !ok {
		return missing("ModifyFPGAArchitecture", entityFPGA, id)
	}
	f.Architecture = arch
	return nil
}

// SetFPGAResource sets one capacity dimension. Shrinking below the amount
// already reserved fails with a CapacityError.
func (m *Model) SetFPGAResource(id, resource string, amount int64) error {
	const op = "SetFPGAResource"
	f, ok := m.fpgas[id]
	if !ok {
		return missing(op, entityFPGA, id)
	}
	next := f.Capacity.Clone()
	next[resource] = amount
	if err := checkResources(op, entityFPGA, id, next); err != nil {
		return err
	}
	return m.replaceCapacity(op, f, next)
}

// RemoveFPGAResource drops one capacity dimension.
func (m *Model) RemoveFPGAResource(id, resource string) error {
	const op = "RemoveFPGAResource"
	f, ok := m.fpgas[id]
	if !ok {
		return missing(op, entityFPGA, id)
	}
	if _, has := f.Capacity[resource]; !has {
		return missing(op, "resource", id+"."+resource)
	}
	next := f.Capacity.Clone()
	delete(next, resource)
	return m.replaceCapacity(op, f, next)
}

func (m *Model) replaceCapacity(op string, f *FPGA, next ledger.Resources) error {
	if err := m.ledger.SetCapacity(f.ID, next); err != nil {
		return overCapacity(op, entityFPGA, f.ID, err)
	}
	f.Capacity = next
	return nil
}

package model

import (
	"sort"

	"github.com/hoangt/cerebrum-design-tool-sub004/pkg/ledger"
)

// Units returns every placement unit: all groups plus every ungrouped
// component, ordered by Unit.Less.
func (m *Model) Units() []Unit {
	units := make([]Unit, 0, len(m.groups)+len(m.components))
	for id := range m.groups {
		units = append(units, Unit{Kind: GroupUnit, ID: id})
	}
	for id, c := range m.components {
		if c.GroupID == "" {
			units = append(units, Unit{Kind: ComponentUnit, ID: id})
		}
	}
	sort.Slice(units, func(i, j int) bool { return units[i].Less(units[j]) })
	return units
}

// UnitOf returns the placement unit a component belongs to.
func (m *Model) UnitOf(componentID string) (Unit, bool) {
	c, ok := m.components[componentID]
	if !ok {
		return Unit{}, false
	}
	if c.GroupID != "" {
		return Unit{Kind: GroupUnit, ID: c.GroupID}, true
	}
	return Unit{Kind: ComponentUnit, ID: componentID}, true
}

// UnitDemand returns the aggregate resource demand of a unit.
func (m *Model) UnitDemand(u Unit) ledger.Resources {
	switch u.Kind {
	case GroupUnit:
		if g, ok := m.groups[u.ID]; ok {
			return m.groupDemand(g)
		}
	case ComponentUnit:
		if c, ok := m.components[u.ID]; ok {
			return c.Resources.Clone()
		}
	}
	return nil
}

// UnitTarget returns the FPGA a unit is mapped to, or "".
func (m *Model) UnitTarget(u Unit) string {
	switch u.Kind {
	case GroupUnit:
		if g, ok := m.groups[u.ID]; ok {
			return g.Target
		}
	case ComponentUnit:
		if c, ok := m.components[u.ID]; ok && c.GroupID == "" {
			return c.Target
		}
	}
	return ""
}

// UnitMembers returns the component IDs a unit places.
func (m *Model) UnitMembers(u Unit) []string {
	switch u.Kind {
	case GroupUnit:
		if g, ok := m.groups[u.ID]; ok {
			return g.MemberIDs()
		}
	case ComponentUnit:
		if _, ok := m.components[u.ID]; ok {
			return []string{u.ID}
		}
	}
	return nil
}

// UnitsOn returns the units mapped to an FPGA.
func (m *Model) UnitsOn(fpga string) []Unit {
	var out []Unit
	for _, u := range m.Units() {
		if m.UnitTarget(u) == fpga {
			out = append(out, u)
		}
	}
	return out
}

// Assignments returns the current unit to FPGA mapping of all mapped units.
func (m *Model) Assignments() map[Unit]string {
	out := make(map[Unit]string)
	for _, u := range m.Units() {
		if t := m.UnitTarget(u); t != "" {
			out[u] = t
		}
	}
	return out
}

// MappingComplete reports whether every unit is mapped.
func (m *Model) MappingComplete() bool {
	for _, u := range m.Units() {
		if m.UnitTarget(u) == "" {
			return false
		}
	}
	return true
}

// MapUnit assigns a unit to an FPGA after the same feasibility check the
// placement engine uses. Remapping a mapped unit keeps the old placement if
// the new one does not fit.
func (m *Model) MapUnit(u Unit, fpga string) error {
	op := "MapGroupToFPGA"
	if u.Kind == ComponentUnit {
		op = "MapComponentToFPGA"
	}
	var target *string
	switch u.Kind {
	case GroupUnit:
		g, ok := m.groups[u.ID]
		if !ok {
			return missing(op, entityGroup, u.ID)
		}
		target = &g.Target
	case ComponentUnit:
		c, ok := m.components[u.ID]
		if !ok {
			return missing(op, entityComponent, u.ID)
		}
		if c.GroupID != "" {
			return conflict(op, entityComponent, u.ID, "is placed through group %s", c.GroupID)
		}
		target = &c.Target
	}
	if _, ok := m.fpgas[fpga]; !ok {
		return missing(op, entityFPGA, fpga)
	}
	if *target == fpga {
		return nil
	}

	demand := m.UnitDemand(u)
	if err := m.ledger.Reserve(fpga, demand); err != nil {
		return overCapacity(op, u.Kind.String(), u.ID, err)
	}
	if *target != "" {
		if err := m.ledger.Release(*target, demand); err != nil {
			return integrity(op, u.Kind.String(), u.ID, "%v", err)
		}
	}
	*target = fpga
	return nil
}

// UnmapUnit releases a unit's reservation. Unmapping an unmapped unit is a
// no-op.
func (m *Model) UnmapUnit(u Unit) error {
	op := "UnMapGroup"
	if u.Kind == ComponentUnit {
		op = "UnMapComponent"
	}
	var target *string
	switch u.Kind {
	case GroupUnit:
		g, ok := m.groups[u.ID]
		if !ok {
			return missing(op, entityGroup, u.ID)
		}
		target = &g.Target
	case ComponentUnit:
		c, ok := m.components[u.ID]
		if !ok {
			return missing(op, entityComponent, u.ID)
		}
		if c.GroupID != "" {
			return conflict(op, entityComponent, u.ID, "is placed through group %s", c.GroupID)
		}
		target = &c.Target
	}
	if *target == "" {
		return nil
	}
	if err := m.ledger.Release(*target, m.UnitDemand(u)); err != nil {
		return integrity(op, u.Kind.String(), u.ID, "%v", err)
	}
	*target = ""
	return nil
}

// MapGroupToFPGA is the explicit assignment path for a group.
func (m *Model) MapGroupToFPGA(groupID, fpgaID string) error {
	return m.MapUnit(Unit{Kind: GroupUnit, ID: groupID}, fpgaID)
}

// MapComponentToFPGA places an ungrouped component on its own.
func (m *Model) MapComponentToFPGA(componentID, fpgaID string) error {
	return m.MapUnit(Unit{Kind: ComponentUnit, ID: componentID}, fpgaID)
}

// UnMapGroup returns a group to the unmapped state.
func (m *Model) UnMapGroup(groupID string) error {
	return m.UnmapUnit(Unit{Kind: GroupUnit, ID: groupID})
}

// UnMapComponent returns an ungrouped component to the unmapped state.
func (m *Model) UnMapComponent(componentID string) error {
	return m.UnmapUnit(Unit{Kind: ComponentUnit, ID: componentID})
}

// UnMapAll unmaps every unit.
func (m *Model) UnMapAll() error {
	for _, u := range m.Units() {
		if err := m.UnmapUnit(u); err != nil {
			return err
		}
	}
	return nil
}

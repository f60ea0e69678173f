package model

import (
	"strings"

	"github.com/hoangt/cerebrum-design-tool-sub004/pkg/ledger"
)

const entityComponent = "component"

func checkID(op, entity, id string) error {
	if id == "" {
		return badArgument(op, entity, id, "empty ID")
	}
	if strings.ContainsAny(id, " \t\r\n\"") {
		return badArgument(op, entity, id, "ID contains whitespace or quotes")
	}
	return nil
}

func checkResources(op, entity, id string, res ledger.Resources) error {
	for name, amount := range res {
		if err := checkID(op, "resource", name); err != nil {
			return err
		}
		if amount < 0 {
			return badArgument(op, entity, id, "resource %s amount %d is negative", name, amount)
		}
		if amount > ledger.MaxAmount {
			return badArgument(op, entity, id, "resource %s amount %d exceeds %d", name, amount, ledger.MaxAmount)
		}
	}
	return nil
}

// AddComponent creates an ungrouped, unmapped component.
func (m *Model) AddComponent(id, name string, resources ledger.Resources) error {
	const op = "AddComponent"
	if err := checkID(op, entityComponent, id); err != nil {
		return err
	}
	if err := checkResources(op, entityComponent, id, resources); err != nil {
		return err
	}
	if _, ok := m.components[id]; ok {
		return duplicate(op, entityComponent, id)
	}
	m.components[id] = &Component{ID: id, Name: name, Resources: resources.Clone()}
	return nil
}

// RemoveComponent deletes a component. Connections touching it are deleted,
// it leaves its group and any reservation it holds is released.
func (m *Model) RemoveComponent(id string) error {
	const op = "RemoveComponent"
	c, ok := m.components[id]
	if !ok {
		return missing(op, entityComponent, id)
	}
	if c.GroupID != "" {
		if err := m.RemoveComponentFromGroup(c.GroupID, id); err != nil {
			return err
		}
	} else if c.Target != "" {
		if err := m.ledger.Release(c.Target, c.Resources); err != nil {
			return integrity(op, entityComponent, id, "%v", err)
		}
		c.Target = ""
	}
	for _, connID := range sortedKeys(m.connections) {
		conn := m.connections[connID]
		if conn.Source == id || conn.Sink == id {
			delete(m.connections, connID)
		}
	}
	delete(m.components, id)
	return nil
}

// ModifyComponentID renames a component and redirects its group membership
// and every connection endpoint.
func (m *Model) ModifyComponentID(oldID, newID string) error {
	const op = "ModifyComponentID"
	c, ok := m.components[oldID]
	if !ok {
		return missing(op, entityComponent, oldID)
	}
	if err := checkID(op, entityComponent, newID); err != nil {
		return err
	}
	if oldID == newID {
		return nil
	}
	if _, clash := m.components[newID]; clash {
		return duplicate(op, entityComponent, newID)
	}

	if c.GroupID != "" {
		g := m.groups[c.GroupID]
		g.Members.Delete(oldID)
		g.Members.Insert(newID)
	}
	for _, conn := range m.connections {
		if conn.Source == oldID {
			conn.Source = newID
		}
		if conn.Sink == oldID {
			conn.Sink = newID
		}
	}
	delete(m.components, oldID)
	c.ID = newID
	m.components[newID] = c
	return nil
}

// ModifyComponentName changes the display name.
func (m *Model) ModifyComponentName(id, name string) error {
	c, ok := m.components[id]
	if !ok {
		return missing("ModifyComponentName", entityComponent, id)
	}
	c.Name = name
	return nil
}

// SetComponentResource sets one resource demand. If the component is placed
// the new demand must still fit on its FPGA.
func (m *Model) SetComponentResource(id, resource string, amount int64) error {
	const op = "SetComponentResource"
	c, ok := m.components[id]
	if !ok {
		return missing(op, entityComponent, id)
	}
	next := c.Resources.Clone()
	next[resource] = amount
	if err := checkResources(op, entityComponent, id, next); err != nil {
		return err
	}
	return m.replaceDemand(op, c, next)
}

// RemoveComponentResource drops one resource dimension from the demand.
func (m *Model) RemoveComponentResource(id, resource string) error {
	const op = "RemoveComponentResource"
	c, ok := m.components[id]
	if !ok {
		return missing(op, entityComponent, id)
	}
	if _, has := c.Resources[resource]; !has {
		return missing(op, "resource", id+"."+resource)
	}
	next := c.Resources.Clone()
	delete(next, resource)
	return m.replaceDemand(op, c, next)
}

// replaceDemand swaps a component's demand, adjusting the reservation of
// whatever FPGA hosts it.
func (m *Model) replaceDemand(op string, c *Component, next ledger.Resources) error {
	fpga := m.fpgaOf(c)
	if fpga != "" {
		if err := m.adjust(fpga, c.Resources, next); err != nil {
			return overCapacity(op, entityComponent, c.ID, err)
		}
	}
	c.Resources = next
	return nil
}

// adjust moves a reservation on fpga from old to next, restoring old if the
// new amount does not fit.
func (m *Model) adjust(fpga string, old, next ledger.Resources) error {
	if err := m.ledger.Release(fpga, old); err != nil {
		return err
	}
	if err := m.ledger.Reserve(fpga, next); err != nil {
		if restoreErr := m.ledger.Reserve(fpga, old); restoreErr != nil {
			return integrity("adjust", entityFPGA, fpga, "restore after failed reserve: %v", restoreErr)
		}
		return err
	}
	return nil
}

func (m *Model) fpgaOf(c *Component) string {
	if c.GroupID != "" {
		if g, ok := m.groups[c.GroupID]; ok {
			return g.Target
		}
		return ""
	}
	return c.Target
}

// FPGAOf resolves the FPGA hosting a component, through its group if it has
// one. It returns "" for unplaced or unknown components.
func (m *Model) FPGAOf(componentID string) string {
	c, ok := m.components[componentID]
	if !ok {
		return ""
	}
	return m.fpgaOf(c)
}

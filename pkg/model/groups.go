package model

import (
	"github.com/hoangt/cerebrum-design-tool-sub004/pkg/ledger"
	"k8s.io/apimachinery/pkg/util/sets"
)

const entityGroup = "group"

// AddGroup creates an empty, unmapped group.
func (m *Model) AddGroup(id, name string) error {
	const op = "AddGroup"
	if err := checkID(op, entityGroup, id); err != nil {
		return err
	}
	if _, ok := m.groups[id]; ok {
		return duplicate(op, entityGroup, id)
	}
	m.groups[id] = &Group{ID: id, Name: name, Members: sets.New[string]()}
	return nil
}

// RemoveGroup deletes a group. Its reservation is released and its members
// become ungrouped and unmapped.
func (m *Model) RemoveGroup(id string) error {
	const op = "RemoveGroup"
	g, ok := m.groups[id]
	if !ok {
		return missing(op, entityGroup, id)
	}
	if g.Target != "" {
		if err := m.ledger.Release(g.Target, m.groupDemand(g)); err != nil {
			return integrity(op, entityGroup, id, "%v", err)
		}
	}
	for member := range g.Members {
		if c, ok := m.components[member]; ok {
			c.GroupID = ""
		}
	}
	delete(m.groups, id)
	return nil
}

// ModifyGroupID renames a group and redirects every member's GroupID.
func (m *Model) ModifyGroupID(oldID, newID string) error {
	const op = "ModifyGroupID"
	g, ok := m.groups[oldID]
	if !ok {
		return missing(op, entityGroup, oldID)
	}
	if err := checkID(op, entityGroup, newID); err != nil {
		return err
	}
	if oldID == newID {
		return nil
	}
	if _, clash := m.groups[newID]; clash {
		return duplicate(op, entityGroup, newID)
	}
	for member := range g.Members {
		m.components[member].GroupID = newID
	}
	delete(m.groups, oldID)
	g.ID = newID
	m.groups[newID] = g
	return nil
}

// ModifyGroupName changes the display name.
func (m *Model) ModifyGroupName(id, name string) error {
	g, ok := m.groups[id]
	if !ok {
		return missing("ModifyGroupName", entityGroup, id)
	}
	g.Name = name
	return nil
}

// AddComponentToGroup moves an ungrouped component into a group. A component
// placed on its own gives up that placement. If the group is mapped, the
// component's demand must fit on the group's FPGA.
func (m *Model) AddComponentToGroup(groupID, componentID string) error {
	const op = "AddComponentToGroup"
	g, ok := m.groups[groupID]
	if !ok {
		return missing(op, entityGroup, groupID)
	}
	c, ok := m.components[componentID]
	if !ok {
		return missing(op, entityComponent, componentID)
	}
	if c.GroupID != "" {
		return conflict(op, entityComponent, componentID, "already a member of group %s", c.GroupID)
	}

	previous := c.Target
	if previous != "" {
		if err := m.ledger.Release(previous, c.Resources); err != nil {
			return integrity(op, entityComponent, componentID, "%v", err)
		}
	}
	if g.Target != "" {
		if err := m.ledger.Reserve(g.Target, c.Resources); err != nil {
			if previous != "" {
				if restoreErr := m.ledger.Reserve(previous, c.Resources); restoreErr != nil {
					return integrity(op, entityComponent, componentID, "restore: %v", restoreErr)
				}
			}
			return overCapacity(op, entityGroup, groupID, err)
		}
	}
	c.Target = ""
	c.GroupID = groupID
	g.Members.Insert(componentID)
	return nil
}

// RemoveComponentFromGroup detaches a member. The component leaves the
// group's FPGA and becomes an unmapped singleton.
func (m *Model) RemoveComponentFromGroup(groupID, componentID string) error {
	const op = "RemoveComponentFromGroup"
	g, ok := m.groups[groupID]
	if !ok {
		return missing(op, entityGroup, groupID)
	}
	c, ok := m.components[componentID]
	if !ok {
		return missing(op, entityComponent, componentID)
	}
	if !g.Members.Has(componentID) {
		return &Error{Kind: ReferenceError, Op: op, Entity: entityComponent, ID: componentID,
			Msg: "is not a member of group " + groupID}
	}
	if g.Target != "" {
		if err := m.ledger.Release(g.Target, c.Resources); err != nil {
			return integrity(op, entityGroup, groupID, "%v", err)
		}
	}
	g.Members.Delete(componentID)
	c.GroupID = ""
	return nil
}

func (m *Model) groupDemand(g *Group) ledger.Resources {
	total := ledger.Resources{}
	for member := range g.Members {
		if c, ok := m.components[member]; ok {
			total.Add(c.Resources)
		}
	}
	return total
}

// GroupDemand returns the aggregate demand of a group's members.
func (m *Model) GroupDemand(id string) (ledger.Resources, bool) {
	g, ok := m.groups[id]
	if !ok {
		return nil, false
	}
	return m.groupDemand(g), true
}

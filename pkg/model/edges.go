package model

import "math"

const (
	entityConnection = "connection"
	entityLink       = "link"
)

func checkDensity(op, id string, density float64) error {
	if math.IsNaN(density) || math.IsInf(density, 0) || density < 0 {
		return badArgument(op, entityConnection, id, "density %v must be a finite non-negative number", density)
	}
	return nil
}

func checkSpeed(op, id string, speed float64) error {
	if math.IsNaN(speed) || math.IsInf(speed, 0) || speed <= 0 {
		return badArgument(op, entityLink, id, "speed %v must be a finite positive number", speed)
	}
	return nil
}

// AddConnection creates a directed data-flow edge between two components.
func (m *Model) AddConnection(id, name, source, sink string, density float64) error {
	const op = "AddConnection"
	if err := checkID(op, entityConnection, id); err != nil {
		return err
	}
	if _, ok := m.connections[id]; ok {
		return duplicate(op, entityConnection, id)
	}
	if err := m.checkConnectionEnds(op, id, source, sink); err != nil {
		return err
	}
	if err := checkDensity(op, id, density); err != nil {
		return err
	}
	m.connections[id] = &Connection{ID: id, Name: name, Density: density, Source: source, Sink: sink}
	return nil
}

func (m *Model) checkConnectionEnds(op, id, source, sink string) error {
	if _, ok := m.components[source]; !ok {
		return missing(op, entityComponent, source)
	}
	if _, ok := m.components[sink]; !ok {
		return missing(op, entityComponent, sink)
	}
	if source == sink {
		return badArgument(op, entityConnection, id, "source and sink are both %s", source)
	}
	return nil
}

// RemoveConnection deletes a connection.
func (m *Model) RemoveConnection(id string) error {
	if _, ok := m.connections[id]; !ok {
		return missing("RemoveConnection", entityConnection, id)
	}
	delete(m.connections, id)
	return nil
}

// ModifyConnectionID re-keys a connection.
func (m *Model) ModifyConnectionID(oldID, newID string) error {
	const op = "ModifyConnectionID"
	c, ok := m.connections[oldID]
	if !ok {
		return missing(op, entityConnection, oldID)
	}
	if err := checkID(op, entityConnection, newID); err != nil {
		return err
	}
	if oldID == newID {
		return nil
	}
	if _, clash := m.connections[newID]; clash {
		return duplicate(op, entityConnection, newID)
	}
	delete(m.connections, oldID)
	c.ID = newID
	m.connections[newID] = c
	return nil
}

// ModifyConnectionName changes the display name.
func (m *Model) ModifyConnectionName(id, name string) error {
	c, ok := m.connections[id]
	if !ok {
		return missing("ModifyConnectionName", entityConnection, id)
	}
	c.Name = name
	return nil
}

// ModifyConnectionDensity changes the data density weight.
func (m *Model) ModifyConnectionDensity(id string, density float64) error {
	const op = "ModifyConnectionDensity"
	c, ok := m.connections[id]
	if !ok {
		return missing(op, entityConnection, id)
	}
	if err := checkDensity(op, id, density); err != nil {
		return err
	}
	c.Density = density
	return nil
}

// ModifyConnectionSource re-points the source endpoint.
func (m *Model) ModifyConnectionSource(id, source string) error {
	const op = "ModifyConnectionSource"
	c, ok := m.connections[id]
	if !ok {
		return missing(op, entityConnection, id)
	}
	if err := m.checkConnectionEnds(op, id, source, c.Sink); err != nil {
		return err
	}
	c.Source = source
	return nil
}

// ModifyConnectionSink re-points the sink endpoint.
func (m *Model) ModifyConnectionSink(id, sink string) error {
	const op = "ModifyConnectionSink"
	c, ok := m.connections[id]
	if !ok {
		return missing(op, entityConnection, id)
	}
	if err := m.checkConnectionEnds(op, id, c.Source, sink); err != nil {
		return err
	}
	c.Sink = sink
	return nil
}

// AddLink creates a physical edge between two FPGAs.
func (m *Model) AddLink(id, name, source, sink string, speed float64, bidirectional bool) error {
	const op = "AddLink"
	if err := checkID(op, entityLink, id); err != nil {
		return err
	}
	if _, ok := m.links[id]; ok {
		return duplicate(op, entityLink, id)
	}
	if err := m.checkLinkEnds(op, id, source, sink); err != nil {
		return err
	}
	if err := checkSpeed(op, id, speed); err != nil {
		return err
	}
	m.links[id] = &Link{ID: id, Name: name, Speed: speed, Source: source, Sink: sink, Bidirectional: bidirectional}
	return nil
}

func (m *Model) checkLinkEnds(op, id, source, sink string) error {
	if _, ok := m.fpgas[source]; !ok {
		return missing(op, entityFPGA, source)
	}
	if _, ok := m.fpgas[sink]; !ok {
		return missing(op, entityFPGA, sink)
	}
	if source == sink {
		return badArgument(op, entityLink, id, "source and sink are both %s", source)
	}
	return nil
}

// RemoveLink deletes a link.
func (m *Model) RemoveLink(id string) error {
	if _, ok := m.links[id]; !ok {
		return missing("RemoveLink", entityLink, id)
	}
	delete(m.links, id)
	return nil
}

// ModifyLinkID re-keys a link.
func (m *Model) ModifyLinkID(oldID, newID string) error {
	const op = "ModifyLinkID"
	l, ok := m.links[oldID]
	if !ok {
		return missing(op, entityLink, oldID)
	}
	if err := checkID(op, entityLink, newID); err != nil {
		return err
	}
	if oldID == newID {
		return nil
	}
	if _, clash := m.links[newID]; clash {
		return duplicate(op, entityLink, newID)
	}
	delete(m.links, oldID)
	l.ID = newID
	m.links[newID] = l
	return nil
}

// ModifyLinkName changes the display name.
func (m *Model) ModifyLinkName(id, name string) error {
	l, ok := m.links[id]
	if !ok {
		return missing("ModifyLinkName", entityLink, id)
	}
	l.Name = name
	return nil
}

// ModifyLinkSpeed changes the link speed.
func (m *Model) ModifyLinkSpeed(id string, speed float64) error {
	const op = "ModifyLinkSpeed"
	l, ok := m.links[id]
	if !ok {
		return missing(op, entityLink, id)
	}
	if err := checkSpeed(op, id, speed); err != nil {
		return err
	}
	l.Speed = speed
	return nil
}

// ModifyLinkSource re-points the source FPGA.
func (m *Model) ModifyLinkSource(id, source string) error {
	const op = "ModifyLinkSource"
	l, ok := m.links[id]
	if !ok {
		return missing(op, entityLink, id)
	}
	if err := m.checkLinkEnds(op, id, source, l.Sink); err != nil {
		return err
	}
	l.Source = source
	return nil
}

// ModifyLinkSink re-points the sink FPGA.
func (m *Model) ModifyLinkSink(id, sink string) error {
	const op = "ModifyLinkSink"
	l, ok := m.links[id]
	if !ok {
		return missing(op, entityLink, id)
	}
	if err := m.checkLinkEnds(op, id, l.Source, sink); err != nil {
		return err
	}
	l.Sink = sink
	return nil
}

// ModifyLinkBidirectional switches a link between directed and bidirectional.
func (m *Model) ModifyLinkBidirectional(id string, bidirectional bool) error {
	l, ok := m.links[id]
	if !ok {
		return missing("ModifyLinkBidirectional", entityLink, id)
	}
	l.Bidirectional = bidirectional
	return nil
}

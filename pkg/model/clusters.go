package model

import "k8s.io/apimachinery/pkg/util/sets"

const entityCluster = "cluster"

// AddCluster creates an empty cluster.
func (m *Model) AddCluster(id, name string) error {
	const op = "AddCluster"
	if err := checkID(op, entityCluster, id); err != nil {
		return err
	}
	if _, ok := m.clusters[id]; ok {
		return duplicate(op, entityCluster, id)
	}
	m.clusters[id] = &Cluster{ID: id, Name: name, Members: sets.New[string]()}
	return nil
}

// RemoveCluster deletes a cluster; its FPGAs become unclustered.
func (m *Model) RemoveCluster(id string) error {
	cl, ok := m.clusters[id]
	if !ok {
		return missing("RemoveCluster", entityCluster, id)
	}
	for member := range cl.Members {
		if f, ok := m.fpgas[member]; ok {
			f.ClusterID = ""
		}
	}
	delete(m.clusters, id)
	return nil
}

// ModifyClusterID renames a cluster and redirects its FPGAs.
func (m *Model) ModifyClusterID(oldID, newID string) error {
	const op = "ModifyClusterID"
	cl, ok := m.clusters[oldID]
	if !ok {
		return missing(op, entityCluster, oldID)
	}
	if err := checkID(op, entityCluster, newID); err != nil {
		return err
	}
	if oldID == newID {
		return nil
	}
	if _, clash := m.clusters[newID]; clash {
		return duplicate(op, entityCluster, newID)
	}
	for member := range cl.Members {
		m.fpgas[member].ClusterID = newID
	}
	delete(m.clusters, oldID)
	cl.ID = newID
	m.clusters[newID] = cl
	return nil
}

// ModifyClusterName changes the display name.
func (m *Model) ModifyClusterName(id, name string) error {
	cl, ok := m.clusters[id]
	if !ok {
		return missing("ModifyClusterName", entityCluster, id)
	}
	cl.Name = name
	return nil
}

// AddFPGAToCluster puts an unclustered FPGA into a cluster.
func (m *Model) AddFPGAToCluster(clusterID, fpgaID string) error {
	const op = "AddFPGAToCluster"
	cl, ok := m.clusters[clusterID]
	if !ok {
		return missing(op, entityCluster, clusterID)
	}
	f, ok := m.fpgas[fpgaID]
	if !ok {
		return missing(op, entityFPGA, fpgaID)
	}
	if f.ClusterID != "" {
		return conflict(op, entityFPGA, fpgaID, "already a member of cluster %s", f.ClusterID)
	}
	cl.Members.Insert(fpgaID)
	f.ClusterID = clusterID
	return nil
}

// RemoveFPGAFromCluster detaches a member FPGA.
func (m *Model) RemoveFPGAFromCluster(clusterID, fpgaID string) error {
	const op = "RemoveFPGAFromCluster"
	cl, ok := m.clusters[clusterID]
	if !ok {
		return missing(op, entityCluster, clusterID)
	}
	f, ok := m.fpgas[fpgaID]
	if !ok {
		return missing(op, entityFPGA, fpgaID)
	}
	if !cl.Members.Has(fpgaID) {
		return &Error{Kind: ReferenceError, Op: op, Entity: entityFPGA, ID: fpgaID,
			Msg: "is not a member of cluster " + clusterID}
	}
	cl.Members.Delete(fpgaID)
	f.ClusterID = ""
	return nil
}

// ClusterOf returns the cluster of an FPGA, or "".
func (m *Model) ClusterOf(fpgaID string) string {
	if f, ok := m.fpgas[fpgaID]; ok {
		return f.ClusterID
	}
	return ""
}

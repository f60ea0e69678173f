package command

import (
	"io"

	"github.com/hoangt/cerebrum-design-tool-sub004/pkg/ledger"
)

type resetCmd struct{}

func (resetCmd) Name() string { return "reset" }
func (resetCmd) Execute(s *Session, _ io.Writer) error {
	s.model.Reset()
	s.lastRun = nil
	return nil
}

// Components

type addCompCmd struct {
	ID, Label string
	Resources ledger.Resources
}

func (addCompCmd) Name() string { return "addcomp" }
func (c addCompCmd) Execute(s *Session, _ io.Writer) error {
	return s.model.AddComponent(c.ID, c.Label, c.Resources)
}

type delCompCmd struct{ ID string }

func (delCompCmd) Name() string { return "delcomp" }
func (c delCompCmd) Execute(s *Session, _ io.Writer) error {
	return s.model.RemoveComponent(c.ID)
}

type setCompIDCmd struct{ ID, NewID string }

func (setCompIDCmd) Name() string { return "setcompid" }
func (c setCompIDCmd) Execute(s *Session, _ io.Writer) error {
	return s.model.ModifyComponentID(c.ID, c.NewID)
}

type setCompNameCmd struct{ ID, Value string }

func (setCompNameCmd) Name() string { return "setcompname" }
func (c setCompNameCmd) Execute(s *Session, _ io.Writer) error {
	return s.model.ModifyComponentName(c.ID, c.Value)
}

type setCompResCmd struct {
	ID, Resource string
	Amount       int64
}

func (setCompResCmd) Name() string { return "setcompres" }
func (c setCompResCmd) Execute(s *Session, _ io.Writer) error {
	return s.model.SetComponentResource(c.ID, c.Resource, c.Amount)
}

type delCompResCmd struct{ ID, Resource string }

func (delCompResCmd) Name() string { return "delcompres" }
func (c delCompResCmd) Execute(s *Session, _ io.Writer) error {
	return s.model.RemoveComponentResource(c.ID, c.Resource)
}

// FPGAs

type addFPGACmd struct {
	ID, Label, Arch string
	Capacity        ledger.Resources
}

func (addFPGACmd) Name() string { return "addfpga" }
func (c addFPGACmd) Execute(s *Session, _ io.Writer) error {
	return s.model.AddFPGA(c.ID, c.Label, c.Arch, c.Capacity)
}

type delFPGACmd struct{ ID string }

func (delFPGACmd) Name() string { return "delfpga" }
func (c delFPGACmd) Execute(s *Session, _ io.Writer) error {
	return s.model.RemoveFPGA(c.ID)
}

type setFPGAIDCmd struct{ ID, NewID string }

func (setFPGAIDCmd) Name() string { return "setfpgaid" }
func (c setFPGAIDCmd) Execute(s *Session, _ io.Writer) error {
	return s.model.ModifyFPGAID(c.ID, c.NewID)
}

type setFPGANameCmd struct{ ID, Value string }

func (setFPGANameCmd) Name() string { return "setfpganame" }
func (c setFPGANameCmd) Execute(s *Session, _ io.Writer) error {
	return s.model.ModifyFPGAName(c.ID, c.Value)
}

type setFPGAArchCmd struct{ ID, Value string }

func (setFPGAArchCmd) Name() string { return "setfpgaarch" }
func (c setFPGAArchCmd) Execute(s *Session, _ io.Writer) error {
	return s.model.ModifyFPGAArchitecture(c.ID, c.Value)
}

type setFPGAResCmd struct {
	ID, Resource string
	Amount       int64
}

func (setFPGAResCmd) Name() string { return "setfpgares" }
func (c setFPGAResCmd) Execute(s *Session, _ io.Writer) error {
	return s.model.SetFPGAResource(c.ID, c.Resource, c.Amount)
}

type delFPGAResCmd struct{ ID, Resource string }

func (delFPGAResCmd) Name() string { return "delfpgares" }
func (c delFPGAResCmd) Execute(s *Session, _ io.Writer) error {
	return s.model.RemoveFPGAResource(c.ID, c.Resource)
}

// Groups

type addGroupCmd struct{ ID, Value string }

func (addGroupCmd) Name() string { return "addgroup" }
func (c addGroupCmd) Execute(s *Session, _ io.Writer) error {
	return s.model.AddGroup(c.ID, c.Value)
}

type delGroupCmd struct{ ID string }

func (delGroupCmd) Name() string { return "delgroup" }
func (c delGroupCmd) Execute(s *Session, _ io.Writer) error {
	return s.model.RemoveGroup(c.ID)
}

type setGroupIDCmd struct{ ID, NewID string }

func (setGroupIDCmd) Name() string { return "setgroupid" }
func (c setGroupIDCmd) Execute(s *Session, _ io.Writer) error {
	return s.model.ModifyGroupID(c.ID, c.NewID)
}

type setGroupNameCmd struct{ ID, Value string }

func (setGroupNameCmd) Name() string { return "setgroupname" }
func (c setGroupNameCmd) Execute(s *Session, _ io.Writer) error {
	return s.model.ModifyGroupName(c.ID, c.Value)
}

type groupAddCmd struct{ Group, Component string }

func (groupAddCmd) Name() string { return "groupadd" }
func (c groupAddCmd) Execute(s *Session, _ io.Writer) error {
	return s.model.AddComponentToGroup(c.Group, c.Component)
}

type groupDelCmd struct{ Group, Component string }

func (groupDelCmd) Name() string { return "groupdel" }
func (c groupDelCmd) Execute(s *Session, _ io.Writer) error {
	return s.model.RemoveComponentFromGroup(c.Group, c.Component)
}

// Clusters

type addClusterCmd struct{ ID, Value string }

func (addClusterCmd) Name() string { return "addcluster" }
func (c addClusterCmd) Execute(s *Session, _ io.Writer) error {
	return s.model.AddCluster(c.ID, c.Value)
}

type delClusterCmd struct{ ID string }

func (delClusterCmd) Name() string { return "delcluster" }
func (c delClusterCmd) Execute(s *Session, _ io.Writer) error {
	return s.model.RemoveCluster(c.ID)
}

type setClusterIDCmd struct{ ID, NewID string }

func (setClusterIDCmd) Name() string { return "setclusterid" }
func (c setClusterIDCmd) Execute(s *Session, _ io.Writer) error {
	return s.model.ModifyClusterID(c.ID, c.NewID)
}

type setClusterNameCmd struct{ ID, Value string }

func (setClusterNameCmd) Name() string { return "setclustername" }
func (c setClusterNameCmd) Execute(s *Session, _ io.Writer) error {
	return s.model.ModifyClusterName(c.ID, c.Value)
}

type clusterAddCmd struct{ Cluster, FPGA string }

func (clusterAddCmd) Name() string { return "clusteradd" }
func (c clusterAddCmd) Execute(s *Session, _ io.Writer) error {
	return s.model.AddFPGAToCluster(c.Cluster, c.FPGA)
}

type clusterDelCmd struct{ Cluster, FPGA string }

func (clusterDelCmd) Name() string { return "clusterdel" }
func (c clusterDelCmd) Execute(s *Session, _ io.Writer) error {
	return s.model.RemoveFPGAFromCluster(c.Cluster, c.FPGA)
}

// Connections

type addConnCmd struct {
	ID, Label, Source, Sink string
	Density                 float64
}

func (addConnCmd) Name() string { return "addconn" }
func (c addConnCmd) Execute(s *Session, _ io.Writer) error {
	return s.model.AddConnection(c.ID, c.Label, c.Source, c.Sink, c.Density)
}

type delConnCmd struct{ ID string }

func (delConnCmd) Name() string { return "delconn" }
func (c delConnCmd) Execute(s *Session, _ io.Writer) error {
	return s.model.RemoveConnection(c.ID)
}

type setConnIDCmd struct{ ID, NewID string }

func (setConnIDCmd) Name() string { return "setconnid" }
func (c setConnIDCmd) Execute(s *Session, _ io.Writer) error {
	return s.model.ModifyConnectionID(c.ID, c.NewID)
}

type setConnNameCmd struct{ ID, Value string }

func (setConnNameCmd) Name() string { return "setconnname" }
func (c setConnNameCmd) Execute(s *Session, _ io.Writer) error {
	return s.model.ModifyConnectionName(c.ID, c.Value)
}

type setConnDensityCmd struct {
	ID      string
	Density float64
}

func (setConnDensityCmd) Name() string { return "setconndensity" }
func (c setConnDensityCmd) Execute(s *Session, _ io.Writer) error {
	return s.model.ModifyConnectionDensity(c.ID, c.Density)
}

type setConnSrcCmd struct{ ID, Component string }

func (setConnSrcCmd) Name() string { return "setconnsrc" }
func (c setConnSrcCmd) Execute(s *Session, _ io.Writer) error {
	return s.model.ModifyConnectionSource(c.ID, c.Component)
}

type setConnSinkCmd struct{ ID, Component string }

func (setConnSinkCmd) Name() string { return "setconnsink" }
func (c setConnSinkCmd) Execute(s *Session, _ io.Writer) error {
	return s.model.ModifyConnectionSink(c.ID, c.Component)
}

// Links

type addLinkCmd struct {
	ID, Label, Source, Sink string
	Speed                   float64
	Bidirectional           bool
}

func (addLinkCmd) Name() string { return "addlink" }
func (c addLinkCmd) Execute(s *Session, _ io.Writer) error {
	return s.model.AddLink(c.ID, c.Label, c.Source, c.Sink, c.Speed, c.Bidirectional)
}

type delLinkCmd struct{ ID string }

func (delLinkCmd) Name() string { return "dellink" }
func (c delLinkCmd) Execute(s *Session, _ io.Writer) error {
	return s.model.RemoveLink(c.ID)
}

type setLinkIDCmd struct{ ID, NewID string }

func (setLinkIDCmd) Name() string { return "setlinkid" }
func (c setLinkIDCmd) Execute(s *Session, _ io.Writer) error {
	return s.model.ModifyLinkID(c.ID, c.NewID)
}

type setLinkNameCmd struct{ ID, Value string }

func (setLinkNameCmd) Name() string { return "setlinkname" }
func (c setLinkNameCmd) Execute(s *Session, _ io.Writer) error {
	return s.model.ModifyLinkName(c.ID, c.Value)
}

type setLinkSpeedCmd struct {
	ID    string
	Speed float64
}

func (setLinkSpeedCmd) Name() string { return "setlinkspeed" }
func (c setLinkSpeedCmd) Execute(s *Session, _ io.Writer) error {
	return s.model.ModifyLinkSpeed(c.ID, c.Speed)
}

type setLinkSrcCmd struct{ ID, FPGA string }

func (setLinkSrcCmd) Name() string { return "setlinksrc" }
func (c setLinkSrcCmd) Execute(s *Session, _ io.Writer) error {
	return s.model.ModifyLinkSource(c.ID, c.FPGA)
}

type setLinkSinkCmd struct{ ID, FPGA string }

func (setLinkSinkCmd) Name() string { return "setlinksink" }
func (c setLinkSinkCmd) Execute(s *Session, _ io.Writer) error {
	return s.model.ModifyLinkSink(c.ID, c.FPGA)
}

type setLinkBidirCmd struct {
	ID            string
	Bidirectional bool
}

func (setLinkBidirCmd) Name() string { return "setlinkbidir" }
func (c setLinkBidirCmd) Execute(s *Session, _ io.Writer) error {
	return s.model.ModifyLinkBidirectional(c.ID, c.Bidirectional)
}

package placement

import (
	"math"

	"github.com/hoangt/cerebrum-design-tool-sub004/pkg/model"
	"github.com/hoangt/cerebrum-design-tool-sub004/pkg/topology"
)

const epsilon = 1e-9

// PairCost is the communication cost of density units flowing from FPGA
// `from` to FPGA `to`: 0 on the same FPGA, Density × PathCost otherwise and
// Density × UnroutablePenalty when no path exists.
func PairCost(g *topology.Graph, density float64, from, to string, opts Options) float64 {
	if from == to {
		return 0
	}
	pc := g.PathCost(from, to)
	if math.IsInf(pc, 1) {
		return density * opts.UnroutablePenalty
	}
	return density * pc
}

// TotalCost sums PairCost over every connection whose endpoints are both
// placed.
func TotalCost(m *model.Model, g *topology.Graph, opts Options) float64 {
	var total float64
	for _, c := range m.Connections() {
		from, to := m.FPGAOf(c.Source), m.FPGAOf(c.Sink)
		if from == "" || to == "" {
			continue
		}
		total += PairCost(g, c.Density, from, to, opts)
	}
	return total
}

// Cost builds the topology for m and returns its current communication cost.
func Cost(m *model.Model, opts Options) float64 {
	return TotalCost(m, topology.New(m), opts)
}

// crossCluster reports whether two FPGAs sit in different clusters. An
// unclustered FPGA paired with a clustered one counts as crossing.
func crossCluster(m *model.Model, a, b string) bool {
	if a == b {
		return false
	}
	fa, _ := m.FPGA(a)
	fb, _ := m.FPGA(b)
	return fa.ClusterID != fb.ClusterID
}

func less(a, b float64) bool { return a < b-epsilon }

func equal(a, b float64) bool { return math.Abs(a-b) <= epsilon }

package topology

import (
	"math"
	"testing"

	"github.com/hoangt/cerebrum-design-tool-sub004/pkg/ledger"
	"github.com/hoangt/cerebrum-design-tool-sub004/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// line builds F1 <-> F2 <-> F3 plus an isolated F4 and a one-way F3 -> F5.
func line(t *testing.T) *model.Model {
	t.Helper()
	m := model.New()
	for _, id := range []string{"F1", "F2", "F3", "F4", "F5"} {
		require.NoError(t, m.AddFPGA(id, id, "virtex5", ledger.Resources{"LUT": 100}))
	}
	require.NoError(t, m.AddLink("L12", "a", "F1", "F2", 10, true))
	require.NoError(t, m.AddLink("L23", "b", "F2", "F3", 5, true))
	require.NoError(t, m.AddLink("L35", "c", "F3", "F5", 2, false))
	return m
}

func TestShortestPath(t *testing.T) {
	g := New(line(t))

	p, ok := g.ShortestPath("F1", "F3")
	require.True(t, ok)
	assert.Equal(t, []string{"F1", "F2", "F3"}, p.Hops)
	assert.Equal(t, []string{"L12", "L23"}, p.Links)
	assert.InDelta(t, 0.1+0.2, p.Cost, 1e-12)

	p, ok = g.ShortestPath("F3", "F1")
	require.True(t, ok)
	assert.Equal(t, []string{"F3", "F2", "F1"}, p.Hops)

	p, ok = g.ShortestPath("F2", "F2")
	require.True(t, ok)
	assert.Equal(t, []string{"F2"}, p.Hops)
	assert.Zero(t, p.Cost)

	_, ok = g.ShortestPath("F1", "F4")
	assert.False(t, ok)
}

func TestPathCost(t *testing.T) {
	g := New(line(t))

	assert.Zero(t, g.PathCost("F1", "F1"))
	assert.InDelta(t, 0.1, g.PathCost("F1", "F2"), 1e-12)
	assert.InDelta(t, 0.5, g.PathCost("F3", "F5"), 1e-12)
	assert.True(t, math.IsInf(g.PathCost("F5", "F3"), 1), "one-way link only goes forward")
	assert.True(t, math.IsInf(g.PathCost("F1", "F4"), 1))
	assert.False(t, g.Reachable("F4", "F1"))
}

func TestParallelLinksPreferFaster(t *testing.T) {
	m := model.New()
	require.NoError(t, m.AddFPGA("F1", "a", "x", nil))
	require.NoError(t, m.AddFPGA("F2", "b", "x", nil))
	require.NoError(t, m.AddLink("LA", "slow", "F1", "F2", 1, true))
	require.NoError(t, m.AddLink("LB", "fast", "F1", "F2", 4, true))

	g := New(m)
	p, ok := g.ShortestPath("F1", "F2")
	require.True(t, ok)
	assert.Equal(t, []string{"LB"}, p.Links)
	assert.InDelta(t, 0.25, p.Cost, 1e-12)
}

func TestEqualCostTieBreakIsDeterministic(t *testing.T) {
	m := model.New()
	for _, id := range []string{"A", "B", "C", "D"} {
		require.NoError(t, m.AddFPGA(id, id, "x", nil))
	}
	require.NoError(t, m.AddLink("L1", "", "A", "C", 1, true))
	require.NoError(t, m.AddLink("L2", "", "A", "B", 1, true))
	require.NoError(t, m.AddLink("L3", "", "B", "D", 1, true))
	require.NoError(t, m.AddLink("L4", "", "C", "D", 1, true))

	for i := 0; i < 5; i++ {
		p, ok := New(m).ShortestPath("A", "D")
		require.True(t, ok)
		assert.Equal(t, []string{"A", "B", "D"}, p.Hops)
	}
}

func TestIslands(t *testing.T) {
	g := New(line(t))
	assert.Equal(t, [][]string{{"F1", "F2", "F3", "F5"}, {"F4"}}, g.Islands())
	assert.Equal(t, 0, g.IslandOf("F5"))
	assert.Equal(t, 1, g.IslandOf("F4"))
	assert.Equal(t, -1, g.IslandOf("F9"))

	assert.Equal(t, map[string]int{"F1": 0, "F2": 0, "F3": 0, "F5": 0, "F4": 1}, IslandIndex(g.Islands()))
	assert.Empty(t, IslandIndex(nil))
}

func TestNeighbors(t *testing.T) {
	m := line(t)
	require.NoError(t, m.AddComponent("C1", "a", nil))
	require.NoError(t, m.AddComponent("C2", "b", nil))
	require.NoError(t, m.AddComponent("C3", "c", nil))
	require.NoError(t, m.AddConnection("X2", "", "C3", "C1", 1))
	require.NoError(t, m.AddConnection("X1", "", "C1", "C2", 2))

	g := New(m)
	n := g.Neighbors("C1")
	require.Len(t, n, 2)
	assert.Equal(t, "X1", n[0].ID)
	assert.Equal(t, "C2", Other(n[0], "C1"))
	assert.Equal(t, "C3", Other(n[1], "C1"))
	assert.Empty(t, g.Neighbors("C9"))
}

func TestTables(t *testing.T) {
	tables := New(line(t)).Tables()

	hop, ok := tables["F1"].FindHop("F3")
	require.True(t, ok)
	assert.Equal(t, Hop{NextHop: "F2", Link: "L12"}, hop)

	// Every destination of F1 leaves through F2.
	hop, ok = tables["F1"].FindHop("F9")
	require.True(t, ok)
	assert.Equal(t, "F2", hop.NextHop)

	assert.Equal(t, []string{"F1", "F3", "F5"}, tables["F2"].Destinations())
	_, ok = tables["F2"].FindHop("F4")
	assert.False(t, ok)

	assert.Empty(t, tables["F4"].Destinations())
}

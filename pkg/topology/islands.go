package topology

import "sort"

// unionFind tracks FPGA connectivity with union by rank and path
// compression.
type unionFind struct {
	parent map[string]string
	rank   map[string]int
}

func newUnionFind(ids []string) *unionFind {
	uf := &unionFind{
		parent: make(map[string]string, len(ids)),
		rank:   make(map[string]int, len(ids)),
	}
	for _, id := range ids {
		uf.parent[id] = id
	}
	return uf
}

func (uf *unionFind) find(id string) string {
	root := id
	for uf.parent[root] != root {
		root = uf.parent[root]
	}
	for id != root {
		next := uf.parent[id]
		uf.parent[id] = root
		id = next
	}
	return root
}

func (uf *unionFind) union(a, b string) {
	ra, rb := uf.find(a), uf.find(b)
	if ra == rb {
		return
	}
	switch {
	case uf.rank[ra] < uf.rank[rb]:
		uf.parent[ra] = rb
	case uf.rank[ra] > uf.rank[rb]:
		uf.parent[rb] = ra
	default:
		uf.parent[rb] = ra
		uf.rank[ra]++
	}
}

// Islands partitions the FPGAs into sets connected by links, ignoring link
// direction. Each island is sorted and islands are ordered by their first
// FPGA ID. An FPGA with no links forms an island of its own.
func (g *Graph) Islands() [][]string {
	uf := newUnionFind(g.nodes)
	for _, edges := range g.adj {
		for _, e := range edges {
			uf.union(e.From, e.To)
		}
	}

	byRoot := make(map[string][]string)
	for _, id := range g.nodes {
		root := uf.find(id)
		byRoot[root] = append(byRoot[root], id)
	}
	islands := make([][]string, 0, len(byRoot))
	for _, members := range byRoot {
		sort.Strings(members)
		islands = append(islands, members)
	}
	sort.Slice(islands, func(i, j int) bool { return islands[i][0] < islands[j][0] })
	return islands
}

// IslandIndex maps every FPGA in islands to the index of its island.
func IslandIndex(islands [][]string) map[string]int {
	index := make(map[string]int)
	for i, island := range islands {
		for _, id := range island {
			index[id] = i
		}
	}
	return index
}

// IslandOf returns the index into Islands of the island holding fpga, or -1.
func (g *Graph) IslandOf(fpga string) int {
	if i, ok := IslandIndex(g.Islands())[fpga]; ok {
		return i
	}
	return -1
}

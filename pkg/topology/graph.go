// Package topology turns the FPGAs and links of a model into a weighted
// graph and answers path questions on it: shortest paths (weight 1/speed),
// path costs between FPGAs, connectivity islands and next-hop tables.
//
// A Graph is an immutable snapshot. Rebuild it after the model changes.
package topology

import (
	"container/heap"
	"math"
	"sort"

	"github.com/hoangt/cerebrum-design-tool-sub004/pkg/model"
)

// Edge is one traversable direction of a link.
type Edge struct {
	Link   string
	From   string
	To     string
	Weight float64
}

// Path is a shortest path between two FPGAs.
type Path struct {
	Hops  []string // FPGA IDs, source first
	Links []string // link IDs, len(Hops)-1 entries
	Cost  float64
}

// Graph is the FPGA/link graph with all-pairs shortest paths precomputed.
type Graph struct {
	nodes []string
	adj   map[string][]Edge
	dist  map[string]map[string]float64
	prev  map[string]map[string]Edge
	conns map[string][]model.Connection
}

// New builds the graph from the current FPGAs, links and connections of m.
func New(m *model.Model) *Graph {
	g := &Graph{
		adj:   make(map[string][]Edge),
		dist:  make(map[string]map[string]float64),
		prev:  make(map[string]map[string]Edge),
		conns: make(map[string][]model.Connection),
	}
	for _, f := range m.FPGAs() {
		g.nodes = append(g.nodes, f.ID)
		g.adj[f.ID] = nil
	}
	for _, l := range m.Links() {
		w := 1 / l.Speed
		g.adj[l.Source] = append(g.adj[l.Source], Edge{Link: l.ID, From: l.Source, To: l.Sink, Weight: w})
		if l.Bidirectional {
			g.adj[l.Sink] = append(g.adj[l.Sink], Edge{Link: l.ID, From: l.Sink, To: l.Source, Weight: w})
		}
	}
	for _, edges := range g.adj {
		sort.Slice(edges, func(i, j int) bool {
			if edges[i].To != edges[j].To {
				return edges[i].To < edges[j].To
			}
			return edges[i].Link < edges[j].Link
		})
	}
	for _, c := range m.Connections() {
		g.conns[c.Source] = append(g.conns[c.Source], c)
		g.conns[c.Sink] = append(g.conns[c.Sink], c)
	}
	for _, src := range g.nodes {
		g.dijkstra(src)
	}
	return g
}

// FPGAs returns the node IDs in ascending order.
func (g *Graph) FPGAs() []string {
	return append([]string(nil), g.nodes...)
}

// Edges returns the outgoing edges of an FPGA ordered by target then link.
func (g *Graph) Edges(fpga string) []Edge {
	return append([]Edge(nil), g.adj[fpga]...)
}

type item struct {
	node string
	dist float64
}

type queue []item

func (q queue) Len() int { return len(q) }

func (q queue) Less(i, j int) bool {
	if q[i].dist != q[j].dist {
		return q[i].dist < q[j].dist
	}
	return q[i].node < q[j].node
}

func (q queue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *queue) Push(x any) { *q = append(*q, x.(item)) }

func (q *queue) Pop() any {
	old := *q
	n := len(old)
	it := old[n-1]
	*q = old[:n-1]
	return it
}

// dijkstra fills dist and prev for one source. Only strict improvements
// replace a predecessor, so ties resolve to the first edge in adjacency
// order.
func (g *Graph) dijkstra(src string) {
	dist := map[string]float64{src: 0}
	prev := make(map[string]Edge)
	done := make(map[string]bool)

	q := &queue{{node: src}}
	heap.Init(q)
	for q.Len() > 0 {
		cur := heap.Pop(q).(item)
		if done[cur.node] {
			continue
		}
		done[cur.node] = true
		for _, e := range g.adj[cur.node] {
			if done[e.To] {
				continue
			}
			nd := cur.dist + e.Weight
			if old, seen := dist[e.To]; !seen || nd < old {
				dist[e.To] = nd
				prev[e.To] = e
				heap.Push(q, item{node: e.To, dist: nd})
			}
		}
	}
	g.dist[src] = dist
	g.prev[src] = prev
}

// PathCost returns the sum of 1/speed along the shortest path from a to b,
// 0 when a == b and +Inf when b is unreachable.
func (g *Graph) PathCost(a, b string) float64 {
	if a == b {
		return 0
	}
	if d, ok := g.dist[a][b]; ok {
		return d
	}
	return math.Inf(1)
}

// Reachable reports whether b can be reached from a.
func (g *Graph) Reachable(a, b string) bool {
	return !math.IsInf(g.PathCost(a, b), 1)
}

// ShortestPath returns the hop list, link IDs and cost from a to b.
func (g *Graph) ShortestPath(a, b string) (Path, bool) {
	if _, ok := g.dist[a]; !ok {
		return Path{}, false
	}
	if a == b {
		return Path{Hops: []string{a}}, true
	}
	cost, ok := g.dist[a][b]
	if !ok {
		return Path{}, false
	}
	var hops, links []string
	for at := b; at != a; {
		e := g.prev[a][at]
		hops = append(hops, at)
		links = append(links, e.Link)
		at = e.From
	}
	hops = append(hops, a)
	reverse(hops)
	reverse(links)
	return Path{Hops: hops, Links: links, Cost: cost}, true
}

// NextHop returns the first edge on the shortest path from a to b.
func (g *Graph) NextHop(a, b string) (Edge, bool) {
	p, ok := g.ShortestPath(a, b)
	if !ok || len(p.Links) == 0 {
		return Edge{}, false
	}
	for _, e := range g.adj[a] {
		if e.To == p.Hops[1] && e.Link == p.Links[0] {
			return e, true
		}
	}
	return Edge{}, false
}

// Neighbors lists the connections touching a component, ordered by
// connection ID.
func (g *Graph) Neighbors(component string) []model.Connection {
	return append([]model.Connection(nil), g.conns[component]...)
}

// Other returns the endpoint of c that is not component.
func Other(c model.Connection, component string) string {
	if c.Source == component {
		return c.Sink
	}
	return c.Source
}

func reverse(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

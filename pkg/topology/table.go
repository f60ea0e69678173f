package topology

import "sort"

// Hop is a routing table entry: the neighbour to forward to and the link
// that reaches it.
type Hop struct {
	NextHop string
	Link    string
}

// Table is a per-FPGA routing table that finds the next hop according to
// the final destination.
type Table interface {
	FindHop(dst string) (Hop, bool)
	DefineRoute(finalDst string, hop Hop)
	DefineDefaultRoute(hop Hop)
	Destinations() []string
}

// NewTable creates an empty Table.
func NewTable() Table {
	return &table{t: make(map[string]Hop)}
}

type table struct {
	t          map[string]Hop
	defaultHop *Hop
}

func (t *table) FindHop(dst string) (Hop, bool) {
	if hop, found := t.t[dst]; found {
		return hop, true
	}
	if t.defaultHop != nil {
		return *t.defaultHop, true
	}
	return Hop{}, false
}

func (t *table) DefineRoute(finalDst string, hop Hop) {
	t.t[finalDst] = hop
}

func (t *table) DefineDefaultRoute(hop Hop) {
	t.defaultHop = &hop
}

func (t *table) Destinations() []string {
	out := make([]string, 0, len(t.t))
	for dst := range t.t {
		out = append(out, dst)
	}
	sort.Strings(out)
	return out
}

// Tables builds a table for every FPGA with a route to every reachable
// destination. When all destinations of an FPGA leave through the same
// neighbour, that hop also becomes the default route.
func (g *Graph) Tables() map[string]Table {
	tables := make(map[string]Table, len(g.nodes))
	for _, src := range g.nodes {
		t := NewTable()
		hops := make(map[Hop]int)
		for _, dst := range g.nodes {
			if dst == src {
				continue
			}
			e, ok := g.NextHop(src, dst)
			if !ok {
				continue
			}
			hop := Hop{NextHop: e.To, Link: e.Link}
			t.DefineRoute(dst, hop)
			hops[hop]++
		}
		if len(hops) == 1 {
			for hop := range hops {
				t.DefineDefaultRoute(hop)
			}
		}
		tables[src] = t
	}
	return tables
}

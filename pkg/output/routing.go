package output

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/hoangt/cerebrum-design-tool-sub004/pkg/config"
	"github.com/hoangt/cerebrum-design-tool-sub004/pkg/model"
	"github.com/hoangt/cerebrum-design-tool-sub004/pkg/sexpr"
	"github.com/hoangt/cerebrum-design-tool-sub004/pkg/topology"
)

// Route is the traffic between an ordered pair of FPGAs.
type Route struct {
	From      string
	To        string
	Bandwidth float64 // sum of the densities of the connections carried
	Path      topology.Path
	Routable  bool
}

// Routes aggregates every connection whose endpoints sit on different FPGAs
// into one route per ordered FPGA pair, sorted by source then sink.
func Routes(m *model.Model, g *topology.Graph) []Route {
	type pair struct{ from, to string }
	bandwidth := make(map[pair]float64)
	for _, c := range m.Connections() {
		from, to := m.FPGAOf(c.Source), m.FPGAOf(c.Sink)
		if from == "" || to == "" || from == to {
			continue
		}
		bandwidth[pair{from, to}] += c.Density
	}

	routes := make([]Route, 0, len(bandwidth))
	for p, bw := range bandwidth {
		path, ok := g.ShortestPath(p.from, p.to)
		routes = append(routes, Route{From: p.from, To: p.to, Bandwidth: bw, Path: path, Routable: ok})
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].From != routes[j].From {
			return routes[i].From < routes[j].From
		}
		return routes[i].To < routes[j].To
	})
	return routes
}

// RoutingDocument renders the routes and the per-FPGA next-hop tables of a
// complete mapping:
//
//	(routing
//	  (route F1 F2 (bandwidth 5) (cost 0.1) (path F1 F2) (links L1))
//	  (table F1 (default F2 L1) (entry F2 F2 L1)))
func RoutingDocument(m *model.Model) (*sexpr.List, error) {
	if err := requireComplete("GenerateRouting", m); err != nil {
		return nil, err
	}
	g := topology.New(m)

	doc := sexpr.Syms("routing")
	for _, r := range Routes(m, g) {
		route := sexpr.L(sexpr.Sym("route"), sexpr.Sym(r.From), sexpr.Sym(r.To),
			sexpr.Syms("bandwidth", formatFloat(r.Bandwidth)))
		if !r.Routable {
			route.Items = append(route.Items, sexpr.Syms("unroutable"))
		} else {
			route.Items = append(route.Items,
				sexpr.Syms("cost", formatFloat(r.Path.Cost)),
				sexpr.Syms(append([]string{"path"}, r.Path.Hops...)...),
				sexpr.Syms(append([]string{"links"}, r.Path.Links...)...),
			)
		}
		doc.Items = append(doc.Items, route)
	}

	tables := g.Tables()
	for _, f := range g.FPGAs() {
		t := tables[f]
		table := sexpr.L(sexpr.Sym("table"), sexpr.Sym(f))
		if hop, ok := t.FindHop(""); ok {
			table.Items = append(table.Items, sexpr.Syms("default", hop.NextHop, hop.Link))
		}
		for _, dst := range t.Destinations() {
			hop, _ := t.FindHop(dst)
			table.Items = append(table.Items, sexpr.Syms("entry", dst, hop.NextHop, hop.Link))
		}
		doc.Items = append(doc.Items, table)
	}
	return doc, nil
}

// GenerateRouting writes the routing document of m to path.
func GenerateRouting(path string, m *model.Model, _ *config.Config) error {
	doc, err := RoutingDocument(m)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(sexpr.Format(doc)), 0o644); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

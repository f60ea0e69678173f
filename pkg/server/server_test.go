package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoangt/cerebrum-design-tool-sub004/pkg/command"
	"github.com/hoangt/cerebrum-design-tool-sub004/pkg/model"
)

const design = `addfpga F1 "Board 1" virtex5 LUT=100
addfpga F2 "Board 2" virtex5 LUT=100
addlink L1 backplane F1 F2 10
addcomp C1 filter LUT=60
addcomp C2 sink LUT=50
addgroup G1
addgroup G2
groupadd G1 C1
groupadd G2 C2
addconn X1 "c1 to c2" C1 C2 5
`

func newServer(t *testing.T, script string) (*Server, *command.Session) {
	t.Helper()
	s := command.NewSession(nil, nil)
	require.NoError(t, s.RunScript(context.Background(), "setup", script, io.Discard))
	return New(s, nil), s
}

func do(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestListEntities(t *testing.T) {
	srv, _ := newServer(t, design+"map\n")

	rec := do(t, srv, http.MethodGet, "/api/components", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	comps := decode[[]componentRsp](t, rec)
	require.Len(t, comps, 2)
	assert.Equal(t, componentRsp{ID: "C1", Name: "filter", Resources: map[string]int64{"LUT": 60}, Group: "G1", FPGA: "F1"}, comps[0])

	groups := decode[[]groupRsp](t, do(t, srv, http.MethodGet, "/api/groups", ""))
	require.Len(t, groups, 2)
	assert.Equal(t, []string{"C2"}, groups[1].Members)
	assert.Equal(t, "F2", groups[1].FPGA)

	links := decode[[]linkRsp](t, do(t, srv, http.MethodGet, "/api/links", ""))
	require.Len(t, links, 1)
	assert.True(t, links[0].Bidirectional)

	conns := decode[[]connectionRsp](t, do(t, srv, http.MethodGet, "/api/connections", ""))
	require.Len(t, conns, 1)
	assert.Equal(t, 5.0, conns[0].Density)

	clusters := decode[[]clusterRsp](t, do(t, srv, http.MethodGet, "/api/clusters", ""))
	assert.Empty(t, clusters)
}

func TestEntityDetails(t *testing.T) {
	srv, _ := newServer(t, design+"map\n")

	f := decode[fpgaRsp](t, do(t, srv, http.MethodGet, "/api/fpga/F1", ""))
	assert.Equal(t, "virtex5", f.Architecture)
	assert.Equal(t, int64(60), f.Used["LUT"])
	assert.InDelta(t, 0.6, f.Utilization["LUT"], 1e-9)
	assert.Equal(t, []string{"group G1"}, f.Units)

	c := decode[componentRsp](t, do(t, srv, http.MethodGet, "/api/component/C2", ""))
	assert.Equal(t, "F2", c.FPGA)

	for _, path := range []string{"/api/fpga/F9", "/api/component/C9"} {
		rec := do(t, srv, http.MethodGet, path, "")
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
	}
}

func TestMappingCostAndRouting(t *testing.T) {
	srv, _ := newServer(t, design)

	mapping := decode[mappingRsp](t, do(t, srv, http.MethodGet, "/api/mapping", ""))
	assert.False(t, mapping.Complete)
	require.Len(t, mapping.Units, 2)
	assert.Equal(t, assignmentRsp{Kind: "group", ID: "G1"}, mapping.Units[0])

	rec := do(t, srv, http.MethodPost, "/api/commands", "map\n")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, decode[commandRsp](t, rec).Output, "cost 0.5")

	cost := decode[costRsp](t, do(t, srv, http.MethodGet, "/api/cost", ""))
	assert.True(t, cost.Complete)
	assert.InDelta(t, 0.5, cost.Cost, 1e-9)

	util := decode[[]utilizationRsp](t, do(t, srv, http.MethodGet, "/api/utilization", ""))
	require.Len(t, util, 2)
	assert.InDelta(t, 0.5, util[1].Average, 1e-9)

	routes := decode[[]routeRsp](t, do(t, srv, http.MethodGet, "/api/routing", ""))
	require.Len(t, routes, 1)
	assert.Equal(t, routeRsp{
		From: "F1", To: "F2", Bandwidth: 5, Routable: true,
		Cost: 0.1, Hops: []string{"F1", "F2"}, Links: []string{"L1"},
	}, routes[0])
}

func TestCommandStatusCodes(t *testing.T) {
	tests := []struct {
		name   string
		script string
		status int
		want   string
		fpgas  int
	}{
		{"ok", "addfpga F3 spare virtex5 LUT=10\n", http.StatusOK, "", 3},
		{"validation", "addfpga F3 spare virtex5\naddcomp C3\n", http.StatusBadRequest, "request:2:1: addcomp", 2},
		{"unknown verb", "frobnicate\n", http.StatusBadRequest, "unknown command", 2},
		{"execution", "addfpga F3 spare virtex5\nmapgroup G1 F9\n", http.StatusConflict, "mapgroup", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, s := newServer(t, design)
			rec := do(t, srv, http.MethodPost, "/api/commands", tt.script)
			assert.Equal(t, tt.status, rec.Code)
			rsp := decode[commandRsp](t, rec)
			if tt.want == "" {
				assert.Empty(t, rsp.Error)
			} else {
				assert.Contains(t, rsp.Error, tt.want)
			}
			require.NoError(t, s.View(func(m *model.Model) error {
				assert.Len(t, m.FPGAs(), tt.fpgas)
				return nil
			}))
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv, _ := newServer(t, design)
	rec := do(t, srv, http.MethodGet, "/api/commands", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestServeStopsWithContext(t *testing.T) {
	srv, _ := newServer(t, design)
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, l) }()

	rsp, err := http.Get("http://" + l.Addr().String() + "/api/fpgas")
	require.NoError(t, err)
	body, err := io.ReadAll(rsp.Body)
	rsp.Body.Close()
	require.NoError(t, err)
	assert.Contains(t, string(body), `"id":"F1"`)

	cancel()
	assert.NoError(t, <-done)
}

// Package server exposes a falconmap session over HTTP. Queries return JSON
// views of the model; POST /api/commands runs a script as one batch.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/hoangt/cerebrum-design-tool-sub004/pkg/command"
	"github.com/hoangt/cerebrum-design-tool-sub004/pkg/ledger"
	"github.com/hoangt/cerebrum-design-tool-sub004/pkg/model"
	"github.com/hoangt/cerebrum-design-tool-sub004/pkg/output"
	"github.com/hoangt/cerebrum-design-tool-sub004/pkg/placement"
	"github.com/hoangt/cerebrum-design-tool-sub004/pkg/topology"
)

// maxScript bounds the body of a command request.
const maxScript = 1 << 20

// Server serves one session.
type Server struct {
	session *command.Session
	logger  *log.Logger
}

// New creates a server for s. A nil logger discards request errors.
func New(s *command.Session, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Server{session: s, logger: logger}
}

// Router returns the routes of the API.
func (srv *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/components", srv.listComponents).Methods(http.MethodGet)
	r.HandleFunc("/api/component/{id}", srv.componentDetails).Methods(http.MethodGet)
	r.HandleFunc("/api/fpgas", srv.listFPGAs).Methods(http.MethodGet)
	r.HandleFunc("/api/fpga/{id}", srv.fpgaDetails).Methods(http.MethodGet)
	r.HandleFunc("/api/groups", srv.listGroups).Methods(http.MethodGet)
	r.HandleFunc("/api/clusters", srv.listClusters).Methods(http.MethodGet)
	r.HandleFunc("/api/connections", srv.listConnections).Methods(http.MethodGet)
	r.HandleFunc("/api/links", srv.listLinks).Methods(http.MethodGet)
	r.HandleFunc("/api/mapping", srv.listMapping).Methods(http.MethodGet)
	r.HandleFunc("/api/utilization", srv.listUtilization).Methods(http.MethodGet)
	r.HandleFunc("/api/cost", srv.cost).Methods(http.MethodGet)
	r.HandleFunc("/api/routing", srv.listRoutes).Methods(http.MethodGet)
	r.HandleFunc("/api/commands", srv.runCommands).Methods(http.MethodPost)
	return r
}

// Serve accepts connections on l until ctx is done or the listener fails.
func (srv *Server) Serve(ctx context.Context, l net.Listener) error {
	hs := &http.Server{Handler: srv.Router(), ReadHeaderTimeout: 10 * time.Second}
	stop := context.AfterFunc(ctx, func() { _ = hs.Close() })
	defer stop()

	err := hs.Serve(l)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

type componentRsp struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Resources ledger.Resources `json:"resources"`
	Group     string           `json:"group,omitempty"`
	FPGA      string           `json:"fpga,omitempty"`
}

type fpgaRsp struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Architecture string             `json:"architecture"`
	Cluster      string             `json:"cluster,omitempty"`
	Capacity     ledger.Resources   `json:"capacity"`
	Used         ledger.Resources   `json:"used"`
	Utilization  map[string]float64 `json:"utilization"`
	Units        []string           `json:"units"`
}

type groupRsp struct {
	ID      string           `json:"id"`
	Name    string           `json:"name"`
	Members []string         `json:"members"`
	Demand  ledger.Resources `json:"demand"`
	FPGA    string           `json:"fpga,omitempty"`
}

type clusterRsp struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

type connectionRsp struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Source  string  `json:"source"`
	Sink    string  `json:"sink"`
	Density float64 `json:"density"`
}

type linkRsp struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Source        string  `json:"source"`
	Sink          string  `json:"sink"`
	Speed         float64 `json:"speed"`
	Bidirectional bool    `json:"bidirectional"`
}

type assignmentRsp struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
	FPGA string `json:"fpga,omitempty"`
}

type mappingRsp struct {
	Complete bool            `json:"complete"`
	Units    []assignmentRsp `json:"units"`
}

type utilizationRsp struct {
	FPGA      string             `json:"fpga"`
	Resources map[string]float64 `json:"resources"`
	Average   float64            `json:"average"`
}

type costRsp struct {
	Cost     float64 `json:"cost"`
	Complete bool    `json:"complete"`
}

type routeRsp struct {
	From      string   `json:"from"`
	To        string   `json:"to"`
	Bandwidth float64  `json:"bandwidth"`
	Routable  bool     `json:"routable"`
	Cost      float64  `json:"cost,omitempty"`
	Hops      []string `json:"hops,omitempty"`
	Links     []string `json:"links,omitempty"`
}

type commandRsp struct {
	Output string `json:"output"`
	Error  string `json:"error,omitempty"`
}

func newComponentRsp(m *model.Model, c model.Component) componentRsp {
	return componentRsp{ID: c.ID, Name: c.Name, Resources: c.Resources, Group: c.GroupID, FPGA: m.FPGAOf(c.ID)}
}

func newFPGARsp(m *model.Model, f model.FPGA) fpgaRsp {
	units := []string{}
	for _, u := range m.UnitsOn(f.ID) {
		units = append(units, u.String())
	}
	return fpgaRsp{
		ID:           f.ID,
		Name:         f.Name,
		Architecture: f.Architecture,
		Cluster:      f.ClusterID,
		Capacity:     f.Capacity,
		Used:         m.Consumed(f.ID),
		Utilization:  m.Utilization(f.ID),
		Units:        units,
	}
}

func (srv *Server) listComponents(w http.ResponseWriter, _ *http.Request) {
	srv.view(w, func(m *model.Model) (any, bool) {
		rsp := []componentRsp{}
		for _, c := range m.Components() {
			rsp = append(rsp, newComponentRsp(m, c))
		}
		return rsp, true
	})
}

func (srv *Server) componentDetails(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	srv.view(w, func(m *model.Model) (any, bool) {
		c, ok := m.Component(id)
		if !ok {
			return nil, false
		}
		return newComponentRsp(m, c), true
	})
}

func (srv *Server) listFPGAs(w http.ResponseWriter, _ *http.Request) {
	srv.view(w, func(m *model.Model) (any, bool) {
		rsp := []fpgaRsp{}
		for _, f := range m.FPGAs() {
			rsp = append(rsp, newFPGARsp(m, f))
		}
		return rsp, true
	})
}

func (srv *Server) fpgaDetails(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	srv.view(w, func(m *model.Model) (any, bool) {
		f, ok := m.FPGA(id)
		if !ok {
			return nil, false
		}
		return newFPGARsp(m, f), true
	})
}

func (srv *Server) listGroups(w http.ResponseWriter, _ *http.Request) {
	srv.view(w, func(m *model.Model) (any, bool) {
		rsp := []groupRsp{}
		for _, g := range m.Groups() {
			demand, _ := m.GroupDemand(g.ID)
			rsp = append(rsp, groupRsp{ID: g.ID, Name: g.Name, Members: g.MemberIDs(), Demand: demand, FPGA: g.Target})
		}
		return rsp, true
	})
}

func (srv *Server) listClusters(w http.ResponseWriter, _ *http.Request) {
	srv.view(w, func(m *model.Model) (any, bool) {
		rsp := []clusterRsp{}
		for _, c := range m.Clusters() {
			rsp = append(rsp, clusterRsp{ID: c.ID, Name: c.Name, Members: c.MemberIDs()})
		}
		return rsp, true
	})
}

func (srv *Server) listConnections(w http.ResponseWriter, _ *http.Request) {
	srv.view(w, func(m *model.Model) (any, bool) {
		rsp := []connectionRsp{}
		for _, c := range m.Connections() {
			rsp = append(rsp, connectionRsp{ID: c.ID, Name: c.Name, Source: c.Source, Sink: c.Sink, Density: c.Density})
		}
		return rsp, true
	})
}

func (srv *Server) listLinks(w http.ResponseWriter, _ *http.Request) {
	srv.view(w, func(m *model.Model) (any, bool) {
		rsp := []linkRsp{}
		for _, l := range m.Links() {
			rsp = append(rsp, linkRsp{
				ID: l.ID, Name: l.Name, Source: l.Source, Sink: l.Sink,
				Speed: l.Speed, Bidirectional: l.Bidirectional,
			})
		}
		return rsp, true
	})
}

func (srv *Server) listMapping(w http.ResponseWriter, _ *http.Request) {
	srv.view(w, func(m *model.Model) (any, bool) {
		rsp := mappingRsp{Complete: m.MappingComplete(), Units: []assignmentRsp{}}
		for _, u := range m.Units() {
			rsp.Units = append(rsp.Units, assignmentRsp{Kind: u.Kind.String(), ID: u.ID, FPGA: m.UnitTarget(u)})
		}
		return rsp, true
	})
}

func (srv *Server) listUtilization(w http.ResponseWriter, _ *http.Request) {
	srv.view(w, func(m *model.Model) (any, bool) {
		rsp := []utilizationRsp{}
		for _, f := range m.FPGAs() {
			rsp = append(rsp, utilizationRsp{
				FPGA:      f.ID,
				Resources: m.Utilization(f.ID),
				Average:   m.AverageUtilization(f.ID, nil),
			})
		}
		return rsp, true
	})
}

func (srv *Server) cost(w http.ResponseWriter, _ *http.Request) {
	opts := srv.session.Config().Placement()
	srv.view(w, func(m *model.Model) (any, bool) {
		return costRsp{Cost: placement.Cost(m, opts), Complete: m.MappingComplete()}, true
	})
}

func (srv *Server) listRoutes(w http.ResponseWriter, _ *http.Request) {
	srv.view(w, func(m *model.Model) (any, bool) {
		rsp := []routeRsp{}
		for _, rt := range output.Routes(m, topology.New(m)) {
			item := routeRsp{From: rt.From, To: rt.To, Bandwidth: rt.Bandwidth, Routable: rt.Routable}
			if rt.Routable {
				item.Cost = rt.Path.Cost
				item.Hops = rt.Path.Hops
				item.Links = rt.Path.Links
			}
			rsp = append(rsp, item)
		}
		return rsp, true
	})
}

// runCommands executes the request body as a script. Validation failures
// answer 400 with nothing executed; a failing command answers 409 with the
// output of the commands that ran before it.
func (srv *Server) runCommands(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxScript))
	if err != nil {
		srv.writeJSON(w, http.StatusBadRequest, commandRsp{Error: err.Error()})
		return
	}

	var out bytes.Buffer
	err = srv.session.RunScript(r.Context(), "request", string(body), &out)
	rsp := commandRsp{Output: out.String()}
	status := http.StatusOK
	if err != nil {
		rsp.Error = err.Error()
		status = http.StatusConflict
		if command.IsValidation(err) {
			status = http.StatusBadRequest
		}
	}
	srv.writeJSON(w, status, rsp)
}

// view runs fn under the session read lock and writes its result. fn
// reports false when the requested entity does not exist.
func (srv *Server) view(w http.ResponseWriter, fn func(m *model.Model) (any, bool)) {
	var (
		rsp   any
		found bool
	)
	_ = srv.session.View(func(m *model.Model) error {
		rsp, found = fn(m)
		return nil
	})
	if !found {
		w.WriteHeader(http.StatusNotFound)
		_, err := w.Write([]byte("not found"))
		srv.logError(err)
		return
	}
	srv.writeJSON(w, http.StatusOK, rsp)
}

func (srv *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		srv.logError(err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(data)
	srv.logError(err)
}

func (srv *Server) logError(err error) {
	if err != nil {
		srv.logger.Printf("server: %v", err)
	}
}

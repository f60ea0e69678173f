// Package output derives the final artifacts of a completed mapping: the
// component address map, the routing description and the finalized mapping
// file.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/hoangt/cerebrum-design-tool-sub004/pkg/config"
	"github.com/hoangt/cerebrum-design-tool-sub004/pkg/model"
)

// AddressEntry locates one component in the global address space.
type AddressEntry struct {
	Component  string `json:"component"`
	FPGA       string `json:"fpga"`
	FPGAIndex  int    `json:"fpga_index"`
	LocalIndex int    `json:"local_index"`
	Address    uint64 `json:"address"`
}

// AddressMap is the JSON document written by WriteComponentAddressMap.
type AddressMap struct {
	AddressBits int            `json:"address_bits"`
	FPGAs       []string       `json:"fpgas"`
	Entries     []AddressEntry `json:"entries"`
}

func requireComplete(op string, m *model.Model) error {
	if !m.MappingComplete() {
		return &model.Error{Kind: model.IntegrityError, Op: op, Msg: "mapping is incomplete; run map first"}
	}
	return nil
}

// BuildAddressMap numbers FPGAs by ascending ID and the components on each
// FPGA by ascending ID. A component's address is
// fpgaIndex<<AddressBits | localIndex.
func BuildAddressMap(m *model.Model, cfg *config.Config) (*AddressMap, error) {
	const op = "WriteComponentAddressMap"
	if err := requireComplete(op, m); err != nil {
		return nil, err
	}

	byFPGA := make(map[string][]string)
	for _, c := range m.Components() {
		f := m.FPGAOf(c.ID)
		byFPGA[f] = append(byFPGA[f], c.ID)
	}

	am := &AddressMap{AddressBits: cfg.AddressBits}
	limit := 1 << cfg.AddressBits
	for i, f := range m.FPGAs() {
		am.FPGAs = append(am.FPGAs, f.ID)
		comps := byFPGA[f.ID]
		sort.Strings(comps)
		if len(comps) > limit {
			return nil, &model.Error{Kind: model.CapacityError, Op: op, Entity: "fpga", ID: f.ID,
				Msg: fmt.Sprintf("%d components do not fit in %d address bits", len(comps), cfg.AddressBits)}
		}
		for local, c := range comps {
			am.Entries = append(am.Entries, AddressEntry{
				Component:  c,
				FPGA:       f.ID,
				FPGAIndex:  i,
				LocalIndex: local,
				Address:    uint64(i)<<cfg.AddressBits | uint64(local),
			})
		}
	}
	return am, nil
}

// WriteComponentAddressMap writes the address map of m to path as JSON.
func WriteComponentAddressMap(path string, m *model.Model, cfg *config.Config) error {
	am, err := BuildAddressMap(m, cfg)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(am, "", "  ")
	if err != nil {
		return fmt.Errorf("output: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	return nil
}

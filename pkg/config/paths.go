package config

import (
	"fmt"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Keys recognised in a paths file.
const (
	KeyOutputDir  = "OUTPUT_DIR"
	KeyAddressMap = "ADDRESS_MAP"
	KeyRouting    = "ROUTING"
	KeyMapping    = "MAPPING"
)

// Paths names the final output files of a project.
type Paths struct {
	OutputDir  string
	AddressMap string
	Routing    string
	Mapping    string
}

// DefaultPaths writes every output into the working directory.
func DefaultPaths() *Paths {
	return &Paths{
		OutputDir:  ".",
		AddressMap: "address_map.json",
		Routing:    "routing.sexp",
		Mapping:    "mapping.sexp",
	}
}

// LoadPaths reads a KEY=VALUE paths file. A relative OUTPUT_DIR is taken
// relative to the directory holding the paths file.
func LoadPaths(path string) (*Paths, error) {
	env, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("config: paths file %s: %w", path, err)
	}
	p := DefaultPaths()
	for key, dst := range map[string]*string{
		KeyOutputDir:  &p.OutputDir,
		KeyAddressMap: &p.AddressMap,
		KeyRouting:    &p.Routing,
		KeyMapping:    &p.Mapping,
	} {
		if v, ok := env[key]; ok && v != "" {
			*dst = v
		}
	}
	if !filepath.IsAbs(p.OutputDir) {
		p.OutputDir = filepath.Join(filepath.Dir(path), p.OutputDir)
	}
	return p, nil
}

// Resolve places a relative file name under OutputDir.
func (p *Paths) Resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(p.OutputDir, name)
}

// AddressMapPath returns the resolved address map location.
func (p *Paths) AddressMapPath() string { return p.Resolve(p.AddressMap) }

// RoutingPath returns the resolved routing file location.
func (p *Paths) RoutingPath() string { return p.Resolve(p.Routing) }

// MappingPath returns the resolved mapping file location.
func (p *Paths) MappingPath() string { return p.Resolve(p.Mapping) }

// Package config loads the tool configuration (YAML) and the project paths
// files (.env style) that name where final outputs are written.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hoangt/cerebrum-design-tool-sub004/pkg/placement"
)

// Config controls the placement objective, derived outputs and recording.
type Config struct {
	// Placement objective
	ClusterPolicy       string  `yaml:"cluster_policy"`        // ignore, penalize or restrict (default: penalize)
	CrossClusterPenalty float64 `yaml:"cross_cluster_penalty"` // per unit of density (default: 1.0)
	UnroutablePenalty   float64 `yaml:"unroutable_penalty"`    // per unit of density (default: 1000)

	// Address map: address = fpgaIndex<<AddressBits | localIndex
	AddressBits int `yaml:"address_bits"` // default: 16

	// Recording of mapping runs; empty disables it
	RecordPath string `yaml:"record_path"`

	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns a Config with the stock settings.
func DefaultConfig() *Config {
	return &Config{
		ClusterPolicy:       string(placement.PolicyPenalize),
		CrossClusterPenalty: 1.0,
		UnroutablePenalty:   1000,
		AddressBits:         16,
	}
}

// Validate checks the configuration and normalizes the policy name.
func (c *Config) Validate() error {
	p, err := placement.ParsePolicy(c.ClusterPolicy)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	c.ClusterPolicy = string(p)
	if c.AddressBits < 1 || c.AddressBits > 32 {
		return fmt.Errorf("config: address_bits %d out of range 1..32", c.AddressBits)
	}
	if err := c.Placement().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Placement returns the placement options described by the config.
func (c *Config) Placement() placement.Options {
	return placement.Options{
		Policy:              placement.Policy(c.ClusterPolicy),
		CrossClusterPenalty: c.CrossClusterPenalty,
		UnroutablePenalty:   c.UnroutablePenalty,
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep
// their default value.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

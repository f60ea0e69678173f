package placement

import (
	"fmt"
	"math"
	"strings"
)

// Policy controls how clusters influence placement.
type Policy string

const (
	// PolicyIgnore: clusters do not affect placement.
	PolicyIgnore Policy = "ignore"
	// PolicyPenalize adds Density × CrossClusterPenalty for every connection
	// whose endpoints land in different clusters.
	PolicyPenalize Policy = "penalize"
	// PolicyRestrict excludes candidates that would create a cross-cluster
	// connection.
	PolicyRestrict Policy = "restrict"
)

// ParsePolicy accepts a policy name, case-insensitively. The empty string
// selects the default policy.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyPenalize:
		return PolicyPenalize, nil
	case PolicyIgnore:
		return PolicyIgnore, nil
	case PolicyRestrict:
		return PolicyRestrict, nil
	}
	return "", fmt.Errorf("placement: unknown cluster policy %q (want ignore, penalize or restrict)", s)
}

// Options tune the placement objective.
type Options struct {
	Policy              Policy
	CrossClusterPenalty float64
	UnroutablePenalty   float64
}

// DefaultOptions returns the stock objective settings.
func DefaultOptions() Options {
	return Options{
		Policy:              PolicyPenalize,
		CrossClusterPenalty: 1.0,
		UnroutablePenalty:   1000,
	}
}

// Validate checks the options for consistency.
func (o Options) Validate() error {
	if _, err := ParsePolicy(string(o.Policy)); err != nil {
		return err
	}
	if o.CrossClusterPenalty < 0 || math.IsNaN(o.CrossClusterPenalty) || math.IsInf(o.CrossClusterPenalty, 0) {
		return fmt.Errorf("placement: cross-cluster penalty %v must be finite and non-negative", o.CrossClusterPenalty)
	}
	if o.UnroutablePenalty < 0 || math.IsNaN(o.UnroutablePenalty) || math.IsInf(o.UnroutablePenalty, 0) {
		return fmt.Errorf("placement: unroutable penalty %v must be finite and non-negative", o.UnroutablePenalty)
	}
	return nil
}

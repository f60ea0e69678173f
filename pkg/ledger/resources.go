package ledger

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// MaxAmount is the largest amount a single resource entry may hold.
// Amounts up to it are exact as float64.
const MaxAmount int64 = 1 << 53

// Resources maps a resource name (LUT, BRAM, DSP, ...) to an amount. It is
// used both for component demands and FPGA capacities.
type Resources map[string]int64

// Clone returns an independent copy. A nil receiver yields an empty map.
func (r Resources) Clone() Resources {
	out := make(Resources, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Add accumulates other into r and returns r. Sums saturate at the int64
// limits instead of wrapping.
func (r Resources) Add(other Resources) Resources {
	for k, v := range other {
		r[k] = addSat(r[k], v)
	}
	return r
}

func addSat(a, b int64) int64 {
	switch {
	case b > 0 && a > math.MaxInt64-b:
		return math.MaxInt64
	case b < 0 && a < math.MinInt64-b:
		return math.MinInt64
	}
	return a + b
}

// Sub subtracts other from r and returns r. Entries that reach zero are
// dropped so that equal ledgers compare equal.
func (r Resources) Sub(other Resources) Resources {
	for k, v := range other {
		r[k] -= v
		if r[k] == 0 {
			delete(r, k)
		}
	}
	return r
}

// Total returns the sum over all resource dimensions.
func (r Resources) Total() int64 {
	var total int64
	for _, v := range r {
		total += v
	}
	return total
}

// Names returns the resource names in ascending order.
func (r Resources) Names() []string {
	names := make([]string, 0, len(r))
	for k := range r {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Equal reports whether both vectors hold the same non-zero amounts.
func (r Resources) Equal(other Resources) bool {
	for k, v := range r {
		if other[k] != v {
			return false
		}
	}
	for k, v := range other {
		if r[k] != v {
			return false
		}
	}
	return true
}

// String renders the vector as {A:1, B:2} with sorted keys.
func (r Resources) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, name := range r.Names() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(name)
		b.WriteByte(':')
		b.WriteString(strconv.FormatInt(r[name], 10))
	}
	b.WriteByte('}')
	return b.String()
}

// ParseAssignment parses a single "NAME=AMOUNT" token.
func ParseAssignment(token string) (string, int64, error) {
	i := strings.IndexByte(token, '=')
	if i <= 0 || i == len(token)-1 {
		return "", 0, fmt.Errorf("ledger: %q is not a NAME=AMOUNT resource", token)
	}
	name := strings.TrimSpace(token[:i])
	amount, err := ParseAmount(token[i+1:])
	if err != nil {
		return "", 0, err
	}
	return name, amount, nil
}

// ParseAmount parses a resource amount in [0, MaxAmount].
func ParseAmount(s string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("ledger: invalid resource amount %q: %w", s, err)
	}
	if v < 0 {
		return 0, fmt.Errorf("ledger: resource amount %d is negative", v)
	}
	if v > MaxAmount {
		return 0, fmt.Errorf("ledger: resource amount %d exceeds %d", v, MaxAmount)
	}
	return v, nil
}

// ParseList parses a list of NAME=AMOUNT tokens. Repeated names are summed.
func ParseList(tokens []string) (Resources, error) {
	out := make(Resources, len(tokens))
	for _, tok := range tokens {
		name, amount, err := ParseAssignment(tok)
		if err != nil {
			return nil, err
		}
		out[name] += amount
		if out[name] > MaxAmount {
			return nil, fmt.Errorf("ledger: resource %s total %d exceeds %d", name, out[name], MaxAmount)
		}
	}
	return out, nil
}

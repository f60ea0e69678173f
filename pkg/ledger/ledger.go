// Package ledger tracks per-FPGA resource capacity and consumption.
//
// The ledger only knows totals: how much of each resource an FPGA offers and
// how much is currently reserved on it. Which placement unit holds which part
// of a reservation is owned by the entity model, which re-derives the totals
// when it checks its own integrity.
package ledger

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	// ErrUnknownFPGA is returned for operations naming an unregistered FPGA.
	ErrUnknownFPGA = errors.New("unknown fpga")
	// ErrDuplicateFPGA is returned when registering an FPGA twice.
	ErrDuplicateFPGA = errors.New("fpga already registered")
	// ErrInsufficientCapacity is returned when a reservation does not fit.
	ErrInsufficientCapacity = errors.New("insufficient capacity")
	// ErrOverRelease is returned when a release would drive consumption
	// negative.
	ErrOverRelease = errors.New("release exceeds consumption")
)

type account struct {
	capacity Resources
	consumed Resources
}

// Ledger is the resource ledger. Reserve and Release are check-then-commit
// under a single mutex so a partial reservation is never observable.
type Ledger struct {
	mu       sync.Mutex
	accounts map[string]*account
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{accounts: make(map[string]*account)}
}

// Register adds an FPGA with the given capacity.
func (l *Ledger) Register(fpga string, capacity Resources) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.accounts[fpga]; ok {
		return fmt.Errorf("ledger: register %s: %w", fpga, ErrDuplicateFPGA)
	}
	l.accounts[fpga] = &account{capacity: capacity.Clone(), consumed: Resources{}}
	return nil
}

// Unregister removes an FPGA. It refuses while anything is reserved on it.
func (l *Ledger) Unregister(fpga string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	acc, ok := l.accounts[fpga]
	if !ok {
		return fmt.Errorf("ledger: unregister %s: %w", fpga, ErrUnknownFPGA)
	}
	if acc.consumed.Total() != 0 {
		return fmt.Errorf("ledger: unregister %s: %v still reserved", fpga, acc.consumed)
	}
	delete(l.accounts, fpga)
	return nil
}

// Rename re-keys an FPGA account.
func (l *Ledger) Rename(oldID, newID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	acc, ok := l.accounts[oldID]
	if !ok {
		return fmt.Errorf("ledger: rename %s: %w", oldID, ErrUnknownFPGA)
	}
	if _, clash := l.accounts[newID]; clash {
		return fmt.Errorf("ledger: rename %s to %s: %w", oldID, newID, ErrDuplicateFPGA)
	}
	delete(l.accounts, oldID)
	l.accounts[newID] = acc
	return nil
}

// SetCapacity replaces the capacity vector of an FPGA. Shrinking any
// dimension below what is already consumed fails.
func (l *Ledger) SetCapacity(fpga string, capacity Resources) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	acc, ok := l.accounts[fpga]
	if !ok {
		return fmt.Errorf("ledger: set capacity %s: %w", fpga, ErrUnknownFPGA)
	}
	for name, used := range acc.consumed {
		if used > capacity[name] {
			return fmt.Errorf("ledger: %s %s capacity %d below consumed %d: %w",
				fpga, name, capacity[name], used, ErrInsufficientCapacity)
		}
	}
	acc.capacity = capacity.Clone()
	return nil
}

// CanFit reports whether demand fits into the remaining capacity of fpga.
func (l *Ledger) CanFit(fpga string, demand Resources) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	acc, ok := l.accounts[fpga]
	if !ok {
		return false
	}
	return acc.fits(demand) == ""
}

func (a *account) fits(demand Resources) string {
	for _, name := range demand.Names() {
		need := demand[name]
		if need == 0 {
			continue
		}
		if need < 0 {
			return fmt.Sprintf("%s demand %d is negative", name, need)
		}
		if need > a.capacity[name]-a.consumed[name] {
			return fmt.Sprintf("%s needs %d, %d of %d left",
				name, need, a.capacity[name]-a.consumed[name], a.capacity[name])
		}
	}
	return ""
}

// Reserve commits demand on fpga if it fits in every dimension.
func (l *Ledger) Reserve(fpga string, demand Resources) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	acc, ok := l.accounts[fpga]
	if !ok {
		return fmt.Errorf("ledger: reserve on %s: %w", fpga, ErrUnknownFPGA)
	}
	if reason := acc.fits(demand); reason != "" {
		return fmt.Errorf("ledger: reserve on %s: %s: %w", fpga, reason, ErrInsufficientCapacity)
	}
	acc.consumed.Add(demand)
	return nil
}

// Release returns demand to fpga.
func (l *Ledger) Release(fpga string, demand Resources) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	acc, ok := l.accounts[fpga]
	if !ok {
		return fmt.Errorf("ledger: release on %s: %w", fpga, ErrUnknownFPGA)
	}
	for name, amount := range demand {
		if acc.consumed[name] < amount {
			return fmt.Errorf("ledger: release %d %s on %s with %d consumed: %w",
				amount, name, fpga, acc.consumed[name], ErrOverRelease)
		}
	}
	acc.consumed.Sub(demand)
	return nil
}

// UtilizationOf returns consumed/capacity for every resource the FPGA offers.
// Dimensions with zero capacity are reported as 0.
func (l *Ledger) UtilizationOf(fpga string) map[string]float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	acc, ok := l.accounts[fpga]
	if !ok {
		return nil
	}
	return acc.utilization(nil)
}

func (a *account) utilization(extra Resources) map[string]float64 {
	out := make(map[string]float64, len(a.capacity))
	for name, capacity := range a.capacity {
		if capacity == 0 {
			out[name] = 0
			continue
		}
		out[name] = float64(a.consumed[name]+extra[name]) / float64(capacity)
	}
	return out
}

// AverageUtilization returns the mean utilization across the FPGA's resource
// dimensions as if extra were also reserved. It is the placement tie-break.
func (l *Ledger) AverageUtilization(fpga string, extra Resources) float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	acc, ok := l.accounts[fpga]
	if !ok || len(acc.capacity) == 0 {
		return 0
	}
	util := acc.utilization(extra)
	var sum float64
	for _, name := range acc.capacity.Names() {
		sum += util[name]
	}
	return sum / float64(len(util))
}

// Capacity returns a copy of the FPGA capacity vector.
func (l *Ledger) Capacity(fpga string) Resources {
	l.mu.Lock()
	defer l.mu.Unlock()
	if acc, ok := l.accounts[fpga]; ok {
		return acc.capacity.Clone()
	}
	return nil
}

// Consumed returns a copy of the FPGA consumption vector.
func (l *Ledger) Consumed(fpga string) Resources {
	l.mu.Lock()
	defer l.mu.Unlock()
	if acc, ok := l.accounts[fpga]; ok {
		return acc.consumed.Clone()
	}
	return nil
}

// Remaining returns capacity minus consumption for every offered resource.
func (l *Ledger) Remaining(fpga string) Resources {
	l.mu.Lock()
	defer l.mu.Unlock()
	acc, ok := l.accounts[fpga]
	if !ok {
		return nil
	}
	out := make(Resources, len(acc.capacity))
	for name, capacity := range acc.capacity {
		out[name] = capacity - acc.consumed[name]
	}
	return out
}

// FPGAs returns the registered FPGA IDs in ascending order.
func (l *Ledger) FPGAs() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	ids := make([]string, 0, len(l.accounts))
	for id := range l.accounts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Clone creates a deep copy of the ledger.
func (l *Ledger) Clone() *Ledger {
	l.mu.Lock()
	defer l.mu.Unlock()
	clone := New()
	for id, acc := range l.accounts {
		clone.accounts[id] = &account{
			capacity: acc.capacity.Clone(),
			consumed: acc.consumed.Clone(),
		}
	}
	return clone
}

// Package diag tracks live, peak and total instance counts per runtime type
// name, plus simple performance counters. A Table belongs to one engine
// instance; counts never span engine lifetimes.
package diag

import (
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/wippyai/lxengine/errors"
	"github.com/wippyai/lxengine/logging"
)

// ObjectCount is the diagnostic record for one type name.
type ObjectCount struct {
	Current uint64 `yaml:"current"`
	Peak    uint64 `yaml:"peak"`
	Total   uint64 `yaml:"total"`
}

// PerfCounter accumulates timed events under one name.
type PerfCounter struct {
	Events uint64        `yaml:"events"`
	Total  time.Duration `yaml:"total"`
}

// Table is safe for concurrent use.
type Table struct {
	mu     sync.Mutex
	counts map[string]*ObjectCount
	perf   map[string]*PerfCounter
}

func NewTable() *Table {
	return &Table{
		counts: make(map[string]*ObjectCount),
		perf:   make(map[string]*PerfCounter),
	}
}

// Inc records one construction of typeName.
func (t *Table) Inc(typeName string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	c, ok := t.counts[typeName]
	if !ok {
		c = &ObjectCount{}
		t.counts[typeName] = c
	}
	c.Current++
	c.Total++
	if c.Current > c.Peak {
		c.Peak = c.Current
	}
}

// Dec records one destruction of typeName. A destruction without a matching
// live construction is an invariant violation and aborts through logging.Fatal.
func (t *Table) Dec(typeName string) {
	t.mu.Lock()
	c, ok := t.counts[typeName]
	if ok && c.Current > 0 {
		c.Current--
		t.mu.Unlock()
		return
	}
	t.mu.Unlock()

	detail := "current count would go negative"
	if !ok {
		detail = "destruction of a type that was never constructed"
	}
	err := errors.Invariant(errors.PhaseDiag, typeName, detail)
	logging.Fatal(err.Error(), zap.String("type", typeName))
}

// Count returns the record for typeName, zero if it was never observed.
func (t *Table) Count(typeName string) ObjectCount {
	t.mu.Lock()
	defer t.mu.Unlock()
	if c, ok := t.counts[typeName]; ok {
		return *c
	}
	return ObjectCount{}
}

// Entry pairs a type name with its record.
type Entry struct {
	Name        string `yaml:"name"`
	ObjectCount `yaml:",inline"`
}

// Snapshot returns every observed type sorted by name.
func (t *Table) Snapshot() []Entry {
	t.mu.Lock()
	out := make([]Entry, 0, len(t.counts))
	for name, c := range t.counts {
		out = append(out, Entry{Name: name, ObjectCount: *c})
	}
	t.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// IncPerformanceCounter adds one event of duration d under name.
func (t *Table) IncPerformanceCounter(name string, d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, ok := t.perf[name]
	if !ok {
		p = &PerfCounter{}
		t.perf[name] = p
	}
	p.Events++
	p.Total += d
}

// PerformanceCounter returns the counter for name, zero if never used.
func (t *Table) PerformanceCounter(name string) PerfCounter {
	t.mu.Lock()
	defer t.mu.Unlock()
	if p, ok := t.perf[name]; ok {
		return *p
	}
	return PerfCounter{}
}

// Time runs fn and records its duration under name.
func (t *Table) Time(name string, fn func()) {
	start := time.Now()
	fn()
	t.IncPerformanceCounter(name, time.Since(start))
}

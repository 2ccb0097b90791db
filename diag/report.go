package diag

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/lxengine/logging"
)

// Report is a point-in-time view of a Table, suitable for leak checks and export.
type Report struct {
	Types       []Entry                `yaml:"types"`
	Performance map[string]PerfCounter `yaml:"performance,omitempty"`
	Leaked      []string               `yaml:"leaked,omitempty"`
}

// HasLeaks reports whether any type still has live instances.
func (r Report) HasLeaks() bool {
	return len(r.Leaked) > 0
}

// Report captures the current counts.
func (t *Table) Report() Report {
	r := Report{Types: t.Snapshot()}
	for _, e := range r.Types {
		if e.Current != 0 {
			r.Leaked = append(r.Leaked, e.Name)
		}
	}

	t.mu.Lock()
	if len(t.perf) > 0 {
		r.Performance = make(map[string]PerfCounter, len(t.perf))
		for name, p := range t.perf {
			r.Performance[name] = *p
		}
	}
	t.mu.Unlock()
	return r
}

// Log emits one line per type: a warning with the leaked share for types
// with live instances, a debug line otherwise.
func (r Report) Log() {
	for _, e := range r.Types {
		if e.Current != 0 {
			pct := 100.0 * float64(e.Current) / float64(e.Total)
			logging.Warn(fmt.Sprintf("Leaked %d %s objects (%.1f%%)", e.Current, e.Name, pct),
				zap.String("type", e.Name),
				zap.Uint64("current", e.Current),
				zap.Uint64("total", e.Total))
			continue
		}
		logging.Debug(fmt.Sprintf("Allocated %d %s objects. 0 leaked.", e.Total, e.Name),
			zap.String("type", e.Name))
	}
	if r.HasLeaks() {
		logging.Warn("Leaks detected: all engine objects should be released before the engine is destroyed",
			zap.Strings("types", r.Leaked))
	}
}

// YAML encodes the report.
func (r Report) YAML() ([]byte, error) {
	return yaml.Marshal(r)
}

// WriteText renders the report as an aligned table.
func (r Report) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tCURRENT\tPEAK\tTOTAL")
	for _, e := range r.Types {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", e.Name, e.Current, e.Peak, e.Total)
	}
	if len(r.Performance) > 0 {
		names := make([]string, 0, len(r.Performance))
		for name := range r.Performance {
			names = append(names, name)
		}
		sort.Strings(names)
		fmt.Fprintln(tw, "\nCOUNTER\tEVENTS\tTOTAL")
		for _, name := range names {
			p := r.Performance[name]
			fmt.Fprintf(tw, "%s\t%d\t%s\n", name, p.Events, p.Total)
		}
	}
	return tw.Flush()
}

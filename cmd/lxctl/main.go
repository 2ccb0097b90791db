package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/lxengine/config"
	"github.com/wippyai/lxengine/diag"
	"github.com/wippyai/lxengine/engine"
	"github.com/wippyai/lxengine/errors"
	"github.com/wippyai/lxengine/logging"
	"github.com/wippyai/lxengine/noise"
)

// Report formats accepted by -report.
const (
	reportText = "text"
	reportYAML = "yaml"
)

type options struct {
	configPath  string
	report      string
	noise       string
	docs        int
	close       int
	release     bool
	interactive bool
}

func main() {
	var o options
	flag.StringVar(&o.configPath, "config", "", "Path to TOML config file")
	flag.IntVar(&o.docs, "docs", 0, "Number of documents to create")
	flag.IntVar(&o.close, "close", 0, "Close the first K created documents")
	flag.BoolVar(&o.release, "release", false, "Release caller references after the workload")
	flag.StringVar(&o.report, "report", reportText, "Report format (text|yaml)")
	flag.StringVar(&o.noise, "noise", "", "Print a Perlin noise sample at x,y,z and exit")
	flag.BoolVar(&o.interactive, "i", false, "Interactive mode with TUI")
	flag.Parse()

	if err := run(o, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(o options, out io.Writer) error {
	if o.noise != "" {
		return sampleNoise(o.noise, out)
	}
	if err := o.validate(); err != nil {
		return err
	}

	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if err := logging.Configure(cfg); err != nil {
		return err
	}
	defer func() { _ = logging.Logger().Sync() }()

	if o.interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return errors.Precondition(errors.PhaseConfig, "interactive mode needs a terminal")
		}
		return runInteractive(cfg)
	}

	engine.Configure(engine.Options{Config: cfg})
	h := engine.Acquire()
	defer func() {
		if err := h.Release(); err != nil {
			logging.Warn("release engine", zap.Error(err))
		}
	}()

	report, err := workload(h, o)
	if err != nil {
		return err
	}
	return writeReport(out, report, o.report)
}

func (o options) validate() error {
	switch {
	case o.docs < 0:
		return errors.InvalidArgument(errors.PhaseConfig, "-docs cannot be negative")
	case o.close < 0 || o.close > o.docs:
		return errors.InvalidArgument(errors.PhaseConfig, "-close must be between 0 and -docs")
	}
	switch o.report {
	case reportText, reportYAML:
	default:
		return errors.New(errors.PhaseConfig, errors.KindInvalidArgument).
			Path("report").
			Value(o.report).
			Detail("unknown report format %q", o.report).
			Build()
	}
	return nil
}

// workload creates, closes and releases documents as requested and returns
// the diagnostics of the live engine.
func workload(h *engine.Handle, o options) (diag.Report, error) {
	start := time.Now()
	refs := make([]*engine.DocumentRef, 0, o.docs)
	for i := 0; i < o.docs; i++ {
		ref, err := h.CreateDocument()
		if err != nil {
			return diag.Report{}, err
		}
		ref.Document().SetTitle("document " + strconv.Itoa(i+1))
		refs = append(refs, ref)
	}
	h.IncPerformanceCounter("lxctl.create", time.Since(start))

	for _, ref := range refs[:o.close] {
		if err := h.CloseDocument(ref.Document()); err != nil {
			return diag.Report{}, err
		}
	}

	if o.release {
		start = time.Now()
		for _, ref := range refs {
			if err := ref.Release(); err != nil {
				return diag.Report{}, err
			}
		}
		h.IncPerformanceCounter("lxctl.release", time.Since(start))
	}

	logging.Info("workload done",
		zap.Int("created", o.docs),
		zap.Int("closed", o.close),
		zap.Bool("released", o.release),
		zap.Int("active", len(h.Documents())))
	return h.Diagnostics(), nil
}

func writeReport(out io.Writer, r diag.Report, format string) error {
	if format == reportYAML {
		data, err := r.YAML()
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}
	return r.WriteText(out)
}

func sampleNoise(arg string, out io.Writer) error {
	parts := strings.Split(arg, ",")
	if len(parts) != 3 {
		return errors.InvalidArgument(errors.PhaseConfig, "-noise expects x,y,z")
	}
	var p [3]float64
	for i, s := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return errors.New(errors.PhaseConfig, errors.KindInvalidArgument).
				Path("noise").
				Value(s).
				Detail("not a number").
				Cause(err).
				Build()
		}
		p[i] = v
	}
	_, err := fmt.Fprintf(out, "%.6f\n", noise.Perlin3D(p[0], p[1], p[2]))
	return err
}

package engine

import (
	"runtime"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wippyai/lxengine/config"
	"github.com/wippyai/lxengine/diag"
)

// Engine version. Constant for the life of the process.
const (
	VersionMajor    = 0
	VersionMinor    = 0
	VersionRevision = 5
)

// Options configure engine instances created by later Acquire calls.
type Options struct {
	Config config.Config
	// OnDestroy receives the diagnostics report taken just before an engine
	// instance is torn down.
	OnDestroy func(diag.Report)
}

var (
	mu      sync.Mutex
	current *instance
	options = Options{Config: config.Default()}
)

// Configure sets the options for the next engine instance. An instance that
// already exists keeps the options it was created with.
func Configure(o Options) {
	mu.Lock()
	options = o
	mu.Unlock()
}

// instance is the process-wide coordinator. It lives while at least one
// Handle is outstanding.
type instance struct {
	diag      *diag.Table
	registry  *Registry
	env       *Environment
	onDestroy func(diag.Report)
	id        string
	cfg       config.Config
	refs      int
}

func newInstance(o Options) *instance {
	tbl := diag.NewTable()
	e := &instance{
		id:        uuid.NewString(),
		cfg:       o.Config,
		diag:      tbl,
		registry:  newRegistry(tbl),
		env:       newEnvironment(o.Config.TimeScale),
		onDestroy: o.OnDestroy,
	}
	e.registry.arena.Subscribe(&lifecycleLog{instance: e.id})

	log := Logger()
	log.Info("engine created", zap.String("engine", e.id))
	log.Debug("engine build",
		zap.Int("version_major", VersionMajor),
		zap.Int("version_minor", VersionMinor),
		zap.Int("version_revision", VersionRevision),
		zap.String("go", runtime.Version()),
		zap.String("os", runtime.GOOS),
		zap.String("arch", runtime.GOARCH),
		zap.Int("gomaxprocs", runtime.GOMAXPROCS(0)),
	)
	return e
}

// Acquire returns a handle to the process-wide engine, creating it if no
// handle is outstanding. Every handle must be released exactly once.
func Acquire() *Handle {
	mu.Lock()
	defer mu.Unlock()

	if current == nil {
		current = newInstance(options)
	}
	current.refs++
	return &Handle{engine: current}
}

// retain adds a reference to e for a new handle.
func retain(e *instance) {
	mu.Lock()
	e.refs++
	mu.Unlock()
}

// release drops one reference and destroys e when it was the last.
func release(e *instance) {
	mu.Lock()
	e.refs--
	last := e.refs == 0
	if last && current == e {
		current = nil
	}
	mu.Unlock()

	if last {
		e.destroy()
	}
}

// destroy runs the leak check, then frees everything the registry still
// holds, including documents whose caller shares were never released.
func (e *instance) destroy() {
	report := e.diag.Report()
	if e.cfg.LeakCheck {
		report.Log()
	}
	if err := e.registry.close(); err != nil {
		Logger().Warn("close document arena", zap.Error(err))
	}
	if e.onDestroy != nil {
		e.onDestroy(report)
	}
	Logger().Info("engine destroyed", zap.String("engine", e.id))
}

package engine

import (
	"sync"

	"github.com/wippyai/lxengine/errors"
)

// Environment holds engine-wide simulation settings.
type Environment struct {
	mu        sync.RWMutex
	timeScale float64
}

func newEnvironment(timeScale float64) *Environment {
	return &Environment{timeScale: timeScale}
}

// TimeScale returns the multiplier applied to elapsed time.
func (e *Environment) TimeScale() float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.timeScale
}

// SetTimeScale changes the time multiplier. Negative values are rejected and
// the previous value is kept.
func (e *Environment) SetTimeScale(s float64) error {
	if s < 0 {
		return failed(errors.New(errors.PhaseEnv, errors.KindInvalidArgument).
			Value(s).
			Detail("time scale cannot be negative: %v is not a valid value", s).
			Build())
	}
	e.mu.Lock()
	e.timeScale = s
	e.mu.Unlock()
	return nil
}

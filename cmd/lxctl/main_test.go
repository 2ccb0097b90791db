package main

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/lxengine/config"
	"github.com/wippyai/lxengine/diag"
	"github.com/wippyai/lxengine/engine"
	"github.com/wippyai/lxengine/errors"
	"github.com/wippyai/lxengine/logging"
)

func quiet(t *testing.T) {
	t.Helper()
	t.Setenv("LXENGINE_LOG_LEVEL", "error")
	prev := logging.Logger()
	t.Cleanup(func() {
		logging.SetLogger(prev)
		logging.SetAsserts(false)
		engine.Configure(engine.Options{Config: config.Default()})
	})
}

func TestRunNoise(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(options{noise: "1,2,3"}, &out))
	assert.Equal(t, "0.500000\n", out.String())

	out.Reset()
	require.NoError(t, run(options{noise: "0.5, 1.25, -3"}, &out))
	v, err := strconv.ParseFloat(strings.TrimSpace(out.String()), 64)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, v, 0.0)
	assert.LessOrEqual(t, v, 1.0)
}

func TestRunNoiseInvalid(t *testing.T) {
	tests := []struct {
		name string
		arg  string
	}{
		{"too few", "1,2"},
		{"too many", "1,2,3,4"},
		{"not a number", "1,x,3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(options{noise: tt.arg}, &bytes.Buffer{})
			assert.ErrorIs(t, err, errors.ErrInvalidArgument)
		})
	}
}

func TestRunInvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opts options
	}{
		{"negative docs", options{docs: -1, report: reportText}},
		{"close exceeds docs", options{docs: 2, close: 3, report: reportText}},
		{"negative close", options{docs: 2, close: -1, report: reportText}},
		{"unknown report", options{docs: 1, report: "xml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(tt.opts, &bytes.Buffer{})
			assert.ErrorIs(t, err, errors.ErrInvalidArgument)
		})
	}
}

func TestRunTextReport(t *testing.T) {
	quiet(t)
	var out bytes.Buffer
	require.NoError(t, run(options{docs: 3, close: 1, release: true, report: reportText}, &out))

	s := out.String()
	assert.Contains(t, s, "TYPE")
	assert.Contains(t, s, "Document")
	assert.Contains(t, s, "lxctl.create")
	assert.Contains(t, s, "lxctl.release")
}

func TestRunYAMLReport(t *testing.T) {
	quiet(t)
	var out bytes.Buffer
	require.NoError(t, run(options{docs: 3, close: 1, release: true, report: reportYAML}, &out))

	var r diag.Report
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &r))
	require.Len(t, r.Types, 1)
	assert.Equal(t, "Document", r.Types[0].Name)
	// two documents stay active, the closed and released one is gone
	assert.Equal(t, uint64(2), r.Types[0].Current)
	assert.Equal(t, uint64(3), r.Types[0].Total)
	assert.Equal(t, uint64(3), r.Types[0].Peak)
}

func TestRunWithoutRelease(t *testing.T) {
	quiet(t)
	var out bytes.Buffer
	require.NoError(t, run(options{docs: 2, close: 2, report: reportYAML}, &out))

	var r diag.Report
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &r))
	require.Len(t, r.Types, 1)
	// closed but still held by the caller
	assert.Equal(t, uint64(2), r.Types[0].Current)
}

func TestRunBadConfig(t *testing.T) {
	quiet(t)
	t.Setenv("LXENGINE_LOG_FORMAT", "xml")
	err := run(options{docs: 1, report: reportText}, &bytes.Buffer{})
	assert.ErrorIs(t, err, errors.ErrInvalidArgument)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestInteractiveModel(t *testing.T) {
	h := engine.Acquire()
	defer func() { _ = h.Release() }()

	m := newInteractiveModel(h)
	m.Update(key("n"))
	require.Equal(t, stateTitle, m.state)
	for _, r := range "intro" {
		m.Update(key(string(r)))
	}
	m.Update(key("enter"))
	require.Equal(t, stateBrowse, m.state)
	require.Len(t, m.docs, 1)
	assert.Equal(t, "intro", m.docs[0].Title())

	m.Update(key("n"))
	m.Update(key("enter"))
	require.Len(t, m.docs, 2)
	assert.Equal(t, uint64(2), h.ObjectCount("Document").Current)

	// close the first: it stays listed because the caller still holds it
	m.Update(key("c"))
	require.NoError(t, m.err)
	assert.Len(t, h.Documents(), 1)
	require.Len(t, m.docs, 2)
	assert.Contains(t, m.View(), "held, 1 shares")

	// closing again is rejected
	m.selected = 1
	m.Update(key("c"))
	assert.ErrorIs(t, m.err, errors.ErrInvalidArgument)

	// releasing the closed document destroys it
	m.Update(key("r"))
	require.NoError(t, m.err)
	assert.Equal(t, uint64(1), h.ObjectCount("Document").Current)
	assert.Len(t, m.docs, 1)

	m.Update(key("s"))
	require.NoError(t, m.err)
	assert.Contains(t, m.View(), "shut down")

	m.Update(key("n"))
	m.Update(key("enter"))
	assert.ErrorIs(t, m.err, errors.ErrPrecondition)

	_, cmd := m.Update(key("q"))
	assert.NotNil(t, cmd)
	assert.Empty(t, m.refs)
	assert.Equal(t, uint64(0), h.ObjectCount("Document").Current)
}

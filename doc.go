// Package lxengine is the root of the engine core: a process-wide engine
// handle, the registry of open documents and per-instance object diagnostics.
//
// # Architecture Overview
//
// The module is organized into several packages with distinct responsibilities:
//
//	lxengine/
//	├── engine/     Engine handle, document registry, environment settings
//	├── resource/   Generational arena with explicit owning-share counts
//	├── diag/       Per-type current/peak/total counters, leak reports
//	├── object/     Runtime type names, optional clone capability
//	├── logging/    zap-backed level logging and checked assertions
//	├── config/     TOML file and LXENGINE_* environment configuration
//	├── errors/     Structured error types for debugging
//	├── noise/      Perlin gradient noise
//	└── cmd/lxctl/  Command line driver and interactive TUI
//
// # Quick Start
//
//	h := engine.Acquire()
//	defer h.Release()
//
//	ref, err := h.CreateDocument()
//	if err != nil {
//	    return err
//	}
//	defer ref.Release()
//
//	fmt.Println(h.ObjectCount("Document").Current) // 1
//
// # Ownership
//
// A document is owned jointly by the registry and by every DocumentRef handed
// out for it. CloseDocument removes the registry's share and the document
// from the active set; DocumentRef.Release removes one caller share and never
// changes the active set. The document is destroyed, and its diagnostics
// count decremented, when the last share goes.
//
// # Configuration
//
//	log_level  = "debug"
//	log_format = "json"
//	asserts    = true
//	leak_check = true
//	time_scale = 1.0
//
// Every key can be overridden with an LXENGINE_ environment variable, for
// example LXENGINE_ASSERTS=true.
package lxengine

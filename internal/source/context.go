// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Package source holds the mutable, per-compilation state shared by the
// scanner, parser, and semantic analyzer: the monotonic node-id generator
// and the error reporter. Distinct compilations running on different
// goroutines must use distinct Contexts.
package source

import "github.com/google/uuid"

// Context is the shared, mutable state for a single compilation.
// It is not safe for concurrent use by more than one goroutine.
type Context struct {
	// CompilationID correlates log lines and diagnostics for one
	// compilation. It has no bearing on node identity, which is always
	// the monotonic counter below.
	CompilationID uuid.UUID

	nextID   uint32
	reporter *ErrorReporter
}

// New returns a Context ready to issue ids starting at 1.
func New() *Context {
	return &Context{
		CompilationID: uuid.New(),
		nextID:        1,
		reporter:      NewErrorReporter(),
	}
}

// NextID returns the next monotonically increasing node id.
// Ids are never reused within one Context and are densely packed.
func (c *Context) NextID() uint32 {
	id := c.nextID
	c.nextID++
	return id
}

// Errors returns this compilation's error reporter.
func (c *Context) Errors() *ErrorReporter {
	return c.reporter
}

// Report is a convenience forward to Errors().Report.
func (c *Context) Report(kind Kind, message string, pos Position, nodeID *uint32) {
	c.reporter.Report(kind, message, pos, nodeID)
}

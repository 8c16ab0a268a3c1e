// Package optio carries the process-facing collaborators of the option parser:
// the program name, the output sinks, the exit hook and terminal capabilities.
package optio

import (
	stdio "io"
	"os"
	"path/filepath"
)

// ProgramContext is passed to a parser at construction instead of having the
// parser read ambient process state. Tests build one around buffers.
type ProgramContext struct {
	prog string
	in   stdio.Reader
	out  stdio.Writer
	err  stdio.Writer
	exit func(int)

	forceColor bool
	noColor    bool
	width      int
}

// New returns a context bound to process stdio, with the program name taken
// from the basename of os.Args[0] and os.Exit as the exit hook.
func New() *ProgramContext {
	prog := "prog"
	if len(os.Args) > 0 && os.Args[0] != "" {
		prog = filepath.Base(os.Args[0])
	}
	return &ProgramContext{prog: prog, in: os.Stdin, out: os.Stdout, err: os.Stderr, exit: os.Exit}
}

// NewBuffered returns a colorless context writing to the given sinks whose
// exit hook does nothing.
func NewBuffered(prog string, out, err stdio.Writer) *ProgramContext {
	return &ProgramContext{prog: prog, in: os.Stdin, out: out, err: err, exit: func(int) {}, noColor: true}
}

// WithProg overrides the program name.
func (c *ProgramContext) WithProg(prog string) *ProgramContext { c.prog = prog; return c }

// WithIn sets the input reader.
func (c *ProgramContext) WithIn(r stdio.Reader) *ProgramContext { c.in = r; return c }

// WithOut sets the standard output sink.
func (c *ProgramContext) WithOut(w stdio.Writer) *ProgramContext { c.out = w; return c }

// WithErr sets the error sink.
func (c *ProgramContext) WithErr(w stdio.Writer) *ProgramContext { c.err = w; return c }

// WithExit replaces the exit hook.
func (c *ProgramContext) WithExit(fn func(int)) *ProgramContext { c.exit = fn; return c }

// WithWidth pins the width used for help formatting. Zero restores detection.
func (c *ProgramContext) WithWidth(width int) *ProgramContext { c.width = width; return c }

// ForceColor forces color output on, regardless of environment.
func (c *ProgramContext) ForceColor() *ProgramContext { c.forceColor = true; c.noColor = false; return c }

// NoColor disables color output, regardless of environment.
func (c *ProgramContext) NoColor() *ProgramContext { c.noColor = true; c.forceColor = false; return c }

// Prog returns the program name.
func (c *ProgramContext) Prog() string { return c.prog }

// In returns the configured input reader.
func (c *ProgramContext) In() stdio.Reader { return c.in }

// Out returns the standard output sink.
func (c *ProgramContext) Out() stdio.Writer { return c.out }

// Err returns the error sink.
func (c *ProgramContext) Err() stdio.Writer { return c.err }

// Exit invokes the exit hook.
func (c *ProgramContext) Exit(status int) {
	if c.exit == nil {
		os.Exit(status)
	}
	c.exit(status)
}

// SupportsColor reports whether w should receive ANSI styling.
func (c *ProgramContext) SupportsColor(w stdio.Writer) bool {
	if c.noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	if c.forceColor || os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	if !isTerminal(w) {
		return false
	}
	term := os.Getenv("TERM")
	return term != "" && term != "dumb"
}

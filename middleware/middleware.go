// Package middleware wraps option callbacks with reusable behavior: panic
// recovery, debug logging and value validation.
package middleware

import (
	"fmt"
	"io"

	"github.com/dzonerzy/go-optparse/optparse"
)

// Middleware decorates a callback.
type Middleware func(next optparse.CallbackFunc) optparse.CallbackFunc

// MiddlewareChain represents a chain of middleware functions
type MiddlewareChain []Middleware

// Apply wraps fn so that the first middleware in the chain runs outermost.
func (chain MiddlewareChain) Apply(fn optparse.CallbackFunc) optparse.CallbackFunc {
	if fn == nil {
		fn = noop
	}
	for i := len(chain) - 1; i >= 0; i-- {
		fn = chain[i](fn)
	}
	return fn
}

// Use returns a new chain with the provided middleware appended.
func (chain MiddlewareChain) Use(middleware ...Middleware) MiddlewareChain {
	out := make(MiddlewareChain, 0, len(chain)+len(middleware))
	out = append(out, chain...)
	return append(out, middleware...)
}

// Chain creates a new middleware chain from the provided middleware, preserving
// order.
func Chain(middleware ...Middleware) MiddlewareChain {
	return MiddlewareChain(middleware)
}

// Wrap is shorthand for Chain(middleware...).Apply(fn).
func Wrap(fn optparse.CallbackFunc, middleware ...Middleware) optparse.CallbackFunc {
	return Chain(middleware...).Apply(fn)
}

func noop(*optparse.CallbackContext) error { return nil }

// RecoveryError represents a panic recovered inside a callback.
type RecoveryError struct {
	Panic    any
	Spelling string
	Stack    []byte
}

func (e *RecoveryError) Error() string {
	return "callback for " + e.Spelling + " panicked: " + toString(e.Panic)
}

// Unwrap exposes the panic value when it was an error.
func (e *RecoveryError) Unwrap() error {
	err, _ := e.Panic.(error)
	return err
}

// Config controls the optional behavior of Recovery.
type Config struct {
	PrintStack bool
	StackSize  int
	// Output receives stack traces; nil means the parser's error sink.
	Output io.Writer
}

// Option configures middleware.
type Option func(*Config)

// DefaultConfig returns the configuration used when no options are given.
func DefaultConfig() *Config {
	return &Config{
		PrintStack: false,
		StackSize:  4096,
	}
}

// WithStackTrace toggles printing the stack of recovered panics.
func WithStackTrace(enabled bool) Option {
	return func(c *Config) { c.PrintStack = enabled }
}

// WithStackSize bounds the captured stack.
func WithStackSize(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.StackSize = n
		}
	}
}

// WithOutput redirects printed stack traces.
func WithOutput(w io.Writer) Option {
	return func(c *Config) { c.Output = w }
}

func toString(v any) string {
	switch x := v.(type) {
	case nil:
		return "<nil>"
	case string:
		return x
	case error:
		return x.Error()
	default:
		return fmt.Sprint(x)
	}
}

func spellingOf(c *optparse.CallbackContext) string {
	if c == nil || c.Spelling == "" {
		return "unknown"
	}
	return c.Spelling
}

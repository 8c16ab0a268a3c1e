package middleware

import (
	"fmt"
	"io"
	"runtime"

	"github.com/dzonerzy/go-optparse/optparse"
)

// Recovery converts a panic inside the callback into a *RecoveryError. The
// parser then reports it to the embedding program like any other callback
// error.
func Recovery(options ...Option) Middleware {
	return RecoveryWithHandler(nil, options...)
}

// RecoveryWithHandler is Recovery with a custom conversion from the panic to
// the returned error. A nil handler yields *RecoveryError.
func RecoveryWithHandler(handler func(panicVal any, spelling string, stack []byte) error, options ...Option) Middleware {
	config := DefaultConfig()
	for _, option := range options {
		option(config)
	}

	return func(next optparse.CallbackFunc) optparse.CallbackFunc {
		return func(c *optparse.CallbackContext) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				stack := make([]byte, config.StackSize)
				stack = stack[:runtime.Stack(stack, false)]
				spelling := spellingOf(c)

				if config.PrintStack {
					if w := stackWriter(config, c); w != nil {
						fmt.Fprintf(w, "panic in callback for %s: %v\n", spelling, r)
						fmt.Fprintf(w, "stack trace:\n%s\n", stack)
					}
				}

				if handler != nil {
					err = handler(r, spelling, stack)
					return
				}
				err = &RecoveryError{Panic: r, Spelling: spelling, Stack: stack}
			}()
			return next(c)
		}
	}
}

func stackWriter(config *Config, c *optparse.CallbackContext) io.Writer {
	if config.Output != nil {
		return config.Output
	}
	if c != nil && c.Parser != nil {
		return c.Parser.ProgramContext().Err()
	}
	return nil
}

package optparse

import "slices"

// CallbackContext is handed to callbacks. It exposes the invoked option, the
// spelling that matched, the value(s) supplied and the in-flight result.
type CallbackContext struct {
	Option   *Option
	Spelling string
	Value    any // string, []string or the zero-arity marker true
	Parser   *Parser

	w *walker
}

// Dest returns the option's destination key, if any.
func (c *CallbackContext) Dest() (string, bool) {
	if c.Option == nil {
		return "", false
	}
	return c.Option.Dest()
}

// Values returns the live result mapping of the current parse.
func (c *CallbackContext) Values() Values { return c.w.values }

// Set stores a value in the result mapping.
func (c *CallbackContext) Set(dest string, value any) { c.w.values[dest] = value }

// Get retrieves a value from the result mapping.
func (c *CallbackContext) Get(dest string) (any, bool) {
	v, ok := c.w.values[dest]
	return v, ok
}

// Positional returns the positional arguments collected so far.
func (c *CallbackContext) Positional() []string { return slices.Clone(c.w.positional) }

// Remaining returns the tokens not yet consumed.
func (c *CallbackContext) Remaining() []string { return slices.Clone(c.w.args[c.w.pos:]) }

// Consume takes the next n tokens verbatim, so a callback can accept a
// variable number of values. It reports false, consuming nothing, when fewer
// than n tokens remain.
func (c *CallbackContext) Consume(n int) ([]string, bool) {
	if n < 0 || len(c.w.args)-c.w.pos < n {
		return nil, false
	}
	out := slices.Clone(c.w.args[c.w.pos : c.w.pos+n])
	c.w.pos += n
	return out, true
}

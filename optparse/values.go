package optparse

import (
	"maps"
	"slices"
)

// Values maps destination keys to parsed values.
type Values map[string]any

// Result is what a successful parse produces.
type Result struct {
	Values Values
	Args   []string // positional arguments, in order
}

// Has reports whether dest is present (possibly with a nil value).
func (v Values) Has(dest string) bool {
	_, ok := v[dest]
	return ok
}

// Get returns the raw value for dest.
func (v Values) Get(dest string) (any, bool) {
	val, ok := v[dest]
	return val, ok
}

// GetString returns the value for dest if it is a string.
func (v Values) GetString(dest string) (string, bool) {
	s, ok := v[dest].(string)
	return s, ok
}

// GetBool returns the value for dest if it is a bool.
func (v Values) GetBool(dest string) (bool, bool) {
	b, ok := v[dest].(bool)
	return b, ok
}

// GetInt returns the value for dest if it is any integer kind.
func (v Values) GetInt(dest string) (int, bool) {
	return toInt(v[dest])
}

// GetStrings returns the value for dest as a string slice. Multi-value
// stores produce []string directly; lists built by append qualify when every
// element is a string.
func (v Values) GetStrings(dest string) ([]string, bool) {
	switch val := v[dest].(type) {
	case []string:
		return val, true
	case []any:
		out := make([]string, 0, len(val))
		for _, e := range val {
			s, ok := e.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}

// GetList returns the list built by append or append_const.
func (v Values) GetList(dest string) ([]any, bool) {
	l, ok := v[dest].([]any)
	return l, ok
}

// MustGetString returns the string for dest or fallback.
func (v Values) MustGetString(dest, fallback string) string {
	if s, ok := v.GetString(dest); ok {
		return s
	}
	return fallback
}

// MustGetBool returns the bool for dest or fallback.
func (v Values) MustGetBool(dest string, fallback bool) bool {
	if b, ok := v.GetBool(dest); ok {
		return b
	}
	return fallback
}

// MustGetInt returns the int for dest or fallback.
func (v Values) MustGetInt(dest string, fallback int) int {
	if n, ok := v.GetInt(dest); ok {
		return n
	}
	return fallback
}

// Clone copies v; slice and map values are copied one level deep so that
// appending to the copy never writes through to v.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = cloneValue(val)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case []any:
		return slices.Clone(val)
	case []string:
		return slices.Clone(val)
	case map[string]any:
		return maps.Clone(val)
	default:
		return v
	}
}

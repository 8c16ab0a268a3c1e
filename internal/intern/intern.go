// Package intern keeps one canonical copy of option spellings so the parser's
// hot path can build short-option strings like "-v" without allocating.
package intern

import "sync"

// Table is a thread-safe set of canonical strings.
type Table struct {
	mu      sync.RWMutex
	strings map[string]string
}

// NewTable creates a table with room for capacity strings.
func NewTable(capacity int) *Table {
	if capacity <= 0 {
		capacity = 64
	}
	return &Table{strings: make(map[string]string, capacity)}
}

// Intern returns the canonical copy of s.
func (t *Table) Intern(s string) string {
	t.mu.RLock()
	if c, ok := t.strings[s]; ok {
		t.mu.RUnlock()
		return c
	}
	t.mu.RUnlock()

	t.mu.Lock()
	defer t.mu.Unlock()
	if c, ok := t.strings[s]; ok {
		return c
	}
	t.strings[s] = s
	return s
}

// Lookup returns the canonical copy of s without adding it.
func (t *Table) Lookup(s string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	c, ok := t.strings[s]
	return c, ok
}

// Len returns the number of interned strings.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.strings)
}

// shortASCII holds "-" followed by each printable ASCII character.
var shortASCII [128]string

func init() {
	for c := '!'; c <= '~'; c++ {
		shortASCII[c] = "-" + string(c)
	}
}

var global = NewTable(128)

// Short returns the short-option spelling for r, e.g. Short('v') == "-v".
// Spellings outside printable ASCII are only looked up, never added, so
// arbitrary input cannot grow the table.
func Short(r rune) string {
	if r >= 0 && r < 128 && shortASCII[r] != "" {
		return shortASCII[r]
	}
	s := "-" + string(r)
	if c, ok := global.Lookup(s); ok {
		return c
	}
	return s
}

// Intern returns the process-wide canonical copy of s. Option spellings are
// interned when an option is built.
func Intern(s string) string { return global.Intern(s) }

// Len returns the size of the process-wide table.
func Len() int { return global.Len() }

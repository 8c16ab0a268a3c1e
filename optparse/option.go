package optparse

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/dzonerzy/go-optparse/internal/intern"
)

// D is a convenient type alias for settings and override maps, similar to bson.D or gin.H
// Usage: optparse.D{"action": "store_true", "help": "be quiet"}
type D map[string]any

// CallbackFunc is invoked for the callback action and, when set, for help and
// version in place of the built-in printers.
type CallbackFunc func(c *CallbackContext) error

// Option describes one switch. It is immutable after construction except for
// the live/disabled spelling sets, which the owning Parser adjusts while
// resolving conflicts.
type Option struct {
	strings  []string
	disabled []string

	dest    string
	hasDest bool
	nargs   int
	action  Action

	constValue   any
	defaultValue any
	hasDefault   bool

	callback CallbackFunc
	help     string
}

// Strings returns the live spellings.
func (o *Option) Strings() []string { return slices.Clone(o.strings) }

// DisabledStrings returns the spellings withdrawn by conflict resolution.
func (o *Option) DisabledStrings() []string { return slices.Clone(o.disabled) }

// Dest returns the destination key, if the option has one.
func (o *Option) Dest() (string, bool) { return o.dest, o.hasDest }

// Nargs returns the number of values consumed per invocation.
func (o *Option) Nargs() int { return o.nargs }

// Action returns the option's action.
func (o *Option) Action() Action { return o.action }

// Const returns the payload used by store_const and append_const.
func (o *Option) Const() any { return o.constValue }

// Default returns the default and whether one was set. A set default may be nil.
func (o *Option) Default() (any, bool) { return o.defaultValue, o.hasDefault }

// Callback returns the user callback, or nil.
func (o *Option) Callback() CallbackFunc { return o.callback }

// Help returns the help text.
func (o *Option) Help() string { return o.help }

// TakesValue reports whether the option consumes at least one value.
func (o *Option) TakesValue() bool { return o.nargs > 0 }

// String joins the live spellings with a slash, e.g. "-v/--verbose".
func (o *Option) String() string { return strings.Join(o.strings, "/") }

func (o *Option) hasString(s string) bool { return slices.Contains(o.strings, s) }

func (o *Option) shortStrings() []string {
	var out []string
	for _, s := range o.strings {
		if !isLong(s) {
			out = append(out, s)
		}
	}
	return out
}

func (o *Option) longStrings() []string {
	var out []string
	for _, s := range o.strings {
		if isLong(s) {
			out = append(out, s)
		}
	}
	return out
}

func isLong(s string) bool { return strings.HasPrefix(s, "--") }

// checkSpelling accepts "-c" (one non-dash character) and "--name" (no '='
// and no third leading dash).
func checkSpelling(s string) error {
	switch {
	case isLong(s):
		if len(s) < 3 || s[2] == '-' || strings.ContainsRune(s, '=') {
			return configErrorf("invalid long option string %q: must start with --, followed by a name without '='", s)
		}
	case strings.HasPrefix(s, "-"):
		if utf8.RuneCountInString(s) != 2 {
			return configErrorf("invalid short option string %q: must be - followed by a single character", s)
		}
	default:
		return configErrorf("invalid option string %q: must start with - or --", s)
	}
	return nil
}

func deriveDest(spellings []string) string {
	longest := ""
	for _, s := range spellings {
		if len(s) > len(longest) {
			longest = s
		}
	}
	return strings.TrimLeft(longest, "-")
}

// Settings schema

const (
	keyAction   = "action"
	keyDest     = "dest"
	keyNargs    = "nargs"
	keyDefault  = "default"
	keyConst    = "const"
	keyCallback = "callback"
	keyHelp     = "help"
)

var settingKeys = []string{keyAction, keyDest, keyNargs, keyDefault, keyConst, keyCallback, keyHelp}

// unknownKeys returns the keys of m outside allowed, sorted.
func unknownKeys[M ~map[string]any](m M, allowed []string) []string {
	var out []string
	for k := range m {
		if !slices.Contains(allowed, k) {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// NewOption builds an Option from its spellings and a settings map. The map
// is validated against the fixed schema: every unknown key is reported in a
// single ConfigurationError.
func NewOption(spellings []string, settings D) (*Option, error) {
	if bad := unknownKeys(settings, settingKeys); len(bad) > 0 {
		return nil, &ConfigurationError{Message: "invalid keyword arguments", Keys: bad}
	}
	b := NewOptionBuilder(spellings...)
	for _, key := range settingKeys {
		v, ok := settings[key]
		if !ok {
			continue
		}
		if err := b.apply(key, v); err != nil {
			return nil, err
		}
	}
	return b.Build()
}

// OptionBuilder provides fluent API for configuring an Option with the same
// validation as NewOption.
type OptionBuilder struct {
	spellings []string

	action Action

	dest    string
	destSet bool

	nargs    int
	nargsSet bool

	def    any
	defSet bool

	constValue any
	callback   CallbackFunc
	help       string
}

// NewOptionBuilder starts an option with the given spellings.
func NewOptionBuilder(spellings ...string) *OptionBuilder {
	return &OptionBuilder{spellings: slices.Clone(spellings)}
}

// Action sets the action
func (b *OptionBuilder) Action(a Action) *OptionBuilder { b.action = a; return b }

// Dest sets the destination key
func (b *OptionBuilder) Dest(dest string) *OptionBuilder { b.dest = dest; b.destSet = true; return b }

// Nargs sets the arity
func (b *OptionBuilder) Nargs(n int) *OptionBuilder { b.nargs = n; b.nargsSet = true; return b }

// Default sets an explicit default, which may be nil
func (b *OptionBuilder) Default(v any) *OptionBuilder { b.def = v; b.defSet = true; return b }

// Const sets the store_const/append_const payload
func (b *OptionBuilder) Const(v any) *OptionBuilder { b.constValue = v; return b }

// Callback sets the callback function
func (b *OptionBuilder) Callback(fn CallbackFunc) *OptionBuilder { b.callback = fn; return b }

// Help sets the help text. "%default" expands to the default value.
func (b *OptionBuilder) Help(text string) *OptionBuilder { b.help = text; return b }

func (b *OptionBuilder) apply(key string, v any) error {
	switch key {
	case keyAction:
		switch a := v.(type) {
		case Action:
			b.Action(a)
		case string:
			act, err := ParseAction(a)
			if err != nil {
				return err
			}
			b.Action(act)
		default:
			return configErrorf("action must be an Action or a string, got %T", v)
		}
	case keyDest:
		s, ok := v.(string)
		if !ok {
			return configErrorf("dest must be a string, got %T", v)
		}
		b.Dest(s)
	case keyNargs:
		n, ok := toInt(v)
		if !ok {
			return configErrorf("nargs must be an integer, got %T", v)
		}
		b.Nargs(n)
	case keyDefault:
		b.Default(v)
	case keyConst:
		b.Const(v)
	case keyCallback:
		switch fn := v.(type) {
		case CallbackFunc:
			b.Callback(fn)
		case func(*CallbackContext) error:
			b.Callback(fn)
		case nil:
			b.Callback(nil)
		default:
			return configErrorf("callback must be a CallbackFunc, got %T", v)
		}
	case keyHelp:
		s, ok := v.(string)
		if !ok {
			return configErrorf("help must be a string, got %T", v)
		}
		b.Help(s)
	}
	return nil
}

// Build validates the settings and returns the Option.
func (b *OptionBuilder) Build() (*Option, error) {
	if len(b.spellings) == 0 {
		return nil, configErrorf("at least one option string must be supplied")
	}
	for i, s := range b.spellings {
		if err := checkSpelling(s); err != nil {
			return nil, err
		}
		if slices.Contains(b.spellings[:i], s) {
			return nil, configErrorf("duplicate option string %q", s)
		}
	}
	if b.action < ActionStore || b.action > ActionVersion {
		return nil, configErrorf("invalid action: %s", b.action)
	}

	imp := b.action.implied()
	opt := &Option{
		strings:      make([]string, len(b.spellings)),
		action:       b.action,
		nargs:        imp.nargs,
		defaultValue: imp.def,
		hasDefault:   imp.hasDefault,
		constValue:   b.constValue,
		callback:     b.callback,
		help:         b.help,
	}
	for i, sp := range b.spellings {
		opt.strings[i] = intern.Intern(sp)
	}
	if imp.hasDest {
		opt.dest, opt.hasDest = deriveDest(b.spellings), true
	}

	if b.destSet {
		if b.dest == "" {
			return nil, configErrorf("option %s: dest must not be empty", opt)
		}
		opt.dest, opt.hasDest = b.dest, true
	}
	if b.nargsSet {
		opt.nargs = b.nargs
	}
	if b.defSet {
		opt.defaultValue, opt.hasDefault = b.def, true
	}

	if opt.nargs < 0 {
		return nil, configErrorf("option %s: nargs must be >= 0, got %d", opt, opt.nargs)
	}
	if opt.action == ActionCallback && opt.callback == nil {
		return nil, configErrorf("option %s: callback action requires a callback", opt)
	}
	return opt, nil
}

// Option classes

// OptionFactory builds an Option from spellings and settings. Parser.AddOption
// uses the factory named by Config.OptionClass.
type OptionFactory func(spellings []string, settings D) (*Option, error)

// DefaultOptionClass names the built-in factory, NewOption.
const DefaultOptionClass = "Option"

var (
	optionClassesMu sync.RWMutex
	optionClasses   = map[string]OptionFactory{DefaultOptionClass: NewOption}
)

// RegisterOptionClass makes a factory available under name.
func RegisterOptionClass(name string, factory OptionFactory) {
	optionClassesMu.Lock()
	defer optionClassesMu.Unlock()
	optionClasses[name] = factory
}

func lookupOptionClass(name string) (OptionFactory, error) {
	if name == "" {
		name = DefaultOptionClass
	}
	optionClassesMu.RLock()
	defer optionClassesMu.RUnlock()
	f, ok := optionClasses[name]
	if !ok {
		return nil, configErrorf("unknown option class %q", name)
	}
	return f, nil
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		return int(n), true
	default:
		return 0, false
	}
}

func (o *Option) describe() string {
	dest := "<none>"
	if o.hasDest {
		dest = o.dest
	}
	return fmt.Sprintf("%s (action=%s dest=%s nargs=%d)", o, o.action, dest, o.nargs)
}

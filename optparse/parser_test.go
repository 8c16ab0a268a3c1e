package optparse

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spellingsOf(opts []*Option) [][]string {
	return lo.Map(opts, func(o *Option, _ int) []string { return o.Strings() })
}

func TestNewParser_AutoOptions(t *testing.T) {
	tp := newTestParser(t, Config{Version: "%prog 1.2"})

	want := [][]string{{"--version"}, {"-h", "--help"}}
	if diff := cmp.Diff(want, spellingsOf(tp.Options())); diff != "" {
		t.Errorf("auto options mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, ActionVersion, tp.Lookup("--version").Action())
	assert.Equal(t, ActionHelp, tp.Lookup("-h").Action())

	bare := newTestParser(t, Config{AddHelpOption: noHelp()})
	assert.Empty(t, bare.Options())
	assert.Empty(t, bare.Defaults(), "help and version have no dest")
}

func TestNewParser_InvalidConflictHandler(t *testing.T) {
	_, err := NewParser(nil, Config{ConflictHandler: "ignore"})
	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr), "got %v", err)
}

func TestConfigFromMap(t *testing.T) {
	cfg, err := ConfigFromMap(D{
		"usage":            "%prog [opts] SRC DST",
		"version":          "1.0",
		"conflict_handler": "resolve",
		"add_help_option":  false,
		"prog":             "cp",
	})
	require.NoError(t, err)
	assert.Equal(t, "%prog [opts] SRC DST", cfg.Usage)
	assert.Equal(t, ConflictHandlerResolve, cfg.ConflictHandler)
	require.NotNil(t, cfg.AddHelpOption)
	assert.False(t, *cfg.AddHelpOption)
	assert.Equal(t, "cp", cfg.Prog)

	_, err = ConfigFromMap(D{"usage": "x", "epilog": "bye", "formatter": nil})
	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, []string{"epilog", "formatter"}, cfgErr.Keys)

	_, err = ConfigFromMap(D{"add_help_option": "yes"})
	assert.True(t, errors.As(err, &cfgErr))
	_, err = ConfigFromMap(D{"version": 2})
	assert.True(t, errors.As(err, &cfgErr))
}

func TestAdd_ConflictErrorIsAtomic(t *testing.T) {
	tp := newTestParser(t, Config{AddHelpOption: noHelp()})
	first := tp.add(t, D{"action": "store_true"}, "-v", "--verbose")

	_, err := tp.AddOption([]string{"--quiet", "-q", "--verbose"}, D{"action": "store_false", "dest": "verbose"})
	var conflict *ConflictError
	require.True(t, errors.As(err, &conflict), "got %v", err)
	assert.Equal(t, []string{"--verbose"}, conflict.Spellings)
	assert.Same(t, first, conflict.Owner)
	assert.Equal(t, "conflicting option string(s): --verbose", conflict.Error())

	// nothing from the rejected option was registered
	assert.False(t, tp.Has("--quiet"))
	assert.False(t, tp.Has("-q"))
	assert.Len(t, tp.Options(), 1)
	assert.Equal(t, []string{"-v", "--verbose"}, first.Strings())
}

func TestAdd_ResolveReducesOwner(t *testing.T) {
	tp := newTestParser(t, Config{ConflictHandler: ConflictHandlerResolve, AddHelpOption: noHelp()})
	older := tp.add(t, D{"action": "store_true"}, "-v", "--verbose")
	newer := tp.add(t, D{"action": "store_true", "dest": "version"}, "-v")

	assert.Same(t, newer, tp.Lookup("-v"))
	assert.Same(t, older, tp.Lookup("--verbose"))
	assert.Equal(t, []string{"--verbose"}, older.Strings())
	assert.Equal(t, []string{"-v"}, older.DisabledStrings())
}

func TestAdd_ResolveDeletesOwnerWithoutSpellings(t *testing.T) {
	tp := newTestParser(t, Config{ConflictHandler: ConflictHandlerResolve, AddHelpOption: noHelp()})
	tp.add(t, D{"action": "store_true"}, "-v")
	newer := tp.add(t, D{"action": "count", "dest": "verbosity"}, "-v", "--verbose")

	require.Len(t, tp.Options(), 1)
	assert.Same(t, newer, tp.Options()[0])
}

func TestAdd_SameOptionTwice(t *testing.T) {
	tp := newTestParser(t, Config{ConflictHandler: ConflictHandlerResolve, AddHelpOption: noHelp()})
	opt := tp.add(t, nil, "-x")

	err := tp.Add(opt)
	var cfgErr *ConfigurationError
	assert.True(t, errors.As(err, &cfgErr), "got %v", err)
	assert.Len(t, tp.Options(), 1)
}

func TestRemove_ReinstatesMostRecentClaimant(t *testing.T) {
	tp := newTestParser(t, Config{ConflictHandler: ConflictHandlerResolve, AddHelpOption: noHelp()})
	a := tp.add(t, D{"dest": "a"}, "-x", "--alpha")
	b := tp.add(t, D{"dest": "b"}, "-x", "--beta")
	c := tp.add(t, D{"dest": "c"}, "-x")

	require.Same(t, c, tp.Lookup("-x"))
	require.NoError(t, tp.Remove("-x"))

	// b lost -x after a did, so b gets it back
	assert.Same(t, b, tp.Lookup("-x"))
	assert.Equal(t, []string{"-x"}, a.DisabledStrings())
	assert.Empty(t, b.DisabledStrings())

	require.NoError(t, tp.Remove("--beta"))
	assert.Same(t, a, tp.Lookup("-x"))
	assert.Equal(t, []string{"--alpha", "-x"}, a.Strings())
}

func TestRemove_UnclaimedSpellingStaysFree(t *testing.T) {
	tp := newTestParser(t, Config{AddHelpOption: noHelp()})
	tp.add(t, D{"action": "store_true"}, "-q", "--quiet")

	require.NoError(t, tp.Remove("--quiet"))
	assert.False(t, tp.Has("-q"))
	assert.False(t, tp.Has("--quiet"))

	err := tp.Remove("--quiet")
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "--quiet", nf.Spelling)
	assert.Equal(t, "no such option: --quiet", err.Error())
}

func TestDefaultsSeeding(t *testing.T) {
	tp := newTestParser(t, Config{AddHelpOption: noHelp()})
	tp.add(t, D{"action": "store_const", "const": "fast", "dest": "mode", "default": "slow"}, "--fast")
	// no default: keeps the existing entry
	tp.add(t, D{"action": "store_const", "const": "turbo", "dest": "mode"}, "--turbo")
	tp.add(t, D{"action": "store"}, "--name")
	// explicit default overwrites
	tp.add(t, D{"action": "store_false", "dest": "color"}, "--no-color")
	tp.add(t, D{"action": "store_true", "dest": "color"}, "--color")

	want := Values{"mode": "slow", "name": nil, "color": false}
	if diff := cmp.Diff(want, tp.Defaults()); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}

	tp.SetDefaults(D{"name": "anon", "extra": 1})
	got := tp.Defaults()
	assert.Equal(t, "anon", got["name"])
	assert.Equal(t, 1, got["extra"])

	got["name"] = "mutated"
	assert.Equal(t, "anon", tp.Defaults()["name"], "Defaults must return a copy")
}

func TestRemove_LeavesDefaults(t *testing.T) {
	tp := newTestParser(t, Config{AddHelpOption: noHelp()})
	tp.add(t, D{"default": "x"}, "--keep")
	require.NoError(t, tp.Remove("--keep"))
	assert.Equal(t, "x", tp.Defaults()["keep"])
}

func TestProg(t *testing.T) {
	tp := newTestParser(t, Config{})
	assert.Equal(t, "prog", tp.Prog())

	named := newTestParser(t, Config{Prog: "tool"})
	assert.Equal(t, "tool", named.Prog())
}

package optparse

import (
	"errors"
	"testing"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsFile_Layering(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/tool.yaml", []byte(heredoc.Doc(`
		output: from-file.txt
		level: 3
		tags: [a, b]
		extra: kept
	`)), 0o644))

	tp := newTestParser(t, Config{AddHelpOption: noHelp()})
	tp.add(t, D{"default": "default.txt"}, "-o", "--output")
	tp.add(t, D{"action": "count"}, "-l", "--level")
	tp.add(t, D{"action": "append"}, "--tags")
	require.NoError(t, tp.LoadDefaultsFile(fs, "/etc/tool.yaml"))

	res, err := tp.Parse(argv("-l", "--tags", "c"), D{"extra": "override"})
	require.NoError(t, err)
	assert.Equal(t, "from-file.txt", res.Values["output"])
	assert.Equal(t, 4, res.Values["level"])
	assert.Equal(t, []any{"a", "b", "c"}, res.Values["tags"])
	assert.Equal(t, "override", res.Values["extra"])

	// the file layer is not consumed by a parse
	res, err = tp.Parse(argv("--tags", "d"), nil)
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b", "d"}, res.Values["tags"])
	assert.Equal(t, "kept", res.Values["extra"])

	src, ok := tp.Source("output", nil)
	assert.True(t, ok)
	assert.Equal(t, SourceFile, src)
	src, _ = tp.Source("output", D{"output": "x"})
	assert.Equal(t, SourceOverride, src)
	_, ok = tp.Source("missing", nil)
	assert.False(t, ok)

	assert.Equal(t, heredoc.Doc(`
		initial value sources (in resolution order):
		  0 (defaults): 3 keys
		  1 (file): 4 keys
		  2 (override): 0 keys
	`), tp.DebugPrecedence(nil))
}

func TestLoadDefaultsFile_JSON(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "defaults.json", []byte(`{"name": "json", "verbose": true}`), 0o644))

	tp := newTestParser(t, Config{AddHelpOption: noHelp()})
	tp.add(t, nil, "--name")
	require.NoError(t, tp.LoadDefaultsFile(fs, "defaults.json"))

	res, err := tp.Parse(argv(), nil)
	require.NoError(t, err)
	assert.Equal(t, "json", res.Values["name"])
	assert.Equal(t, true, res.Values["verbose"])
}

func TestLoadDefaultsFile_MissingClearsLayer(t *testing.T) {
	fs := afero.NewMemMapFs()
	tp := newTestParser(t, Config{AddHelpOption: noHelp()})
	tp.add(t, D{"default": "d"}, "--name")
	tp.SetFileDefaults(D{"name": "stale"})

	require.NoError(t, tp.LoadDefaultsFile(fs, "/nope.yaml"))
	res, err := tp.Parse(argv(), nil)
	require.NoError(t, err)
	assert.Equal(t, "d", res.Values["name"])
}

func TestLoadDefaultsFile_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"sequence", "- a\n- b\n"},
		{"scalar", "just a string\n"},
		{"broken", "key: [unterminated\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, "bad.yaml", []byte(tt.content), 0o644))

			tp := newTestParser(t, Config{AddHelpOption: noHelp()})
			err := tp.LoadDefaultsFile(fs, "bad.yaml")
			var cfgErr *ConfigurationError
			assert.True(t, errors.As(err, &cfgErr), "got %v", err)
		})
	}
}

func TestLoadDefaultsFile_Empty(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "empty.yaml", []byte("\n"), 0o644))

	tp := newTestParser(t, Config{AddHelpOption: noHelp()})
	require.NoError(t, tp.LoadDefaultsFile(fs, "empty.yaml"))
	res, err := tp.Parse(argv(), nil)
	require.NoError(t, err)
	assert.Empty(t, res.Values)
}

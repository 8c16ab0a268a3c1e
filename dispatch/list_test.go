package dispatch

import (
	"errors"
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memTree(t *testing.T, files map[string]os.FileMode) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for path, mode := range files {
		if mode.IsDir() {
			require.NoError(t, fs.MkdirAll(path, 0o755))
			continue
		}
		require.NoError(t, afero.WriteFile(fs, path, []byte("#!/bin/sh\n"), mode))
	}
	return fs
}

func sampleTree(t *testing.T) afero.Fs {
	return memTree(t, map[string]os.FileMode{
		"/a/tool-build":  0o755,
		"/a/tool-test":   0o644,
		"/a/other":       0o755,
		"/a/tool-":       0o755,
		"/a/tool-subdir": os.ModeDir | 0o755,
		"/b/tool-build":  0o755,
		"/b/tool-deploy": 0o700,
	})
}

func TestList(t *testing.T) {
	names, err := List(sampleTree(t), "tool-", "/a", "/missing", "/b")
	require.NoError(t, err)
	assert.Equal(t, []string{"build", "deploy"}, names)

	names, err = List(sampleTree(t), "tool-")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestResolve_EarlierDirWins(t *testing.T) {
	d := &Dispatcher{Prefix: "tool-", Dirs: []string{"/b", "/a"}, Fs: sampleTree(t)}
	path, err := d.Resolve("build")
	require.NoError(t, err)
	assert.Equal(t, "/b/tool-build", path)

	d.Dirs = []string{"/a", "/b"}
	path, err = d.Resolve("build")
	require.NoError(t, err)
	assert.Equal(t, "/a/tool-build", path)

	path, err = d.Resolve("deploy")
	require.NoError(t, err)
	assert.Equal(t, "/b/tool-deploy", path)
}

func TestResolve_Unknown(t *testing.T) {
	d := &Dispatcher{Prefix: "tool-", Dirs: []string{"/a", "/b"}, Fs: sampleTree(t)}

	tests := []struct {
		name        string
		suggestions []string
		msg         string
	}{
		{"biuld", []string{"build"}, `unknown command "biuld" (did you mean build?)`},
		{"test", nil, `unknown command "test"`},
		{"../a/tool-build", nil, `unknown command "../a/tool-build"`},
		{"", nil, `unknown command ""`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := d.Resolve(tt.name)
			var unknown *UnknownCommandError
			require.True(t, errors.As(err, &unknown), "got %v", err)
			assert.Equal(t, tt.suggestions, unknown.Suggestions)
			assert.Equal(t, tt.msg, err.Error())
		})
	}
}

func TestUnknownCommandError_ManySuggestions(t *testing.T) {
	err := &UnknownCommandError{Name: "st", Suggestions: []string{"set", "sit"}}
	assert.Equal(t, `unknown command "st" (did you mean one of: set, sit?)`, err.Error())
}

func TestCommands_SearchPath(t *testing.T) {
	fs := memTree(t, map[string]os.FileMode{
		"/local/tool-build": 0o755,
		"/p1/tool-build":    0o755,
		"/p2/tool-lint":     0o755,
	})
	t.Setenv("PATH", "/p1"+string(os.PathListSeparator)+string(os.PathListSeparator)+"/p2")

	d := &Dispatcher{Prefix: "tool-", Dirs: []string{"/local"}, Fs: fs}
	names, err := d.Commands()
	require.NoError(t, err)
	assert.Equal(t, []string{"build"}, names)

	d.SearchPath = true
	names, err = d.Commands()
	require.NoError(t, err)
	assert.Equal(t, []string{"build", "lint"}, names)

	path, err := d.Resolve("build")
	require.NoError(t, err)
	assert.Equal(t, "/local/tool-build", path)
	path, err = d.Resolve("lint")
	require.NoError(t, err)
	assert.Equal(t, "/p2/tool-lint", path)
}

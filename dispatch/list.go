// Package dispatch runs sub-commands that live as separate executables named
// <prefix><command>, the way git finds git-<command>.
package dispatch

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/sourcegraph/conc/iter"
	"github.com/spf13/afero"
)

// List returns the sorted sub-command names found in dirs. Each executable
// regular file named prefix+name yields name. Missing directories are
// skipped; a name found in several directories is reported once.
func List(fsys afero.Fs, prefix string, dirs ...string) ([]string, error) {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	perDir, err := iter.MapErr(dirs, func(dir *string) ([]string, error) {
		return scanDir(fsys, prefix, *dir)
	})
	if err != nil {
		return nil, err
	}

	var names []string
	for _, found := range perDir {
		names = append(names, found...)
	}
	slices.Sort(names)
	return slices.Compact(names), nil
}

func scanDir(fsys afero.Fs, prefix, dir string) ([]string, error) {
	entries, err := afero.ReadDir(fsys, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		name, ok := strings.CutPrefix(e.Name(), prefix)
		if !ok || name == "" {
			continue
		}
		if isExecutable(fsys, filepath.Join(dir, e.Name())) {
			names = append(names, name)
		}
	}
	return names, nil
}

// isExecutable follows symlinks, so a link to an executable qualifies.
func isExecutable(fsys afero.Fs, path string) bool {
	info, err := fsys.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Mode().Perm()&0o111 != 0
}

package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/dzonerzy/go-optparse/internal/fuzzy"
)

// Exit statuses used by Main for failures that happen before a child runs.
const (
	ExitUsage    = 2
	ExitNotFound = 127
)

// maxSuggestions bounds the "did you mean" list of UnknownCommandError.
const maxSuggestions = 3

// Dispatcher finds and runs sub-command executables. The zero value searches
// nothing; set Dirs or SearchPath.
type Dispatcher struct {
	// Prefix is prepended to a command name to get the executable name.
	Prefix string
	// Dirs are searched in order before PATH.
	Dirs []string
	// SearchPath also searches the directories of $PATH, after Dirs.
	SearchPath bool
	// Fs is used for discovery. Defaults to the OS filesystem.
	Fs afero.Fs

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// Env holds extra KEY=VALUE pairs added to the inherited environment.
	Env []string

	// Prog, Version and Description configure Main's help output.
	Prog        string
	Version     string
	Description string

	Logger *zap.Logger
}

func (d *Dispatcher) fs() afero.Fs {
	if d.Fs == nil {
		return afero.NewOsFs()
	}
	return d.Fs
}

func (d *Dispatcher) logger() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}

func (d *Dispatcher) stdin() io.Reader {
	if d.Stdin == nil {
		return os.Stdin
	}
	return d.Stdin
}

func (d *Dispatcher) stdout() io.Writer {
	if d.Stdout == nil {
		return os.Stdout
	}
	return d.Stdout
}

func (d *Dispatcher) stderr() io.Writer {
	if d.Stderr == nil {
		return os.Stderr
	}
	return d.Stderr
}

func (d *Dispatcher) searchDirs() []string {
	dirs := append([]string(nil), d.Dirs...)
	if d.SearchPath {
		for _, dir := range filepath.SplitList(os.Getenv("PATH")) {
			if dir != "" {
				dirs = append(dirs, dir)
			}
		}
	}
	return dirs
}

// Commands lists the available command names.
func (d *Dispatcher) Commands() ([]string, error) {
	return List(d.fs(), d.Prefix, d.searchDirs()...)
}

// Resolve returns the path of the executable for name. The first directory
// that has one wins.
func (d *Dispatcher) Resolve(name string) (string, error) {
	if name == "" || strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator) {
		return "", &UnknownCommandError{Name: name}
	}
	fsys := d.fs()
	for _, dir := range d.searchDirs() {
		path := filepath.Join(dir, d.Prefix+name)
		if isExecutable(fsys, path) {
			return path, nil
		}
	}

	unknown := &UnknownCommandError{Name: name}
	// suggestions are best effort
	names, _ := d.Commands()
	if s := fuzzy.Commands(name, names, maxSuggestions); len(s) > 0 {
		unknown.Suggestions = s
	}
	return "", unknown
}

// Run executes the command with args and waits for it. A child that exits
// with a non-zero status is not an error: the status is returned with a nil
// error. Failing to start the child returns status 1 and the error.
func (d *Dispatcher) Run(ctx context.Context, name string, args []string) (int, error) {
	path, err := d.Resolve(name)
	if err != nil {
		return ExitNotFound, err
	}
	d.logger().Debug("dispatch",
		zap.String("command", name),
		zap.String("path", path),
		zap.Strings("args", args),
	)

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdin = d.stdin()
	cmd.Stdout = d.stdout()
	cmd.Stderr = d.stderr()
	if len(d.Env) > 0 {
		cmd.Env = append(os.Environ(), d.Env...)
	}

	err = cmd.Run()
	if err == nil {
		return 0, nil
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		code := ee.ExitCode()
		d.logger().Debug("command exited", zap.String("command", name), zap.Int("status", code))
		if code < 0 {
			// killed by a signal
			return 1, fmt.Errorf("command %s: %w", name, err)
		}
		return code, nil
	}
	return 1, fmt.Errorf("run %s: %w", name, err)
}

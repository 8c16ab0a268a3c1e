package optio

import (
	stdio "io"
	"os"
	"strconv"

	"golang.org/x/term"
)

const (
	defaultWidth = 80
	minWidth     = 40
)

type fder interface {
	Fd() uintptr
}

func isTerminal(w stdio.Writer) bool {
	f, ok := w.(fder)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Width returns the column count used to wrap help text: the pinned width,
// else the terminal size of the output sink, else $COLUMNS, else 80. The
// result is capped at 80 and never below 40.
func (c *ProgramContext) Width() int {
	w := c.width
	if w <= 0 {
		w = terminalWidth(c.out)
	}
	if w <= 0 {
		w = envColumns()
	}
	if w <= 0 || w > defaultWidth {
		w = defaultWidth
	}
	if w < minWidth {
		w = minWidth
	}
	return w
}

func terminalWidth(w stdio.Writer) int {
	f, ok := w.(fder)
	if !ok {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

func envColumns() int {
	v := os.Getenv("COLUMNS")
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

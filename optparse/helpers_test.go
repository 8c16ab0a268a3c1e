package optparse

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	optio "github.com/dzonerzy/go-optparse/io"
)

type testParser struct {
	*Parser
	out *bytes.Buffer
	err *bytes.Buffer
}

func newTestParser(t *testing.T, cfg Config) *testParser {
	t.Helper()
	out, errb := &bytes.Buffer{}, &bytes.Buffer{}
	pc := optio.NewBuffered("prog", out, errb).WithWidth(80)
	p, err := NewParser(pc, cfg)
	require.NoError(t, err)
	return &testParser{Parser: p, out: out, err: errb}
}

func noHelp() *bool {
	b := false
	return &b
}

func (tp *testParser) add(t *testing.T, settings D, spellings ...string) *Option {
	t.Helper()
	opt, err := tp.AddOption(spellings, settings)
	require.NoError(t, err)
	return opt
}

func argv(args ...string) []string { return append([]string{"prog"}, args...) }

// terminated asserts err is a *Terminate with status and returns it.
func terminated(t *testing.T, err error, status int) *Terminate {
	t.Helper()
	var term *Terminate
	require.True(t, errors.As(err, &term), "expected *Terminate, got %T: %v", err, err)
	require.Equal(t, status, term.Status)
	return term
}

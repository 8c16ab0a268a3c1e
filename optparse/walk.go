package optparse

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/kballard/go-shellquote"
	"go.uber.org/zap"

	"github.com/dzonerzy/go-optparse/internal/fuzzy"
	"github.com/dzonerzy/go-optparse/internal/intern"
)

// walker is the state of one parse: the token cursor and the result under
// construction.
type walker struct {
	p          *Parser
	args       []string
	pos        int // next unconsumed token
	values     Values
	positional []string
}

// Parse walks argv (argv[0] is the program name and is skipped) and returns
// the option values and positional arguments. overrides, when non-nil, is
// laid over the defaults key by key before parsing starts.
//
// User errors (unknown option, wrong number of values, a value rejected by a
// callback) print the usage banner and the message on the Err sink and come
// back as *Terminate carrying the exit status; errors.As reaches the
// underlying error. Help and version also return *Terminate, with status 0.
func (p *Parser) Parse(argv []string, overrides D) (*Result, error) {
	var args []string
	if len(argv) > 1 {
		args = argv[1:]
	}
	w := &walker{
		p:          p,
		args:       args,
		values:     p.initialValues(overrides),
		positional: []string{},
	}
	p.logger.Debug("parse", zap.Strings("args", args), zap.Bool("interspersed", p.interspersed))

	if err := w.run(); err != nil {
		return nil, p.fail(err)
	}
	return &Result{Values: w.values, Args: w.positional}, nil
}

// ParseString splits line with shell quoting rules and parses the result.
// The first word is the program name.
func (p *Parser) ParseString(line string, overrides D) (*Result, error) {
	argv, err := shellquote.Split(line)
	if err != nil {
		return nil, fmt.Errorf("split command line: %w", err)
	}
	return p.Parse(argv, overrides)
}

// ParseOrExit is Parse for main functions: any failure ends the program
// through the ProgramContext's exit hook. It returns nil when that hook
// returns.
func (p *Parser) ParseOrExit(argv []string, overrides D) *Result {
	res, err := p.Parse(argv, overrides)
	if err == nil {
		return res
	}
	var term *Terminate
	if !errors.As(err, &term) {
		fmt.Fprintf(p.pc.Err(), "%s: %v\n", p.Prog(), err)
	}
	p.pc.Exit(p.exitCodes.Resolve(err))
	return nil
}

// initialValues layers defaults, the defaults file and overrides, lowest first.
func (p *Parser) initialValues(overrides D) Values {
	values := p.defaults.Clone()
	for k, v := range p.fileDefaults {
		values[k] = cloneValue(v)
	}
	for k, v := range overrides {
		values[k] = v
	}
	return values
}

// fail turns user errors into the printed banner plus a Terminate.
// Anything else is returned unchanged.
func (p *Parser) fail(err error) error {
	var term *Terminate
	if errors.As(err, &term) {
		return term
	}
	if !isUserError(err) {
		return err
	}
	p.Error(err)
	status := p.exitCodes.Resolve(err)
	p.logger.Debug("parse failed", zap.Error(err), zap.Int("status", status))
	return &Terminate{Status: status, Err: err}
}

// Error prints the usage banner and "<prog>: error: <msg>" on the Err sink.
func (p *Parser) Error(err error) {
	w := p.pc.Err()
	_ = p.PrintUsage(w)
	fmt.Fprintf(w, "%s: %s %s\n", p.Prog(), p.pc.Paint(w, "error:", p.theme.Error...), err)
}

func (w *walker) run() error {
	for w.pos < len(w.args) {
		arg := w.args[w.pos]
		w.pos++

		var err error
		switch {
		case arg == "--":
			w.rest()
		case isLong(arg):
			err = w.long(arg)
		case len(arg) > 1 && arg[0] == '-':
			err = w.short(arg)
		default:
			w.positional = append(w.positional, arg)
			if !w.p.interspersed {
				w.rest()
			}
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// rest moves every unconsumed token to the positional list.
func (w *walker) rest() {
	w.positional = append(w.positional, w.args[w.pos:]...)
	w.pos = len(w.args)
}

// long handles "--name" and "--name=payload".
func (w *walker) long(arg string) error {
	spelling, payload, attached := strings.Cut(arg, "=")
	opt := w.p.Lookup(spelling)
	if opt == nil {
		return w.unknown(spelling)
	}

	var value any
	var err error
	if attached {
		value, err = attachedValue(opt, spelling, payload)
	} else {
		value, err = w.take(opt, spelling)
	}
	if err != nil {
		return err
	}
	return w.p.dispatch(w, opt, spelling, value)
}

// short walks a cluster such as "-vvo" or "-ofile". Zero-arity options fire
// left to right; the first option taking values ends the cluster.
func (w *walker) short(arg string) error {
	body := arg[1:]
	for i, r := range body {
		spelling := intern.Short(r)
		opt := w.p.Lookup(spelling)
		if opt == nil {
			return w.unknown(spelling)
		}
		if !opt.TakesValue() {
			if err := w.p.dispatch(w, opt, spelling, true); err != nil {
				return err
			}
			continue
		}

		var value any
		var err error
		_, size := utf8.DecodeRuneInString(body[i:])
		if glued := body[i+size:]; glued != "" {
			value, err = attachedValue(opt, spelling, glued)
		} else {
			value, err = w.take(opt, spelling)
		}
		if err != nil {
			return err
		}
		return w.p.dispatch(w, opt, spelling, value)
	}
	return nil
}

// attachedValue interprets a payload joined to its option: one value for
// arity 1, a comma-separated list of exactly nargs values otherwise.
func attachedValue(opt *Option, spelling, payload string) (any, error) {
	switch opt.nargs {
	case 0:
		return nil, &ArityError{Option: opt, Spelling: spelling, Got: 1, Reason: ArityUnexpectedValue}
	case 1:
		return payload, nil
	}
	parts := strings.Split(payload, ",")
	if len(parts) != opt.nargs {
		return nil, &ArityError{Option: opt, Spelling: spelling, Nargs: opt.nargs, Got: len(parts), Reason: ArityWrongCount}
	}
	return parts, nil
}

// take consumes nargs following tokens verbatim.
func (w *walker) take(opt *Option, spelling string) (any, error) {
	n := opt.nargs
	if n == 0 {
		return true, nil
	}
	if left := len(w.args) - w.pos; left < n {
		return nil, &ArityError{Option: opt, Spelling: spelling, Nargs: n, Got: left, Reason: ArityTooFew}
	}
	vals := w.args[w.pos : w.pos+n]
	w.pos += n
	if n == 1 {
		return vals[0], nil
	}
	return slices.Clone(vals), nil
}

func (w *walker) unknown(spelling string) error {
	return &UnknownOptionError{
		Spelling:   spelling,
		Suggestion: fuzzy.Spelling(spelling, w.p.allSpellings()),
	}
}

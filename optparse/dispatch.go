package optparse

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// dispatch applies opt's action for one invocation. value is a string for
// arity 1, a []string for larger arities and true for zero-arity options.
func (p *Parser) dispatch(w *walker, opt *Option, spelling string, value any) error {
	p.logger.Debug("option",
		zap.String("spelling", spelling),
		zap.Stringer("action", opt.action),
		zap.Any("value", value),
	)

	switch opt.action {
	case ActionStore:
		w.values[opt.dest] = value
	case ActionStoreConst:
		w.values[opt.dest] = opt.constValue
	case ActionStoreTrue:
		w.values[opt.dest] = true
	case ActionStoreFalse:
		w.values[opt.dest] = false
	case ActionAppend:
		w.values[opt.dest] = appendValue(w.values[opt.dest], value)
	case ActionAppendConst:
		w.values[opt.dest] = appendValue(w.values[opt.dest], opt.constValue)
	case ActionCount:
		w.values[opt.dest] = countValue(w.values[opt.dest])
	case ActionCallback:
		return p.invokeCallback(w, opt, spelling, value)
	case ActionHelp:
		return p.terminal(w, opt, spelling, value, p.PrintHelp)
	case ActionVersion:
		return p.terminal(w, opt, spelling, value, p.PrintVersion)
	default:
		return configErrorf("option %s: invalid action %s", opt, opt.action)
	}
	return nil
}

// appendValue returns a new list with v added; cur is never modified since it
// may be shared with the defaults. A missing or non-list cur starts empty.
func appendValue(cur, v any) []any {
	var base []any
	switch l := cur.(type) {
	case []any:
		base = l
	case []string:
		base = lo.ToAnySlice(l)
	}
	out := make([]any, len(base), len(base)+1)
	copy(out, base)
	return append(out, v)
}

// countValue increments an integer of any kind, starting from 0 otherwise.
func countValue(cur any) int {
	n, _ := toInt(cur)
	return n + 1
}

func (p *Parser) newCallbackContext(w *walker, opt *Option, spelling string, value any) *CallbackContext {
	return &CallbackContext{Option: opt, Spelling: spelling, Value: value, Parser: p, w: w}
}

// invokeCallback runs the user callback. A *ValueError becomes a user error
// for this option, a *Terminate passes through, anything else is wrapped.
func (p *Parser) invokeCallback(w *walker, opt *Option, spelling string, value any) error {
	err := opt.callback(p.newCallbackContext(w, opt, spelling, value))
	if err == nil {
		return nil
	}

	var term *Terminate
	if errors.As(err, &term) {
		return term
	}
	var verr *ValueError
	if errors.As(err, &verr) {
		if verr.Option == nil {
			verr.Option = opt
		}
		if verr.Spelling == "" {
			verr.Spelling = spelling
		}
		return verr
	}
	return fmt.Errorf("callback for option %s: %w", spelling, err)
}

// terminal runs help or version: the user callback if set, else the built-in
// printer on the Out sink. Either way parsing ends with status 0 unless the
// callback returned an error.
func (p *Parser) terminal(w *walker, opt *Option, spelling string, value any, builtin func() error) error {
	var err error
	if opt.callback != nil {
		err = p.invokeCallback(w, opt, spelling, value)
	} else {
		err = builtin()
	}
	if err != nil {
		return err
	}
	return &Terminate{Status: p.exitCodes.Defaults().Success}
}

package optparse

import (
	"fmt"
	"strings"
)

// ErrorType categorizes parser errors. Categories drive exit-code mapping
// (via ExitCodeManager).
type ErrorType string

const (
	ErrorTypeConfiguration ErrorType = "configuration"
	ErrorTypeConflict      ErrorType = "conflict"
	ErrorTypeNotFound      ErrorType = "not_found"
	ErrorTypeUnknownOption ErrorType = "unknown_option"
	ErrorTypeArity         ErrorType = "arity"
	ErrorTypeInvalidValue  ErrorType = "invalid_value"
)

type typedError interface {
	error
	Type() ErrorType
}

// ConfigurationError reports a bad option or parser declaration.
type ConfigurationError struct {
	Message string
	Keys    []string // offending settings keys, sorted
}

func (e *ConfigurationError) Error() string {
	if len(e.Keys) == 0 {
		return e.Message
	}
	return e.Message + ": " + strings.Join(e.Keys, ", ")
}

// Type implements typedError.
func (e *ConfigurationError) Type() ErrorType { return ErrorTypeConfiguration }

func configErrorf(format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Message: fmt.Sprintf(format, args...)}
}

// ConflictError is returned by Add under the error conflict policy.
type ConflictError struct {
	Spellings []string
	Owner     *Option
}

func (e *ConflictError) Error() string {
	return "conflicting option string(s): " + strings.Join(e.Spellings, ", ")
}

// Type implements typedError.
func (e *ConflictError) Type() ErrorType { return ErrorTypeConflict }

// NotFoundError is returned by Remove for a spelling nobody owns.
type NotFoundError struct {
	Spelling string
}

func (e *NotFoundError) Error() string { return "no such option: " + e.Spelling }

// Type implements typedError.
func (e *NotFoundError) Type() ErrorType { return ErrorTypeNotFound }

// UnknownOptionError reports a token that resolves to no registered option.
type UnknownOptionError struct {
	Spelling   string
	Suggestion string
}

func (e *UnknownOptionError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("no such option: %s (did you mean %s?)", e.Spelling, e.Suggestion)
	}
	return "no such option: " + e.Spelling
}

// Type implements typedError.
func (e *UnknownOptionError) Type() ErrorType { return ErrorTypeUnknownOption }

// ArityReason tells why an option received the wrong number of values.
type ArityReason int

const (
	ArityTooFew          ArityReason = iota // fewer tokens left than nargs
	ArityUnexpectedValue                    // value attached to a zero-arity option
	ArityWrongCount                         // attached list length differs from nargs
)

// ArityError reports a value-count mismatch for one option invocation.
type ArityError struct {
	Option   *Option
	Spelling string
	Nargs    int
	Got      int
	Reason   ArityReason
}

func (e *ArityError) Error() string {
	switch e.Reason {
	case ArityUnexpectedValue:
		return e.Spelling + " option does not take a value"
	case ArityWrongCount:
		return fmt.Sprintf("%s option requires %d arguments, got %d", e.Spelling, e.Nargs, e.Got)
	case ArityTooFew:
		if e.Nargs == 1 {
			return e.Spelling + " option requires an argument"
		}
		return fmt.Sprintf("%s option requires %d arguments", e.Spelling, e.Nargs)
	default:
		return e.Spelling + " option has the wrong number of values"
	}
}

// Type implements typedError.
func (e *ArityError) Type() ErrorType { return ErrorTypeArity }

// ValueError is returned by callbacks to reject a supplied value. The parser
// fills Option and Spelling when the callback leaves them empty.
type ValueError struct {
	Option   *Option
	Spelling string
	Reason   string
}

// NewValueError builds a ValueError with a formatted reason.
func NewValueError(format string, args ...any) *ValueError {
	return &ValueError{Reason: fmt.Sprintf(format, args...)}
}

func (e *ValueError) Error() string {
	if e.Spelling == "" {
		return e.Reason
	}
	return "option " + e.Spelling + ": " + e.Reason
}

// Type implements typedError.
func (e *ValueError) Type() ErrorType { return ErrorTypeInvalidValue }

// Terminate asks the embedding program to end with Status. Parse returns it
// for help, version and user-facing errors after the output has been written.
type Terminate struct {
	Status  int
	Message string
	Err     error
}

func (e *Terminate) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("terminated with status %d", e.Status)
}

func (e *Terminate) Unwrap() error { return e.Err }

// isUserError reports whether err must be shown to the command-line user
// instead of being returned to the embedding program.
func isUserError(err error) bool {
	switch err.(type) {
	case *UnknownOptionError, *ArityError, *ValueError:
		return true
	default:
		return false
	}
}

package optparse

import "errors"

// ExitCodeDefaults holds the codes used when no category mapping applies.
type ExitCodeDefaults struct {
	Success         int // default: 0
	GeneralError    int // default: 1
	UnknownOption   int // default: 2
	WrongValueCount int // default: 3
	BadValue        int // default: 4
}

func defaultExitDefaults() ExitCodeDefaults {
	return ExitCodeDefaults{Success: 0, GeneralError: 1, UnknownOption: 2, WrongValueCount: 3, BadValue: 4}
}

// ExitCodeManager maps errors to process exit codes.
type ExitCodeManager struct {
	codesByType map[ErrorType]int
	defaults    ExitCodeDefaults
}

func newExitCodeManager() *ExitCodeManager {
	m := &ExitCodeManager{codesByType: make(map[ErrorType]int)}
	m.Default(defaultExitDefaults())
	return m
}

// Define overrides the exit code for an error category.
func (e *ExitCodeManager) Define(typ ErrorType, code int) *ExitCodeManager {
	e.codesByType[typ] = code
	return e
}

// Default replaces the default codes and re-derives the category mapping.
func (e *ExitCodeManager) Default(d ExitCodeDefaults) *ExitCodeManager {
	e.defaults = d
	e.codesByType[ErrorTypeUnknownOption] = d.UnknownOption
	e.codesByType[ErrorTypeArity] = d.WrongValueCount
	e.codesByType[ErrorTypeInvalidValue] = d.BadValue
	return e
}

// Defaults returns the current default codes.
func (e *ExitCodeManager) Defaults() ExitCodeDefaults { return e.defaults }

// Resolve converts an error to an exit code.
// Precedence:
//  1. Terminate (requested status)
//  2. error category mapping (Define)
//  3. GeneralError
func (e *ExitCodeManager) Resolve(err error) int {
	if err == nil {
		return e.defaults.Success
	}
	var term *Terminate
	if errors.As(err, &term) {
		return term.Status
	}
	var typed typedError
	if errors.As(err, &typed) {
		if code, ok := e.codesByType[typed.Type()]; ok {
			return code
		}
	}
	return e.defaults.GeneralError
}

package dispatch

import (
	"fmt"
	"strings"
)

// UnknownCommandError is returned when no executable provides the command.
type UnknownCommandError struct {
	Name        string
	Suggestions []string
}

func (e *UnknownCommandError) Error() string {
	msg := fmt.Sprintf("unknown command %q", e.Name)
	switch len(e.Suggestions) {
	case 0:
		return msg
	case 1:
		return msg + " (did you mean " + e.Suggestions[0] + "?)"
	default:
		return msg + " (did you mean one of: " + strings.Join(e.Suggestions, ", ") + "?)"
	}
}

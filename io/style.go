package optio

import (
	stdio "io"

	"github.com/fatih/color"
)

// Theme holds the attributes used for the semantic parts of parser output.
type Theme struct {
	Error   []color.Attribute
	Heading []color.Attribute
	Success []color.Attribute
	Warning []color.Attribute
	Info    []color.Attribute
	Debug   []color.Attribute
}

// DefaultTheme returns the theme used when none is configured.
func DefaultTheme() Theme {
	return Theme{
		Error:   []color.Attribute{color.FgRed, color.Bold},
		Heading: []color.Attribute{color.Bold},
		Success: []color.Attribute{color.FgGreen},
		Warning: []color.Attribute{color.FgYellow},
		Info:    []color.Attribute{color.FgBlue},
		Debug:   []color.Attribute{color.FgMagenta},
	}
}

// Paint renders s with attrs when w supports color, otherwise returns s.
func (c *ProgramContext) Paint(w stdio.Writer, s string, attrs ...color.Attribute) string {
	if len(attrs) == 0 || !c.SupportsColor(w) {
		return s
	}
	st := color.New(attrs...)
	st.EnableColor()
	return st.Sprint(s)
}

package optparse

import (
	"fmt"
	stdio "io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// SuppressHelp as an option's help text hides the option from FormatHelp.
const SuppressHelp = "SUPPRESSHELP"

// SuppressUsage as the usage template disables the usage line.
const SuppressUsage = "SUPPRESSUSAGE"

const (
	helpIndent      = 2
	maxHelpPosition = 24
	minHelpWidth    = 11
)

// Usage returns the usage template with %prog expanded, or "" when
// suppressed.
func (p *Parser) Usage() string {
	if p.usage == SuppressUsage {
		return ""
	}
	return p.expandProg(p.usage)
}

// SetUsage replaces the usage template.
func (p *Parser) SetUsage(usage string) {
	if usage == "" {
		usage = "%prog [options]"
	}
	p.usage = usage
}

// Version returns the version text with %prog expanded.
func (p *Parser) Version() string { return p.expandProg(p.version) }

func (p *Parser) expandProg(s string) string { return strings.ReplaceAll(s, "%prog", p.Prog()) }

// FormatUsage returns "Usage: <usage>\n", or "" when suppressed.
func (p *Parser) FormatUsage() string { return p.formatUsage(nil) }

func (p *Parser) formatUsage(w stdio.Writer) string {
	u := p.Usage()
	if u == "" {
		return ""
	}
	return p.heading(w, "Usage:") + " " + u + "\n"
}

// FormatVersion returns the version line, or "" without a version.
func (p *Parser) FormatVersion() string {
	if p.version == "" {
		return ""
	}
	return p.Version() + "\n"
}

// FormatHelp renders the usage line, the description and one row per
// visible option, wrapped to the ProgramContext width.
func (p *Parser) FormatHelp() string { return p.formatHelp(nil) }

func (p *Parser) formatHelp(w stdio.Writer) string {
	var b strings.Builder
	width := p.pc.Width() - 2

	if u := p.formatUsage(w); u != "" {
		b.WriteString(u)
		b.WriteString("\n")
	}
	if p.description != "" {
		for _, line := range wrap(p.description, width) {
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	var visible []*Option
	for _, o := range p.options {
		if o.help != SuppressHelp {
			visible = append(visible, o)
		}
	}
	if len(visible) == 0 {
		return b.String()
	}

	b.WriteString(p.heading(w, "Options:"))
	b.WriteString("\n")

	heads := make([]string, len(visible))
	longest := 0
	for i, o := range visible {
		heads[i] = p.optionHead(o)
		longest = max(longest, helpIndent+runewidth.StringWidth(heads[i]))
	}
	helpPos := min(longest+2, maxHelpPosition)
	helpWidth := max(width-helpPos, minHelpWidth)
	colWidth := helpPos - helpIndent - 2
	indent := strings.Repeat(" ", helpIndent)
	pad := strings.Repeat(" ", helpPos)

	for i, o := range visible {
		head := heads[i]
		var lines []string
		if o.help != "" {
			lines = wrap(p.expandDefault(o), helpWidth)
		}

		b.WriteString(indent)
		switch {
		case len(lines) == 0:
			b.WriteString(head)
			b.WriteString("\n")
			continue
		case runewidth.StringWidth(head) > colWidth:
			b.WriteString(head)
			b.WriteString("\n")
			b.WriteString(pad)
		default:
			b.WriteString(runewidth.FillRight(head, colWidth))
			b.WriteString("  ")
		}
		b.WriteString(lines[0])
		b.WriteString("\n")
		for _, l := range lines[1:] {
			b.WriteString(pad)
			b.WriteString(l)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// optionHead renders "-o FILE, --output=FILE". Arity above one repeats the
// metavar: "-p X Y, --point=X,Y".
func (p *Parser) optionHead(o *Option) string {
	var parts []string
	mv := metavars(o)
	for _, s := range o.shortStrings() {
		if len(mv) > 0 {
			s += " " + strings.Join(mv, " ")
		}
		parts = append(parts, s)
	}
	for _, s := range o.longStrings() {
		if len(mv) > 0 {
			s += "=" + strings.Join(mv, ",")
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ", ")
}

func metavars(o *Option) []string {
	if o.nargs == 0 {
		return nil
	}
	name := "VALUE"
	if o.hasDest {
		name = strings.ToUpper(strings.ReplaceAll(o.dest, "-", "_"))
	}
	out := make([]string, o.nargs)
	for i := range out {
		out[i] = name
	}
	return out
}

// expandDefault substitutes %default with the parser's current default for
// the option's dest, or "none".
func (p *Parser) expandDefault(o *Option) string {
	if !strings.Contains(o.help, "%default") {
		return o.help
	}
	text := "none"
	if o.hasDest {
		if v, ok := p.defaults[o.dest]; ok && v != nil {
			text = fmt.Sprint(v)
		}
	}
	return strings.ReplaceAll(o.help, "%default", text)
}

func (p *Parser) heading(w stdio.Writer, s string) string {
	if w == nil {
		return s
	}
	return p.pc.Paint(w, s, p.theme.Heading...)
}

// wrap breaks text into lines no wider than width display cells. A word wider
// than width gets a line of its own.
func wrap(text string, width int) []string {
	var lines []string
	var cur strings.Builder
	curWidth := 0
	for _, word := range strings.Fields(text) {
		ww := runewidth.StringWidth(word)
		if curWidth > 0 && curWidth+1+ww > width {
			lines = append(lines, cur.String())
			cur.Reset()
			curWidth = 0
		}
		if curWidth > 0 {
			cur.WriteByte(' ')
			curWidth++
		}
		cur.WriteString(word)
		curWidth += ww
	}
	if curWidth > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}

// PrintUsage writes the usage line followed by a blank line to w, or to the
// Out sink when w is nil.
func (p *Parser) PrintUsage(w stdio.Writer) error {
	if w == nil {
		w = p.pc.Out()
	}
	u := p.formatUsage(w)
	if u == "" {
		return nil
	}
	_, err := fmt.Fprintln(w, u)
	return err
}

// PrintHelp writes FormatHelp to the Out sink.
func (p *Parser) PrintHelp() error {
	w := p.pc.Out()
	_, err := stdio.WriteString(w, p.formatHelp(w))
	return err
}

// PrintVersion writes the version line to the Out sink.
func (p *Parser) PrintVersion() error {
	_, err := stdio.WriteString(p.pc.Out(), p.FormatVersion())
	return err
}

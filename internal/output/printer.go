package output

import (
	"fmt"
	"io"
)

// Printer writes the CLI's user-facing status lines.
type Printer struct {
	Out     io.Writer
	Err     io.Writer
	NoColor bool
	Scheme  *ColorScheme
}

// NewPrinter creates a printer; colors are used only when useColor is set.
func NewPrinter(out, errOut io.Writer, useColor bool) *Printer {
	scheme := DefaultColorScheme()
	if !useColor {
		scheme = NoColorScheme()
	} else {
		for _, c := range scheme.all() {
			c.EnableColor()
		}
	}
	return &Printer{Out: out, Err: errOut, NoColor: !useColor, Scheme: scheme}
}

// Success prints a status line prefixed with a checkmark.
func (p *Printer) Success(format string, args ...interface{}) {
	fmt.Fprintf(p.Out, "%s %s\n", SuccessIcon(p.NoColor), fmt.Sprintf(format, args...))
}

// Info prints an informational status line.
func (p *Printer) Info(format string, args ...interface{}) {
	fmt.Fprintf(p.Out, "%s %s\n", InfoIcon(p.NoColor), fmt.Sprintf(format, args...))
}

// Warn prints a warning to the error stream.
func (p *Printer) Warn(format string, args ...interface{}) {
	fmt.Fprintf(p.Err, "%s %s\n", WarningIcon(p.NoColor), p.Scheme.Warning.Sprintf(format, args...))
}

// Error prints an error to the error stream.
func (p *Printer) Error(err error) {
	fmt.Fprintf(p.Err, "%s %s\n", ErrorIcon(p.NoColor), p.Scheme.Error.Sprint(err.Error()))
}

// Title prints a section heading.
func (p *Printer) Title(format string, args ...interface{}) {
	fmt.Fprintln(p.Out, p.Scheme.Title.Sprintf(format, args...))
}

// Field prints an indented key: value line.
func (p *Printer) Field(key, value string) {
	p.field(key, p.Scheme.Value.Sprint(value))
}

// SelectorField prints an indented key: value line for a query selector.
func (p *Printer) SelectorField(key, selector string) {
	p.field(key, p.Scheme.Selector.Sprint(selector))
}

func (p *Printer) field(key, styled string) {
	fmt.Fprintf(p.Out, "  %s %s\n", p.Scheme.Key.Sprintf("%s:", key), styled)
}

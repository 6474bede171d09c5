package output

import (
	"github.com/fatih/color"
)

// ColorScheme defines the colors used for the CLI's status and summary lines
type ColorScheme struct {
	Title    *color.Color
	Key      *color.Color
	Value    *color.Color
	Path     *color.Color
	Selector *color.Color
	Success  *color.Color
	Warning  *color.Color
	Error    *color.Color
	Info     *color.Color
}

// DefaultColorScheme returns the default color scheme
func DefaultColorScheme() *ColorScheme {
	return &ColorScheme{
		Title:    color.New(color.FgMagenta, color.Bold),
		Key:      color.New(color.FgYellow),
		Value:    color.New(color.FgWhite),
		Path:     color.New(color.FgCyan),
		Selector: color.New(color.FgBlue, color.Bold),
		Success:  color.New(color.FgGreen),
		Warning:  color.New(color.FgYellow, color.Bold),
		Error:    color.New(color.FgRed),
		Info:     color.New(color.FgBlue),
	}
}

// NoColorScheme returns a color scheme with all colors disabled
func NoColorScheme() *ColorScheme {
	scheme := DefaultColorScheme()
	for _, c := range scheme.all() {
		c.DisableColor()
	}
	return scheme
}

func (s *ColorScheme) all() []*color.Color {
	return []*color.Color{s.Title, s.Key, s.Value, s.Path, s.Selector, s.Success, s.Warning, s.Error, s.Info}
}

// SuccessIcon returns a checkmark symbol with appropriate color
func SuccessIcon(noColor bool) string {
	return icon("✓", color.FgGreen, noColor)
}

// ErrorIcon returns an X symbol with appropriate color
func ErrorIcon(noColor bool) string {
	return icon("✗", color.FgRed, noColor)
}

// InfoIcon returns an info symbol with appropriate color
func InfoIcon(noColor bool) string {
	return icon("ℹ", color.FgBlue, noColor)
}

// WarningIcon returns a warning symbol with appropriate color
func WarningIcon(noColor bool) string {
	return icon("⚠", color.FgYellow, noColor)
}

func icon(symbol string, attr color.Attribute, noColor bool) string {
	if noColor {
		return symbol
	}
	c := color.New(attr)
	c.EnableColor()
	return c.Sprint(symbol)
}

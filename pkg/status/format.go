package status

import (
	"fmt"

	"github.com/fatih/color"
)

// nameWidth is the base width for the filename column.
const nameWidth = 35

// Formatter defines how file outcomes are rendered for the console
type Formatter interface {
	// FormatEntry formats one file outcome line
	FormatEntry(path string, outcome Outcome, detail string) string

	// FormatSummary formats the closing line of a run
	FormatSummary(files int, ok bool) string
}

// ColorFormatter renders outcomes with a symbol and color per kind
type ColorFormatter struct{}

// NewColorFormatter creates a new ColorFormatter
func NewColorFormatter() *ColorFormatter {
	return &ColorFormatter{}
}

// FormatEntry formats one file outcome line
func (f *ColorFormatter) FormatEntry(path string, outcome Outcome, detail string) string {
	var symbol rune
	var attr color.Attribute
	switch outcome {
	case OutcomeScaffolded:
		symbol = '✓'
		attr = color.FgGreen
	case OutcomeRewritten:
		symbol = '⟳'
		attr = color.FgBlue
	case OutcomeFormatted:
		symbol = '·'
		attr = color.FgCyan
	case OutcomeLinked:
		symbol = '→'
		attr = color.FgMagenta
	case OutcomeRemoved:
		symbol = '✗'
		attr = color.FgYellow
	case OutcomeFailed:
		symbol = '!'
		attr = color.FgRed
	default:
		symbol = '?'
		attr = color.FgWhite
	}

	line := fmt.Sprintf("  %s %-*s %s",
		color.New(attr).Sprint(string(symbol)),
		nameWidth, path,
		color.New(color.Faint).Sprint(outcome.String()))
	if detail != "" {
		line += " " + color.New(color.Faint).Sprint("("+detail+")")
	}
	return line
}

// FormatSummary formats the closing line of a run
func (f *ColorFormatter) FormatSummary(files int, ok bool) string {
	if ok {
		return fmt.Sprintf("✅ %s", color.New(color.FgGreen).Sprintf("%d files processed", files))
	}
	return fmt.Sprintf("❌ %s", color.New(color.FgRed).Sprintf("aborted after %d files", files))
}

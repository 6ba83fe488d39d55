package report

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const placeholder = "-"

// Formatter renders report numbers for a locale.
type Formatter struct {
	printer *message.Printer
}

func NewFormatter(tag language.Tag) Formatter {
	return Formatter{printer: message.NewPrinter(tag)}
}

// DefaultFormatter groups thousands the way the Korean locale does.
func DefaultFormatter() Formatter {
	return NewFormatter(language.Korean)
}

// Int formats an integer with thousands grouping.
func (f Formatter) Int(n int64) string {
	if f.printer == nil {
		return DefaultFormatter().Int(n)
	}
	return f.printer.Sprintf("%d", n)
}

// Percent formats a signed percentage. Only positive values carry an explicit
// sign; an absent value renders as the placeholder.
func (f Formatter) Percent(pct *float64) string {
	if pct == nil {
		return placeholder
	}
	text := strconv.FormatFloat(*pct, 'f', -1, 64) + "%"
	if *pct > 0 {
		return "+" + text
	}
	return text
}

func percentClass(pct *float64) string {
	switch {
	case pct == nil:
		return ""
	case *pct > 0:
		return "pct-positive"
	default:
		return "pct-negative"
	}
}

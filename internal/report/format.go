// Package report renders quiz and calculator results as plain text.
package report

import (
	"io"
	"os"

	"golang.org/x/term"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const terminalWidthBackup = 80

var printer = message.NewPrinter(language.English)

// Money formats a dollar amount with thousands separators.
func Money(v float64) string {
	if v < 0 {
		return printer.Sprintf("-$%.2f", -v)
	}
	return printer.Sprintf("$%.2f", v)
}

// WholeMoney formats a dollar amount without cents.
func WholeMoney(v float64) string {
	if v < 0 {
		return printer.Sprintf("-$%.0f", -v)
	}
	return printer.Sprintf("$%.0f", v)
}

// Hours formats a number of hours.
func Hours(v float64) string {
	return printer.Sprintf("%.1f h", v)
}

// Minutes formats a number of minutes.
func Minutes(v float64) string {
	return printer.Sprintf("%.0f min", v)
}

// TerminalWidth returns the width of stdout, or 80 when it is not a terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	return IsTerminal(w)
}

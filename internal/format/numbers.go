package format

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Yen is the currency suffix appended to displayed amounts.
const Yen = "円"

var printer = message.NewPrinter(language.Japanese)

// FormatNumber renders n with Japanese digit grouping, e.g. 12,345.
func FormatNumber(n int) string {
	return printer.Sprintf("%d", n)
}

// FormatYen renders n as a yen amount, e.g. 1,234円.
func FormatYen(n int) string {
	return FormatNumber(n) + Yen
}

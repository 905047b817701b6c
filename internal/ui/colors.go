package ui

// ColorReset returns the escape code that clears formatting.
func ColorReset() string { return GetCurrentTheme().Reset }

// ColorNumber returns the color of numbers read out.
func ColorNumber() string { return GetCurrentTheme().Primary }

// ColorPhrase returns the color of narration phrases.
func ColorPhrase() string { return GetCurrentTheme().Secondary }

// ColorAnswer returns the color of the revealed answer.
func ColorAnswer() string { return GetCurrentTheme().Success }

// ColorWarning returns the warning color.
func ColorWarning() string { return GetCurrentTheme().Warning }

// ColorError returns the error color.
func ColorError() string { return GetCurrentTheme().Error }

// ColorInfo returns the color of status lines.
func ColorInfo() string { return GetCurrentTheme().Info }

// ColorBold returns the bold escape code.
func ColorBold() string { return GetCurrentTheme().Bold }

// Paint wraps s in color and a reset. It returns s unchanged when color is empty.
func Paint(color, s string) string {
	if color == "" {
		return s
	}
	return color + s + ColorReset()
}

package format

import (
	"fmt"
	"strings"
)

const (
	barFilled = "█"
	barEmpty  = "░"
)

// ProgressBar renders a bar of the given length filled to progress (0..1).
// Values outside the range are clamped.
func ProgressBar(progress float64, length int) string {
	if length <= 0 {
		return ""
	}
	progress = min(max(progress, 0), 1)
	filled := int(progress * float64(length))
	return strings.Repeat(barFilled, filled) + strings.Repeat(barEmpty, length-filled)
}

// StepProgress renders "[bar] done/total" for the read-out position.
func StepProgress(done, total, width int) string {
	ratio := 0.0
	if total > 0 {
		ratio = float64(done) / float64(total)
	}
	return fmt.Sprintf("[%s] %d/%d", ProgressBar(ratio, width), done, total)
}

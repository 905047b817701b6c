package orchestration

import (
	"fmt"

	"github.com/agbru/soroban/internal/problem"
	"github.com/agbru/soroban/internal/reading"
	"github.com/agbru/soroban/internal/speech"
)

// Display vocabulary.
const (
	PhraseReady       = "READY"
	NumberPlaceholder = "—"
	WishText          = "願いましては、"
	SubtractText      = "引いては"
	AddAgainText      = "足しては"
	TrailText         = "円なーりー"
	HeadlineHidden    = "答えは・・・"
	HeadlineRevealed  = "答え"
)

// Spoken vocabulary. The unit of the answer is never spoken.
const (
	WishSpoken     = "ねがいましてはぁ"
	SubtractSpoken = "ひいては"
	AddAgainSpoken = "たしては"
	TrailSpoken    = "えんなーりー"
)

// Pitch and rate shaping of the two utterance kinds.
const (
	wishRateFactor = 1.02
	wishRateMin    = 0.7
	wishRateMax    = 2.0
	wishPitch      = 0.92

	stepRateFactor = 1.04
	stepRateMin    = 0.7
	stepRateMax    = 2.2
	stepPitch      = 1.0
)

// Prefix returns the display and spoken cue for steps[i]: a subtraction is
// announced as such, and an addition directly after a subtraction is
// announced as adding again. Other steps carry no cue.
func Prefix(steps []problem.Step, i int) (display, spoken string) {
	if steps[i].Op == problem.Subtract {
		return SubtractText, SubtractSpoken
	}
	if i > 0 && steps[i-1].Op == problem.Subtract {
		return AddAgainText, AddAgainSpoken
	}
	return "", ""
}

// StepLogLine renders the log entry of step i (0-based).
func StepLogLine(i int, prefix, formatted string) string {
	return fmt.Sprintf("%d. %s%s%s", i+1, prefix, formatted, TrailText)
}

// WishUtterance is the opening phrase spoken before the first step.
func WishUtterance(baseRate float64, voice string) speech.Utterance {
	return speech.Utterance{
		Text:  WishSpoken,
		Rate:  clamp(baseRate*wishRateFactor, wishRateMin, wishRateMax),
		Pitch: wishPitch,
		Voice: voice,
	}
}

// StepUtterance narrates one operand with its spoken cue.
func StepUtterance(prefixSpoken string, operand int, baseRate float64, voice string) speech.Utterance {
	return speech.Utterance{
		Text:  prefixSpoken + reading.ReadInt(operand) + TrailSpoken,
		Rate:  clamp(baseRate*stepRateFactor, stepRateMin, stepRateMax),
		Pitch: stepPitch,
		Voice: voice,
	}
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}

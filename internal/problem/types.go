package problem

import (
	"fmt"
	"time"
)

// Operator is the arithmetic operation of one step.
type Operator int

const (
	// Add adds the operand to the running total.
	Add Operator = iota
	// Subtract removes the operand from the running total.
	Subtract
)

// String returns "add" or "sub".
func (o Operator) String() string {
	if o == Subtract {
		return "sub"
	}
	return "add"
}

// Sign returns the sign used in the formula trace.
func (o Operator) Sign() string {
	if o == Subtract {
		return "-"
	}
	return "+"
}

// Mode selects which operators a drill may use.
type Mode string

const (
	// ModeAdditionOnly restricts every step to addition.
	ModeAdditionOnly Mode = "add"
	// ModeMixed allows addition and subtraction after the first step.
	ModeMixed Mode = "mix"
)

// ParseMode converts a flag or settings value into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeAdditionOnly, ModeMixed:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown mode %q (accepted values: add, mix)", s)
}

// AllowsSubtraction reports whether steps after the first may subtract.
func (m Mode) AllowsSubtraction() bool { return m == ModeMixed }

// Config holds the parameters of one drill run. It is treated as immutable
// for the lifetime of the run.
type Config struct {
	// Step is the difficulty step, 1 to 4.
	Step int
	// Count is the number of operations read out.
	Count int
	// Mode selects the allowed operators.
	Mode Mode
	// GapMs is the pause after each step, in milliseconds.
	GapMs int
	// RevealSec is the delay before the answer is revealed, in seconds.
	RevealSec int
}

// Gap returns the pause after each step.
func (c Config) Gap() time.Duration {
	if c.GapMs < 0 {
		return 0
	}
	return time.Duration(c.GapMs) * time.Millisecond
}

// RevealDelay returns the wait before the answer is shown. It is never
// shorter than one second.
func (c Config) RevealDelay() time.Duration {
	return time.Duration(max(1, c.RevealSec)) * time.Second
}

// Step is one operation of a problem.
type Step struct {
	Op      Operator
	Operand int
	// Before is the running total before the operation.
	Before int
	// After is the running total after the operation; never negative.
	After int
}

// Problem is an ordered sequence of steps and its final answer.
type Problem struct {
	Steps  []Step
	Answer int
	// Attempts is the number of full constructions the generator needed.
	Attempts int
}

// SignedSum recomputes the answer from the operands in order.
func (p Problem) SignedSum() int {
	total := 0
	for _, s := range p.Steps {
		if s.Op == Subtract {
			total -= s.Operand
		} else {
			total += s.Operand
		}
	}
	return total
}

// Operands returns the operand of each step in order.
func (p Problem) Operands() []int {
	out := make([]int, len(p.Steps))
	for i, s := range p.Steps {
		out[i] = s.Operand
	}
	return out
}

// Trace returns the running-total lines shown with the answer, one per step,
// e.g. "2. -3  =>  4". The first step always carries a "+".
func (p Problem) Trace() []string {
	lines := make([]string, 0, len(p.Steps))
	total := 0
	for i, s := range p.Steps {
		sign := s.Op.Sign()
		if i == 0 {
			sign = "+"
		}
		if s.Op == Subtract {
			total -= s.Operand
		} else {
			total += s.Operand
		}
		lines = append(lines, fmt.Sprintf("%d. %s%d  =>  %d", i+1, sign, s.Operand, total))
	}
	return lines
}

package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/soroban/internal/problem"
	"github.com/agbru/soroban/internal/ui"
)

const (
	// SpinnerRefreshRate is the frame interval of the reveal countdown spinner.
	SpinnerRefreshRate = 120 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the step progress bar.
	ProgressBarWidth = 12
)

// Spinner is an interface that abstracts the behavior of a terminal spinner.
// The line display uses it while the answer is hidden, which keeps the
// display testable without a terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts *spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) { rs.s.Suffix = suffix }

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], SpinnerRefreshRate, options...)
	return &realSpinner{s}
}

// PrintDrillConfig displays the drill about to be played.
//
// Parameters:
//   - cfg: The drill parameters.
//   - rate: The base speaking rate.
//   - out: The writer for standard output.
func PrintDrillConfig(cfg problem.Config, rate float64, out io.Writer) {
	mode := "addition only"
	if cfg.Mode.AllowsSubtraction() {
		mode = "addition and subtraction"
	}
	fmt.Fprintf(out, "--- Drill ---\n")
	fmt.Fprintf(out, "Step %s%d%s, %s%d%s operations, %s.\n",
		ui.ColorBold(), cfg.Step, ui.ColorReset(), ui.ColorBold(), cfg.Count, ui.ColorReset(), mode)
	fmt.Fprintf(out, "Gap %s%dms%s, answer after %s%ds%s, rate %s%.2f%s.\n",
		ui.ColorInfo(), cfg.GapMs, ui.ColorReset(),
		ui.ColorInfo(), int(cfg.RevealDelay()/time.Second), ui.ColorReset(),
		ui.ColorInfo(), rate, ui.ColorReset())
	fmt.Fprintln(out)
}

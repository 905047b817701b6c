package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/briandowns/spinner"

	"github.com/agbru/soroban/internal/format"
	"github.com/agbru/soroban/internal/orchestration"
	"github.com/agbru/soroban/internal/ui"
)

// LineDisplay renders a drill as appended terminal lines. Output is
// append-only, so the formula trace is held back and printed with the
// answer.
type LineDisplay struct {
	mu     sync.Mutex
	out    io.Writer
	status orchestration.Status
	done   int
	total  int
	phrase string
	number string
	trace  []string
	answer string
	spin   Spinner
	spinOn bool
}

var _ orchestration.DisplayAdapter = (*LineDisplay)(nil)

// NewLineDisplay creates a display writing to out.
func NewLineDisplay(out io.Writer) *LineDisplay {
	return &LineDisplay{
		out:  out,
		spin: newSpinner(spinner.WithWriter(out)),
	}
}

// SetStatus prints the status when it changes.
func (d *LineDisplay) SetStatus(s orchestration.Status) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if s == d.status {
		return
	}
	d.status = s
	fmt.Fprintf(d.out, "%s[%s]%s\n", ui.ColorInfo(), s, ui.ColorReset())
}

// SetProgress records the step counter shown with each log line.
func (d *LineDisplay) SetProgress(done, total int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.done, d.total = done, total
}

// SetPhraseText records the current phrase.
func (d *LineDisplay) SetPhraseText(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.phrase = text
}

// SetNumberText records the current number.
func (d *LineDisplay) SetNumberText(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.number = text
}

// ClearLog starts a new drill block.
func (d *LineDisplay) ClearLog() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.trace = nil
	d.answer = ""
	fmt.Fprintln(d.out)
}

// AppendLogLine prints a narration line with the step counter.
func (d *LineDisplay) AppendLogLine(line string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if line == orchestration.WishText || d.total == 0 {
		fmt.Fprintf(d.out, "%s\n", ui.Paint(ui.ColorPhrase(), line))
		return
	}
	fmt.Fprintf(d.out, "%s  %s\n",
		format.StepProgress(d.done, d.total, ProgressBarWidth),
		ui.Paint(ui.ColorNumber(), line))
}

// ShowResultHeadlineHidden prints the hidden headline and spins until the
// answer is revealed.
func (d *LineDisplay) ShowResultHeadlineHidden() {
	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprintf(d.out, "%s%s%s\n", ui.ColorBold(), orchestration.HeadlineHidden, ui.ColorReset())
	d.spin.UpdateSuffix(" " + orchestration.HeadlineHidden)
	d.spin.Start()
	d.spinOn = true
}

// ShowFormulaTrace keeps the trace for the reveal.
func (d *LineDisplay) ShowFormulaTrace(lines []string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.trace = append([]string(nil), lines...)
}

// RevealAnswer prints the trace and the answer.
func (d *LineDisplay) RevealAnswer(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopSpinnerLocked()
	for _, line := range d.trace {
		fmt.Fprintf(d.out, "  %s\n", ui.Paint(ui.ColorPhrase(), line))
	}
	d.answer = text
	fmt.Fprintf(d.out, "%s: %s%s%s%s\n",
		orchestration.HeadlineRevealed, ui.ColorBold(), ui.ColorAnswer(), text, ui.ColorReset())
}

// ReportGenerationFailure prints msg as an error.
func (d *LineDisplay) ReportGenerationFailure(msg string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprintln(d.out, ui.Paint(ui.ColorError(), msg))
}

// Halt is called after the drill was stopped. Stopping emits no display
// events, so the display resets itself.
func (d *LineDisplay) Halt() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopSpinnerLocked()
	if d.status == orchestration.StatusRunning || (d.status == orchestration.StatusDone && d.answer == "") {
		fmt.Fprintln(d.out, ui.Paint(ui.ColorWarning(), "■ stopped"))
	}
	d.status = orchestration.StatusReady
}

func (d *LineDisplay) stopSpinnerLocked() {
	if d.spinOn {
		d.spin.Stop()
		d.spinOn = false
	}
}

// Status returns the last status set.
func (d *LineDisplay) Status() orchestration.Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.status
}

// Answer returns the revealed answer of the current drill, or "".
func (d *LineDisplay) Answer() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.answer
}

// Summary returns a one-line description of the display state.
func (d *LineDisplay) Summary() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	parts := []string{d.status.String()}
	if d.total > 0 {
		parts = append(parts, fmt.Sprintf("%d/%d", d.done, d.total))
	}
	if d.phrase != "" {
		parts = append(parts, d.phrase+" "+d.number)
	}
	return strings.Join(parts, "  ")
}

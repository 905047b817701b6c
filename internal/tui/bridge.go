package tui

import (
	"sync"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/soroban/internal/orchestration"
)

// programRef is a shared reference to the tea.Program.
// Because bubbletea copies the model on every Update, we need a pointer
// that survives copies so the bridge can send messages.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the tea.Program reference (thread-safe).
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send sends a message to the bubbletea program (thread-safe).
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// Display implements orchestration.DisplayAdapter by forwarding every event
// to the dashboard as a DisplayMsg.
//
// The orchestrator calls it while holding its lock, and Send blocks until
// the dashboard reads the message, so Update must never call the
// orchestrator directly: start, stop and replay run as tea.Cmds.
type Display struct {
	ref   *programRef
	epoch atomic.Uint64
}

var _ orchestration.DisplayAdapter = (*Display)(nil)

// NewDisplay creates a Display that is not attached to a program yet.
func NewDisplay() *Display {
	return &Display{ref: &programRef{}}
}

// Epoch returns the current epoch.
func (d *Display) Epoch() uint64 { return d.epoch.Load() }

// advance invalidates every event sent so far.
func (d *Display) advance() uint64 { return d.epoch.Add(1) }

func (d *Display) send(event any) {
	d.ref.Send(DisplayMsg{Epoch: d.epoch.Load(), Event: event})
}

func (d *Display) SetStatus(s orchestration.Status) { d.send(statusEvent{s}) }
func (d *Display) SetProgress(done, total int)      { d.send(progressEvent{done, total}) }
func (d *Display) SetPhraseText(text string)        { d.send(phraseEvent{text}) }
func (d *Display) SetNumberText(text string)        { d.send(numberEvent{text}) }
func (d *Display) ClearLog()                        { d.send(clearLogEvent{}) }
func (d *Display) AppendLogLine(line string)        { d.send(logLineEvent{line}) }
func (d *Display) ShowResultHeadlineHidden()        { d.send(hiddenEvent{}) }
func (d *Display) RevealAnswer(text string)         { d.send(revealEvent{text}) }
func (d *Display) ReportGenerationFailure(m string) { d.send(failureEvent{m}) }

func (d *Display) ShowFormulaTrace(lines []string) {
	d.send(traceEvent{append([]string(nil), lines...)})
}

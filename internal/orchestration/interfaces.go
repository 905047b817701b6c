//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

package orchestration

import (
	"context"
	"time"

	"github.com/agbru/soroban/internal/problem"
	"github.com/agbru/soroban/internal/speech"
)

// Status is the coarse state shown by a display.
type Status int

const (
	// StatusReady means no run is playing.
	StatusReady Status = iota
	// StatusRunning means a run is reading out its steps.
	StatusRunning
	// StatusDone means every step has been read and the reveal is pending or shown.
	StatusDone
)

// String returns READY, RUNNING or DONE.
func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "RUNNING"
	case StatusDone:
		return "DONE"
	default:
		return "READY"
	}
}

// SpeechAdapter is the text-to-speech capability consumed by the orchestrator.
// Speak must not block; the returned channel receives one value when the
// utterance ends or fails. Errors are treated as completion.
type SpeechAdapter interface {
	Speak(ctx context.Context, u speech.Utterance) <-chan error
	CancelAll()
}

// DisplayAdapter receives the display events of a run. Implementations must
// not call back into the Orchestrator from these methods.
type DisplayAdapter interface {
	SetStatus(status Status)
	SetProgress(done, total int)
	SetPhraseText(text string)
	SetNumberText(text string)
	ClearLog()
	AppendLogLine(line string)
	ShowResultHeadlineHidden()
	ShowFormulaTrace(lines []string)
	RevealAnswer(text string)
	ReportGenerationFailure(message string)
}

// Clock provides the timers used for gaps and the reveal delay.
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

// Generator produces the problem for a run.
type Generator interface {
	Generate(ctx context.Context, cfg problem.Config) (problem.Problem, error)
}

// Observer is notified of run lifecycle events, e.g. to export metrics.
// Calls are made synchronously and must return quickly.
type Observer interface {
	RunStarted(cfg problem.Config)
	ProblemGenerated(p problem.Problem)
	GenerationFailed(cfg problem.Config, err error)
	UtteranceFailed(err error)
	RunSuperseded()
	RunCompleted(elapsed time.Duration)
}

// SystemClock is the wall clock.
type SystemClock struct{}

// After waits for d on the wall clock.
func (SystemClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// NullObserver ignores every event.
type NullObserver struct{}

func (NullObserver) RunStarted(problem.Config)              {}
func (NullObserver) ProblemGenerated(problem.Problem)       {}
func (NullObserver) GenerationFailed(problem.Config, error) {}
func (NullObserver) UtteranceFailed(error)                  {}
func (NullObserver) RunSuperseded()                         {}
func (NullObserver) RunCompleted(time.Duration)             {}

package orchestration

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/agbru/soroban/internal/errors"
	"github.com/agbru/soroban/internal/format"
	"github.com/agbru/soroban/internal/logging"
	"github.com/agbru/soroban/internal/problem"
	"github.com/agbru/soroban/internal/speech"
)

// DefaultRate is the base speaking rate.
const DefaultRate = 1.05

// WishPause is the silence after the opening phrase.
const WishPause = 80 * time.Millisecond

// Orchestrator plays drills. At most one run produces effects at a time.
type Orchestrator struct {
	gen      Generator
	speaker  SpeechAdapter
	display  DisplayAdapter
	clock    Clock
	logger   logging.Logger
	observer Observer
	tracer   trace.Tracer

	mu          sync.Mutex
	token       uint64
	cancel      context.CancelFunc
	rate        float64
	voice       string
	lastConfig  *problem.Config
	lastProblem *problem.Problem

	wg sync.WaitGroup
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithClock replaces the wall clock.
func WithClock(c Clock) Option { return func(o *Orchestrator) { o.clock = c } }

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option { return func(o *Orchestrator) { o.logger = l } }

// WithObserver sets the lifecycle observer.
func WithObserver(obs Observer) Option { return func(o *Orchestrator) { o.observer = obs } }

// WithRate sets the base speaking rate.
func WithRate(rate float64) Option { return func(o *Orchestrator) { o.rate = rate } }

// WithVoice sets the preferred voice name.
func WithVoice(voice string) Option { return func(o *Orchestrator) { o.voice = voice } }

// New creates an Orchestrator.
func New(gen Generator, speaker SpeechAdapter, display DisplayAdapter, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		gen:      gen,
		speaker:  speaker,
		display:  display,
		clock:    SystemClock{},
		logger:   logging.Nop(),
		observer: NullObserver{},
		tracer:   otel.Tracer("github.com/agbru/soroban/internal/orchestration"),
		rate:     DefaultRate,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// SetRate changes the base speaking rate used by subsequent runs.
func (o *Orchestrator) SetRate(rate float64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.rate = rate
}

// SetVoice changes the voice used by subsequent runs.
func (o *Orchestrator) SetVoice(voice string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.voice = voice
}

// Token returns the current run token.
func (o *Orchestrator) Token() uint64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.token
}

// LastConfig returns the configuration of the most recent Start.
func (o *Orchestrator) LastConfig() (problem.Config, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.lastConfig == nil {
		return problem.Config{}, false
	}
	return *o.lastConfig, true
}

// LastProblem returns the most recently generated problem.
func (o *Orchestrator) LastProblem() (problem.Problem, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.lastProblem == nil {
		return problem.Problem{}, false
	}
	return *o.lastProblem, true
}

// run holds the per-run values captured at Start.
type run struct {
	token uint64
	id    string
	cfg   problem.Config
	rate  float64
	voice string
}

func (r run) fields() []logging.Field {
	return []logging.Field{logging.String("run_id", r.id), logging.Uint64("token", r.token)}
}

// Start supersedes any run in flight and begins a new one. The problem is
// generated synchronously; a generation failure is reported to the display,
// the status returns to READY and the error is returned. Otherwise playback
// continues in the background and Start returns nil.
func (o *Orchestrator) Start(ctx context.Context, cfg problem.Config) error {
	o.mu.Lock()
	o.supersedeLocked()
	o.token++
	c := cfg
	o.lastConfig = &c
	r := run{token: o.token, id: uuid.NewString(), cfg: cfg, rate: o.rate, voice: o.voice}
	runCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	o.display.SetStatus(StatusRunning)
	o.display.ClearLog()
	o.display.SetPhraseText(PhraseReady)
	o.display.SetNumberText(NumberPlaceholder)
	o.display.SetProgress(0, cfg.Count)
	o.mu.Unlock()

	o.observer.RunStarted(cfg)
	o.logger.Info("run started", append(r.fields(),
		logging.Int("step", cfg.Step),
		logging.Int("count", cfg.Count),
		logging.String("mode", string(cfg.Mode)),
	)...)

	p, err := o.gen.Generate(runCtx, cfg)
	if err != nil && runCtx.Err() != nil {
		// Stopped or superseded while searching.
		return apperrors.WrapError(err, "start drill")
	}
	if err != nil {
		o.observer.GenerationFailed(cfg, err)
		o.logger.Warn("problem generation failed", append(r.fields(), logging.Err(err))...)
		o.emit(r.token, func() {
			o.display.ReportGenerationFailure(apperrors.UserMessage(err))
			o.display.SetStatus(StatusReady)
		})
		return apperrors.WrapError(err, "start drill")
	}

	o.mu.Lock()
	o.lastProblem = &p
	o.mu.Unlock()
	o.observer.ProblemGenerated(p)
	o.logger.Debug("problem generated", append(r.fields(),
		logging.Int("attempts", p.Attempts),
		logging.Int("answer", p.Answer),
	)...)

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		o.play(runCtx, r, p)
	}()
	return nil
}

// ReplayLast starts a new run with the most recent configuration. It does
// nothing when no run was ever started.
func (o *Orchestrator) ReplayLast(ctx context.Context) error {
	cfg, ok := o.LastConfig()
	if !ok {
		return nil
	}
	return o.Start(ctx, cfg)
}

// Stop invalidates the run in flight and cancels any utterance being
// spoken. It emits no display events and is safe to call at any time.
func (o *Orchestrator) Stop() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.supersedeLocked()
	o.token++
}

func (o *Orchestrator) supersedeLocked() {
	if o.cancel != nil {
		o.cancel()
		o.cancel = nil
	}
	o.speaker.CancelAll()
}

// Wait blocks until every playback goroutine has returned.
func (o *Orchestrator) Wait() {
	o.wg.Wait()
}

// emit runs fn under the lock if token is still current.
func (o *Orchestrator) emit(token uint64, fn func()) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.token != token {
		return false
	}
	fn()
	return true
}

func (o *Orchestrator) current(token uint64) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.token == token
}

// say dispatches u and waits for it to finish. Engine errors count as
// completion. It reports whether the run is still current.
func (o *Orchestrator) say(ctx context.Context, r run, u speech.Utterance) bool {
	var done <-chan error
	if !o.emit(r.token, func() { done = o.speaker.Speak(ctx, u) }) {
		return false
	}
	select {
	case err := <-done:
		if err != nil && o.current(r.token) {
			o.observer.UtteranceFailed(err)
			o.logger.Debug("utterance failed", append(r.fields(), logging.Err(err))...)
		}
	case <-ctx.Done():
		return false
	}
	return o.current(r.token)
}

// wait pauses for d. It reports whether the run is still current.
func (o *Orchestrator) wait(ctx context.Context, r run, d time.Duration) bool {
	if d > 0 {
		select {
		case <-o.clock.After(d):
		case <-ctx.Done():
			return false
		}
	}
	return o.current(r.token)
}

func (o *Orchestrator) play(ctx context.Context, r run, p problem.Problem) {
	start := time.Now()
	ctx, span := o.tracer.Start(ctx, "orchestration.play", trace.WithAttributes(
		attribute.String("run_id", r.id),
		attribute.Int("step", r.cfg.Step),
		attribute.Int("count", r.cfg.Count),
	))
	defer span.End()

	if !o.playSteps(ctx, r, p) || !o.reveal(ctx, r, p) {
		span.SetAttributes(attribute.Bool("superseded", true))
		o.observer.RunSuperseded()
		o.logger.Debug("run superseded", r.fields()...)
		return
	}

	elapsed := time.Since(start)
	o.observer.RunCompleted(elapsed)
	o.logger.Info("run completed", append(r.fields(),
		logging.String("elapsed", format.FormatExecutionDuration(elapsed)),
	)...)
}

func (o *Orchestrator) playSteps(ctx context.Context, r run, p problem.Problem) bool {
	ok := o.emit(r.token, func() {
		o.display.SetPhraseText(WishText)
		o.display.SetNumberText(NumberPlaceholder)
		o.display.AppendLogLine(WishText)
	})
	if !ok || !o.say(ctx, r, WishUtterance(r.rate, r.voice)) || !o.wait(ctx, r, WishPause) {
		return false
	}

	for i, st := range p.Steps {
		prefix, spoken := Prefix(p.Steps, i)
		formatted := format.FormatNumber(st.Operand)
		ok := o.emit(r.token, func() {
			o.display.SetProgress(i+1, r.cfg.Count)
			o.display.SetPhraseText(prefix)
			o.display.SetNumberText(formatted)
			o.display.AppendLogLine(StepLogLine(i, prefix, formatted))
		})
		if !ok || !o.say(ctx, r, StepUtterance(spoken, st.Operand, r.rate, r.voice)) {
			return false
		}
		if !o.wait(ctx, r, r.cfg.Gap()) {
			return false
		}
	}
	return true
}

// reveal shows the hidden headline and the trace, waits, then shows the
// answer. The answer is never spoken.
func (o *Orchestrator) reveal(ctx context.Context, r run, p problem.Problem) bool {
	ok := o.emit(r.token, func() {
		o.display.SetStatus(StatusDone)
		o.display.ShowResultHeadlineHidden()
		o.display.ShowFormulaTrace(p.Trace())
	})
	if !ok || !o.wait(ctx, r, r.cfg.RevealDelay()) {
		return false
	}
	return o.emit(r.token, func() {
		o.display.RevealAnswer(format.FormatYen(p.Answer))
	})
}

// IsGenerationFailure reports whether err came from an exhausted search.
func IsGenerationFailure(err error) bool {
	return errors.Is(err, apperrors.ErrGenerationExhausted)
}

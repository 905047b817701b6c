package orchestration_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/agbru/soroban/internal/errors"
	"github.com/agbru/soroban/internal/format"
	"github.com/agbru/soroban/internal/orchestration"
	"github.com/agbru/soroban/internal/orchestration/mocks"
	"github.com/agbru/soroban/internal/problem"
	"github.com/agbru/soroban/internal/speech"
)

// recordingDisplay stores every display event as a short string.
type recordingDisplay struct {
	mu     sync.Mutex
	events []string
}

func (d *recordingDisplay) add(f string, args ...any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, fmt.Sprintf(f, args...))
}

func (d *recordingDisplay) Events() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.events...)
}

func (d *recordingDisplay) count(prefix string) int {
	n := 0
	for _, e := range d.Events() {
		if strings.HasPrefix(e, prefix) {
			n++
		}
	}
	return n
}

func (d *recordingDisplay) SetStatus(s orchestration.Status) { d.add("status %s", s) }
func (d *recordingDisplay) SetProgress(done, total int)      { d.add("progress %d/%d", done, total) }
func (d *recordingDisplay) SetPhraseText(text string)        { d.add("phrase %s", text) }
func (d *recordingDisplay) SetNumberText(text string)        { d.add("number %s", text) }
func (d *recordingDisplay) ClearLog()                        { d.add("clear") }
func (d *recordingDisplay) AppendLogLine(line string)        { d.add("log %s", line) }
func (d *recordingDisplay) ShowResultHeadlineHidden()        { d.add("headline hidden") }
func (d *recordingDisplay) ShowFormulaTrace(lines []string) {
	d.add("trace %s", strings.Join(lines, " | "))
}
func (d *recordingDisplay) RevealAnswer(text string)            { d.add("answer %s", text) }
func (d *recordingDisplay) ReportGenerationFailure(msg string) { d.add("failure %s", msg) }

type pendingUtterance struct {
	u    speech.Utterance
	done chan error
}

// fakeSpeaker resolves utterances immediately with err, except the first
// `hold` ones, which are handed to the test through pending.
type fakeSpeaker struct {
	mu       sync.Mutex
	spoken   []speech.Utterance
	canceled int
	hold     int
	err      error
	pending  chan pendingUtterance
}

func newFakeSpeaker(hold int) *fakeSpeaker {
	return &fakeSpeaker{hold: hold, pending: make(chan pendingUtterance, 16)}
}

func (s *fakeSpeaker) Speak(_ context.Context, u speech.Utterance) <-chan error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spoken = append(s.spoken, u)
	done := make(chan error, 1)
	if s.hold > 0 {
		s.hold--
		s.pending <- pendingUtterance{u: u, done: done}
		return done
	}
	done <- s.err
	return done
}

func (s *fakeSpeaker) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.canceled++
}

func (s *fakeSpeaker) Texts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.spoken))
	for i, u := range s.spoken {
		out[i] = u.Text
	}
	return out
}

func (s *fakeSpeaker) Spoken() []speech.Utterance {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]speech.Utterance(nil), s.spoken...)
}

type pendingTimer struct {
	d    time.Duration
	fire chan time.Time
}

// fakeClock fires timers at once unless manual, in which case they are
// handed to the test through pending.
type fakeClock struct {
	mu        sync.Mutex
	manual    bool
	durations []time.Duration
	pending   chan pendingTimer
}

func newFakeClock(manual bool) *fakeClock {
	return &fakeClock{manual: manual, pending: make(chan pendingTimer, 16)}
}

func (c *fakeClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	c.durations = append(c.durations, d)
	c.mu.Unlock()
	ch := make(chan time.Time, 1)
	if c.manual {
		c.pending <- pendingTimer{d: d, fire: ch}
	} else {
		ch <- time.Now()
	}
	return ch
}

func (c *fakeClock) Durations() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.durations...)
}

type countingObserver struct {
	mu                         sync.Mutex
	started, generated, failed int
	utterance, superseded      int
	completed                  int
}

func (o *countingObserver) RunStarted(problem.Config)              { o.inc(&o.started) }
func (o *countingObserver) ProblemGenerated(problem.Problem)       { o.inc(&o.generated) }
func (o *countingObserver) GenerationFailed(problem.Config, error) { o.inc(&o.failed) }
func (o *countingObserver) UtteranceFailed(error)                  { o.inc(&o.utterance) }
func (o *countingObserver) RunSuperseded()                         { o.inc(&o.superseded) }
func (o *countingObserver) RunCompleted(time.Duration)             { o.inc(&o.completed) }

func (o *countingObserver) inc(n *int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	*n++
}

func (o *countingObserver) snapshot() (started, superseded, completed, utterance int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.started, o.superseded, o.completed, o.utterance
}

// sampleProblem is +3 +5 -4 +2 = 6.
func sampleProblem() problem.Problem {
	return problem.Problem{
		Steps: []problem.Step{
			{Op: problem.Add, Operand: 3, Before: 0, After: 3},
			{Op: problem.Add, Operand: 5, Before: 3, After: 8},
			{Op: problem.Subtract, Operand: 4, Before: 8, After: 4},
			{Op: problem.Add, Operand: 2, Before: 4, After: 6},
		},
		Answer:   6,
		Attempts: 1,
	}
}

var sampleConfig = problem.Config{Step: 3, Count: 4, Mode: problem.ModeMixed, GapMs: 250, RevealSec: 2}

func fixedGenerator(t *testing.T, p problem.Problem, times int) *mocks.MockGenerator {
	ctrl := gomock.NewController(t)
	gen := mocks.NewMockGenerator(ctrl)
	gen.EXPECT().Generate(gomock.Any(), sampleConfig).Return(p, nil).Times(times)
	return gen
}

func TestStart_PlaysFullRun(t *testing.T) {
	t.Parallel()
	display := &recordingDisplay{}
	speaker := newFakeSpeaker(0)
	clock := newFakeClock(false)
	obs := &countingObserver{}
	o := orchestration.New(fixedGenerator(t, sampleProblem(), 1), speaker, display,
		orchestration.WithClock(clock),
		orchestration.WithObserver(obs),
		orchestration.WithRate(1.0),
	)

	require.NoError(t, o.Start(context.Background(), sampleConfig))
	o.Wait()

	assert.Equal(t, []string{
		"status RUNNING",
		"clear",
		"phrase READY",
		"number —",
		"progress 0/4",
		"phrase 願いましては、",
		"number —",
		"log 願いましては、",
		"progress 1/4",
		"phrase ",
		"number 3",
		"log 1. 3円なーりー",
		"progress 2/4",
		"phrase ",
		"number 5",
		"log 2. 5円なーりー",
		"progress 3/4",
		"phrase 引いては",
		"number 4",
		"log 3. 引いては4円なーりー",
		"progress 4/4",
		"phrase 足しては",
		"number 2",
		"log 4. 足しては2円なーりー",
		"status DONE",
		"headline hidden",
		"trace 1. +3  =>  3 | 2. +5  =>  8 | 3. -4  =>  4 | 4. +2  =>  6",
		"answer 6円",
	}, display.Events())

	assert.Equal(t, []string{
		"ねがいましてはぁ",
		"さんえんなーりー",
		"ごえんなーりー",
		"ひいてはよんえんなーりー",
		"たしてはにえんなーりー",
	}, speaker.Texts())

	spoken := speaker.Spoken()
	assert.InDelta(t, 1.02, spoken[0].Rate, 1e-9)
	assert.InDelta(t, 0.92, spoken[0].Pitch, 1e-9)
	assert.InDelta(t, 1.04, spoken[1].Rate, 1e-9)
	assert.InDelta(t, 1.0, spoken[1].Pitch, 1e-9)

	gap := 250 * time.Millisecond
	assert.Equal(t, []time.Duration{orchestration.WishPause, gap, gap, gap, gap, 2 * time.Second}, clock.Durations())

	started, superseded, completed, _ := obs.snapshot()
	assert.Equal(t, 1, started)
	assert.Equal(t, 0, superseded)
	assert.Equal(t, 1, completed)
	assert.Equal(t, uint64(1), o.Token())
}

func TestStart_WithRealGenerator(t *testing.T) {
	t.Parallel()
	cfg := problem.Config{Step: 1, Count: 3, Mode: problem.ModeAdditionOnly, GapMs: 0, RevealSec: 1}
	display := &recordingDisplay{}
	o := orchestration.New(problem.NewGenerator(problem.NewSeededSource(11)), newFakeSpeaker(0), display,
		orchestration.WithClock(newFakeClock(false)))

	require.NoError(t, o.Start(context.Background(), cfg))
	o.Wait()

	p, ok := o.LastProblem()
	require.True(t, ok)
	require.Len(t, p.Steps, 3)
	for _, st := range p.Steps {
		assert.LessOrEqual(t, st.After, 9)
	}
	events := display.Events()
	assert.Equal(t, "answer "+format.FormatYen(p.Answer), events[len(events)-1])
}

func TestStart_GenerationFailure(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	gen := mocks.NewMockGenerator(ctrl)
	display := mocks.NewMockDisplayAdapter(ctrl)
	speaker := mocks.NewMockSpeechAdapter(ctrl)
	obs := mocks.NewMockObserver(ctrl)

	cfg := problem.Config{Step: 3, Count: 5, Mode: problem.ModeAdditionOnly, RevealSec: 1}
	exhausted := apperrors.GenerationExhaustedError{Step: 3, Count: 5, Mode: "add", Attempts: 12000}

	gen.EXPECT().Generate(gomock.Any(), cfg).Return(problem.Problem{}, exhausted)
	speaker.EXPECT().CancelAll()
	obs.EXPECT().RunStarted(cfg)
	obs.EXPECT().GenerationFailed(cfg, exhausted)
	gomock.InOrder(
		display.EXPECT().SetStatus(orchestration.StatusRunning),
		display.EXPECT().ClearLog(),
		display.EXPECT().SetPhraseText(orchestration.PhraseReady),
		display.EXPECT().SetNumberText(orchestration.NumberPlaceholder),
		display.EXPECT().SetProgress(0, 5),
		display.EXPECT().ReportGenerationFailure(apperrors.GenerationExhaustedMessage),
		display.EXPECT().SetStatus(orchestration.StatusReady),
	)

	o := orchestration.New(gen, speaker, display, orchestration.WithObserver(obs))
	err := o.Start(context.Background(), cfg)

	require.Error(t, err)
	assert.True(t, orchestration.IsGenerationFailure(err))
	assert.Equal(t, apperrors.ExitErrorGeneration, apperrors.ExitCodeFor(err))
	o.Wait()
	_, ok := o.LastProblem()
	assert.False(t, ok)
}

func TestStart_CanceledDuringGenerationIsNotAFailure(t *testing.T) {
	t.Parallel()
	display := &recordingDisplay{}
	obs := &countingObserver{}
	o := orchestration.New(problem.NewGenerator(problem.NewSeededSource(5)), newFakeSpeaker(0), display,
		orchestration.WithClock(newFakeClock(false)), orchestration.WithObserver(obs))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := o.Start(ctx, problem.Config{Step: 3, Count: 5, Mode: problem.ModeAdditionOnly, RevealSec: 1})
	o.Wait()

	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, orchestration.IsGenerationFailure(err))
	assert.Equal(t, apperrors.ExitErrorCanceled, apperrors.ExitCodeFor(err))
	assert.Equal(t, 0, display.count("failure"))
	obs.mu.Lock()
	defer obs.mu.Unlock()
	assert.Equal(t, 0, obs.failed)
}

func TestStop_NoEffectsAfterStop(t *testing.T) {
	t.Parallel()
	display := &recordingDisplay{}
	speaker := newFakeSpeaker(1)
	obs := &countingObserver{}
	o := orchestration.New(fixedGenerator(t, sampleProblem(), 1), speaker, display,
		orchestration.WithClock(newFakeClock(false)),
		orchestration.WithObserver(obs))

	require.NoError(t, o.Start(context.Background(), sampleConfig))
	wish := <-speaker.pending
	assert.Equal(t, orchestration.WishSpoken, wish.u.Text)

	before := display.Events()
	o.Stop()
	// The engine reports the interrupted utterance after Stop.
	wish.done <- speech.ErrCanceled
	o.Wait()

	assert.Equal(t, before, display.Events())
	assert.Len(t, speaker.Spoken(), 1)
	_, superseded, completed, utterance := obs.snapshot()
	assert.Equal(t, 1, superseded)
	assert.Equal(t, 0, completed)
	assert.Equal(t, 0, utterance, "a superseded utterance error is not a failure")
	assert.Equal(t, uint64(2), o.Token())
}

func TestStop_TimerFiringAfterStopIsInert(t *testing.T) {
	t.Parallel()
	display := &recordingDisplay{}
	speaker := newFakeSpeaker(0)
	clock := newFakeClock(true)
	o := orchestration.New(fixedGenerator(t, sampleProblem(), 1), speaker, display, orchestration.WithClock(clock))

	require.NoError(t, o.Start(context.Background(), sampleConfig))
	wishPause := <-clock.pending
	assert.Equal(t, orchestration.WishPause, wishPause.d)
	wishPause.fire <- time.Now()

	firstGap := <-clock.pending
	assert.Equal(t, 250*time.Millisecond, firstGap.d)

	before := display.Events()
	o.Stop()
	firstGap.fire <- time.Now()
	o.Wait()

	assert.Equal(t, before, display.Events())
	assert.Len(t, speaker.Spoken(), 2)
	assert.Equal(t, 0, display.count("answer"))
}

func TestStop_IdempotentWhenIdle(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	speaker := mocks.NewMockSpeechAdapter(ctrl)
	speaker.EXPECT().CancelAll().Times(2)
	// No display expectations: any display call fails the test.
	display := mocks.NewMockDisplayAdapter(ctrl)
	gen := mocks.NewMockGenerator(ctrl)

	o := orchestration.New(gen, speaker, display)
	o.Stop()
	o.Stop()
	o.Wait()

	assert.Equal(t, uint64(2), o.Token())
}

func TestStart_SupersedesRunInFlight(t *testing.T) {
	t.Parallel()
	display := &recordingDisplay{}
	speaker := newFakeSpeaker(1)
	obs := &countingObserver{}
	o := orchestration.New(fixedGenerator(t, sampleProblem(), 2), speaker, display,
		orchestration.WithClock(newFakeClock(false)),
		orchestration.WithObserver(obs))

	require.NoError(t, o.Start(context.Background(), sampleConfig))
	stale := <-speaker.pending

	require.NoError(t, o.Start(context.Background(), sampleConfig))
	stale.done <- nil
	o.Wait()

	assert.Equal(t, 2, display.count("clear"))
	assert.Equal(t, 1, display.count("answer"))
	assert.Equal(t, 1, display.count("log 1."))
	assert.Len(t, speaker.Spoken(), 6, "one stale wish plus a full run")

	started, superseded, completed, _ := obs.snapshot()
	assert.Equal(t, 2, started)
	assert.Equal(t, 1, superseded)
	assert.Equal(t, 1, completed)
	assert.Equal(t, uint64(2), o.Token())
}

func TestReplayLast(t *testing.T) {
	t.Parallel()

	t.Run("no-op without a previous run", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		o := orchestration.New(mocks.NewMockGenerator(ctrl), mocks.NewMockSpeechAdapter(ctrl), mocks.NewMockDisplayAdapter(ctrl))
		require.NoError(t, o.ReplayLast(context.Background()))
		assert.Equal(t, uint64(0), o.Token())
	})

	t.Run("reuses the last config", func(t *testing.T) {
		t.Parallel()
		display := &recordingDisplay{}
		o := orchestration.New(fixedGenerator(t, sampleProblem(), 2), newFakeSpeaker(0), display,
			orchestration.WithClock(newFakeClock(false)))

		require.NoError(t, o.Start(context.Background(), sampleConfig))
		o.Wait()
		require.NoError(t, o.ReplayLast(context.Background()))
		o.Wait()

		cfg, ok := o.LastConfig()
		require.True(t, ok)
		assert.Equal(t, sampleConfig, cfg)
		assert.Equal(t, 2, display.count("answer 6円"))
	})
}

func TestSpeechErrorsAreSwallowed(t *testing.T) {
	t.Parallel()
	display := &recordingDisplay{}
	speaker := newFakeSpeaker(0)
	speaker.err = errors.New("engine unavailable")
	obs := &countingObserver{}
	o := orchestration.New(fixedGenerator(t, sampleProblem(), 1), speaker, display,
		orchestration.WithClock(newFakeClock(false)),
		orchestration.WithObserver(obs))

	require.NoError(t, o.Start(context.Background(), sampleConfig))
	o.Wait()

	assert.Equal(t, 1, display.count("answer 6円"))
	_, _, completed, utterance := obs.snapshot()
	assert.Equal(t, 1, completed)
	assert.Equal(t, 5, utterance)
}

func TestStart_ParentContextCancelStopsPlayback(t *testing.T) {
	t.Parallel()
	display := &recordingDisplay{}
	speaker := newFakeSpeaker(1)
	o := orchestration.New(fixedGenerator(t, sampleProblem(), 1), speaker, display,
		orchestration.WithClock(newFakeClock(false)))

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, o.Start(ctx, sampleConfig))
	<-speaker.pending
	cancel()
	o.Wait()

	assert.Equal(t, 0, display.count("progress 1/4"))
}

func TestSetRateAndVoice(t *testing.T) {
	t.Parallel()
	speaker := newFakeSpeaker(0)
	o := orchestration.New(fixedGenerator(t, sampleProblem(), 1), speaker, &recordingDisplay{},
		orchestration.WithClock(newFakeClock(false)))
	o.SetRate(3.0)
	o.SetVoice("Kyoko")

	require.NoError(t, o.Start(context.Background(), sampleConfig))
	o.Wait()

	spoken := speaker.Spoken()
	assert.InDelta(t, 2.0, spoken[0].Rate, 1e-9, "wish rate is capped at 2.0")
	assert.InDelta(t, 2.2, spoken[1].Rate, 1e-9, "step rate is capped at 2.2")
	for _, u := range spoken {
		assert.Equal(t, "Kyoko", u.Voice)
	}
}

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/soroban/internal/config"
	apperrors "github.com/agbru/soroban/internal/errors"
	"github.com/agbru/soroban/internal/format"
	"github.com/agbru/soroban/internal/orchestration"
	"github.com/agbru/soroban/internal/problem"
)

// Drill is the playback control driven by the dashboard.
// *orchestration.Orchestrator satisfies it.
type Drill interface {
	Start(ctx context.Context, cfg problem.Config) error
	ReplayLast(ctx context.Context) error
	Stop()
}

var _ Drill = (*orchestration.Orchestrator)(nil)

// Layout constants for the drill dashboard.
const (
	// LogLines is the number of narration lines kept on screen.
	LogLines      = 12
	progressWidth = 24
	tickInterval  = 250 * time.Millisecond
	minCount      = 1
	maxCount      = 100
)

// DrillState holds what the display adapter last reported.
type DrillState struct {
	status   orchestration.Status
	done     int
	total    int
	phrase   string
	number   string
	log      []string
	hidden   bool
	hiddenAt time.Time
	trace    []string
	answer   string
	failure  string
	warning  string
	starting bool
}

// Model is the root bubbletea model for the drill dashboard.
type Model struct {
	header HeaderModel
	keymap KeyMap

	DrillState

	ctx     context.Context
	drill   Drill
	display *Display
	cfg     problem.Config
	onStart func(problem.Config)
	width   int
	height  int

	// played is the configuration of the last drill started, read by the
	// again key and the reveal countdown. Update never asks the drill.
	played *problem.Config
	// stopping is the epoch of a stop still in flight, zero when none. The
	// stopped run stays current in the drill until Stop returns, so its
	// events are dropped until StopDoneMsg arrives.
	stopping uint64
}

// NewModel creates a new dashboard model. onStart, when non-nil, is called
// from the start command with the configuration of each drill started.
func NewModel(ctx context.Context, drill Drill, display *Display, cfg problem.Config, version string, onStart func(problem.Config)) Model {
	return Model{
		header:  NewHeaderModel(version),
		keymap:  DefaultKeyMap(),
		ctx:     ctx,
		drill:   drill,
		display: display,
		cfg:     cfg,
		onStart: onStart,
		DrillState: DrillState{
			phrase: orchestration.PhraseReady,
			number: orchestration.NumberPlaceholder,
		},
	}
}

// Config returns the drill parameters currently selected.
func (m Model) Config() problem.Config { return m.cfg }

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), watchContextCmd(m.ctx))
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.header.SetWidth(msg.Width)
		return m, nil

	case DisplayMsg:
		if msg.Epoch != m.display.Epoch() || m.stopping != 0 {
			return m, nil // stale event from a stopped or replaced drill
		}
		m.apply(msg.Event)
		return m, nil

	case StartResultMsg:
		m.starting = false
		return m, nil

	case StopDoneMsg:
		if msg.Epoch == m.stopping {
			m.stopping = 0
		}
		return m, nil

	case TickMsg:
		return m, tickCmd()

	case ContextCancelledMsg:
		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) apply(event any) {
	switch e := event.(type) {
	case statusEvent:
		m.status = e.Status
		m.header.SetStatus(e.Status)
	case progressEvent:
		m.done, m.total = e.Done, e.Total
	case phraseEvent:
		m.phrase = e.Text
	case numberEvent:
		m.number = e.Text
	case clearLogEvent:
		m.log = nil
		m.hidden = false
		m.trace = nil
		m.answer = ""
		m.failure = ""
	case logLineEvent:
		m.log = append(m.log, e.Line)
		if len(m.log) > LogLines {
			m.log = m.log[len(m.log)-LogLines:]
		}
	case hiddenEvent:
		m.hidden = true
		m.hiddenAt = time.Now()
	case traceEvent:
		m.trace = e.Lines
	case revealEvent:
		m.answer = e.Text
	case failureEvent:
		m.failure = e.Message
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Start):
		if err := config.CheckCompatibility(m.cfg); err != nil {
			m.warning = err.Error()
			return m, nil
		}
		m.warning = ""
		m.starting = true
		m.stopping = 0
		played := m.cfg
		m.played = &played
		m.display.advance()
		return m, startCmd(m.ctx, m.drill, m.cfg, m.onStart)

	case key.Matches(msg, m.keymap.Again):
		if m.played == nil {
			return m, nil
		}
		m.warning = ""
		m.starting = true
		m.stopping = 0
		m.display.advance()
		return m, replayCmd(m.ctx, m.drill)

	case key.Matches(msg, m.keymap.Stop):
		m.stopping = m.display.advance()
		m.resetAfterStop()
		return m, stopCmd(m.drill, m.display, m.stopping)

	case key.Matches(msg, m.keymap.Step):
		m.cfg.Step = int(msg.String()[0] - '0')
		m.checkSettings()
		return m, nil

	case key.Matches(msg, m.keymap.ToggleMode):
		if m.cfg.Mode == problem.ModeMixed {
			m.cfg.Mode = problem.ModeAdditionOnly
		} else {
			m.cfg.Mode = problem.ModeMixed
		}
		m.checkSettings()
		return m, nil

	case key.Matches(msg, m.keymap.CountUp):
		m.cfg.Count = min(maxCount, m.cfg.Count+1)
		return m, nil

	case key.Matches(msg, m.keymap.CountDown):
		m.cfg.Count = max(minCount, m.cfg.Count-1)
		return m, nil
	}

	return m, nil
}

// resetAfterStop returns the panels to their idle state. Stopping emits no
// display events, so the dashboard resets itself.
func (m *Model) resetAfterStop() {
	m.status = orchestration.StatusReady
	m.header.SetStatus(orchestration.StatusReady)
	m.phrase = orchestration.PhraseReady
	m.number = orchestration.NumberPlaceholder
	m.hidden = false
	m.starting = false
}

func (m *Model) checkSettings() {
	m.warning = ""
	if err := config.CheckCompatibility(m.cfg); err != nil {
		m.warning = err.Error()
	}
}

// View renders the entire dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	inner := max(20, m.width-4)

	mode := "足し算のみ"
	if m.cfg.Mode.AllowsSubtraction() {
		mode = "足し算＋引き算"
	}
	settings := settingsStyle.Render(fmt.Sprintf("STEP %d  |  %d口  |  %s  |  gap %dms  |  reveal %ds",
		m.cfg.Step, m.cfg.Count, mode, m.cfg.GapMs, int(m.cfg.RevealDelay()/time.Second)))

	stage := lipgloss.JoinVertical(lipgloss.Center,
		phraseStyle.Render(m.phrase),
		numberStyle.Render(m.number),
		progressStyle.Render(format.StepProgress(m.done, m.total, progressWidth)),
	)
	stagePanel := panelStyle.Width(inner).Align(lipgloss.Center).Render(stage)

	logLines := make([]string, 0, len(m.log))
	for _, l := range m.log {
		logLines = append(logLines, logStyle.Render(l))
	}
	logPanel := panelStyle.Width(inner).Render(strings.Join(logLines, "\n"))

	sections := []string{m.header.View(), settings, stagePanel, logPanel}
	if result := m.resultView(); result != "" {
		sections = append(sections, panelStyle.Width(inner).Render(result))
	}
	if m.failure != "" {
		sections = append(sections, errorStyle.Render(m.failure))
	}
	if m.warning != "" {
		sections = append(sections, warningStyle.Render(m.warning))
	}
	sections = append(sections, m.footerView())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) resultView() string {
	if !m.hidden && m.answer == "" {
		return ""
	}
	headline := orchestration.HeadlineHidden
	answer := orchestration.NumberPlaceholder
	if m.played != nil {
		left := m.played.RevealDelay() - time.Since(m.hiddenAt)
		answer = orchestration.NumberPlaceholder + "  " + format.FormatRemaining(left)
	}
	if m.answer != "" {
		headline = orchestration.HeadlineRevealed
		answer = m.answer
	}
	lines := []string{headlineStyle.Render(headline) + "  " + answerStyle.Render(answer)}
	for _, t := range m.trace {
		lines = append(lines, traceStyle.Render(t))
	}
	return strings.Join(lines, "\n")
}

func (m Model) footerView() string {
	parts := make([]string, 0, 8)
	for _, b := range m.keymap.ShortHelp() {
		h := b.Help()
		parts = append(parts, footerKeyStyle.Render(h.Key)+" "+footerDescStyle.Render(h.Desc))
	}
	return " " + strings.Join(parts, "  ")
}

// Run is the public entry point for the dashboard mode. display must be the
// adapter the drill renders to. It returns the exit code.
func Run(ctx context.Context, drill Drill, display *Display, cfg config.AppConfig, version string, onStart func(problem.Config)) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := NewModel(ctx, drill, display, cfg.ProblemConfig(), version, onStart)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	// Attach the program before running so the orchestrator can Send.
	display.ref.SetProgram(p)

	_, err := p.Run()
	// Detach first: Stop must not block on a program that stopped reading.
	display.ref.SetProgram(nil)
	drill.Stop()
	if err != nil && !apperrors.IsContextError(err) && ctx.Err() == nil {
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// startCmd starts a drill outside the update loop.
func startCmd(ctx context.Context, drill Drill, cfg problem.Config, onStart func(problem.Config)) tea.Cmd {
	return func() tea.Msg {
		if onStart != nil {
			onStart(cfg)
		}
		return StartResultMsg{Err: drill.Start(ctx, cfg)}
	}
}

// replayCmd replays the last drill outside the update loop.
func replayCmd(ctx context.Context, drill Drill) tea.Cmd {
	return func() tea.Msg {
		return StartResultMsg{Err: drill.ReplayLast(ctx)}
	}
}

// stopCmd stops the drill outside the update loop. A start or replay pressed
// after the stop moves the epoch on and supersedes the run itself, so the
// stop is skipped rather than cancelling the newer drill.
func stopCmd(drill Drill, display *Display, epoch uint64) tea.Cmd {
	return func() tea.Msg {
		if display.Epoch() == epoch {
			drill.Stop()
		}
		return StopDoneMsg{Epoch: epoch}
	}
}

// tickCmd returns a command that sends a TickMsg after tickInterval.
func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// watchContextCmd waits for context cancellation and sends a message.
func watchContextCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err()}
	}
}

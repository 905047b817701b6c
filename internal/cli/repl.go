// Package cli provides the line-mode drill display, the interactive prompt,
// drill sheets and shell completion scripts.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/agbru/soroban/internal/config"
	"github.com/agbru/soroban/internal/orchestration"
	"github.com/agbru/soroban/internal/problem"
	"github.com/agbru/soroban/internal/ui"
)

// Drill is the playback control used by the prompt. *orchestration.Orchestrator
// satisfies it.
type Drill interface {
	Start(ctx context.Context, cfg problem.Config) error
	ReplayLast(ctx context.Context) error
	Stop()
	SetRate(rate float64)
	SetVoice(voice string)
	LastConfig() (problem.Config, bool)
}

var _ Drill = (*orchestration.Orchestrator)(nil)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// Settings are the initial drill settings.
	Settings config.AppConfig
	// OnStart is called with the settings of every drill that starts, to
	// persist them. May be nil.
	OnStart func(config.AppConfig)
}

// REPL is an interactive drill session.
type REPL struct {
	config   REPLConfig
	settings config.AppConfig
	drill    Drill
	display  *LineDisplay
	in       io.Reader
	out      io.Writer
}

// NewREPL creates a new REPL instance.
//
// Parameters:
//   - drill: The playback control.
//   - display: The display the drill renders to; reset on stop.
//   - config: REPL configuration.
//
// Returns:
//   - *REPL: A new REPL instance.
func NewREPL(drill Drill, display *LineDisplay, config REPLConfig) *REPL {
	return &REPL{
		config:   config,
		settings: config.Settings,
		drill:    drill,
		display:  display,
		in:       os.Stdin,
		out:      os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Settings returns the current drill settings.
func (r *REPL) Settings() config.AppConfig {
	return r.settings
}

// Start reads and runs commands until exit, EOF or ctx is done. Any drill
// still playing is stopped on return.
func (r *REPL) Start(ctx context.Context) {
	defer r.drill.Stop()
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)

	for ctx.Err() == nil {
		fmt.Fprint(r.out, ui.Paint(ui.ColorNumber(), "soroban> "))

		input, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && input != "") {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out, "\nさようなら")
				return
			}
			fmt.Fprintln(r.out, ui.Paint(ui.ColorError(), fmt.Sprintf("Read error: %v", err)))
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if !r.processCommand(ctx, input) {
			return
		}
	}
}

// printBanner displays the REPL welcome banner.
func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔════════════════════════════════════════╗%s\n", ui.ColorInfo(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s  %s🧮 Soroban anzan drill - interactive%s  %s║%s\n",
		ui.ColorInfo(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorInfo(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚════════════════════════════════════════╝%s\n\n", ui.ColorInfo(), ui.ColorReset())
}

// printHelp displays available commands.
func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	cmd := func(name, help string) {
		fmt.Fprintf(r.out, "  %s%-16s%s - %s\n", ui.ColorWarning(), name, ui.ColorReset(), help)
	}
	cmd("start", "Play a new drill with the current settings")
	cmd("stop", "Stop the drill being played")
	cmd("again", "Replay with the settings of the last drill")
	cmd("status", "Display the current settings")
	cmd("set <key> <value>", "Change a setting (step, count, mode, gap, reveal, rate, voice)")
	cmd("help", "Display this help")
	cmd("exit / quit", "Exit interactive mode")
}

// processCommand parses and executes a user command.
// Returns false if the REPL should exit.
func (r *REPL) processCommand(ctx context.Context, input string) bool {
	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "start", "s":
		r.cmdStart(ctx)
	case "stop", "x":
		r.cmdStop()
	case "again", "a":
		r.cmdAgain(ctx)
	case "status", "st":
		r.cmdStatus()
	case "set":
		r.cmdSet(args)
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintln(r.out, ui.Paint(ui.ColorAnswer(), "さようなら"))
		return false
	default:
		fmt.Fprintln(r.out, ui.Paint(ui.ColorError(), "Unknown command: "+cmd))
		fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorWarning(), ui.ColorReset())
	}
	return true
}

// cmdStart validates the settings and starts a drill. Generation failures
// are already shown by the display.
func (r *REPL) cmdStart(ctx context.Context) {
	cfg := r.settings.ProblemConfig()
	if err := config.CheckCompatibility(cfg); err != nil {
		fmt.Fprintln(r.out, ui.Paint(ui.ColorWarning(), err.Error()))
		return
	}
	if r.config.OnStart != nil {
		r.config.OnStart(r.settings)
	}
	r.display.Halt()
	_ = r.drill.Start(ctx, cfg)
}

func (r *REPL) cmdStop() {
	r.drill.Stop()
	r.display.Halt()
}

func (r *REPL) cmdAgain(ctx context.Context) {
	if _, ok := r.drill.LastConfig(); !ok {
		fmt.Fprintln(r.out, "No drill has been played yet.")
		return
	}
	r.display.Halt()
	_ = r.drill.ReplayLast(ctx)
}

// cmdStatus displays the current settings.
func (r *REPL) cmdStatus() {
	s := r.settings
	fmt.Fprintf(r.out, "\n%sCurrent settings:%s\n", ui.ColorBold(), ui.ColorReset())
	row := func(name string, value any) {
		fmt.Fprintf(r.out, "  %-8s %s%v%s\n", name, ui.ColorInfo(), value, ui.ColorReset())
	}
	row("step", s.Step)
	row("count", s.Count)
	row("mode", s.Mode)
	row("gap", fmt.Sprintf("%dms", s.GapMs))
	row("reveal", fmt.Sprintf("%ds", s.RevealSec))
	row("rate", fmt.Sprintf("%.2f", s.Rate))
	row("voice", s.Voice)
	row("display", r.display.Summary())
	if err := config.CheckCompatibility(s.ProblemConfig()); err != nil {
		fmt.Fprintln(r.out, ui.Paint(ui.ColorWarning(), err.Error()))
	}
	fmt.Fprintln(r.out)
}

// cmdSet changes one setting. The new value is validated before it is kept.
func (r *REPL) cmdSet(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(r.out, ui.Paint(ui.ColorError(), "Usage: set <key> <value>"))
		return
	}
	key := strings.ToLower(args[0])
	value := strings.Join(args[1:], " ")
	next := r.settings

	var err error
	switch key {
	case "step":
		next.Step, err = strconv.Atoi(value)
	case "count":
		next.Count, err = strconv.Atoi(value)
	case "mode":
		next.Mode = strings.ToLower(value)
	case "gap":
		next.GapMs, err = strconv.Atoi(value)
	case "reveal":
		next.RevealSec, err = strconv.Atoi(value)
	case "rate":
		next.Rate, err = strconv.ParseFloat(value, 64)
	case "voice":
		next.Voice = value
	default:
		fmt.Fprintln(r.out, ui.Paint(ui.ColorError(), "Unknown setting: "+key))
		return
	}
	if err == nil {
		err = next.Validate()
	}
	if err != nil {
		fmt.Fprintln(r.out, ui.Paint(ui.ColorError(), fmt.Sprintf("Invalid value for %s: %v", key, err)))
		return
	}

	r.settings = next
	r.drill.SetRate(next.Rate)
	r.drill.SetVoice(next.Voice)
	fmt.Fprintf(r.out, "%s set to %s%s%s\n", key, ui.ColorAnswer(), value, ui.ColorReset())
	if err := config.CheckCompatibility(next.ProblemConfig()); err != nil {
		fmt.Fprintln(r.out, ui.Paint(ui.ColorWarning(), err.Error()))
	}
}

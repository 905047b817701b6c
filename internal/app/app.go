// Package app wires the configuration, the drill engine and the interaction
// surfaces together and dispatches to the selected mode.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/soroban/internal/cli"
	"github.com/agbru/soroban/internal/config"
	apperrors "github.com/agbru/soroban/internal/errors"
	"github.com/agbru/soroban/internal/logging"
	"github.com/agbru/soroban/internal/metrics"
	"github.com/agbru/soroban/internal/orchestration"
	"github.com/agbru/soroban/internal/problem"
	"github.com/agbru/soroban/internal/server"
	"github.com/agbru/soroban/internal/settings"
	"github.com/agbru/soroban/internal/speech"
	"github.com/agbru/soroban/internal/ui"
)

// TextSpeechPerChar is the simulated speaking time per character of the
// transcript speaker at rate 1.
const TextSpeechPerChar = 120 * time.Millisecond

// voiceListTimeout bounds the query for installed voices.
const voiceListTimeout = 3 * time.Second

// VoiceLister returns the voices installed for the speech command.
type VoiceLister func(ctx context.Context, command string) ([]speech.Voice, error)

// Application represents the soroban application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
	Logger    logging.Logger

	store      *settings.Store
	speaker    orchestration.SpeechAdapter
	clock      orchestration.Clock
	listVoices VoiceLister
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithSpeaker replaces the speech engine selected by --speech.
func WithSpeaker(s orchestration.SpeechAdapter) AppOption {
	return func(a *Application) { a.speaker = s }
}

// WithClock sets the clock used for gaps and the reveal delay.
func WithClock(c orchestration.Clock) AppOption {
	return func(a *Application) { a.clock = c }
}

// WithVoiceLister sets how installed voices are discovered.
func WithVoiceLister(l VoiceLister) AppOption {
	return func(a *Application) { a.listVoices = l }
}

// New creates a new Application instance by parsing command-line arguments
// and merging the saved settings under them.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{
		ErrWriter:  errWriter,
		clock:      orchestration.SystemClock{},
		listVoices: speech.ListSayVoices,
	}
	for _, opt := range opts {
		opt(app)
	}

	programName := "soroban"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}

	app.Logger = logging.NewLeveledLogger(errWriter, "soroban", cfg.LogLevel)
	app.store = settings.NewStore(cfg.SettingsPath, app.Logger)
	app.Config = cfg.MergeSettings(app.store.Load())
	return app, nil
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(ctx, out)
	}
	if a.Config.ShowVersion {
		PrintVersion(out)
		return apperrors.ExitSuccess
	}

	ui.InitTheme(a.Config.NoColor)

	if a.Config.Sheet > 0 {
		return a.runSheet(ctx, out)
	}

	return a.withMetrics(ctx, func(ctx context.Context, obs orchestration.Observer) int {
		switch {
		case a.Config.TUI:
			return a.runTUI(ctx, obs)
		case a.Config.REPL:
			return a.runREPL(ctx, out, obs)
		default:
			return a.runDrill(ctx, out, obs)
		}
	})
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(ctx context.Context, out io.Writer) int {
	var names []string
	if a.Config.Speech == config.SpeechCommand {
		for _, v := range a.voices(ctx) {
			names = append(names, v.Name)
		}
	}
	if err := cli.GenerateCompletion(out, a.Config.Completion, names); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// withMetrics runs fn, serving metrics next to it when --metrics-addr is set.
// The server stops once fn returns.
func (a *Application) withMetrics(ctx context.Context, fn func(context.Context, orchestration.Observer) int) int {
	if a.Config.MetricsAddr == "" {
		return fn(ctx, orchestration.NullObserver{})
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := metrics.NewDrillMetrics()
	srv := server.New(a.Config.MetricsAddr, m, a.Logger)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(gctx); err != nil {
			return apperrors.WrapError(err, "metrics server")
		}
		return nil
	})

	code := fn(gctx, m)
	cancel()
	if err := g.Wait(); err != nil && !apperrors.IsContextError(err) {
		a.Logger.Error("metrics server failed", err, logging.String("addr", a.Config.MetricsAddr))
		if code == apperrors.ExitSuccess {
			code = apperrors.ExitErrorGeneric
		}
	}
	return code
}

// newGenerator returns a generator seeded by --seed, or using the global
// source when the seed is zero.
func (a *Application) newGenerator() *problem.Generator {
	if a.Config.Seed != 0 {
		return problem.NewGenerator(problem.NewSeededSource(a.Config.Seed))
	}
	return problem.NewGenerator(nil)
}

// newSpeaker builds the speech engine selected by --speech. transcript
// receives the text speaker's output.
func (a *Application) newSpeaker(transcript io.Writer) orchestration.SpeechAdapter {
	if a.speaker != nil {
		return a.speaker
	}
	switch a.Config.Speech {
	case config.SpeechCommand:
		return speech.NewCommandSpeaker(a.Config.SpeechCmd)
	case config.SpeechNone:
		return speech.NullSpeaker{}
	default:
		return speech.NewTextSpeaker(transcript, TextSpeechPerChar)
	}
}

// voices lists the installed voices, or nil when they cannot be queried.
func (a *Application) voices(ctx context.Context) []speech.Voice {
	if a.listVoices == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, voiceListTimeout)
	defer cancel()
	voices, err := a.listVoices(ctx, a.Config.SpeechCmd)
	if err != nil {
		a.Logger.Debug("voice list unavailable", logging.String("command", a.Config.SpeechCmd), logging.Err(err))
		return nil
	}
	return voices
}

// resolveVoice picks the voice name handed to the speech engine. Only the
// command engine has voices to choose from; the others keep the preference.
func (a *Application) resolveVoice(ctx context.Context) string {
	if a.Config.Speech != config.SpeechCommand {
		return a.Config.Voice
	}
	v, ok := speech.SelectVoice(a.voices(ctx), a.Config.Voice, a.Config.VoiceLang)
	if !ok {
		return a.Config.Voice
	}
	a.Logger.Info("voice selected", logging.String("voice", v.Name), logging.String("lang", v.Lang))
	return v.Name
}

// newOrchestrator builds the drill engine rendering to display.
func (a *Application) newOrchestrator(ctx context.Context, display orchestration.DisplayAdapter, transcript io.Writer, obs orchestration.Observer) *orchestration.Orchestrator {
	return orchestration.New(a.newGenerator(), a.newSpeaker(transcript), display,
		orchestration.WithClock(a.clock),
		orchestration.WithLogger(a.Logger),
		orchestration.WithObserver(obs),
		orchestration.WithRate(a.Config.Rate),
		orchestration.WithVoice(a.resolveVoice(ctx)),
	)
}

// saveSettings persists cfg unless --no-save was given. Failures are logged
// by the store and otherwise ignored.
func (a *Application) saveSettings(cfg config.AppConfig) {
	if a.Config.NoSave {
		return
	}
	_ = a.store.Save(cfg.ToSettings())
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/agbru/soroban/internal/cli"
	"github.com/agbru/soroban/internal/config"
	apperrors "github.com/agbru/soroban/internal/errors"
	"github.com/agbru/soroban/internal/logging"
	"github.com/agbru/soroban/internal/orchestration"
	"github.com/agbru/soroban/internal/problem"
	"github.com/agbru/soroban/internal/tui"
	"github.com/agbru/soroban/internal/ui"
)

// runDrill plays one drill in line mode and returns once the answer is
// revealed. Ctrl-C stops the drill.
func (a *Application) runDrill(ctx context.Context, out io.Writer, obs orchestration.Observer) int {
	cfg := a.Config.ProblemConfig()
	if err := config.CheckCompatibility(cfg); err != nil {
		fmt.Fprintln(a.ErrWriter, ui.Paint(ui.ColorWarning(), err.Error()))
		return apperrors.ExitCodeFor(err)
	}

	ctx, stopSignals := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	display := cli.NewLineDisplay(out)
	orch := a.newOrchestrator(ctx, display, out, obs)

	cli.PrintDrillConfig(cfg, a.Config.Rate, out)
	a.saveSettings(a.Config)

	if err := orch.Start(ctx, cfg); err != nil {
		a.Logger.Debug("drill not started", logging.Err(err))
		return apperrors.ExitCodeFor(err)
	}

	done := make(chan struct{})
	go func() {
		orch.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		orch.Stop()
		<-done
	}

	if display.Answer() == "" {
		display.Halt()
		return apperrors.ExitErrorCanceled
	}
	return apperrors.ExitSuccess
}

// runREPL starts the interactive line-mode prompt.
func (a *Application) runREPL(ctx context.Context, out io.Writer, obs orchestration.Observer) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGTERM)
	defer stopSignals()

	display := cli.NewLineDisplay(out)
	orch := a.newOrchestrator(ctx, display, out, obs)

	repl := cli.NewREPL(orch, display, cli.REPLConfig{
		Settings: a.Config,
		OnStart:  a.saveSettings,
	})
	repl.SetOutput(out)
	repl.Start(ctx)
	orch.Wait()
	return apperrors.ExitSuccess
}

// runTUI launches the interactive drill dashboard.
func (a *Application) runTUI(ctx context.Context, obs orchestration.Observer) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	display := tui.NewDisplay()
	// The transcript would tear the alternate screen, so the text engine
	// only keeps the rhythm here.
	orch := a.newOrchestrator(ctx, display, io.Discard, obs)

	onStart := func(cfg problem.Config) {
		a.saveSettings(a.withProblemConfig(cfg))
	}
	code := tui.Run(ctx, orch, display, a.Config, Version, onStart)
	orch.Wait()
	return code
}

// withProblemConfig returns the configuration with the drill parameters
// chosen in the dashboard.
func (a *Application) withProblemConfig(cfg problem.Config) config.AppConfig {
	c := a.Config
	c.Step = cfg.Step
	c.Count = cfg.Count
	c.Mode = string(cfg.Mode)
	c.GapMs = cfg.GapMs
	c.RevealSec = cfg.RevealSec
	return c
}

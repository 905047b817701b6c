package app

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/agbru/soroban/internal/cli"
	"github.com/agbru/soroban/internal/config"
	apperrors "github.com/agbru/soroban/internal/errors"
	"github.com/agbru/soroban/internal/ui"
)

// runSheet prints --sheet problems without playback, to stdout or to
// --output.
func (a *Application) runSheet(ctx context.Context, out io.Writer) int {
	cfg := a.Config.ProblemConfig()
	if err := config.CheckCompatibility(cfg); err != nil {
		fmt.Fprintln(a.ErrWriter, ui.Paint(ui.ColorWarning(), err.Error()))
		return apperrors.ExitCodeFor(err)
	}

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	problems, err := a.newGenerator().GenerateBatch(ctx, cfg, a.Config.Sheet, runtime.GOMAXPROCS(0))
	if err != nil {
		fmt.Fprintln(a.ErrWriter, ui.Paint(ui.ColorError(), apperrors.UserMessage(err)))
		return apperrors.ExitCodeFor(err)
	}

	if a.Config.OutputFile == "" {
		if err := cli.DisplaySheet(out, cfg, problems); err != nil {
			fmt.Fprintf(a.ErrWriter, "Error writing sheet: %v\n", err)
			return apperrors.ExitErrorGeneric
		}
		return apperrors.ExitSuccess
	}

	if err := cli.WriteSheetToFile(a.Config.OutputFile, cfg, problems); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving sheet: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	fmt.Fprintf(out, "%s✓ Sheet of %d problems saved to: %s%s\n",
		ui.ColorAnswer(), len(problems), a.Config.OutputFile, ui.ColorReset())
	return apperrors.ExitSuccess
}

// Package config parses and validates the command-line configuration.
//
// Values are resolved in this order, highest priority first:
//
//	command-line flags > SOROBAN_* environment variables > saved settings > defaults
package config

import (
	"flag"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/agbru/soroban/internal/errors"
	"github.com/agbru/soroban/internal/problem"
	"github.com/agbru/soroban/internal/settings"
)

// EnvPrefix is the prefix of every environment variable override.
const EnvPrefix = "SOROBAN_"

// Speech engine names accepted by --speech.
const (
	SpeechText    = "text"
	SpeechCommand = "command"
	SpeechNone    = "none"
)

// Step3Warning is shown when difficulty step 3 is combined with addition-only
// mode. Step 3 needs a subtraction crossing five, which that mode never draws.
const Step3Warning = "STEP3は「減算で5跨ぎが発生」が条件のため、モードは「足し算＋引き算」を選んでください。"

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// Step is the difficulty step, 1 to 4.
	Step int `flag:"step" validate:"min=1,max=4"`
	// Count is the number of operations per drill.
	Count int `flag:"count" validate:"min=1,max=100"`
	// Mode is "add" (addition only) or "mix".
	Mode string `flag:"mode" validate:"oneof=add mix"`
	// GapMs is the pause after each step, in milliseconds.
	GapMs int `flag:"gap" validate:"min=0,max=5000"`
	// RevealSec is the delay before the answer is shown, in seconds.
	RevealSec int `flag:"reveal" validate:"min=1,max=60"`
	// Rate is the base speaking rate.
	Rate float64 `flag:"rate" validate:"min=0.5,max=2"`
	// Voice is the preferred voice name.
	Voice string `flag:"voice"`
	// VoiceLang is the preferred voice language.
	VoiceLang string `flag:"voice-lang"`
	// Speech selects the speech engine.
	Speech string `flag:"speech" validate:"oneof=text command none"`
	// SpeechCmd is the program used by the command engine.
	SpeechCmd string `flag:"speech-cmd" validate:"required_if=Speech command"`

	// TUI launches the interactive dashboard.
	TUI bool `flag:"tui"`
	// REPL starts the interactive line-mode prompt.
	REPL bool `flag:"repl"`
	// Sheet prints that many problems without playback when positive.
	Sheet int `flag:"sheet" validate:"min=0,max=1000"`
	// OutputFile receives the sheet instead of stdout.
	OutputFile string `flag:"output"`
	// Seed makes generation reproducible when non-zero.
	Seed uint64 `flag:"seed"`

	NoColor      bool   `flag:"no-color"`
	LogLevel     string `flag:"log-level" validate:"oneof=debug info warn error"`
	MetricsAddr  string `flag:"metrics-addr" validate:"omitempty,hostname_port"`
	SettingsPath string `flag:"settings"`
	NoSave       bool   `flag:"no-save"`
	Completion   string `flag:"completion" validate:"omitempty,oneof=bash zsh fish powershell"`
	ShowVersion  bool   `flag:"version"`

	// explicit holds the canonical names of values set by flag or environment.
	explicit map[string]bool
}

// Default returns the configuration used when nothing else is specified.
func Default() AppConfig {
	d := settings.Defaults()
	return AppConfig{
		Step:      d.Step,
		Count:     d.Count,
		Mode:      d.Mode,
		GapMs:     d.GapMs,
		RevealSec: d.RevealSec,
		Rate:      d.Rate,
		Voice:     d.VoiceName,
		VoiceLang: d.VoiceLang,
		Speech:    SpeechText,
		SpeechCmd: "say",
		LogLevel:  "warn",
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("flag"); name != "" {
			return name
		}
		return f.Name
	})
	return v
}

// ParseConfig parses args into an AppConfig and applies SOROBAN_* overrides
// for flags that were not given.
//
// Parameters:
//   - programName: The name of the program, used in usage output.
//   - args: The command-line arguments, without the program name.
//   - errorWriter: Destination of usage and parse error output.
//
// Returns:
//   - AppConfig: The parsed configuration. Saved settings are not merged yet.
//   - error: flag.ErrHelp for -h, or a parse or validation error.
func ParseConfig(programName string, args []string, errorWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	config := Default()

	fs.IntVar(&config.Step, "step", config.Step, "Difficulty step (1-4).")
	fs.IntVar(&config.Step, "s", config.Step, "Difficulty step (shorthand).")
	fs.IntVar(&config.Count, "count", config.Count, "Number of operations per drill.")
	fs.IntVar(&config.Count, "n", config.Count, "Number of operations (shorthand).")
	fs.StringVar(&config.Mode, "mode", config.Mode, "Operators: 'add' (addition only) or 'mix'.")
	fs.StringVar(&config.Mode, "m", config.Mode, "Operators (shorthand).")
	fs.IntVar(&config.GapMs, "gap", config.GapMs, "Pause after each step, in milliseconds.")
	fs.IntVar(&config.RevealSec, "reveal", config.RevealSec, "Seconds before the answer is shown.")
	fs.Float64Var(&config.Rate, "rate", config.Rate, "Base speaking rate (0.5-2.0).")
	fs.StringVar(&config.Voice, "voice", config.Voice, "Preferred voice name.")
	fs.StringVar(&config.VoiceLang, "voice-lang", config.VoiceLang, "Preferred voice language.")
	fs.StringVar(&config.Speech, "speech", config.Speech, "Speech engine: 'text', 'command' or 'none'.")
	fs.StringVar(&config.SpeechCmd, "speech-cmd", config.SpeechCmd, "Program used by the command speech engine.")
	fs.BoolVar(&config.TUI, "tui", false, "Launch the interactive dashboard.")
	fs.BoolVar(&config.REPL, "repl", false, "Start the interactive prompt.")
	fs.IntVar(&config.Sheet, "sheet", 0, "Print N problems with their answers instead of playing a drill.")
	fs.StringVar(&config.OutputFile, "output", "", "Write the sheet to a file.")
	fs.StringVar(&config.OutputFile, "o", "", "Write the sheet to a file (shorthand).")
	fs.Uint64Var(&config.Seed, "seed", 0, "Random seed for reproducible problems (0 = random).")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output.")
	fs.StringVar(&config.LogLevel, "log-level", config.LogLevel, "Log level: debug, info, warn or error.")
	fs.StringVar(&config.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. ':9090').")
	fs.StringVar(&config.SettingsPath, "settings", "", "Settings file (default ~/"+settings.FileName+").")
	fs.BoolVar(&config.NoSave, "no-save", false, "Do not save the settings of started drills.")
	fs.StringVar(&config.Completion, "completion", "", "Generate a completion script (bash, zsh, fish, powershell).")
	fs.BoolVar(&config.ShowVersion, "version", false, "Print version information and exit.")
	fs.BoolVar(&config.ShowVersion, "V", false, "Print version information (shorthand).")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if fs.NArg() > 0 {
		err := apperrors.NewConfigError("unexpected argument %q", fs.Arg(0))
		fmt.Fprintln(errorWriter, "Error:", err)
		return AppConfig{}, err
	}

	config.explicit = make(map[string]bool)
	for _, name := range canonicalFlags {
		if isFlagSetAny(fs, flagAliases(name)...) {
			config.explicit[name] = true
		}
	}
	applyEnvOverrides(&config, fs)

	config.Mode = strings.ToLower(config.Mode)
	config.Speech = strings.ToLower(config.Speech)
	if err := config.Validate(); err != nil {
		fmt.Fprintln(errorWriter, "Error:", err)
		return AppConfig{}, err
	}
	return config, nil
}

// canonicalFlags lists the settings that saved settings may provide.
var canonicalFlags = []string{"step", "count", "mode", "gap", "reveal", "rate", "voice", "voice-lang"}

func flagAliases(name string) []string {
	switch name {
	case "step":
		return []string{"step", "s"}
	case "count":
		return []string{"count", "n"}
	case "mode":
		return []string{"mode", "m"}
	}
	return []string{name}
}

// Validate checks every field against its constraints.
func (c AppConfig) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return apperrors.WrapError(err, "validate config")
	}
	fe := verrs[0]
	return apperrors.ValidationError{Field: fe.Field(), Message: describe(fe)}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("must be at least %s (got %v)", fe.Param(), fe.Value())
	case "max":
		return fmt.Sprintf("must be at most %s (got %v)", fe.Param(), fe.Value())
	case "oneof":
		return fmt.Sprintf("must be one of %s (got %q)", strings.ReplaceAll(fe.Param(), " ", ", "), fe.Value())
	case "required_if":
		return "is required by the selected speech engine"
	case "hostname_port":
		return fmt.Sprintf("must be host:port (got %q)", fe.Value())
	}
	return fmt.Sprintf("failed %q check", fe.Tag())
}

// IsExplicit reports whether the named setting came from a flag or the
// environment.
func (c AppConfig) IsExplicit(name string) bool { return c.explicit[name] }

// MergeSettings fills every drill setting not given explicitly from st.
// A saved value that fails validation is skipped.
func (c AppConfig) MergeSettings(st settings.Settings) AppConfig {
	merged := c
	take := func(name string, apply func(*AppConfig)) {
		if c.IsExplicit(name) {
			return
		}
		candidate := merged
		apply(&candidate)
		if candidate.Validate() == nil {
			merged = candidate
		}
	}
	take("step", func(a *AppConfig) { a.Step = st.Step })
	take("count", func(a *AppConfig) { a.Count = st.Count })
	take("mode", func(a *AppConfig) { a.Mode = st.Mode })
	take("gap", func(a *AppConfig) { a.GapMs = st.GapMs })
	take("reveal", func(a *AppConfig) { a.RevealSec = st.RevealSec })
	take("rate", func(a *AppConfig) { a.Rate = st.Rate })
	if st.VoiceName != "" {
		take("voice", func(a *AppConfig) { a.Voice = st.VoiceName })
	}
	if st.VoiceLang != "" {
		take("voice-lang", func(a *AppConfig) { a.VoiceLang = st.VoiceLang })
	}
	return merged
}

// ToSettings returns the persisted subset of c.
func (c AppConfig) ToSettings() settings.Settings {
	return settings.Settings{
		Step:      c.Step,
		Count:     c.Count,
		Mode:      c.Mode,
		Rate:      c.Rate,
		GapMs:     c.GapMs,
		RevealSec: c.RevealSec,
		VoiceName: c.Voice,
		VoiceLang: c.VoiceLang,
	}
}

// ProblemConfig returns the drill parameters of c.
func (c AppConfig) ProblemConfig() problem.Config {
	return problem.Config{
		Step:      c.Step,
		Count:     c.Count,
		Mode:      problem.Mode(c.Mode),
		GapMs:     c.GapMs,
		RevealSec: c.RevealSec,
	}
}

// CheckCompatibility enforces the cross-field rules of a drill. Difficulty
// step 3 requires mixed mode.
func CheckCompatibility(cfg problem.Config) error {
	if cfg.Step == 3 && !cfg.Mode.AllowsSubtraction() {
		return apperrors.ConfigError{Message: Step3Warning}
	}
	return nil
}

// This file contains environment variable utilities for configuration override.

package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
)

// isFlagSet checks if a flag was explicitly set on the command line.
// This is used to determine whether to apply environment variable overrides.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny checks if any of the specified flags were explicitly set.
// This is useful for aliased flags where either the short or long form may be used.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// envOverride declares a single environment variable override.
// Each entry maps an env key (without the SOROBAN_ prefix) to the CLI flag
// name(s) it corresponds to and a function that applies the env value. The
// first flag name is the canonical setting name. apply reports whether the
// value was accepted.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string) bool
}

func setInt(dst *int, v string) bool {
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return false
	}
	*dst = parsed
	return true
}

// envOverrides is the declarative table of all environment variable overrides.
var envOverrides = []envOverride{
	// Numeric overrides
	{"STEP", []string{"step", "s"}, func(c *AppConfig, v string) bool { return setInt(&c.Step, v) }},
	{"COUNT", []string{"count", "n"}, func(c *AppConfig, v string) bool { return setInt(&c.Count, v) }},
	{"GAP", []string{"gap"}, func(c *AppConfig, v string) bool { return setInt(&c.GapMs, v) }},
	{"REVEAL", []string{"reveal"}, func(c *AppConfig, v string) bool { return setInt(&c.RevealSec, v) }},
	{"SHEET", []string{"sheet"}, func(c *AppConfig, v string) bool { return setInt(&c.Sheet, v) }},
	{"RATE", []string{"rate"}, func(c *AppConfig, v string) bool {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return false
		}
		c.Rate = parsed
		return true
	}},
	{"SEED", []string{"seed"}, func(c *AppConfig, v string) bool {
		parsed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return false
		}
		c.Seed = parsed
		return true
	}},

	// String overrides
	{"MODE", []string{"mode", "m"}, func(c *AppConfig, v string) bool { c.Mode = v; return true }},
	{"VOICE", []string{"voice"}, func(c *AppConfig, v string) bool { c.Voice = v; return true }},
	{"VOICE_LANG", []string{"voice-lang"}, func(c *AppConfig, v string) bool { c.VoiceLang = v; return true }},
	{"SPEECH", []string{"speech"}, func(c *AppConfig, v string) bool { c.Speech = v; return true }},
	{"SPEECH_CMD", []string{"speech-cmd"}, func(c *AppConfig, v string) bool { c.SpeechCmd = v; return true }},
	{"OUTPUT", []string{"output", "o"}, func(c *AppConfig, v string) bool { c.OutputFile = v; return true }},
	{"LOG_LEVEL", []string{"log-level"}, func(c *AppConfig, v string) bool { c.LogLevel = strings.ToLower(v); return true }},
	{"METRICS_ADDR", []string{"metrics-addr"}, func(c *AppConfig, v string) bool { c.MetricsAddr = v; return true }},
	{"SETTINGS", []string{"settings"}, func(c *AppConfig, v string) bool { c.SettingsPath = v; return true }},

	// Boolean overrides
	{"TUI", []string{"tui"}, func(c *AppConfig, v string) bool { return setBool(&c.TUI, v) }},
	{"REPL", []string{"repl"}, func(c *AppConfig, v string) bool { return setBool(&c.REPL, v) }},
	{"NO_COLOR", []string{"no-color"}, func(c *AppConfig, v string) bool { return setBool(&c.NoColor, v) }},
	{"NO_SAVE", []string{"no-save"}, func(c *AppConfig, v string) bool { return setBool(&c.NoSave, v) }},
}

func setBool(dst *bool, v string) bool {
	parsed, ok := parseBoolEnv(v)
	if ok {
		*dst = parsed
	}
	return ok
}

// parseBoolEnv parses a boolean environment variable value.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
func parseBoolEnv(val string) (bool, bool) {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true, true
	case "false", "0", "no":
		return false, true
	}
	return false, false
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line.
// This implements the priority: CLI flags > Environment variables > Defaults.
// Unparseable values are ignored.
//
// Supported environment variables (all prefixed with SOROBAN_):
//   - STEP, COUNT, MODE, GAP, REVEAL, RATE, VOICE, VOICE_LANG, SPEECH,
//     SPEECH_CMD, SHEET, SEED, OUTPUT, LOG_LEVEL, METRICS_ADDR, SETTINGS,
//     TUI, REPL, NO_COLOR, NO_SAVE
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		val := os.Getenv(EnvPrefix + o.envKey)
		if val == "" {
			continue
		}
		if o.apply(config, val) && config.explicit != nil {
			config.explicit[o.flags[0]] = true
		}
	}
}

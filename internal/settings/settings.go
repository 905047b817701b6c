// Package settings persists the last used drill settings as YAML so the next
// session starts where the previous one stopped. Problem history is never
// stored.
package settings

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/agbru/soroban/internal/logging"
)

// FileName is the default settings file name in the home directory.
const FileName = ".soroban_settings.yaml"

// Settings is the persisted subset of the configuration.
type Settings struct {
	Step      int     `yaml:"step"`
	Count     int     `yaml:"count"`
	Mode      string  `yaml:"mode"`
	Rate      float64 `yaml:"rate"`
	GapMs     int     `yaml:"gap_ms"`
	RevealSec int     `yaml:"reveal_sec"`
	VoiceName string  `yaml:"voice_name,omitempty"`
	VoiceLang string  `yaml:"voice_lang,omitempty"`
}

// Defaults returns the settings used on first launch.
func Defaults() Settings {
	return Settings{
		Step:      1,
		Count:     5,
		Mode:      "mix",
		Rate:      1.05,
		GapMs:     0,
		RevealSec: 3,
		VoiceName: "Microsoft Sayaka - Japanese (Japan)",
		VoiceLang: "ja-JP",
	}
}

// DefaultPath returns ~/.soroban_settings.yaml, or the bare file name when
// the home directory is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return FileName
	}
	return filepath.Join(home, FileName)
}

// Store reads and writes one settings file.
type Store struct {
	path   string
	logger logging.Logger
}

// NewStore creates a store for path; an empty path uses DefaultPath.
func NewStore(path string, logger logging.Logger) *Store {
	if path == "" {
		path = DefaultPath()
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Store{path: path, logger: logger}
}

// Path returns the file backing the store.
func (s *Store) Path() string { return s.path }

// Load returns the stored settings merged over Defaults. A missing or
// unreadable file yields Defaults without error, like a fresh install.
func (s *Store) Load() Settings {
	st := Defaults()
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("settings unreadable, using defaults", logging.String("path", s.path), logging.Err(err))
		}
		return st
	}
	// Decoding over the defaults keeps fields absent from the file.
	if err := yaml.Unmarshal(data, &st); err != nil {
		s.logger.Debug("settings corrupt, using defaults", logging.String("path", s.path), logging.Err(err))
		return Defaults()
	}
	return st
}

// Save writes st atomically. Failures are logged and returned; callers may
// ignore them since a drill never depends on persistence.
func (s *Store) Save(st Settings) error {
	data, err := yaml.Marshal(st)
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".soroban_settings-*.tmp")
	if err != nil {
		s.logger.Warn("settings not saved", logging.String("path", s.path), logging.Err(err))
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		s.logger.Warn("settings not saved", logging.String("path", s.path), logging.Err(err))
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		s.logger.Warn("settings not saved", logging.String("path", s.path), logging.Err(err))
		return err
	}
	return nil
}

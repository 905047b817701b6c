package speech

import (
	"bufio"
	"context"
	"errors"
	"io"
	"math"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// DefaultCommand is the macOS speech synthesiser.
const DefaultCommand = "say"

// sayWordsPerMinute is say's normal rate.
const sayWordsPerMinute = 175

// CommandSpeaker speaks by running an external text-to-speech program, one
// process per utterance.
type CommandSpeaker struct {
	name     string
	args     []string
	inflight tracker
	// run is swapped out in tests.
	run func(ctx context.Context, name string, args ...string) error
}

// NewCommandSpeaker creates a speaker running name with the given extra
// arguments placed before the per-utterance ones.
func NewCommandSpeaker(name string, args ...string) *CommandSpeaker {
	if name == "" {
		name = DefaultCommand
	}
	return &CommandSpeaker{name: name, args: args, run: runCommand}
}

func runCommand(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

// Args returns the command-line arguments used for u. The say command gets
// its voice and words-per-minute flags, and a pitch other than 1.0 becomes a
// relative [[pbas]] embedded command in semitones. Other programs receive
// the text as their last argument and ignore voice, rate and pitch.
func (s *CommandSpeaker) Args(u Utterance) []string {
	args := append([]string(nil), s.args...)
	text := u.Text
	if filepath.Base(s.name) == DefaultCommand {
		if u.Voice != "" {
			args = append(args, "-v", u.Voice)
		}
		if u.Rate > 0 {
			args = append(args, "-r", strconv.Itoa(int(u.Rate*sayWordsPerMinute)))
		}
		if shift := pitchSemitones(u.Pitch); shift != "" {
			text = "[[pbas " + shift + "]]" + text
		}
	}
	return append(args, text)
}

// pitchSemitones returns the signed semitone shift for a pitch ratio, or ""
// when the ratio is unset or rounds to no change.
func pitchSemitones(pitch float64) string {
	if pitch <= 0 {
		return ""
	}
	st := math.Round(12*math.Log2(pitch)*10) / 10
	if st == 0 {
		return ""
	}
	if st > 0 {
		return "+" + strconv.FormatFloat(st, 'f', 1, 64)
	}
	return strconv.FormatFloat(st, 'f', 1, 64)
}

// Speak starts the command and resolves when it exits.
func (s *CommandSpeaker) Speak(ctx context.Context, u Utterance) <-chan error {
	ctx, cancel := context.WithCancel(ctx)
	id := s.inflight.add(cancel)
	done := make(chan error, 1)
	go func() {
		defer s.inflight.done(id)
		defer cancel()
		err := s.run(ctx, s.name, s.Args(u)...)
		if err != nil && ctx.Err() != nil {
			err = ErrCanceled
		}
		done <- err
	}()
	return done
}

// CancelAll kills every running speech process.
func (s *CommandSpeaker) CancelAll() { s.inflight.cancelAll() }

// sayVoiceLine matches one line of `say -v ?`, e.g.
// "Kyoko               ja_JP    # こんにちは、私の名前はKyokoです。"
var sayVoiceLine = regexp.MustCompile(`^(.+?)\s+([a-z]{2,3}[_-][A-Za-z0-9]+)\s+#`)

// ParseSayVoices reads the voice listing printed by `say -v ?`.
func ParseSayVoices(r io.Reader) ([]Voice, error) {
	var voices []Voice
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		m := sayVoiceLine.FindStringSubmatch(sc.Text())
		if m == nil {
			continue
		}
		voices = append(voices, Voice{
			Name: strings.TrimSpace(m[1]),
			Lang: strings.ReplaceAll(m[2], "_", "-"),
		})
	}
	return voices, sc.Err()
}

// ListSayVoices runs `say -v ?` and parses the result.
func ListSayVoices(ctx context.Context, name string) ([]Voice, error) {
	if name == "" {
		name = DefaultCommand
	}
	out, err := exec.CommandContext(ctx, name, "-v", "?").Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, errors.New(strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, err
	}
	return ParseSayVoices(strings.NewReader(string(out)))
}

package speech

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"
	"unicode/utf8"
)

// DefaultCharDuration approximates how long one kana takes to speak at rate 1.0.
const DefaultCharDuration = 90 * time.Millisecond

// TextSpeaker writes each utterance to a writer and keeps it "playing" for a
// simulated duration, so a drill keeps its rhythm without an audio device.
type TextSpeaker struct {
	mu       sync.Mutex
	w        io.Writer
	perChar  time.Duration
	inflight tracker
}

// NewTextSpeaker creates a TextSpeaker. A zero perChar means no simulated
// duration: utterances resolve as soon as they are written.
func NewTextSpeaker(w io.Writer, perChar time.Duration) *TextSpeaker {
	return &TextSpeaker{w: w, perChar: perChar}
}

// Duration returns the simulated playback time of u.
func (s *TextSpeaker) Duration(u Utterance) time.Duration {
	if s.perChar <= 0 {
		return 0
	}
	rate := u.Rate
	if rate <= 0 {
		rate = 1
	}
	return time.Duration(float64(s.perChar) * float64(utf8.RuneCountInString(u.Text)) / rate)
}

// Speak writes the transcript line and resolves after the simulated duration.
func (s *TextSpeaker) Speak(ctx context.Context, u Utterance) <-chan error {
	s.mu.Lock()
	_, err := fmt.Fprintf(s.w, "♪ %s (rate %.2f, pitch %.2f)\n", u.Text, u.Rate, u.Pitch)
	s.mu.Unlock()
	if err != nil {
		return resolved(err)
	}

	d := s.Duration(u)
	if d <= 0 {
		return resolved(nil)
	}

	ctx, cancel := context.WithCancel(ctx)
	id := s.inflight.add(cancel)
	done := make(chan error, 1)
	go func() {
		defer s.inflight.done(id)
		defer cancel()
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-timer.C:
			done <- nil
		case <-ctx.Done():
			done <- ErrCanceled
		}
	}()
	return done
}

// CancelAll interrupts every utterance still playing.
func (s *TextSpeaker) CancelAll() { s.inflight.cancelAll() }

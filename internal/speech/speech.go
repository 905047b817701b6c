package speech

import (
	"context"
	"errors"
	"sync"
)

// ErrCanceled is delivered for an utterance interrupted by CancelAll or by
// its context.
var ErrCanceled = errors.New("utterance canceled")

// Utterance is one piece of narration handed to an engine.
type Utterance struct {
	Text string
	// Rate is the speaking rate relative to normal speed (1.0).
	Rate float64
	// Pitch is the voice pitch relative to normal (1.0).
	Pitch float64
	// Voice names the preferred voice; empty selects the engine default.
	Voice string
}

// tracker records cancel functions of in-flight utterances.
type tracker struct {
	mu      sync.Mutex
	next    uint64
	cancels map[uint64]context.CancelFunc
}

func (t *tracker) add(cancel context.CancelFunc) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancels == nil {
		t.cancels = make(map[uint64]context.CancelFunc)
	}
	t.next++
	t.cancels[t.next] = cancel
	return t.next
}

func (t *tracker) done(id uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.cancels, id)
}

func (t *tracker) cancelAll() {
	t.mu.Lock()
	cancels := t.cancels
	t.cancels = nil
	t.mu.Unlock()
	for _, cancel := range cancels {
		cancel()
	}
}

// resolved returns a channel already holding err.
func resolved(err error) <-chan error {
	ch := make(chan error, 1)
	ch <- err
	return ch
}

// NullSpeaker is a silent engine.
type NullSpeaker struct{}

// Speak resolves immediately.
func (NullSpeaker) Speak(context.Context, Utterance) <-chan error { return resolved(nil) }

// CancelAll does nothing.
func (NullSpeaker) CancelAll() {}

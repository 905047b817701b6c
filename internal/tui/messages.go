package tui

import (
	"time"

	"github.com/agbru/soroban/internal/orchestration"
)

// DisplayMsg carries one display event from the orchestrator. Epoch is the
// bridge epoch when the event was sent; events from an older epoch belong
// to a drill the user already stopped or replaced and are dropped.
type DisplayMsg struct {
	Epoch uint64
	Event any
}

// Display events wrapped in DisplayMsg.
type (
	statusEvent   struct{ Status orchestration.Status }
	progressEvent struct{ Done, Total int }
	phraseEvent   struct{ Text string }
	numberEvent   struct{ Text string }
	clearLogEvent struct{}
	logLineEvent  struct{ Line string }
	hiddenEvent   struct{}
	traceEvent    struct{ Lines []string }
	revealEvent   struct{ Text string }
	failureEvent  struct{ Message string }
)

// TickMsg redraws the elapsed time.
type TickMsg time.Time

// StartResultMsg reports the outcome of starting a drill.
type StartResultMsg struct {
	Err error
}

// StopDoneMsg is returned once the drill has stopped. Epoch is the epoch
// the stop key moved to.
type StopDoneMsg struct {
	Epoch uint64
}

// ContextCancelledMsg is sent when the parent context is done.
type ContextCancelledMsg struct {
	Err error
}

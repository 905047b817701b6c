package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/soroban/internal/format"
	"github.com/agbru/soroban/internal/orchestration"
)

// HeaderModel renders the top bar: title, version, status and the elapsed
// time of the current drill.
type HeaderModel struct {
	startTime time.Time
	endTime   time.Time
	version   string
	status    orchestration.Status
	width     int
}

// NewHeaderModel creates a new header.
func NewHeaderModel(version string) HeaderModel {
	return HeaderModel{version: version}
}

// SetStatus updates the status badge. Entering RUNNING restarts the timer
// and entering READY or DONE freezes it.
func (h *HeaderModel) SetStatus(s orchestration.Status) {
	switch {
	case s == orchestration.StatusRunning && h.status != orchestration.StatusRunning:
		h.startTime = time.Now()
		h.endTime = time.Time{}
	case s != orchestration.StatusRunning && h.endTime.IsZero() && !h.startTime.IsZero():
		h.endTime = time.Now()
	}
	h.status = s
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// Elapsed returns the time spent in the current or last drill.
func (h HeaderModel) Elapsed() time.Duration {
	switch {
	case h.startTime.IsZero():
		return 0
	case !h.endTime.IsZero():
		return h.endTime.Sub(h.startTime)
	default:
		return time.Since(h.startTime)
	}
}

// View renders the header.
func (h HeaderModel) View() string {
	titleText := "Soroban Anzan"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	left := titleStyle.Render(titleText) + versionStyle.Render(" | ") + statusBadge(h.status)
	right := elapsedStyle.Render(fmt.Sprintf("Elapsed: %s", format.FormatExecutionDuration(h.Elapsed())))

	gap := max(0, h.width-2-lipgloss.Width(left)-lipgloss.Width(right))
	return headerStyle.Width(h.width).Render(left + strings.Repeat(" ", gap) + right)
}

func statusBadge(s orchestration.Status) string {
	switch s {
	case orchestration.StatusRunning:
		return statusRunningStyle.Render(s.String())
	case orchestration.StatusDone:
		return statusDoneStyle.Render(s.String())
	default:
		return statusReadyStyle.Render(s.String())
	}
}

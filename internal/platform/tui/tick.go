// Package tui provides the Bubble Tea integration for the game.
// It handles the terminal UI loop, input mapping, and the frame clock.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a simulation frame. It carries the wall time
// so the model can hand real elapsed time to the simulation.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// frameDelta returns the time between two ticks, capped so a stalled
// terminal does not turn into one giant simulation step.
func frameDelta(prev, now time.Time, tickRate int) time.Duration {
	if prev.IsZero() {
		return time.Second / time.Duration(tickRate)
	}
	dt := now.Sub(prev)
	if dt < 0 {
		return 0
	}
	return min(dt, maxFrameDelta)
}

const maxFrameDelta = 250 * time.Millisecond

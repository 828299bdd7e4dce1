package ui

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

// spinnerFrames is a shimmering flower-like spinner
var spinnerFrames = []string{"·", "✺", "✹", "✸", "✷", "✶", "✵", "✴", "✳", "✲", "✱", "✧", "✦", "·"}

// spinnerHoldTimes is how many ticks each frame is held.
// First and last frames hold longer for a "breathing" effect.
var spinnerHoldTimes = []int{3, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 3}

// SpinnerTickMsg advances every loading spinner
type SpinnerTickMsg time.Time

// SpinnerTick returns a command that sends a SpinnerTickMsg after SpinnerInterval
func SpinnerTick() tea.Cmd {
	return tea.Tick(SpinnerInterval, func(t time.Time) tea.Msg {
		return SpinnerTickMsg(t)
	})
}

type spinner struct {
	frame int
	tick  int
}

func (s *spinner) advance() {
	s.tick++
	if s.tick >= spinnerHoldTimes[s.frame%len(spinnerHoldTimes)] {
		s.tick = 0
		s.frame = (s.frame + 1) % len(spinnerFrames)
	}
}

func (s *spinner) reset() {
	s.frame = 0
	s.tick = 0
}

func (s *spinner) View() string {
	return spinnerFrames[s.frame]
}

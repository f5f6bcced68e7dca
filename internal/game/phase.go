package game

// Phase is the discrete state of a round.
type Phase int

const (
	// PhaseIdle is the state before a round starts or after PlayAgain/Reset.
	PhaseIdle Phase = iota
	// PhaseWaiting means the round is running but the countdown has not started.
	PhaseWaiting
	// PhaseActive means the countdown is running.
	PhaseActive
	// PhaseEnded means the countdown reached zero and the score is final.
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseWaiting:
		return "waiting"
	case PhaseActive:
		return "active"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Running reports whether key presses are accepted.
func (p Phase) Running() bool {
	return p == PhaseWaiting || p == PhaseActive
}

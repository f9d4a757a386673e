package wait

import (
	"fmt"

	"github.com/mbrock/blocksleep/internal/duration"
)

// StartMessage is printed once the sleep block is in place.
func (m Mode) StartMessage() string {
	var msg string
	switch m.Kind {
	case SingleProcess:
		msg = fmt.Sprintf("Sleep blocked until pid %d exits.", m.PIDs[0])
	case AnyOfSet:
		msg = "Sleep blocked until the first process exits."
	case AllOfSet:
		msg = "Sleep blocked until all processes exit."
	case DurationOnly:
		return fmt.Sprintf("Sleep blocked for %s.", duration.Format(*m.Timeout))
	default:
		return "Sleep blocked indefinitely. Press CTRL-C to exit."
	}
	if m.Timeout != nil {
		msg = fmt.Sprintf("%s (at most %s)", msg[:len(msg)-1], duration.Format(*m.Timeout)) + "."
	}
	return msg
}

// Message describes how a wait in mode m ended.
func (r Result) Message(m Mode) string {
	switch r.Outcome {
	case TimedOut:
		switch m.Kind {
		case SingleProcess:
			return fmt.Sprintf("Timeout reached before process with pid %d could exit.", m.PIDs[0])
		case AnyOfSet:
			return "Timeout reached before any process could exit."
		case AllOfSet:
			return "Timeout reached before all processes could exit."
		default:
			return fmt.Sprintf("Sleep block expired after %s.", duration.Format(*m.Timeout))
		}
	case ConditionSatisfied:
		if m.Kind == AllOfSet {
			return "All processes exited."
		}
		return fmt.Sprintf("Process with pid %d exited.", r.PID)
	case Interrupted:
		return "Interrupted, sleep is no longer blocked."
	default:
		return ""
	}
}

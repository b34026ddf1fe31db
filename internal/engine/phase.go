// Package engine provides the turn state machine: phases, the player
// action queue, the update pipeline, and the controller that sequences
// them with all-or-nothing failure semantics.
package engine

import "fmt"

// Phase identifies one step of the turn state machine. The order is fixed
// and strictly linear; there is no branching.
type Phase uint8

const (
	PhaseStart Phase = iota
	PhasePlayerAction
	PhaseAiActions
	PhaseUpdateStats
	PhaseEnd
)

func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "Start"
	case PhasePlayerAction:
		return "PlayerAction"
	case PhaseAiActions:
		return "AiActions"
	case PhaseUpdateStats:
		return "UpdateStats"
	case PhaseEnd:
		return "End"
	default:
		return fmt.Sprintf("Phase(%d)", uint8(p))
	}
}

// AllPhases returns the phases in execution order.
func AllPhases() []Phase {
	return []Phase{PhaseStart, PhasePlayerAction, PhaseAiActions, PhaseUpdateStats, PhaseEnd}
}

// PhaseError is the single tagged failure a caller sees when a turn
// aborts: the phase that failed, the phases that completed before it, and
// the original cause.
type PhaseError struct {
	Phase     Phase
	Completed []Phase
	Err       error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("turn phase %s failed: %v", e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() error {
	return e.Err
}

package simulation

import (
	"fmt"
)

// Outcome represents the state of a game
type Outcome string

const (
	// OutcomeOngoing indicates the game accepts commands
	OutcomeOngoing Outcome = "ONGOING"

	// OutcomeWon indicates the ship reached the restart threshold
	OutcomeWon Outcome = "WON"

	// OutcomeLost indicates the crew starved
	OutcomeLost Outcome = "LOST"
)

func (o Outcome) String() string {
	return string(o)
}

// IsTerminal reports whether no further transition is possible
func (o Outcome) IsTerminal() bool {
	return o == OutcomeWon || o == OutcomeLost
}

// ParseOutcome converts a persisted outcome name
func ParseOutcome(s string) (Outcome, error) {
	switch Outcome(s) {
	case OutcomeOngoing, OutcomeWon, OutcomeLost:
		return Outcome(s), nil
	}
	return "", fmt.Errorf("invalid outcome: %s", s)
}

// OutcomeStateMachine guards the ONGOING -> WON | LOST transitions.
//
// Invariants:
// - Only ONGOING may transition
// - WON and LOST are terminal
// - endedAt records the turn the transition happened on
type OutcomeStateMachine struct {
	status  Outcome
	endedAt int
}

// NewOutcomeStateMachine creates a state machine in ONGOING state
func NewOutcomeStateMachine() *OutcomeStateMachine {
	return &OutcomeStateMachine{status: OutcomeOngoing}
}

// Status returns the current outcome
func (sm *OutcomeStateMachine) Status() Outcome {
	return sm.status
}

// EndedAt returns the turn the game ended on (0 while ongoing)
func (sm *OutcomeStateMachine) EndedAt() int {
	return sm.endedAt
}

// IsFinished checks if the game reached a terminal outcome
func (sm *OutcomeStateMachine) IsFinished() bool {
	return sm.status.IsTerminal()
}

// State transition methods

// Win transitions from ONGOING to WON
func (sm *OutcomeStateMachine) Win(turn int) error {
	if sm.status != OutcomeOngoing {
		return fmt.Errorf("cannot win from %s state", sm.status)
	}
	sm.status = OutcomeWon
	sm.endedAt = turn
	return nil
}

// Lose transitions from ONGOING to LOST
func (sm *OutcomeStateMachine) Lose(turn int) error {
	if sm.status != OutcomeOngoing {
		return fmt.Errorf("cannot lose from %s state", sm.status)
	}
	sm.status = OutcomeLost
	sm.endedAt = turn
	return nil
}

// Transition applies a verdict. ONGOING verdicts are a no-op.
func (sm *OutcomeStateMachine) Transition(verdict Outcome, turn int) error {
	switch verdict {
	case OutcomeWon:
		return sm.Win(turn)
	case OutcomeLost:
		return sm.Lose(turn)
	case OutcomeOngoing:
		return nil
	}
	return fmt.Errorf("invalid outcome: %s", verdict)
}

// RecoverFromPersistence restores state from a snapshot.
// Bypasses transition validation.
func (sm *OutcomeStateMachine) RecoverFromPersistence(status Outcome, endedAt int) {
	sm.status = status
	sm.endedAt = endedAt
}

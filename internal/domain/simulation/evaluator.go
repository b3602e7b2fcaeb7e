package simulation

import (
	"github.com/andrescamacho/spacecolony-go/internal/domain/ledger"
	"github.com/andrescamacho/spacecolony-go/internal/domain/shared"
)

// WinLossEvaluator decides the verdict after each turn.
//
// The verdict depends only on the ship's ledger and the starvation streak,
// the number of consecutive turns whose ship batch failed for lack of FOOD.
type WinLossEvaluator struct {
	threshold       map[shared.Resource]int
	starvationLimit int
	streak          int
}

// NewWinLossEvaluator creates an evaluator from the game rules
func NewWinLossEvaluator(rules Rules) *WinLossEvaluator {
	return &WinLossEvaluator{
		threshold:       rules.clone().RestartThreshold,
		starvationLimit: rules.StarvationLimit,
	}
}

// StarvationStreak returns the current run of turns with a ship FOOD shortfall
func (e *WinLossEvaluator) StarvationStreak() int {
	return e.streak
}

func (e *WinLossEvaluator) restoreStreak(streak int) {
	e.streak = streak
}

// Evaluate records whether the ship went hungry this turn and returns the
// verdict. Loss is checked before win.
func (e *WinLossEvaluator) Evaluate(ship *ledger.ResourceLedger, starved bool) Outcome {
	if starved {
		e.streak++
	} else {
		e.streak = 0
	}

	if e.streak >= e.starvationLimit {
		return OutcomeLost
	}
	if e.MeetsThreshold(ship) {
		return OutcomeWon
	}
	return OutcomeOngoing
}

// MeetsThreshold reports whether every restart minimum is held at once
func (e *WinLossEvaluator) MeetsThreshold(ship *ledger.ResourceLedger) bool {
	for res, minimum := range e.threshold {
		if ship.Get(res) < minimum {
			return false
		}
	}
	return true
}

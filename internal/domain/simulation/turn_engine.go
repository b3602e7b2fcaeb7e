package simulation

import (
	"github.com/andrescamacho/spacecolony-go/internal/domain/building"
	"github.com/andrescamacho/spacecolony-go/internal/domain/ledger"
	"github.com/andrescamacho/spacecolony-go/internal/domain/navigation"
	"github.com/andrescamacho/spacecolony-go/internal/domain/shared"
	"github.com/andrescamacho/spacecolony-go/internal/domain/system"
)

// TurnEngine advances simulated time. It is the only component that mutates
// ledgers while a turn is in progress.
type TurnEngine struct {
	graph     *system.NodeGraph
	ship      *navigation.Ship
	rules     Rules
	evaluator *WinLossEvaluator
	outcome   *OutcomeStateMachine
	turn      int
}

// NewTurnEngine creates an engine at turn 0
func NewTurnEngine(graph *system.NodeGraph, ship *navigation.Ship, rules Rules) *TurnEngine {
	return &TurnEngine{
		graph:     graph,
		ship:      ship,
		rules:     rules.clone(),
		evaluator: NewWinLossEvaluator(rules),
		outcome:   NewOutcomeStateMachine(),
	}
}

// Turn returns the number of turns advanced so far
func (e *TurnEngine) Turn() int {
	return e.turn
}

// Outcome returns the current game outcome
func (e *TurnEngine) Outcome() Outcome {
	return e.outcome.Status()
}

// StarvationStreak returns the consecutive hungry turns so far
func (e *TurnEngine) StarvationStreak() int {
	return e.evaluator.StarvationStreak()
}

func (e *TurnEngine) restore(turn int, outcome Outcome, endedAt, streak int) {
	e.turn = turn
	e.outcome.RecoverFromPersistence(outcome, endedAt)
	e.evaluator.restoreStreak(streak)
}

type turnOwner struct {
	id     string
	ledger *ledger.ResourceLedger
	slots  *building.Slots
}

// activeOwners returns the ship followed by every node with buildings, in
// node ID order
func (e *TurnEngine) activeOwners() []turnOwner {
	owners := []turnOwner{{id: navigation.ShipOwnerID, ledger: e.ship.Ledger(), slots: e.ship.Slots()}}
	for _, node := range e.graph.Nodes() {
		if node.HasBuildings() {
			owners = append(owners, turnOwner{id: node.ID(), ledger: node.Ledger(), slots: node.Slots()})
		}
	}
	return owners
}

// AdvanceTurn runs one indivisible turn:
//  1. every building ticks its effect counters and stages what fires
//  2. crew upkeep is staged on the ship
//  3. each owner's batch is committed atomically; a failing batch is
//     rejected whole and reported as a Shortfall
//  4. decaying buildings age and expired ones leave their slots
//  5. the evaluator returns the verdict
func (e *TurnEngine) AdvanceTurn() (*TurnReport, error) {
	if e.outcome.IsFinished() {
		return nil, shared.NewGameOverError(e.outcome.Status().String())
	}

	e.turn++
	report := newTurnReport(e.turn)
	owners := e.activeOwners()

	staged := make(map[string]ledger.Delta, len(owners))
	for _, owner := range owners {
		delta := make(ledger.Delta)
		owner.slots.Tick(delta)
		staged[owner.id] = delta
	}

	staged[navigation.ShipOwnerID].Stage(shared.ResourceFood, -e.rules.FoodPerCrew*e.ship.Crew())

	for _, owner := range owners {
		delta := staged[owner.id]
		if delta.IsZero() {
			continue
		}
		if missing := owner.ledger.Shortfalls(delta); len(missing) > 0 {
			report.Shortfalls = append(report.Shortfalls, Shortfall{
				Owner:   owner.id,
				Missing: missing,
				Staged:  delta.Clone(),
			})
			continue
		}
		overflow, err := owner.ledger.Commit(delta)
		if err != nil {
			return nil, err
		}
		report.Applied[owner.id] = delta.Clone()
		if !overflow.IsZero() {
			report.Overflow[owner.id] = overflow
		}
	}

	for _, owner := range owners {
		for _, id := range owner.slots.Age() {
			report.Expired = append(report.Expired, Expiry{Owner: owner.id, InstanceID: id})
		}
	}

	verdict := e.evaluator.Evaluate(e.ship.Ledger(), report.Starved())
	if err := e.outcome.Transition(verdict, e.turn); err != nil {
		return nil, err
	}
	report.Outcome = e.outcome.Status()
	report.StarvationStreak = e.evaluator.StarvationStreak()
	return report, nil
}

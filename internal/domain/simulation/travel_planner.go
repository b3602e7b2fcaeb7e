package simulation

import (
	"context"

	"github.com/andrescamacho/spacecolony-go/internal/domain/ledger"
	"github.com/andrescamacho/spacecolony-go/internal/domain/navigation"
	"github.com/andrescamacho/spacecolony-go/internal/domain/shared"
	"github.com/andrescamacho/spacecolony-go/internal/domain/system"
)

// TravelResult describes a completed (or cut short) journey
type TravelResult struct {
	From     string        `json:"from"`
	To       string        `json:"to"`
	Cost     ledger.Delta  `json:"cost"`
	TurnCost int           `json:"turn_cost"`
	Turns    []*TurnReport `json:"turns"`
	Arrived  bool          `json:"arrived"`
}

// Outcome returns the outcome after the last simulated turn
func (r *TravelResult) Outcome() Outcome {
	if len(r.Turns) == 0 {
		return OutcomeOngoing
	}
	return r.Turns[len(r.Turns)-1].Outcome
}

// TravelPlanner validates and executes jumps between nodes
type TravelPlanner struct {
	graph  *system.NodeGraph
	engine *TurnEngine
}

// NewTravelPlanner creates a planner that advances time through engine
func NewTravelPlanner(graph *system.NodeGraph, engine *TurnEngine) *TravelPlanner {
	return &TravelPlanner{graph: graph, engine: engine}
}

// Plan returns the edge the ship would take, without changing anything
func (p *TravelPlanner) Plan(ship *navigation.Ship, destination string) (system.Edge, error) {
	if !p.graph.HasNode(destination) {
		return system.Edge{}, shared.NewUnknownNodeError(destination)
	}
	edge, ok := p.graph.EdgeBetween(ship.Location(), destination)
	if !ok {
		return system.Edge{}, shared.NewNoRouteError(ship.Location(), destination)
	}
	if err := ship.Ledger().CanApply(edge.Cost.Negate()); err != nil {
		return system.Edge{}, err
	}
	return edge, nil
}

// Travel debits the edge cost from the ship, advances the engine once per
// turn of the edge and then moves the ship. A failed lookup or debit leaves
// position and ledger untouched. If the game ends before the last turn of the
// journey the remaining turns are skipped and the ship does not arrive.
//
// ctx is only consulted before departure. Once the cost is paid the journey
// runs to the end.
func (p *TravelPlanner) Travel(ctx context.Context, ship *navigation.Ship, destination string) (*TravelResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	edge, err := p.Plan(ship, destination)
	if err != nil {
		return nil, err
	}
	if err := ship.Ledger().Apply(edge.Cost.Negate()); err != nil {
		return nil, err
	}

	result := &TravelResult{
		From:     edge.From,
		To:       edge.To,
		Cost:     edge.Cost.Clone(),
		TurnCost: edge.TurnCost,
	}
	for i := 0; i < edge.TurnCost; i++ {
		report, err := p.engine.AdvanceTurn()
		if err != nil {
			return result, err
		}
		result.Turns = append(result.Turns, report)
		if report.Outcome.IsTerminal() && i < edge.TurnCost-1 {
			return result, nil
		}
	}

	if err := ship.MoveTo(edge.To); err != nil {
		return result, err
	}
	result.Arrived = true
	return result, nil
}

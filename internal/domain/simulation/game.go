package simulation

import (
	"context"
	"fmt"
	"strings"

	"github.com/andrescamacho/spacecolony-go/internal/domain/building"
	"github.com/andrescamacho/spacecolony-go/internal/domain/ledger"
	"github.com/andrescamacho/spacecolony-go/internal/domain/navigation"
	"github.com/andrescamacho/spacecolony-go/internal/domain/shared"
	"github.com/andrescamacho/spacecolony-go/internal/domain/system"
)

// Game is the aggregate root of one playthrough. Every command either
// completes in full or fails leaving ledgers, slots and position unchanged.
//
// Game is not safe for concurrent use.
type Game struct {
	catalog      *building.Catalog
	graph        *system.NodeGraph
	ship         *navigation.Ship
	rules        Rules
	engine       *TurnEngine
	planner      *TravelPlanner
	nextInstance int
	actions      []Action
}

// BuildResult is returned by a successful Build
type BuildResult struct {
	Owner        string       `json:"owner"`
	Instance     InstanceView `json:"instance"`
	Cost         ledger.Delta `json:"cost"`
	RocketsSpent int          `json:"rockets_spent"`
}

// TransferResult is returned by a successful Transfer
type TransferResult struct {
	NodeID       string            `json:"node_id"`
	Resource     shared.Resource   `json:"resource"`
	Direction    TransferDirection `json:"direction"`
	Requested    int               `json:"requested"`
	Moved        int               `json:"moved"`
	RocketsSpent int               `json:"rockets_spent"`
}

// NewGame assembles a game at turn 0 from a validated world
func NewGame(catalog *building.Catalog, graph *system.NodeGraph, ship *navigation.Ship, rules Rules) (*Game, error) {
	if catalog == nil || graph == nil || ship == nil {
		return nil, shared.NewConfigurationError("game needs a catalog, a graph and a ship")
	}
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	for _, id := range graph.NodeIDs() {
		if strings.EqualFold(id, navigation.ShipOwnerID) {
			return nil, shared.NewConfigurationError(fmt.Sprintf("node id %q is reserved for the ship", id))
		}
	}
	if !graph.HasNode(ship.Location()) {
		return nil, shared.NewConfigurationError(fmt.Sprintf("ship starts at unknown node %s", ship.Location()))
	}

	engine := NewTurnEngine(graph, ship, rules)
	return &Game{
		catalog: catalog,
		graph:   graph,
		ship:    ship,
		rules:   rules.clone(),
		engine:  engine,
		planner: NewTravelPlanner(graph, engine),
	}, nil
}

func (g *Game) Catalog() *building.Catalog {
	return g.catalog
}

func (g *Game) Graph() *system.NodeGraph {
	return g.graph
}

func (g *Game) Ship() *navigation.Ship {
	return g.ship
}

func (g *Game) Rules() Rules {
	return g.rules.clone()
}

func (g *Game) Turn() int {
	return g.engine.Turn()
}

func (g *Game) Outcome() Outcome {
	return g.engine.Outcome()
}

// Actions returns a copy of the action log
func (g *Game) Actions() []Action {
	return append([]Action(nil), g.actions...)
}

func (g *Game) ensureOngoing() error {
	if g.engine.Outcome().IsTerminal() {
		return shared.NewGameOverError(g.engine.Outcome().String())
	}
	return nil
}

func (g *Game) instanceID() string {
	return fmt.Sprintf("b-%d", g.nextInstance+1)
}

func (g *Game) record(action Action) {
	action.Seq = len(g.actions) + 1
	g.actions = append(g.actions, action)
}

// landingCost resolves a node for a node-side action and returns the rocket
// shuttles the action costs. Every node-side action needs the ship at the
// node; only planets charge for the landing.
func (g *Game) landingCost(nodeID string) (*system.Node, int, error) {
	node, err := g.graph.Node(nodeID)
	if err != nil {
		return nil, 0, err
	}
	if !g.ship.IsAt(nodeID) {
		return nil, 0, shared.NewShipNotPresentError(nodeID, g.ship.Location())
	}
	if node.Kind() != shared.HostPlanet {
		return node, 0, nil
	}
	return node, g.rules.RocketsPerLanding, nil
}

func (g *Game) checkRockets(n int) error {
	if n == 0 {
		return nil
	}
	return g.ship.Ledger().CanApply(ledger.Delta{shared.ResourceRocket: -n})
}

// Commands

// Build places a new building on the ship or on a node, paying the
// construction cost from that owner's ledger.
func (g *Game) Build(owner Owner, kind building.Kind) (*BuildResult, error) {
	if err := g.ensureOngoing(); err != nil {
		return nil, err
	}

	id := g.instanceID()
	turn := g.engine.Turn()
	var inst *building.Instance
	rockets := 0

	if owner.IsShip() {
		var err error
		if inst, err = g.ship.InstallBuilding(kind, g.catalog, id); err != nil {
			return nil, err
		}
	} else {
		var err error
		if _, rockets, err = g.landingCost(owner.NodeID()); err != nil {
			return nil, err
		}
		if err := g.checkRockets(rockets); err != nil {
			return nil, err
		}
		if inst, err = g.graph.InstallBuilding(owner.NodeID(), kind, g.catalog, id); err != nil {
			return nil, err
		}
		if err := g.ship.ConsumeRocket(rockets); err != nil {
			return nil, err
		}
	}

	g.nextInstance++
	g.record(Action{Turn: turn, Type: ActionBuild, Owner: owner.String(), Kind: string(kind), InstanceID: inst.ID()})

	def := g.catalog.MustDefinitionOf(kind)
	return &BuildResult{
		Owner:        owner.String(),
		Instance:     newInstanceView(inst),
		Cost:         def.Cost.Clone(),
		RocketsSpent: rockets,
	}, nil
}

// Demolish removes a building. Nothing is refunded.
func (g *Game) Demolish(owner Owner, instanceID string) error {
	if err := g.ensureOngoing(); err != nil {
		return err
	}

	turn := g.engine.Turn()
	if owner.IsShip() {
		if err := g.ship.RemoveBuilding(instanceID); err != nil {
			return err
		}
	} else {
		node, rockets, err := g.landingCost(owner.NodeID())
		if err != nil {
			return err
		}
		if err := g.checkRockets(rockets); err != nil {
			return err
		}
		if err := g.graph.RemoveBuilding(node.ID(), instanceID); err != nil {
			return err
		}
		if err := g.ship.ConsumeRocket(rockets); err != nil {
			return err
		}
	}

	g.record(Action{Turn: turn, Type: ActionDemolish, Owner: owner.String(), InstanceID: instanceID})
	return nil
}

// Travel jumps the ship to an adjacent node
func (g *Game) Travel(ctx context.Context, destination string) (*TravelResult, error) {
	if err := g.ensureOngoing(); err != nil {
		return nil, err
	}

	turn := g.engine.Turn()
	result, err := g.planner.Travel(ctx, g.ship, destination)
	if result == nil {
		return nil, err
	}
	g.record(Action{Turn: turn, Type: ActionTravel, Destination: destination})
	return result, err
}

// PassTurn advances one turn without doing anything else
func (g *Game) PassTurn() (*TurnReport, error) {
	if err := g.ensureOngoing(); err != nil {
		return nil, err
	}

	turn := g.engine.Turn()
	report, err := g.engine.AdvanceTurn()
	if err != nil {
		return nil, err
	}
	g.record(Action{Turn: turn, Type: ActionPassTurn})
	return report, nil
}

// Transfer moves resources between the ship and the node it is at. Surplus
// discarded by a stockpile cap on the receiving side goes back to the sender.
func (g *Game) Transfer(resource shared.Resource, amount int, direction TransferDirection) (*TransferResult, error) {
	if err := g.ensureOngoing(); err != nil {
		return nil, err
	}
	if !resource.IsValid() {
		return nil, shared.NewValidationError("resource", fmt.Sprintf("unknown resource: %s", resource))
	}
	if amount <= 0 {
		return nil, shared.NewValidationError("amount", "transfer amount must be positive")
	}
	if direction != TransferLoad && direction != TransferUnload {
		return nil, shared.NewValidationError("direction", fmt.Sprintf("invalid transfer direction: %s", direction))
	}

	node, rockets, err := g.landingCost(g.ship.Location())
	if err != nil {
		return nil, err
	}

	shipDelta := make(ledger.Delta)
	nodeDelta := make(ledger.Delta)
	sender := node.Ledger()
	if direction == TransferLoad {
		shipDelta.Stage(resource, amount)
		nodeDelta.Stage(resource, -amount)
	} else {
		shipDelta.Stage(resource, -amount)
		nodeDelta.Stage(resource, amount)
		sender = g.ship.Ledger()
	}
	shipDelta.Stage(shared.ResourceRocket, -rockets)

	if err := g.ship.Ledger().CanApply(shipDelta); err != nil {
		return nil, err
	}
	if err := node.Ledger().CanApply(nodeDelta); err != nil {
		return nil, err
	}

	turn := g.engine.Turn()
	shipOverflow, err := g.ship.Ledger().Commit(shipDelta)
	if err != nil {
		return nil, err
	}
	nodeOverflow, err := node.Ledger().Commit(nodeDelta)
	if err != nil {
		return nil, err
	}

	returned := shipOverflow[resource] + nodeOverflow[resource]
	if returned > 0 {
		if err := sender.Apply(ledger.Delta{resource: returned}); err != nil {
			return nil, err
		}
	}

	g.record(Action{Turn: turn, Type: ActionTransfer, Resource: resource, Amount: amount, Direction: direction})
	return &TransferResult{
		NodeID:       node.ID(),
		Resource:     resource,
		Direction:    direction,
		Requested:    amount,
		Moved:        amount - returned,
		RocketsSpent: rockets,
	}, nil
}

// Execute runs a logged action. Build actions must reproduce the logged
// instance ID, otherwise the replay has diverged.
func (g *Game) Execute(ctx context.Context, action Action) error {
	switch action.Type {
	case ActionBuild:
		result, err := g.Build(ParseOwner(action.Owner), building.Kind(action.Kind))
		if err != nil {
			return err
		}
		if action.InstanceID != "" && result.Instance.ID != action.InstanceID {
			return fmt.Errorf("replay diverged: built %s, log expects %s", result.Instance.ID, action.InstanceID)
		}
		return nil
	case ActionDemolish:
		return g.Demolish(ParseOwner(action.Owner), action.InstanceID)
	case ActionTravel:
		_, err := g.Travel(ctx, action.Destination)
		return err
	case ActionPassTurn:
		_, err := g.PassTurn()
		return err
	case ActionTransfer:
		_, err := g.Transfer(action.Resource, action.Amount, action.Direction)
		return err
	}
	return fmt.Errorf("unknown action type: %s", action.Type)
}

// Replay executes actions in order against g, which must be freshly built
// from the same initial world the log was recorded on.
func Replay(ctx context.Context, g *Game, actions []Action) error {
	for _, action := range actions {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := g.Execute(ctx, action); err != nil {
			return fmt.Errorf("replay action %d (%s): %w", action.Seq, action.Type, err)
		}
	}
	return nil
}

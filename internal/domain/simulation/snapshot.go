package simulation

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"lukechampine.com/blake3"

	"github.com/andrescamacho/spacecolony-go/internal/domain/building"
	"github.com/andrescamacho/spacecolony-go/internal/domain/ledger"
	"github.com/andrescamacho/spacecolony-go/internal/domain/navigation"
	"github.com/andrescamacho/spacecolony-go/internal/domain/shared"
	"github.com/andrescamacho/spacecolony-go/internal/domain/system"
)

// SnapshotVersion is bumped whenever the snapshot layout changes
const SnapshotVersion = 1

// Snapshot is the complete mutable state of a game. The building catalog is
// static data and is supplied again on Restore.
type Snapshot struct {
	Version          int         `json:"version"`
	Turn             int         `json:"turn"`
	Outcome          Outcome     `json:"outcome"`
	EndedAt          int         `json:"ended_at"`
	StarvationStreak int         `json:"starvation_streak"`
	NextInstance     int         `json:"next_instance"`
	Rules            Rules       `json:"rules"`
	Ship             ShipState   `json:"ship"`
	Nodes            []NodeState `json:"nodes"`
	Edges            []EdgeState `json:"edges"`
	Actions          []Action    `json:"actions"`
}

type LedgerState struct {
	Amounts map[shared.Resource]int `json:"amounts"`
	Caps    map[shared.Resource]int `json:"caps,omitempty"`
}

type InstanceState struct {
	ID            string `json:"id"`
	Kind          string `json:"kind"`
	Counters      []int  `json:"counters"`
	RemainingLife int    `json:"remaining_life,omitempty"`
}

type ShipState struct {
	Name      string          `json:"name"`
	Crew      int             `json:"crew"`
	Location  string          `json:"location"`
	Capacity  int             `json:"capacity"`
	Ledger    LedgerState     `json:"ledger"`
	Buildings []InstanceState `json:"buildings"`
}

type NodeState struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Kind      shared.HostKind `json:"kind"`
	Capacity  int             `json:"capacity"`
	Ledger    LedgerState     `json:"ledger"`
	Buildings []InstanceState `json:"buildings"`
}

type EdgeState struct {
	From     string       `json:"from"`
	To       string       `json:"to"`
	TurnCost int          `json:"turn_cost"`
	Cost     ledger.Delta `json:"cost,omitempty"`
}

func ledgerState(l *ledger.ResourceLedger) LedgerState {
	s := LedgerState{Amounts: l.Snapshot()}
	if caps := l.Caps(); len(caps) > 0 {
		s.Caps = caps
	}
	return s
}

func instanceStates(instances []*building.Instance) []InstanceState {
	out := make([]InstanceState, 0, len(instances))
	for _, inst := range instances {
		life, _ := inst.RemainingLife()
		out = append(out, InstanceState{
			ID:            inst.ID(),
			Kind:          string(inst.Kind()),
			Counters:      inst.Counters(),
			RemainingLife: life,
		})
	}
	return out
}

// Snapshot captures the full game state
func (g *Game) Snapshot() *Snapshot {
	snap := &Snapshot{
		Version:          SnapshotVersion,
		Turn:             g.engine.Turn(),
		Outcome:          g.engine.Outcome(),
		EndedAt:          g.engine.outcome.EndedAt(),
		StarvationStreak: g.engine.StarvationStreak(),
		NextInstance:     g.nextInstance,
		Rules:            g.rules.clone(),
		Ship: ShipState{
			Name:      g.ship.Name(),
			Crew:      g.ship.Crew(),
			Location:  g.ship.Location(),
			Capacity:  g.ship.Slots().Capacity(),
			Ledger:    ledgerState(g.ship.Ledger()),
			Buildings: instanceStates(g.ship.Buildings()),
		},
		Actions: g.Actions(),
	}

	for _, node := range g.graph.Nodes() {
		snap.Nodes = append(snap.Nodes, NodeState{
			ID:        node.ID(),
			Name:      node.Name(),
			Kind:      node.Kind(),
			Capacity:  node.Slots().Capacity(),
			Ledger:    ledgerState(node.Ledger()),
			Buildings: instanceStates(node.Buildings()),
		})
		for _, e := range g.graph.EdgesFrom(node.ID()) {
			snap.Edges = append(snap.Edges, EdgeState{From: e.From, To: e.To, TurnCost: e.TurnCost, Cost: e.Cost.Clone()})
		}
	}
	return snap
}

// Hash returns the hex BLAKE3-256 digest of the canonical JSON encoding.
// Two games in the same state always hash the same.
func (s *Snapshot) Hash() (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

func restoreInstances(catalog *building.Catalog, host shared.HostKind, states []InstanceState, attach func(*building.Instance) error) error {
	for _, st := range states {
		def, err := catalog.DefinitionOf(building.Kind(st.Kind))
		if err != nil {
			return err
		}
		inst, err := building.RestoreInstance(st.ID, def, host, st.Counters, st.RemainingLife)
		if err != nil {
			return err
		}
		if err := attach(inst); err != nil {
			return fmt.Errorf("instance %s: %w", st.ID, err)
		}
	}
	return nil
}

// Restore rebuilds a game from a snapshot. The round trip is exact:
// Restore(g.Snapshot(), catalog).Snapshot() equals g.Snapshot().
func Restore(snap *Snapshot, catalog *building.Catalog) (*Game, error) {
	if snap == nil {
		return nil, fmt.Errorf("snapshot cannot be nil")
	}
	if snap.Version != SnapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", snap.Version)
	}
	outcome, err := ParseOutcome(string(snap.Outcome))
	if err != nil {
		return nil, err
	}

	graph := system.NewNodeGraph()
	for _, ns := range snap.Nodes {
		l, err := ledger.NewCappedResourceLedger(ns.Ledger.Amounts, ns.Ledger.Caps)
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", ns.ID, err)
		}
		node, err := system.NewNode(ns.ID, ns.Name, ns.Kind, ns.Capacity, l)
		if err != nil {
			return nil, err
		}
		if err := restoreInstances(catalog, node.Kind(), ns.Buildings, node.Slots().Attach); err != nil {
			return nil, err
		}
		if err := graph.AddNode(node); err != nil {
			return nil, err
		}
	}
	for _, es := range snap.Edges {
		if err := graph.AddEdge(es.From, es.To, es.TurnCost, es.Cost); err != nil {
			return nil, err
		}
	}

	shipLedger, err := ledger.NewCappedResourceLedger(snap.Ship.Ledger.Amounts, snap.Ship.Ledger.Caps)
	if err != nil {
		return nil, fmt.Errorf("ship: %w", err)
	}
	ship, err := navigation.NewShip(snap.Ship.Name, snap.Ship.Crew, snap.Ship.Location, shipLedger, snap.Ship.Capacity)
	if err != nil {
		return nil, err
	}
	if err := restoreInstances(catalog, shared.HostShip, snap.Ship.Buildings, ship.AttachBuilding); err != nil {
		return nil, err
	}

	g, err := NewGame(catalog, graph, ship, snap.Rules)
	if err != nil {
		return nil, err
	}
	g.engine.restore(snap.Turn, outcome, snap.EndedAt, snap.StarvationStreak)
	g.nextInstance = snap.NextInstance
	g.actions = append([]Action(nil), snap.Actions...)
	return g, nil
}

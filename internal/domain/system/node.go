package system

import (
	"fmt"

	"github.com/andrescamacho/spacecolony-go/internal/domain/building"
	"github.com/andrescamacho/spacecolony-go/internal/domain/ledger"
	"github.com/andrescamacho/spacecolony-go/internal/domain/shared"
)

// Node is a location in the graph: a planet, an asteroid or anything else
// with construction slots and a stockpile.
//
// Invariants:
// - ID is unique and non-empty
// - Kind is PLANET, ASTEROID or OTHER
// - Installed buildings never exceed slot capacity
type Node struct {
	id     string
	name   string
	kind   shared.HostKind
	slots  *building.Slots
	ledger *ledger.ResourceLedger
}

// NewNode creates a node with an empty building list
func NewNode(id, name string, kind shared.HostKind, capacity int, stock *ledger.ResourceLedger) (*Node, error) {
	if id == "" {
		return nil, shared.NewConfigurationError("node id cannot be empty")
	}
	if !kind.IsNodeKind() {
		return nil, shared.NewConfigurationError(fmt.Sprintf("node %s: invalid kind %s", id, kind))
	}
	if stock == nil {
		return nil, shared.NewConfigurationError(fmt.Sprintf("node %s: ledger cannot be nil", id))
	}
	slots, err := building.NewSlots(id, kind, capacity)
	if err != nil {
		return nil, shared.NewConfigurationError(err.Error())
	}
	if name == "" {
		name = id
	}
	return &Node{id: id, name: name, kind: kind, slots: slots, ledger: stock}, nil
}

func (n *Node) ID() string {
	return n.id
}

func (n *Node) Name() string {
	return n.name
}

func (n *Node) Kind() shared.HostKind {
	return n.kind
}

func (n *Node) Ledger() *ledger.ResourceLedger {
	return n.ledger
}

func (n *Node) Slots() *building.Slots {
	return n.slots
}

// Buildings returns the installed instances in placement order
func (n *Node) Buildings() []*building.Instance {
	return n.slots.Instances()
}

// HasBuildings reports whether the node takes part in turn processing
func (n *Node) HasBuildings() bool {
	return n.slots.Used() > 0
}

package system

import (
	"fmt"
	"sort"

	"github.com/andrescamacho/spacecolony-go/internal/domain/building"
	"github.com/andrescamacho/spacecolony-go/internal/domain/ledger"
	"github.com/andrescamacho/spacecolony-go/internal/domain/shared"
)

// Edge is a one-way jump between two nodes
type Edge struct {
	From     string
	To       string
	TurnCost int
	Cost     ledger.Delta // positive amounts debited from the ship
}

// NodeGraph holds every node and the travel edges between them
type NodeGraph struct {
	nodes map[string]*Node
	edges map[string][]Edge
}

// NewNodeGraph creates an empty graph
func NewNodeGraph() *NodeGraph {
	return &NodeGraph{
		nodes: make(map[string]*Node),
		edges: make(map[string][]Edge),
	}
}

// AddNode registers a node. Duplicate IDs are a configuration error.
func (g *NodeGraph) AddNode(node *Node) error {
	if _, exists := g.nodes[node.ID()]; exists {
		return shared.NewConfigurationError(fmt.Sprintf("duplicate node id: %s", node.ID()))
	}
	g.nodes[node.ID()] = node
	return nil
}

// AddEdge adds a one-way edge. Turn cost must be at least 1 and resource
// costs cannot be negative.
func (g *NodeGraph) AddEdge(from, to string, turnCost int, cost ledger.Delta) error {
	if !g.HasNode(from) {
		return shared.NewConfigurationError(fmt.Sprintf("edge from unknown node %s", from))
	}
	if !g.HasNode(to) {
		return shared.NewConfigurationError(fmt.Sprintf("edge to unknown node %s", to))
	}
	if from == to {
		return shared.NewConfigurationError(fmt.Sprintf("self edge on %s", from))
	}
	if turnCost < 1 {
		return shared.NewConfigurationError(fmt.Sprintf("edge %s->%s: turn cost must be at least 1, got %d", from, to, turnCost))
	}
	if err := cost.Validate(); err != nil {
		return shared.NewConfigurationError(fmt.Sprintf("edge %s->%s: %v", from, to, err))
	}
	for r, amount := range cost {
		if amount < 0 {
			return shared.NewConfigurationError(fmt.Sprintf("edge %s->%s: cost of %s cannot be negative", from, to, r))
		}
	}
	if _, exists := g.EdgeBetween(from, to); exists {
		return shared.NewConfigurationError(fmt.Sprintf("duplicate edge %s->%s", from, to))
	}

	g.edges[from] = append(g.edges[from], Edge{From: from, To: to, TurnCost: turnCost, Cost: cost.Clone()})
	return nil
}

// AddBidirectionalEdge adds the same edge in both directions
func (g *NodeGraph) AddBidirectionalEdge(a, b string, turnCost int, cost ledger.Delta) error {
	if err := g.AddEdge(a, b, turnCost, cost); err != nil {
		return err
	}
	return g.AddEdge(b, a, turnCost, cost)
}

// Node retrieves a node by ID
func (g *NodeGraph) Node(id string) (*Node, error) {
	node, exists := g.nodes[id]
	if !exists {
		return nil, shared.NewUnknownNodeError(id)
	}
	return node, nil
}

// HasNode checks if a node exists in the graph
func (g *NodeGraph) HasNode(id string) bool {
	_, exists := g.nodes[id]
	return exists
}

// EdgesFrom returns the outgoing edges of a node in insertion order
func (g *NodeGraph) EdgesFrom(id string) []Edge {
	return append([]Edge(nil), g.edges[id]...)
}

// EdgeBetween finds the direct edge from -> to
func (g *NodeGraph) EdgeBetween(from, to string) (Edge, bool) {
	for _, edge := range g.edges[from] {
		if edge.To == to {
			return edge, true
		}
	}
	return Edge{}, false
}

// NodeIDs returns every node ID in sorted order
func (g *NodeGraph) NodeIDs() []string {
	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Nodes returns every node sorted by ID
func (g *NodeGraph) Nodes() []*Node {
	ids := g.NodeIDs()
	out := make([]*Node, 0, len(ids))
	for _, id := range ids {
		out = append(out, g.nodes[id])
	}
	return out
}

// NodeCount returns the number of nodes in the graph
func (g *NodeGraph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of one-way edges in the graph
func (g *NodeGraph) EdgeCount() int {
	count := 0
	for _, edges := range g.edges {
		count += len(edges)
	}
	return count
}

// InstallBuilding builds kind on a node, paying from the node's own stockpile.
// Fails with SlotFull, PlacementNotAllowed or InsufficientResource and leaves
// the node untouched on failure.
func (g *NodeGraph) InstallBuilding(nodeID string, kind building.Kind, catalog *building.Catalog, instanceID string) (*building.Instance, error) {
	node, err := g.Node(nodeID)
	if err != nil {
		return nil, err
	}
	return node.slots.Install(catalog, kind, instanceID, node.ledger)
}

// RemoveBuilding demolishes an instance on a node
func (g *NodeGraph) RemoveBuilding(nodeID, instanceID string) error {
	node, err := g.Node(nodeID)
	if err != nil {
		return err
	}
	_, err = node.slots.Remove(instanceID)
	return err
}

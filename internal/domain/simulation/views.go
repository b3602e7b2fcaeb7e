package simulation

import (
	"github.com/andrescamacho/spacecolony-go/internal/domain/building"
	"github.com/andrescamacho/spacecolony-go/internal/domain/ledger"
	"github.com/andrescamacho/spacecolony-go/internal/domain/shared"
	"github.com/andrescamacho/spacecolony-go/internal/domain/system"
)

// Read-only value copies for presentation layers. Mutating a view never
// affects the game.

type InstanceView struct {
	ID            string          `json:"id"`
	Kind          string          `json:"kind"`
	Host          shared.HostKind `json:"host"`
	Counters      []int           `json:"counters"`
	Decays        bool            `json:"decays"`
	RemainingLife int             `json:"remaining_life,omitempty"`
}

type ShipView struct {
	Name      string                  `json:"name"`
	Location  string                  `json:"location"`
	Crew      int                     `json:"crew"`
	Ledger    map[shared.Resource]int `json:"ledger"`
	Capacity  int                     `json:"capacity"`
	Used      int                     `json:"used"`
	Buildings []InstanceView          `json:"buildings"`
}

type EdgeView struct {
	To       string       `json:"to"`
	TurnCost int          `json:"turn_cost"`
	Cost     ledger.Delta `json:"cost"`
}

type NodeView struct {
	ID        string                  `json:"id"`
	Name      string                  `json:"name"`
	Kind      shared.HostKind         `json:"kind"`
	Ledger    map[shared.Resource]int `json:"ledger"`
	Caps      map[shared.Resource]int `json:"caps,omitempty"`
	Capacity  int                     `json:"capacity"`
	Used      int                     `json:"used"`
	Buildings []InstanceView          `json:"buildings"`
	Edges     []EdgeView              `json:"edges"`
	ShipHere  bool                    `json:"ship_here"`
}

type DefinitionView struct {
	Kind        string       `json:"kind"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Placement   string       `json:"placement"`
	Cost        ledger.Delta `json:"cost"`
	Effects     []string     `json:"effects"`
	Lifetime    int          `json:"lifetime,omitempty"`
}

type StatusView struct {
	Turn             int     `json:"turn"`
	Outcome          Outcome `json:"outcome"`
	EndedAt          int     `json:"ended_at,omitempty"`
	StarvationStreak int     `json:"starvation_streak"`
	ShipLocation     string  `json:"ship_location"`
	Actions          int     `json:"actions"`
}

func newInstanceView(inst *building.Instance) InstanceView {
	life, decays := inst.RemainingLife()
	v := InstanceView{
		ID:       inst.ID(),
		Kind:     string(inst.Kind()),
		Host:     inst.Host(),
		Counters: inst.Counters(),
		Decays:   decays,
	}
	if decays {
		v.RemainingLife = life
	}
	return v
}

func instanceViews(instances []*building.Instance) []InstanceView {
	out := make([]InstanceView, 0, len(instances))
	for _, inst := range instances {
		out = append(out, newInstanceView(inst))
	}
	return out
}

// Queries

func (g *Game) ShipView() ShipView {
	return ShipView{
		Name:      g.ship.Name(),
		Location:  g.ship.Location(),
		Crew:      g.ship.Crew(),
		Ledger:    g.ship.Ledger().Snapshot(),
		Capacity:  g.ship.Slots().Capacity(),
		Used:      g.ship.Slots().Used(),
		Buildings: instanceViews(g.ship.Buildings()),
	}
}

func (g *Game) nodeView(node *system.Node) NodeView {
	edges := g.graph.EdgesFrom(node.ID())
	ev := make([]EdgeView, 0, len(edges))
	for _, e := range edges {
		ev = append(ev, EdgeView{To: e.To, TurnCost: e.TurnCost, Cost: e.Cost.Clone()})
	}
	return NodeView{
		ID:        node.ID(),
		Name:      node.Name(),
		Kind:      node.Kind(),
		Ledger:    node.Ledger().Snapshot(),
		Caps:      node.Ledger().Caps(),
		Capacity:  node.Slots().Capacity(),
		Used:      node.Slots().Used(),
		Buildings: instanceViews(node.Buildings()),
		Edges:     ev,
		ShipHere:  g.ship.IsAt(node.ID()),
	}
}

// NodeView returns one node
func (g *Game) NodeView(id string) (NodeView, error) {
	node, err := g.graph.Node(id)
	if err != nil {
		return NodeView{}, err
	}
	return g.nodeView(node), nil
}

// NodeViews returns every node sorted by ID
func (g *Game) NodeViews() []NodeView {
	nodes := g.graph.Nodes()
	out := make([]NodeView, 0, len(nodes))
	for _, node := range nodes {
		out = append(out, g.nodeView(node))
	}
	return out
}

// CatalogView returns every building definition sorted by kind
func (g *Game) CatalogView() []DefinitionView {
	defs := g.catalog.Definitions()
	out := make([]DefinitionView, 0, len(defs))
	for _, def := range defs {
		effects := make([]string, 0, len(def.Effects))
		for _, e := range def.Effects {
			effects = append(effects, e.String())
		}
		for _, host := range []shared.HostKind{shared.HostPlanet, shared.HostAsteroid, shared.HostOther, shared.HostShip} {
			for _, e := range def.HostEffects[host] {
				effects = append(effects, e.String()+" on "+host.String())
			}
		}
		out = append(out, DefinitionView{
			Kind:        string(def.Kind),
			Name:        def.Name,
			Description: def.Description,
			Placement:   string(def.Placement),
			Cost:        def.Cost.Clone(),
			Effects:     effects,
			Lifetime:    def.Lifetime,
		})
	}
	return out
}

func (g *Game) Status() StatusView {
	return StatusView{
		Turn:             g.engine.Turn(),
		Outcome:          g.engine.Outcome(),
		EndedAt:          g.engine.outcome.EndedAt(),
		StarvationStreak: g.engine.StarvationStreak(),
		ShipLocation:     g.ship.Location(),
		Actions:          len(g.actions),
	}
}

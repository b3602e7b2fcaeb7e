package world

import (
	"fmt"
	"sort"

	"github.com/andrescamacho/spacecolony-go/internal/domain/building"
	"github.com/andrescamacho/spacecolony-go/internal/domain/ledger"
	"github.com/andrescamacho/spacecolony-go/internal/domain/navigation"
	"github.com/andrescamacho/spacecolony-go/internal/domain/shared"
	"github.com/andrescamacho/spacecolony-go/internal/domain/simulation"
	"github.com/andrescamacho/spacecolony-go/internal/domain/system"
)

const defaultCrew = 1

// DefaultShipStock is the ship's hold when the world omits it
func DefaultShipStock() map[shared.Resource]int {
	return map[shared.Resource]int{
		shared.ResourceFusion:   10,
		shared.ResourceFood:     20,
		shared.ResourceMaterial: 10,
		shared.ResourceRocket:   20,
	}
}

func configError(scope string, err error) error {
	if shared.IsConfigurationError(err) {
		return fmt.Errorf("%s: %w", scope, err)
	}
	return shared.NewConfigurationError(fmt.Sprintf("%s: %v", scope, err))
}

func amounts(raw map[string]int) (map[shared.Resource]int, error) {
	d, err := ledger.ParseDelta(raw)
	if err != nil {
		return nil, err
	}
	return map[shared.Resource]int(d), nil
}

func effects(defs []EffectDefinition) ([]building.Effect, error) {
	out := make([]building.Effect, 0, len(defs))
	for _, e := range defs {
		r, err := shared.ParseResource(e.Resource)
		if err != nil {
			return nil, err
		}
		period := e.Period
		if period == 0 {
			period = 1
		}
		out = append(out, building.Effect{Resource: r, Amount: e.Amount, Period: period})
	}
	return out, nil
}

func (b BuildingDefinition) toDomain() (*building.Definition, error) {
	cost, err := ledger.ParseDelta(b.Cost)
	if err != nil {
		return nil, err
	}
	placement, err := building.ParsePlacement(b.Placement)
	if err != nil {
		return nil, err
	}
	base, err := effects(b.Effects)
	if err != nil {
		return nil, err
	}
	def := &building.Definition{
		Kind:        building.Kind(b.Kind),
		Name:        b.Name,
		Description: b.Description,
		Cost:        cost,
		Effects:     base,
		Lifetime:    b.Lifetime,
		Placement:   placement,
	}
	if def.Name == "" {
		def.Name = b.Kind
	}
	if len(b.HostEffects) > 0 {
		def.HostEffects = make(map[shared.HostKind][]building.Effect, len(b.HostEffects))
		for rawHost, table := range b.HostEffects {
			host, err := shared.ParseHostKind(rawHost)
			if err != nil {
				return nil, err
			}
			hostEffects, err := effects(table)
			if err != nil {
				return nil, err
			}
			def.HostEffects[host] = hostEffects
		}
	}
	return def, nil
}

// Catalog builds the building catalog of the world
func (d *Definition) Catalog() (*building.Catalog, error) {
	defs := make([]*building.Definition, 0, len(d.Buildings))
	for _, b := range d.Buildings {
		def, err := b.toDomain()
		if err != nil {
			return nil, configError(fmt.Sprintf("building %s", b.Kind), err)
		}
		defs = append(defs, def)
	}
	catalog, err := building.NewCatalog(defs...)
	if err != nil {
		return nil, configError("catalog", err)
	}
	return catalog, nil
}

// RulesOrDefault overlays the world's rule overrides on the defaults
func (d *Definition) RulesOrDefault() (simulation.Rules, error) {
	rules := simulation.DefaultRules()
	if d.Rules.FoodPerCrew != nil {
		rules.FoodPerCrew = *d.Rules.FoodPerCrew
	}
	if d.Rules.StarvationLimit != nil {
		rules.StarvationLimit = *d.Rules.StarvationLimit
	}
	if d.Rules.RocketsPerLanding != nil {
		rules.RocketsPerLanding = *d.Rules.RocketsPerLanding
	}
	if len(d.Rules.RestartThreshold) > 0 {
		threshold, err := amounts(d.Rules.RestartThreshold)
		if err != nil {
			return simulation.Rules{}, configError("rules", err)
		}
		rules.RestartThreshold = threshold
	}
	if err := rules.Validate(); err != nil {
		return simulation.Rules{}, configError("rules", err)
	}
	return rules, nil
}

func (d *Definition) assemble() (*system.NodeGraph, *navigation.Ship, error) {
	graph := system.NewNodeGraph()
	for _, n := range d.Nodes {
		scope := fmt.Sprintf("node %s", n.ID)
		stock, err := amounts(n.Stock)
		if err != nil {
			return nil, nil, configError(scope, err)
		}
		caps, err := amounts(n.Caps)
		if err != nil {
			return nil, nil, configError(scope, err)
		}
		l, err := ledger.NewCappedResourceLedger(stock, caps)
		if err != nil {
			return nil, nil, configError(scope, err)
		}
		kind, err := shared.ParseHostKind(n.Kind)
		if err != nil {
			return nil, nil, configError(scope, err)
		}
		node, err := system.NewNode(n.ID, n.Name, kind, n.Capacity, l)
		if err != nil {
			return nil, nil, configError(scope, err)
		}
		if err := graph.AddNode(node); err != nil {
			return nil, nil, configError(scope, err)
		}
	}

	for _, e := range d.Edges {
		scope := fmt.Sprintf("edge %s->%s", e.From, e.To)
		cost, err := ledger.ParseDelta(e.Cost)
		if err != nil {
			return nil, nil, configError(scope, err)
		}
		if e.Bidirectional {
			err = graph.AddBidirectionalEdge(e.From, e.To, e.Turns, cost)
		} else {
			err = graph.AddEdge(e.From, e.To, e.Turns, cost)
		}
		if err != nil {
			return nil, nil, configError(scope, err)
		}
	}

	stock := DefaultShipStock()
	if d.Ship.Stock != nil {
		parsed, err := amounts(d.Ship.Stock)
		if err != nil {
			return nil, nil, configError("ship", err)
		}
		stock = parsed
	}
	caps, err := amounts(d.Ship.Caps)
	if err != nil {
		return nil, nil, configError("ship", err)
	}
	shipLedger, err := ledger.NewCappedResourceLedger(stock, caps)
	if err != nil {
		return nil, nil, configError("ship", err)
	}
	crew := defaultCrew
	if d.Ship.Crew != nil {
		crew = *d.Ship.Crew
	}
	if !graph.HasNode(d.Ship.Location) {
		return nil, nil, shared.NewConfigurationError(fmt.Sprintf("ship: start location %s is not a node", d.Ship.Location))
	}
	ship, err := navigation.NewShip(d.Ship.Name, crew, d.Ship.Location, shipLedger, d.Ship.Capacity)
	if err != nil {
		return nil, nil, configError("ship", err)
	}
	return graph, ship, nil
}

// NewGame builds a fresh game at turn 0. Every call returns an independent
// game, so the same definition seeds both new games and replays.
func (d *Definition) NewGame() (*simulation.Game, error) {
	catalog, err := d.Catalog()
	if err != nil {
		return nil, err
	}
	rules, err := d.RulesOrDefault()
	if err != nil {
		return nil, err
	}
	graph, ship, err := d.assemble()
	if err != nil {
		return nil, err
	}
	g, err := simulation.NewGame(catalog, graph, ship, rules)
	if err != nil {
		return nil, configError("world", err)
	}
	return g, nil
}

// BuildingKinds lists the catalog's kinds in sorted order
func (d *Definition) BuildingKinds() []string {
	kinds := make([]string, 0, len(d.Buildings))
	for _, b := range d.Buildings {
		kinds = append(kinds, b.Kind)
	}
	sort.Strings(kinds)
	return kinds
}

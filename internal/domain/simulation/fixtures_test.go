package simulation_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spacecolony-go/internal/domain/building"
	"github.com/andrescamacho/spacecolony-go/internal/domain/ledger"
	"github.com/andrescamacho/spacecolony-go/internal/domain/navigation"
	"github.com/andrescamacho/spacecolony-go/internal/domain/shared"
	"github.com/andrescamacho/spacecolony-go/internal/domain/simulation"
	"github.com/andrescamacho/spacecolony-go/internal/domain/system"
)

func testCatalog(t testing.TB) *building.Catalog {
	c, err := newTestCatalog()
	require.NoError(t, err)
	return c
}

func newTestCatalog() (*building.Catalog, error) {
	return building.NewCatalog(
		&building.Definition{
			Kind:      "bacteria_farm",
			Name:      "Bacteria Farm",
			Cost:      ledger.Delta{shared.ResourceMaterial: 1},
			Effects:   []building.Effect{{Resource: shared.ResourceFood, Amount: 3, Period: 1}},
			Lifetime:  3,
			Placement: building.PlacementAny,
		},
		&building.Definition{
			Kind: "atmosphere_harvester",
			Name: "Atmosphere Harvester",
			Cost: ledger.Delta{shared.ResourceMaterial: 4},
			Effects: []building.Effect{
				{Resource: shared.ResourceFusion, Amount: 8, Period: 3},
				{Resource: shared.ResourcePower, Amount: -4, Period: 1},
			},
			Placement: building.PlacementPlanetOnly,
		},
		&building.Definition{
			Kind:    "solar_array",
			Name:    "Solar Array",
			Cost:    ledger.Delta{shared.ResourceMaterial: 2},
			Effects: []building.Effect{{Resource: shared.ResourcePower, Amount: 2, Period: 1}},
			HostEffects: map[shared.HostKind][]building.Effect{
				shared.HostPlanet: {{Resource: shared.ResourcePower, Amount: 3, Period: 1}},
			},
			Placement: building.PlacementAny,
		},
		&building.Definition{
			Kind: "hydroponics_farm",
			Name: "Hydroponics Farm",
			Cost: ledger.Delta{shared.ResourceMaterial: 2},
			Effects: []building.Effect{
				{Resource: shared.ResourcePower, Amount: -2, Period: 1},
				{Resource: shared.ResourceFood, Amount: 2, Period: 1},
			},
			Placement: building.PlacementAny,
		},
	)
}

// testWorld describes a three node world:
//
//	alpha (OTHER, 2 slots) --2 turns, 1 fusion + 2 food--> beta (PLANET, 3 slots)
//	beta --1 turn, 1 fusion--> alpha
//	rock (ASTEROID, 0 slots), unreachable
type testWorld struct {
	shipStock  map[shared.Resource]int
	alphaStock map[shared.Resource]int
	alphaCaps  map[shared.Resource]int
	betaStock  map[shared.Resource]int
	crew       int
	start      string
	rules      simulation.Rules
}

func defaultWorld() testWorld {
	return testWorld{
		shipStock: map[shared.Resource]int{
			shared.ResourceFusion:   10,
			shared.ResourceFood:     20,
			shared.ResourceMaterial: 10,
			shared.ResourceRocket:   20,
		},
		alphaStock: map[shared.Resource]int{shared.ResourceMaterial: 10},
		betaStock:  map[shared.Resource]int{shared.ResourceMaterial: 20},
		crew:       1,
		start:      "alpha",
		rules:      simulation.DefaultRules(),
	}
}

func (w testWorld) parts(t testing.TB) (*system.NodeGraph, *navigation.Ship) {
	graph, ship, err := w.assemble()
	require.NoError(t, err)
	return graph, ship
}

func (w testWorld) assemble() (*system.NodeGraph, *navigation.Ship, error) {
	graph := system.NewNodeGraph()
	nodes := []struct {
		id       string
		kind     shared.HostKind
		capacity int
		stock    map[shared.Resource]int
		caps     map[shared.Resource]int
	}{
		{"alpha", shared.HostOther, 2, w.alphaStock, w.alphaCaps},
		{"beta", shared.HostPlanet, 3, w.betaStock, nil},
		{"rock", shared.HostAsteroid, 0, map[shared.Resource]int{shared.ResourceMaterial: 5}, nil},
	}
	for _, nd := range nodes {
		l, err := ledger.NewCappedResourceLedger(nd.stock, nd.caps)
		if err != nil {
			return nil, nil, err
		}
		n, err := system.NewNode(nd.id, "", nd.kind, nd.capacity, l)
		if err != nil {
			return nil, nil, err
		}
		if err := graph.AddNode(n); err != nil {
			return nil, nil, err
		}
	}
	if err := graph.AddEdge("alpha", "beta", 2, ledger.Delta{shared.ResourceFusion: 1, shared.ResourceFood: 2}); err != nil {
		return nil, nil, err
	}
	if err := graph.AddEdge("beta", "alpha", 1, ledger.Delta{shared.ResourceFusion: 1}); err != nil {
		return nil, nil, err
	}

	shipLedger, err := ledger.NewResourceLedger(w.shipStock)
	if err != nil {
		return nil, nil, err
	}
	ship, err := navigation.NewShip("Ark", w.crew, w.start, shipLedger, 2)
	if err != nil {
		return nil, nil, err
	}
	return graph, ship, nil
}

func (w testWorld) newGame() (*simulation.Game, error) {
	graph, ship, err := w.assemble()
	if err != nil {
		return nil, err
	}
	catalog, err := newTestCatalog()
	if err != nil {
		return nil, err
	}
	return simulation.NewGame(catalog, graph, ship, w.rules)
}

func (w testWorld) build(t testing.TB) *simulation.Game {
	g, err := w.newGame()
	require.NoError(t, err)
	return g
}

func nodeLedger(t testing.TB, g *simulation.Game, id string) map[shared.Resource]int {
	view, err := g.NodeView(id)
	require.NoError(t, err)
	return view.Ledger
}

func buildingKind(s string) building.Kind {
	return building.Kind(s)
}

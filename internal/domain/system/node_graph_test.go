package system_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spacecolony-go/internal/domain/building"
	"github.com/andrescamacho/spacecolony-go/internal/domain/ledger"
	"github.com/andrescamacho/spacecolony-go/internal/domain/shared"
	"github.com/andrescamacho/spacecolony-go/internal/domain/system"
)

func testCatalog(t *testing.T) *building.Catalog {
	c, err := building.NewCatalog(
		&building.Definition{
			Kind:      "bacteria_farm",
			Cost:      ledger.Delta{shared.ResourceMaterial: 1},
			Effects:   []building.Effect{{Resource: shared.ResourceFood, Amount: 3, Period: 1}},
			Lifetime:  3,
			Placement: building.PlacementAny,
		},
		&building.Definition{
			Kind: "atmosphere_harvester",
			Cost: ledger.Delta{shared.ResourceMaterial: 4},
			Effects: []building.Effect{
				{Resource: shared.ResourceFusion, Amount: 8, Period: 3},
				{Resource: shared.ResourcePower, Amount: -4, Period: 1},
			},
			Placement: building.PlacementPlanetOnly,
		},
	)
	require.NoError(t, err)
	return c
}

func newNode(t *testing.T, id string, kind shared.HostKind, capacity int, stock map[shared.Resource]int) *system.Node {
	l, err := ledger.NewResourceLedger(stock)
	require.NoError(t, err)
	n, err := system.NewNode(id, "", kind, capacity, l)
	require.NoError(t, err)
	return n
}

func newGraph(t *testing.T) *system.NodeGraph {
	g := system.NewNodeGraph()
	require.NoError(t, g.AddNode(newNode(t, "earth", shared.HostPlanet, 2, map[shared.Resource]int{shared.ResourceMaterial: 10})))
	require.NoError(t, g.AddNode(newNode(t, "ceres", shared.HostAsteroid, 0, map[shared.Resource]int{shared.ResourceMaterial: 5})))
	require.NoError(t, g.AddNode(newNode(t, "belt", shared.HostAsteroid, 3, map[shared.Resource]int{shared.ResourceMaterial: 10})))
	return g
}

func TestNewNode_Validation(t *testing.T) {
	l, err := ledger.NewResourceLedger(nil)
	require.NoError(t, err)

	_, err = system.NewNode("", "x", shared.HostPlanet, 1, l)
	assert.True(t, shared.IsConfigurationError(err))

	_, err = system.NewNode("mars", "", shared.HostShip, 1, l)
	assert.True(t, shared.IsConfigurationError(err))

	_, err = system.NewNode("mars", "", shared.HostPlanet, -1, l)
	assert.True(t, shared.IsConfigurationError(err))

	n, err := system.NewNode("mars", "", shared.HostPlanet, 1, l)
	require.NoError(t, err)
	assert.Equal(t, "mars", n.Name())
	assert.False(t, n.HasBuildings())
}

func TestNodeGraph_AddEdgeValidation(t *testing.T) {
	g := newGraph(t)

	tests := []struct {
		name     string
		from, to string
		turns    int
		cost     ledger.Delta
	}{
		{"unknown source", "pluto", "earth", 1, nil},
		{"unknown destination", "earth", "pluto", 1, nil},
		{"self edge", "earth", "earth", 1, nil},
		{"zero turn cost", "earth", "ceres", 0, nil},
		{"negative cost", "earth", "ceres", 1, ledger.Delta{shared.ResourceFood: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := g.AddEdge(tt.from, tt.to, tt.turns, tt.cost)
			assert.True(t, shared.IsConfigurationError(err))
		})
	}

	require.NoError(t, g.AddEdge("earth", "ceres", 2, ledger.Delta{shared.ResourceFusion: 1}))
	assert.True(t, shared.IsConfigurationError(g.AddEdge("earth", "ceres", 1, nil)), "duplicate edge")
}

func TestNodeGraph_EdgesAreDirected(t *testing.T) {
	g := newGraph(t)
	require.NoError(t, g.AddEdge("earth", "ceres", 2, ledger.Delta{shared.ResourceFusion: 1, shared.ResourceFood: 2}))
	require.NoError(t, g.AddBidirectionalEdge("earth", "belt", 1, nil))

	edge, ok := g.EdgeBetween("earth", "ceres")
	require.True(t, ok)
	assert.Equal(t, 2, edge.TurnCost)
	assert.Equal(t, 2, edge.Cost[shared.ResourceFood])

	_, ok = g.EdgeBetween("ceres", "earth")
	assert.False(t, ok)

	assert.Len(t, g.EdgesFrom("earth"), 2)
	assert.Len(t, g.EdgesFrom("belt"), 1)
	assert.Empty(t, g.EdgesFrom("ceres"))
	assert.Equal(t, 3, g.EdgeCount())
	assert.Equal(t, []string{"belt", "ceres", "earth"}, g.NodeIDs())
}

func TestNodeGraph_UnknownNode(t *testing.T) {
	g := newGraph(t)

	_, err := g.Node("pluto")
	var unknown *shared.UnknownNodeError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "pluto", unknown.NodeID)
}

func TestNodeGraph_InstallOnFullNodeIsSlotFull(t *testing.T) {
	// Arrange
	g := newGraph(t)
	c := testCatalog(t)
	ceres, err := g.Node("ceres")
	require.NoError(t, err)
	before := ceres.Ledger().Snapshot()

	// Act
	_, err = g.InstallBuilding("ceres", "bacteria_farm", c, "b-1")

	// Assert
	var full *shared.SlotFullError
	require.True(t, errors.As(err, &full))
	assert.Equal(t, before, ceres.Ledger().Snapshot())
	assert.Empty(t, ceres.Buildings())
}

func TestNodeGraph_HarvesterOnAsteroidIsPlacementNotAllowed(t *testing.T) {
	// Arrange
	g := newGraph(t)
	c := testCatalog(t)
	belt, err := g.Node("belt")
	require.NoError(t, err)

	// Act
	_, err = g.InstallBuilding("belt", "atmosphere_harvester", c, "b-1")

	// Assert
	var placement *shared.PlacementNotAllowedError
	require.True(t, errors.As(err, &placement))
	assert.Equal(t, shared.HostAsteroid, placement.Host)
	assert.Equal(t, 10, belt.Ledger().Get(shared.ResourceMaterial))
	assert.Equal(t, 0, belt.Slots().Used())
}

func TestNodeGraph_InstallAndRemove(t *testing.T) {
	g := newGraph(t)
	c := testCatalog(t)

	inst, err := g.InstallBuilding("earth", "atmosphere_harvester", c, "b-1")
	require.NoError(t, err)
	assert.Equal(t, shared.HostPlanet, inst.Host())

	earth, err := g.Node("earth")
	require.NoError(t, err)
	assert.Equal(t, 6, earth.Ledger().Get(shared.ResourceMaterial))
	assert.True(t, earth.HasBuildings())

	require.NoError(t, g.RemoveBuilding("earth", "b-1"))
	assert.False(t, earth.HasBuildings())
	assert.Equal(t, 6, earth.Ledger().Get(shared.ResourceMaterial), "demolition is not refunded")

	err = g.RemoveBuilding("earth", "b-1")
	var notFound *shared.BuildingNotFoundError
	assert.True(t, errors.As(err, &notFound))
}

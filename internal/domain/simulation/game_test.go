package simulation_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spacecolony-go/internal/domain/ledger"
	"github.com/andrescamacho/spacecolony-go/internal/domain/shared"
	"github.com/andrescamacho/spacecolony-go/internal/domain/simulation"
	"github.com/andrescamacho/spacecolony-go/internal/domain/system"
)

func TestGame_TravelChargesEdgeCostThenRunsTurns(t *testing.T) {
	// Arrange
	g := defaultWorld().build(t)

	// Act
	result, err := g.Travel(context.Background(), "beta")

	// Assert
	require.NoError(t, err)
	assert.True(t, result.Arrived)
	assert.Len(t, result.Turns, 2)
	assert.Equal(t, "beta", g.ShipView().Location)
	assert.Equal(t, 9, g.ShipView().Ledger[shared.ResourceFusion])
	assert.Equal(t, 20-2-8, g.ShipView().Ledger[shared.ResourceFood])
	assert.Equal(t, 2, g.Turn())
	require.Len(t, g.Actions(), 1)
	assert.Equal(t, simulation.ActionTravel, g.Actions()[0].Type)
}

func TestGame_TravelFailuresLeaveStateUntouched(t *testing.T) {
	tests := []struct {
		name   string
		world  func() testWorld
		dest   string
		assert func(t *testing.T, err error)
	}{
		{
			name:  "no edge",
			world: defaultWorld,
			dest:  "rock",
			assert: func(t *testing.T, err error) {
				var noRoute *shared.NoRouteError
				require.True(t, errors.As(err, &noRoute))
				assert.Equal(t, "alpha", noRoute.From)
				assert.Equal(t, "rock", noRoute.To)
			},
		},
		{
			name:  "unknown node",
			world: defaultWorld,
			dest:  "pluto",
			assert: func(t *testing.T, err error) {
				var unknown *shared.UnknownNodeError
				require.True(t, errors.As(err, &unknown))
			},
		},
		{
			name: "not enough fuel",
			world: func() testWorld {
				w := defaultWorld()
				w.shipStock[shared.ResourceFusion] = 0
				return w
			},
			dest: "beta",
			assert: func(t *testing.T, err error) {
				var insufficient *shared.InsufficientResourceError
				require.True(t, errors.As(err, &insufficient))
				assert.Equal(t, shared.ResourceFusion, insufficient.Resource)
				assert.Equal(t, 1, insufficient.Shortfall)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := tt.world().build(t)
			before := g.Snapshot()

			_, err := g.Travel(context.Background(), tt.dest)

			tt.assert(t, err)
			assert.Equal(t, before, g.Snapshot())
		})
	}
}

func TestGame_TravelRespectsCancelledContext(t *testing.T) {
	g := defaultWorld().build(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Travel(ctx, "beta")

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, "alpha", g.ShipView().Location)
	assert.Equal(t, 0, g.Turn())
}

func TestGame_TravelStopsWhenCrewStarvesEnRoute(t *testing.T) {
	w := defaultWorld()
	w.shipStock[shared.ResourceFood] = 5
	g := w.build(t)

	result, err := g.Travel(context.Background(), "beta")

	require.NoError(t, err)
	assert.False(t, result.Arrived)
	assert.Len(t, result.Turns, 1)
	assert.Equal(t, simulation.OutcomeLost, result.Outcome())
	assert.Equal(t, "alpha", g.ShipView().Location)
	assert.Equal(t, 3, g.ShipView().Ledger[shared.ResourceFood])
	assert.Equal(t, 1, g.Turn())
}

func TestGame_BuildOnFullNodeIsSlotFull(t *testing.T) {
	// Arrange
	w := defaultWorld()
	w.start = "rock"
	g := w.build(t)
	before := nodeLedger(t, g, "rock")

	// Act
	_, err := g.Build(simulation.NodeOwner("rock"), "bacteria_farm")

	// Assert
	var full *shared.SlotFullError
	require.True(t, errors.As(err, &full))
	assert.Equal(t, before, nodeLedger(t, g, "rock"))
	assert.Empty(t, g.Actions())

	result, err := g.Build(simulation.ShipOwner, "bacteria_farm")
	require.NoError(t, err)
	assert.Equal(t, "b-1", result.Instance.ID, "failed builds do not consume instance ids")
}

func TestGame_BuildPlacementNotAllowed(t *testing.T) {
	g := defaultWorld().build(t)

	_, err := g.Build(simulation.NodeOwner("alpha"), "atmosphere_harvester")
	var placement *shared.PlacementNotAllowedError
	require.True(t, errors.As(err, &placement))
	assert.Equal(t, shared.HostOther, placement.Host)

	_, err = g.Build(simulation.ShipOwner, "atmosphere_harvester")
	require.True(t, errors.As(err, &placement))
	assert.Equal(t, 10, g.ShipView().Ledger[shared.ResourceMaterial])
}

func TestGame_BuildUnknownKindIsConfigurationError(t *testing.T) {
	g := defaultWorld().build(t)

	_, err := g.Build(simulation.ShipOwner, "warp_gate")

	assert.True(t, shared.IsConfigurationError(err))
}

func TestGame_PlanetSideBuildNeedsShipAndRocket(t *testing.T) {
	// Arrange
	g := defaultWorld().build(t)

	// Act: remote build
	_, err := g.Build(simulation.NodeOwner("beta"), "solar_array")

	// Assert
	var absent *shared.ShipNotPresentError
	require.True(t, errors.As(err, &absent))
	assert.Equal(t, 20, nodeLedger(t, g, "beta")[shared.ResourceMaterial])

	// Act: land and build
	_, err = g.Travel(context.Background(), "beta")
	require.NoError(t, err)
	result, err := g.Build(simulation.NodeOwner("beta"), "solar_array")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, result.RocketsSpent)
	assert.Equal(t, 19, g.ShipView().Ledger[shared.ResourceRocket])
	assert.Equal(t, 18, nodeLedger(t, g, "beta")[shared.ResourceMaterial])
	assert.Equal(t, shared.HostPlanet, result.Instance.Host)
}

func TestGame_PlanetSideBuildWithoutRocketsChangesNothing(t *testing.T) {
	w := defaultWorld()
	w.start = "beta"
	w.shipStock[shared.ResourceRocket] = 0
	g := w.build(t)

	_, err := g.Build(simulation.NodeOwner("beta"), "solar_array")

	var insufficient *shared.InsufficientResourceError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, shared.ResourceRocket, insufficient.Resource)
	assert.Equal(t, 20, nodeLedger(t, g, "beta")[shared.ResourceMaterial])
	nodeView, err := g.NodeView("beta")
	require.NoError(t, err)
	assert.Equal(t, 0, nodeView.Used)
}

func TestGame_DemolishFreesOneSlot(t *testing.T) {
	g := defaultWorld().build(t)
	first, err := g.Build(simulation.NodeOwner("alpha"), "solar_array")
	require.NoError(t, err)
	_, err = g.Build(simulation.NodeOwner("alpha"), "hydroponics_farm")
	require.NoError(t, err)

	require.NoError(t, g.Demolish(simulation.NodeOwner("alpha"), first.Instance.ID))

	view, err := g.NodeView("alpha")
	require.NoError(t, err)
	assert.Equal(t, 1, view.Used)
	assert.Equal(t, "b-2", view.Buildings[0].ID)

	err = g.Demolish(simulation.NodeOwner("alpha"), first.Instance.ID)
	var notFound *shared.BuildingNotFoundError
	assert.True(t, errors.As(err, &notFound))
	assert.Len(t, g.Actions(), 3)
}

func TestGame_NodeActionsNeedTheShipPresent(t *testing.T) {
	// Arrange
	g := defaultWorld().build(t)
	before := nodeLedger(t, g, "rock")

	// Act
	_, err := g.Build(simulation.NodeOwner("rock"), "bacteria_farm")

	// Assert
	var notPresent *shared.ShipNotPresentError
	require.True(t, errors.As(err, &notPresent))
	assert.Equal(t, "rock", notPresent.NodeID)
	assert.Equal(t, "alpha", notPresent.ShipAtID)
	assert.Equal(t, before, nodeLedger(t, g, "rock"))
	assert.Equal(t, 20, g.ShipView().Ledger[shared.ResourceRocket], "no landing is charged off-planet")
	assert.Empty(t, g.Actions())
}

func TestGame_DemolishAwayFromTheNodeIsRejected(t *testing.T) {
	// Arrange
	g := defaultWorld().build(t)
	built, err := g.Build(simulation.NodeOwner("alpha"), "solar_array")
	require.NoError(t, err)
	_, err = g.Travel(context.Background(), "beta")
	require.NoError(t, err)

	// Act
	err = g.Demolish(simulation.NodeOwner("alpha"), built.Instance.ID)

	// Assert
	var notPresent *shared.ShipNotPresentError
	require.True(t, errors.As(err, &notPresent))
	view, err := g.NodeView("alpha")
	require.NoError(t, err)
	require.Len(t, view.Buildings, 1)
	assert.Equal(t, built.Instance.ID, view.Buildings[0].ID)
	assert.Len(t, g.Actions(), 2)
}

func TestNewGame_RejectsNodeShadowingTheShip(t *testing.T) {
	graph, ship := defaultWorld().parts(t)
	l, err := ledger.NewResourceLedger(nil)
	require.NoError(t, err)
	n, err := system.NewNode("Ship", "", shared.HostOther, 1, l)
	require.NoError(t, err)
	require.NoError(t, graph.AddNode(n))

	_, err = simulation.NewGame(testCatalog(t), graph, ship, simulation.DefaultRules())

	assert.True(t, shared.IsConfigurationError(err))
}

func TestGame_TransferReturnsSurplusAboveCap(t *testing.T) {
	// Arrange
	w := defaultWorld()
	w.alphaCaps = map[shared.Resource]int{shared.ResourceMaterial: 12}
	g := w.build(t)

	// Act
	result, err := g.Transfer(shared.ResourceMaterial, 5, simulation.TransferUnload)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 2, result.Moved)
	assert.Equal(t, 0, result.RocketsSpent)
	assert.Equal(t, 8, g.ShipView().Ledger[shared.ResourceMaterial])
	assert.Equal(t, 12, nodeLedger(t, g, "alpha")[shared.ResourceMaterial])
}

func TestGame_TransferValidation(t *testing.T) {
	g := defaultWorld().build(t)
	before := g.Snapshot()

	_, err := g.Transfer(shared.ResourceMaterial, 20, simulation.TransferLoad)
	var insufficient *shared.InsufficientResourceError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, 10, insufficient.Shortfall)

	_, err = g.Transfer(shared.ResourceMaterial, 0, simulation.TransferLoad)
	var invalid *shared.ValidationError
	require.True(t, errors.As(err, &invalid))

	_, err = g.Transfer(shared.ResourceMaterial, 1, "SIDEWAYS")
	require.True(t, errors.As(err, &invalid))

	assert.Equal(t, before, g.Snapshot())
}

func TestGame_TransferOnPlanetCostsRocket(t *testing.T) {
	w := defaultWorld()
	w.start = "beta"
	g := w.build(t)

	result, err := g.Transfer(shared.ResourceMaterial, 5, simulation.TransferLoad)

	require.NoError(t, err)
	assert.Equal(t, 1, result.RocketsSpent)
	assert.Equal(t, 15, g.ShipView().Ledger[shared.ResourceMaterial])
	assert.Equal(t, 19, g.ShipView().Ledger[shared.ResourceRocket])
	assert.Equal(t, 15, nodeLedger(t, g, "beta")[shared.ResourceMaterial])
}

func TestGame_CommandsAfterGameOverFail(t *testing.T) {
	w := defaultWorld()
	w.shipStock[shared.ResourceFood] = 0
	g := w.build(t)
	_, err := g.PassTurn()
	require.NoError(t, err)
	require.Equal(t, simulation.OutcomeLost, g.Outcome())

	var over *shared.GameOverError
	_, err = g.PassTurn()
	assert.True(t, errors.As(err, &over))
	_, err = g.Build(simulation.ShipOwner, "bacteria_farm")
	assert.True(t, errors.As(err, &over))
	_, err = g.Travel(context.Background(), "beta")
	assert.True(t, errors.As(err, &over))
	assert.True(t, errors.As(g.Demolish(simulation.ShipOwner, "b-1"), &over))
	_, err = g.Transfer(shared.ResourceFood, 1, simulation.TransferLoad)
	assert.True(t, errors.As(err, &over))
	assert.Equal(t, 1, g.Turn())
}

func TestNewGame_RejectsInvalidWorlds(t *testing.T) {
	w := defaultWorld()
	w.start = "pluto"
	graph, ship := w.parts(t)
	_, err := simulation.NewGame(testCatalog(t), graph, ship, w.rules)
	assert.True(t, shared.IsConfigurationError(err))

	w = defaultWorld()
	w.rules.StarvationLimit = 0
	graph, ship = w.parts(t)
	_, err = simulation.NewGame(testCatalog(t), graph, ship, w.rules)
	assert.True(t, shared.IsConfigurationError(err))
}

func playSomeTurns(t *testing.T, g *simulation.Game) {
	t.Helper()
	_, err := g.Build(simulation.ShipOwner, "bacteria_farm")
	require.NoError(t, err)
	_, err = g.Build(simulation.NodeOwner("alpha"), "solar_array")
	require.NoError(t, err)
	_, err = g.PassTurn()
	require.NoError(t, err)
	_, err = g.Travel(context.Background(), "beta")
	require.NoError(t, err)
	_, err = g.Build(simulation.NodeOwner("beta"), "atmosphere_harvester")
	require.NoError(t, err)
	_, err = g.Build(simulation.NodeOwner("beta"), "solar_array")
	require.NoError(t, err)
	_, err = g.Transfer(shared.ResourceMaterial, 3, simulation.TransferLoad)
	require.NoError(t, err)
	_, err = g.PassTurn()
	require.NoError(t, err)
}

func TestSnapshot_RoundTripIsExact(t *testing.T) {
	// Arrange
	g := defaultWorld().build(t)
	playSomeTurns(t, g)
	snap := g.Snapshot()
	hash, err := snap.Hash()
	require.NoError(t, err)

	// Act
	data, err := json.Marshal(snap)
	require.NoError(t, err)
	var decoded simulation.Snapshot
	require.NoError(t, json.Unmarshal(data, &decoded))
	restored, err := simulation.Restore(&decoded, testCatalog(t))
	require.NoError(t, err)

	// Assert
	restoredHash, err := restored.Snapshot().Hash()
	require.NoError(t, err)
	assert.Equal(t, hash, restoredHash)
	assert.Equal(t, g.Status(), restored.Status())

	for _, game := range []*simulation.Game{g, restored} {
		_, err := game.PassTurn()
		require.NoError(t, err)
	}
	assert.Equal(t, g.Snapshot(), restored.Snapshot(), "restored game evolves identically")
}

func TestSnapshot_HashChangesWithState(t *testing.T) {
	g := defaultWorld().build(t)
	before, err := g.Snapshot().Hash()
	require.NoError(t, err)

	_, err = g.PassTurn()
	require.NoError(t, err)
	after, err := g.Snapshot().Hash()
	require.NoError(t, err)

	assert.NotEqual(t, before, after)
	assert.Len(t, after, 64)
}

func TestRestore_RejectsBadSnapshots(t *testing.T) {
	g := defaultWorld().build(t)
	playSomeTurns(t, g)

	wrongVersion := g.Snapshot()
	wrongVersion.Version = 99
	_, err := simulation.Restore(wrongVersion, testCatalog(t))
	assert.Error(t, err)

	badCounter := g.Snapshot()
	badCounter.Nodes[0].Buildings[0].Counters = []int{7}
	_, err = simulation.Restore(badCounter, testCatalog(t))
	assert.Error(t, err)

	_, err = simulation.Restore(nil, testCatalog(t))
	assert.Error(t, err)
}

func TestReplay_ReproducesTheGame(t *testing.T) {
	// Arrange
	original := defaultWorld().build(t)
	playSomeTurns(t, original)
	want, err := original.Snapshot().Hash()
	require.NoError(t, err)

	// Act
	replayed := defaultWorld().build(t)
	err = simulation.Replay(context.Background(), replayed, original.Actions())

	// Assert
	require.NoError(t, err)
	got, err := replayed.Snapshot().Hash()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestReplay_DetectsDivergence(t *testing.T) {
	original := defaultWorld().build(t)
	playSomeTurns(t, original)
	actions := original.Actions()
	actions[0].InstanceID = "b-42"

	err := simulation.Replay(context.Background(), defaultWorld().build(t), actions)

	assert.Error(t, err)
}

func TestParseOwnerAndDirection(t *testing.T) {
	assert.True(t, simulation.ParseOwner("ship").IsShip())
	assert.True(t, simulation.ParseOwner("").IsShip())
	assert.Equal(t, "beta", simulation.ParseOwner("beta").NodeID())

	d, err := simulation.ParseTransferDirection("unload")
	require.NoError(t, err)
	assert.Equal(t, simulation.TransferUnload, d)
	_, err = simulation.ParseTransferDirection("sideways")
	assert.Error(t, err)
}

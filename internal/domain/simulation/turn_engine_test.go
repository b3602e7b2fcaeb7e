package simulation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spacecolony-go/internal/domain/ledger"
	"github.com/andrescamacho/spacecolony-go/internal/domain/navigation"
	"github.com/andrescamacho/spacecolony-go/internal/domain/shared"
	"github.com/andrescamacho/spacecolony-go/internal/domain/simulation"
)

func TestTurnEngine_PeriodicEffectPaysExactlyAcrossSplitAdvances(t *testing.T) {
	// Arrange
	w := defaultWorld()
	w.start = "beta"
	w.crew = 0
	g := w.build(t)
	for _, kind := range []string{"solar_array", "solar_array", "atmosphere_harvester"} {
		_, err := g.Build(simulation.NodeOwner("beta"), buildingKind(kind))
		require.NoError(t, err)
	}

	// Act
	for i := 0; i < 4; i++ {
		report, err := g.PassTurn()
		require.NoError(t, err)
		require.Empty(t, report.Shortfalls)
	}
	for i := 0; i < 5; i++ {
		_, err := g.PassTurn()
		require.NoError(t, err)
	}

	// Assert
	beta := nodeLedger(t, g, "beta")
	assert.Equal(t, 8*(9/3), beta[shared.ResourceFusion])
	assert.Equal(t, 9*(3+3-4), beta[shared.ResourcePower])
	assert.Equal(t, 12, beta[shared.ResourceMaterial])
	assert.Equal(t, 9, g.Turn())
}

func TestTurnEngine_PowerIsNettedBeforeTheCheck(t *testing.T) {
	g := defaultWorld().build(t)
	_, err := g.Build(simulation.NodeOwner("alpha"), "hydroponics_farm")
	require.NoError(t, err)
	_, err = g.Build(simulation.NodeOwner("alpha"), "solar_array")
	require.NoError(t, err)

	report, err := g.PassTurn()

	require.NoError(t, err)
	assert.Empty(t, report.Shortfalls)
	assert.Equal(t, ledger.Delta{shared.ResourceFood: 2}, report.Applied["alpha"])
	assert.Equal(t, 2, nodeLedger(t, g, "alpha")[shared.ResourceFood])
	assert.Equal(t, 0, nodeLedger(t, g, "alpha")[shared.ResourcePower])
}

func TestTurnEngine_ShortfallIsIsolatedPerOwner(t *testing.T) {
	// Arrange
	g := defaultWorld().build(t)
	_, err := g.Build(simulation.NodeOwner("alpha"), "hydroponics_farm")
	require.NoError(t, err)
	before := nodeLedger(t, g, "alpha")

	// Act
	report, err := g.PassTurn()

	// Assert
	require.NoError(t, err)
	require.Len(t, report.Shortfalls, 1)
	shortfall := report.Shortfalls[0]
	assert.Equal(t, "alpha", shortfall.Owner)
	assert.Equal(t, []shared.Resource{shared.ResourcePower}, shortfall.Resources())
	assert.Equal(t, 2, shortfall.Missing[shared.ResourcePower])
	assert.Equal(t, before, nodeLedger(t, g, "alpha"), "rejected batch leaves the owner at pre-turn values")

	assert.Equal(t, 16, g.ShipView().Ledger[shared.ResourceFood], "ship upkeep still commits")
	assert.False(t, report.Starved())
	assert.Equal(t, simulation.OutcomeOngoing, report.Outcome)
}

func TestTurnEngine_DecayExpiresBuildingAfterItsLastPayout(t *testing.T) {
	g := defaultWorld().build(t)
	_, err := g.Build(simulation.ShipOwner, "bacteria_farm")
	require.NoError(t, err)

	var reports []*simulation.TurnReport
	for i := 0; i < 4; i++ {
		report, err := g.PassTurn()
		require.NoError(t, err)
		reports = append(reports, report)
	}

	assert.Empty(t, reports[0].Expired)
	assert.Empty(t, reports[1].Expired)
	assert.Equal(t, []simulation.Expiry{{Owner: navigation.ShipOwnerID, InstanceID: "b-1"}}, reports[2].Expired)
	assert.Equal(t, 20+3*(3-4)-4, g.ShipView().Ledger[shared.ResourceFood])
	assert.Equal(t, 0, g.ShipView().Used)
}

func TestTurnEngine_StarvationAtZeroFoodIsLost(t *testing.T) {
	// Arrange
	w := defaultWorld()
	w.shipStock[shared.ResourceFood] = 0
	g := w.build(t)

	// Act
	report, err := g.PassTurn()

	// Assert
	require.NoError(t, err)
	shortfall, ok := report.ShortfallFor(navigation.ShipOwnerID)
	require.True(t, ok)
	assert.True(t, shortfall.Has(shared.ResourceFood))
	assert.Equal(t, 4, shortfall.Missing[shared.ResourceFood])
	assert.Equal(t, 0, g.ShipView().Ledger[shared.ResourceFood])
	assert.Equal(t, simulation.OutcomeLost, report.Outcome)
	assert.Equal(t, 1, g.Status().EndedAt)
}

func TestTurnEngine_StarvationStreakResetsWhenCrewEats(t *testing.T) {
	w := defaultWorld()
	w.shipStock[shared.ResourceFood] = 0
	w.alphaStock[shared.ResourceFood] = 8
	w.rules.StarvationLimit = 2
	g := w.build(t)

	report, err := g.PassTurn()
	require.NoError(t, err)
	assert.Equal(t, simulation.OutcomeOngoing, report.Outcome)
	assert.Equal(t, 1, report.StarvationStreak)

	_, err = g.Transfer(shared.ResourceFood, 4, simulation.TransferLoad)
	require.NoError(t, err)
	report, err = g.PassTurn()
	require.NoError(t, err)
	assert.Equal(t, 0, report.StarvationStreak)

	report, err = g.PassTurn()
	require.NoError(t, err)
	assert.Equal(t, simulation.OutcomeOngoing, report.Outcome)

	report, err = g.PassTurn()
	require.NoError(t, err)
	assert.Equal(t, simulation.OutcomeLost, report.Outcome)
	assert.Equal(t, 2, report.StarvationStreak)
}

func TestWinLossEvaluator_LossIsCheckedBeforeWin(t *testing.T) {
	w := defaultWorld()
	w.shipStock[shared.ResourceFood] = 0
	w.rules.RestartThreshold = map[shared.Resource]int{shared.ResourceFusion: 1}
	g := w.build(t)

	report, err := g.PassTurn()

	require.NoError(t, err)
	assert.Equal(t, simulation.OutcomeLost, report.Outcome)
}

func TestWinLossEvaluator_WinsWhenThresholdIsMet(t *testing.T) {
	w := defaultWorld()
	w.rules.RestartThreshold = map[shared.Resource]int{shared.ResourceFusion: 10, shared.ResourceFood: 16}
	g := w.build(t)

	report, err := g.PassTurn()

	require.NoError(t, err)
	assert.Equal(t, simulation.OutcomeWon, report.Outcome)
	assert.True(t, g.Outcome().IsTerminal())
}

func TestOutcomeStateMachine_TerminalStatesNeverChange(t *testing.T) {
	sm := simulation.NewOutcomeStateMachine()
	require.NoError(t, sm.Transition(simulation.OutcomeOngoing, 1))
	require.NoError(t, sm.Win(2))

	assert.Error(t, sm.Lose(3))
	assert.Error(t, sm.Win(3))
	assert.Equal(t, simulation.OutcomeWon, sm.Status())
	assert.Equal(t, 2, sm.EndedAt())

	_, err := simulation.ParseOutcome("PAUSED")
	assert.Error(t, err)
}

func TestRules_Validate(t *testing.T) {
	require.NoError(t, simulation.DefaultRules().Validate())

	tests := []struct {
		name   string
		mutate func(r *simulation.Rules)
	}{
		{"negative food", func(r *simulation.Rules) { r.FoodPerCrew = -1 }},
		{"zero starvation limit", func(r *simulation.Rules) { r.StarvationLimit = 0 }},
		{"negative landing cost", func(r *simulation.Rules) { r.RocketsPerLanding = -1 }},
		{"empty threshold", func(r *simulation.Rules) { r.RestartThreshold = nil }},
		{"unknown resource", func(r *simulation.Rules) { r.RestartThreshold["SPICE"] = 3 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := simulation.DefaultRules()
			tt.mutate(&r)
			assert.True(t, shared.IsConfigurationError(r.Validate()))
		})
	}
}

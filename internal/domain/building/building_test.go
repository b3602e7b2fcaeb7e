package building_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spacecolony-go/internal/domain/building"
	"github.com/andrescamacho/spacecolony-go/internal/domain/ledger"
	"github.com/andrescamacho/spacecolony-go/internal/domain/shared"
)

func bacteriaFarm() *building.Definition {
	return &building.Definition{
		Kind:      "bacteria_farm",
		Name:      "Bacteria Farm",
		Cost:      ledger.Delta{shared.ResourceMaterial: 1},
		Effects:   []building.Effect{{Resource: shared.ResourceFood, Amount: 3, Period: 1}},
		Lifetime:  3,
		Placement: building.PlacementAny,
	}
}

func atmosphereHarvester() *building.Definition {
	return &building.Definition{
		Kind: "atmosphere_harvester",
		Name: "Atmosphere Harvester",
		Cost: ledger.Delta{shared.ResourceMaterial: 4},
		Effects: []building.Effect{
			{Resource: shared.ResourceFusion, Amount: 8, Period: 3},
			{Resource: shared.ResourcePower, Amount: -4, Period: 1},
		},
		Placement: building.PlacementPlanetOnly,
	}
}

func solarArray() *building.Definition {
	return &building.Definition{
		Kind:    "solar_array",
		Name:    "Solar Array",
		Cost:    ledger.Delta{shared.ResourceMaterial: 2},
		Effects: []building.Effect{{Resource: shared.ResourcePower, Amount: 2, Period: 1}},
		HostEffects: map[shared.HostKind][]building.Effect{
			shared.HostPlanet: {{Resource: shared.ResourcePower, Amount: 3, Period: 1}},
		},
		Placement: building.PlacementAny,
	}
}

func newCatalog(t *testing.T) *building.Catalog {
	c, err := building.NewCatalog(bacteriaFarm(), atmosphereHarvester(), solarArray())
	require.NoError(t, err)
	return c
}

func TestCatalog_DefinitionOfUnknownKindIsConfigurationError(t *testing.T) {
	c := newCatalog(t)

	_, err := c.DefinitionOf("warp_gate")

	var unknown *shared.UnknownBuildingKindError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "warp_gate", unknown.Kind)
	assert.True(t, shared.IsConfigurationError(err))
	assert.Panics(t, func() { c.MustDefinitionOf("warp_gate") })
}

func TestCatalog_DefinitionsCannotBeChangedFromOutside(t *testing.T) {
	// Arrange
	source := solarArray()
	c, err := building.NewCatalog(source)
	require.NoError(t, err)

	// Act
	source.Cost[shared.ResourceMaterial] = 99
	def, err := c.DefinitionOf("solar_array")
	require.NoError(t, err)
	def.Cost[shared.ResourceMaterial] = 50
	def.Effects[0].Amount = 100
	def.HostEffects[shared.HostPlanet][0].Amount = 100
	c.Definitions()[0].Effects[0].Period = 7

	// Assert
	fresh, err := c.DefinitionOf("solar_array")
	require.NoError(t, err)
	assert.Equal(t, solarArray(), fresh)
}

func TestCatalog_RejectsBadDefinitions(t *testing.T) {
	dup := bacteriaFarm()
	_, err := building.NewCatalog(bacteriaFarm(), dup)
	assert.True(t, shared.IsConfigurationError(err))

	zeroPeriod := bacteriaFarm()
	zeroPeriod.Effects[0].Period = 0
	_, err = building.NewCatalog(zeroPeriod)
	assert.Error(t, err)

	badPlacement := bacteriaFarm()
	badPlacement.Placement = "ORBIT_ONLY"
	_, err = building.NewCatalog(badPlacement)
	assert.Error(t, err)

	forbiddenTable := atmosphereHarvester()
	forbiddenTable.HostEffects = map[shared.HostKind][]building.Effect{
		shared.HostShip: {{Resource: shared.ResourceFusion, Amount: 1, Period: 1}},
	}
	_, err = building.NewCatalog(forbiddenTable)
	assert.Error(t, err)
}

func TestCatalog_CanPlace(t *testing.T) {
	c := newCatalog(t)

	tests := []struct {
		kind building.Kind
		host shared.HostKind
		want bool
	}{
		{"atmosphere_harvester", shared.HostPlanet, true},
		{"atmosphere_harvester", shared.HostAsteroid, false},
		{"atmosphere_harvester", shared.HostShip, false},
		{"bacteria_farm", shared.HostShip, true},
		{"bacteria_farm", shared.HostOther, true},
	}
	for _, tt := range tests {
		got, err := c.CanPlace(tt.kind, tt.host)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s on %s", tt.kind, tt.host)
	}

	assert.Equal(t, []building.Kind{"atmosphere_harvester", "bacteria_farm", "solar_array"}, c.Kinds())
}

func TestDefinition_EffectsForPicksHostTable(t *testing.T) {
	def := solarArray()

	assert.Equal(t, 3, def.EffectsFor(shared.HostPlanet)[0].Amount)
	assert.Equal(t, 2, def.EffectsFor(shared.HostShip)[0].Amount)
	assert.Equal(t, 2, def.EffectsFor(shared.HostAsteroid)[0].Amount)
}

func TestInstance_PeriodicEffectPaysWholeAmounts(t *testing.T) {
	inst := building.NewInstance("b-1", atmosphereHarvester(), shared.HostPlanet)

	var fusionByTurn []int
	for turn := 1; turn <= 9; turn++ {
		staged := ledger.Delta{}
		inst.Tick(staged)
		fusionByTurn = append(fusionByTurn, staged[shared.ResourceFusion])
		assert.Equal(t, -4, staged[shared.ResourcePower], "power drain fires every turn")
	}

	assert.Equal(t, []int{0, 0, 8, 0, 0, 8, 0, 0, 8}, fusionByTurn)
	assert.Equal(t, []int{0, 0}, inst.Counters())
}

func TestInstance_DecayExpiresAfterLifetime(t *testing.T) {
	inst := building.NewInstance("b-1", bacteriaFarm(), shared.HostOther)

	assert.False(t, inst.Age())
	assert.False(t, inst.Age())
	assert.True(t, inst.Age())

	permanent := building.NewInstance("b-2", solarArray(), shared.HostOther)
	for i := 0; i < 100; i++ {
		require.False(t, permanent.Age())
	}
	_, decays := permanent.RemainingLife()
	assert.False(t, decays)
}

func TestRestoreInstance_ValidatesCounters(t *testing.T) {
	def := atmosphereHarvester()

	inst, err := building.RestoreInstance("b-7", def, shared.HostPlanet, []int{2, 0}, 0)
	require.NoError(t, err)
	staged := ledger.Delta{}
	inst.Tick(staged)
	assert.Equal(t, 8, staged[shared.ResourceFusion])

	_, err = building.RestoreInstance("b-7", def, shared.HostPlanet, []int{3, 0}, 0)
	assert.Error(t, err)
	_, err = building.RestoreInstance("b-7", def, shared.HostPlanet, []int{0}, 0)
	assert.Error(t, err)
	_, err = building.RestoreInstance("b-8", bacteriaFarm(), shared.HostShip, []int{0}, 4)
	assert.Error(t, err)
}

func TestSlots_InstallIsAllOrNothing(t *testing.T) {
	c := newCatalog(t)
	wallet, err := ledger.NewResourceLedger(map[shared.Resource]int{shared.ResourceMaterial: 3})
	require.NoError(t, err)
	slots, err := building.NewSlots("asteroid-7", shared.HostAsteroid, 1)
	require.NoError(t, err)

	// placement
	_, err = slots.Install(c, "atmosphere_harvester", "b-1", wallet)
	var placement *shared.PlacementNotAllowedError
	require.True(t, errors.As(err, &placement))
	assert.Equal(t, 0, slots.Used())
	assert.Equal(t, 3, wallet.Get(shared.ResourceMaterial))

	// cost
	poor, err := ledger.NewResourceLedger(nil)
	require.NoError(t, err)
	_, err = slots.Install(c, "bacteria_farm", "b-1", poor)
	var insufficient *shared.InsufficientResourceError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, 0, slots.Used())

	// success then capacity
	inst, err := slots.Install(c, "bacteria_farm", "b-1", wallet)
	require.NoError(t, err)
	assert.Equal(t, "b-1", inst.ID())
	assert.Equal(t, 2, wallet.Get(shared.ResourceMaterial))

	_, err = slots.Install(c, "bacteria_farm", "b-2", wallet)
	var full *shared.SlotFullError
	require.True(t, errors.As(err, &full))
	assert.Equal(t, 1, slots.Used())
	assert.Equal(t, 2, wallet.Get(shared.ResourceMaterial))
}

func TestSlots_RemoveAndAgeFreeExactlyOneSlot(t *testing.T) {
	// Arrange
	c := newCatalog(t)
	wallet, err := ledger.NewResourceLedger(map[shared.Resource]int{shared.ResourceMaterial: 10})
	require.NoError(t, err)
	slots, err := building.NewSlots("ceres", shared.HostPlanet, 3)
	require.NoError(t, err)

	farm, err := slots.Install(c, "bacteria_farm", "b-1", wallet)
	require.NoError(t, err)
	harvester, err := slots.Install(c, "atmosphere_harvester", "b-2", wallet)
	require.NoError(t, err)
	_, err = slots.Install(c, "solar_array", "b-3", wallet)
	require.NoError(t, err)

	slots.Tick(ledger.Delta{})
	require.Equal(t, []int{1, 0}, harvester.Counters(), "fusion is one turn into its period")

	// Act & Assert: demolition
	removed, err := slots.Remove("b-3")
	require.NoError(t, err)
	assert.Equal(t, "b-3", removed.ID())
	assert.Equal(t, 1, slots.Free())
	assert.Equal(t, []int{1, 0}, harvester.Counters())

	_, err = slots.Remove("b-3")
	var notFound *shared.BuildingNotFoundError
	assert.True(t, errors.As(err, &notFound))

	// Act & Assert: decay
	assert.Empty(t, slots.Age())
	assert.Empty(t, slots.Age())
	assert.Equal(t, []string{farm.ID()}, slots.Age())
	assert.Equal(t, 2, slots.Free())
	assert.Equal(t, []*building.Instance{harvester}, slots.Instances())
	assert.Equal(t, []int{1, 0}, harvester.Counters())

	staged := ledger.Delta{}
	slots.Tick(staged)
	slots.Tick(staged)
	assert.Equal(t, []int{0, 0}, harvester.Counters())
	assert.Equal(t, 8, staged[shared.ResourceFusion], "payout stays on the original schedule")
}

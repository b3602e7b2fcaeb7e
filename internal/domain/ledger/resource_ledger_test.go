package ledger_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spacecolony-go/internal/domain/ledger"
	"github.com/andrescamacho/spacecolony-go/internal/domain/shared"
)

func newShipLedger(t *testing.T) *ledger.ResourceLedger {
	l, err := ledger.NewResourceLedger(map[shared.Resource]int{
		shared.ResourceFusion:   10,
		shared.ResourceFood:     20,
		shared.ResourceMaterial: 10,
		shared.ResourceRocket:   20,
	})
	require.NoError(t, err)
	return l
}

func TestResourceLedger_ApplyCommitsEveryResource(t *testing.T) {
	l := newShipLedger(t)

	err := l.Apply(ledger.Delta{
		shared.ResourceFusion: -1,
		shared.ResourceFood:   -2,
		shared.ResourcePower:  3,
	})

	require.NoError(t, err)
	assert.Equal(t, 9, l.Get(shared.ResourceFusion))
	assert.Equal(t, 18, l.Get(shared.ResourceFood))
	assert.Equal(t, 3, l.Get(shared.ResourcePower))
	assert.Equal(t, 10, l.Get(shared.ResourceMaterial))
}

func TestResourceLedger_ApplyIsAtomic(t *testing.T) {
	l := newShipLedger(t)
	before := l.Snapshot()

	err := l.Apply(ledger.Delta{
		shared.ResourceFusion: -5,
		shared.ResourceFood:   -25,
	})

	var insufficient *shared.InsufficientResourceError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, shared.ResourceFood, insufficient.Resource)
	assert.Equal(t, 5, insufficient.Shortfall)
	assert.Equal(t, before, l.Snapshot(), "a rejected delta must not change any resource")
}

func TestResourceLedger_ShortfallReportsFirstResourceInCanonicalOrder(t *testing.T) {
	l := newShipLedger(t)

	err := l.Apply(ledger.Delta{
		shared.ResourcePower:  -1,
		shared.ResourceFusion: -11,
	})

	var insufficient *shared.InsufficientResourceError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, shared.ResourceFusion, insufficient.Resource)
	assert.Equal(t, 1, insufficient.Shortfall)
}

func TestResourceLedger_NetsProductionAndConsumptionBeforeCheck(t *testing.T) {
	l := newShipLedger(t)

	// 0 power on hand: +3 and -2 in the same delta must net to +1.
	err := l.Apply(ledger.Delta{shared.ResourcePower: 3 - 2})

	require.NoError(t, err)
	assert.Equal(t, 1, l.Get(shared.ResourcePower))
}

func TestResourceLedger_DrainToZero(t *testing.T) {
	l := newShipLedger(t)

	require.NoError(t, l.Apply(ledger.Delta{shared.ResourceFood: -20}))
	assert.Equal(t, 0, l.Get(shared.ResourceFood))

	err := l.Apply(ledger.Delta{shared.ResourceFood: -4})
	require.Error(t, err)
	assert.Equal(t, 0, l.Get(shared.ResourceFood))
}

func TestResourceLedger_RejectsInvalidConstruction(t *testing.T) {
	_, err := ledger.NewResourceLedger(map[shared.Resource]int{shared.ResourceFood: -1})
	assert.Error(t, err)

	_, err = ledger.NewResourceLedger(map[shared.Resource]int{shared.Resource("GOLD"): 1})
	assert.Error(t, err)

	_, err = ledger.NewCappedResourceLedger(
		map[shared.Resource]int{shared.ResourceFood: 150},
		map[shared.Resource]int{shared.ResourceFood: 100},
	)
	assert.Error(t, err)
}

func TestResourceLedger_CommitClampsToCap(t *testing.T) {
	l, err := ledger.NewCappedResourceLedger(
		map[shared.Resource]int{shared.ResourceMaterial: 95},
		map[shared.Resource]int{shared.ResourceMaterial: 100},
	)
	require.NoError(t, err)

	overflow, err := l.Commit(ledger.Delta{shared.ResourceMaterial: 8})

	require.NoError(t, err)
	assert.Equal(t, 100, l.Get(shared.ResourceMaterial))
	assert.Equal(t, 3, overflow[shared.ResourceMaterial])
}

func TestResourceLedger_UnknownResourceInDelta(t *testing.T) {
	l := newShipLedger(t)

	err := l.Apply(ledger.Delta{shared.Resource("GOLD"): 1})

	assert.Error(t, err)
	assert.Equal(t, 0, l.Get(shared.Resource("GOLD")))
}

func TestDelta_AddNegateAndString(t *testing.T) {
	cost := ledger.Delta{shared.ResourceFusion: 1, shared.ResourceFood: 2}

	sum := cost.Negate().Add(ledger.Delta{shared.ResourceFood: 2})

	assert.Equal(t, ledger.Delta{shared.ResourceFusion: -1}, sum)
	assert.Equal(t, "{FUSION:+1, FOOD:+2}", cost.String())
	assert.False(t, cost.IsZero())
	assert.True(t, ledger.Delta{}.IsZero())
}

func TestParseDelta_ResolvesFuelAlias(t *testing.T) {
	d, err := ledger.ParseDelta(map[string]int{"fuel": 1, "Food": 2})

	require.NoError(t, err)
	assert.Equal(t, ledger.Delta{shared.ResourceFusion: 1, shared.ResourceFood: 2}, d)

	_, err = ledger.ParseDelta(map[string]int{"credits": 5})
	assert.Error(t, err)
}

func TestResourceLedger_ShortfallsListsEveryShortResource(t *testing.T) {
	l := newShipLedger(t)

	missing := l.Shortfalls(ledger.Delta{
		shared.ResourceFood:   -24,
		shared.ResourcePower:  -2,
		shared.ResourceFusion: 5,
	})

	assert.Equal(t, ledger.Delta{shared.ResourceFood: 4, shared.ResourcePower: 2}, missing)
	assert.Empty(t, l.Shortfalls(ledger.Delta{shared.ResourceFood: -20}))
}

// Package colonytest wires a GameStore over an in-memory database for tests
package colonytest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spacecolony-go/internal/adapters/persistence"
	"github.com/andrescamacho/spacecolony-go/internal/application/colony"
	"github.com/andrescamacho/spacecolony-go/internal/domain/shared"
	"github.com/andrescamacho/spacecolony-go/internal/infrastructure/database"
)

// FamineWorld starts the crew with an empty larder, so the first turn loses
const FamineWorld = `
name: Famine
ship:
  name: Ark
  location: home
  capacity: 1
  stock: {MATERIAL: 1}
nodes:
  - {id: home, kind: OTHER, capacity: 1}
buildings:
  - kind: bacteria_farm
    cost: {MATERIAL: 1}
    lifetime: 3
    placement: ANY
    effects:
      - {resource: FOOD, amount: 3}
`

// NewStore returns a GameStore backed by a fresh in-memory SQLite database
func NewStore(t *testing.T) *colony.GameStore {
	t.Helper()
	db, err := database.NewTestConnection()
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	clock := shared.NewMockClock(time.Date(2031, 4, 2, 12, 0, 0, 0, time.UTC))
	return colony.NewGameStore(persistence.NewGormSaveRepository(db, clock))
}

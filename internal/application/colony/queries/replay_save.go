package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/spacecolony-go/internal/application/colony"
	"github.com/andrescamacho/spacecolony-go/internal/application/common"
	"github.com/andrescamacho/spacecolony-go/internal/application/mediator"
	"github.com/andrescamacho/spacecolony-go/internal/domain/simulation"
	"github.com/andrescamacho/spacecolony-go/internal/infrastructure/world"
)

// ReplaySaveQuery rebuilds a save from its world and action log and checks
// that the result matches the stored state
type ReplaySaveQuery struct {
	SaveID simulation.SaveID
}

// ReplaySaveResponse reports the verified replay
type ReplaySaveResponse struct {
	SaveID  simulation.SaveID
	Actions int
	Turn    int
	Hash    string
}

// ReplaySaveHandler handles the ReplaySave query
type ReplaySaveHandler struct {
	store *colony.GameStore
}

// NewReplaySaveHandler creates a new ReplaySaveHandler
func NewReplaySaveHandler(store *colony.GameStore) *ReplaySaveHandler {
	return &ReplaySaveHandler{store: store}
}

// Handle executes the ReplaySave query
func (h *ReplaySaveHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ReplaySaveQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ReplaySaveQuery")
	}

	record, err := h.store.Repository().Load(ctx, query.SaveID)
	if err != nil {
		return nil, err
	}
	def, err := world.Parse(record.World)
	if err != nil {
		return nil, fmt.Errorf("save %s: stored world: %w", query.SaveID, err)
	}
	game, err := def.NewGame()
	if err != nil {
		return nil, err
	}

	actions := record.Snapshot.Actions
	if err := simulation.Replay(ctx, game, actions); err != nil {
		return nil, fmt.Errorf("replay of save %s failed: %w", query.SaveID, err)
	}

	actual, err := game.Snapshot().Hash()
	if err != nil {
		return nil, err
	}
	if actual != record.Hash {
		common.LoggerFromContext(ctx).Log("ERROR", "Replay diverged", map[string]interface{}{
			"save_id":  query.SaveID.String(),
			"expected": record.Hash,
			"actual":   actual,
		})
		return nil, &simulation.ErrReplayDiverged{Expected: record.Hash, Actual: actual}
	}

	common.LoggerFromContext(ctx).Log("INFO", "Replay verified", map[string]interface{}{
		"save_id": query.SaveID.String(),
		"actions": len(actions),
		"hash":    actual,
	})
	return &ReplaySaveResponse{
		SaveID:  query.SaveID,
		Actions: len(actions),
		Turn:    game.Turn(),
		Hash:    actual,
	}, nil
}

package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/spacecolony-go/internal/adapters/metrics"
	"github.com/andrescamacho/spacecolony-go/internal/application/colony"
	"github.com/andrescamacho/spacecolony-go/internal/application/common"
	"github.com/andrescamacho/spacecolony-go/internal/application/mediator"
	"github.com/andrescamacho/spacecolony-go/internal/domain/building"
	"github.com/andrescamacho/spacecolony-go/internal/domain/simulation"
)

// BuildCommand installs a building on the ship or a node
type BuildCommand struct {
	SaveID simulation.SaveID
	Owner  string // "ship" or a node ID
	Kind   string
}

// BuildHandler handles the Build command
type BuildHandler struct {
	store *colony.GameStore
}

// NewBuildHandler creates a new BuildHandler
func NewBuildHandler(store *colony.GameStore) *BuildHandler {
	return &BuildHandler{store: store}
}

// Handle executes the Build command
func (h *BuildHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*BuildCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *BuildCommand")
	}

	var result *simulation.BuildResult
	session, err := h.store.Update(ctx, cmd.SaveID, func(s *colony.Session) error {
		var err error
		result, err = s.Game.Build(simulation.ParseOwner(cmd.Owner), building.Kind(cmd.Kind))
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordBuild(result)
	metrics.RecordState(session.Game.Status(), session.Game.ShipView())

	common.LoggerFromContext(ctx).Log("INFO", "Building installed", map[string]interface{}{
		"save_id":       cmd.SaveID.String(),
		"owner":         result.Owner,
		"kind":          result.Instance.Kind,
		"instance_id":   result.Instance.ID,
		"cost":          result.Cost.String(),
		"rockets_spent": result.RocketsSpent,
	})

	return result, nil
}

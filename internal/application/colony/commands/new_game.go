package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/spacecolony-go/internal/adapters/metrics"
	"github.com/andrescamacho/spacecolony-go/internal/application/colony"
	"github.com/andrescamacho/spacecolony-go/internal/application/common"
	"github.com/andrescamacho/spacecolony-go/internal/application/mediator"
	"github.com/andrescamacho/spacecolony-go/internal/domain/simulation"
)

// NewGameCommand starts a game from a world document
type NewGameCommand struct {
	Name  string
	World []byte // raw YAML world document
}

// NewGameResponse identifies the new save
type NewGameResponse struct {
	SaveID    simulation.SaveID
	WorldName string
	Status    simulation.StatusView
	Ship      simulation.ShipView
}

// NewGameHandler handles the NewGame command
type NewGameHandler struct {
	store *colony.GameStore
}

// NewNewGameHandler creates a new NewGameHandler
func NewNewGameHandler(store *colony.GameStore) *NewGameHandler {
	return &NewGameHandler{store: store}
}

// Handle executes the NewGame command
func (h *NewGameHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*NewGameCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *NewGameCommand")
	}
	if cmd.Name == "" {
		return nil, fmt.Errorf("save name is required")
	}

	session, err := h.store.Create(ctx, cmd.Name, cmd.World)
	if err != nil {
		return nil, fmt.Errorf("failed to start game: %w", err)
	}

	status := session.Game.Status()
	ship := session.Game.ShipView()
	metrics.RecordState(status, ship)

	common.LoggerFromContext(ctx).Log("INFO", "New game started", map[string]interface{}{
		"save_id": session.Record.ID.String(),
		"name":    cmd.Name,
		"world":   session.World.Name,
		"ship_at": ship.Location,
	})

	return &NewGameResponse{
		SaveID:    session.Record.ID,
		WorldName: session.World.Name,
		Status:    status,
		Ship:      ship,
	}, nil
}

package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/spacecolony-go/internal/application/colony"
	"github.com/andrescamacho/spacecolony-go/internal/application/common"
	"github.com/andrescamacho/spacecolony-go/internal/application/mediator"
	"github.com/andrescamacho/spacecolony-go/internal/domain/simulation"
)

// DeleteSaveCommand removes a save
type DeleteSaveCommand struct {
	SaveID simulation.SaveID
}

// DeleteSaveHandler handles the DeleteSave command
type DeleteSaveHandler struct {
	store *colony.GameStore
}

// NewDeleteSaveHandler creates a new DeleteSaveHandler
func NewDeleteSaveHandler(store *colony.GameStore) *DeleteSaveHandler {
	return &DeleteSaveHandler{store: store}
}

// Handle executes the DeleteSave command
func (h *DeleteSaveHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*DeleteSaveCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *DeleteSaveCommand")
	}

	if err := h.store.Repository().Delete(ctx, cmd.SaveID); err != nil {
		return nil, err
	}

	common.LoggerFromContext(ctx).Log("INFO", "Save deleted", map[string]interface{}{
		"save_id": cmd.SaveID.String(),
	})
	return nil, nil
}

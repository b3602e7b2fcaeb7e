package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/spacecolony-go/internal/adapters/metrics"
	"github.com/andrescamacho/spacecolony-go/internal/application/colony"
	"github.com/andrescamacho/spacecolony-go/internal/application/common"
	"github.com/andrescamacho/spacecolony-go/internal/application/mediator"
	"github.com/andrescamacho/spacecolony-go/internal/domain/shared"
	"github.com/andrescamacho/spacecolony-go/internal/domain/simulation"
)

// TransferCommand hauls resources between the ship and the node it is at
type TransferCommand struct {
	SaveID    simulation.SaveID
	Resource  string
	Amount    int
	Direction string // LOAD or UNLOAD
}

// TransferHandler handles the Transfer command
type TransferHandler struct {
	store *colony.GameStore
}

// NewTransferHandler creates a new TransferHandler
func NewTransferHandler(store *colony.GameStore) *TransferHandler {
	return &TransferHandler{store: store}
}

// Handle executes the Transfer command
func (h *TransferHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*TransferCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *TransferCommand")
	}

	resource, err := shared.ParseResource(cmd.Resource)
	if err != nil {
		return nil, shared.NewValidationError("resource", err.Error())
	}
	direction, err := simulation.ParseTransferDirection(cmd.Direction)
	if err != nil {
		return nil, shared.NewValidationError("direction", err.Error())
	}

	var result *simulation.TransferResult
	session, err := h.store.Update(ctx, cmd.SaveID, func(s *colony.Session) error {
		var err error
		result, err = s.Game.Transfer(resource, cmd.Amount, direction)
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordTransfer(result)
	metrics.RecordState(session.Game.Status(), session.Game.ShipView())

	common.LoggerFromContext(ctx).Log("INFO", "Cargo transferred", map[string]interface{}{
		"save_id":   cmd.SaveID.String(),
		"node":      result.NodeID,
		"resource":  result.Resource.String(),
		"direction": string(result.Direction),
		"requested": result.Requested,
		"moved":     result.Moved,
	})

	return result, nil
}

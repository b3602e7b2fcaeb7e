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

// DemolishCommand removes a building instance and frees its slot
type DemolishCommand struct {
	SaveID     simulation.SaveID
	Owner      string
	InstanceID string
}

// DemolishResponse confirms the removed instance
type DemolishResponse struct {
	Owner      string
	InstanceID string
}

// DemolishHandler handles the Demolish command
type DemolishHandler struct {
	store *colony.GameStore
}

// NewDemolishHandler creates a new DemolishHandler
func NewDemolishHandler(store *colony.GameStore) *DemolishHandler {
	return &DemolishHandler{store: store}
}

// Handle executes the Demolish command
func (h *DemolishHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*DemolishCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *DemolishCommand")
	}

	owner := simulation.ParseOwner(cmd.Owner)
	session, err := h.store.Update(ctx, cmd.SaveID, func(s *colony.Session) error {
		return s.Game.Demolish(owner, cmd.InstanceID)
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordDemolish(owner)
	metrics.RecordState(session.Game.Status(), session.Game.ShipView())

	common.LoggerFromContext(ctx).Log("INFO", "Building demolished", map[string]interface{}{
		"save_id":     cmd.SaveID.String(),
		"owner":       owner.String(),
		"instance_id": cmd.InstanceID,
	})

	return &DemolishResponse{Owner: owner.String(), InstanceID: cmd.InstanceID}, nil
}

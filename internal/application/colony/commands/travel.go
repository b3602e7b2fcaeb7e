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

// TravelCommand jumps the ship along an edge
type TravelCommand struct {
	SaveID      simulation.SaveID
	Destination string
}

// TravelHandler handles the Travel command
type TravelHandler struct {
	store *colony.GameStore
}

// NewTravelHandler creates a new TravelHandler
func NewTravelHandler(store *colony.GameStore) *TravelHandler {
	return &TravelHandler{store: store}
}

// Handle executes the Travel command
func (h *TravelHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*TravelCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *TravelCommand")
	}

	var result *simulation.TravelResult
	session, err := h.store.Update(ctx, cmd.SaveID, func(s *colony.Session) error {
		var err error
		result, err = s.Game.Travel(ctx, cmd.Destination)
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordTravel(result)
	metrics.RecordState(session.Game.Status(), session.Game.ShipView())

	logger := common.LoggerFromContext(ctx)
	for _, report := range result.Turns {
		logTurn(logger, cmd.SaveID, report)
	}
	level := "INFO"
	if !result.Arrived {
		level = "WARN"
	}
	logger.Log(level, "Journey finished", map[string]interface{}{
		"save_id": cmd.SaveID.String(),
		"from":    result.From,
		"to":      result.To,
		"cost":    result.Cost.String(),
		"turns":   len(result.Turns),
		"arrived": result.Arrived,
		"outcome": result.Outcome().String(),
	})

	return result, nil
}

package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/spacecolony-go/internal/application/colony"
	"github.com/andrescamacho/spacecolony-go/internal/application/mediator"
	"github.com/andrescamacho/spacecolony-go/internal/domain/simulation"
)

// GetStatusQuery reads the turn, outcome and ship of a save
type GetStatusQuery struct {
	SaveID simulation.SaveID
}

// GetStatusResponse is a read-only picture of a save
type GetStatusResponse struct {
	SaveID    simulation.SaveID
	Name      string
	WorldName string
	Status    simulation.StatusView
	Ship      simulation.ShipView
	Rules     simulation.Rules
	Hash      string
}

// GetStatusHandler handles the GetStatus query
type GetStatusHandler struct {
	store *colony.GameStore
}

// NewGetStatusHandler creates a new GetStatusHandler
func NewGetStatusHandler(store *colony.GameStore) *GetStatusHandler {
	return &GetStatusHandler{store: store}
}

// Handle executes the GetStatus query
func (h *GetStatusHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetStatusQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetStatusQuery")
	}

	session, err := h.store.Open(ctx, query.SaveID)
	if err != nil {
		return nil, err
	}

	return &GetStatusResponse{
		SaveID:    session.Record.ID,
		Name:      session.Record.Name,
		WorldName: session.World.Name,
		Status:    session.Game.Status(),
		Ship:      session.Game.ShipView(),
		Rules:     session.Game.Rules(),
		Hash:      session.Record.Hash,
	}, nil
}

package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/spacecolony-go/internal/application/colony"
	"github.com/andrescamacho/spacecolony-go/internal/application/mediator"
	"github.com/andrescamacho/spacecolony-go/internal/domain/simulation"
)

// ListNodesQuery lists the nodes of a save, or a single node when NodeID is set
type ListNodesQuery struct {
	SaveID simulation.SaveID
	NodeID string
}

// ListNodesResponse contains the node views in ID order
type ListNodesResponse struct {
	ShipLocation string
	Nodes        []simulation.NodeView
}

// ListNodesHandler handles the ListNodes query
type ListNodesHandler struct {
	store *colony.GameStore
}

// NewListNodesHandler creates a new ListNodesHandler
func NewListNodesHandler(store *colony.GameStore) *ListNodesHandler {
	return &ListNodesHandler{store: store}
}

// Handle executes the ListNodes query
func (h *ListNodesHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ListNodesQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListNodesQuery")
	}

	session, err := h.store.Open(ctx, query.SaveID)
	if err != nil {
		return nil, err
	}

	response := &ListNodesResponse{ShipLocation: session.Game.ShipView().Location}
	if query.NodeID != "" {
		view, err := session.Game.NodeView(query.NodeID)
		if err != nil {
			return nil, err
		}
		response.Nodes = []simulation.NodeView{view}
		return response, nil
	}
	response.Nodes = session.Game.NodeViews()
	return response, nil
}

package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/spacecolony-go/internal/application/colony"
	"github.com/andrescamacho/spacecolony-go/internal/application/mediator"
	"github.com/andrescamacho/spacecolony-go/internal/domain/simulation"
)

// ListSavesQuery lists stored games, newest first
type ListSavesQuery struct {
	Limit  int
	Offset int
}

// ListSavesResponse contains the save summaries
type ListSavesResponse struct {
	Saves []*simulation.SaveSummary
}

// ListSavesHandler handles the ListSaves query
type ListSavesHandler struct {
	store *colony.GameStore
}

// NewListSavesHandler creates a new ListSavesHandler
func NewListSavesHandler(store *colony.GameStore) *ListSavesHandler {
	return &ListSavesHandler{store: store}
}

// Handle executes the ListSaves query
func (h *ListSavesHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ListSavesQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListSavesQuery")
	}

	opts := simulation.DefaultListOptions()
	if query.Limit > 0 {
		opts.Limit = query.Limit
	}
	if query.Offset > 0 {
		opts.Offset = query.Offset
	}

	saves, err := h.store.Repository().List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list saves: %w", err)
	}
	return &ListSavesResponse{Saves: saves}, nil
}

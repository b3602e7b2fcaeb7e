package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/spacecolony-go/internal/application/colony"
	"github.com/andrescamacho/spacecolony-go/internal/application/mediator"
	"github.com/andrescamacho/spacecolony-go/internal/domain/simulation"
	"github.com/andrescamacho/spacecolony-go/internal/infrastructure/world"
)

// GetCatalogQuery lists buildable kinds. With a zero SaveID the catalog of
// the given world document (or the built-in world) is returned.
type GetCatalogQuery struct {
	SaveID simulation.SaveID
	World  []byte
}

// GetCatalogResponse contains definitions sorted by kind
type GetCatalogResponse struct {
	Definitions []simulation.DefinitionView
}

// GetCatalogHandler handles the GetCatalog query
type GetCatalogHandler struct {
	store *colony.GameStore
}

// NewGetCatalogHandler creates a new GetCatalogHandler
func NewGetCatalogHandler(store *colony.GameStore) *GetCatalogHandler {
	return &GetCatalogHandler{store: store}
}

// Handle executes the GetCatalog query
func (h *GetCatalogHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetCatalogQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetCatalogQuery")
	}

	if !query.SaveID.IsZero() {
		session, err := h.store.Open(ctx, query.SaveID)
		if err != nil {
			return nil, err
		}
		return &GetCatalogResponse{Definitions: session.Game.CatalogView()}, nil
	}

	document := query.World
	if len(document) == 0 {
		document = world.DefaultDocument()
	}
	def, err := world.Parse(document)
	if err != nil {
		return nil, err
	}
	game, err := def.NewGame()
	if err != nil {
		return nil, err
	}
	return &GetCatalogResponse{Definitions: game.CatalogView()}, nil
}

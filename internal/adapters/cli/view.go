package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/spacecolony-go/internal/application/colony/queries"
	"github.com/andrescamacho/spacecolony-go/internal/domain/simulation"
	"github.com/andrescamacho/spacecolony-go/internal/infrastructure/world"
)

// NewStatusCommand creates the status command
func NewStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the turn, outcome and ship of the current save",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSave(func(a *app, id simulation.SaveID) error {
				resp, err := a.send(&queries.GetStatusQuery{SaveID: id})
				if err != nil {
					return err
				}
				status := resp.(*queries.GetStatusResponse)
				printResult(status, func() { displayStatus(status) })
				return nil
			})
		},
	}
}

// NewNodesCommand creates the nodes command
func NewNodesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "nodes [node]",
		Short: "List nodes with their stock, buildings and routes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := &queries.ListNodesQuery{}
			if len(args) == 1 {
				query.NodeID = args[0]
			}
			return withSave(func(a *app, id simulation.SaveID) error {
				query.SaveID = id
				resp, err := a.send(query)
				if err != nil {
					return err
				}
				nodes := resp.(*queries.ListNodesResponse)
				printResult(nodes, func() { displayNodes(nodes) })
				return nil
			})
		},
	}
}

// NewCatalogCommand creates the catalog command
func NewCatalogCommand() *cobra.Command {
	var worldFile string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List building kinds",
		Long: `List the building kinds that can be built.

Shows the catalog of the current save, or of a world file with --world.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app) error {
				query := &queries.GetCatalogQuery{}
				if worldFile != "" {
					document, err := world.ReadDocument(worldFile)
					if err != nil {
						return err
					}
					query.World = document
				} else if id, err := a.resolveSaveID(); err == nil {
					query.SaveID = id
				}

				resp, err := a.send(query)
				if err != nil {
					return err
				}
				catalog := resp.(*queries.GetCatalogResponse)
				printResult(catalog, func() { displayCatalog(catalog) })
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&worldFile, "world", "", "World YAML file to read the catalog from")

	return cmd
}

// NewReplayCommand creates the replay command
func NewReplayCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "replay",
		Short: "Verify a save by replaying its action log",
		Long: `Rebuild the current save from its world and action log and check that
the replayed state hashes the same as the stored one.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSave(func(a *app, id simulation.SaveID) error {
				resp, err := a.send(&queries.ReplaySaveQuery{SaveID: id})
				if err != nil {
					return err
				}
				replay := resp.(*queries.ReplaySaveResponse)
				printResult(replay, func() {
					fmt.Printf("Replayed %d actions to turn %d: state matches (%s)\n", replay.Actions, replay.Turn, replay.Hash[:16])
				})
				return nil
			})
		},
	}
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/spacecolony-go/internal/application/colony/commands"
	"github.com/andrescamacho/spacecolony-go/internal/application/colony/queries"
	"github.com/andrescamacho/spacecolony-go/internal/domain/simulation"
	"github.com/andrescamacho/spacecolony-go/internal/infrastructure/world"
)

// NewNewGameCommand creates the new command
func NewNewGameCommand() *cobra.Command {
	var (
		name      string
		worldFile string
	)

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Start a new game",
		Long: `Start a new game and make it the current save.

The world is read from --world, then from game.world_file in the config,
and falls back to the built-in Kepler Drift world.

Examples:
  colony new --name kepler
  colony new --name custom --world ./worlds/sparse.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app) error {
				if name == "" {
					name = a.cfg.Game.SaveName
				}
				if worldFile == "" {
					worldFile = a.cfg.Game.WorldFile
				}
				document, err := world.ReadDocument(worldFile)
				if err != nil {
					return err
				}

				resp, err := a.send(&commands.NewGameCommand{Name: name, World: document})
				if err != nil {
					return err
				}
				started := resp.(*commands.NewGameResponse)
				if err := a.userConfig.SetCurrentSave(started.SaveID.String()); err != nil {
					return fmt.Errorf("game saved but failed to set it as current: %w", err)
				}

				printResult(started, func() {
					fmt.Printf("Started %q in %s [%s]\n\n", name, started.WorldName, started.SaveID)
					displayShip(started.Ship)
				})
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Save name (default: game.save_name)")
	cmd.Flags().StringVar(&worldFile, "world", "", "World YAML file (default: game.world_file or built-in)")

	return cmd
}

// NewUseCommand creates the use command
func NewUseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "use <save-id>",
		Short: "Set the current save",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			saveFlag = args[0]
			return withSave(func(a *app, id simulation.SaveID) error {
				resp, err := a.send(&queries.GetStatusQuery{SaveID: id})
				if err != nil {
					return err
				}
				if err := a.userConfig.SetCurrentSave(id.String()); err != nil {
					return fmt.Errorf("failed to save user config: %w", err)
				}
				status := resp.(*queries.GetStatusResponse)
				fmt.Printf("Current save: %s [%s], turn %d\n", status.Name, id, status.Status.Turn)
				return nil
			})
		},
	}
}

// NewSavesCommand creates the saves command with subcommands
func NewSavesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "saves",
		Short: "List and delete saved games",
	}

	cmd.AddCommand(newSavesListCommand())
	cmd.AddCommand(newSavesDeleteCommand())

	return cmd
}

func newSavesListCommand() *cobra.Command {
	var (
		limit  int
		offset int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saves, most recently played first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app) error {
				resp, err := a.send(&queries.ListSavesQuery{Limit: limit, Offset: offset})
				if err != nil {
					return err
				}
				current := ""
				if userCfg, err := a.userConfig.Load(); err == nil {
					current = userCfg.CurrentSave
				}
				saves := resp.(*queries.ListSavesResponse)
				printResult(saves, func() { displaySaves(saves, current) })
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of saves to return")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of saves to skip")

	return cmd
}

func newSavesDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <save-id>",
		Short: "Delete a save",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			saveFlag = args[0]
			return withSave(func(a *app, id simulation.SaveID) error {
				if _, err := a.send(&commands.DeleteSaveCommand{SaveID: id}); err != nil {
					return err
				}
				if userCfg, err := a.userConfig.Load(); err == nil && userCfg.CurrentSave == id.String() {
					if err := a.userConfig.SetCurrentSave(""); err != nil {
						return fmt.Errorf("failed to clear current save: %w", err)
					}
				}
				fmt.Printf("Deleted save %s\n", id)
				return nil
			})
		},
	}
}

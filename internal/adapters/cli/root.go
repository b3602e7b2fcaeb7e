package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	saveFlag   string
	jsonOutput bool
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "colony",
		Short: "Space Colony - rebuild a lost colony one turn at a time",
		Long: `Space Colony is a turn-based resource economy game.

Fly the ship between nodes, install buildings on the ship and on the nodes
you visit, and haul resources until the hold meets the restart threshold.
Every command is applied to the current save and written back to the
database, so a game can be continued from any terminal.

Examples:
  colony new --name kepler
  colony status
  colony build --on ship --kind bacteria_farm
  colony transfer --resource MATERIAL --amount 10 --load
  colony travel verdant
  colony pass --turns 3
  colony replay`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: ./colony.yaml)")
	rootCmd.PersistentFlags().StringVar(&saveFlag, "save", "",
		"Save ID to operate on (default: current save from 'colony use')")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false,
		"Print results as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	// Add command groups
	rootCmd.AddCommand(NewNewGameCommand())
	rootCmd.AddCommand(NewUseCommand())
	rootCmd.AddCommand(NewSavesCommand())
	rootCmd.AddCommand(NewStatusCommand())
	rootCmd.AddCommand(NewNodesCommand())
	rootCmd.AddCommand(NewCatalogCommand())
	rootCmd.AddCommand(NewBuildCommand())
	rootCmd.AddCommand(NewDemolishCommand())
	rootCmd.AddCommand(NewTravelCommand())
	rootCmd.AddCommand(NewPassCommand())
	rootCmd.AddCommand(NewTransferCommand())
	rootCmd.AddCommand(NewReplayCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/spacecolony-go/internal/application/colony/commands"
	"github.com/andrescamacho/spacecolony-go/internal/domain/simulation"
)

// NewBuildCommand creates the build command
func NewBuildCommand() *cobra.Command {
	var (
		owner string
		kind  string
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Install a building on the ship or a node",
		Long: `Install a building on the ship or on a node.

Building on a node requires the ship to be there. Landing on a planet
spends rockets from the ship's hold. The building's cost is paid by the
owner it is built on.

Examples:
  colony build --on ship --kind fusion_still
  colony build --on verdant --kind solar_array`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSave(func(a *app, id simulation.SaveID) error {
				resp, err := a.send(&commands.BuildCommand{SaveID: id, Owner: owner, Kind: kind})
				if err != nil {
					return err
				}
				result := resp.(*simulation.BuildResult)
				printResult(result, func() {
					fmt.Printf("Built %s %s on %s for %s", result.Instance.Kind, result.Instance.ID, result.Owner, result.Cost)
					if result.RocketsSpent > 0 {
						fmt.Printf(" (+%d ROCKET landing)", result.RocketsSpent)
					}
					fmt.Println()
				})
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&owner, "on", "ship", "Owner to build on: ship or a node ID")
	cmd.Flags().StringVar(&kind, "kind", "", "Building kind (see 'colony catalog') [required]")
	cmd.MarkFlagRequired("kind")

	return cmd
}

// NewDemolishCommand creates the demolish command
func NewDemolishCommand() *cobra.Command {
	var owner string

	cmd := &cobra.Command{
		Use:   "demolish <instance-id>",
		Short: "Remove a building and free its slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSave(func(a *app, id simulation.SaveID) error {
				if _, err := a.send(&commands.DemolishCommand{SaveID: id, Owner: owner, InstanceID: args[0]}); err != nil {
					return err
				}
				fmt.Printf("Demolished %s on %s\n", args[0], owner)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&owner, "on", "ship", "Owner the building is on: ship or a node ID")

	return cmd
}

// NewTravelCommand creates the travel command
func NewTravelCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "travel <node>",
		Short: "Fly the ship to an adjacent node",
		Long: `Fly the ship along an edge to an adjacent node.

The edge cost is paid up front and every turn of the journey is simulated.
If the game ends on the way the ship does not arrive.

Example:
  colony travel ceres`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSave(func(a *app, id simulation.SaveID) error {
				resp, err := a.send(&commands.TravelCommand{SaveID: id, Destination: args[0]})
				if err != nil {
					return err
				}
				result := resp.(*simulation.TravelResult)
				printResult(result, func() { displayTravel(result) })
				return nil
			})
		},
	}
}

// NewPassCommand creates the pass command
func NewPassCommand() *cobra.Command {
	var turns int

	cmd := &cobra.Command{
		Use:   "pass",
		Short: "Let turns pass without moving",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSave(func(a *app, id simulation.SaveID) error {
				resp, err := a.send(&commands.PassTurnCommand{SaveID: id, Turns: turns})
				if err != nil {
					return err
				}
				passed := resp.(*commands.PassTurnResponse)
				printResult(passed, func() { displayPassTurn(passed) })
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&turns, "turns", 1, "Number of turns to pass; stops early when the game ends")

	return cmd
}

// NewTransferCommand creates the transfer command
func NewTransferCommand() *cobra.Command {
	var (
		resource string
		amount   int
		load     bool
		unload   bool
	)

	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Move cargo between the ship and the node it is at",
		Long: `Move cargo between the ship and the node it is at.

Anything the receiver cannot hold because of a cap stays with the sender.

Examples:
  colony transfer --resource MATERIAL --amount 20 --load
  colony transfer --resource FOOD --amount 5 --unload`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if load == unload {
				return fmt.Errorf("exactly one of --load or --unload is required")
			}
			direction := simulation.TransferLoad
			if unload {
				direction = simulation.TransferUnload
			}
			return withSave(func(a *app, id simulation.SaveID) error {
				resp, err := a.send(&commands.TransferCommand{
					SaveID:    id,
					Resource:  resource,
					Amount:    amount,
					Direction: string(direction),
				})
				if err != nil {
					return err
				}
				result := resp.(*simulation.TransferResult)
				printResult(result, func() {
					fmt.Printf("%s %d/%d %s at %s\n", result.Direction, result.Moved, result.Requested, result.Resource, result.NodeID)
				})
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&resource, "resource", "", "Resource to move (FUSION, ROCKET, FOOD, MATERIAL, POWER) [required]")
	cmd.Flags().IntVar(&amount, "amount", 0, "Amount to move [required]")
	cmd.Flags().BoolVar(&load, "load", false, "Load from the node into the ship")
	cmd.Flags().BoolVar(&unload, "unload", false, "Unload from the ship onto the node")
	cmd.MarkFlagRequired("resource")
	cmd.MarkFlagRequired("amount")

	return cmd
}

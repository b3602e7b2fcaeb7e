package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/andrescamacho/spacecolony-go/internal/application/colony/commands"
	"github.com/andrescamacho/spacecolony-go/internal/application/colony/queries"
	"github.com/andrescamacho/spacecolony-go/internal/domain/shared"
	"github.com/andrescamacho/spacecolony-go/internal/domain/simulation"
)

const rule = "─────────────────────────────────────────────────────────────────────────────"

// prettyPrint formats JSON for display
func prettyPrint(v interface{}) string {
	bytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(bytes)
}

// printResult prints v as JSON when --json is set, otherwise calls text
func printResult(v interface{}, text func()) {
	if jsonOutput {
		fmt.Println(prettyPrint(v))
		return
	}
	text()
}

// formatAmounts lists non-zero amounts in resource order, e.g. "FUSION 10, FOOD 4"
func formatAmounts(amounts map[shared.Resource]int) string {
	parts := make([]string, 0, len(amounts))
	for _, r := range shared.AllResources() {
		if amount := amounts[r]; amount != 0 {
			parts = append(parts, fmt.Sprintf("%s %d", r, amount))
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}

func formatBuildings(instances []simulation.InstanceView) string {
	if len(instances) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(instances))
	for _, inst := range instances {
		label := fmt.Sprintf("%s:%s", inst.ID, inst.Kind)
		if inst.Decays {
			label += fmt.Sprintf("(%d left)", inst.RemainingLife)
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, " ")
}

func displayShip(ship simulation.ShipView) {
	fmt.Printf("Ship %s at %s (crew %d)\n", ship.Name, ship.Location, ship.Crew)
	fmt.Printf("  Hold:       %s\n", formatAmounts(ship.Ledger))
	fmt.Printf("  Slots:      %d/%d\n", ship.Used, ship.Capacity)
	fmt.Printf("  Buildings:  %s\n", formatBuildings(ship.Buildings))
}

func displayStatus(response *queries.GetStatusResponse) {
	fmt.Printf("\n%s [%s] - %s\n", response.Name, response.SaveID, response.WorldName)
	fmt.Println(rule)
	fmt.Printf("Turn:         %d\n", response.Status.Turn)
	fmt.Printf("Outcome:      %s", response.Status.Outcome)
	if response.Status.Outcome.IsTerminal() {
		fmt.Printf(" (turn %d)", response.Status.EndedAt)
	}
	fmt.Println()
	if response.Status.StarvationStreak > 0 {
		fmt.Printf("Starving for: %d of %d turns\n", response.Status.StarvationStreak, response.Rules.StarvationLimit)
	}
	fmt.Printf("Actions:      %d\n\n", response.Status.Actions)
	displayShip(response.Ship)

	fmt.Println("\nRestart threshold:")
	for _, r := range shared.AllResources() {
		need, ok := response.Rules.RestartThreshold[r]
		if !ok {
			continue
		}
		fmt.Printf("  %-10s %4d / %d\n", r, response.Ship.Ledger[r], need)
	}
	fmt.Println()
}

func displayNodes(response *queries.ListNodesResponse) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Node\tKind\tSlots\tStock\tBuildings\tRoutes")
	fmt.Fprintln(w, "────\t────\t─────\t─────\t─────────\t──────")
	for _, node := range response.Nodes {
		id := node.ID
		if node.ShipHere {
			id += " *"
		}
		routes := make([]string, 0, len(node.Edges))
		for _, e := range node.Edges {
			routes = append(routes, fmt.Sprintf("%s(%dt)", e.To, e.TurnCost))
		}
		fmt.Fprintf(w, "%s\t%s\t%d/%d\t%s\t%s\t%s\n",
			id,
			node.Kind,
			node.Used,
			node.Capacity,
			formatAmounts(node.Ledger),
			formatBuildings(node.Buildings),
			strings.Join(routes, " "),
		)
	}
	w.Flush()
	fmt.Printf("\n* ship is at %s\n", response.ShipLocation)
}

func displayCatalog(response *queries.GetCatalogResponse) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Kind\tPlacement\tCost\tLifetime\tEffects")
	fmt.Fprintln(w, "────\t─────────\t────\t────────\t───────")
	for _, def := range response.Definitions {
		lifetime := "-"
		if def.Lifetime > 0 {
			lifetime = fmt.Sprintf("%d turns", def.Lifetime)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			def.Kind,
			def.Placement,
			formatAmounts(def.Cost),
			lifetime,
			strings.Join(def.Effects, "; "),
		)
	}
	w.Flush()
}

func displaySaves(response *queries.ListSavesResponse, current string) {
	if len(response.Saves) == 0 {
		fmt.Println("No saves found")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, " \tID\tName\tTurn\tOutcome\tUpdated")
	for _, save := range response.Saves {
		marker := " "
		if save.ID.String() == current {
			marker = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
			marker,
			save.ID,
			save.Name,
			save.Turn,
			save.Outcome,
			save.UpdatedAt.Local().Format("2006-01-02 15:04:05"),
		)
	}
	w.Flush()
}

func displayTurn(report *simulation.TurnReport) {
	fmt.Printf("Turn %d: %s\n", report.Turn, report.Outcome)

	owners := make([]string, 0, len(report.Applied))
	for owner := range report.Applied {
		owners = append(owners, owner)
	}
	sort.Strings(owners)
	for _, owner := range owners {
		if delta := report.Applied[owner]; !delta.IsZero() {
			fmt.Printf("  %-10s %s\n", owner, delta)
		}
	}
	for _, shortfall := range report.Shortfalls {
		fmt.Printf("  SHORTFALL  %s\n", shortfall)
	}
	for owner, lost := range report.Overflow {
		fmt.Printf("  OVERFLOW   %s lost %s\n", owner, lost)
	}
	for _, expiry := range report.Expired {
		fmt.Printf("  EXPIRED    %s on %s\n", expiry.InstanceID, expiry.Owner)
	}
}

func displayPassTurn(response *commands.PassTurnResponse) {
	for _, report := range response.Reports {
		displayTurn(report)
	}
	displayOutcome(response.Status.Outcome)
}

func displayTravel(result *simulation.TravelResult) {
	fmt.Printf("Departed %s for %s: %d turns, cost %s\n", result.From, result.To, result.TurnCost, result.Cost)
	for _, report := range result.Turns {
		displayTurn(report)
	}
	if result.Arrived {
		fmt.Printf("Arrived at %s\n", result.To)
	}
	displayOutcome(result.Outcome())
}

func displayOutcome(outcome simulation.Outcome) {
	switch outcome {
	case simulation.OutcomeWon:
		fmt.Println("\nThe hold meets the restart threshold. The colony lives again.")
	case simulation.OutcomeLost:
		fmt.Println("\nThe crew has starved. The game is over.")
	}
}

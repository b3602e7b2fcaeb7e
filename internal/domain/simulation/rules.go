package simulation

import (
	"fmt"

	"github.com/andrescamacho/spacecolony-go/internal/domain/shared"
)

const (
	DefaultFoodPerCrew       = 4
	DefaultStarvationLimit   = 1
	DefaultRocketsPerLanding = 1
)

// Rules are the tunable design constants of a game. They are injected from
// the world definition and never read from globals.
type Rules struct {
	// FoodPerCrew is the FOOD each crew member eats per turn
	FoodPerCrew int `json:"food_per_crew"`

	// StarvationLimit is the number of consecutive turns with a ship FOOD
	// shortfall that ends the game
	StarvationLimit int `json:"starvation_limit"`

	// RocketsPerLanding is the rocket shuttle cost of one planet-side action
	RocketsPerLanding int `json:"rockets_per_landing"`

	// RestartThreshold is the minimum ship stock of every listed resource
	// needed to win
	RestartThreshold map[shared.Resource]int `json:"restart_threshold"`
}

// DefaultRestartThreshold returns the stock the crew needs to restart the colony
func DefaultRestartThreshold() map[shared.Resource]int {
	return map[shared.Resource]int{
		shared.ResourceFusion:   40,
		shared.ResourceRocket:   30,
		shared.ResourceFood:     40,
		shared.ResourceMaterial: 40,
	}
}

// DefaultRules returns the rules used when the world does not override them
func DefaultRules() Rules {
	return Rules{
		FoodPerCrew:       DefaultFoodPerCrew,
		StarvationLimit:   DefaultStarvationLimit,
		RocketsPerLanding: DefaultRocketsPerLanding,
		RestartThreshold:  DefaultRestartThreshold(),
	}
}

// Validate checks the rules are playable
func (r Rules) Validate() error {
	if r.FoodPerCrew < 0 {
		return shared.NewConfigurationError("food_per_crew cannot be negative")
	}
	if r.StarvationLimit < 1 {
		return shared.NewConfigurationError("starvation_limit must be at least 1")
	}
	if r.RocketsPerLanding < 0 {
		return shared.NewConfigurationError("rockets_per_landing cannot be negative")
	}

	positive := 0
	for res, amount := range r.RestartThreshold {
		if !res.IsValid() {
			return shared.NewConfigurationError(fmt.Sprintf("restart threshold: unknown resource %s", res))
		}
		if amount < 0 {
			return shared.NewConfigurationError(fmt.Sprintf("restart threshold for %s cannot be negative", res))
		}
		if amount > 0 {
			positive++
		}
	}
	if positive == 0 {
		return shared.NewConfigurationError("restart threshold needs at least one positive minimum")
	}
	return nil
}

func (r Rules) clone() Rules {
	out := r
	out.RestartThreshold = make(map[shared.Resource]int, len(r.RestartThreshold))
	for res, amount := range r.RestartThreshold {
		out.RestartThreshold[res] = amount
	}
	return out
}

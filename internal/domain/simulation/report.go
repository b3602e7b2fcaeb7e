package simulation

import (
	"fmt"
	"strings"

	"github.com/andrescamacho/spacecolony-go/internal/domain/ledger"
	"github.com/andrescamacho/spacecolony-go/internal/domain/navigation"
	"github.com/andrescamacho/spacecolony-go/internal/domain/shared"
)

// Shortfall records an owner whose staged batch was rejected on a turn.
// It is a report value, not an error: the turn still completes.
type Shortfall struct {
	Owner   string       `json:"owner"`
	Missing ledger.Delta `json:"missing"` // amount short per resource, all positive
	Staged  ledger.Delta `json:"staged"`  // the rejected batch
}

// Resources returns the short resources in canonical order
func (s Shortfall) Resources() []shared.Resource {
	var out []shared.Resource
	for _, r := range shared.AllResources() {
		if s.Missing[r] > 0 {
			out = append(out, r)
		}
	}
	return out
}

// Has reports whether r was short
func (s Shortfall) Has(r shared.Resource) bool {
	return s.Missing[r] > 0
}

func (s Shortfall) String() string {
	parts := make([]string, 0, len(s.Missing))
	for _, r := range s.Resources() {
		parts = append(parts, fmt.Sprintf("%s short by %d", r, s.Missing[r]))
	}
	return fmt.Sprintf("%s: %s", s.Owner, strings.Join(parts, ", "))
}

// Expiry records a building removed by decay
type Expiry struct {
	Owner      string `json:"owner"`
	InstanceID string `json:"instance_id"`
}

// TurnReport is the result of one turn advance
type TurnReport struct {
	Turn             int                     `json:"turn"`
	Applied          map[string]ledger.Delta `json:"applied"`
	Overflow         map[string]ledger.Delta `json:"overflow,omitempty"`
	Shortfalls       []Shortfall             `json:"shortfalls,omitempty"`
	Expired          []Expiry                `json:"expired,omitempty"`
	Outcome          Outcome                 `json:"outcome"`
	StarvationStreak int                     `json:"starvation_streak"`
}

func newTurnReport(turn int) *TurnReport {
	return &TurnReport{
		Turn:     turn,
		Applied:  make(map[string]ledger.Delta),
		Overflow: make(map[string]ledger.Delta),
	}
}

// ShortfallFor returns the shortfall of one owner on this turn
func (r *TurnReport) ShortfallFor(owner string) (Shortfall, bool) {
	for _, s := range r.Shortfalls {
		if s.Owner == owner {
			return s, true
		}
	}
	return Shortfall{}, false
}

// Starved reports whether the ship could not pay for its FOOD this turn
func (r *TurnReport) Starved() bool {
	s, ok := r.ShortfallFor(navigation.ShipOwnerID)
	return ok && s.Has(shared.ResourceFood)
}

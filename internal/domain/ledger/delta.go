package ledger

import (
	"fmt"
	"strings"

	"github.com/andrescamacho/spacecolony-go/internal/domain/shared"
)

// Delta is a signed change per resource. Positive amounts are production or
// income, negative amounts consumption or cost.
type Delta map[shared.Resource]int

// Stage adds amount to the staged change for resource r
func (d Delta) Stage(r shared.Resource, amount int) {
	if amount == 0 {
		return
	}
	d[r] += amount
	if d[r] == 0 {
		delete(d, r)
	}
}

// Add returns a new Delta holding the sum of d and other
func (d Delta) Add(other Delta) Delta {
	out := d.Clone()
	for r, amount := range other {
		out.Stage(r, amount)
	}
	return out
}

// Negate returns a new Delta with every amount sign-flipped. Costs are stored
// as positive amounts and negated before being applied.
func (d Delta) Negate() Delta {
	out := make(Delta, len(d))
	for r, amount := range d {
		out[r] = -amount
	}
	return out
}

func (d Delta) Clone() Delta {
	out := make(Delta, len(d))
	for r, amount := range d {
		out[r] = amount
	}
	return out
}

// IsZero reports whether the delta changes nothing
func (d Delta) IsZero() bool {
	for _, amount := range d {
		if amount != 0 {
			return false
		}
	}
	return true
}

// Validate checks that every key is a known resource
func (d Delta) Validate() error {
	for r := range d {
		if !r.IsValid() {
			return fmt.Errorf("invalid resource in delta: %s", r)
		}
	}
	return nil
}

func (d Delta) String() string {
	parts := make([]string, 0, len(d))
	for _, r := range shared.AllResources() {
		if amount, ok := d[r]; ok && amount != 0 {
			parts = append(parts, fmt.Sprintf("%s:%+d", r, amount))
		}
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// ParseDelta builds a Delta from a name->amount map, resolving resource
// aliases. Used when decoding configuration.
func ParseDelta(raw map[string]int) (Delta, error) {
	d := make(Delta, len(raw))
	for name, amount := range raw {
		r, err := shared.ParseResource(name)
		if err != nil {
			return nil, err
		}
		d.Stage(r, amount)
	}
	return d, nil
}

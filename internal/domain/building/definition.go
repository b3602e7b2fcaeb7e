package building

import (
	"fmt"
	"strings"

	"github.com/andrescamacho/spacecolony-go/internal/domain/ledger"
	"github.com/andrescamacho/spacecolony-go/internal/domain/shared"
)

// Kind identifies a building definition in the catalog
type Kind string

func (k Kind) String() string {
	return string(k)
}

// Placement restricts which hosts may carry a building
type Placement string

const (
	PlacementAny          Placement = "ANY"
	PlacementPlanetOnly   Placement = "PLANET_ONLY"
	PlacementAsteroidOnly Placement = "ASTEROID_ONLY"
	PlacementShipOnly     Placement = "SHIP_ONLY"
)

// ParsePlacement parses a case-insensitive placement constraint
func ParsePlacement(s string) (Placement, error) {
	p := Placement(strings.ToUpper(strings.TrimSpace(s)))
	switch p {
	case PlacementAny, PlacementPlanetOnly, PlacementAsteroidOnly, PlacementShipOnly:
		return p, nil
	default:
		return "", fmt.Errorf("invalid placement: %s", s)
	}
}

// Allows reports whether a host of the given kind satisfies the constraint
func (p Placement) Allows(host shared.HostKind) bool {
	switch p {
	case PlacementAny:
		return host.IsValid()
	case PlacementPlanetOnly:
		return host == shared.HostPlanet
	case PlacementAsteroidOnly:
		return host == shared.HostAsteroid
	case PlacementShipOnly:
		return host == shared.HostShip
	default:
		return false
	}
}

// Effect is a signed resource change paid out once every Period turns.
// Continuous effects have Period 1.
type Effect struct {
	Resource shared.Resource
	Amount   int
	Period   int
}

func (e Effect) validate() error {
	if !e.Resource.IsValid() {
		return fmt.Errorf("invalid effect resource: %s", e.Resource)
	}
	if e.Period < 1 {
		return fmt.Errorf("effect period must be at least 1, got %d", e.Period)
	}
	if e.Amount == 0 {
		return fmt.Errorf("effect amount cannot be zero")
	}
	return nil
}

func (e Effect) String() string {
	if e.Period == 1 {
		return fmt.Sprintf("%+d %s/turn", e.Amount, e.Resource)
	}
	return fmt.Sprintf("%+d %s/%d turns", e.Amount, e.Resource, e.Period)
}

// Definition is an immutable catalog entry.
//
// A definition carries a default effect table and optional per-host tables:
// a solar array may yield more power on a planet surface than in space. The
// table is picked by the host's kind when the building is placed.
type Definition struct {
	Kind        Kind
	Name        string
	Cost        ledger.Delta
	Effects     []Effect
	HostEffects map[shared.HostKind][]Effect
	Lifetime    int // turns before decay; 0 means permanent
	Placement   Placement
	Description string
}

// Validate checks the structural rules of a definition
func (d *Definition) Validate() error {
	if d.Kind == "" {
		return shared.NewConfigurationError("building kind cannot be empty")
	}
	if _, err := ParsePlacement(string(d.Placement)); err != nil {
		return shared.NewConfigurationError(fmt.Sprintf("building %s: %v", d.Kind, err))
	}
	if d.Lifetime < 0 {
		return shared.NewConfigurationError(fmt.Sprintf("building %s: lifetime cannot be negative", d.Kind))
	}
	if err := d.Cost.Validate(); err != nil {
		return shared.NewConfigurationError(fmt.Sprintf("building %s: %v", d.Kind, err))
	}
	for r, amount := range d.Cost {
		if amount < 0 {
			return shared.NewConfigurationError(fmt.Sprintf("building %s: cost of %s cannot be negative", d.Kind, r))
		}
	}
	for _, e := range d.Effects {
		if err := e.validate(); err != nil {
			return shared.NewConfigurationError(fmt.Sprintf("building %s: %v", d.Kind, err))
		}
	}
	for host, effects := range d.HostEffects {
		if !host.IsValid() {
			return shared.NewConfigurationError(fmt.Sprintf("building %s: invalid host %s", d.Kind, host))
		}
		if !d.Placement.Allows(host) {
			return shared.NewConfigurationError(fmt.Sprintf("building %s: effect table for %s, which placement %s forbids", d.Kind, host, d.Placement))
		}
		for _, e := range effects {
			if err := e.validate(); err != nil {
				return shared.NewConfigurationError(fmt.Sprintf("building %s (%s): %v", d.Kind, host, err))
			}
		}
	}
	return nil
}

// Clone returns a deep copy of the definition
func (d *Definition) Clone() *Definition {
	out := *d
	if d.Cost != nil {
		out.Cost = d.Cost.Clone()
	}
	if d.Effects != nil {
		out.Effects = append([]Effect(nil), d.Effects...)
	}
	if d.HostEffects != nil {
		out.HostEffects = make(map[shared.HostKind][]Effect, len(d.HostEffects))
		for host, effects := range d.HostEffects {
			out.HostEffects[host] = append([]Effect(nil), effects...)
		}
	}
	return &out
}

// EffectsFor returns the effect table used when the building sits on host
func (d *Definition) EffectsFor(host shared.HostKind) []Effect {
	if effects, ok := d.HostEffects[host]; ok {
		return effects
	}
	return d.Effects
}

// Decays reports whether instances expire after Lifetime turns
func (d *Definition) Decays() bool {
	return d.Lifetime > 0
}

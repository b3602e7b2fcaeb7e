package shared

import (
	"fmt"
	"strings"
)

// HostKind is the placement context of a building: the kind of node it sits
// on, or the ship.
type HostKind string

const (
	HostPlanet   HostKind = "PLANET"
	HostAsteroid HostKind = "ASTEROID"
	HostOther    HostKind = "OTHER"
	HostShip     HostKind = "SHIP"
)

func (h HostKind) String() string {
	return string(h)
}

// IsNodeKind reports whether h can be the kind of a graph node
func (h HostKind) IsNodeKind() bool {
	return h == HostPlanet || h == HostAsteroid || h == HostOther
}

func (h HostKind) IsValid() bool {
	return h.IsNodeKind() || h == HostShip
}

// ParseHostKind parses a case-insensitive host kind
func ParseHostKind(s string) (HostKind, error) {
	h := HostKind(strings.ToUpper(strings.TrimSpace(s)))
	if !h.IsValid() {
		return "", fmt.Errorf("invalid host kind: %s", s)
	}
	return h, nil
}

package shared

import (
	"fmt"
	"strings"
)

// Resource is one of the closed set of quantities tracked by a ledger
type Resource string

const (
	ResourceFusion   Resource = "FUSION"
	ResourceRocket   Resource = "ROCKET"
	ResourceFood     Resource = "FOOD"
	ResourceMaterial Resource = "MATERIAL"
	ResourcePower    Resource = "POWER"
)

// AllResources returns every resource in canonical order. Anything that walks
// resources and has an observable result (error selection, reports, hashes)
// must use this order.
func AllResources() []Resource {
	return []Resource{
		ResourceFusion,
		ResourceRocket,
		ResourceFood,
		ResourceMaterial,
		ResourcePower,
	}
}

// String returns the string representation of the Resource
func (r Resource) String() string {
	return string(r)
}

// IsValid checks if the resource is part of the enumeration
func (r Resource) IsValid() bool {
	switch r {
	case ResourceFusion,
		ResourceRocket,
		ResourceFood,
		ResourceMaterial,
		ResourcePower:
		return true
	default:
		return false
	}
}

// ParseResource parses a case-insensitive resource name. FUEL is accepted as
// an alias for FUSION.
func ParseResource(s string) (Resource, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	if name == "FUEL" {
		return ResourceFusion, nil
	}
	r := Resource(name)
	if !r.IsValid() {
		return "", fmt.Errorf("invalid resource: %s", s)
	}
	return r, nil
}

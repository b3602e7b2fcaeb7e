package building

import (
	"fmt"
	"sort"

	"github.com/andrescamacho/spacecolony-go/internal/domain/shared"
)

// Catalog is the read-only registry of building definitions, populated once
// at startup.
type Catalog struct {
	definitions map[Kind]*Definition
}

// NewCatalog validates and registers every definition. Any structural problem
// is a configuration error.
func NewCatalog(definitions ...*Definition) (*Catalog, error) {
	c := &Catalog{definitions: make(map[Kind]*Definition, len(definitions))}
	for _, def := range definitions {
		if def == nil {
			return nil, shared.NewConfigurationError("nil building definition")
		}
		if err := def.Validate(); err != nil {
			return nil, err
		}
		if _, exists := c.definitions[def.Kind]; exists {
			return nil, shared.NewConfigurationError(fmt.Sprintf("duplicate building kind: %s", def.Kind))
		}
		c.definitions[def.Kind] = def.Clone()
	}
	return c, nil
}

// DefinitionOf returns a copy of the definition for kind or an
// *shared.UnknownBuildingKindError
func (c *Catalog) DefinitionOf(kind Kind) (*Definition, error) {
	def, ok := c.definitions[kind]
	if !ok {
		return nil, shared.NewUnknownBuildingKindError(string(kind))
	}
	return def.Clone(), nil
}

// MustDefinitionOf panics on an unknown kind. Only for kinds already known to
// be registered (e.g. instances restored from a validated snapshot).
func (c *Catalog) MustDefinitionOf(kind Kind) *Definition {
	def, err := c.DefinitionOf(kind)
	if err != nil {
		panic(err)
	}
	return def
}

// CanPlace reports whether kind may be placed on host
func (c *Catalog) CanPlace(kind Kind, host shared.HostKind) (bool, error) {
	def, err := c.DefinitionOf(kind)
	if err != nil {
		return false, err
	}
	return def.Placement.Allows(host), nil
}

// Kinds returns every registered kind in sorted order
func (c *Catalog) Kinds() []Kind {
	kinds := make([]Kind, 0, len(c.definitions))
	for k := range c.definitions {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Definitions returns copies of every definition sorted by kind
func (c *Catalog) Definitions() []*Definition {
	kinds := c.Kinds()
	out := make([]*Definition, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, c.definitions[k].Clone())
	}
	return out
}

func (c *Catalog) Len() int {
	return len(c.definitions)
}

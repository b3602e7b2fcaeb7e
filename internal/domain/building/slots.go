package building

import (
	"fmt"

	"github.com/andrescamacho/spacecolony-go/internal/domain/ledger"
	"github.com/andrescamacho/spacecolony-go/internal/domain/shared"
)

// Slots is the construction capacity of one host (a node or the ship) and the
// instances occupying it, in placement order.
type Slots struct {
	owner     string
	host      shared.HostKind
	capacity  int
	instances []*Instance
}

// NewSlots creates an empty slot set
func NewSlots(owner string, host shared.HostKind, capacity int) (*Slots, error) {
	if capacity < 0 {
		return nil, fmt.Errorf("%s: slot capacity cannot be negative", owner)
	}
	if !host.IsValid() {
		return nil, fmt.Errorf("%s: invalid host kind %s", owner, host)
	}
	return &Slots{owner: owner, host: host, capacity: capacity}, nil
}

func (s *Slots) Capacity() int {
	return s.capacity
}

func (s *Slots) Used() int {
	return len(s.instances)
}

func (s *Slots) Free() int {
	return s.capacity - len(s.instances)
}

func (s *Slots) Host() shared.HostKind {
	return s.host
}

// Instances returns the placed instances in placement order
func (s *Slots) Instances() []*Instance {
	return append([]*Instance(nil), s.instances...)
}

// Install places a new instance of kind, paying its construction cost from
// wallet. Checks run in order: capacity, placement, cost. On any failure no
// slot is taken and wallet is unchanged.
func (s *Slots) Install(catalog *Catalog, kind Kind, instanceID string, wallet *ledger.ResourceLedger) (*Instance, error) {
	def, err := catalog.DefinitionOf(kind)
	if err != nil {
		return nil, err
	}
	if s.Free() <= 0 {
		return nil, shared.NewSlotFullError(s.owner, s.capacity)
	}
	if !def.Placement.Allows(s.host) {
		return nil, shared.NewPlacementNotAllowedError(string(kind), s.host)
	}
	if err := wallet.Apply(def.Cost.Negate()); err != nil {
		return nil, err
	}

	inst := NewInstance(instanceID, def, s.host)
	s.instances = append(s.instances, inst)
	return inst, nil
}

// Attach adds an already-built instance, used when restoring a snapshot
func (s *Slots) Attach(inst *Instance) error {
	if s.Free() <= 0 {
		return shared.NewSlotFullError(s.owner, s.capacity)
	}
	if inst.Host() != s.host {
		return shared.NewPlacementNotAllowedError(string(inst.Kind()), s.host)
	}
	s.instances = append(s.instances, inst)
	return nil
}

// Remove takes the instance out of its slot. Nothing is refunded.
func (s *Slots) Remove(instanceID string) (*Instance, error) {
	for i, inst := range s.instances {
		if inst.ID() == instanceID {
			s.instances = append(s.instances[:i:i], s.instances[i+1:]...)
			return inst, nil
		}
	}
	return nil, shared.NewBuildingNotFoundError(s.owner, instanceID)
}

// Tick stages the effects of every instance for this turn
func (s *Slots) Tick(staged ledger.Delta) {
	for _, inst := range s.instances {
		inst.Tick(staged)
	}
}

// Age decays every instance by one turn and removes the ones that expired,
// returning their IDs in placement order.
func (s *Slots) Age() []string {
	var expired []string
	kept := s.instances[:0:0]
	for _, inst := range s.instances {
		if inst.Age() {
			expired = append(expired, inst.ID())
			continue
		}
		kept = append(kept, inst)
	}
	s.instances = kept
	return expired
}

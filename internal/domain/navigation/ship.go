package navigation

import (
	"fmt"

	"github.com/andrescamacho/spacecolony-go/internal/domain/building"
	"github.com/andrescamacho/spacecolony-go/internal/domain/ledger"
	"github.com/andrescamacho/spacecolony-go/internal/domain/shared"
)

// ShipOwnerID is the owner name the ship uses in slot and shortfall reports
const ShipOwnerID = "ship"

// Ship entity - the player's mobile unit
//
// Invariants:
// - Name must be non-empty
// - Crew cannot be negative
// - Location is always a node ID known to the graph the ship flies in
// - Only ship-placeable buildings occupy its slots
//
// Rocket shuttles are the ROCKET amount on the ship's own ledger; planet-side
// actions spend them through ConsumeRocket.
type Ship struct {
	name     string
	crew     int
	location string
	ledger   *ledger.ResourceLedger
	slots    *building.Slots
}

// NewShip creates a new Ship entity with validation
func NewShip(name string, crew int, location string, stock *ledger.ResourceLedger, capacity int) (*Ship, error) {
	if name == "" {
		return nil, shared.NewConfigurationError("ship name cannot be empty")
	}
	if crew < 0 {
		return nil, shared.NewConfigurationError("ship crew cannot be negative")
	}
	if location == "" {
		return nil, shared.NewConfigurationError("ship location cannot be empty")
	}
	if stock == nil {
		return nil, shared.NewConfigurationError("ship ledger cannot be nil")
	}
	slots, err := building.NewSlots(ShipOwnerID, shared.HostShip, capacity)
	if err != nil {
		return nil, shared.NewConfigurationError(err.Error())
	}

	return &Ship{
		name:     name,
		crew:     crew,
		location: location,
		ledger:   stock,
		slots:    slots,
	}, nil
}

// Getters

func (s *Ship) Name() string {
	return s.name
}

func (s *Ship) Crew() int {
	return s.crew
}

func (s *Ship) Location() string {
	return s.location
}

func (s *Ship) IsAt(nodeID string) bool {
	return s.location == nodeID
}

func (s *Ship) Ledger() *ledger.ResourceLedger {
	return s.ledger
}

func (s *Ship) Slots() *building.Slots {
	return s.slots
}

// Buildings returns the ship-mounted instances in placement order
func (s *Ship) Buildings() []*building.Instance {
	return s.slots.Instances()
}

// Rockets returns the number of rocket shuttles on board
func (s *Ship) Rockets() int {
	return s.ledger.Get(shared.ResourceRocket)
}

// Building Management

// InstallBuilding mounts a building on the ship, paying its cost from the
// ship's ledger. No state changes on failure.
func (s *Ship) InstallBuilding(kind building.Kind, catalog *building.Catalog, instanceID string) (*building.Instance, error) {
	return s.slots.Install(catalog, kind, instanceID, s.ledger)
}

// RemoveBuilding demolishes a ship-mounted building
func (s *Ship) RemoveBuilding(instanceID string) error {
	_, err := s.slots.Remove(instanceID)
	return err
}

// AttachBuilding re-mounts an instance when restoring a saved game
func (s *Ship) AttachBuilding(inst *building.Instance) error {
	return s.slots.Attach(inst)
}

// Rocket Shuttles

// ConsumeRocket spends n rocket shuttles
func (s *Ship) ConsumeRocket(n int) error {
	if n < 0 {
		return fmt.Errorf("rocket amount cannot be negative")
	}
	if n == 0 {
		return nil
	}
	return s.ledger.Apply(ledger.Delta{shared.ResourceRocket: -n})
}

// Movement

// MoveTo places the ship at a node. Only the travel planner calls this once
// a journey completes.
func (s *Ship) MoveTo(nodeID string) error {
	if nodeID == "" {
		return fmt.Errorf("destination cannot be empty")
	}
	s.location = nodeID
	return nil
}

func (s *Ship) String() string {
	return fmt.Sprintf("Ship(name=%s, location=%s, crew=%d, slots=%d/%d)",
		s.name, s.location, s.crew, s.slots.Used(), s.slots.Capacity())
}

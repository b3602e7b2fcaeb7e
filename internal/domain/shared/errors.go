package shared

import (
	"errors"
	"fmt"
)

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// Gameplay errors. These are recoverable: the command is rejected and
// state is left exactly as it was before the call.

type InsufficientResourceError struct {
	*DomainError
	Resource  Resource
	Shortfall int
}

func NewInsufficientResourceError(resource Resource, shortfall int) *InsufficientResourceError {
	return &InsufficientResourceError{
		DomainError: NewDomainError(fmt.Sprintf("insufficient %s: short by %d", resource, shortfall)),
		Resource:    resource,
		Shortfall:   shortfall,
	}
}

type SlotFullError struct {
	*DomainError
	Owner    string
	Capacity int
}

func NewSlotFullError(owner string, capacity int) *SlotFullError {
	return &SlotFullError{
		DomainError: NewDomainError(fmt.Sprintf("no free slot on %s (capacity %d)", owner, capacity)),
		Owner:       owner,
		Capacity:    capacity,
	}
}

type PlacementNotAllowedError struct {
	*DomainError
	Kind string
	Host HostKind
}

func NewPlacementNotAllowedError(kind string, host HostKind) *PlacementNotAllowedError {
	return &PlacementNotAllowedError{
		DomainError: NewDomainError(fmt.Sprintf("building %s cannot be placed on %s", kind, host)),
		Kind:        kind,
		Host:        host,
	}
}

type NoRouteError struct {
	*DomainError
	From string
	To   string
}

func NewNoRouteError(from, to string) *NoRouteError {
	return &NoRouteError{
		DomainError: NewDomainError(fmt.Sprintf("no route from %s to %s", from, to)),
		From:        from,
		To:          to,
	}
}

type BuildingNotFoundError struct {
	*DomainError
	Owner      string
	InstanceID string
}

func NewBuildingNotFoundError(owner, instanceID string) *BuildingNotFoundError {
	return &BuildingNotFoundError{
		DomainError: NewDomainError(fmt.Sprintf("building %s not found on %s", instanceID, owner)),
		Owner:       owner,
		InstanceID:  instanceID,
	}
}

type ShipNotPresentError struct {
	*DomainError
	NodeID   string
	ShipAtID string
}

func NewShipNotPresentError(nodeID, shipAt string) *ShipNotPresentError {
	return &ShipNotPresentError{
		DomainError: NewDomainError(fmt.Sprintf("ship must be at %s for this action (currently at %s)", nodeID, shipAt)),
		NodeID:      nodeID,
		ShipAtID:    shipAt,
	}
}

type GameOverError struct {
	*DomainError
	Outcome string
}

func NewGameOverError(outcome string) *GameOverError {
	return &GameOverError{
		DomainError: NewDomainError(fmt.Sprintf("game is over: %s", outcome)),
		Outcome:     outcome,
	}
}

// Configuration errors. These are fatal and abort startup.

type ConfigurationError struct {
	*DomainError
}

func NewConfigurationError(message string) *ConfigurationError {
	return &ConfigurationError{DomainError: NewDomainError(message)}
}

// IsConfiguration marks the error (and anything embedding it) as fatal.
func (e *ConfigurationError) IsConfiguration() bool {
	return true
}

// IsConfigurationError reports whether err, or any error it wraps, is a
// configuration error.
func IsConfigurationError(err error) bool {
	var target interface{ IsConfiguration() bool }
	return errors.As(err, &target) && target.IsConfiguration()
}

type UnknownBuildingKindError struct {
	*ConfigurationError
	Kind string
}

func NewUnknownBuildingKindError(kind string) *UnknownBuildingKindError {
	return &UnknownBuildingKindError{
		ConfigurationError: NewConfigurationError(fmt.Sprintf("unknown building kind: %s", kind)),
		Kind:               kind,
	}
}

type UnknownNodeError struct {
	*DomainError
	NodeID string
}

func NewUnknownNodeError(nodeID string) *UnknownNodeError {
	return &UnknownNodeError{
		DomainError: NewDomainError(fmt.Sprintf("node %s not found", nodeID)),
		NodeID:      nodeID,
	}
}

// Validation error

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

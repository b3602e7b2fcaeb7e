package simulation

import (
	"fmt"
	"strings"

	"github.com/andrescamacho/spacecolony-go/internal/domain/navigation"
	"github.com/andrescamacho/spacecolony-go/internal/domain/shared"
)

// Owner addresses the ledger and slots a command acts on: the ship or one node
type Owner struct {
	nodeID string
}

// ShipOwner addresses the ship
var ShipOwner = Owner{}

// NodeOwner addresses a node by ID
func NodeOwner(nodeID string) Owner {
	return Owner{nodeID: nodeID}
}

// ParseOwner maps "ship" (or an empty string) to the ship and anything else
// to the node with that ID
func ParseOwner(s string) Owner {
	if s == "" || strings.EqualFold(s, navigation.ShipOwnerID) {
		return ShipOwner
	}
	return NodeOwner(s)
}

func (o Owner) IsShip() bool {
	return o.nodeID == ""
}

func (o Owner) NodeID() string {
	return o.nodeID
}

func (o Owner) String() string {
	if o.IsShip() {
		return navigation.ShipOwnerID
	}
	return o.nodeID
}

// TransferDirection is the way resources move between the ship and the node
// it is at
type TransferDirection string

const (
	// TransferLoad moves resources from the node onto the ship
	TransferLoad TransferDirection = "LOAD"

	// TransferUnload moves resources from the ship to the node
	TransferUnload TransferDirection = "UNLOAD"
)

// ParseTransferDirection accepts LOAD or UNLOAD in any case
func ParseTransferDirection(s string) (TransferDirection, error) {
	switch d := TransferDirection(strings.ToUpper(strings.TrimSpace(s))); d {
	case TransferLoad, TransferUnload:
		return d, nil
	}
	return "", shared.NewValidationError("direction", fmt.Sprintf("invalid transfer direction: %s", s))
}

// ActionType names a player command in the action log
type ActionType string

const (
	ActionBuild    ActionType = "BUILD"
	ActionDemolish ActionType = "DEMOLISH"
	ActionTravel   ActionType = "TRAVEL"
	ActionPassTurn ActionType = "PASS_TURN"
	ActionTransfer ActionType = "TRANSFER"
)

// Action is one successful command. Replaying the log against the initial
// world reproduces the game exactly.
type Action struct {
	Seq         int               `json:"seq"`
	Turn        int               `json:"turn"`
	Type        ActionType        `json:"type"`
	Owner       string            `json:"owner,omitempty"`
	Kind        string            `json:"kind,omitempty"`
	InstanceID  string            `json:"instance_id,omitempty"`
	Destination string            `json:"destination,omitempty"`
	Resource    shared.Resource   `json:"resource,omitempty"`
	Amount      int               `json:"amount,omitempty"`
	Direction   TransferDirection `json:"direction,omitempty"`
}

func (a Action) String() string {
	switch a.Type {
	case ActionBuild:
		return fmt.Sprintf("#%d turn %d: build %s on %s as %s", a.Seq, a.Turn, a.Kind, a.Owner, a.InstanceID)
	case ActionDemolish:
		return fmt.Sprintf("#%d turn %d: demolish %s on %s", a.Seq, a.Turn, a.InstanceID, a.Owner)
	case ActionTravel:
		return fmt.Sprintf("#%d turn %d: travel to %s", a.Seq, a.Turn, a.Destination)
	case ActionTransfer:
		return fmt.Sprintf("#%d turn %d: %s %d %s", a.Seq, a.Turn, strings.ToLower(string(a.Direction)), a.Amount, a.Resource)
	default:
		return fmt.Sprintf("#%d turn %d: pass turn", a.Seq, a.Turn)
	}
}

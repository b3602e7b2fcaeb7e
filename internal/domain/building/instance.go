package building

import (
	"fmt"

	"github.com/andrescamacho/spacecolony-go/internal/domain/ledger"
	"github.com/andrescamacho/spacecolony-go/internal/domain/shared"
)

// Instance is a placed building with its own accumulation and decay state.
//
// Invariants:
// - len(counters) == len(effects); 0 <= counters[i] < effects[i].Period
// - remainingLife > 0 while the instance is alive and decays
type Instance struct {
	id            string
	kind          Kind
	host          shared.HostKind
	effects       []Effect
	counters      []int
	decays        bool
	remainingLife int
}

// NewInstance places a fresh instance of def on a host of the given kind.
// The effect table is resolved once here; the host kind of a placed building
// never changes.
func NewInstance(id string, def *Definition, host shared.HostKind) *Instance {
	effects := def.EffectsFor(host)
	return &Instance{
		id:            id,
		kind:          def.Kind,
		host:          host,
		effects:       append([]Effect(nil), effects...),
		counters:      make([]int, len(effects)),
		decays:        def.Decays(),
		remainingLife: def.Lifetime,
	}
}

// RestoreInstance rebuilds an instance from persisted counters
func RestoreInstance(id string, def *Definition, host shared.HostKind, counters []int, remainingLife int) (*Instance, error) {
	inst := NewInstance(id, def, host)
	if len(counters) != len(inst.effects) {
		return nil, fmt.Errorf("instance %s: %d counters for %d effects", id, len(counters), len(inst.effects))
	}
	for i, c := range counters {
		if c < 0 || c >= inst.effects[i].Period {
			return nil, fmt.Errorf("instance %s: counter %d out of range for period %d", id, c, inst.effects[i].Period)
		}
		inst.counters[i] = c
	}
	if inst.decays {
		if remainingLife <= 0 || remainingLife > def.Lifetime {
			return nil, fmt.Errorf("instance %s: remaining life %d out of range", id, remainingLife)
		}
		inst.remainingLife = remainingLife
	}
	return inst, nil
}

func (i *Instance) ID() string {
	return i.id
}

func (i *Instance) Kind() Kind {
	return i.kind
}

func (i *Instance) Host() shared.HostKind {
	return i.host
}

func (i *Instance) Effects() []Effect {
	return append([]Effect(nil), i.effects...)
}

// Counters returns the turns elapsed since each effect last paid out
func (i *Instance) Counters() []int {
	return append([]int(nil), i.counters...)
}

// RemainingLife returns the turns left before expiry; ok is false for
// permanent buildings.
func (i *Instance) RemainingLife() (turns int, ok bool) {
	return i.remainingLife, i.decays
}

// Tick advances every accumulation counter by one turn and stages the
// effects that fire on this turn. Periodic effects pay their full amount
// every Period-th turn, so there is never a fractional payout.
func (i *Instance) Tick(staged ledger.Delta) {
	for idx, e := range i.effects {
		i.counters[idx]++
		if i.counters[idx] == e.Period {
			i.counters[idx] = 0
			staged.Stage(e.Resource, e.Amount)
		}
	}
}

// Age consumes one turn of life and reports whether the instance expired
func (i *Instance) Age() bool {
	if !i.decays {
		return false
	}
	i.remainingLife--
	return i.remainingLife <= 0
}

func (i *Instance) String() string {
	if i.decays {
		return fmt.Sprintf("%s(%s, %d turns left)", i.id, i.kind, i.remainingLife)
	}
	return fmt.Sprintf("%s(%s)", i.id, i.kind)
}

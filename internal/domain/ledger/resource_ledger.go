package ledger

import (
	"github.com/andrescamacho/spacecolony-go/internal/domain/shared"
)

// ResourceLedger is the quantity store owned by the ship and by each node.
//
// Invariants:
// - No committed amount is ever negative
// - When a cap is set for a resource, the committed amount never exceeds it
// - Apply and Commit are atomic across every resource in the delta
type ResourceLedger struct {
	amounts map[shared.Resource]int
	caps    map[shared.Resource]int
}

// NewResourceLedger creates a ledger holding the given starting amounts
func NewResourceLedger(initial map[shared.Resource]int) (*ResourceLedger, error) {
	return NewCappedResourceLedger(initial, nil)
}

// NewCappedResourceLedger creates a ledger with stockpile caps. A cap of zero
// (or a missing entry) means unlimited.
func NewCappedResourceLedger(initial, caps map[shared.Resource]int) (*ResourceLedger, error) {
	l := &ResourceLedger{
		amounts: make(map[shared.Resource]int),
		caps:    make(map[shared.Resource]int),
	}

	for r, c := range caps {
		if !r.IsValid() {
			return nil, &ErrInvalidLedger{Resource: r, Reason: "unknown resource"}
		}
		if c < 0 {
			return nil, &ErrInvalidLedger{Resource: r, Reason: "cap cannot be negative"}
		}
		if c > 0 {
			l.caps[r] = c
		}
	}

	for r, amount := range initial {
		if !r.IsValid() {
			return nil, &ErrInvalidLedger{Resource: r, Reason: "unknown resource"}
		}
		if amount < 0 {
			return nil, &ErrInvalidLedger{Resource: r, Reason: "amount cannot be negative"}
		}
		if c, ok := l.caps[r]; ok && amount > c {
			return nil, &ErrInvalidLedger{Resource: r, Reason: "amount exceeds cap"}
		}
		if amount > 0 {
			l.amounts[r] = amount
		}
	}

	return l, nil
}

// Get returns the committed amount of r
func (l *ResourceLedger) Get(r shared.Resource) int {
	return l.amounts[r]
}

// Cap returns the stockpile cap for r (0 when unlimited)
func (l *ResourceLedger) Cap(r shared.Resource) int {
	return l.caps[r]
}

// Has reports whether at least amount of r is available
func (l *ResourceLedger) Has(r shared.Resource, amount int) bool {
	return l.amounts[r] >= amount
}

// CanApply is a dry run of Apply. It returns the error Apply would return
// without touching the ledger.
func (l *ResourceLedger) CanApply(delta Delta) error {
	if err := delta.Validate(); err != nil {
		return err
	}
	for _, r := range shared.AllResources() {
		change, ok := delta[r]
		if !ok {
			continue
		}
		if next := l.amounts[r] + change; next < 0 {
			return shared.NewInsufficientResourceError(r, -next)
		}
	}
	return nil
}

// Shortfalls returns every resource delta would drive below zero, with the
// missing amount. Empty when delta can be applied.
func (l *ResourceLedger) Shortfalls(delta Delta) Delta {
	missing := make(Delta)
	for r, change := range delta {
		if next := l.amounts[r] + change; next < 0 {
			missing[r] = -next
		}
	}
	return missing
}

// Apply commits delta atomically. Either every resulting amount is
// non-negative and the whole delta is committed, or nothing changes and an
// *shared.InsufficientResourceError names the first short resource in
// canonical order.
func (l *ResourceLedger) Apply(delta Delta) error {
	_, err := l.Commit(delta)
	return err
}

// Commit behaves like Apply and also returns the surplus discarded by
// stockpile caps.
func (l *ResourceLedger) Commit(delta Delta) (Delta, error) {
	if err := l.CanApply(delta); err != nil {
		return nil, err
	}

	overflow := make(Delta)
	for r, change := range delta {
		next := l.amounts[r] + change
		if c, ok := l.caps[r]; ok && next > c {
			overflow.Stage(r, next-c)
			next = c
		}
		if next == 0 {
			delete(l.amounts, r)
		} else {
			l.amounts[r] = next
		}
	}
	return overflow, nil
}

// Snapshot returns a copy of every non-zero amount
func (l *ResourceLedger) Snapshot() map[shared.Resource]int {
	out := make(map[shared.Resource]int, len(l.amounts))
	for r, amount := range l.amounts {
		out[r] = amount
	}
	return out
}

// Caps returns a copy of the configured caps
func (l *ResourceLedger) Caps() map[shared.Resource]int {
	out := make(map[shared.Resource]int, len(l.caps))
	for r, c := range l.caps {
		out[r] = c
	}
	return out
}

// Total returns the sum of all amounts
func (l *ResourceLedger) Total() int {
	total := 0
	for _, amount := range l.amounts {
		total += amount
	}
	return total
}

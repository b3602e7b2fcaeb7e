package ledger

import (
	"fmt"

	"github.com/andrescamacho/spacecolony-go/internal/domain/shared"
)

// ErrInvalidLedger represents validation errors for ledger construction
type ErrInvalidLedger struct {
	Resource shared.Resource
	Reason   string
}

func (e *ErrInvalidLedger) Error() string {
	return fmt.Sprintf("invalid ledger: %s - %s", e.Resource, e.Reason)
}

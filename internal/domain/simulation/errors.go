package simulation

import "fmt"

// ErrSaveNotFound is returned when no save exists under an ID
type ErrSaveNotFound struct {
	ID string
}

func (e *ErrSaveNotFound) Error() string {
	return fmt.Sprintf("save not found: id=%s", e.ID)
}

// ErrReplayDiverged is returned when a replayed game does not reproduce the
// recorded state
type ErrReplayDiverged struct {
	Expected string
	Actual   string
}

func (e *ErrReplayDiverged) Error() string {
	return fmt.Sprintf("replay diverged: expected state %s, got %s", e.Expected, e.Actual)
}

package simulation

import (
	"context"
	"time"
)

// SaveRecord is a stored snapshot with its bookkeeping. World holds the
// world document the game was created from; it supplies the catalog on
// restore and the initial state for replays.
type SaveRecord struct {
	ID        SaveID
	Name      string
	World     []byte
	Snapshot  *Snapshot
	Hash      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SaveSummary is a save without its snapshot payload, for listings
type SaveSummary struct {
	ID        SaveID
	Name      string
	Turn      int
	Outcome   Outcome
	Hash      string
	UpdatedAt time.Time
}

// SaveRepository defines persistence operations for saved games
type SaveRepository interface {
	// Save inserts or overwrites a save
	Save(ctx context.Context, record *SaveRecord) error

	// Load retrieves a save by its ID
	Load(ctx context.Context, id SaveID) (*SaveRecord, error)

	// List returns save summaries with pagination
	List(ctx context.Context, opts ListOptions) ([]*SaveSummary, error)

	// Delete removes a save
	Delete(ctx context.Context, id SaveID) error
}

// ListOptions defines pagination and ordering for save listings
type ListOptions struct {
	Limit   int
	Offset  int
	OrderBy string // "updated_at DESC" (default) or "updated_at ASC"
}

// DefaultListOptions returns default list options
func DefaultListOptions() ListOptions {
	return ListOptions{
		Limit:   50,
		Offset:  0,
		OrderBy: "updated_at DESC",
	}
}

package simulation

import (
	"fmt"

	"github.com/google/uuid"
)

// SaveID is a value object identifying a saved game
type SaveID struct {
	value string
}

// NewSaveID creates a new SaveID with a generated UUID
func NewSaveID() SaveID {
	return SaveID{value: uuid.New().String()}
}

// ParseSaveID creates a SaveID from an existing UUID string
func ParseSaveID(id string) (SaveID, error) {
	if id == "" {
		return SaveID{}, fmt.Errorf("save_id cannot be empty")
	}

	if _, err := uuid.Parse(id); err != nil {
		return SaveID{}, fmt.Errorf("invalid save_id format: %w", err)
	}

	return SaveID{value: id}, nil
}

// MustParseSaveID panics on an invalid ID. Use it only for IDs read back
// from the database.
func MustParseSaveID(id string) SaveID {
	sid, err := ParseSaveID(id)
	if err != nil {
		panic(err)
	}
	return sid
}

func (s SaveID) String() string {
	return s.value
}

func (s SaveID) IsZero() bool {
	return s.value == ""
}

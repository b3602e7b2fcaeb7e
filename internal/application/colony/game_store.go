package colony

import (
	"context"
	"fmt"
	"sync"

	"github.com/andrescamacho/spacecolony-go/internal/domain/simulation"
	"github.com/andrescamacho/spacecolony-go/internal/infrastructure/world"
)

// Session is a loaded save: the record as stored, the live game restored
// from it and the world it was created from
type Session struct {
	Record *simulation.SaveRecord
	Game   *simulation.Game
	World  *world.Definition
}

// GameStore restores games from the save repository and writes them back.
// A Game is not safe for concurrent use, so Update serialises every
// load-mutate-save cycle behind one mutex.
type GameStore struct {
	repo simulation.SaveRepository
	mu   sync.Mutex
}

// NewGameStore creates a store over repo
func NewGameStore(repo simulation.SaveRepository) *GameStore {
	return &GameStore{repo: repo}
}

// Repository exposes the underlying save repository
func (s *GameStore) Repository() simulation.SaveRepository {
	return s.repo
}

// Create stores a brand new game built from a world document
func (s *GameStore) Create(ctx context.Context, name string, document []byte) (*Session, error) {
	def, err := world.Parse(document)
	if err != nil {
		return nil, err
	}
	game, err := def.NewGame()
	if err != nil {
		return nil, err
	}

	session := &Session{
		Record: &simulation.SaveRecord{
			ID:    simulation.NewSaveID(),
			Name:  name,
			World: document,
		},
		Game:  game,
		World: def,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.commit(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Open loads a save and restores its game
func (s *GameStore) Open(ctx context.Context, id simulation.SaveID) (*Session, error) {
	record, err := s.repo.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	def, err := world.Parse(record.World)
	if err != nil {
		return nil, fmt.Errorf("save %s: stored world: %w", id, err)
	}
	catalog, err := def.Catalog()
	if err != nil {
		return nil, err
	}
	game, err := simulation.Restore(record.Snapshot, catalog)
	if err != nil {
		return nil, fmt.Errorf("save %s: %w", id, err)
	}
	return &Session{Record: record, Game: game, World: def}, nil
}

// Update loads a save, runs fn against it and stores the result. Nothing is
// written when fn fails; game commands leave state untouched on error.
func (s *GameStore) Update(ctx context.Context, id simulation.SaveID, fn func(*Session) error) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.Open(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(session); err != nil {
		return nil, err
	}
	if err := s.commit(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *GameStore) commit(ctx context.Context, session *Session) error {
	session.Record.Snapshot = session.Game.Snapshot()
	if err := s.repo.Save(ctx, session.Record); err != nil {
		return fmt.Errorf("failed to store game: %w", err)
	}
	return nil
}

package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrescamacho/spacecolony-go/internal/domain/shared"
	"github.com/andrescamacho/spacecolony-go/internal/domain/simulation"
)

// GormSaveRepository implements simulation.SaveRepository using GORM
type GormSaveRepository struct {
	db    *gorm.DB
	clock shared.Clock
}

// NewGormSaveRepository creates a new GORM save repository
func NewGormSaveRepository(db *gorm.DB, clock shared.Clock) *GormSaveRepository {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &GormSaveRepository{db: db, clock: clock}
}

// Save inserts the record or overwrites the save with the same ID. The hash
// is recomputed from the snapshot so a stored save always matches its state.
func (r *GormSaveRepository) Save(ctx context.Context, record *simulation.SaveRecord) error {
	if record == nil || record.Snapshot == nil {
		return fmt.Errorf("save record must carry a snapshot")
	}
	if record.ID.IsZero() {
		record.ID = simulation.NewSaveID()
	}

	hash, err := record.Snapshot.Hash()
	if err != nil {
		return err
	}

	now := r.clock.Now()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now
	record.Hash = hash

	model, err := r.recordToModel(record)
	if err != nil {
		return fmt.Errorf("failed to convert save to model: %w", err)
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "version", "turn", "outcome", "hash", "world", "snapshot", "updated_at"}),
	}).Create(model)
	if result.Error != nil {
		return fmt.Errorf("failed to save game: %w", result.Error)
	}

	return nil
}

// Load retrieves a save by its ID
func (r *GormSaveRepository) Load(ctx context.Context, id simulation.SaveID) (*simulation.SaveRecord, error) {
	var model SaveModel
	result := r.db.WithContext(ctx).Where("id = ?", id.String()).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, &simulation.ErrSaveNotFound{ID: id.String()}
		}
		return nil, fmt.Errorf("failed to load save: %w", result.Error)
	}

	return r.modelToRecord(&model)
}

// List returns save summaries without decoding their payloads
func (r *GormSaveRepository) List(ctx context.Context, opts simulation.ListOptions) ([]*simulation.SaveSummary, error) {
	orderBy := "updated_at DESC"
	if opts.OrderBy != "" {
		orderBy = opts.OrderBy
	}
	query := r.db.WithContext(ctx).
		Model(&SaveModel{}).
		Select("id", "name", "turn", "outcome", "hash", "updated_at").
		Order(orderBy)

	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		query = query.Offset(opts.Offset)
	}

	var models []SaveModel
	if result := query.Find(&models); result.Error != nil {
		return nil, fmt.Errorf("failed to list saves: %w", result.Error)
	}

	summaries := make([]*simulation.SaveSummary, 0, len(models))
	for _, model := range models {
		id, err := simulation.ParseSaveID(model.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid save ID in database: %w", err)
		}
		outcome, err := simulation.ParseOutcome(model.Outcome)
		if err != nil {
			return nil, fmt.Errorf("invalid outcome in database: %w", err)
		}
		summaries = append(summaries, &simulation.SaveSummary{
			ID:        id,
			Name:      model.Name,
			Turn:      model.Turn,
			Outcome:   outcome,
			Hash:      model.Hash,
			UpdatedAt: model.UpdatedAt,
		})
	}

	return summaries, nil
}

// Delete removes a save
func (r *GormSaveRepository) Delete(ctx context.Context, id simulation.SaveID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id.String()).Delete(&SaveModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete save: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return &simulation.ErrSaveNotFound{ID: id.String()}
	}
	return nil
}

func (r *GormSaveRepository) recordToModel(record *simulation.SaveRecord) (*SaveModel, error) {
	snapshotJSON, err := json.Marshal(record.Snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	snapshot, err := compress(snapshotJSON)
	if err != nil {
		return nil, err
	}
	world, err := compress(record.World)
	if err != nil {
		return nil, err
	}

	return &SaveModel{
		ID:        record.ID.String(),
		Name:      record.Name,
		Version:   record.Snapshot.Version,
		Turn:      record.Snapshot.Turn,
		Outcome:   record.Snapshot.Outcome.String(),
		Hash:      record.Hash,
		World:     world,
		Snapshot:  snapshot,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}, nil
}

func (r *GormSaveRepository) modelToRecord(model *SaveModel) (*simulation.SaveRecord, error) {
	id, err := simulation.ParseSaveID(model.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid save ID in database: %w", err)
	}

	snapshotJSON, err := decompress(model.Snapshot)
	if err != nil {
		return nil, fmt.Errorf("save %s: %w", model.ID, err)
	}
	var snapshot simulation.Snapshot
	if err := json.Unmarshal(snapshotJSON, &snapshot); err != nil {
		return nil, fmt.Errorf("save %s: failed to decode snapshot: %w", model.ID, err)
	}

	world, err := decompress(model.World)
	if err != nil {
		return nil, fmt.Errorf("save %s: %w", model.ID, err)
	}

	hash, err := snapshot.Hash()
	if err != nil {
		return nil, err
	}
	if hash != model.Hash {
		return nil, fmt.Errorf("save %s is corrupt: stored hash %s, payload hashes to %s", model.ID, model.Hash, hash)
	}

	return &simulation.SaveRecord{
		ID:        id,
		Name:      model.Name,
		World:     world,
		Snapshot:  &snapshot,
		Hash:      model.Hash,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}, nil
}

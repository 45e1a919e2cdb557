package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/radiolex/core"
	"github.com/poiesic/radiolex/storage"
)

// CheckpointRepository stores one resume point per processor type under
// the checkpoint key prefix.
type CheckpointRepository struct {
	backend *Backend
}

var _ storage.CheckpointRepository = (*CheckpointRepository)(nil)

func NewCheckpointRepository(backend *Backend) *CheckpointRepository {
	return &CheckpointRepository{backend: backend}
}

// SaveCheckpoint overwrites the checkpoint for checkpoint.ProcessorType and
// stamps UpdatedAt.
func (r *CheckpointRepository) SaveCheckpoint(ctx context.Context, checkpoint *core.Checkpoint) error {
	if checkpoint == nil || checkpoint.ProcessorType == "" {
		return storage.ErrInvalidCheckpoint
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	checkpoint.UpdatedAt = time.Now().UTC()
	value := storage.MarshalCheckpoint(checkpoint)
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeCheckpointKey(checkpoint.ProcessorType), value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// LoadCheckpoint returns nil, nil when processorType has never been saved.
func (r *CheckpointRepository) LoadCheckpoint(ctx context.Context, processorType string) (*core.Checkpoint, error) {
	if processorType == "" {
		return nil, storage.ErrInvalidCheckpoint
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var checkpoint *core.Checkpoint
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeCheckpointKey(processorType))
		if isNotFound(err) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			decoded, err := storage.UnmarshalCheckpoint(val)
			if err != nil {
				return err
			}
			checkpoint = decoded
			return nil
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return checkpoint, nil
}

// DeleteCheckpoint is idempotent.
func (r *CheckpointRepository) DeleteCheckpoint(ctx context.Context, processorType string) error {
	if processorType == "" {
		return storage.ErrInvalidCheckpoint
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Delete(makeCheckpointKey(processorType)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

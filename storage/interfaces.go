package storage

import (
	"context"
	"time"

	"github.com/poiesic/radiolex/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// The context passed to fn may contain transaction state.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// MessageRepository provides operations for managing intercepted messages.
type MessageRepository interface {
	Repository
	// AddMessages stores one or more messages.
	// Generates IDs from a sequence and sets InsertedAt.
	// Messages whose fingerprint is already stored are skipped.
	// Returns only the messages that were actually added.
	AddMessages(ctx context.Context, messages ...*core.Message) ([]*core.Message, error)

	// UpdateMessages replaces existing messages.
	// Returns ErrNotFound if any message doesn't exist.
	UpdateMessages(ctx context.Context, messages ...*core.Message) ([]*core.Message, error)

	// DeleteMessages removes messages and their index entries.
	// Returns ErrNotFound if any message doesn't exist.
	DeleteMessages(ctx context.Context, ids ...core.ID) error

	// GetMessage retrieves a single message by ID.
	// Returns ErrNotFound if the message doesn't exist.
	GetMessage(ctx context.Context, id core.ID) (*core.Message, error)

	// GetMessages retrieves multiple messages by their IDs.
	// Returns only the messages that exist (no error for missing messages).
	GetMessages(ctx context.Context, ids ...core.ID) ([]*core.Message, error)

	// GetMessagesByDateRange retrieves messages where start <= Timestamp < end,
	// ordered by timestamp.
	GetMessagesByDateRange(ctx context.Context, start, end time.Time) ([]*core.Message, error)

	// QueryMessages returns the messages matching filter, ordered by timestamp.
	// A zero filter returns every message.
	QueryMessages(ctx context.Context, filter MessageFilter) ([]*core.Message, error)

	// ListMessages returns up to limit messages with IDs greater than afterID,
	// in ID (arrival) order. A limit of zero or less means no limit.
	ListMessages(ctx context.Context, afterID core.ID, limit int) ([]*core.Message, error)

	// CountMessages returns the number of stored messages.
	CountMessages(ctx context.Context) (int, error)
}

// CheckpointRepository persists batch processing progress.
type CheckpointRepository interface {
	// SaveCheckpoint persists a checkpoint for a processor type.
	SaveCheckpoint(ctx context.Context, checkpoint *core.Checkpoint) error

	// LoadCheckpoint retrieves the checkpoint for a processor type.
	// Returns nil, nil if no checkpoint exists.
	LoadCheckpoint(ctx context.Context, processorType string) (*core.Checkpoint, error)

	// DeleteCheckpoint removes the checkpoint for a processor type.
	DeleteCheckpoint(ctx context.Context, processorType string) error
}

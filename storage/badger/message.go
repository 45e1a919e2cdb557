package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/radiolex/core"
	"github.com/poiesic/radiolex/storage"
)

// MessageRepository implements storage.MessageRepository for BadgerDB.
type MessageRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.MessageRepository = (*MessageRepository)(nil)

// NewMessageRepository creates a new MessageRepository.
func NewMessageRepository(backend *Backend) (*MessageRepository, error) {
	idSeq, err := backend.GetSequence(messageIDSeq)
	if err != nil {
		return nil, err
	}

	return &MessageRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *MessageRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *MessageRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddMessages stores messages, skipping any whose fingerprint is already present.
func (r *MessageRepository) AddMessages(ctx context.Context, messages ...*core.Message) ([]*core.Message, error) {
	added := make([]*core.Message, 0, len(messages))
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, msg := range messages {
			if err := ctx.Err(); err != nil {
				return err
			}

			fpKey := makeFingerprintKey(msg.Fingerprint())
			if _, err := tx.Get(fpKey); err == nil {
				r.backend.logger.Debug("skipping duplicate message", "fingerprint", msg.Fingerprint())
				continue
			} else if !isNotFound(err) {
				return err
			}

			nextID, err := r.idSeq.Next()
			if err != nil {
				return err
			}
			// BadgerDB sequences can return 0 on first call, so we skip it
			if nextID == 0 {
				nextID, err = r.idSeq.Next()
				if err != nil {
					return err
				}
			}
			msg.Id = core.ID(nextID)
			msg.InsertedAt = time.Now().UTC()

			if err := r.writeMessage(tx, msg); err != nil {
				return err
			}
			if err := tx.Set(fpKey, storage.MarshalID(msg.Id)); err != nil {
				return err
			}
			added = append(added, msg)
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}
	return added, nil
}

// UpdateMessages replaces existing messages and keeps the indices in step.
func (r *MessageRepository) UpdateMessages(ctx context.Context, messages ...*core.Message) ([]*core.Message, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, msg := range messages {
			old, err := r.readMessage(tx, makeMessageKey(msg.Id))
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			if !old.Timestamp.Equal(msg.Timestamp) {
				if err := tx.Delete(makeMessageDateKey(old.Timestamp, old.Id)); err != nil {
					return err
				}
			}
			if oldFp, newFp := old.Fingerprint(), msg.Fingerprint(); oldFp != newFp {
				if err := tx.Delete(makeFingerprintKey(oldFp)); err != nil {
					return err
				}
				if err := tx.Set(makeFingerprintKey(newFp), storage.MarshalID(msg.Id)); err != nil {
					return err
				}
			}
			if msg.InsertedAt.IsZero() {
				msg.InsertedAt = old.InsertedAt
			}
			if err := r.writeMessage(tx, msg); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return messages, err
}

// DeleteMessages removes messages by their IDs.
func (r *MessageRepository) DeleteMessages(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeMessageKey(id)
			msg, err := r.readMessage(tx, key)
			if err != nil {
				return err
			}
			if msg == nil {
				return storage.ErrNotFound
			}

			if err := tx.Delete(makeMessageDateKey(msg.Timestamp, msg.Id)); err != nil {
				return err
			}
			if err := tx.Delete(makeFingerprintKey(msg.Fingerprint())); err != nil {
				return err
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetMessage retrieves a single message by ID.
func (r *MessageRepository) GetMessage(ctx context.Context, id core.ID) (*core.Message, error) {
	var result *core.Message
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = r.readMessage(tx, makeMessageKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetMessages retrieves multiple messages by their IDs.
func (r *MessageRepository) GetMessages(ctx context.Context, ids ...core.ID) ([]*core.Message, error) {
	var result []*core.Message
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			msg, err := r.readMessage(tx, makeMessageKey(id))
			if err != nil {
				return err
			}
			if msg != nil {
				result = append(result, msg)
			}
		}
		return nil
	}, false)
	return result, err
}

// GetMessagesByDateRange retrieves messages where start <= Timestamp < end.
func (r *MessageRepository) GetMessagesByDateRange(ctx context.Context, start, end time.Time) ([]*core.Message, error) {
	if start.Equal(end) {
		end = start.Add(1 * time.Microsecond)
	}
	endMicros := end.UnixMicro()

	var results []*core.Message
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		return r.scanDates(ctx, tx, start, func(micros int64) bool { return micros >= endMicros }, func(msg *core.Message) {
			results = append(results, msg)
		})
	}, false)
	return results, err
}

// QueryMessages walks the date index between the filter bounds and applies
// the remaining criteria to each message.
func (r *MessageRepository) QueryMessages(ctx context.Context, filter storage.MessageFilter) ([]*core.Message, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	done := func(int64) bool { return false }
	if !filter.To.IsZero() {
		toMicros := filter.To.UnixMicro()
		done = func(micros int64) bool { return micros > toMicros }
	}

	results := make([]*core.Message, 0)
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		return r.scanDates(ctx, tx, filter.From, done, func(msg *core.Message) {
			if filter.Matches(msg) {
				results = append(results, msg)
			}
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return results, nil
}

// ListMessages returns messages with IDs greater than afterID in ID order.
func (r *MessageRepository) ListMessages(ctx context.Context, afterID core.ID, limit int) ([]*core.Message, error) {
	var results []*core.Message
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(messagePrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Seek(makeMessageKey(afterID + 1)); iter.Valid(); iter.Next() {
			if limit > 0 && len(results) >= limit {
				break
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			item := iter.Item()
			// afterID+1 wraps to 0 at the top of the ID space
			if messageIDFromKey(item.Key()) <= afterID {
				continue
			}
			var msg *core.Message
			if err := item.Value(func(val []byte) error {
				var err error
				msg, err = storage.UnmarshalMessage(val)
				return err
			}); err != nil {
				return err
			}
			results = append(results, msg)
		}
		return nil
	}, false)
	return results, err
}

// CountMessages returns the number of stored messages.
func (r *MessageRepository) CountMessages(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(messagePrefix)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// Helper methods

// scanDates walks the date index from start until done reports true for a
// key's timestamp, calling fn with each referenced message.
func (r *MessageRepository) scanDates(ctx context.Context, tx *badger.Txn, start time.Time, done func(micros int64) bool, fn func(*core.Message)) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(messageDatePrefix)
	iter := tx.NewIterator(opts)
	defer iter.Close()

	if start.IsZero() {
		iter.Rewind()
	} else {
		iter.Seek(makePartialMessageDateKey(start))
	}

	for ; iter.Valid(); iter.Next() {
		if err := ctx.Err(); err != nil {
			return err
		}
		key := iter.Item().Key()
		if done(dateKeyMicros(key)) {
			break
		}

		var id core.ID
		if err := iter.Item().Value(func(val []byte) error {
			var err error
			id, err = storage.UnmarshalID(val)
			return err
		}); err != nil {
			return err
		}

		msg, err := r.readMessage(tx, makeMessageKey(id))
		if err != nil {
			return err
		}
		if msg != nil {
			fn(msg)
		}
	}
	return nil
}

// writeMessage stores the primary record and its date index entry.
func (r *MessageRepository) writeMessage(tx *badger.Txn, msg *core.Message) error {
	if err := tx.Set(makeMessageKey(msg.Id), storage.MarshalMessage(msg)); err != nil {
		return err
	}
	return tx.Set(makeMessageDateKey(msg.Timestamp, msg.Id), storage.MarshalID(msg.Id))
}

// readMessage reads a message from the transaction.
func (r *MessageRepository) readMessage(tx *badger.Txn, key []byte) (*core.Message, error) {
	item, err := tx.Get(key)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	var msg *core.Message
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		msg, unmarshalErr = storage.UnmarshalMessage(val)
		return unmarshalErr
	})
	return msg, err
}

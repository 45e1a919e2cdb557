// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package reclassify

import (
	"context"

	"github.com/poiesic/radiolex/core"
	"github.com/poiesic/radiolex/storage"
)

const (
	// DefaultBatchSize is the default number of messages to fetch in each batch
	DefaultBatchSize = 100
)

// MessageIterator pages through stored messages in arrival order.
type MessageIterator struct {
	repo      storage.MessageRepository
	batchSize int
}

// NewMessageIterator creates a new message iterator.
// batchSize: number of messages to fetch in each batch (must be > 0)
func NewMessageIterator(repo storage.MessageRepository, batchSize int) *MessageIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &MessageIterator{
		repo:      repo,
		batchSize: batchSize,
	}
}

// ForEach calls fn with successive batches of messages whose IDs are greater
// than afterID. Iteration stops on the first error from fn or when the store
// is exhausted. Context cancellation is checked between batches.
func (it *MessageIterator) ForEach(ctx context.Context, afterID core.ID, fn func([]*core.Message) error) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		batch, err := it.repo.ListMessages(ctx, afterID, it.batchSize)
		if err != nil {
			return err
		}
		if len(batch) == 0 {
			return nil
		}

		if err := fn(batch); err != nil {
			return err
		}

		afterID = batch[len(batch)-1].Id
		if len(batch) < it.batchSize {
			return nil
		}
	}
}

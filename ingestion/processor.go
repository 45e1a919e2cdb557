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

package ingestion

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/poiesic/radiolex/classify"
	"github.com/poiesic/radiolex/core"
	"github.com/poiesic/radiolex/storage"
)

// CheckpointType identifies the ingestion classifier's checkpoint.
const CheckpointType = "ingestion.classify"

// processor is an internal interface for enriching stored messages.
type processor interface {
	// process enriches the messages identified by the given IDs.
	process(ctx context.Context, ids ...core.ID) error

	// checkpoint saves the processor's current state.
	checkpoint(ctx context.Context) error
}

// classifyProcessor assigns categories to stored messages that lack one.
type classifyProcessor struct {
	messages    storage.MessageRepository
	checkpoints storage.CheckpointRepository // May be nil
	classifier  classify.Classifier
	logger      *slog.Logger

	mu     sync.Mutex
	lastID core.ID
}

var _ processor = (*classifyProcessor)(nil)

func newClassifyProcessor(messages storage.MessageRepository, checkpoints storage.CheckpointRepository, classifier classify.Classifier, logger *slog.Logger) *classifyProcessor {
	if logger == nil {
		logger = slog.Default()
	}
	return &classifyProcessor{
		messages:    messages,
		checkpoints: checkpoints,
		classifier:  classifier,
		logger:      logger.With("processor", "classify"),
	}
}

// process classifies the specified messages and stores their categories.
func (cp *classifyProcessor) process(ctx context.Context, ids ...core.ID) error {
	cp.logger.Info("processing messages for classification", "messages", len(ids))

	// Sort first so checkpointing works correctly
	slices.Sort(ids)

	msgs, err := cp.messages.GetMessages(ctx, ids...)
	if err != nil {
		cp.logger.Error("error retrieving messages", "err", err)
		return err
	}

	pending := make([]*core.Message, 0, len(msgs))
	for _, msg := range msgs {
		if msg.Category != "" {
			continue
		}
		category, err := cp.classifier.Classify(ctx, msg.Body)
		if err != nil {
			cp.logger.Error("error classifying message", "id", msg.Id, "err", err)
			return err
		}
		msg.Category = category
		pending = append(pending, msg)
	}

	if len(pending) > 0 {
		if _, err := cp.messages.UpdateMessages(ctx, pending...); err != nil {
			cp.logger.Error("error storing categories", "err", err)
			return err
		}
	}

	if len(msgs) > 0 {
		cp.mu.Lock()
		if highest := msgs[len(msgs)-1].Id; highest > cp.lastID {
			cp.lastID = highest
		}
		cp.mu.Unlock()
	}
	return nil
}

// checkpoint records the highest message ID classified so far.
func (cp *classifyProcessor) checkpoint(ctx context.Context) error {
	if cp.checkpoints == nil {
		return nil
	}
	cp.mu.Lock()
	lastID := cp.lastID
	cp.mu.Unlock()
	if lastID == 0 {
		return nil
	}

	// Batches may finish out of order; never move the checkpoint backwards.
	existing, err := cp.checkpoints.LoadCheckpoint(ctx, CheckpointType)
	if err == nil && existing != nil && existing.LastID >= lastID {
		return nil
	}

	return cp.checkpoints.SaveCheckpoint(ctx, &core.Checkpoint{
		ProcessorType: CheckpointType,
		LastID:        lastID,
		UpdatedAt:     time.Now().UTC(),
	})
}

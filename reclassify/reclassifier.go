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
	"fmt"
	"io"
	"time"

	"github.com/poiesic/radiolex/classify"
	"github.com/poiesic/radiolex/core"
	"github.com/poiesic/radiolex/storage"
)

// CheckpointType identifies the reclassification checkpoint.
const CheckpointType = "reclassify"

// Config holds configuration for the reclassification operation.
type Config struct {
	// BatchSize is the number of messages to process in each batch
	BatchSize int

	// ReportInterval is how often to report progress (number of messages)
	ReportInterval int

	// MaxRetries is the maximum number of attempts for each classifier call
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration

	// Force relabels messages that already carry a category
	Force bool

	// Restart ignores any checkpoint left by an interrupted run
	Restart bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      100,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Stats summarizes a completed run.
type Stats struct {
	Processed int     // Messages visited
	Changed   int     // Messages whose category was rewritten
	ResumedAt core.ID // Checkpoint the run started after, 0 for a fresh run
	Elapsed   time.Duration
}

// Reclassifier orchestrates the reclassification of every stored message.
type Reclassifier struct {
	messages    storage.MessageRepository
	checkpoints storage.CheckpointRepository
	config      *Config
	progress    io.Writer
	processor   *BatchProcessor
	iterator    *MessageIterator
}

// NewReclassifier creates a new reclassifier. checkpoints may be nil, in
// which case runs cannot be resumed.
// progress: where to write progress output (typically os.Stderr)
func NewReclassifier(messages storage.MessageRepository, checkpoints storage.CheckpointRepository, classifier classify.Classifier, config *Config, progress io.Writer) (*Reclassifier, error) {
	if messages == nil {
		return nil, ErrMessageRepositoryRequired
	}
	if classifier == nil {
		return nil, ErrClassifierRequired
	}
	if config == nil {
		config = DefaultConfig()
	}
	if progress == nil {
		progress = io.Discard
	}

	return &Reclassifier{
		messages:    messages,
		checkpoints: checkpoints,
		config:      config,
		progress:    progress,
		processor:   NewBatchProcessor(messages, classifier, config.Force, config.MaxRetries, config.RetryDelay),
		iterator:    NewMessageIterator(messages, config.BatchSize),
	}, nil
}

// Run classifies every stored message in arrival order. After each batch the
// last processed ID is checkpointed; a later run resumes after it unless
// Config.Restart is set. The checkpoint is removed once the run completes.
func (r *Reclassifier) Run(ctx context.Context) (*Stats, error) {
	total, err := r.messages.CountMessages(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count messages: %w", err)
	}

	stats := &Stats{}
	if total == 0 {
		fmt.Fprintf(r.progress, "No messages found in database (0 messages)\n")
		return stats, nil
	}

	if !r.config.Restart && r.checkpoints != nil {
		chk, err := r.checkpoints.LoadCheckpoint(ctx, CheckpointType)
		if err != nil {
			return nil, fmt.Errorf("failed to load checkpoint: %w", err)
		}
		if chk != nil {
			stats.ResumedAt = chk.LastID
			fmt.Fprintf(r.progress, "Resuming after message %d\n", chk.LastID)
		}
	}

	fmt.Fprintf(r.progress, "Starting reclassification of %d messages (batch size: %d)\n",
		total, r.iterator.batchSize)

	tracker := NewProgressTracker(r.progress, total, r.config.ReportInterval)
	tracker.Start()

	err = r.iterator.ForEach(ctx, stats.ResumedAt, func(batch []*core.Message) error {
		changed, err := r.processor.Process(ctx, batch)
		if err != nil {
			return fmt.Errorf("failed to process batch: %w", err)
		}
		stats.Processed += len(batch)
		stats.Changed += changed
		tracker.Increment(len(batch))
		return r.saveCheckpoint(ctx, batch[len(batch)-1].Id)
	})
	if err != nil {
		return stats, err
	}

	if r.checkpoints != nil {
		if err := r.checkpoints.DeleteCheckpoint(ctx, CheckpointType); err != nil {
			return stats, fmt.Errorf("failed to clear checkpoint: %w", err)
		}
	}

	tracker.Finish()
	stats.Elapsed = tracker.Elapsed()

	rate := 0.0
	if secs := stats.Elapsed.Seconds(); secs > 0 {
		rate = float64(stats.Processed) / secs
	}
	fmt.Fprintf(r.progress, "Reclassification complete. Processed %d messages, %d changed, in %v (%.1f messages/sec)\n",
		stats.Processed, stats.Changed, stats.Elapsed.Round(time.Millisecond), rate)

	return stats, nil
}

func (r *Reclassifier) saveCheckpoint(ctx context.Context, lastID core.ID) error {
	if r.checkpoints == nil {
		return nil
	}
	err := r.checkpoints.SaveCheckpoint(ctx, &core.Checkpoint{
		ProcessorType: CheckpointType,
		LastID:        lastID,
		UpdatedAt:     time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to save checkpoint: %w", err)
	}
	return nil
}

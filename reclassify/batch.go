package reclassify

import (
	"context"
	"fmt"
	"time"

	"github.com/poiesic/radiolex/classify"
	"github.com/poiesic/radiolex/core"
	"github.com/poiesic/radiolex/storage"
)

// BatchProcessor classifies batches of messages and stores their categories.
type BatchProcessor struct {
	repo           storage.MessageRepository
	classifier     classify.Classifier
	force          bool
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewBatchProcessor creates a new batch processor.
// force: relabel messages that already carry a category
// maxRetries: maximum number of attempts for each classifier call
// retryBaseDelay: base delay for exponential backoff
func NewBatchProcessor(repo storage.MessageRepository, classifier classify.Classifier, force bool, maxRetries int, retryBaseDelay time.Duration) *BatchProcessor {
	return &BatchProcessor{
		repo:           repo,
		classifier:     classifier,
		force:          force,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
	}
}

// Process classifies a batch of messages and updates the changed ones in the
// database. Returns the number of messages whose category changed.
func (bp *BatchProcessor) Process(ctx context.Context, messages []*core.Message) (int, error) {
	changed := make([]*core.Message, 0, len(messages))
	for _, msg := range messages {
		if msg.Category != "" && !bp.force {
			continue
		}

		var category string
		err := RetryWithBackoff(ctx, func(ctx context.Context) error {
			var err error
			category, err = bp.classifier.Classify(ctx, msg.Body)
			return err
		}, bp.maxRetries, bp.retryBaseDelay)
		if err != nil {
			return 0, fmt.Errorf("failed to classify message %d after %d attempts: %w", msg.Id, bp.maxRetries, err)
		}

		if category != msg.Category {
			msg.Category = category
			changed = append(changed, msg)
		}
	}

	if len(changed) == 0 {
		return 0, nil
	}
	if _, err := bp.repo.UpdateMessages(ctx, changed...); err != nil {
		return 0, fmt.Errorf("failed to update messages: %w", err)
	}
	return len(changed), nil
}

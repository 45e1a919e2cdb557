package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/radiolex/classify"
	"github.com/poiesic/radiolex/core"
	"github.com/poiesic/radiolex/storage"
)

// Pipeline orchestrates the import of intercepted messages.
// It stores messages synchronously and classifies them in the background.
type Pipeline struct {
	messages     storage.MessageRepository
	checkpoints  storage.CheckpointRepository
	classifier   classify.Classifier
	classifyPool *ants.Pool
	classifyProc processor
	pending      sync.WaitGroup
	logger       *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent classification.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		// Release old pool
		if p.classifyPool != nil {
			p.classifyPool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.classifyPool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithCheckpoints records classification progress in repo.
func WithCheckpoints(repo storage.CheckpointRepository) Option {
	return func(p *Pipeline) error {
		p.checkpoints = repo
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	messages storage.MessageRepository,
	classifier classify.Classifier,
	opts ...Option,
) (*Pipeline, error) {
	if messages == nil {
		return nil, ErrMessageRepositoryRequired
	}
	if classifier == nil {
		return nil, ErrClassifierRequired
	}

	// Default pool size
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		messages:     messages,
		classifier:   classifier,
		classifyPool: pool,
		logger:       slog.Default(),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	// Create the processor after options are applied (so it gets final config)
	p.classifyProc = newClassifyProcessor(messages, p.checkpoints, classifier, p.logger)

	return p, nil
}

// Ingest validates and stores messages, then classifies the newly added ones
// asynchronously. Messages already present (same fingerprint) are skipped.
// The whole batch is rejected if any message is invalid.
// Returns the messages actually added, with their assigned IDs.
func (p *Pipeline) Ingest(ctx context.Context, messages []*core.Message) ([]*core.Message, error) {
	for i, msg := range messages {
		if err := core.ValidateMessage(msg); err != nil {
			return nil, fmt.Errorf("message %d: %w", i, err)
		}
	}

	added, err := p.messages.AddMessages(ctx, messages...)
	if err != nil {
		p.logger.Error("error adding messages", "err", err)
		return nil, err
	}
	p.logger.Debug("messages stored", "received", len(messages), "added", len(added))

	ids := make([]core.ID, 0, len(added))
	for _, msg := range added {
		if msg.Category == "" {
			ids = append(ids, msg.Id)
		}
	}
	if len(ids) == 0 {
		return added, nil
	}

	// Submit for async processing
	p.pending.Add(1)
	err = p.classifyPool.Submit(func() {
		defer p.pending.Done()
		bg := context.Background()
		if err := p.classifyProc.process(bg, ids...); err != nil {
			p.logger.Error("error processing classification", "err", err)
			return
		}
		if err := p.classifyProc.checkpoint(bg); err != nil {
			p.logger.Error("error applying classification checkpoint", "err", err)
		}
	})
	if err != nil {
		p.pending.Done()
		p.logger.Error("error submitting classification", "err", err)
	}

	return added, nil
}

// Wait blocks until every submitted classification batch has finished.
func (p *Pipeline) Wait() {
	p.pending.Wait()
}

// Release waits for pending work and releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	p.pending.Wait()
	if p.classifyPool != nil {
		p.classifyPool.Release()
	}
}

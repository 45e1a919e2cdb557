package ingestion

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/poiesic/radiolex/classify/mock"
	"github.com/poiesic/radiolex/core"
	"github.com/poiesic/radiolex/storage"
	"github.com/poiesic/radiolex/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRepositories(t *testing.T) (storage.MessageRepository, storage.CheckpointRepository) {
	t.Helper()
	msgRepo, chkRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		msgRepo.Close()
		backend.Close()
	})
	return msgRepo, chkRepo
}

func testMessages() []*core.Message {
	ts := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	return []*core.Message{
		{Timestamp: ts, Body: "пеленг цели", Area: "Север", Frequency: 146.5, CallSigns: []string{"Сокол"}},
		{Timestamp: ts.Add(time.Minute), Body: "колонна на марше", Area: "Север", Frequency: 146.5},
		{Timestamp: ts.Add(2 * time.Minute), Body: "раненый", Area: "Юг", Frequency: 150, Category: "casualties"},
	}
}

func TestNewPipeline(t *testing.T) {
	msgRepo, chkRepo := setupTestRepositories(t)
	classifier := mock.NewClassifier()

	t.Run("valid configuration", func(t *testing.T) {
		p, err := NewPipeline(msgRepo, classifier)
		require.NoError(t, err)
		require.NotNil(t, p)
		defer p.Release()
	})

	t.Run("with options", func(t *testing.T) {
		p, err := NewPipeline(msgRepo, classifier,
			WithPoolSize(2),
			WithLogger(slog.Default()),
			WithCheckpoints(chkRepo),
		)
		require.NoError(t, err)
		defer p.Release()
		assert.Equal(t, 2, p.classifyPool.Cap())
	})

	t.Run("pool size below one is clamped", func(t *testing.T) {
		p, err := NewPipeline(msgRepo, classifier, WithPoolSize(0))
		require.NoError(t, err)
		defer p.Release()
		assert.Equal(t, 1, p.classifyPool.Cap())
	})

	t.Run("nil message repository", func(t *testing.T) {
		_, err := NewPipeline(nil, classifier)
		assert.Equal(t, ErrMessageRepositoryRequired, err)
	})

	t.Run("nil classifier", func(t *testing.T) {
		_, err := NewPipeline(msgRepo, nil)
		assert.Equal(t, ErrClassifierRequired, err)
	})

	t.Run("failing option", func(t *testing.T) {
		boom := errors.New("bad option")
		_, err := NewPipeline(msgRepo, classifier, func(*Pipeline) error { return boom })
		assert.ErrorIs(t, err, boom)
	})
}

func TestIngestClassifiesInBackground(t *testing.T) {
	msgRepo, chkRepo := setupTestRepositories(t)
	classifier := mock.NewClassifier()
	classifier.ClassifyFunc = func(ctx context.Context, text string) (string, error) {
		if text == "пеленг цели" {
			return "coordinates", nil
		}
		return "movement", nil
	}

	p, err := NewPipeline(msgRepo, classifier, WithPoolSize(1), WithCheckpoints(chkRepo))
	require.NoError(t, err)
	defer p.Release()

	ctx := context.Background()
	added, err := p.Ingest(ctx, testMessages())
	require.NoError(t, err)
	require.Len(t, added, 3)
	p.Wait()

	// The pre-categorized message is not sent to the classifier.
	assert.Equal(t, 2, classifier.CallCount())

	stored, err := msgRepo.GetMessages(ctx, added[0].Id, added[1].Id, added[2].Id)
	require.NoError(t, err)
	require.Len(t, stored, 3)
	assert.Equal(t, "coordinates", stored[0].Category)
	assert.Equal(t, "movement", stored[1].Category)
	assert.Equal(t, "casualties", stored[2].Category)

	chk, err := chkRepo.LoadCheckpoint(ctx, CheckpointType)
	require.NoError(t, err)
	assert.Equal(t, added[1].Id, chk.LastID)
}

func TestIngestSkipsDuplicates(t *testing.T) {
	msgRepo, _ := setupTestRepositories(t)
	classifier := mock.NewClassifier()
	p, err := NewPipeline(msgRepo, classifier)
	require.NoError(t, err)
	defer p.Release()

	ctx := context.Background()
	first, err := p.Ingest(ctx, testMessages())
	require.NoError(t, err)
	assert.Len(t, first, 3)

	second, err := p.Ingest(ctx, testMessages())
	require.NoError(t, err)
	assert.Empty(t, second)
	p.Wait()

	count, err := msgRepo.CountMessages(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Equal(t, 2, classifier.CallCount())
}

func TestIngestRejectsInvalidBatch(t *testing.T) {
	msgRepo, _ := setupTestRepositories(t)
	p, err := NewPipeline(msgRepo, mock.NewClassifier())
	require.NoError(t, err)
	defer p.Release()

	msgs := testMessages()
	msgs[1].CallSigns = []string{" "}

	ctx := context.Background()
	_, err = p.Ingest(ctx, msgs)
	assert.ErrorIs(t, err, core.ErrInvalidMessage)
	assert.ErrorIs(t, err, core.ErrEmptyCallSign)

	count, err := msgRepo.CountMessages(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestIngestClassifierFailureIsLogged(t *testing.T) {
	msgRepo, chkRepo := setupTestRepositories(t)
	classifier := mock.NewClassifier()
	classifier.ClassifyFunc = func(ctx context.Context, text string) (string, error) {
		return "", errors.New("classifier offline")
	}

	p, err := NewPipeline(msgRepo, classifier, WithCheckpoints(chkRepo))
	require.NoError(t, err)
	defer p.Release()

	ctx := context.Background()
	added, err := p.Ingest(ctx, testMessages())
	require.NoError(t, err)
	p.Wait()

	msg, err := msgRepo.GetMessage(ctx, added[0].Id)
	require.NoError(t, err)
	assert.Empty(t, msg.Category)

	chk, err := chkRepo.LoadCheckpoint(ctx, CheckpointType)
	require.NoError(t, err)
	assert.Nil(t, chk)
}

func TestIngestEmptyBatch(t *testing.T) {
	msgRepo, _ := setupTestRepositories(t)
	classifier := mock.NewClassifier()
	p, err := NewPipeline(msgRepo, classifier)
	require.NoError(t, err)
	defer p.Release()

	added, err := p.Ingest(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, added)
	p.Wait()
	assert.Zero(t, classifier.CallCount())
}

func TestClassifyProcessorCheckpointNeverRegresses(t *testing.T) {
	msgRepo, chkRepo := setupTestRepositories(t)
	ctx := context.Background()
	require.NoError(t, chkRepo.SaveCheckpoint(ctx, &core.Checkpoint{
		ProcessorType: CheckpointType,
		LastID:        100,
		UpdatedAt:     time.Now().UTC(),
	}))

	cp := newClassifyProcessor(msgRepo, chkRepo, mock.NewClassifier(), nil)
	cp.lastID = 5
	require.NoError(t, cp.checkpoint(ctx))

	chk, err := chkRepo.LoadCheckpoint(ctx, CheckpointType)
	require.NoError(t, err)
	assert.Equal(t, core.ID(100), chk.LastID)

	noRepo := newClassifyProcessor(msgRepo, nil, mock.NewClassifier(), nil)
	noRepo.lastID = 5
	assert.NoError(t, noRepo.checkpoint(ctx))
}

package reclassify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/poiesic/radiolex/classify/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchProcessor_Process(t *testing.T) {
	repo, _ := setupTestDB(t)
	added := addTestMessages(t, repo, 3)
	added[1].Category = "supply"
	_, err := repo.UpdateMessages(context.Background(), added[1])
	require.NoError(t, err)

	classifier := mock.NewClassifier()
	classifier.DefaultCategory = "movement"
	bp := NewBatchProcessor(repo, classifier, false, 3, time.Millisecond)

	ctx := context.Background()
	changed, err := bp.Process(ctx, added)
	require.NoError(t, err)
	assert.Equal(t, 2, changed)
	assert.Equal(t, 2, classifier.CallCount(), "labelled messages are skipped")

	stored, err := repo.GetMessage(ctx, added[1].Id)
	require.NoError(t, err)
	assert.Equal(t, "supply", stored.Category)

	stored, err = repo.GetMessage(ctx, added[0].Id)
	require.NoError(t, err)
	assert.Equal(t, "movement", stored.Category)
}

func TestBatchProcessor_Force(t *testing.T) {
	repo, _ := setupTestDB(t)
	added := addTestMessages(t, repo, 2)
	for _, msg := range added {
		msg.Category = "supply"
	}
	_, err := repo.UpdateMessages(context.Background(), added...)
	require.NoError(t, err)

	classifier := mock.NewClassifier()
	classifier.DefaultCategory = "supply"
	bp := NewBatchProcessor(repo, classifier, true, 3, time.Millisecond)

	changed, err := bp.Process(context.Background(), added)
	require.NoError(t, err)
	assert.Zero(t, changed, "unchanged labels are not rewritten")
	assert.Equal(t, 2, classifier.CallCount())
}

func TestBatchProcessor_Retry(t *testing.T) {
	repo, _ := setupTestDB(t)
	added := addTestMessages(t, repo, 1)

	classifier := mock.NewClassifier()
	classifier.ClassifyFunc = func(ctx context.Context, text string) (string, error) {
		if classifier.CallCount() < 3 {
			return "", errors.New("temporary error")
		}
		return "communication", nil
	}
	bp := NewBatchProcessor(repo, classifier, false, 3, time.Millisecond)

	changed, err := bp.Process(context.Background(), added)
	require.NoError(t, err)
	assert.Equal(t, 1, changed)
	assert.Equal(t, 3, classifier.CallCount())
}

func TestBatchProcessor_RetriesExhausted(t *testing.T) {
	repo, _ := setupTestDB(t)
	added := addTestMessages(t, repo, 2)

	boom := errors.New("classifier offline")
	classifier := mock.NewClassifier()
	classifier.ClassifyFunc = func(ctx context.Context, text string) (string, error) {
		return "", boom
	}
	bp := NewBatchProcessor(repo, classifier, false, 2, time.Millisecond)

	_, err := bp.Process(context.Background(), added)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, classifier.CallCount())

	stored, err := repo.GetMessage(context.Background(), added[0].Id)
	require.NoError(t, err)
	assert.Empty(t, stored.Category)
}

func TestBatchProcessor_EmptyBatch(t *testing.T) {
	repo, _ := setupTestDB(t)
	bp := NewBatchProcessor(repo, mock.NewClassifier(), false, 1, time.Millisecond)

	changed, err := bp.Process(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, changed)
}

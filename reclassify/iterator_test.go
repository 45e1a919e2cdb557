package reclassify

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/poiesic/radiolex/core"
	"github.com/poiesic/radiolex/storage"
	"github.com/poiesic/radiolex/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) (storage.MessageRepository, storage.CheckpointRepository) {
	t.Helper()
	msgRepo, chkRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		msgRepo.Close()
		backend.Close()
	})
	return msgRepo, chkRepo
}

func addTestMessages(t *testing.T, repo storage.MessageRepository, n int) []*core.Message {
	t.Helper()
	ts := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	msgs := make([]*core.Message, n)
	for i := range msgs {
		msgs[i] = &core.Message{
			Timestamp: ts.Add(time.Duration(i) * time.Minute),
			Body:      fmt.Sprintf("сообщение номер %d", i),
			Area:      "Север",
			Frequency: 146.5,
		}
	}
	added, err := repo.AddMessages(context.Background(), msgs...)
	require.NoError(t, err)
	require.Len(t, added, n)
	return added
}

func TestMessageIterator_ForEach(t *testing.T) {
	repo, _ := setupTestDB(t)
	added := addTestMessages(t, repo, 10)

	it := NewMessageIterator(repo, 3)
	var sizes []int
	var seen []core.ID
	err := it.ForEach(context.Background(), 0, func(batch []*core.Message) error {
		sizes = append(sizes, len(batch))
		for _, msg := range batch {
			seen = append(seen, msg.Id)
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 3, 3, 1}, sizes)
	require.Len(t, seen, 10)
	for i, msg := range added {
		assert.Equal(t, msg.Id, seen[i], "messages are visited in arrival order")
	}
}

func TestMessageIterator_AfterID(t *testing.T) {
	repo, _ := setupTestDB(t)
	added := addTestMessages(t, repo, 6)

	it := NewMessageIterator(repo, 4)
	count := 0
	err := it.ForEach(context.Background(), added[3].Id, func(batch []*core.Message) error {
		for _, msg := range batch {
			assert.Greater(t, msg.Id, added[3].Id)
		}
		count += len(batch)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestMessageIterator_ExactMultiple(t *testing.T) {
	repo, _ := setupTestDB(t)
	addTestMessages(t, repo, 4)

	calls := 0
	err := NewMessageIterator(repo, 2).ForEach(context.Background(), 0, func(batch []*core.Message) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestMessageIterator_Empty(t *testing.T) {
	repo, _ := setupTestDB(t)

	calls := 0
	err := NewMessageIterator(repo, 0).ForEach(context.Background(), 0, func(batch []*core.Message) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Zero(t, calls)
}

func TestMessageIterator_StopsOnError(t *testing.T) {
	repo, _ := setupTestDB(t)
	addTestMessages(t, repo, 10)

	boom := errors.New("stop")
	calls := 0
	err := NewMessageIterator(repo, 3).ForEach(context.Background(), 0, func(batch []*core.Message) error {
		calls++
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestMessageIterator_ContextCanceled(t *testing.T) {
	repo, _ := setupTestDB(t)
	addTestMessages(t, repo, 10)

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := NewMessageIterator(repo, 3).ForEach(ctx, 0, func(batch []*core.Message) error {
		calls++
		cancel()
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

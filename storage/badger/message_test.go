package badger

import (
	"context"
	"testing"
	"time"

	"github.com/poiesic/radiolex/core"
	"github.com/poiesic/radiolex/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) storage.MessageRepository {
	t.Helper()
	msgRepo, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		msgRepo.Close()
		backend.Close()
	})
	return msgRepo
}

var baseTime = time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)

func testMessage(offset time.Duration, body, area string, freq float64, callSigns ...string) *core.Message {
	return &core.Message{
		Timestamp: baseTime.Add(offset),
		Body:      body,
		Area:      area,
		Frequency: freq,
		CallSigns: callSigns,
	}
}

func TestMessageBasics(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	added, err := repo.AddMessages(ctx, testMessage(0, "координаты цели пеленг", "Север", 146.5, "Сокол"))
	require.NoError(t, err)
	require.Len(t, added, 1)
	assert.NotZero(t, added[0].Id)
	assert.False(t, added[0].InsertedAt.IsZero())

	got, err := repo.GetMessage(ctx, added[0].Id)
	require.NoError(t, err)
	assert.Equal(t, "координаты цели пеленг", got.Body)
	assert.Equal(t, []string{"Сокол"}, got.CallSigns)
	assert.Equal(t, 146.5, got.Frequency)

	_, err = repo.GetMessage(ctx, 9999)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	count, err := repo.CountMessages(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestAddMessages_Deduplicates(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first, err := repo.AddMessages(ctx,
		testMessage(0, "пеленг", "Север", 146.5),
		testMessage(0, "пеленг", "Север", 146.5),
		testMessage(time.Minute, "пеленг", "Север", 146.5),
	)
	require.NoError(t, err)
	assert.Len(t, first, 2)

	again, err := repo.AddMessages(ctx, testMessage(0, "пеленг", "Север", 146.5))
	require.NoError(t, err)
	assert.Empty(t, again)

	count, err := repo.CountMessages(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestUpdateAndDeleteMessages(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	added, err := repo.AddMessages(ctx, testMessage(0, "раненый на позиции", "Юг", 150))
	require.NoError(t, err)
	msg := added[0]

	msg.Category = "casualties"
	msg.Timestamp = baseTime.Add(2 * time.Hour)
	_, err = repo.UpdateMessages(ctx, msg)
	require.NoError(t, err)

	got, err := repo.GetMessage(ctx, msg.Id)
	require.NoError(t, err)
	assert.Equal(t, "casualties", got.Category)

	old, err := repo.GetMessagesByDateRange(ctx, baseTime, baseTime.Add(time.Hour))
	require.NoError(t, err)
	assert.Empty(t, old)
	moved, err := repo.GetMessagesByDateRange(ctx, baseTime.Add(time.Hour), baseTime.Add(3*time.Hour))
	require.NoError(t, err)
	assert.Len(t, moved, 1)

	_, err = repo.UpdateMessages(ctx, &core.Message{Id: 4242, Timestamp: baseTime})
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, repo.DeleteMessages(ctx, msg.Id))
	_, err = repo.GetMessage(ctx, msg.Id)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.ErrorIs(t, repo.DeleteMessages(ctx, msg.Id), storage.ErrNotFound)

	// The fingerprint is released with the message.
	readded, err := repo.AddMessages(ctx, testMessage(2*time.Hour, "раненый на позиции", "Юг", 150))
	require.NoError(t, err)
	assert.Len(t, readded, 1)
}

func TestGetMessages(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	added, err := repo.AddMessages(ctx,
		testMessage(0, "первое", "Север", 1),
		testMessage(time.Minute, "второе", "Север", 1),
	)
	require.NoError(t, err)

	got, err := repo.GetMessages(ctx, added[0].Id, 9999, added[1].Id)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestGetMessagesByDateRange(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.AddMessages(ctx,
		testMessage(2*time.Hour, "третье", "Север", 1),
		testMessage(0, "первое", "Север", 1),
		testMessage(time.Hour, "второе", "Север", 1),
	)
	require.NoError(t, err)

	got, err := repo.GetMessagesByDateRange(ctx, baseTime, baseTime.Add(2*time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "первое", got[0].Body)
	assert.Equal(t, "второе", got[1].Body)
}

func TestQueryMessages(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.AddMessages(ctx,
		testMessage(0, "один", "Север", 146.5, "Сокол"),
		testMessage(time.Hour, "два", "Юг", 146.5, "Береза"),
		testMessage(2*time.Hour, "три", "Север", 150, "Сокол", "Ветер"),
		testMessage(3*time.Hour, "четыре", "Север", 146.5),
	)
	require.NoError(t, err)

	freq := 146.5
	tests := []struct {
		name   string
		filter storage.MessageFilter
		want   []string
	}{
		{"all", storage.MessageFilter{}, []string{"один", "два", "три", "четыре"}},
		{"inclusive bounds", storage.MessageFilter{From: baseTime.Add(time.Hour), To: baseTime.Add(2 * time.Hour)}, []string{"два", "три"}},
		{"from only", storage.MessageFilter{From: baseTime.Add(3 * time.Hour)}, []string{"четыре"}},
		{"area", storage.MessageFilter{Area: "Север"}, []string{"один", "три", "четыре"}},
		{"frequency", storage.MessageFilter{Frequency: &freq}, []string{"один", "два", "четыре"}},
		{"call-signs any", storage.MessageFilter{CallSigns: []string{"Ветер", "Береза"}}, []string{"два", "три"}},
		{"combined", storage.MessageFilter{Area: "Север", CallSigns: []string{"Сокол"}, Frequency: &freq}, []string{"один"}},
		{"no match", storage.MessageFilter{Area: "Восток"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.QueryMessages(ctx, tt.filter)
			require.NoError(t, err)
			bodies := make([]string, 0, len(got))
			for _, m := range got {
				bodies = append(bodies, m.Body)
			}
			assert.Equal(t, tt.want, bodies)
		})
	}

	_, err = repo.QueryMessages(ctx, storage.MessageFilter{From: baseTime, To: baseTime.Add(-time.Hour)})
	assert.ErrorIs(t, err, storage.ErrInvalidQuery)
}

func TestListMessages(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	// Arrival order differs from timestamp order.
	added, err := repo.AddMessages(ctx,
		testMessage(3*time.Hour, "a", "", 1),
		testMessage(0, "b", "", 1),
		testMessage(time.Hour, "c", "", 1),
	)
	require.NoError(t, err)

	all, err := repo.ListMessages(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "a", all[0].Body)
	assert.Equal(t, "c", all[2].Body)

	page, err := repo.ListMessages(ctx, added[0].Id, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "b", page[0].Body)

	rest, err := repo.ListMessages(ctx, added[2].Id, 10)
	require.NoError(t, err)
	assert.Empty(t, rest)
}

func TestQueryMessages_Cancelled(t *testing.T) {
	repo := newTestRepo(t)
	_, err := repo.AddMessages(context.Background(), testMessage(0, "a", "", 1))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = repo.QueryMessages(ctx, storage.MessageFilter{})
	assert.ErrorIs(t, err, context.Canceled)
}

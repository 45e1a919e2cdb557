package mock

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifierDefault(t *testing.T) {
	c := NewClassifier()
	got, err := c.Classify(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, "general", got)
	assert.Equal(t, 1, c.CallCount())
}

func TestClassifierFuncAndReset(t *testing.T) {
	c := NewClassifier()
	boom := errors.New("boom")
	c.ClassifyFunc = func(ctx context.Context, text string) (string, error) {
		return "", boom
	}
	_, err := c.Classify(context.Background(), "x")
	assert.ErrorIs(t, err, boom)

	c.Reset()
	assert.Equal(t, 0, c.CallCount())
	got, err := c.Classify(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, "general", got)
}

func TestClassifierConcurrentCalls(t *testing.T) {
	c := NewClassifier()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = c.Classify(context.Background(), "x")
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, c.CallCount())
}

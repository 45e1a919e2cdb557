package reclassify

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProgressTracker_Basic(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 100, 10)

	tracker.Start()
	tracker.Increment(25)
	tracker.Increment(25)
	tracker.Increment(70)

	assert.Equal(t, 100, tracker.Current(), "progress is capped at total")
	assert.Greater(t, tracker.Elapsed(), time.Duration(0))

	output := buf.String()
	assert.Contains(t, output, "100/100")
	assert.Contains(t, output, "100.0%")
}

func TestProgressTracker_ReportInterval(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 1000, 100)

	tracker.Start()
	tracker.Increment(50)
	assert.Empty(t, buf.String(), "below the interval nothing is reported")

	tracker.Increment(50)
	assert.Contains(t, buf.String(), "100/1000")
}

func TestProgressTracker_Finish(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 100, 10)

	tracker.Start()
	tracker.Increment(75)
	tracker.Finish()

	output := buf.String()
	assert.Contains(t, output, "75/100", "finish reports actual progress")
	assert.Contains(t, output, "\n")
}

func TestProgressTracker_NotStarted(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 100, 0)

	tracker.Increment(10)
	tracker.Finish()

	assert.Zero(t, tracker.Current())
	assert.Zero(t, tracker.Elapsed())
	assert.Empty(t, buf.String())
}

package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"time"

	"github.com/poiesic/radiolex/core"
	"github.com/poiesic/radiolex/ingestion"
)

// maxLineSize bounds a single JSON Lines record.
const maxLineSize = 1 << 20

// messageRecord is the JSON Lines import format.
type messageRecord struct {
	Timestamp time.Time `json:"timestamp"`
	Body      string    `json:"body"`
	Area      string    `json:"area"`
	Frequency float64   `json:"frequency"`
	CallSigns []string  `json:"call_signs"`
	Category  string    `json:"category,omitempty"`
}

func (r messageRecord) message() *core.Message {
	return &core.Message{
		Timestamp: r.Timestamp,
		Body:      r.Body,
		Area:      r.Area,
		Frequency: r.Frequency,
		CallSigns: r.CallSigns,
		Category:  r.Category,
	}
}

type importStats struct {
	Read    int `json:"read"`
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
}

// decodeMessages returns an iterator over the messages in a JSON Lines stream.
// Blank lines are ignored. With skipInvalid, undecodable or invalid lines are
// logged and yielded as nil; otherwise they end the sequence with an error.
func decodeMessages(r io.Reader, skipInvalid bool) iter.Seq2[*core.Message, error] {
	return func(yield func(*core.Message, error) bool) {
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
		line := 0
		for scanner.Scan() {
			line++
			data := scanner.Bytes()
			if len(data) == 0 {
				continue
			}

			var rec messageRecord
			err := json.Unmarshal(data, &rec)
			var msg *core.Message
			if err == nil {
				msg = rec.message()
				err = core.ValidateMessage(msg)
			}
			if err != nil {
				err = fmt.Errorf("line %d: %w", line, err)
				if !skipInvalid {
					yield(nil, err)
					return
				}
				slog.Warn("skipping invalid line", "err", err)
				msg = nil
			}
			if !yield(msg, nil) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			yield(nil, err)
		}
	}
}

// ingestBatched reads from a source iterator and ingests messages in batches.
func ingestBatched(ctx context.Context, pipeline *ingestion.Pipeline, source iter.Seq2[*core.Message, error], batchSize int) (importStats, error) {
	var stats importStats
	batch := make([]*core.Message, 0, batchSize)

	flush := func() error {
		added, err := pipeline.Ingest(ctx, batch)
		if err != nil {
			return err
		}
		stats.Added += len(added)
		batch = batch[:0]
		return nil
	}

	for msg, err := range source {
		if err != nil {
			return stats, err
		}
		stats.Read++
		if msg == nil {
			stats.Skipped++
			continue
		}
		batch = append(batch, msg)
		if len(batch) == batchSize {
			if err := flush(); err != nil {
				return stats, err
			}
		}
	}

	// Process any remaining messages
	if len(batch) > 0 {
		if err := flush(); err != nil {
			return stats, err
		}
	}

	pipeline.Wait()
	return stats, nil
}

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

package search

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/radiolex/classify"
	"github.com/poiesic/radiolex/core"
	"github.com/poiesic/radiolex/storage"
)

// Filters narrows the candidate messages of a search. Zero-valued fields do
// not filter.
type Filters struct {
	From      time.Time // Inclusive
	To        time.Time // Inclusive
	Area      string
	Frequency *float64
	CallSigns []string // Any of
	Category  string
}

// MessageFilter returns the part of f the message store can evaluate.
func (f Filters) MessageFilter() storage.MessageFilter {
	return storage.MessageFilter{
		From:      f.From,
		To:        f.To,
		Area:      f.Area,
		Frequency: f.Frequency,
		CallSigns: f.CallSigns,
	}
}

// QueryFilterer fetches candidate messages and applies the category filter.
// Store-side filters run first; classification runs only on what is left.
type QueryFilterer struct {
	messages   storage.MessageRepository
	classifier classify.Classifier
	pool       *ants.Pool
	logger     *slog.Logger
}

// NewQueryFilterer creates a filterer classifying on pool.
func NewQueryFilterer(messages storage.MessageRepository, classifier classify.Classifier, pool *ants.Pool, logger *slog.Logger) *QueryFilterer {
	if logger == nil {
		logger = slog.Default()
	}
	return &QueryFilterer{
		messages:   messages,
		classifier: classifier,
		pool:       pool,
		logger:     logger,
	}
}

// Fetch returns the messages matching the store-side part of filters.
func (f *QueryFilterer) Fetch(ctx context.Context, filters Filters) ([]*core.Message, error) {
	msgs, err := f.messages.QueryMessages(ctx, filters.MessageFilter())
	if err != nil {
		f.logger.Error("error querying messages", "err", err)
		return nil, err
	}
	return msgs, nil
}

// Filter returns the messages satisfying every supplied filter.
func (f *QueryFilterer) Filter(ctx context.Context, filters Filters) ([]*core.Message, error) {
	msgs, err := f.Fetch(ctx, filters)
	if err != nil {
		return nil, err
	}
	return f.FilterCategory(ctx, msgs, filters.Category)
}

// FilterCategory keeps the messages whose category is category. An empty
// category returns msgs unchanged.
func (f *QueryFilterer) FilterCategory(ctx context.Context, msgs []*core.Message, category string) ([]*core.Message, error) {
	if category == "" || len(msgs) == 0 {
		return msgs, nil
	}
	labels, err := f.Categorize(ctx, msgs)
	if err != nil {
		return nil, err
	}
	out := make([]*core.Message, 0, len(msgs))
	for i, m := range msgs {
		if labels[i] == category {
			out = append(out, m)
		}
	}
	return out, nil
}

// Categorize returns the category of each message, in order. A stored
// category is used as is; the rest are classified concurrently. The first
// classifier error aborts the remaining work and is returned.
func (f *QueryFilterer) Categorize(ctx context.Context, msgs []*core.Message) ([]string, error) {
	labels := make([]string, len(msgs))

	parent := ctx
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	fail := func(err error) {
		once.Do(func() {
			firstErr = err
			cancel()
		})
	}

	for i, msg := range msgs {
		if msg.Category != "" {
			labels[i] = msg.Category
			continue
		}
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		err := f.pool.Submit(func() {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			label, err := f.classifier.Classify(ctx, msg.Body)
			if err != nil {
				f.logger.Error("error classifying message", "id", msg.Id, "err", err)
				fail(err)
				return
			}
			labels[i] = label
		})
		if err != nil {
			wg.Done()
			fail(err)
			break
		}
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := parent.Err(); err != nil {
		return nil, err
	}
	return labels, nil
}

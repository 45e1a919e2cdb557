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

package mock

import (
	"context"
	"sync/atomic"

	"github.com/poiesic/radiolex/classify"
)

// Classifier is a configurable classify.Classifier for tests.
type Classifier struct {
	// ClassifyFunc, if set, is called by Classify.
	// If nil, Classify returns DefaultCategory.
	ClassifyFunc func(ctx context.Context, text string) (string, error)

	// DefaultCategory is returned when ClassifyFunc is nil.
	DefaultCategory string

	callCount atomic.Int64
}

var _ classify.Classifier = (*Classifier)(nil)

// NewClassifier creates a mock classifier that labels everything "general".
func NewClassifier() *Classifier {
	return &Classifier{DefaultCategory: "general"}
}

// Classify records the call and delegates to ClassifyFunc.
func (m *Classifier) Classify(ctx context.Context, text string) (string, error) {
	m.callCount.Add(1)
	if m.ClassifyFunc != nil {
		return m.ClassifyFunc(ctx, text)
	}
	return m.DefaultCategory, nil
}

// CallCount returns the number of times Classify was called.
func (m *Classifier) CallCount() int {
	return int(m.callCount.Load())
}

// Reset clears the call count and custom function.
func (m *Classifier) Reset() {
	m.callCount.Store(0)
	m.ClassifyFunc = nil
}

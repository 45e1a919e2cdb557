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

package storage

import (
	"math"
	"time"

	"github.com/poiesic/radiolex/core"
)

// FrequencyTolerance is the largest difference at which two frequencies are
// considered the same channel.
const FrequencyTolerance = 1e-6

// MessageFilter narrows a message set. Zero-valued fields do not filter.
type MessageFilter struct {
	From      time.Time // Inclusive lower bound on Timestamp
	To        time.Time // Inclusive upper bound on Timestamp
	Area      string
	Frequency *float64
	CallSigns []string // Matches messages involving any of these call-signs
}

// IsZero reports whether the filter accepts every message.
func (f MessageFilter) IsZero() bool {
	return f.From.IsZero() && f.To.IsZero() && f.Area == "" && f.Frequency == nil && len(f.CallSigns) == 0
}

// Validate checks that the date bounds are ordered.
func (f MessageFilter) Validate() error {
	if !f.From.IsZero() && !f.To.IsZero() && f.To.Before(f.From) {
		return ErrInvalidQuery
	}
	return nil
}

// Matches reports whether msg satisfies every supplied criterion.
func (f MessageFilter) Matches(msg *core.Message) bool {
	if msg == nil {
		return false
	}
	if !f.From.IsZero() && msg.Timestamp.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && msg.Timestamp.After(f.To) {
		return false
	}
	if f.Area != "" && msg.Area != f.Area {
		return false
	}
	if f.Frequency != nil && math.Abs(msg.Frequency-*f.Frequency) > FrequencyTolerance {
		return false
	}
	if len(f.CallSigns) > 0 {
		found := false
		for _, cs := range f.CallSigns {
			if msg.HasCallSign(cs) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Apply returns the messages that match f, preserving order. A zero filter
// returns msgs unchanged.
func (f MessageFilter) Apply(msgs []*core.Message) []*core.Message {
	if f.IsZero() {
		return msgs
	}
	out := make([]*core.Message, 0, len(msgs))
	for _, m := range msgs {
		if f.Matches(m) {
			out = append(out, m)
		}
	}
	return out
}

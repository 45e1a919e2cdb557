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

package core

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// ValidateMessage validates a Message according to domain rules.
//
// Validation rules:
//   - Timestamp must be set and not in the future
//   - Frequency must be finite and non-negative
//   - Call-signs must not be blank
//
// NOT validated:
//   - Body (an empty transcription is a valid intercept)
//   - Category (populated by classification)
//   - ID (0 is valid until the store assigns one)
func ValidateMessage(msg *Message) error {
	if msg == nil {
		return fmt.Errorf("%w: message is nil", ErrInvalidMessage)
	}

	if !IsValidTimestamp(msg.Timestamp) {
		return fmt.Errorf("%w: %w", ErrInvalidMessage, ErrInvalidTimestamp)
	}

	if math.IsNaN(msg.Frequency) || math.IsInf(msg.Frequency, 0) || msg.Frequency < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidMessage, ErrInvalidFrequency)
	}

	for i, cs := range msg.CallSigns {
		if strings.TrimSpace(cs) == "" {
			return fmt.Errorf("%w: %w at position %d", ErrInvalidMessage, ErrEmptyCallSign, i)
		}
	}

	return nil
}

// IsValidTimestamp checks if a timestamp is valid (set and not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.IsZero() && !ts.After(time.Now())
}

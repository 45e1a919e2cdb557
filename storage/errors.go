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

import "errors"

var (
	// ErrNotFound is returned when a message ID is not present in the store.
	ErrNotFound = errors.New("message not found")

	// ErrStorageClosed is returned by operations on a closed backend.
	ErrStorageClosed = errors.New("storage is closed")

	// ErrInvalidQuery reports a malformed MessageQuery, such as an inverted date range.
	ErrInvalidQuery = errors.New("invalid query parameters")

	// ErrInvalidCheckpoint reports a nil checkpoint or one without a processor type.
	ErrInvalidCheckpoint = errors.New("checkpoint requires a processor type")

	// ErrSerializationFailed wraps mus encoding and decoding failures.
	ErrSerializationFailed = errors.New("serialization failed")
)

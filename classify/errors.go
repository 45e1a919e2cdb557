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

package classify

import "errors"

var (
	// ErrVocabularyRequired is returned when a classifier is built without a vocabulary.
	ErrVocabularyRequired = errors.New("vocabulary is required")

	// ErrUnknownBackend indicates a Config naming an unsupported classifier backend.
	ErrUnknownBackend = errors.New("unknown classifier backend")

	// ErrInvalidConfig indicates an incomplete or inconsistent classifier configuration.
	ErrInvalidConfig = errors.New("invalid classifier config")
)

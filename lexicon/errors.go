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

package lexicon

import "errors"

var (
	// ErrInvalidWeight indicates a domain weight that is not a positive number.
	ErrInvalidWeight = errors.New("domain weight must be positive")

	// ErrEmptyCategory indicates a category definition without a name.
	ErrEmptyCategory = errors.New("category name cannot be empty")

	// ErrDuplicateCategory indicates two categories with the same name.
	ErrDuplicateCategory = errors.New("duplicate category")
)

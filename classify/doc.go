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

// Package classify assigns category labels to message bodies.
//
// A Classifier maps a single message body to one category name drawn from a
// lexicon.Vocabulary. Two implementations ship with radiolex:
//
//   - RuleClassifier (this package) counts category marker terms and picks
//     the category with the most hits. It is deterministic, fast, and the
//     default.
//   - classify/openai asks an OpenAI-compatible chat model to pick a
//     category, constrained to the vocabulary's category names.
//
// Classification is the most expensive filter in a search, so the search
// engine applies it last and fans calls out over a worker pool. Classifier
// implementations must be safe for concurrent use.
package classify

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

// Package search provides lexical relevance search and corpus analytics over
// stored radio-intercept messages.
//
// The Engine runs a staged pipeline for every query:
//   - Query analysis: tokenize the query and extract weighted keywords
//   - Candidate fetch: date, area, frequency, and call-sign filters evaluated
//     by the message store
//   - Category filter: classification of the remaining candidates, fanned
//     out over a worker pool
//   - IDF estimation from a bounded random sample of the candidates
//   - Weighted cosine scoring, snippet extraction, and ranking
//
// The IDF table is rebuilt on every call rather than maintained as an index.
// Scores for the same query can therefore shift slightly while messages are
// being added; ranking is approximate, not linearizable.
//
// Besides search, the engine exposes read-only analytics over the same
// primitives: corpus keyword analysis, category summaries, typical phrases,
// greedy keyword clustering, and per-term breakdowns. "Nothing found" is
// always an empty result, never an error; store and classifier failures are
// returned as errors.
package search

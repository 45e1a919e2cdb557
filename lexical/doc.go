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

// Package lexical implements the term-level scoring and analytics primitives
// used by the search engine.
//
// An Analyzer is bound to an immutable lexicon.Vocabulary and exposes:
//
//   - Tokenize: lowercase, split on whitespace and punctuation, drop short
//     tokens and stop words.
//   - Keywords: rank tokens by domain weight times in-document frequency.
//   - IDFTable: estimate inverse document frequency from a bounded sample.
//   - Similarity: weighted cosine similarity between a query and a document.
//   - Snippet: a keyword-centred excerpt of a document.
//   - Opposites: antonym expansion of a query.
//   - AnalyzeCorpus, MinePhrases, Cluster, TermStats: corpus-wide read paths.
//
// Every operation is a pure function of its inputs and the vocabulary. No
// state is shared between calls, so an Analyzer can serve concurrent callers
// without locking. The IDF table in particular is rebuilt from a fresh sample
// on each call and is never cached; scores for the same query may drift
// slightly while the corpus grows.
package lexical

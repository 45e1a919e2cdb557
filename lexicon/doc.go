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

// Package lexicon holds the vocabulary tables consumed by the lexical engine.
//
// A Vocabulary bundles the stop-word set, the domain weight table, the antonym
// table, and the category marker lists. Vocabularies are immutable once built
// and are injected into analyzers and classifiers at construction time, so
// several engines with different vocabularies can coexist in one process.
//
// Vocabularies are loaded from YAML:
//
//	default_category: general
//	stop_words: [для, что]
//	domain_weights:
//	  пеленг: 2.0
//	antonyms:
//	  атака: [отступление, отход]
//	categories:
//	  - name: coordinates
//	    markers: [координаты, пеленг]
//
// Default returns the built-in Russian vocabulary.
package lexicon

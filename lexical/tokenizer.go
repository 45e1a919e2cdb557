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

package lexical

import (
	"iter"
	"strings"
	"unicode"
	"unicode/utf8"
)

const separators = ".,!?;:()[]{}<>\"'`«»„“”‘’-‐–—―…/\\|*+=&^%$#@~_"

func isSeparator(r rune) bool {
	return unicode.IsSpace(r) || strings.ContainsRune(separators, r)
}

// Tokens yields the tokens of text in original word order. The sequence is
// restartable.
func (a *Analyzer) Tokens(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		if text == "" {
			return
		}
		for _, field := range strings.FieldsFunc(strings.ToLower(text), isSeparator) {
			if utf8.RuneCountInString(field) <= MinTokenLength || a.vocab.IsStopWord(field) {
				continue
			}
			if !yield(field) {
				return
			}
		}
	}
}

// Tokenize returns the tokens of text. Empty input yields an empty slice.
func (a *Analyzer) Tokenize(text string) []string {
	out := make([]string, 0, 8)
	for tok := range a.Tokens(text) {
		out = append(out, tok)
	}
	return out
}

// termCounts returns per-token frequencies and first-occurrence order.
func termCounts(tokens []string) (map[string]int, []string) {
	counts := make(map[string]int, len(tokens))
	order := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if counts[tok] == 0 {
			order = append(order, tok)
		}
		counts[tok]++
	}
	return counts, order
}

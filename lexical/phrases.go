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
	"slices"
	"strings"

	"github.com/poiesic/radiolex/core"
)

// MinePhrases counts contiguous token n-grams with minN <= n <= maxN across
// texts and returns the topN most frequent. Ties keep first-occurrence order.
// A topN of zero or less returns every phrase.
func (a *Analyzer) MinePhrases(texts []string, minN, maxN, topN int) []core.Phrase {
	minN = max(minN, 1)
	maxN = max(maxN, minN)

	counts := make(map[string]int)
	var order []string
	for _, text := range texts {
		tokens := a.Tokenize(text)
		for n := minN; n <= maxN; n++ {
			for i := 0; i+n <= len(tokens); i++ {
				gram := strings.Join(tokens[i:i+n], " ")
				if counts[gram] == 0 {
					order = append(order, gram)
				}
				counts[gram]++
			}
		}
	}

	phrases := make([]core.Phrase, 0, len(order))
	for _, gram := range order {
		phrases = append(phrases, core.Phrase{Text: gram, Count: counts[gram]})
	}
	slices.SortStableFunc(phrases, func(x, y core.Phrase) int {
		return y.Count - x.Count
	})

	if topN > 0 && len(phrases) > topN {
		phrases = phrases[:topN]
	}
	return phrases
}

// PhraseTexts returns the text of each phrase.
func PhraseTexts(phrases []core.Phrase) []string {
	out := make([]string, len(phrases))
	for i, p := range phrases {
		out[i] = p.Text
	}
	return out
}

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

	"github.com/poiesic/radiolex/core"
)

// Keywords ranks tokens by weight times frequency and returns at most max of
// them. Ties keep first-occurrence order. A max of zero or less returns all.
func (a *Analyzer) Keywords(tokens []string, max int) []core.Keyword {
	counts, order := termCounts(tokens)
	keywords := make([]core.Keyword, 0, len(order))
	for _, term := range order {
		keywords = append(keywords, core.Keyword{
			Term:      term,
			Frequency: counts[term],
			Weight:    a.vocab.Weight(term),
		})
	}

	slices.SortStableFunc(keywords, func(x, y core.Keyword) int {
		sx, sy := x.Score(), y.Score()
		switch {
		case sx > sy:
			return -1
		case sx < sy:
			return 1
		}
		return 0
	})

	if max > 0 && len(keywords) > max {
		keywords = keywords[:max]
	}
	return keywords
}

// ExtractKeywords tokenizes text and returns its top keywords.
func (a *Analyzer) ExtractKeywords(text string, max int) []core.Keyword {
	return a.Keywords(a.Tokenize(text), max)
}

// KeywordSet returns the terms of the top max keywords of text as a set.
func (a *Analyzer) KeywordSet(text string, max int) map[string]struct{} {
	keywords := a.ExtractKeywords(text, max)
	set := make(map[string]struct{}, len(keywords))
	for _, kw := range keywords {
		set[kw.Term] = struct{}{}
	}
	return set
}

// Terms returns the term strings of keywords in order.
func Terms(keywords []core.Keyword) []string {
	out := make([]string, len(keywords))
	for i, kw := range keywords {
		out[i] = kw.Term
	}
	return out
}

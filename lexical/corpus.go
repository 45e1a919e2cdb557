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
	"cmp"
	"math"
	"slices"

	"github.com/poiesic/radiolex/core"
)

// CorpusOptions bounds a corpus keyword analysis.
type CorpusOptions struct {
	KeywordsPerMessage int // Keywords extracted from each message
	Limit              int // Maximum analyses returned
	RelatedCallSigns   int // Maximum call-signs reported per term
	RelatedAreas       int // Maximum areas reported per term
}

// DefaultCorpusOptions returns the standard analysis bounds.
func DefaultCorpusOptions() CorpusOptions {
	return CorpusOptions{
		KeywordsPerMessage: 20,
		Limit:              100,
		RelatedCallSigns:   10,
		RelatedAreas:       5,
	}
}

type termAccumulator struct {
	analysis  core.KeywordAnalysis
	callSigns []string
	areas     []string
}

// AnalyzeCorpus aggregates keyword statistics over messages and returns them
// ranked by TF-IDF, then raw frequency.
func (a *Analyzer) AnalyzeCorpus(messages []*core.Message, opts CorpusOptions) []core.KeywordAnalysis {
	if len(messages) == 0 {
		return []core.KeywordAnalysis{}
	}

	terms := make(map[string]*termAccumulator)
	order := make([]string, 0)
	sum := 0

	for _, msg := range messages {
		if msg == nil {
			continue
		}
		for _, kw := range a.ExtractKeywords(msg.Body, opts.KeywordsPerMessage) {
			acc, ok := terms[kw.Term]
			if !ok {
				acc = &termAccumulator{analysis: core.KeywordAnalysis{
					Term:      kw.Term,
					FirstSeen: msg.Timestamp,
					LastSeen:  msg.Timestamp,
				}}
				terms[kw.Term] = acc
				order = append(order, kw.Term)
			}
			acc.analysis.Frequency += kw.Frequency
			acc.analysis.DocumentCount++
			sum += kw.Frequency

			for _, cs := range msg.CallSigns {
				if cs != "" && !slices.Contains(acc.callSigns, cs) {
					acc.callSigns = append(acc.callSigns, cs)
				}
			}
			if msg.Area != "" && !slices.Contains(acc.areas, msg.Area) {
				acc.areas = append(acc.areas, msg.Area)
			}
			if msg.Timestamp.Before(acc.analysis.FirstSeen) {
				acc.analysis.FirstSeen = msg.Timestamp
			}
			if msg.Timestamp.After(acc.analysis.LastSeen) {
				acc.analysis.LastSeen = msg.Timestamp
			}
		}
	}

	if sum == 0 {
		return []core.KeywordAnalysis{}
	}

	total := float64(len(messages))
	results := make([]core.KeywordAnalysis, 0, len(order))
	for _, term := range order {
		acc := terms[term]
		tf := float64(acc.analysis.Frequency) / float64(sum)
		idf := math.Log(total / float64(acc.analysis.DocumentCount+1))
		acc.analysis.TFIDF = tf * idf * a.vocab.Weight(term)
		acc.analysis.RelatedCallSigns = truncate(acc.callSigns, opts.RelatedCallSigns)
		acc.analysis.RelatedAreas = truncate(acc.areas, opts.RelatedAreas)
		results = append(results, acc.analysis)
	}

	slices.SortStableFunc(results, func(x, y core.KeywordAnalysis) int {
		if c := cmp.Compare(y.TFIDF, x.TFIDF); c != 0 {
			return c
		}
		return cmp.Compare(y.Frequency, x.Frequency)
	})

	if opts.Limit > 0 && len(results) > opts.Limit {
		results = results[:opts.Limit]
	}
	return results
}

func truncate(in []string, n int) []string {
	if n > 0 && len(in) > n {
		in = in[:n]
	}
	return slices.Clone(in)
}

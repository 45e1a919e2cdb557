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

import "math"

const (
	// MinIDF lower-bounds the sampled search IDF so that terms present in most
	// documents still carry a small positive weight.
	MinIDF = 0.1

	// FallbackCorpusSize is used for the fallback IDF when the total document
	// count is unknown.
	FallbackCorpusSize = 1000
)

// EstimateIDF builds a term to IDF mapping from a sample of document bodies.
// total is the true number of documents in scope; document frequencies seen
// in the sample are scaled up to it. An empty sample yields an empty map.
func (a *Analyzer) EstimateIDF(sample []string, total int) map[string]float64 {
	if len(sample) == 0 {
		return map[string]float64{}
	}
	if total < len(sample) {
		total = len(sample)
	}

	df := make(map[string]int)
	for _, body := range sample {
		seen := make(map[string]struct{})
		for tok := range a.Tokens(body) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	scale := float64(total) / float64(len(sample))
	idf := make(map[string]float64, len(df))
	for term, n := range df {
		idf[term] = inverseFrequency(float64(total), float64(n)*scale)
	}
	return idf
}

// FallbackIDF is the IDF assigned to terms absent from the sample.
func FallbackIDF(total int) float64 {
	n := float64(total)
	if total <= 0 {
		n = FallbackCorpusSize
	}
	return math.Max(math.Log(n), MinIDF)
}

func inverseFrequency(total, df float64) float64 {
	return math.Max(math.Log(total/(df+1)), MinIDF)
}

// IDFTable is a sampled IDF estimate with a fallback for unseen terms.
type IDFTable struct {
	values   map[string]float64
	fallback float64
}

// IDFTable estimates IDF over sample and attaches the fallback for total.
func (a *Analyzer) IDFTable(sample []string, total int) *IDFTable {
	return &IDFTable{
		values:   a.EstimateIDF(sample, total),
		fallback: FallbackIDF(total),
	}
}

// Get returns the IDF of term.
func (t *IDFTable) Get(term string) float64 {
	if v, ok := t.values[term]; ok {
		return v
	}
	return t.fallback
}

// Len returns the number of sampled terms.
func (t *IDFTable) Len() int {
	return len(t.values)
}

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
	"math"

	"github.com/poiesic/radiolex/core"
)

// Query is a tokenized search query with its extracted keywords.
type Query struct {
	Text     string
	Tokens   []string
	Keywords []core.Keyword
}

// NewQuery tokenizes text and extracts up to maxKeywords keywords.
func (a *Analyzer) NewQuery(text string, maxKeywords int) Query {
	tokens := a.Tokenize(text)
	return Query{
		Text:     text,
		Tokens:   tokens,
		Keywords: a.Keywords(tokens, maxKeywords),
	}
}

// Empty reports whether the query has no usable tokens.
func (q Query) Empty() bool {
	return len(q.Tokens) == 0
}

// Match is the outcome of scoring one document against a query.
type Match struct {
	Score           float64
	MatchedKeywords []string
	Contributions   map[string]float64
}

// Similarity computes the weighted cosine similarity between q and a
// document's tokens. Term weights are tf times idf; terms that are query
// keywords are additionally multiplied by their domain weight on both sides.
// The score is 0 when either vector has zero norm and is clamped to [0,1].
func (a *Analyzer) Similarity(q Query, docTokens []string, idf *IDFTable) Match {
	if len(q.Tokens) == 0 || len(docTokens) == 0 {
		return Match{}
	}

	qtf, qorder := termCounts(q.Tokens)
	dtf, dorder := termCounts(docTokens)

	boost := make(map[string]float64, len(q.Keywords))
	for _, kw := range q.Keywords {
		boost[kw.Term] = kw.Weight
	}

	weights := func(term string) (float64, float64) {
		v := idf.Get(term)
		qw, dw := float64(qtf[term])*v, float64(dtf[term])*v
		if b, ok := boost[term]; ok {
			qw *= b
			dw *= b
		}
		return qw, dw
	}

	var dot, qnorm, dnorm float64
	for _, term := range qorder {
		qw, dw := weights(term)
		qnorm += qw * qw
		dnorm += dw * dw
		dot += qw * dw
	}
	for _, term := range dorder {
		if qtf[term] > 0 {
			continue
		}
		_, dw := weights(term)
		dnorm += dw * dw
	}

	if qnorm == 0 || dnorm == 0 {
		return Match{}
	}
	denom := math.Sqrt(qnorm) * math.Sqrt(dnorm)

	m := Match{
		Score:         clamp01(dot / denom),
		Contributions: make(map[string]float64),
	}
	for _, kw := range q.Keywords {
		if dtf[kw.Term] == 0 {
			continue
		}
		qw, dw := weights(kw.Term)
		m.MatchedKeywords = append(m.MatchedKeywords, kw.Term)
		m.Contributions[kw.Term] = qw * dw / denom
	}
	return m
}

// SimilarityText tokenizes body and scores it against q.
func (a *Analyzer) SimilarityText(q Query, body string, idf *IDFTable) Match {
	return a.Similarity(q, a.Tokenize(body), idf)
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

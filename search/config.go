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

package search

import (
	"fmt"
	"runtime"

	"github.com/poiesic/radiolex/lexical"
)

// Config holds the policy limits of the search engine.
type Config struct {
	// IDFSampleSize caps the number of candidate bodies used to estimate IDF.
	// Default: 5000
	IDFSampleSize int

	// QueryKeywords is the number of keywords extracted from a query.
	// Default: 10
	QueryKeywords int

	// SnippetLength is the target snippet length in characters.
	// Default: 200
	SnippetLength int

	// DefaultMinSimilarity is the score threshold for example and
	// similar-message searches.
	// Default: 0.1
	DefaultMinSimilarity float64

	// AnalysisKeywords is the number of keywords taken from each message
	// during corpus keyword analysis.
	// Default: 20
	AnalysisKeywords int

	// AnalysisLimit caps the number of keyword analyses returned.
	// Default: 100
	AnalysisLimit int

	// RelatedCallSigns and RelatedAreas cap the related entities reported per keyword.
	// Defaults: 10 and 5
	RelatedCallSigns int
	RelatedAreas     int

	// ClusterMessageCap is the number of messages, in arrival order, considered by clustering.
	// Default: 1000
	ClusterMessageCap int

	// ClusterKeywords is the number of keywords per message used for clustering.
	// Default: 5
	ClusterKeywords int

	// ClusterMinShared is the keyword overlap needed to join a cluster.
	// Default: 2
	ClusterMinShared int

	// ClusterMinSize is the smallest cluster returned.
	// Default: 3
	ClusterMinSize int

	// PhraseMinN and PhraseMaxN bound the n-gram lengths mined for phrases.
	// Defaults: 2 and 3
	PhraseMinN int
	PhraseMaxN int

	// CategoryKeywords and CategoryPhrases cap the exemplars in category summaries.
	// Defaults: 5 and 3
	CategoryKeywords int
	CategoryPhrases  int

	// ClassifyPoolSize is the number of concurrent classifier calls.
	// Default: runtime.NumCPU() / 2, with a minimum of 1
	ClassifyPoolSize int
}

// DefaultConfig returns a Config with the standard policy limits.
func DefaultConfig() *Config {
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	return &Config{
		IDFSampleSize:        5000,
		QueryKeywords:        10,
		SnippetLength:        200,
		DefaultMinSimilarity: 0.1,
		AnalysisKeywords:     20,
		AnalysisLimit:        100,
		RelatedCallSigns:     10,
		RelatedAreas:         5,
		ClusterMessageCap:    1000,
		ClusterKeywords:      5,
		ClusterMinShared:     2,
		ClusterMinSize:       3,
		PhraseMinN:           2,
		PhraseMaxN:           3,
		CategoryKeywords:     5,
		CategoryPhrases:      3,
		ClassifyPoolSize:     poolSize,
	}
}

// Validate checks that every limit is usable.
func (c *Config) Validate() error {
	positive := []struct {
		name  string
		value int
	}{
		{"IDFSampleSize", c.IDFSampleSize},
		{"QueryKeywords", c.QueryKeywords},
		{"SnippetLength", c.SnippetLength},
		{"AnalysisKeywords", c.AnalysisKeywords},
		{"AnalysisLimit", c.AnalysisLimit},
		{"ClusterMessageCap", c.ClusterMessageCap},
		{"ClusterKeywords", c.ClusterKeywords},
		{"ClusterMinShared", c.ClusterMinShared},
		{"ClusterMinSize", c.ClusterMinSize},
		{"PhraseMinN", c.PhraseMinN},
		{"ClassifyPoolSize", c.ClassifyPoolSize},
	}
	for _, p := range positive {
		if p.value < 1 {
			return fmt.Errorf("%w: %s must be positive", ErrInvalidConfig, p.name)
		}
	}
	if c.PhraseMaxN < c.PhraseMinN {
		return fmt.Errorf("%w: PhraseMaxN must be at least PhraseMinN", ErrInvalidConfig)
	}
	if c.DefaultMinSimilarity < 0 || c.DefaultMinSimilarity > 1 {
		return fmt.Errorf("%w: DefaultMinSimilarity must be within [0,1]", ErrInvalidConfig)
	}
	if c.RelatedCallSigns < 0 || c.RelatedAreas < 0 || c.CategoryKeywords < 0 || c.CategoryPhrases < 0 {
		return fmt.Errorf("%w: limits cannot be negative", ErrInvalidConfig)
	}
	return nil
}

func (c *Config) corpusOptions() lexical.CorpusOptions {
	return lexical.CorpusOptions{
		KeywordsPerMessage: c.AnalysisKeywords,
		Limit:              c.AnalysisLimit,
		RelatedCallSigns:   c.RelatedCallSigns,
		RelatedAreas:       c.RelatedAreas,
	}
}

func (c *Config) clusterOptions(target int) lexical.ClusterOptions {
	return lexical.ClusterOptions{
		Target:    target,
		Keywords:  c.ClusterKeywords,
		MinShared: c.ClusterMinShared,
		MinSize:   c.ClusterMinSize,
	}
}

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

package lexicon

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

// DefaultWeight is the domain weight of a term absent from the weight table.
const DefaultWeight = 1.0

// DefaultCategoryName is used when a definition does not name a fallback category.
const DefaultCategoryName = "general"

// Category is a named message category and the terms that mark it.
type Category struct {
	Name    string   `yaml:"name"`
	Markers []string `yaml:"markers"`
}

// Definition is the serialized form of a Vocabulary.
type Definition struct {
	StopWords       []string            `yaml:"stop_words"`
	DomainWeights   map[string]float64  `yaml:"domain_weights"`
	Antonyms        map[string][]string `yaml:"antonyms"`
	Categories      []Category          `yaml:"categories"`
	DefaultCategory string              `yaml:"default_category"`
}

// Vocabulary is an immutable set of lexical lookup tables. All terms are
// stored lowercased. A Vocabulary is safe for concurrent use.
type Vocabulary struct {
	stopWords       map[string]struct{}
	weights         map[string]float64
	antonyms        map[string][]string
	categories      []Category
	defaultCategory string
}

// New builds a Vocabulary from a definition. Terms are lowercased and
// trimmed; blank entries are dropped.
func New(def Definition) (*Vocabulary, error) {
	v := &Vocabulary{
		stopWords:       make(map[string]struct{}, len(def.StopWords)),
		weights:         make(map[string]float64, len(def.DomainWeights)),
		antonyms:        make(map[string][]string, len(def.Antonyms)),
		categories:      make([]Category, 0, len(def.Categories)),
		defaultCategory: strings.TrimSpace(def.DefaultCategory),
	}
	if v.defaultCategory == "" {
		v.defaultCategory = DefaultCategoryName
	}

	for _, w := range def.StopWords {
		if w = normalize(w); w != "" {
			v.stopWords[w] = struct{}{}
		}
	}

	for term, weight := range def.DomainWeights {
		term = normalize(term)
		if term == "" {
			continue
		}
		if weight <= 0 || math.IsNaN(weight) || math.IsInf(weight, 0) {
			return nil, fmt.Errorf("%w: %q=%v", ErrInvalidWeight, term, weight)
		}
		v.weights[term] = weight
	}

	for term, opposites := range def.Antonyms {
		term = normalize(term)
		if term == "" {
			continue
		}
		list := normalizeAll(opposites)
		if len(list) > 0 {
			v.antonyms[term] = list
		}
	}

	seen := make(map[string]struct{}, len(def.Categories))
	for _, c := range def.Categories {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return nil, ErrEmptyCategory
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCategory, name)
		}
		seen[name] = struct{}{}
		v.categories = append(v.categories, Category{Name: name, Markers: normalizeAll(c.Markers)})
	}

	return v, nil
}

// IsStopWord reports whether term is in the stop-word set.
func (v *Vocabulary) IsStopWord(term string) bool {
	_, ok := v.stopWords[term]
	return ok
}

// Weight returns the domain weight for term, or DefaultWeight.
func (v *Vocabulary) Weight(term string) float64 {
	if w, ok := v.weights[term]; ok {
		return w
	}
	return DefaultWeight
}

// Antonyms returns the configured opposites of term. The returned slice is a copy.
func (v *Vocabulary) Antonyms(term string) []string {
	return slices.Clone(v.antonyms[term])
}

// Categories returns the category definitions in declaration order.
func (v *Vocabulary) Categories() []Category {
	out := make([]Category, len(v.categories))
	for i, c := range v.categories {
		out[i] = Category{Name: c.Name, Markers: slices.Clone(c.Markers)}
	}
	return out
}

// CategoryNames returns the declared category names followed by the
// default category when it is not declared explicitly.
func (v *Vocabulary) CategoryNames() []string {
	names := make([]string, 0, len(v.categories)+1)
	for _, c := range v.categories {
		names = append(names, c.Name)
	}
	if !slices.Contains(names, v.defaultCategory) {
		names = append(names, v.defaultCategory)
	}
	return names
}

// DefaultCategory returns the category assigned when no marker matches.
func (v *Vocabulary) DefaultCategory() string {
	return v.defaultCategory
}

// StopWordCount returns the size of the stop-word set.
func (v *Vocabulary) StopWordCount() int {
	return len(v.stopWords)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func normalizeAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = normalize(s); s != "" && !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}

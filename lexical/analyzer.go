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
	"errors"

	"github.com/poiesic/radiolex/lexicon"
)

// ErrVocabularyRequired is returned when an Analyzer is built without a vocabulary.
var ErrVocabularyRequired = errors.New("vocabulary is required")

// MinTokenLength is the rune count a token must exceed to be kept.
const MinTokenLength = 2

// Analyzer applies a vocabulary to text.
type Analyzer struct {
	vocab *lexicon.Vocabulary
}

// NewAnalyzer creates an Analyzer bound to vocab.
func NewAnalyzer(vocab *lexicon.Vocabulary) (*Analyzer, error) {
	if vocab == nil {
		return nil, ErrVocabularyRequired
	}
	return &Analyzer{vocab: vocab}, nil
}

// Vocabulary returns the vocabulary the analyzer was built with.
func (a *Analyzer) Vocabulary() *lexicon.Vocabulary {
	return a.vocab
}

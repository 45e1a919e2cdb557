package classify

import (
	"context"
	"strings"

	"github.com/poiesic/radiolex/lexical"
	"github.com/poiesic/radiolex/lexicon"
)

// RuleClassifier assigns the category whose markers occur most often in a
// message. A marker matches any token it prefixes, so "ранен" also counts
// "раненый". Ties go to the category declared first.
type RuleClassifier struct {
	analyzer   *lexical.Analyzer
	categories []lexicon.Category
	fallback   string
}

var _ Classifier = (*RuleClassifier)(nil)

// NewRuleClassifier creates a rule-based classifier over vocab's categories.
func NewRuleClassifier(vocab *lexicon.Vocabulary) (*RuleClassifier, error) {
	if vocab == nil {
		return nil, ErrVocabularyRequired
	}
	analyzer, err := lexical.NewAnalyzer(vocab)
	if err != nil {
		return nil, err
	}
	return &RuleClassifier{
		analyzer:   analyzer,
		categories: vocab.Categories(),
		fallback:   vocab.DefaultCategory(),
	}, nil
}

// Classify returns the best-matching category for text.
func (c *RuleClassifier) Classify(ctx context.Context, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	best, bestHits := c.fallback, 0
	tokens := c.analyzer.Tokenize(text)
	for _, cat := range c.categories {
		hits := 0
		for _, tok := range tokens {
			for _, marker := range cat.Markers {
				if strings.HasPrefix(tok, marker) {
					hits++
					break
				}
			}
		}
		if hits > bestHits {
			best, bestHits = cat.Name, hits
		}
	}
	return best, nil
}

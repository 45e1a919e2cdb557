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

package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/poiesic/radiolex/classify"
	"github.com/poiesic/radiolex/lexicon"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// ErrMalformedResponse is returned when the model never produced parseable JSON.
var ErrMalformedResponse = errors.New("malformed classifier response")

// Classifier implements classify.Classifier using OpenAI-compatible chat APIs.
type Classifier struct {
	client      llms.Model
	categories  []string
	fallback    string
	prompt      string
	maxAttempts int
	logger      *slog.Logger
}

var _ classify.Classifier = (*Classifier)(nil)

// Option configures a Classifier.
type Option func(*Classifier) error

// WithLogger sets the logger. A nil logger keeps the default.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Classifier) error {
		if logger != nil {
			c.logger = logger.With("component", "openai-classifier")
		}
		return nil
	}
}

// WithModel replaces the chat client, typically with a test double.
func WithModel(model llms.Model) Option {
	return func(c *Classifier) error {
		if model == nil {
			return errors.New("model cannot be nil")
		}
		c.client = model
		return nil
	}
}

// NewClassifier creates a classifier constrained to vocab's categories.
func NewClassifier(config *classify.Config, vocab *lexicon.Vocabulary, opts ...Option) (*Classifier, error) {
	if vocab == nil {
		return nil, classify.ErrVocabularyRequired
	}
	if config == nil {
		config = classify.DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	c := &Classifier{
		categories:  vocab.CategoryNames(),
		fallback:    vocab.DefaultCategory(),
		maxAttempts: config.MaxAttempts,
		logger:      slog.Default().With("component", "openai-classifier"),
	}
	c.prompt = buildSystemPrompt(vocab)

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.client == nil {
		// Use "none" as token for local OpenAI-compatible services that don't require authentication
		client, err := openai.New(
			openai.WithBaseURL(config.Host),
			openai.WithToken("none"),
			openai.WithModel(config.Model),
		)
		if err != nil {
			return nil, err
		}
		c.client = client
	}
	return c, nil
}

// response is the JSON object the model is asked to produce.
type response struct {
	Category string `json:"category"`
}

// Classify asks the model for the category of text.
func (c *Classifier) Classify(ctx context.Context, text string) (string, error) {
	text = scrubString(text)
	if text == "" {
		return c.fallback, nil
	}

	content := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, c.prompt),
		llms.TextParts(llms.ChatMessageTypeHuman, text),
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		resp, err := c.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			c.logger.Error("failed to generate content", "attempt", attempt, "err", err)
			return "", err
		}
		if len(resp.Choices) < 1 {
			c.logger.Debug("no choices returned from model")
			return c.fallback, nil
		}

		raw := cleanResponse(resp.Choices[0].Content)
		var parsed response
		if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
			lastErr = err
			c.logger.Warn("error parsing classifier response", "attempt", attempt, "response", raw, "err", err)
			continue
		}
		return c.resolve(parsed.Category), nil
	}

	c.logger.Error("failed to parse classifier response after retries", "err", lastErr)
	return "", fmt.Errorf("%w: %w", ErrMalformedResponse, lastErr)
}

// resolve maps a model answer onto a known category name.
func (c *Classifier) resolve(answer string) string {
	answer = strings.ToLower(strings.TrimSpace(answer))
	answer = strings.ReplaceAll(answer, " ", "_")
	if slices.Contains(c.categories, answer) {
		return answer
	}
	if answer != "" {
		c.logger.Debug("model returned unknown category", "category", answer)
	}
	return c.fallback
}

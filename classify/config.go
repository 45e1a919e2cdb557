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

package classify

import (
	"fmt"
	"strings"
)

// Supported classifier backends.
const (
	BackendRules  = "rules"
	BackendOpenAI = "openai"
)

// Config holds configuration for message classifiers.
type Config struct {
	// Backend selects the implementation: "rules" or "openai".
	// Default: "rules"
	Backend string

	// Host is the base URL of an OpenAI-compatible chat API.
	// Example: "http://localhost:11434/v1" for a local server
	Host string

	// Model is the chat model identifier used by the openai backend.
	// Example: "qwen2.5:3b", "gpt-4o-mini"
	Model string

	// MaxAttempts bounds how often a malformed model response is retried.
	// Default: 3
	MaxAttempts int
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithBackend sets the classifier backend.
func WithBackend(backend string) ConfigOption {
	return func(c *Config) {
		c.Backend = backend
	}
}

// WithHost sets the chat service host URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithModel sets the chat model identifier.
func WithModel(model string) ConfigOption {
	return func(c *Config) {
		c.Model = model
	}
}

// WithMaxAttempts sets the retry bound for malformed responses.
func WithMaxAttempts(n int) ConfigOption {
	return func(c *Config) {
		c.MaxAttempts = n
	}
}

// DefaultConfig returns a Config using the rule-based backend, with the
// openai settings pointing at a local OpenAI-compatible server.
func DefaultConfig() *Config {
	return &Config{
		Backend:     BackendRules,
		Host:        "http://localhost:11434/v1",
		Model:       "qwen2.5:3b",
		MaxAttempts: 3,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := NewConfig(
//	    WithBackend(BackendOpenAI),
//	    WithHost("http://localhost:11434"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize puts the configuration in canonical form. The /v1 suffix
// required by OpenAI-compatible APIs is appended to Host when missing.
func (c *Config) Normalize() {
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	if c.Backend == "" {
		c.Backend = BackendRules
	}
	if c.Host != "" && !strings.HasSuffix(c.Host, "/v1") {
		c.Host = strings.TrimSuffix(c.Host, "/") + "/v1"
	}
}

// Validate normalizes the configuration and checks that it is complete for
// the selected backend.
func (c *Config) Validate() error {
	c.Normalize()

	switch c.Backend {
	case BackendRules:
		return nil
	case BackendOpenAI:
		if c.Host == "" {
			return fmt.Errorf("%w: Host is required", ErrInvalidConfig)
		}
		if c.Model == "" {
			return fmt.Errorf("%w: Model is required", ErrInvalidConfig)
		}
		if c.MaxAttempts < 1 {
			return fmt.Errorf("%w: MaxAttempts must be at least 1", ErrInvalidConfig)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Backend)
	}
}

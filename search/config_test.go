package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 5000, cfg.IDFSampleSize)
	assert.Equal(t, 200, cfg.SnippetLength)
	assert.Equal(t, 0.1, cfg.DefaultMinSimilarity)
	assert.GreaterOrEqual(t, cfg.ClassifyPoolSize, 1)

	opts := cfg.clusterOptions(4)
	assert.Equal(t, 4, opts.Target)
	assert.Equal(t, 3, opts.MinSize)

	corpus := cfg.corpusOptions()
	assert.Equal(t, 20, corpus.KeywordsPerMessage)
	assert.Equal(t, 100, corpus.Limit)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero sample", func(c *Config) { c.IDFSampleSize = 0 }},
		{"zero snippet", func(c *Config) { c.SnippetLength = 0 }},
		{"inverted n-grams", func(c *Config) { c.PhraseMinN, c.PhraseMaxN = 3, 2 }},
		{"similarity above one", func(c *Config) { c.DefaultMinSimilarity = 1.5 }},
		{"negative similarity", func(c *Config) { c.DefaultMinSimilarity = -0.1 }},
		{"negative related areas", func(c *Config) { c.RelatedAreas = -1 }},
		{"zero pool", func(c *Config) { c.ClassifyPoolSize = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

package search

import (
	"log/slog"

	"github.com/poiesic/radiolex/core"
)

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string)
	AfterQueryAnalysis(keywords []core.Keyword)
	AfterCandidateFetch(count int)
	AfterFilter(count int)
	AfterIDF(sampleSize, terms int)
	Hit(result *core.SearchResult)
	Finish(results []*core.SearchResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                      {}
func (n *noopMonitor) AfterQueryAnalysis(_ []core.Keyword) {}
func (n *noopMonitor) AfterCandidateFetch(_ int)           {}
func (n *noopMonitor) AfterFilter(_ int)                   {}
func (n *noopMonitor) AfterIDF(_, _ int)                   {}
func (n *noopMonitor) Hit(_ *core.SearchResult)            {}
func (n *noopMonitor) Finish(_ []*core.SearchResult)       {}

// LogMonitor reports each search stage to a logger at debug level.
type LogMonitor struct {
	Logger *slog.Logger
}

var _ SearchMonitor = (*LogMonitor)(nil)

func (m *LogMonitor) logger() *slog.Logger {
	if m.Logger == nil {
		return slog.Default()
	}
	return m.Logger
}

func (m *LogMonitor) Start(query string) {
	m.logger().Debug("search started", "query", query)
}

func (m *LogMonitor) AfterQueryAnalysis(keywords []core.Keyword) {
	terms := make([]string, len(keywords))
	for i, kw := range keywords {
		terms[i] = kw.Term
	}
	m.logger().Debug("query analyzed", "keywords", terms)
}

func (m *LogMonitor) AfterCandidateFetch(count int) {
	m.logger().Debug("candidates fetched", "count", count)
}

func (m *LogMonitor) AfterFilter(count int) {
	m.logger().Debug("candidates filtered", "count", count)
}

func (m *LogMonitor) AfterIDF(sampleSize, terms int) {
	m.logger().Debug("idf estimated", "sample", sampleSize, "terms", terms)
}

func (m *LogMonitor) Hit(result *core.SearchResult) {
	m.logger().Debug("hit", "id", result.Message.Id, "score", result.Score, "matched", result.MatchedKeywords)
}

func (m *LogMonitor) Finish(results []*core.SearchResult) {
	m.logger().Debug("search finished", "results", len(results))
}

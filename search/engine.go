package search

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/radiolex/classify"
	"github.com/poiesic/radiolex/core"
	"github.com/poiesic/radiolex/lexical"
	"github.com/poiesic/radiolex/lexicon"
	"github.com/poiesic/radiolex/storage"
)

// Engine provides lexical search and analytics over stored messages.
// Every call works on a fresh snapshot fetched at entry; nothing is cached
// between calls.
type Engine struct {
	messages   storage.MessageRepository
	classifier classify.Classifier
	analyzer   *lexical.Analyzer
	filterer   *QueryFilterer
	pool       *ants.Pool
	config     *Config
	poolSize   int
	seed       *[2]uint64
	logger     *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// WithConfig replaces the default policy limits.
func WithConfig(config *Config) Option {
	return func(e *Engine) error {
		if config == nil {
			return ErrInvalidConfig
		}
		c := *config
		if err := c.Validate(); err != nil {
			return err
		}
		e.config = &c
		return nil
	}
}

// WithPoolSize sets the number of concurrent classifier calls. It takes
// precedence over Config.ClassifyPoolSize regardless of option order.
func WithPoolSize(size int) Option {
	return func(e *Engine) error {
		e.poolSize = max(size, 1)
		return nil
	}
}

// WithSampleSeed makes IDF sampling deterministic.
func WithSampleSeed(seed uint64) Option {
	return func(e *Engine) error {
		e.seed = &[2]uint64{seed, seed ^ 0x9e3779b97f4a7c15}
		return nil
	}
}

// NewEngine creates a search engine over messages.
func NewEngine(
	messages storage.MessageRepository,
	classifier classify.Classifier,
	vocab *lexicon.Vocabulary,
	opts ...Option,
) (*Engine, error) {
	if messages == nil {
		return nil, ErrMessageRepositoryRequired
	}
	if classifier == nil {
		return nil, ErrClassifierRequired
	}
	if vocab == nil {
		return nil, ErrVocabularyRequired
	}

	analyzer, err := lexical.NewAnalyzer(vocab)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		messages:   messages,
		classifier: classifier,
		analyzer:   analyzer,
		config:     DefaultConfig(),
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	if e.poolSize > 0 {
		e.config.ClassifyPoolSize = e.poolSize
	}

	pool, err := ants.NewPool(e.config.ClassifyPoolSize)
	if err != nil {
		return nil, err
	}
	e.pool = pool
	e.filterer = NewQueryFilterer(messages, classifier, pool, e.logger)

	return e, nil
}

// Release releases the classifier worker pool.
// The engine should not be used after calling Release.
func (e *Engine) Release() {
	if e.pool != nil {
		e.pool.Release()
	}
}

// Analyzer returns the lexical analyzer used by the engine.
func (e *Engine) Analyzer() *lexical.Analyzer {
	return e.analyzer
}

// Search ranks the messages matching filters against query.
// Returns at most maxResults results with score >= minSimilarity, best first.
func (e *Engine) Search(ctx context.Context, query string, filters Filters, minSimilarity float64, maxResults int) ([]*core.SearchResult, error) {
	return e.SearchWithMonitor(ctx, query, filters, minSimilarity, maxResults, nil)
}

// SearchWithMonitor is Search with a monitor receiving callbacks at each stage.
func (e *Engine) SearchWithMonitor(ctx context.Context, query string, filters Filters, minSimilarity float64, maxResults int, monitor SearchMonitor) ([]*core.SearchResult, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	monitor.Start(query)

	q := e.analyzer.NewQuery(query, e.config.QueryKeywords)
	monitor.AfterQueryAnalysis(q.Keywords)
	if q.Empty() || maxResults <= 0 {
		monitor.Finish(nil)
		return []*core.SearchResult{}, nil
	}

	candidates, err := e.filterer.Fetch(ctx, filters)
	if err != nil {
		return nil, err
	}
	monitor.AfterCandidateFetch(len(candidates))

	candidates, err = e.filterer.FilterCategory(ctx, candidates, filters.Category)
	if err != nil {
		return nil, err
	}
	monitor.AfterFilter(len(candidates))

	idf := e.idfTable(candidates, monitor)
	results := e.rank(q, candidates, idf, minSimilarity, maxResults, nil, monitor)
	monitor.Finish(results)
	return results, nil
}

// SearchByExample ranks all messages against exampleText. When
// includeOpposite is set, messages matching the antonyms of the example's
// terms are appended after the similar hits, marked Opposite. Similar and
// opposite hits share the maxResults budget; opposite hits fill what the
// similar hits leave.
func (e *Engine) SearchByExample(ctx context.Context, exampleText string, maxResults int, includeOpposite bool) ([]*core.SearchResult, error) {
	q := e.analyzer.NewQuery(exampleText, e.config.QueryKeywords)
	if q.Empty() || maxResults <= 0 {
		return []*core.SearchResult{}, nil
	}

	candidates, err := e.filterer.Fetch(ctx, Filters{})
	if err != nil {
		return nil, err
	}
	monitor := &noopMonitor{}
	idf := e.idfTable(candidates, monitor)
	results := e.rank(q, candidates, idf, e.config.DefaultMinSimilarity, maxResults, nil, monitor)

	if !includeOpposite || len(results) >= maxResults {
		return results, nil
	}
	opposites := e.analyzer.Opposites(exampleText)
	if len(opposites) == 0 {
		return results, nil
	}

	seen := make(map[core.ID]bool, len(results))
	for _, r := range results {
		seen[r.Message.Id] = true
	}
	oq := e.analyzer.NewQuery(strings.Join(opposites, " "), e.config.QueryKeywords)
	for _, r := range e.rank(oq, candidates, idf, e.config.DefaultMinSimilarity, maxResults-len(results), seen, monitor) {
		r.Opposite = true
		results = append(results, r)
	}
	return results, nil
}

// FindSimilarMessages ranks other messages against the body of message id.
// An unknown id yields an empty result.
func (e *Engine) FindSimilarMessages(ctx context.Context, id core.ID, maxResults int) ([]*core.SearchResult, error) {
	msg, err := e.messages.GetMessage(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return []*core.SearchResult{}, nil
		}
		e.logger.Error("error loading message", "id", id, "err", err)
		return nil, err
	}

	q := e.analyzer.NewQuery(msg.Body, e.config.QueryKeywords)
	if q.Empty() || maxResults <= 0 {
		return []*core.SearchResult{}, nil
	}

	candidates, err := e.filterer.Fetch(ctx, Filters{})
	if err != nil {
		return nil, err
	}
	monitor := &noopMonitor{}
	idf := e.idfTable(candidates, monitor)
	exclude := map[core.ID]bool{msg.Id: true}
	return e.rank(q, candidates, idf, e.config.DefaultMinSimilarity, maxResults, exclude, monitor), nil
}

// AnalyzeKeywords computes corpus keyword statistics over messages with
// timestamps in [from, to]. Zero bounds are open.
func (e *Engine) AnalyzeKeywords(ctx context.Context, from, to time.Time) ([]core.KeywordAnalysis, error) {
	msgs, err := e.filterer.Fetch(ctx, Filters{From: from, To: to})
	if err != nil {
		return nil, err
	}
	return e.analyzer.AnalyzeCorpus(msgs, e.config.corpusOptions()), nil
}

// GetMessageCategories classifies the corpus and summarizes each category
// present, largest first.
func (e *Engine) GetMessageCategories(ctx context.Context) ([]core.CategorySummary, error) {
	msgs, err := e.filterer.Fetch(ctx, Filters{})
	if err != nil {
		return nil, err
	}
	labels, err := e.filterer.Categorize(ctx, msgs)
	if err != nil {
		return nil, err
	}

	groups := make(map[string][]*core.Message)
	for i, m := range msgs {
		groups[labels[i]] = append(groups[labels[i]], m)
	}

	summaries := make([]core.CategorySummary, 0, len(groups))
	for name, members := range groups {
		opts := e.config.corpusOptions()
		opts.Limit = e.config.CategoryKeywords
		analyses := e.analyzer.AnalyzeCorpus(members, opts)
		keywords := make([]string, len(analyses))
		for i, a := range analyses {
			keywords[i] = a.Term
		}
		phrases := e.analyzer.MinePhrases(bodies(members), e.config.PhraseMinN, e.config.PhraseMaxN, e.config.CategoryPhrases)

		summaries = append(summaries, core.CategorySummary{
			Category: name,
			Count:    len(members),
			Keywords: keywords,
			Phrases:  lexical.PhraseTexts(phrases),
		})
	}

	slices.SortFunc(summaries, func(a, b core.CategorySummary) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Category, b.Category)
	})
	return summaries, nil
}

// ExtractTypicalPhrases returns the topN most frequent phrases among messages
// of the given category.
func (e *Engine) ExtractTypicalPhrases(ctx context.Context, category string, topN int) ([]core.Phrase, error) {
	if category == "" {
		return []core.Phrase{}, nil
	}
	msgs, err := e.filterer.Filter(ctx, Filters{Category: category})
	if err != nil {
		return nil, err
	}
	return e.analyzer.MinePhrases(bodies(msgs), e.config.PhraseMinN, e.config.PhraseMaxN, topN), nil
}

// ClusterMessagesByContent groups the earliest-arrived messages by shared
// keywords and returns up to numClusters clusters.
func (e *Engine) ClusterMessagesByContent(ctx context.Context, numClusters int) ([]core.MessageCluster, error) {
	if numClusters <= 0 {
		return []core.MessageCluster{}, nil
	}
	msgs, err := e.messages.ListMessages(ctx, 0, e.config.ClusterMessageCap)
	if err != nil {
		e.logger.Error("error listing messages", "err", err)
		return nil, err
	}
	return e.analyzer.Cluster(msgs, e.config.clusterOptions(numClusters)), nil
}

// CalculateTermFrequency breaks down the messages containing term literally.
func (e *Engine) CalculateTermFrequency(ctx context.Context, term string) (core.TermDimensionStats, error) {
	if term == "" {
		return lexical.TermStats(nil, term), nil
	}
	msgs, err := e.filterer.Fetch(ctx, Filters{})
	if err != nil {
		return core.TermDimensionStats{}, err
	}
	return lexical.TermStats(msgs, term), nil
}

// idfTable estimates IDF over a sample of candidates.
func (e *Engine) idfTable(candidates []*core.Message, monitor SearchMonitor) *lexical.IDFTable {
	sample := lexical.Sample(candidates, e.config.IDFSampleSize, e.rng())
	table := e.analyzer.IDFTable(bodies(sample), len(candidates))
	monitor.AfterIDF(len(sample), table.Len())
	return table
}

// rank scores candidates against q and returns the best maxResults with a
// positive score of at least minSimilarity. Ties keep candidate order.
func (e *Engine) rank(q lexical.Query, candidates []*core.Message, idf *lexical.IDFTable, minSimilarity float64, maxResults int, exclude map[core.ID]bool, monitor SearchMonitor) []*core.SearchResult {
	keywords := lexical.Terms(q.Keywords)
	results := make([]*core.SearchResult, 0)
	for _, msg := range candidates {
		if exclude[msg.Id] {
			continue
		}
		m := e.analyzer.SimilarityText(q, msg.Body, idf)
		if m.Score <= 0 || m.Score < minSimilarity {
			continue
		}
		r := &core.SearchResult{
			Message:         msg,
			Score:           m.Score,
			MatchedKeywords: m.MatchedKeywords,
			Contributions:   m.Contributions,
			Snippet:         lexical.Snippet(msg.Body, keywords, e.config.SnippetLength),
		}
		monitor.Hit(r)
		results = append(results, r)
	}

	slices.SortStableFunc(results, func(a, b *core.SearchResult) int {
		return cmp.Compare(b.Score, a.Score)
	})
	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results
}

func (e *Engine) rng() *rand.Rand {
	if e.seed != nil {
		return rand.New(rand.NewPCG(e.seed[0], e.seed[1]))
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

func bodies(msgs []*core.Message) []string {
	out := make([]string, len(msgs))
	for i, m := range msgs {
		out[i] = m.Body
	}
	return out
}

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

package radiolex

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/poiesic/radiolex/classify"
	"github.com/poiesic/radiolex/classify/openai"
	"github.com/poiesic/radiolex/ingestion"
	"github.com/poiesic/radiolex/lexicon"
	"github.com/poiesic/radiolex/reclassify"
	"github.com/poiesic/radiolex/search"
	"github.com/poiesic/radiolex/storage"
	"github.com/poiesic/radiolex/storage/badger"
)

// Database wires the message store, vocabulary, and classifier together and
// hands out engines and pipelines bound to them.
type Database struct {
	backend        *badger.Backend
	msgRepo        storage.MessageRepository
	checkpointRepo storage.CheckpointRepository
	vocab          *lexicon.Vocabulary
	classifier     classify.Classifier
	logger         *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	inMemory         bool
	vocab            *lexicon.Vocabulary
	vocabPath        string
	classifierConfig *classify.Config
	classifier       classify.Classifier
	logger           *slog.Logger
}

// WithInMemory keeps all data in memory. The file path is ignored.
func WithInMemory() DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = true
	}
}

// WithVocabulary sets the vocabulary. Default is lexicon.Default().
func WithVocabulary(vocab *lexicon.Vocabulary) DatabaseOption {
	return func(o *databaseOptions) {
		o.vocab = vocab
	}
}

// WithVocabularyFile loads the vocabulary from a YAML file.
func WithVocabularyFile(path string) DatabaseOption {
	return func(o *databaseOptions) {
		o.vocabPath = path
	}
}

// WithClassifierConfig selects and configures the classifier backend.
func WithClassifierConfig(config *classify.Config) DatabaseOption {
	return func(o *databaseOptions) {
		o.classifierConfig = config
	}
}

// WithClassifier installs a ready-made classifier, bypassing the classifier config.
func WithClassifier(classifier classify.Classifier) DatabaseOption {
	return func(o *databaseOptions) {
		o.classifier = classifier
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) DatabaseOption {
	return func(o *databaseOptions) {
		o.logger = logger
	}
}

// NewDatabase opens (or creates) the message store at filePath.
func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{
		classifierConfig: classify.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}

	vocab := options.vocab
	if options.vocabPath != "" {
		loaded, err := lexicon.LoadFile(options.vocabPath)
		if err != nil {
			return nil, err
		}
		vocab = loaded
	}
	if vocab == nil {
		vocab = lexicon.Default()
	}

	classifier := options.classifier
	if classifier == nil {
		var err error
		classifier, err = NewClassifier(options.classifierConfig, vocab, options.logger)
		if err != nil {
			return nil, err
		}
	}

	backend, err := badger.OpenBackendWithLogger(filePath, options.inMemory, options.logger)
	if err != nil {
		return nil, err
	}

	msgRepo, err := badger.NewMessageRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	return &Database{
		backend:        backend,
		msgRepo:        msgRepo,
		checkpointRepo: badger.NewCheckpointRepository(backend),
		vocab:          vocab,
		classifier:     classifier,
		logger:         options.logger,
	}, nil
}

// NewClassifier builds the classifier selected by config.
func NewClassifier(config *classify.Config, vocab *lexicon.Vocabulary, logger *slog.Logger) (classify.Classifier, error) {
	if config == nil {
		config = classify.DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	switch config.Backend {
	case classify.BackendOpenAI:
		return openai.NewClassifier(config, vocab, openai.WithLogger(logger))
	case classify.BackendRules:
		return classify.NewRuleClassifier(vocab)
	}
	return nil, fmt.Errorf("%w: %q", classify.ErrUnknownBackend, config.Backend)
}

func (db *Database) Close() error {
	if err := db.msgRepo.Close(); err != nil {
		db.logger.Error("error closing message repository", "err", err)
		return err
	}

	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) MessageRepository() storage.MessageRepository {
	return db.msgRepo
}

func (db *Database) CheckpointRepository() storage.CheckpointRepository {
	return db.checkpointRepo
}

func (db *Database) Vocabulary() *lexicon.Vocabulary {
	return db.vocab
}

func (db *Database) Classifier() classify.Classifier {
	return db.classifier
}

// NewEngine creates a search engine over the stored messages.
func (db *Database) NewEngine(opts ...search.Option) (*search.Engine, error) {
	opts = append([]search.Option{search.WithLogger(db.logger)}, opts...)
	return search.NewEngine(db.msgRepo, db.classifier, db.vocab, opts...)
}

func (db *Database) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	opts = append([]ingestion.Option{
		ingestion.WithLogger(db.logger),
		ingestion.WithCheckpoints(db.checkpointRepo),
	}, opts...)
	return ingestion.NewPipeline(db.msgRepo, db.classifier, opts...)
}

// NewReclassifier creates a batch job relabelling the stored corpus.
// progress receives human-readable progress output and may be nil.
func (db *Database) NewReclassifier(config *reclassify.Config, progress io.Writer) (*reclassify.Reclassifier, error) {
	return reclassify.NewReclassifier(db.msgRepo, db.checkpointRepo, db.classifier, config, progress)
}

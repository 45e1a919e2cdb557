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

package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/poiesic/radiolex"
	"github.com/poiesic/radiolex/classify"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "radiolex",
		Usage: "Lexical search and analytics over intercepted radio traffic",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to BadgerDB database directory",
				Value:   "./radiolex_db",
			},
			&cli.StringFlag{
				Name:  "vocabulary",
				Usage: "YAML vocabulary file (stop words, weights, antonyms, categories)",
			},
			&cli.StringFlag{
				Name:  "classifier",
				Usage: "Category classifier backend (rules, openai)",
				Value: classify.BackendRules,
			},
			&cli.StringFlag{
				Name:  "classifier-host",
				Usage: "Classifier service host URL",
				Value: "http://localhost:11434/v1",
			},
			&cli.StringFlag{
				Name:  "classifier-model",
				Usage: "Classifier model name",
				Value: "qwen2.5:3b",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "Output format (text, json)",
				Value: "text",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "import",
				Usage:     "Import messages from a JSON Lines file ('-' for stdin)",
				ArgsUsage: "FILE",
				Action:    importCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of messages stored per batch",
						Value: 500,
					},
					&cli.BoolFlag{
						Name:  "skip-invalid",
						Usage: "Log and skip malformed lines instead of failing",
					},
				},
			},
			{
				Name:   "seed",
				Usage:  "Import a built-in set of sample intercepts",
				Action: seedCommand,
			},
			{
				Name:      "search",
				Usage:     "Rank messages against a free-text query",
				ArgsUsage: "QUERY",
				Action:    searchCommand,
				Flags: append(filterFlags(),
					&cli.Float64Flag{
						Name:  "min-similarity",
						Usage: "Minimum similarity score",
						Value: 0.1,
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results",
						Value: 10,
					},
				),
			},
			{
				Name:      "example",
				Usage:     "Find messages resembling an example text",
				ArgsUsage: "TEXT",
				Action:    exampleCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results per list",
						Value: 10,
					},
					&cli.BoolFlag{
						Name:  "opposite",
						Usage: "Also list messages of opposite meaning",
					},
				},
			},
			{
				Name:      "similar",
				Usage:     "Find messages resembling a stored message",
				ArgsUsage: "ID",
				Action:    similarCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results",
						Value: 10,
					},
				},
			},
			{
				Name:   "keywords",
				Usage:  "Report corpus keyword statistics",
				Action: keywordsCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "from", Usage: "Earliest timestamp (RFC 3339 or YYYY-MM-DD)"},
					&cli.StringFlag{Name: "to", Usage: "Latest timestamp (RFC 3339 or YYYY-MM-DD)"},
				},
			},
			{
				Name:   "categories",
				Usage:  "Summarize message categories",
				Action: categoriesCommand,
			},
			{
				Name:      "phrases",
				Usage:     "List typical phrases of a category",
				ArgsUsage: "CATEGORY",
				Action:    phrasesCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "top",
						Usage: "Number of phrases",
						Value: 10,
					},
				},
			},
			{
				Name:   "clusters",
				Usage:  "Group messages by shared keywords",
				Action: clustersCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "count",
						Usage: "Maximum number of clusters",
						Value: 5,
					},
				},
			},
			{
				Name:      "term",
				Usage:     "Break down occurrences of a literal term",
				ArgsUsage: "TERM",
				Action:    termCommand,
			},
			{
				Name:   "reclassify",
				Usage:  "Re-label all stored messages with the configured classifier",
				Action: reclassifyCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of messages to process in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N messages",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum attempts for each classifier call",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Relabel messages that already have a category",
					},
					&cli.BoolFlag{
						Name:  "restart",
						Usage: "Ignore the checkpoint of an interrupted run",
					},
				},
			},
		},
	}
}

func filterFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "from", Usage: "Earliest timestamp (RFC 3339 or YYYY-MM-DD)"},
		&cli.StringFlag{Name: "to", Usage: "Latest timestamp (RFC 3339 or YYYY-MM-DD)"},
		&cli.StringFlag{Name: "area", Usage: "Geographic area"},
		&cli.Float64Flag{Name: "frequency", Usage: "Channel frequency"},
		&cli.StringSliceFlag{Name: "call-sign", Usage: "Participant call-sign (repeatable, any matches)"},
		&cli.StringFlag{Name: "category", Usage: "Message category"},
	}
}

// openDatabase opens the database selected by the global flags.
func openDatabase(c *cli.Context) (*radiolex.Database, error) {
	dbPath := c.String("db")
	if dbPath == "" {
		return nil, fmt.Errorf("database path is required")
	}

	cfg := classify.NewConfig(
		classify.WithBackend(c.String("classifier")),
		classify.WithHost(c.String("classifier-host")),
		classify.WithModel(c.String("classifier-model")),
	)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid classifier configuration: %w", err)
	}

	opts := []radiolex.DatabaseOption{
		radiolex.WithClassifierConfig(cfg),
		radiolex.WithLogger(slog.Default()),
	}
	if path := c.String("vocabulary"); path != "" {
		opts = append(opts, radiolex.WithVocabularyFile(path))
	}

	db, err := radiolex.NewDatabase(dbPath, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	switch f := c.String("format"); f {
	case "text", "json":
	default:
		return fmt.Errorf("invalid format %q: must be one of text, json", f)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

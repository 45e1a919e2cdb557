package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/poiesic/radiolex/core"
	"github.com/poiesic/radiolex/reclassify"
	"github.com/poiesic/radiolex/search"
	"github.com/urfave/cli/v2"
)

func importCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one FILE argument")
	}
	batchSize := c.Int("batch-size")
	if batchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}

	source, closer, err := openSource(c.Args().First(), c.App.Reader)
	if err != nil {
		return err
	}
	defer closer()

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	pipeline, err := db.NewIngestionPipeline()
	if err != nil {
		return err
	}
	defer pipeline.Release()

	stats, err := ingestBatched(c.Context, pipeline, decodeMessages(source, c.Bool("skip-invalid")), batchSize)
	if err != nil {
		return err
	}
	return newPrinter(c).importStats(stats)
}

func seedCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	pipeline, err := db.NewIngestionPipeline()
	if err != nil {
		return err
	}
	defer pipeline.Release()

	stats, err := ingestBatched(c.Context, pipeline, sampleMessages(time.Now().UTC()), 5)
	if err != nil {
		return err
	}
	return newPrinter(c).importStats(stats)
}

func searchCommand(c *cli.Context) error {
	query := strings.Join(c.Args().Slice(), " ")
	if query == "" {
		return fmt.Errorf("a QUERY argument is required")
	}
	filters, err := filtersFromFlags(c)
	if err != nil {
		return err
	}

	return withEngine(c, func(ctx context.Context, engine *search.Engine) error {
		results, err := engine.SearchWithMonitor(ctx, query, filters, c.Float64("min-similarity"), c.Int("limit"), &search.LogMonitor{})
		if err != nil {
			return err
		}
		return newPrinter(c).results(results)
	})
}

func exampleCommand(c *cli.Context) error {
	text := strings.Join(c.Args().Slice(), " ")
	if text == "" {
		return fmt.Errorf("a TEXT argument is required")
	}

	return withEngine(c, func(ctx context.Context, engine *search.Engine) error {
		results, err := engine.SearchByExample(ctx, text, c.Int("limit"), c.Bool("opposite"))
		if err != nil {
			return err
		}
		return newPrinter(c).results(results)
	})
}

func similarCommand(c *cli.Context) error {
	id, err := strconv.ParseUint(c.Args().First(), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid message ID %q: %w", c.Args().First(), err)
	}

	return withEngine(c, func(ctx context.Context, engine *search.Engine) error {
		results, err := engine.FindSimilarMessages(ctx, core.ID(id), c.Int("limit"))
		if err != nil {
			return err
		}
		return newPrinter(c).results(results)
	})
}

func keywordsCommand(c *cli.Context) error {
	from, err := parseTime(c.String("from"), false)
	if err != nil {
		return err
	}
	to, err := parseTime(c.String("to"), true)
	if err != nil {
		return err
	}

	return withEngine(c, func(ctx context.Context, engine *search.Engine) error {
		analyses, err := engine.AnalyzeKeywords(ctx, from, to)
		if err != nil {
			return err
		}
		return newPrinter(c).keywords(analyses)
	})
}

func categoriesCommand(c *cli.Context) error {
	return withEngine(c, func(ctx context.Context, engine *search.Engine) error {
		summaries, err := engine.GetMessageCategories(ctx)
		if err != nil {
			return err
		}
		return newPrinter(c).categories(summaries)
	})
}

func phrasesCommand(c *cli.Context) error {
	category := c.Args().First()
	if category == "" {
		return fmt.Errorf("a CATEGORY argument is required")
	}

	return withEngine(c, func(ctx context.Context, engine *search.Engine) error {
		phrases, err := engine.ExtractTypicalPhrases(ctx, category, c.Int("top"))
		if err != nil {
			return err
		}
		return newPrinter(c).phrases(phrases)
	})
}

func clustersCommand(c *cli.Context) error {
	return withEngine(c, func(ctx context.Context, engine *search.Engine) error {
		clusters, err := engine.ClusterMessagesByContent(ctx, c.Int("count"))
		if err != nil {
			return err
		}
		return newPrinter(c).clusters(clusters)
	})
}

func termCommand(c *cli.Context) error {
	term := strings.Join(c.Args().Slice(), " ")
	if term == "" {
		return fmt.Errorf("a TERM argument is required")
	}

	return withEngine(c, func(ctx context.Context, engine *search.Engine) error {
		stats, err := engine.CalculateTermFrequency(ctx, term)
		if err != nil {
			return err
		}
		return newPrinter(c).termStats(stats)
	})
}

func reclassifyCommand(c *cli.Context) error {
	config := &reclassify.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
		Force:          c.Bool("force"),
		Restart:        c.Bool("restart"),
	}

	// Validate config
	if config.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if config.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if config.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	r, err := db.NewReclassifier(config, c.App.ErrWriter)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.ErrWriter, "Database: %s\n", c.String("db"))
	fmt.Fprintf(c.App.ErrWriter, "Classifier: %s\n", c.String("classifier"))
	fmt.Fprintln(c.App.ErrWriter)

	if _, err := r.Run(c.Context); err != nil {
		return fmt.Errorf("reclassification failed: %w", err)
	}
	return nil
}

// withEngine opens the database, builds a search engine, and runs fn.
func withEngine(c *cli.Context, fn func(ctx context.Context, engine *search.Engine) error) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	engine, err := db.NewEngine()
	if err != nil {
		return err
	}
	defer engine.Release()

	return fn(c.Context, engine)
}

func filtersFromFlags(c *cli.Context) (search.Filters, error) {
	from, err := parseTime(c.String("from"), false)
	if err != nil {
		return search.Filters{}, err
	}
	to, err := parseTime(c.String("to"), true)
	if err != nil {
		return search.Filters{}, err
	}

	filters := search.Filters{
		From:      from,
		To:        to,
		Area:      c.String("area"),
		CallSigns: c.StringSlice("call-sign"),
		Category:  c.String("category"),
	}
	if c.IsSet("frequency") {
		freq := c.Float64("frequency")
		filters.Frequency = &freq
	}
	return filters, nil
}

// parseTime accepts RFC 3339 timestamps or bare dates. A bare date used as
// an upper bound covers the whole day.
func parseTime(value string, endOfDay bool) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: use RFC 3339 or YYYY-MM-DD", value)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}

func openSource(name string, stdin io.Reader) (io.Reader, func(), error) {
	if name == "-" {
		if stdin == nil {
			stdin = os.Stdin
		}
		return stdin, func() {}, nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

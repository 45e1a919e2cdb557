package main

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/poiesic/radiolex/core"
	"github.com/urfave/cli/v2"
)

const timeLayout = "2006-01-02 15:04:05"

// printer renders command results as text or JSON.
type printer struct {
	w    io.Writer
	json bool
}

func newPrinter(c *cli.Context) *printer {
	return &printer{w: c.App.Writer, json: c.String("format") == "json"}
}

func (p *printer) encode(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p *printer) importStats(stats importStats) error {
	if p.json {
		return p.encode(stats)
	}
	_, err := fmt.Fprintf(p.w, "Read %d messages, added %d, skipped %d invalid\n", stats.Read, stats.Added, stats.Skipped)
	return err
}

type resultView struct {
	ID            core.ID            `json:"id"`
	Timestamp     string             `json:"timestamp"`
	Area          string             `json:"area"`
	Frequency     float64            `json:"frequency"`
	CallSigns     []string           `json:"call_signs"`
	Score         float64            `json:"score"`
	Matched       []string           `json:"matched_keywords"`
	Contributions map[string]float64 `json:"contributions"`
	Snippet       string             `json:"snippet"`
	Opposite      bool               `json:"opposite,omitempty"`
}

func (p *printer) results(results []*core.SearchResult) error {
	if p.json {
		views := make([]resultView, len(results))
		for i, r := range results {
			views[i] = resultView{
				ID:            r.Message.Id,
				Timestamp:     r.Message.Timestamp.UTC().Format(timeLayout),
				Area:          r.Message.Area,
				Frequency:     r.Message.Frequency,
				CallSigns:     r.Message.CallSigns,
				Score:         r.Score,
				Matched:       r.MatchedKeywords,
				Contributions: r.Contributions,
				Snippet:       r.Snippet,
				Opposite:      r.Opposite,
			}
		}
		return p.encode(views)
	}

	fmt.Fprintf(p.w, "Found %d hits\n", len(results))
	for i, r := range results {
		marker := ""
		if r.Opposite {
			marker = " (opposite)"
		}
		fmt.Fprintf(p.w, "%d: [%0.3f]%s #%d %s %s %g %s\n", i+1, r.Score, marker,
			r.Message.Id, r.Message.Timestamp.UTC().Format(timeLayout),
			r.Message.Area, r.Message.Frequency, strings.Join(r.Message.CallSigns, ","))
		fmt.Fprintf(p.w, "   %s\n", r.Snippet)
		if len(r.MatchedKeywords) > 0 {
			fmt.Fprintf(p.w, "   matched: %s\n", strings.Join(r.MatchedKeywords, ", "))
		}
	}
	return nil
}

func (p *printer) keywords(analyses []core.KeywordAnalysis) error {
	if p.json {
		return p.encode(analyses)
	}
	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TERM\tFREQ\tDOCS\tTF-IDF\tCALL-SIGNS\tAREAS\tFIRST\tLAST")
	for _, a := range analyses {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.4f\t%s\t%s\t%s\t%s\n", a.Term, a.Frequency, a.DocumentCount, a.TFIDF,
			strings.Join(a.RelatedCallSigns, ","), strings.Join(a.RelatedAreas, ","),
			a.FirstSeen.UTC().Format(timeLayout), a.LastSeen.UTC().Format(timeLayout))
	}
	return tw.Flush()
}

func (p *printer) categories(summaries []core.CategorySummary) error {
	if p.json {
		return p.encode(summaries)
	}
	for _, s := range summaries {
		fmt.Fprintf(p.w, "%s (%d)\n", s.Category, s.Count)
		fmt.Fprintf(p.w, "   keywords: %s\n", strings.Join(s.Keywords, ", "))
		fmt.Fprintf(p.w, "   phrases:  %s\n", strings.Join(s.Phrases, " | "))
	}
	return nil
}

func (p *printer) phrases(phrases []core.Phrase) error {
	if p.json {
		return p.encode(phrases)
	}
	for _, ph := range phrases {
		fmt.Fprintf(p.w, "%4d  %s\n", ph.Count, ph.Text)
	}
	return nil
}

func (p *printer) clusters(clusters []core.MessageCluster) error {
	if p.json {
		type clusterView struct {
			ID       int       `json:"id"`
			Keywords []string  `json:"keywords"`
			Members  []core.ID `json:"members"`
			Cohesion float64   `json:"cohesion"`
		}
		views := make([]clusterView, len(clusters))
		for i, cl := range clusters {
			ids := make([]core.ID, len(cl.Messages))
			for j, m := range cl.Messages {
				ids[j] = m.Id
			}
			views[i] = clusterView{ID: cl.Id, Keywords: cl.Keywords, Members: ids, Cohesion: cl.Cohesion}
		}
		return p.encode(views)
	}

	for _, cl := range clusters {
		fmt.Fprintf(p.w, "Cluster %d: %d messages, cohesion %.3f\n", cl.Id, cl.MemberCount, cl.Cohesion)
		fmt.Fprintf(p.w, "   keywords: %s\n", strings.Join(cl.Keywords, ", "))
		for _, m := range cl.Messages {
			fmt.Fprintf(p.w, "   #%d %s\n", m.Id, m.Body)
		}
	}
	return nil
}

func (p *printer) termStats(stats core.TermDimensionStats) error {
	if p.json {
		return p.encode(stats)
	}
	fmt.Fprintf(p.w, "%q: %d messages over %d days (%.2f per day)\n", stats.Term, stats.Total, stats.Days, stats.AvgPerDay)
	if stats.PeakAreaCount > 0 {
		fmt.Fprintf(p.w, "Peak area: %s (%d)\n", stats.PeakArea, stats.PeakAreaCount)
	}
	if stats.PeakCallSignCount > 0 {
		fmt.Fprintf(p.w, "Peak call-sign: %s (%d)\n", stats.PeakCallSign, stats.PeakCallSignCount)
	}
	for _, day := range slices.Sorted(maps.Keys(stats.ByDay)) {
		fmt.Fprintf(p.w, "   %s  %d\n", day, stats.ByDay[day])
	}
	return nil
}

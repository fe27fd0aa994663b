package textlens

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/cognicore/textlens/pkg/textlens/aggregate"
	"github.com/cognicore/textlens/pkg/textlens/analysis"
	"github.com/cognicore/textlens/pkg/textlens/corpus"
	"github.com/cognicore/textlens/pkg/textlens/corpus/memstore"
	"github.com/cognicore/textlens/pkg/textlens/diagram"
	"github.com/cognicore/textlens/pkg/textlens/ingest"
	"github.com/cognicore/textlens/pkg/textlens/report"
	"github.com/cognicore/textlens/pkg/textlens/sentiment"
	"github.com/cognicore/textlens/pkg/textlens/source"
	"github.com/cognicore/textlens/pkg/textlens/stoplist"
)

// Session is one analysis workspace: a stopword set and the corpus of
// documents analyzed against it. Sessions share no state.
type Session struct {
	store   corpus.Store
	stops   *stoplist.Set
	scorer  sentiment.Scorer
	fetcher source.Fetcher
	reports *report.Builder
}

// Options configures a Session. Zero fields get defaults: an in-memory
// store, the built-in sentiment lexicon, and an HTTP fetcher.
type Options struct {
	Store   corpus.Store
	Scorer  sentiment.Scorer
	Fetcher source.Fetcher
}

// New creates a Session with the given dependencies
func New(opts Options) *Session {
	if opts.Store == nil {
		opts.Store = memstore.New()
	}
	if opts.Scorer == nil {
		opts.Scorer = sentiment.Default()
	}
	if opts.Fetcher == nil {
		opts.Fetcher = source.NewHTTPFetcher(nil)
	}
	return &Session{
		store:   opts.Store,
		stops:   stoplist.New(),
		scorer:  opts.Scorer,
		fetcher: opts.Fetcher,
		reports: report.New(),
	}
}

// Close cleanly shuts down the session's store.
func (s *Session) Close() error {
	return s.store.Close()
}

// LoadStopWords replaces the stopword set from a local file.
func (s *Session) LoadStopWords(path string) error {
	return s.stops.LoadFile(path)
}

// LoadStopWordsURL replaces the stopword set from a remote word list.
func (s *Session) LoadStopWordsURL(ctx context.Context, url string) error {
	return s.stops.LoadURL(ctx, s.fetcher, url)
}

// StopWords returns the current stopwords, sorted.
func (s *Session) StopWords() []string {
	return s.stops.All()
}

func (s *Session) analyzer() *analysis.Analyzer {
	return analysis.New(s.stops, s.scorer)
}

// LoadText reads, analyzes and registers one document. A nil reader picks
// one from the identifier; an empty label falls back to id. On failure the
// corpus is unchanged.
func (s *Session) LoadText(ctx context.Context, id, label string, r source.Reader) error {
	if r == nil {
		r = source.Select(id, s.fetcher)
	}
	if label == "" {
		label = id
	}

	res, err := s.analyzer().Analyze(ctx, r, id)
	if err != nil {
		return err
	}
	return s.store.Register(ctx, label, res)
}

// LoadBlob analyzes pre-fetched text and registers it under label.
func (s *Session) LoadBlob(ctx context.Context, label, text string) error {
	return s.LoadText(ctx, label, label, source.TextReader{Text: text})
}

// LoadAll reads and analyzes docs concurrently, at most concurrency at a
// time (4 if unset), then registers them one at a time in slice order so
// tie-breaks stay reproducible. If any document fails nothing is registered.
func (s *Session) LoadAll(ctx context.Context, docs []ingest.Doc, concurrency int) error {
	for i := range docs {
		if err := docs[i].Validate(); err != nil {
			return fmt.Errorf("document %d: %w", i, err)
		}
	}
	if concurrency <= 0 {
		concurrency = 4
	}

	a := s.analyzer()
	results := make([]analysis.Result, len(docs))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, d := range docs {
		g.Go(func() error {
			res, err := a.Analyze(gCtx, source.Select(d.Source, s.fetcher), d.Source)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, d := range docs {
		if err := corpus.CheckEntry(d.EffectiveLabel(), results[i]); err != nil {
			return fmt.Errorf("document %d: %w", i, err)
		}
	}
	for i, d := range docs {
		if err := s.store.Register(ctx, d.EffectiveLabel(), results[i]); err != nil {
			return err
		}
	}
	return nil
}

// Labels returns registered labels in registration order.
func (s *Session) Labels(ctx context.Context) ([]string, error) {
	return s.store.Labels(ctx)
}

// Documents returns a snapshot of the corpus.
func (s *Session) Documents(ctx context.Context) ([]corpus.Document, error) {
	return s.store.Documents(ctx)
}

// WordcountFlow maps each document to words, weighted by occurrences. With
// no words given, the union of each document's k most common words is used.
func (s *Session) WordcountFlow(ctx context.Context, words []string, k int) (diagram.Flow, error) {
	docs, err := s.store.Documents(ctx)
	if err != nil {
		return diagram.Flow{}, err
	}
	rows, err := aggregate.WordFlowRows(docs, words, k)
	if err != nil {
		return diagram.Flow{}, err
	}
	return diagram.FlowFromRows(rows)
}

// MostCommonWords charts each document's k most common words.
func (s *Session) MostCommonWords(ctx context.Context, k int) (diagram.BarChart, error) {
	docs, err := s.store.Documents(ctx)
	if err != nil {
		return diagram.BarChart{}, err
	}
	tables, err := aggregate.MostCommonPerDocument(docs, k)
	if err != nil {
		return diagram.BarChart{}, err
	}
	return diagram.NewBarChart("Most Common Words", tables), nil
}

// SentimentScatter charts polarity against subjectivity for every distinct
// word of every document.
func (s *Session) SentimentScatter(ctx context.Context) (diagram.ScatterChart, error) {
	docs, err := s.store.Documents(ctx)
	if err != nil {
		return diagram.ScatterChart{}, err
	}
	panels := make([]diagram.ScatterPanel, len(docs))
	for i, d := range docs {
		panels[i] = diagram.ScatterPanel{Label: d.Label, Points: aggregate.SentimentPoints(docs, d.Label)}
	}
	return diagram.NewScatterChart("Word Sentiment", panels), nil
}

// StackedBar charts the k most common words across all documents.
func (s *Session) StackedBar(ctx context.Context, k int) (diagram.StackedBarChart, error) {
	docs, err := s.store.Documents(ctx)
	if err != nil {
		return diagram.StackedBarChart{}, err
	}
	st, err := aggregate.StackedCounts(docs, k)
	if err != nil {
		return diagram.StackedBarChart{}, err
	}
	return diagram.NewStackedBarChart(st, k), nil
}

// ReportOptions selects what goes into a report.
type ReportOptions struct {
	Title     string
	FlowWords []string
	FlowK     int
	TopK      int
	StackK    int
}

// DefaultReportOptions mirrors the chart defaults.
func DefaultReportOptions() ReportOptions {
	return ReportOptions{Title: "Text Analysis", FlowK: 3, TopK: 10, StackK: 10}
}

// Report builds every chart and bundles them.
func (s *Session) Report(ctx context.Context, opts ReportOptions) (report.Report, error) {
	flow, err := s.WordcountFlow(ctx, opts.FlowWords, opts.FlowK)
	if err != nil {
		return report.Report{}, fmt.Errorf("flow: %w", err)
	}
	bars, err := s.MostCommonWords(ctx, opts.TopK)
	if err != nil {
		return report.Report{}, fmt.Errorf("most common: %w", err)
	}
	scatter, err := s.SentimentScatter(ctx)
	if err != nil {
		return report.Report{}, fmt.Errorf("sentiment: %w", err)
	}
	stacked, err := s.StackedBar(ctx, opts.StackK)
	if err != nil {
		return report.Report{}, fmt.Errorf("stacked: %w", err)
	}

	docs, err := s.store.Documents(ctx)
	if err != nil {
		return report.Report{}, err
	}
	summaries := make([]report.DocumentSummary, len(docs))
	for i, d := range docs {
		summaries[i] = report.DocumentSummary{
			Label:         d.Label,
			NumWords:      d.Result.NumWords,
			DistinctWords: d.Result.WordCount.Len(),
		}
	}

	return s.reports.Build(opts.Title, summaries, report.Charts{
		Flow:        flow,
		MostCommon:  bars,
		Sentiment:   scatter,
		Stacked:     stacked,
		WordLengths: aggregate.LengthDistribution(docs).Map(),
	}), nil
}

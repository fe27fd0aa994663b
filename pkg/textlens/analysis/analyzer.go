// Package analysis turns one document's text into its per-document metrics.
package analysis

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/cognicore/textlens/pkg/textlens/freq"
	"github.com/cognicore/textlens/pkg/textlens/ingest"
	"github.com/cognicore/textlens/pkg/textlens/internalerr"
	"github.com/cognicore/textlens/pkg/textlens/sentiment"
	"github.com/cognicore/textlens/pkg/textlens/source"
)

// Result holds the four metrics recorded for a document.
type Result struct {
	WordCount   *freq.Counter
	NumWords    int
	WordLengths *freq.Histogram
	// Sentiment is keyed by distinct word, not by occurrence.
	Sentiment map[string]sentiment.Score
}

// Validate checks the cross-metric invariants of a result.
func (r Result) Validate() error {
	if r.WordCount == nil || r.WordLengths == nil || r.Sentiment == nil {
		return fmt.Errorf("%w: result has missing metrics", internalerr.ErrInvalidInput)
	}
	if total := r.WordCount.Total(); total != r.NumWords {
		return fmt.Errorf("%w: numwords %d != word count total %d", internalerr.ErrInvalidInput, r.NumWords, total)
	}
	if total := r.WordLengths.Total(); total != r.NumWords {
		return fmt.Errorf("%w: numwords %d != word length total %d", internalerr.ErrInvalidInput, r.NumWords, total)
	}
	if len(r.Sentiment) != r.WordCount.Len() {
		return fmt.Errorf("%w: %d sentiment entries for %d distinct words", internalerr.ErrInvalidInput, len(r.Sentiment), r.WordCount.Len())
	}
	for _, w := range r.WordCount.Keys() {
		if _, ok := r.Sentiment[w]; !ok {
			return fmt.Errorf("%w: no sentiment for %q", internalerr.ErrInvalidInput, w)
		}
	}
	return nil
}

// Clone returns a deep copy so stores never share state with callers.
func (r Result) Clone() Result {
	scores := make(map[string]sentiment.Score, len(r.Sentiment))
	for w, s := range r.Sentiment {
		scores[w] = s
	}
	return Result{
		WordCount:   r.WordCount.Clone(),
		NumWords:    r.NumWords,
		WordLengths: r.WordLengths.Clone(),
		Sentiment:   scores,
	}
}

// Analyzer applies tokenization, stopword filtering and sentiment scoring.
type Analyzer struct {
	tokenizer *ingest.Tokenizer
	scorer    sentiment.Scorer
}

// New creates an analyzer. A nil stops filters nothing; a nil scorer uses
// the built-in lexicon.
func New(stops ingest.StopChecker, scorer sentiment.Scorer) *Analyzer {
	if scorer == nil {
		scorer = sentiment.Default()
	}
	return &Analyzer{
		tokenizer: ingest.NewTokenizer(stops),
		scorer:    scorer,
	}
}

// Analyze reads id through r and analyzes its text. Read failures wrap
// internalerr.ErrSourceUnavailable and produce no result.
func (a *Analyzer) Analyze(ctx context.Context, r source.Reader, id string) (Result, error) {
	text, err := r.Read(ctx, id)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %s: %w", internalerr.ErrSourceUnavailable, id, err)
	}
	return a.AnalyzeText(text)
}

// AnalyzeText analyzes text that was already fetched.
func (a *Analyzer) AnalyzeText(text string) (Result, error) {
	words := a.tokenizer.Tokenize(text)

	wc := freq.FromTokens(words)

	lengths := freq.NewHistogram()
	for _, w := range words {
		lengths.Add(utf8.RuneCountInString(w), 1)
	}

	scores := make(map[string]sentiment.Score, wc.Len())
	for _, w := range wc.Keys() {
		s, err := a.scorer.Score(w)
		if err != nil {
			return Result{}, fmt.Errorf("%w: token %q: %w", internalerr.ErrSentiment, w, err)
		}
		scores[w] = s
	}

	return Result{
		WordCount:   wc,
		NumWords:    wc.Total(),
		WordLengths: lengths,
		Sentiment:   scores,
	}, nil
}

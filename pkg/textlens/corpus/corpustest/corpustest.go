// Package corpustest holds behavior tests shared by every corpus.Store.
package corpustest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/textlens/pkg/textlens/analysis"
	"github.com/cognicore/textlens/pkg/textlens/corpus"
	"github.com/cognicore/textlens/pkg/textlens/internalerr"
	"github.com/cognicore/textlens/pkg/textlens/sentiment"
)

// Factory opens an empty store for one subtest.
type Factory func(t *testing.T) corpus.Store

// Result analyzes text with a fixed scorer for use as test data.
func Result(t *testing.T, text string) analysis.Result {
	t.Helper()
	scorer := sentiment.Func(func(tok string) (sentiment.Score, error) {
		return sentiment.Score{Polarity: float64(len(tok)%3) / 2, Subjectivity: 0.25}, nil
	})
	r, err := analysis.New(nil, scorer).AnalyzeText(text)
	require.NoError(t, err)
	return r
}

// Run exercises the corpus.Store contract.
func Run(t *testing.T, open Factory) {
	ctx := context.Background()

	t.Run("empty", func(t *testing.T) {
		s := open(t)
		n, err := s.Len(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)

		docs, err := s.Documents(ctx)
		require.NoError(t, err)
		assert.Empty(t, docs)

		_, found, err := s.Get(ctx, "nothing")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("register and get", func(t *testing.T) {
		s := open(t)
		r := Result(t, "b a b c a b")
		require.NoError(t, s.Register(ctx, "doc1", r))

		doc, found, err := s.Get(ctx, "doc1")
		require.NoError(t, err)
		require.True(t, found)
		assertSameResult(t, r, doc.Result)
		assert.Equal(t, "doc1", doc.Label)
	})

	t.Run("overwrite replaces all metrics", func(t *testing.T) {
		s := open(t)
		require.NoError(t, s.Register(ctx, "first", Result(t, "one")))
		require.NoError(t, s.Register(ctx, "dup", Result(t, "cat cat dog")))
		second := Result(t, "zebra")
		require.NoError(t, s.Register(ctx, "dup", second))

		doc, found, err := s.Get(ctx, "dup")
		require.NoError(t, err)
		require.True(t, found)
		assertSameResult(t, second, doc.Result)
		assert.False(t, doc.Result.WordCount.Has("cat"))
		_, hasCat := doc.Result.Sentiment["cat"]
		assert.False(t, hasCat)
		assert.Zero(t, doc.Result.WordLengths.Get(3))

		labels, err := s.Labels(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"first", "dup"}, labels)
	})

	t.Run("labels keep registration order", func(t *testing.T) {
		s := open(t)
		for _, l := range []string{"zeta", "alpha", "mid"} {
			require.NoError(t, s.Register(ctx, l, Result(t, l)))
		}
		labels, err := s.Labels(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"zeta", "alpha", "mid"}, labels)

		docs, err := s.Documents(ctx)
		require.NoError(t, err)
		require.Len(t, docs, 3)
		assert.Equal(t, "alpha", docs[1].Label)
		assert.Equal(t, []string{"alpha"}, docs[1].Result.WordCount.Keys())
	})

	t.Run("empty label rejected", func(t *testing.T) {
		s := open(t)
		err := s.Register(ctx, " ", Result(t, "x"))
		assert.True(t, errors.Is(err, internalerr.ErrInvalidLabel))
		n, _ := s.Len(ctx)
		assert.Zero(t, n)
	})

	t.Run("invalid result leaves store untouched", func(t *testing.T) {
		s := open(t)
		good := Result(t, "keep me")
		require.NoError(t, s.Register(ctx, "doc", good))

		bad := Result(t, "broken")
		bad.NumWords = 99
		err := s.Register(ctx, "doc", bad)
		assert.True(t, errors.Is(err, internalerr.ErrInvalidInput))

		doc, _, err := s.Get(ctx, "doc")
		require.NoError(t, err)
		assertSameResult(t, good, doc.Result)
	})

	t.Run("results are isolated from callers", func(t *testing.T) {
		s := open(t)
		r := Result(t, "solo")
		require.NoError(t, s.Register(ctx, "doc", r))
		r.WordCount.Add("solo", 100)

		doc, _, err := s.Get(ctx, "doc")
		require.NoError(t, err)
		assert.Equal(t, 1, doc.Result.WordCount.Get("solo"))
	})
}

func assertSameResult(t *testing.T, want, got analysis.Result) {
	t.Helper()
	assert.Equal(t, want.NumWords, got.NumWords)
	assert.Equal(t, want.WordCount.Entries(), got.WordCount.Entries())
	assert.Equal(t, want.WordLengths.Map(), got.WordLengths.Map())
	assert.Equal(t, want.Sentiment, got.Sentiment)
	assert.NoError(t, got.Validate())
}


package aggregate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/textlens/pkg/textlens/analysis"
	"github.com/cognicore/textlens/pkg/textlens/corpus"
	"github.com/cognicore/textlens/pkg/textlens/freq"
	"github.com/cognicore/textlens/pkg/textlens/internalerr"
	"github.com/cognicore/textlens/pkg/textlens/sentiment"
)

func stubScorer() sentiment.Scorer {
	return sentiment.Func(func(tok string) (sentiment.Score, error) {
		return sentiment.Score{Polarity: float64(len(tok)) / 10, Subjectivity: 0.5}, nil
	})
}

func doc(t *testing.T, label, text string) corpus.Document {
	t.Helper()
	r, err := analysis.New(nil, stubScorer()).AnalyzeText(text)
	require.NoError(t, err)
	return corpus.Document{Label: label, Result: r}
}

func fixture(t *testing.T) []corpus.Document {
	return []corpus.Document{
		doc(t, "doc1", "cat cat cat dog"),
		doc(t, "doc2", "cat cat bird bird bird fish"),
	}
}

func TestTopKWordsStableTies(t *testing.T) {
	wc := freq.NewCounter()
	wc.Add("a", 5)
	wc.Add("b", 5)
	wc.Add("c", 1)
	docs := []corpus.Document{{Label: "x", Result: analysis.Result{WordCount: wc}}}

	got, err := TopKWordsPerDocument(docs, 2)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"a", "b"}, got[0].Words)
}

func TestTopKWordsPerDocument(t *testing.T) {
	got, err := TopKWordsPerDocument(fixture(t), 1)
	require.NoError(t, err)
	assert.Equal(t, []DocumentWords{
		{Label: "doc1", Words: []string{"cat"}},
		{Label: "doc2", Words: []string{"bird"}},
	}, got)
}

func TestInvalidK(t *testing.T) {
	docs := fixture(t)
	for _, k := range []int{0, -3} {
		_, err := TopKWordsPerDocument(docs, k)
		assert.True(t, errors.Is(err, internalerr.ErrInvalidInput))
		_, err = MostCommonPerDocument(docs, k)
		assert.True(t, errors.Is(err, internalerr.ErrInvalidInput))
		_, err = StackedCounts(docs, k)
		assert.True(t, errors.Is(err, internalerr.ErrInvalidInput))
		_, err = WordFlowRows(docs, nil, k)
		assert.True(t, errors.Is(err, internalerr.ErrInvalidInput))
	}
}

func TestUnionOfTopWords(t *testing.T) {
	docs := fixture(t)

	got, err := UnionOfTopWords(docs, []string{"doc1", "doc2"}, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"bird", "cat", "dog"}, got)

	got, err = UnionOfTopWords(docs, []string{"doc1"}, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"cat", "dog"}, got)

	_, err = UnionOfTopWords(docs, nil, 2)
	assert.True(t, errors.Is(err, internalerr.ErrInvalidInput))
}

func TestCombinedWordCounts(t *testing.T) {
	combined := CombinedWordCounts(fixture(t))

	assert.Equal(t, []freq.Entry{
		{Token: "cat", Count: 5},
		{Token: "dog", Count: 1},
		{Token: "bird", Count: 3},
		{Token: "fish", Count: 1},
	}, combined.Entries())

	// Inputs are not mutated.
	docs := fixture(t)
	_ = CombinedWordCounts(docs)
	assert.Equal(t, 3, docs[0].Result.WordCount.Get("cat"))
}

func TestSentimentPoints(t *testing.T) {
	points := SentimentPoints(fixture(t), "doc2")
	require.Len(t, points, 3)
	assert.Equal(t, Point{Word: "cat", Polarity: 0.3, Subjectivity: 0.5}, points[0])
	assert.Equal(t, "bird", points[1].Word)

	assert.Empty(t, SentimentPoints(fixture(t), "missing"))
}

func TestStackedCounts(t *testing.T) {
	st, err := StackedCounts(fixture(t), 2)
	require.NoError(t, err)

	assert.Equal(t, []string{"cat", "bird"}, st.Words)
	assert.Equal(t, []string{"doc1", "doc2"}, st.Labels)
	assert.Equal(t, [][]int{{3, 0}, {2, 3}}, st.Counts)
}

func TestWordFlowRowsDefaultUniverse(t *testing.T) {
	rows, err := WordFlowRows(fixture(t), nil, 1)
	require.NoError(t, err)

	assert.Equal(t, []FlowRow{
		{Source: "doc1", Target: "cat", Value: 3},
		{Source: "doc2", Target: "bird", Value: 3},
		{Source: "doc2", Target: "cat", Value: 2},
	}, rows)
}

func TestWordFlowRowsExplicitWords(t *testing.T) {
	rows, err := WordFlowRows(fixture(t), []string{"fish", "dog", "fish", "unicorn"}, 1)
	require.NoError(t, err)

	assert.Equal(t, []FlowRow{
		{Source: "doc1", Target: "dog", Value: 1},
		{Source: "doc2", Target: "fish", Value: 1},
	}, rows)
}

func TestLengthDistribution(t *testing.T) {
	h := LengthDistribution(fixture(t))
	assert.Equal(t, 6, h.Get(3))
	assert.Equal(t, 4, h.Get(4))
}

func TestEmptyCorpus(t *testing.T) {
	var docs []corpus.Document

	top, err := TopKWordsPerDocument(docs, 3)
	require.NoError(t, err)
	assert.Empty(t, top)

	mc, err := MostCommonPerDocument(docs, 3)
	require.NoError(t, err)
	assert.Empty(t, mc)

	union, err := UnionOfTopWords(docs, []string{"x"}, 3)
	require.NoError(t, err)
	assert.Empty(t, union)

	assert.Zero(t, CombinedWordCounts(docs).Len())
	assert.Empty(t, SentimentPoints(docs, "x"))

	st, err := StackedCounts(docs, 3)
	require.NoError(t, err)
	assert.Empty(t, st.Words)
	assert.Empty(t, st.Labels)

	rows, err := WordFlowRows(docs, nil, 3)
	require.NoError(t, err)
	assert.Empty(t, rows)

	assert.Zero(t, LengthDistribution(docs).Total())
}

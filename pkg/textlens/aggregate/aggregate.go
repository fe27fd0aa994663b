// Package aggregate derives cross-document views from a corpus snapshot.
// Every function is pure: inputs are never modified and an empty corpus
// yields an empty result.
package aggregate

import (
	"fmt"
	"sort"

	"github.com/cognicore/textlens/pkg/textlens/corpus"
	"github.com/cognicore/textlens/pkg/textlens/freq"
	"github.com/cognicore/textlens/pkg/textlens/internalerr"
)

// DocumentWords is a per-document list of words.
type DocumentWords struct {
	Label string
	Words []string
}

// DocumentCounts is a per-document top-k frequency table.
type DocumentCounts struct {
	Label  string
	Counts []freq.Entry
}

// Point is one word's sentiment coordinates.
type Point struct {
	Word         string  `json:"word"`
	Polarity     float64 `json:"polarity"`
	Subjectivity float64 `json:"subjectivity"`
}

// FlowRow links a document to a word with that word's count.
type FlowRow struct {
	Source string
	Target string
	Value  int
}

// Stacked is a words × documents count matrix. Counts[i][j] is the count of
// Words[j] in Labels[i].
type Stacked struct {
	Words  []string
	Labels []string
	Counts [][]int
}

func checkK(k int) error {
	if k <= 0 {
		return fmt.Errorf("%w: k must be positive, got %d", internalerr.ErrInvalidInput, k)
	}
	return nil
}

// TopKWordsPerDocument returns each document's k most frequent words. Ties
// keep the order in which the document first produced the words.
func TopKWordsPerDocument(docs []corpus.Document, k int) ([]DocumentWords, error) {
	if err := checkK(k); err != nil {
		return nil, err
	}
	out := make([]DocumentWords, 0, len(docs))
	for _, d := range docs {
		top := d.Result.WordCount.MostCommon(k)
		words := make([]string, len(top))
		for i, e := range top {
			words[i] = e.Token
		}
		out = append(out, DocumentWords{Label: d.Label, Words: words})
	}
	return out, nil
}

// MostCommonPerDocument returns each document's k most frequent words with
// their counts, the table behind a per-document bar chart.
func MostCommonPerDocument(docs []corpus.Document, k int) ([]DocumentCounts, error) {
	if err := checkK(k); err != nil {
		return nil, err
	}
	out := make([]DocumentCounts, 0, len(docs))
	for _, d := range docs {
		out = append(out, DocumentCounts{Label: d.Label, Counts: d.Result.WordCount.MostCommon(k)})
	}
	return out, nil
}

// UnionOfTopWords returns the sorted union of the top-k words of the named
// documents. Labels not present in docs contribute nothing.
func UnionOfTopWords(docs []corpus.Document, labels []string, k int) ([]string, error) {
	if len(labels) == 0 {
		return nil, fmt.Errorf("%w: labels must not be empty", internalerr.ErrInvalidInput)
	}
	perDoc, err := TopKWordsPerDocument(docs, k)
	if err != nil {
		return nil, err
	}

	want := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		want[l] = struct{}{}
	}

	set := make(map[string]struct{})
	for _, d := range perDoc {
		if _, ok := want[d.Label]; !ok {
			continue
		}
		for _, w := range d.Words {
			set[w] = struct{}{}
		}
	}

	out := make([]string, 0, len(set))
	for w := range set {
		out = append(out, w)
	}
	sort.Strings(out)
	return out, nil
}

// CombinedWordCounts sums counts across documents. Word order is first
// appearance walking documents in label order.
func CombinedWordCounts(docs []corpus.Document) *freq.Counter {
	total := freq.NewCounter()
	for _, d := range docs {
		total.Merge(d.Result.WordCount)
	}
	return total
}

// SentimentPoints returns one point per distinct word of the labelled
// document, in the document's word order. Unknown labels yield no points.
func SentimentPoints(docs []corpus.Document, label string) []Point {
	for _, d := range docs {
		if d.Label != label {
			continue
		}
		points := make([]Point, 0, d.Result.WordCount.Len())
		for _, w := range d.Result.WordCount.Keys() {
			s := d.Result.Sentiment[w]
			points = append(points, Point{Word: w, Polarity: s.Polarity, Subjectivity: s.Subjectivity})
		}
		return points
	}
	return []Point{}
}

// StackedCounts picks the k globally most frequent words and reports each
// document's count for them.
func StackedCounts(docs []corpus.Document, k int) (Stacked, error) {
	if err := checkK(k); err != nil {
		return Stacked{}, err
	}

	top := CombinedWordCounts(docs).MostCommon(k)
	st := Stacked{
		Words:  make([]string, len(top)),
		Labels: make([]string, len(docs)),
		Counts: make([][]int, len(docs)),
	}
	for j, e := range top {
		st.Words[j] = e.Token
	}
	for i, d := range docs {
		st.Labels[i] = d.Label
		row := make([]int, len(st.Words))
		for j, w := range st.Words {
			row[j] = d.Result.WordCount.Get(w)
		}
		st.Counts[i] = row
	}
	return st, nil
}

// WordFlowRows builds document→word rows for a flow diagram. With an empty
// words list the universe is the union of each document's top-k words.
// Words absent from a document produce no row.
func WordFlowRows(docs []corpus.Document, words []string, k int) ([]FlowRow, error) {
	universe := words
	if len(universe) == 0 {
		labels := make([]string, len(docs))
		for i, d := range docs {
			labels[i] = d.Label
		}
		if len(labels) == 0 {
			if err := checkK(k); err != nil {
				return nil, err
			}
			return []FlowRow{}, nil
		}
		var err error
		universe, err = UnionOfTopWords(docs, labels, k)
		if err != nil {
			return nil, err
		}
	} else {
		universe = dedupeSorted(words)
	}

	rows := []FlowRow{}
	for _, d := range docs {
		for _, w := range universe {
			if n := d.Result.WordCount.Get(w); n > 0 {
				rows = append(rows, FlowRow{Source: d.Label, Target: w, Value: n})
			}
		}
	}
	return rows, nil
}

// LengthDistribution sums word-length histograms across documents.
func LengthDistribution(docs []corpus.Document) *freq.Histogram {
	h := freq.NewHistogram()
	for _, d := range docs {
		for _, l := range d.Result.WordLengths.Lengths() {
			h.Add(l, d.Result.WordLengths.Get(l))
		}
	}
	return h
}

func dedupeSorted(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

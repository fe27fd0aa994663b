// Package report bundles every chart payload of a session into one document
// for an external renderer.
package report

import (
	"crypto/rand"
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/textlens/pkg/textlens/diagram"
)

// Builder stamps reports with sortable unique IDs.
type Builder struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
	now     func() time.Time
}

// New creates a new report builder
func New() *Builder {
	return &Builder{
		entropy: ulid.Monotonic(rand.Reader, 0),
		now:     time.Now,
	}
}

// DocumentSummary describes one registered document.
type DocumentSummary struct {
	Label         string `json:"label"`
	NumWords      int    `json:"num_words"`
	DistinctWords int    `json:"distinct_words"`
}

// Charts holds the deterministic part of a report. WordLengths is the
// corpus-wide word length distribution.
type Charts struct {
	Flow        diagram.Flow            `json:"flow"`
	MostCommon  diagram.BarChart        `json:"most_common"`
	Sentiment   diagram.ScatterChart    `json:"sentiment"`
	Stacked     diagram.StackedBarChart `json:"stacked"`
	WordLengths map[int]int             `json:"word_lengths"`
}

// Report is a structured, renderer-ready summary of a corpus.
type Report struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	GeneratedAt time.Time         `json:"generated_at"`
	Documents   []DocumentSummary `json:"documents"`
	Charts      Charts            `json:"charts"`
}

// Build creates a report around charts.
func (b *Builder) Build(title string, docs []DocumentSummary, charts Charts) Report {
	b.mu.Lock()
	now := b.now()
	id := ulid.MustNew(ulid.Timestamp(now), b.entropy).String()
	b.mu.Unlock()

	if docs == nil {
		docs = []DocumentSummary{}
	}
	return Report{
		ID:          id,
		Title:       title,
		GeneratedAt: now.UTC(),
		Documents:   docs,
		Charts:      charts,
	}
}

// WriteJSON encodes r as indented JSON.
func (r Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

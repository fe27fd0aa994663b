package diagram

import (
	"fmt"

	"github.com/cognicore/textlens/pkg/textlens/aggregate"
)

// Axis limits used by the per-document charts.
var (
	BarCountLimit     = [2]float64{0, 50}
	PolarityLimit     = [2]float64{-1.1, 1.1}
	SubjectivityLimit = [2]float64{0, 1}
)

// Grid is a subplot layout.
type Grid struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// gridFor lays n panels out two per row.
func gridFor(n int) Grid {
	const cols = 2
	return Grid{Rows: (n + cols - 1) / cols, Cols: cols}
}

// BarPanel is one document's horizontal bar chart.
type BarPanel struct {
	Label  string   `json:"label"`
	Words  []string `json:"words"`
	Counts []int    `json:"counts"`
}

// BarChart shows each document's most common words.
type BarChart struct {
	Title  string     `json:"title"`
	Grid   Grid       `json:"grid"`
	XLimit [2]float64 `json:"x_limit"`
	Panels []BarPanel `json:"panels"`
}

// NewBarChart builds a bar chart from per-document frequency tables.
func NewBarChart(title string, tables []aggregate.DocumentCounts) BarChart {
	c := BarChart{
		Title:  title,
		Grid:   gridFor(len(tables)),
		XLimit: BarCountLimit,
		Panels: make([]BarPanel, len(tables)),
	}
	for i, t := range tables {
		p := BarPanel{Label: t.Label, Words: make([]string, len(t.Counts)), Counts: make([]int, len(t.Counts))}
		for j, e := range t.Counts {
			p.Words[j] = e.Token
			p.Counts[j] = e.Count
		}
		c.Panels[i] = p
	}
	return c
}

// ScatterPanel is one document's polarity/subjectivity scatter.
type ScatterPanel struct {
	Label  string            `json:"label"`
	Points []aggregate.Point `json:"points"`
}

// ScatterChart shows word sentiment per document.
type ScatterChart struct {
	Title  string         `json:"title"`
	Grid   Grid           `json:"grid"`
	XLimit [2]float64     `json:"x_limit"`
	YLimit [2]float64     `json:"y_limit"`
	Panels []ScatterPanel `json:"panels"`
}

// NewScatterChart builds a sentiment scatter chart. Panels follow the order
// of panels passed in.
func NewScatterChart(title string, panels []ScatterPanel) ScatterChart {
	if panels == nil {
		panels = []ScatterPanel{}
	}
	return ScatterChart{
		Title:  title,
		Grid:   gridFor(len(panels)),
		XLimit: PolarityLimit,
		YLimit: SubjectivityLimit,
		Panels: panels,
	}
}

// Series is one document's layer in a stacked bar chart. Offsets are where
// each bar segment starts.
type Series struct {
	Label   string `json:"label"`
	Counts  []int  `json:"counts"`
	Offsets []int  `json:"offsets"`
}

// StackedBarChart shows the globally most common words split by document.
type StackedBarChart struct {
	Title  string   `json:"title"`
	Words  []string `json:"words"`
	Series []Series `json:"series"`
}

// NewStackedBarChart stacks each document's counts on top of the previous
// documents'. k is the requested word count, used in the title.
func NewStackedBarChart(st aggregate.Stacked, k int) StackedBarChart {
	c := StackedBarChart{
		Title:  fmt.Sprintf("Top %d Most Common Words Across Files", k),
		Words:  st.Words,
		Series: make([]Series, len(st.Labels)),
	}
	if c.Words == nil {
		c.Words = []string{}
	}
	bottom := make([]int, len(st.Words))
	for i, label := range st.Labels {
		s := Series{Label: label, Counts: st.Counts[i], Offsets: make([]int, len(bottom))}
		copy(s.Offsets, bottom)
		for j, n := range st.Counts[i] {
			bottom[j] += n
		}
		c.Series[i] = s
	}
	return c
}

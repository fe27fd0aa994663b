// Package diagram converts aggregated tables into the structures chart
// renderers consume.
package diagram

import (
	"fmt"
	"sort"

	"github.com/cognicore/textlens/pkg/textlens/aggregate"
	"github.com/cognicore/textlens/pkg/textlens/internalerr"
)

// Default node styling for flow diagrams.
const (
	DefaultThickness = 50
	DefaultPad       = 50
)

// Table is a small column-oriented dataset. Each row holds one value per
// column, in column order.
type Table struct {
	Columns []string
	Rows    [][]any
}

// Link is a weighted edge between two node codes.
type Link struct {
	Source int     `json:"source"`
	Target int     `json:"target"`
	Value  float64 `json:"value"`
}

// Flow is a node/link description of a flow (Sankey) diagram. Links refer
// to positions in Nodes.
type Flow struct {
	Nodes     []string `json:"nodes"`
	Links     []Link   `json:"links"`
	Thickness int      `json:"thickness"`
	Pad       int      `json:"pad"`
}

// FlowOption adjusts node styling.
type FlowOption func(*Flow)

// WithThickness sets the node thickness.
func WithThickness(n int) FlowOption {
	return func(f *Flow) { f.Thickness = n }
}

// WithPad sets the padding between nodes.
func WithPad(n int) FlowOption {
	return func(f *Flow) { f.Pad = n }
}

// BuildFlow turns two categorical columns of t into a flow diagram. Every
// distinct label from either column becomes a node; nodes are sorted so
// their codes are stable for identical input. vals names the weight column;
// an empty vals gives every row weight 1. Codes depend only on t.
func BuildFlow(t Table, src, targ, vals string, opts ...FlowOption) (Flow, error) {
	si, err := columnIndex(t, src)
	if err != nil {
		return Flow{}, err
	}
	ti, err := columnIndex(t, targ)
	if err != nil {
		return Flow{}, err
	}
	vi := -1
	if vals != "" {
		if vi, err = columnIndex(t, vals); err != nil {
			return Flow{}, err
		}
	}

	type edge struct {
		src, targ string
		val       float64
	}
	edges := make([]edge, 0, len(t.Rows))
	seen := make(map[string]struct{})
	for i, row := range t.Rows {
		if len(row) != len(t.Columns) {
			return Flow{}, fmt.Errorf("%w: row %d has %d values for %d columns", internalerr.ErrInvalidInput, i, len(row), len(t.Columns))
		}
		e := edge{src: fmt.Sprint(row[si]), targ: fmt.Sprint(row[ti]), val: 1}
		if vi >= 0 {
			v, err := toFloat(row[vi])
			if err != nil {
				return Flow{}, fmt.Errorf("%w: row %d column %q: %v", internalerr.ErrInvalidInput, i, vals, err)
			}
			e.val = v
		}
		seen[e.src] = struct{}{}
		seen[e.targ] = struct{}{}
		edges = append(edges, e)
	}

	labels := make([]string, 0, len(seen))
	for l := range seen {
		labels = append(labels, l)
	}
	sort.Strings(labels)

	codes := make(map[string]int, len(labels))
	for i, l := range labels {
		codes[l] = i
	}

	f := Flow{
		Nodes:     labels,
		Links:     make([]Link, len(edges)),
		Thickness: DefaultThickness,
		Pad:       DefaultPad,
	}
	for i, e := range edges {
		f.Links[i] = Link{Source: codes[e.src], Target: codes[e.targ], Value: e.val}
	}
	for _, opt := range opts {
		opt(&f)
	}
	return f, nil
}

// FlowFromRows builds a flow diagram from document→word rows.
func FlowFromRows(rows []aggregate.FlowRow, opts ...FlowOption) (Flow, error) {
	t := Table{Columns: []string{"src", "targ", "val"}, Rows: make([][]any, len(rows))}
	for i, r := range rows {
		t.Rows[i] = []any{r.Source, r.Target, r.Value}
	}
	return BuildFlow(t, "src", "targ", "val", opts...)
}

func columnIndex(t Table, name string) (int, error) {
	for i, c := range t.Columns {
		if c == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: no column %q in %v", internalerr.ErrInvalidInput, name, t.Columns)
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case int:
		return float64(n), nil
	case int8:
		return float64(n), nil
	case int16:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint:
		return float64(n), nil
	case uint8:
		return float64(n), nil
	case uint16:
		return float64(n), nil
	case uint32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case float32:
		return float64(n), nil
	case float64:
		return n, nil
	default:
		return 0, fmt.Errorf("value %v (%T) is not numeric", v, v)
	}
}

// Package corpus defines the label-indexed collection of analyzed documents.
package corpus

import (
	"context"
	"fmt"
	"strings"

	"github.com/cognicore/textlens/pkg/textlens/analysis"
	"github.com/cognicore/textlens/pkg/textlens/internalerr"
)

// Store keeps one analysis result per document label. Registering a label
// that already exists replaces all of its metrics at once and keeps the
// label's original position.
type Store interface {
	Close() error

	Register(ctx context.Context, label string, r analysis.Result) error
	Get(ctx context.Context, label string) (Document, bool, error)

	// Labels returns labels in first-registration order.
	Labels(ctx context.Context) ([]string, error)
	// Documents returns a snapshot of every document in label order.
	Documents(ctx context.Context) ([]Document, error)
	Len(ctx context.Context) (int, error)
}

// Document is a registered result under its label.
type Document struct {
	Label  string
	Result analysis.Result
}

// CheckEntry validates a label/result pair before it is written.
func CheckEntry(label string, r analysis.Result) error {
	if strings.TrimSpace(label) == "" {
		return fmt.Errorf("%w: label is empty", internalerr.ErrInvalidLabel)
	}
	if err := r.Validate(); err != nil {
		return fmt.Errorf("label %q: %w", label, err)
	}
	return nil
}

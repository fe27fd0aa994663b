package ingest

import (
	"errors"
	"strings"
)

// Doc names one document to load: where it comes from and the label it is
// registered under.
type Doc struct {
	Source string `yaml:"source" json:"source" validate:"required"`
	Label  string `yaml:"label,omitempty" json:"label,omitempty"`
}

// Validate checks if the document has required fields
func (d *Doc) Validate() error {
	if strings.TrimSpace(d.Source) == "" {
		return errors.New("doc source is required")
	}
	return nil
}

// EffectiveLabel returns the label, falling back to the source identifier.
func (d *Doc) EffectiveLabel() string {
	if d.Label != "" {
		return d.Label
	}
	return d.Source
}

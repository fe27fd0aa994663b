// Package sentiment scores single words for polarity and subjectivity.
package sentiment

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/textlens/pkg/textlens/internalerr"
)

// Score is the sentiment of one token.
type Score struct {
	Polarity     float64 `json:"polarity" yaml:"polarity"`         // [-1, 1]
	Subjectivity float64 `json:"subjectivity" yaml:"subjectivity"` // [0, 1]
}

// Valid reports whether both components are in range.
func (s Score) Valid() bool {
	return s.Polarity >= -1 && s.Polarity <= 1 && s.Subjectivity >= 0 && s.Subjectivity <= 1
}

// Scorer rates a token. Implementations must be deterministic per token.
type Scorer interface {
	Score(token string) (Score, error)
}

// Func adapts a plain function to Scorer.
type Func func(token string) (Score, error)

// Score calls f.
func (f Func) Score(token string) (Score, error) { return f(token) }

// Lexicon scores words from a fixed table. Words outside the table are
// neutral and objective.
type Lexicon struct {
	words map[string]Score
}

// NewLexicon creates an empty lexicon.
func NewLexicon() *Lexicon {
	return &Lexicon{words: make(map[string]Score)}
}

// Set assigns a score to word. Out-of-range scores are rejected.
func (l *Lexicon) Set(word string, s Score) error {
	if !s.Valid() {
		return fmt.Errorf("%w: score for %q out of range: %+v", internalerr.ErrInvalidInput, word, s)
	}
	l.words[strings.ToLower(word)] = s
	return nil
}

// Len returns the number of scored words.
func (l *Lexicon) Len() int { return len(l.words) }

// Score looks token up in the table.
func (l *Lexicon) Score(token string) (Score, error) {
	return l.words[token], nil
}

// LoadFromYAML loads a lexicon from a YAML file.
//
// Expected format:
//
//	words:
//	  good: {polarity: 0.7, subjectivity: 0.6}
//	  awful: {polarity: -1.0, subjectivity: 1.0}
func LoadFromYAML(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read lexicon %s: %v", internalerr.ErrIO, path, err)
	}
	return ParseYAML(data)
}

// ParseYAML decodes a lexicon document.
func ParseYAML(data []byte) (*Lexicon, error) {
	var doc struct {
		Words map[string]Score `yaml:"words"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrDecode, err)
	}

	lex := NewLexicon()
	for w, s := range doc.Words {
		if err := lex.Set(w, s); err != nil {
			return nil, err
		}
	}
	return lex, nil
}

//go:embed lexicon.yaml
var defaultLexicon []byte

// Default returns the built-in English lexicon.
func Default() *Lexicon {
	lex, err := ParseYAML(defaultLexicon)
	if err != nil {
		panic(fmt.Sprintf("sentiment: built-in lexicon is invalid: %v", err))
	}
	return lex
}

package ingest

import (
	"strings"
	"unicode"
)

// quoteChars are removed outright before punctuation stripping, so "don't"
// becomes "dont" rather than two tokens.
const quoteChars = "‘’“”'\"`"

// asciiPunct is the ASCII punctuation set removed from text.
const asciiPunct = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// StopChecker reports whether a normalized token is excluded.
type StopChecker interface {
	IsStop(token string) bool
}

// Tokenizer handles text normalization and stopword filtering
type Tokenizer struct {
	stops StopChecker
}

// NewTokenizer creates a tokenizer filtering against stops. A nil checker
// filters nothing.
func NewTokenizer(stops StopChecker) *Tokenizer {
	return &Tokenizer{stops: stops}
}

// Tokenize normalizes text and drops stopwords.
func (t *Tokenizer) Tokenize(text string) []string {
	tokens := Normalize(text)
	if t.stops == nil {
		return tokens
	}
	kept := tokens[:0]
	for _, tok := range tokens {
		if !t.stops.IsStop(tok) {
			kept = append(kept, tok)
		}
	}
	return kept
}

// Normalize turns raw text into lowercase word tokens: quote variants and
// ASCII punctuation are deleted, the rest is lowercased and split on
// whitespace. It never returns empty tokens.
func Normalize(text string) []string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if isStripped(r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.Fields(strings.ToLower(b.String()))
}

func isStripped(r rune) bool {
	if r > unicode.MaxASCII {
		return strings.ContainsRune(quoteChars, r)
	}
	return strings.ContainsRune(asciiPunct, r)
}

package stoplist

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/textlens/pkg/textlens/internalerr"
	"github.com/cognicore/textlens/pkg/textlens/source"
)

// Set holds the stopwords excluded during analysis. The zero value is an
// empty set that filters nothing.
type Set struct {
	mu    sync.RWMutex
	stops map[string]struct{}
}

// New creates a set with the given words.
func New(words ...string) *Set {
	s := &Set{}
	s.Replace(words)
	return s
}

// IsStop checks if a token is a stopword
func (s *Set) IsStop(token string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.stops[token]
	return ok
}

// Len returns the number of stopwords.
func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.stops)
}

// All returns all stopwords, sorted.
func (s *Set) All() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]string, 0, len(s.stops))
	for w := range s.stops {
		result = append(result, w)
	}
	sort.Strings(result)
	return result
}

// Replace swaps the whole set for words.
func (s *Set) Replace(words []string) {
	stops := make(map[string]struct{}, len(words))
	for _, w := range words {
		if w == "" {
			continue
		}
		stops[w] = struct{}{}
	}
	s.mu.Lock()
	s.stops = stops
	s.mu.Unlock()
}

// LoadFile replaces the set with the words in a local file. Plain files hold
// one word per line; .yaml/.yml files hold a `terms:` list. On failure the
// set is left unchanged.
func (s *Set) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: read stoplist %s: %v", internalerr.ErrIO, path, err)
	}

	var words []string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		words, err = ParseYAML(data)
	default:
		words, err = Parse(data)
	}
	if err != nil {
		return fmt.Errorf("stoplist %s: %w", path, err)
	}

	s.Replace(words)
	return nil
}

// LoadURL replaces the set with the newline-separated words served at url.
// On failure the set is left unchanged.
func (s *Set) LoadURL(ctx context.Context, f source.Fetcher, url string) error {
	resp, err := f.Fetch(ctx, url)
	if err != nil {
		return fmt.Errorf("%w: fetch stoplist: %w", internalerr.ErrIO, err)
	}

	words, err := Parse(resp.Body)
	if err != nil {
		return fmt.Errorf("stoplist %s: %w", url, err)
	}

	s.Replace(words)
	return nil
}

// Parse decodes line-separated UTF-8 words. Lines may end in \n, \r\n or
// a bare \r; empty lines are dropped and words are otherwise kept verbatim.
func Parse(data []byte) ([]string, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: stoplist is not valid UTF-8", internalerr.ErrDecode)
	}

	var words []string
	text := strings.NewReplacer("\r\n", "\n", "\r", "\n").Replace(string(data))
	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			continue
		}
		words = append(words, line)
	}
	return words, nil
}

// yamlStoplist is the YAML layout of a stoplist file.
type yamlStoplist struct {
	Terms []string `yaml:"terms"`
}

// ParseYAML decodes a `terms:` stoplist document.
func ParseYAML(data []byte) ([]string, error) {
	var sl yamlStoplist
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrDecode, err)
	}
	return sl.Terms, nil
}

// Package config loads analysis run files.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/cognicore/textlens/pkg/textlens/ingest"
	"github.com/cognicore/textlens/pkg/textlens/internalerr"
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

// EnvPrefix prefixes environment variables that override run file values.
const EnvPrefix = "TEXTLENS_"

// StoreConfig selects the corpus backend.
type StoreConfig struct {
	Type string `yaml:"type" validate:"omitempty,oneof=memory sqlite"`
	Path string `yaml:"path" validate:"required_if=Type sqlite"`
}

// FetchConfig tunes HTTP fetching of web documents and word lists.
type FetchConfig struct {
	Timeout   time.Duration `yaml:"timeout" validate:"gte=0"`
	UserAgent string        `yaml:"user_agent"`
}

// Run describes one analysis run.
type Run struct {
	Title        string       `yaml:"title"`
	StopWords    string       `yaml:"stopwords"`
	StopWordsURL string       `yaml:"stopwords_url" validate:"omitempty,url"`
	Lexicon      string       `yaml:"lexicon"`
	Store        StoreConfig  `yaml:"store"`
	Fetch        FetchConfig  `yaml:"fetch"`
	Documents    []ingest.Doc `yaml:"documents" validate:"required,min=1,dive"`
	Concurrency  int          `yaml:"concurrency" validate:"gte=0"`
	TopK         int          `yaml:"top_k" validate:"gte=0"`
	FlowK        int          `yaml:"flow_k" validate:"gte=0"`
	FlowWords    []string     `yaml:"flow_words"`
	StackK       int          `yaml:"stack_k" validate:"gte=0"`
	Output       string       `yaml:"output"`
}

// Load reads a run file, applies environment overrides and defaults, and
// validates the result.
func Load(path string) (*Run, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", internalerr.ErrIO, path, err)
	}
	return Parse(data)
}

// Parse decodes a run file from YAML.
func Parse(data []byte) (*Run, error) {
	var r Run
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrInvalidConfig, err)
	}
	if err := r.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	r.ApplyDefaults()
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// ApplyDefaults fills unset fields.
func (r *Run) ApplyDefaults() {
	if r.Title == "" {
		r.Title = "Text Analysis"
	}
	if r.Store.Type == "" {
		r.Store.Type = StoreMemory
	}
	if r.TopK == 0 {
		r.TopK = 10
	}
	if r.FlowK == 0 {
		r.FlowK = 3
	}
	if r.StackK == 0 {
		r.StackK = 10
	}
}

// Validate checks the run against its struct tags.
func (r *Run) Validate() error {
	if err := validator.New().Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, len(verrs))
			for i, fe := range verrs {
				fields[i] = fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag())
			}
			return fmt.Errorf("%w: invalid fields: %s", internalerr.ErrInvalidConfig, strings.Join(fields, ", "))
		}
		return fmt.Errorf("%w: %v", internalerr.ErrInvalidConfig, err)
	}
	return nil
}

// ApplyEnv overrides scalar settings from TEXTLENS_* variables.
func (r *Run) ApplyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"TITLE":            &r.Title,
		"STOPWORDS":        &r.StopWords,
		"STOPWORDS_URL":    &r.StopWordsURL,
		"LEXICON":          &r.Lexicon,
		"STORE_TYPE":       &r.Store.Type,
		"STORE_PATH":       &r.Store.Path,
		"FETCH_USER_AGENT": &r.Fetch.UserAgent,
		"OUTPUT":           &r.Output,
	}
	for key, dst := range strs {
		if v, ok := lookup(EnvPrefix + key); ok {
			*dst = v
		}
	}

	ints := map[string]*int{
		"CONCURRENCY": &r.Concurrency,
		"TOP_K":       &r.TopK,
		"FLOW_K":      &r.FlowK,
		"STACK_K":     &r.StackK,
	}
	for key, dst := range ints {
		v, ok := lookup(EnvPrefix + key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s%s=%q is not an integer", internalerr.ErrInvalidConfig, EnvPrefix, key, v)
		}
		*dst = n
	}

	if v, ok := lookup(EnvPrefix + "FETCH_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %sFETCH_TIMEOUT=%q: %v", internalerr.ErrInvalidConfig, EnvPrefix, v, err)
		}
		r.Fetch.Timeout = d
	}
	if v, ok := lookup(EnvPrefix + "FLOW_WORDS"); ok {
		r.FlowWords = strings.FieldsFunc(v, func(c rune) bool { return c == ',' || c == ' ' })
	}
	return nil
}

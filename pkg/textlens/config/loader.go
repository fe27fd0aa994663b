package config

import (
	"context"
	"fmt"

	"github.com/cognicore/textlens/pkg/textlens"
	"github.com/cognicore/textlens/pkg/textlens/corpus"
	"github.com/cognicore/textlens/pkg/textlens/corpus/memstore"
	"github.com/cognicore/textlens/pkg/textlens/corpus/sqlite"
	"github.com/cognicore/textlens/pkg/textlens/sentiment"
	"github.com/cognicore/textlens/pkg/textlens/source"
)

// Loader turns a Run into a ready Session.
type Loader struct {
	Run *Run
}

// Session opens the configured store, loads the lexicon and stopwords, and
// returns a session with no documents yet. The caller closes it.
func (l *Loader) Session(ctx context.Context) (*textlens.Session, error) {
	store, err := l.openStore(ctx)
	if err != nil {
		return nil, err
	}

	var scorer sentiment.Scorer
	if l.Run.Lexicon != "" {
		lex, err := sentiment.LoadFromYAML(l.Run.Lexicon)
		if err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("load lexicon: %w", err)
		}
		scorer = lex
	}

	s := textlens.New(textlens.Options{
		Store:  store,
		Scorer: scorer,
		Fetcher: source.NewHTTPFetcher(&source.Options{
			Timeout:   l.Run.Fetch.Timeout,
			UserAgent: l.Run.Fetch.UserAgent,
		}),
	})

	switch {
	case l.Run.StopWords != "":
		if err := s.LoadStopWords(l.Run.StopWords); err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("load stopwords: %w", err)
		}
	case l.Run.StopWordsURL != "":
		if err := s.LoadStopWordsURL(ctx, l.Run.StopWordsURL); err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("load stopwords: %w", err)
		}
	}
	return s, nil
}

// ReportOptions maps the run's chart settings.
func (l *Loader) ReportOptions() textlens.ReportOptions {
	return textlens.ReportOptions{
		Title:     l.Run.Title,
		FlowWords: l.Run.FlowWords,
		FlowK:     l.Run.FlowK,
		TopK:      l.Run.TopK,
		StackK:    l.Run.StackK,
	}
}

func (l *Loader) openStore(ctx context.Context) (corpus.Store, error) {
	switch l.Run.Store.Type {
	case "", StoreMemory:
		return memstore.New(), nil
	case StoreSQLite:
		return sqlite.OpenSQLite(ctx, l.Run.Store.Path)
	default:
		return nil, fmt.Errorf("unknown store type %q", l.Run.Store.Type)
	}
}

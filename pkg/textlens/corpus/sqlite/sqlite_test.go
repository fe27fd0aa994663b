package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/cognicore/textlens/pkg/textlens/corpus"
	"github.com/cognicore/textlens/pkg/textlens/corpus/corpustest"
	"github.com/cognicore/textlens/pkg/textlens/internalerr"
)

func openTemp(t *testing.T) corpus.Store {
	t.Helper()
	st, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "corpus.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestStoreContract(t *testing.T) {
	corpustest.Run(t, openTemp)
}

func TestReopenKeepsDocuments(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "persist.db")

	st, err := OpenSQLite(ctx, dbPath)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := st.Register(ctx, "saved", corpustest.Result(t, "alpha beta alpha")); err != nil {
		t.Fatalf("Register: %v", err)
	}
	st.Close()

	st, err = OpenSQLite(ctx, dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer st.Close()

	doc, found, err := st.Get(ctx, "saved")
	if err != nil || !found {
		t.Fatalf("Get after reopen: found=%v err=%v", found, err)
	}
	if doc.Result.WordCount.Get("alpha") != 2 || doc.Result.NumWords != 3 {
		t.Errorf("unexpected result after reopen: %+v", doc.Result.WordCount.Entries())
	}
	if keys := doc.Result.WordCount.Keys(); keys[0] != "alpha" || keys[1] != "beta" {
		t.Errorf("insertion order lost: %v", keys)
	}
}

func TestOpenInvalidPath(t *testing.T) {
	_, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "missing-dir", "x", "db.sqlite"))
	if err == nil {
		t.Fatal("expected error opening database in a missing directory")
	}
}

func TestRegisterAfterCloseIsStoreUnavailable(t *testing.T) {
	ctx := context.Background()
	st, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "closed.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	err = st.Register(ctx, "doc", corpustest.Result(t, "alpha beta"))
	if !errors.Is(err, internalerr.ErrStoreUnavailable) {
		t.Errorf("Register on closed store = %v, want ErrStoreUnavailable", err)
	}
}

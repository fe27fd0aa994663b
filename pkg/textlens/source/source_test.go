package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/textlens/pkg/textlens/internalerr"
)

func TestFileReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("Hello, World!"), 0o644))

	text, err := FileReader{}.Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Hello, World!", text)
}

func TestFileReader_Missing(t *testing.T) {
	_, err := FileReader{}.Read(context.Background(), filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, internalerr.ErrSourceUnavailable))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	var srcErr *Error
	assert.True(t, errors.As(err, &srcErr))
}

func TestFileReader_InvalidUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.txt")
	require.NoError(t, os.WriteFile(path, []byte{0xff, 0xfe, 'a'}, 0o644))

	_, err := FileReader{}.Read(context.Background(), path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, internalerr.ErrDecode))
}

func TestTextReader(t *testing.T) {
	text, err := TextReader{Text: "blob"}.Read(context.Background(), "ignored")
	require.NoError(t, err)
	assert.Equal(t, "blob", text)
}

func TestWebReader_StripsMarkup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<html><head><title>T</title><style>p{}</style></head>
<body><script>var x = 1;</script><p>Hello <b>brave</b> world</p>
<p>Second line</p></body></html>`))
	}))
	defer srv.Close()

	text, err := NewWebReader(nil).Read(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Contains(t, text, "Hello brave world")
	assert.Contains(t, text, "Second line")
	assert.NotContains(t, text, "var x")
	assert.NotContains(t, text, "p{}")
}

func TestWebReader_DecodesLatin1(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
		// "café" in Latin-1
		_, _ = w.Write([]byte{'<', 'p', '>', 'c', 'a', 'f', 0xe9, '<', '/', 'p', '>'})
	}))
	defer srv.Close()

	text, err := NewWebReader(nil).Read(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "café", text)
}

func TestWebReader_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewWebReader(nil).Read(context.Background(), srv.URL)
	require.Error(t, err)
	assert.True(t, errors.Is(err, internalerr.ErrSourceUnavailable))
	assert.Contains(t, err.Error(), "HTTP status 404")
}

func TestHTTPFetcher_InvalidURL(t *testing.T) {
	_, err := NewHTTPFetcher(nil).Fetch(context.Background(), "not a url")
	require.Error(t, err)
	assert.True(t, errors.Is(err, internalerr.ErrSourceUnavailable))
}

func TestHTTPFetcher_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	f := NewHTTPFetcher(&Options{Timeout: 50 * time.Millisecond})
	_, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.True(t, errors.Is(err, internalerr.ErrSourceUnavailable))
}

func TestHTTPFetcher_CustomHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "yes", r.Header.Get("X-Test"))
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	resp, err := NewHTTPFetcher(&Options{Headers: map[string]string{"X-Test": "yes"}}).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(resp.Body))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestExtractText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple paragraph", "<p>Hello world</p>", "Hello world"},
		{"nested tags", "<p><strong>Bold</strong> and <em>italic</em></p>", "Bold and italic"},
		{"plain text", "No HTML here", "No HTML here"},
		{"with newlines", "<p>Line 1</p>\n<p>Line 2</p>", "Line 1\nLine 2"},
		{"drops script", "<p>a</p><script>alert(1)</script>", "a"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractText(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelect(t *testing.T) {
	_, isWeb := Select("https://example.com/page", nil).(*WebReader)
	assert.True(t, isWeb)
	_, isWeb = Select("HTTP://EXAMPLE.COM", nil).(*WebReader)
	assert.True(t, isWeb)
	_, isFile := Select("docs/a.txt", nil).(FileReader)
	assert.True(t, isFile)
}

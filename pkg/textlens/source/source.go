package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"

	"github.com/cognicore/textlens/pkg/textlens/internalerr"
)

// Reader produces the full text of a document from its identifier.
type Reader interface {
	Read(ctx context.Context, id string) (string, error)
}

// FileReader reads local UTF-8 text files.
type FileReader struct{}

// Read loads the whole file into memory.
func (FileReader) Read(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &Error{URL: path, Message: "read cancelled", Cause: err}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &Error{URL: path, Message: "failed to read file", Cause: err}
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: %s is not valid UTF-8", internalerr.ErrDecode, path)
	}
	return string(data), nil
}

// TextReader serves a text blob that was fetched elsewhere. The identifier
// is ignored.
type TextReader struct {
	Text string
}

// Read returns the wrapped text.
func (r TextReader) Read(context.Context, string) (string, error) {
	return r.Text, nil
}

// WebReader fetches a page and reduces it to its visible text.
type WebReader struct {
	Fetcher Fetcher
}

// NewWebReader creates a web reader. A nil fetcher uses an HTTPFetcher
// with default options.
func NewWebReader(f Fetcher) *WebReader {
	if f == nil {
		f = NewHTTPFetcher(nil)
	}
	return &WebReader{Fetcher: f}
}

// Read fetches url, converts the body to UTF-8 according to its declared or
// sniffed charset, and strips markup.
func (w *WebReader) Read(ctx context.Context, url string) (string, error) {
	resp, err := w.Fetcher.Fetch(ctx, url)
	if err != nil {
		return "", err
	}

	body, err := decodeBody(resp.Body, resp.ContentType)
	if err != nil {
		return "", &Error{URL: url, Message: "failed to decode body", Cause: fmt.Errorf("%w: %w", internalerr.ErrDecode, err)}
	}

	text, err := ExtractText(body)
	if err != nil {
		return "", &Error{URL: url, Message: "failed to extract text", Cause: err}
	}
	return text, nil
}

// decodeBody converts raw bytes to a UTF-8 reader based on contentType and
// any <meta charset> in the first KB.
func decodeBody(raw []byte, contentType string) (io.Reader, error) {
	return charset.NewReader(bytes.NewReader(raw), contentType)
}

// ExtractText parses HTML and returns the text a browser would show,
// dropping script, style, and similar non-visible elements.
func ExtractText(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, noscript, template, head").Remove()

	return cleanWhitespace(doc.Text()), nil
}

// cleanWhitespace trims each line and drops empty ones.
func cleanWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	var cleaned []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}

// IsURL reports whether id should be fetched over HTTP.
func IsURL(id string) bool {
	lower := strings.ToLower(id)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Select picks the reader for an identifier: web pages for http(s) URLs,
// local files otherwise.
func Select(id string, f Fetcher) Reader {
	if IsURL(id) {
		return NewWebReader(f)
	}
	return FileReader{}
}

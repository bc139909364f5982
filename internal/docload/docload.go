// Package docload turns a benefits-handbook file into a single plain-text
// string. Supported formats: .txt/.md (read as-is), .json (text field or the
// whole document), .pdf, .html/.htm. Unknown extensions are treated as text.
package docload

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
	"golang.org/x/net/html"
)

// Sentinel errors surfaced to the caller, which decides on fallback strategy.
var (
	ErrDocumentNotFound  = errors.New("document not found")
	ErrUnsupportedFormat = errors.New("unsupported document format")
)

// Loader reads handbook files.
type Loader struct{}

// NewLoader creates a handbook loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load extracts the plain text of the handbook at path.
func (l *Loader) Load(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrDocumentNotFound, path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md":
		return readTextFile(path)
	case ".json":
		return readJSONText(path)
	case ".pdf":
		return readPDFText(path)
	case ".html", ".htm":
		return readHTMLText(path)
	default:
		return readTextFile(path)
	}
}

func readTextFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read handbook: %w", err)
	}
	return string(data), nil
}

// readJSONText prefers a top-level "text" field; failing that the whole
// document is used verbatim so keyword retrieval can still see it.
func readJSONText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read handbook: %w", err)
	}
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err == nil {
		if text, ok := payload["text"].(string); ok {
			return text, nil
		}
	}
	return string(data), nil
}

func readPDFText(path string) (string, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: open pdf: %v", ErrUnsupportedFormat, err)
	}
	defer f.Close()

	var buf strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if buf.Len() > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString(text)
	}
	return buf.String(), nil
}

// readHTMLText extracts visible text, skipping script/style/nav content.
func readHTMLText(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("read handbook: %w", err)
	}
	defer f.Close()

	doc, err := html.Parse(f)
	if err != nil {
		return "", fmt.Errorf("%w: parse html: %v", ErrUnsupportedFormat, err)
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return buf.String(), nil
}

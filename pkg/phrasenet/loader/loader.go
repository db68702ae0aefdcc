package loader

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"

	"github.com/cognicore/phrasenet/pkg/logger"
	"github.com/cognicore/phrasenet/pkg/phrasenet/internalerr"
)

// Format is an input document format.
type Format string

const (
	FormatText  Format = "text"
	FormatHTML  Format = "html"
	FormatJSONL Format = "jsonl"
)

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "txt", "":
		return FormatText, nil
	case "html", "htm":
		return FormatHTML, nil
	case "jsonl", "ndjson":
		return FormatJSONL, nil
	}
	return "", fmt.Errorf("%w: %q", internalerr.ErrUnsupportedFormat, s)
}

// FormatFromPath guesses the format from the file extension; anything
// unrecognized is read as plain text.
func FormatFromPath(path string) Format {
	f, err := ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return FormatText
	}
	return f
}

// Item is one line of a JSONL corpus.
type Item struct {
	URL   string `json:"url"`
	Title string `json:"title"`
	Body  string `json:"text"`
}

// Load reads the file at path and returns its text content.
func Load(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	text, err := Read(f, FormatFromPath(path))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return text, nil
}

// Read extracts text from r according to format.
func Read(r io.Reader, format Format) (string, error) {
	switch format {
	case FormatText:
		data, err := io.ReadAll(r)
		if err != nil {
			return "", err
		}
		return string(data), nil
	case FormatHTML:
		return readHTML(r)
	case FormatJSONL:
		return readJSONL(r)
	}
	return "", fmt.Errorf("%w: %q", internalerr.ErrUnsupportedFormat, format)
}

// elements whose text never reaches the reader
var skipElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
}

// elements that end a sentence-like block
var blockElements = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "tr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"title": true, "blockquote": true, "pre": true, "section": true, "article": true,
}

func readHTML(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		if n.Type == html.ElementNode && skipElements[n.Data] {
			return
		}
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extractText(c)
		}
		// Keep blocks apart so their text does not run into one sentence.
		if n.Type == html.ElementNode && blockElements[n.Data] {
			buf.WriteByte('\n')
		}
	}
	extractText(doc)

	return strings.TrimSpace(buf.String()), nil
}

func readJSONL(r io.Reader) (string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var bodies []string
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var item Item
		if err := json.Unmarshal([]byte(line), &item); err != nil {
			logger.Warn("skipping malformed JSON line", "line", lineNo, "err", err)
			continue
		}
		body := strings.TrimSpace(item.Body)
		if body == "" {
			continue
		}
		bodies = append(bodies, body)
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}

	if len(bodies) == 0 {
		return "", fmt.Errorf("%w: no documents with text", internalerr.ErrNoInput)
	}

	// Documents are separated by a newline, which is also a sentence break.
	return strings.Join(bodies, "\n"), nil
}

// Package htmldoc reads the text of HTML documents.
package htmldoc

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/net/html"

	"github.com/cfwren/palimpsest/textbuf"
)

// Reader provides access to the text content of an HTML document.
type Reader struct {
	doc   *html.Node
	title string
	meta  map[string]string
}

// Open opens an HTML file for reading.
func Open(filename string) (*Reader, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return OpenReader(f)
}

// OpenReader parses HTML from an io.Reader. Character entities are
// decoded by the parser.
func OpenReader(r io.Reader) (*Reader, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	reader := &Reader{
		doc:  doc,
		meta: make(map[string]string),
	}
	reader.extractHead(doc)

	return reader, nil
}

// Close releases resources associated with the Reader.
func (r *Reader) Close() error {
	// Nothing to close for HTML (no file handles kept)
	return nil
}

// Title returns the document title, or "" when the document has none.
func (r *Reader) Title() string {
	return r.title
}

// Meta returns the name/content pairs of the document's meta tags.
func (r *Reader) Meta() map[string]string {
	meta := make(map[string]string, len(r.meta))
	for k, v := range r.meta {
		meta[k] = v
	}
	return meta
}

// Text returns the visible text of the document. Runs of markup
// whitespace collapse to single spaces, block elements end lines,
// table cells are tab-separated, and script, style, and navigation
// subtrees are skipped.
func (r *Reader) Text() (string, error) {
	root := findElement(r.doc, "body")
	if root == nil {
		root = r.doc
	}

	var buf textbuf.Buffer
	appendNodeText(root, &buf)
	buf.Trim()

	return buf.String(), nil
}

// extractHead extracts title and meta tags from the head element.
func (r *Reader) extractHead(n *html.Node) {
	if n.Type == html.ElementNode && n.Data == "head" {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.Data {
			case "title":
				r.title = textContent(c)
			case "meta":
				name, content := "", ""
				for _, attr := range c.Attr {
					switch attr.Key {
					case "name", "property":
						name = attr.Val
					case "content":
						content = attr.Val
					}
				}
				if name != "" && content != "" {
					r.meta[name] = content
				}
			}
		}
		return
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.extractHead(c)
	}
}

// appendNodeText walks a subtree depth-first, appending its visible
// text to buf.
func appendNodeText(n *html.Node, buf *textbuf.Buffer) {
	switch n.Type {
	case html.TextNode:
		appendCollapsed(n.Data, buf)
		return
	case html.ElementNode:
		if shouldSkipElement(n.Data) {
			return
		}
		if n.Data == "br" {
			buf.AddRune('\n')
			return
		}
		if isBlockElement(n.Data) {
			endBlock(buf)
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		appendNodeText(c, buf)
	}

	if n.Type == html.ElementNode {
		switch {
		case n.Data == "td" || n.Data == "th":
			buf.AddRune('\t')
		case isBlockElement(n.Data):
			endBlock(buf)
		}
	}
}

// appendCollapsed appends text with each run of markup whitespace
// collapsed to a single space. No space is written at the start of the
// buffer or after a line or cell break.
func appendCollapsed(s string, buf *textbuf.Buffer) {
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f' {
			if last, ok := buf.LastRune(); ok && last != ' ' && last != '\n' && last != '\t' {
				buf.AddRune(' ')
			}
			continue
		}
		buf.AddRune(r)
	}
}

// endBlock closes the current output line at a block element boundary.
// Consecutive boundaries collapse to one line break.
func endBlock(buf *textbuf.Buffer) {
	buf.Trim()
	if buf.Len() > 0 {
		buf.AddRune('\n')
	}
}

// textContent returns the collapsed, trimmed text of a subtree.
func textContent(n *html.Node) string {
	var buf textbuf.Buffer
	appendNodeText(n, &buf)
	buf.Trim()
	return buf.String()
}

// Helper functions

// shouldSkipElement returns true if the element's subtree carries no
// document text.
func shouldSkipElement(tagName string) bool {
	switch tagName {
	case "script", "style", "noscript", "template", "svg", "math", "iframe", "object", "embed", "head", "nav", "aside":
		return true
	}
	return false
}

// isBlockElement returns true if the element ends its output line.
func isBlockElement(tagName string) bool {
	switch tagName {
	case "p", "div", "h1", "h2", "h3", "h4", "h5", "h6",
		"ul", "ol", "li", "table", "tr", "blockquote", "pre",
		"article", "section", "main", "header", "footer", "figure", "hr":
		return true
	}
	return false
}

// findElement finds the first element with the given tag name.
func findElement(n *html.Node, tagName string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tagName {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if result := findElement(c, tagName); result != nil {
			return result
		}
	}
	return nil
}

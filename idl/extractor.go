// Package idl harvests helpstring literals from interface definition sources.
package idl

import (
	"strings"

	"github.com/cfwren/palimpsest/textbuf"
)

// helpMarker opens a help string literal in IDL/ODL attribute blocks.
const helpMarker = `helpstring("`

// Extractor collects the human-readable help strings from an interface
// definition, ignoring everything else in the source.
type Extractor struct {
	buf textbuf.Buffer
}

// NewExtractor creates an Extractor ready for use.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns every helpstring literal in src, in order, with two
// newlines appended after each entry. The marker is matched literally
// wherever it appears. A marker whose closing quote never arrives ends
// the scan and the incomplete entry is dropped. Empty input yields an
// empty result.
func (e *Extractor) Extract(src string) string {
	e.buf.Allocate(len(src))
	e.buf.ClearLog()
	if len(src) == 0 {
		return ""
	}

	pos := 0
	for {
		idx := strings.Index(src[pos:], helpMarker)
		if idx < 0 {
			break
		}
		start := pos + idx + len(helpMarker)

		end := strings.Index(src[start:], `"`)
		if end < 0 {
			e.buf.LogMessage("help string missing closing quote; remainder dropped")
			break
		}

		e.buf.AddString(src[start : start+end])
		e.buf.AddString("\n\n")
		pos = start + end + 1
	}

	return e.buf.String()
}

// Warnings returns the diagnostics recorded by the most recent Extract
// call, in arrival order.
func (e *Extractor) Warnings() []string {
	return e.buf.Messages()
}

// Package tagfilter removes spans of text enclosed by registered tag pairs.
package tagfilter

import (
	"strings"

	"github.com/cfwren/palimpsest/textbuf"
)

// Tag is a start/end delimiter pair marking a span to exclude from output.
type Tag struct {
	Start string
	End   string
}

// Identical reports whether the start and end delimiters are the same
// string. Identical pairs cannot nest: the first end delimiter closes
// the span.
func (t Tag) Identical() bool {
	return t.Start == t.End
}

// Filter strips text enclosed by registered tag pairs while copying
// everything else through unchanged. Pairs are tried in registration
// order at each position, and the first match wins. Registered pairs
// persist across Apply calls until ClearTags.
type Filter struct {
	tags []Tag
	buf  textbuf.Buffer
}

// New returns a Filter with the given tag pairs registered in order.
func New(tags ...Tag) *Filter {
	f := &Filter{}
	for _, t := range tags {
		f.AddTag(t.Start, t.End)
	}
	return f
}

// AddTag registers a start/end delimiter pair. Pairs with an empty
// delimiter are ignored.
func (f *Filter) AddTag(start, end string) {
	if start == "" || end == "" {
		return
	}
	f.tags = append(f.tags, Tag{Start: start, End: end})
}

// Tags returns a copy of the registered pairs in registration order.
func (f *Filter) Tags() []Tag {
	if len(f.tags) == 0 {
		return nil
	}
	out := make([]Tag, len(f.tags))
	copy(out, f.tags)
	return out
}

// ClearTags removes all registered pairs.
func (f *Filter) ClearTags() {
	f.tags = f.tags[:0]
}

// Apply scans text left to right and returns it with every tagged span
// removed. Distinct pairs nest: inner occurrences of the same pair must
// balance before the span closes. A span whose end delimiter never
// arrives drops everything from its start delimiter to the end of input
// while keeping the text before it. Empty input yields an empty result.
func (f *Filter) Apply(text string) string {
	f.buf.Allocate(len(text))
	if len(text) == 0 {
		return ""
	}

	inclusionStart := 0
	i := 0
	for i < len(text) {
		tag, ok := f.matchAt(text, i)
		if !ok {
			i++
			continue
		}

		f.buf.AddString(text[inclusionStart:i])

		end := f.findClose(text, i+len(tag.Start), tag)
		if end < 0 {
			// Unterminated span: everything from the start
			// delimiter onward is dropped.
			return f.buf.String()
		}
		i = end + len(tag.End)
		inclusionStart = i
	}

	f.buf.AddString(text[inclusionStart:])
	return f.buf.String()
}

// matchAt returns the first registered pair whose start delimiter begins
// at position i.
func (f *Filter) matchAt(text string, i int) (Tag, bool) {
	for _, t := range f.tags {
		if strings.HasPrefix(text[i:], t.Start) {
			return t, true
		}
	}
	return Tag{}, false
}

// findClose locates the end delimiter that closes a span opened at
// position from (just past the start delimiter). It returns the index
// of the end delimiter, or -1 if the span never closes.
func (f *Filter) findClose(text string, from int, tag Tag) int {
	if tag.Identical() {
		idx := strings.Index(text[from:], tag.End)
		if idx < 0 {
			return -1
		}
		return from + idx
	}

	depth := 1
	for j := from; j < len(text); {
		switch {
		case strings.HasPrefix(text[j:], tag.Start):
			depth++
			j += len(tag.Start)
		case strings.HasPrefix(text[j:], tag.End):
			depth--
			if depth == 0 {
				return j
			}
			j += len(tag.End)
		default:
			j++
		}
	}
	return -1
}

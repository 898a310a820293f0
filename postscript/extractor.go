package postscript

import (
	"bytes"
	"errors"
	"strconv"
	"strings"

	"github.com/cfwren/palimpsest/textbuf"
)

var (
	// ErrHeaderNotFound indicates input without a %!PS-Adobe- header.
	ErrHeaderNotFound = errors.New("PostScript header not found")

	// ErrUnsupportedVersion indicates a PostScript language level of 3
	// or later, which this extractor does not read.
	ErrUnsupportedVersion = errors.New("PostScript level 3 and later not supported")
)

// Document structuring comments recognized by the extractor.
const (
	psHeader       = "%!PS-Adobe-"
	creatorComment = "%%Creator:"
	titleComment   = "%%Title:"
	pageComment    = "%%Page:"
	beginDocument  = "%%BeginDocument"
	endDocument    = "%%EndDocument"
)

// Extractor recovers the text of a PostScript document. An Extractor
// may be reused; Title and Warnings reflect the most recent Extract
// call. It is not safe for concurrent use.
type Extractor struct {
	buf   textbuf.Buffer
	title string
	dvips bool
}

// NewExtractor creates an Extractor ready for use.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the text carried by the document's string literals.
// Empty input yields an empty result. A missing %!PS-Adobe- header
// returns ErrHeaderNotFound, and a header version of 3 or later returns
// ErrUnsupportedVersion; all other anomalies degrade to a partial
// result with a diagnostic recorded for Warnings. Trailing whitespace
// is trimmed from the result.
func (e *Extractor) Extract(data []byte) (string, error) {
	e.buf.Allocate(len(data))
	e.buf.ClearLog()
	e.title = ""
	e.dvips = false

	if len(data) == 0 {
		return "", nil
	}

	headerAt := bytes.Index(data, []byte(psHeader))
	if headerAt < 0 {
		return "", ErrHeaderNotFound
	}
	if version := parseVersion(data[headerAt+len(psHeader):]); version >= 3 {
		return "", ErrUnsupportedVersion
	}

	e.readSetupComments(data, headerAt)

	// Page text starts at the first %%Page: comment; prologue strings
	// before it are procedure definitions, not content.
	start := headerAt
	if at := bytes.Index(data[headerAt:], []byte(pageComment)); at >= 0 {
		start = headerAt + at
	}

	s := scanner{data: data, pos: start, buf: &e.buf, dvips: e.dvips}
	s.run()

	e.buf.Trim()
	return e.buf.String(), nil
}

// Title returns the %%Title: value of the most recently extracted
// document, or "" when the document carried none.
func (e *Extractor) Title() string {
	return e.title
}

// Warnings returns the diagnostics recorded by the most recent Extract
// call, in arrival order.
func (e *Extractor) Warnings() []string {
	return e.buf.Messages()
}

// readSetupComments harvests the %%Creator: and %%Title: header
// comments. A creator of dvips (or its author's company name) switches
// the \\ escape to the double quote that generator means by it.
func (e *Extractor) readSetupComments(data []byte, from int) {
	if at := bytes.Index(data[from:], []byte(creatorComment)); at >= 0 {
		creator := strings.ToLower(commentLine(data, from+at+len(creatorComment)))
		if strings.Contains(creator, "dvips") || strings.Contains(creator, "radical eye software") {
			e.dvips = true
		}
	}
	if at := bytes.Index(data[from:], []byte(titleComment)); at >= 0 {
		e.title = strings.TrimSpace(commentLine(data, from+at+len(titleComment)))
	}
}

// scanner walks the document once, tracking string nesting and the
// pending state that couples neighboring tokens.
type scanner struct {
	data  []byte
	pos   int
	buf   *textbuf.Buffer
	dvips bool

	open    int
	closed  int
	pending pendingAccent

	// negB records that the previous text-showing command was a b
	// operator with a negative offset; a following g operator then
	// continues the word.
	negB bool
}

func (s *scanner) run() {
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		inside := s.open > s.closed

		switch {
		case c == '(':
			if inside {
				s.buf.AddRune('(')
			}
			s.open++
			s.pos++

		case c == ')':
			s.closed++
			if s.open > s.closed {
				s.buf.AddRune(')')
				s.pos++
			} else {
				s.gap()
			}

		case c == '\\' && inside:
			s.escape()

		case c == '%' && !inside:
			s.comment()

		case inside:
			s.literal(rune(c))
			s.pos++

		default:
			s.pos++
		}
	}
}

// comment handles a % comment outside any string. %%BeginDocument skips
// the whole embedded document; anything else skips the comment token.
func (s *scanner) comment() {
	if hasPrefixAt(s.data, s.pos, beginDocument) {
		at := bytes.Index(s.data[s.pos+len(beginDocument):], []byte(endDocument))
		if at < 0 {
			s.buf.LogMessage("embedded document not terminated by " + endDocument + "; returning partial text")
			s.pos = len(s.data)
			return
		}
		s.pos += len(beginDocument) + at + len(endDocument)
		return
	}
	for s.pos < len(s.data) && !isWhitespace(s.data[s.pos]) {
		s.pos++
	}
}

// gap runs from a string-closing paren to the next string, reading the
// positioning command between them to decide what separates the two
// strings in the output: nothing, a space, a newline, or a page break.
func (s *scanner) gap() {
	hyphenBefore := s.pos > 0 && s.data[s.pos-1] == '-'
	j := s.pos + 1

	// Horizontal offset argument, when it directly follows the paren.
	offset := 10
	numStart := j
	if j < len(s.data) && (s.data[j] == '-' || s.data[j] == '+') {
		j++
	}
	digitsStart := j
	for j < len(s.data) && isDigit(s.data[j]) {
		j++
	}
	if j > digitsStart {
		if n, err := strconv.Atoi(string(s.data[numStart:j])); err == nil {
			offset = n
		}
	} else {
		j = numStart
	}

	var op byte
	pageBreak := false
	newline := false
	for j < len(s.data) && s.data[j] != '(' {
		c := s.data[j]
		if c == '%' && hasPrefixAt(s.data, j, pageComment) {
			pageBreak = true
			j += len(pageComment)
			continue
		}
		if isLetter(c) && isLoneLetterAt(s.data, j) {
			switch c {
			case 'q', 'o', 'l', 'm', 'n', 'r', 's', 't', 'b', 'g':
				op = c
			case 'y':
				if j == 0 || s.data[j-1] != 'F' {
					newline = true
				}
			}
		}
		j++
	}

	// Separators only matter when another string follows. A newline
	// replaces the space decision entirely.
	if j < len(s.data) {
		if pageBreak {
			s.buf.AddRune('\f')
		}
		if newline {
			s.buf.AddRune('\n')
		} else if !s.suppressSpace(op, offset, hyphenBefore) {
			s.buf.AddRune(' ')
		}
	}

	s.negB = op == 'b' && offset < 0
	s.pos = j
}

// suppressSpace reports whether the gap's command continues the current
// word rather than starting a new one.
func (s *scanner) suppressSpace(op byte, offset int, hyphenBefore bool) bool {
	if hyphenBefore {
		return true
	}
	switch op {
	case 'q', 'o', 'l', 'm', 'n', 'r', 's', 't':
		return true
	case 'b':
		return offset <= 7
	case 'g':
		return s.negB
	}
	return false
}

// escape decodes a backslash sequence inside a string literal.
func (s *scanner) escape() {
	next := s.pos + 1
	if next >= len(s.data) {
		s.pos = next
		return
	}

	switch s.data[next] {
	case '(':
		s.buf.AddRune('(')
	case ')':
		s.buf.AddRune(')')
	case '\\':
		if s.dvips {
			s.buf.AddRune('"')
		} else {
			s.buf.AddRune('\\')
		}
	case 't':
		s.buf.AddRune('\t')
	case 'n':
		s.buf.AddRune('\n')
	case 'r':
		s.buf.AddRune('\r')
	case '\r':
		// Line continuation; swallow a following LF as well.
		if next+1 < len(s.data) && s.data[next+1] == '\n' {
			next++
		}
	case '\n':
		// Line continuation.
	default:
		s.octalOrLiteral(next)
		return
	}
	s.pos = next + 1
}

// octalOrLiteral finishes an escape that is not one of the named
// sequences: two or more octal digits map through the character tables,
// anything shorter is the next character taken literally.
func (s *scanner) octalOrLiteral(next int) {
	j := next
	value := 0
	digits := 0
	for j < len(s.data) && digits < 3 && isOctalDigit(s.data[j]) {
		value = value*8 + int(s.data[j]-'0')
		digits++
		j++
	}
	if digits >= 2 {
		s.emitCode(value)
		s.pos = j
		return
	}
	s.buf.AddRune(rune(s.data[next]))
	s.pos = next + 1
}

// emitCode resolves a multi-digit octal escape value: accent codes park
// a pending accent for the next letter, ligature slots emit their
// replacement, and unknown values emit the literal character code.
func (s *scanner) emitCode(value int) {
	switch value {
	case codeGrave:
		s.pending = accentGrave
	case codeAcute:
		s.pending = accentAcute
	case codeUmlaut:
		s.pending = accentUmlaut
	default:
		if replacement, ok := ligatures[value]; ok {
			s.buf.AddString(replacement)
			return
		}
		s.buf.AddRune(rune(value))
	}
}

// literal emits a plain character from inside a string, applying and
// clearing any pending accent.
func (s *scanner) literal(c rune) {
	if s.pending == accentNone {
		s.buf.AddRune(c)
		return
	}

	var forms map[rune]rune
	switch s.pending {
	case accentUmlaut:
		forms = umlautAccents
	case accentGrave:
		forms = graveAccents
	case accentAcute:
		forms = acuteAccents
	}
	if accented, ok := forms[c]; ok {
		s.buf.AddRune(accented)
	} else {
		s.buf.AddRune(c)
	}
	s.pending = accentNone
}

// Helper functions

// parseVersion reads the decimal version following the %!PS-Adobe-
// header. Absent or unreadable digits parse as zero.
func parseVersion(data []byte) float64 {
	end := 0
	seenDot := false
	for end < len(data) {
		c := data[end]
		if isDigit(c) {
			end++
			continue
		}
		if c == '.' && !seenDot {
			seenDot = true
			end++
			continue
		}
		break
	}
	if end == 0 {
		return 0
	}
	version, err := strconv.ParseFloat(string(data[:end]), 64)
	if err != nil {
		return 0
	}
	return version
}

// commentLine returns the text from pos to the end of the line.
func commentLine(data []byte, pos int) string {
	end := pos
	for end < len(data) && data[end] != '\n' && data[end] != '\r' {
		end++
	}
	return string(data[pos:end])
}

// hasPrefixAt reports whether prefix occurs in data at pos.
func hasPrefixAt(data []byte, pos int, prefix string) bool {
	if pos+len(prefix) > len(data) {
		return false
	}
	for i := 0; i < len(prefix); i++ {
		if data[pos+i] != prefix[i] {
			return false
		}
	}
	return true
}

// isLoneLetterAt reports whether the letter at pos stands alone rather
// than inside a longer word.
func isLoneLetterAt(data []byte, pos int) bool {
	if pos > 0 && isLetter(data[pos-1]) {
		return false
	}
	if pos+1 < len(data) && isLetter(data[pos+1]) {
		return false
	}
	return true
}

// isWhitespace checks if a byte is PostScript whitespace.
func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f' || c == 0
}

// isLetter checks if a byte is an ASCII letter.
func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// isDigit checks if a byte is a decimal digit.
func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// isOctalDigit checks if a byte is an octal digit.
func isOctalDigit(c byte) bool {
	return c >= '0' && c <= '7'
}

package palimpsest

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/cfwren/palimpsest/format"
	"github.com/cfwren/palimpsest/htmldoc"
	"github.com/cfwren/palimpsest/idl"
	"github.com/cfwren/palimpsest/postscript"
	"github.com/cfwren/palimpsest/tagfilter"
	"github.com/cfwren/palimpsest/unicodetext"
)

// Extractor provides a fluent interface for extracting text from
// PostScript, UTF-16 text, IDL, HTML, and plain text sources.
// Each configuration method returns a new Extractor instance, making
// it safe to share a configured extractor and allowing method chaining.
type Extractor struct {
	// Source
	filename string
	data     []byte
	loaded   bool

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error

	// Results of the most recent terminal operation
	title    string
	warnings []Warning
}

// clone creates a shallow copy of the Extractor with a deep copy of options.
// This ensures immutability - each chain method returns a new instance.
func (e *Extractor) clone() *Extractor {
	newExt := &Extractor{
		filename: e.filename,
		data:     e.data,
		loaded:   e.loaded,
		options:  e.options.clone(),
		err:      e.err,
		title:    e.title,
		warnings: append([]Warning(nil), e.warnings...),
	}
	return newExt
}

// ensureData loads the source file if the input is not in memory yet.
func (e *Extractor) ensureData() error {
	if e.loaded {
		return nil
	}
	if e.filename == "" {
		return fmt.Errorf("no input specified")
	}

	data, err := os.ReadFile(e.filename)
	if err != nil {
		return fmt.Errorf("reading %s: %w", e.filename, err)
	}
	e.data = data
	e.loaded = true
	return nil
}

// resolveFormat applies the format override or detects the format,
// content signature first, filename extension second. Undetectable
// input falls back to plain text with a warning.
func (e *Extractor) resolveFormat() format.Format {
	if e.options.format != format.Unknown {
		return e.options.format
	}
	if f := format.DetectFromMagic(e.data); f != format.Unknown {
		return f
	}
	if f := format.Detect(e.filename); f != format.Unknown {
		return f
	}
	e.warn(WarnFormatFallback, "format not detected; treating input as plain text")
	return format.PlainText
}

// warn records a non-fatal issue for the current terminal operation.
func (e *Extractor) warn(code WarningCode, msg string) {
	e.warnings = append(e.warnings, Warning{Code: code, Message: msg})
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// Format overrides format auto-detection.
//
// Example:
//
//	text, _, err := palimpsest.Open("dump.dat").Format(format.PostScript).Text()
func (e *Extractor) Format(f format.Format) *Extractor {
	newExt := e.clone()
	newExt.options.format = f
	return newExt
}

// StripTags removes every span between start and end from the
// extracted text, including the delimiters. Multiple calls are
// cumulative; spans are matched in registration order.
//
// Example:
//
//	text, _, err := palimpsest.Open("notes.txt").StripTags("[[", "]]").Text()
func (e *Extractor) StripTags(start, end string) *Extractor {
	newExt := e.clone()
	newExt.options.tags = append(newExt.options.tags, tagfilter.Tag{Start: start, End: end})
	return newExt
}

// Normalize trims trailing whitespace from each line of the extracted
// text and collapses runs of blank lines into a single blank line.
//
// Example:
//
//	text, _, err := palimpsest.Open("newsletter.ps").Normalize().Text()
func (e *Extractor) Normalize() *Extractor {
	newExt := e.clone()
	newExt.options.normalize = true
	return newExt
}

// DetectedFormat reports the format a terminal operation will treat
// the input as, after applying any Format override. The input is
// loaded if necessary.
//
// Example:
//
//	f, err := palimpsest.Open("mystery.dat").DetectedFormat()
func (e *Extractor) DetectedFormat() (format.Format, error) {
	if e.err != nil {
		return format.Unknown, e.err
	}
	if err := e.ensureData(); err != nil {
		return format.Unknown, err
	}
	return e.resolveFormat(), nil
}

// ============================================================================
// Terminal Operations (execute extraction and return results)
// ============================================================================

// Text extracts and returns the text content of the input.
//
// Returns the extracted text, any warnings encountered during
// processing, and an error if extraction failed. Warnings indicate
// non-fatal issues (e.g., an unterminated embedded document) where
// extraction succeeded but results may be partial.
//
// Example:
//
//	text, warnings, err := palimpsest.Open("newsletter.ps").Text()
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", palimpsest.FormatWarnings(warnings))
//	}
func (e *Extractor) Text() (string, []Warning, error) {
	if e.err != nil {
		return "", nil, e.err
	}
	if err := e.ensureData(); err != nil {
		return "", nil, err
	}

	e.title = ""
	e.warnings = nil

	var text string
	var err error
	switch f := e.resolveFormat(); f {
	case format.PostScript:
		text, err = e.extractPostScript()
	case format.UnicodeText:
		text, err = unicodetext.Decode(e.data)
	case format.IDL:
		text = e.extractIDL()
	case format.HTML:
		text, err = e.extractHTML()
	case format.PlainText:
		text = e.plainText()
	default:
		err = fmt.Errorf("unsupported file format: %s", f)
	}
	if err != nil {
		return "", e.warnings, err
	}

	if len(e.options.tags) > 0 {
		text = tagfilter.New(e.options.tags...).Apply(text)
	}
	if e.options.normalize {
		text = normalizeText(text)
	}

	return text, e.warnings, nil
}

// Title returns the document title captured by the most recent
// terminal operation, or "" when the source carried none. PostScript
// titles come from the %%Title: comment, HTML titles from the
// document head.
//
// Example:
//
//	ext := palimpsest.Open("newsletter.ps")
//	text, _, err := ext.Text()
//	title := ext.Title()
func (e *Extractor) Title() string {
	return e.title
}

// extractPostScript runs the PostScript text extractor and harvests
// its title and diagnostics.
func (e *Extractor) extractPostScript() (string, error) {
	ps := postscript.NewExtractor()
	text, err := ps.Extract(e.data)
	if err != nil {
		return "", fmt.Errorf("extracting PostScript text: %w", err)
	}
	e.title = ps.Title()
	for _, msg := range ps.Warnings() {
		e.warn(WarnParserRecovery, msg)
	}
	return text, nil
}

// extractIDL harvests help strings from IDL source.
func (e *Extractor) extractIDL() string {
	x := idl.NewExtractor()
	text := x.Extract(string(e.data))
	for _, msg := range x.Warnings() {
		e.warn(WarnParserRecovery, msg)
	}
	return text
}

// extractHTML parses the input as markup and returns its visible text.
func (e *Extractor) extractHTML() (string, error) {
	r, err := htmldoc.OpenReader(bytes.NewReader(e.data))
	if err != nil {
		return "", err
	}
	defer r.Close()

	text, err := r.Text()
	if err != nil {
		return "", err
	}
	e.title = r.Title()
	return text, nil
}

// plainText decodes the input as text: a byte order mark selects
// UTF-16, valid UTF-8 passes through, and anything else is read as
// Windows-1252.
func (e *Extractor) plainText() string {
	if unicodetext.IsUnicode(e.data) {
		text, err := unicodetext.Decode(e.data)
		if err == nil {
			return text
		}
		e.warn(WarnParserRecovery, err.Error()+"; treating input as 8-bit text")
	}
	if utf8.Valid(e.data) {
		return string(e.data)
	}

	decoded, err := charmap.Windows1252.NewDecoder().Bytes(e.data)
	if err != nil {
		return string(e.data)
	}
	e.warn(WarnEncodingFallback, "input is not valid UTF-8; decoded as Windows-1252")
	return string(decoded)
}

// normalizeText trims trailing whitespace from each line and collapses
// every run of blank lines into a single blank line. Leading and
// trailing blank lines are dropped.
func normalizeText(s string) string {
	lines := strings.Split(s, "\n")

	var b strings.Builder
	b.Grow(len(s))
	blanks := 0
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			blanks++
			continue
		}
		if b.Len() > 0 {
			if blanks > 0 {
				b.WriteString("\n\n")
			} else {
				b.WriteString("\n")
			}
		}
		blanks = 0
		b.WriteString(line)
	}
	return b.String()
}

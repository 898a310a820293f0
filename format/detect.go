// Package format provides file format detection for the palimpsest library.
package format

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"

	"github.com/cfwren/palimpsest/unicodetext"
)

// Format represents a supported document format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PostScript indicates a PostScript document.
	PostScript
	// UnicodeText indicates UTF-16 text behind a byte order mark.
	UnicodeText
	// IDL indicates an interface definition source file.
	IDL
	// HTML indicates an HTML document.
	HTML
	// PlainText indicates UTF-8 or 8-bit plain text.
	PlainText
)

// sniffLen is how much of a stream DetectFromReader inspects.
const sniffLen = 512

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PostScript:
		return "PostScript"
	case UnicodeText:
		return "UnicodeText"
	case IDL:
		return "IDL"
	case HTML:
		return "HTML"
	case PlainText:
		return "PlainText"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case PostScript:
		return ".ps"
	case UnicodeText:
		return ".txt"
	case IDL:
		return ".idl"
	case HTML:
		return ".html"
	case PlainText:
		return ".txt"
	default:
		return ""
	}
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".ps", ".eps", ".ai":
		return PostScript
	case ".idl", ".odl":
		return IDL
	case ".html", ".htm":
		return HTML
	case ".txt":
		return PlainText
	default:
		return Unknown
	}
}

// DetectFromMagic checks file content to determine format. This is
// more reliable than extension-based detection. Returns Unknown if
// the format cannot be determined from the content alone; plain text
// has no signature and is never returned here.
func DetectFromMagic(data []byte) Format {
	if len(data) < 2 {
		return Unknown
	}

	// UTF-16 byte order mark
	if unicodetext.IsUnicode(data) {
		return UnicodeText
	}

	// PostScript signature: %!PS
	if bytes.HasPrefix(data, []byte("%!PS")) {
		return PostScript
	}

	// HTML detection: check for <!DOCTYPE or <html or <?xml
	if detectHTMLMagic(data) {
		return HTML
	}

	// IDL sources have no signature byte; probe for a helpstring
	// attribute instead.
	if bytes.Contains(data, []byte(`helpstring("`)) {
		return IDL
	}

	return Unknown
}

// DetectFromReader inspects the leading bytes of a stream to
// determine format.
func DetectFromReader(r io.Reader) (Format, error) {
	magic := make([]byte, sniffLen)
	n, err := io.ReadFull(r, magic)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return Unknown, err
	}
	return DetectFromMagic(magic[:n]), nil
}

// detectHTMLMagic checks if the data looks like HTML content.
func detectHTMLMagic(data []byte) bool {
	// Trim leading whitespace
	start := 0
	for start < len(data) && (data[start] == ' ' || data[start] == '\t' || data[start] == '\n' || data[start] == '\r') {
		start++
	}
	if start >= len(data) {
		return false
	}
	data = data[start:]

	// Check for common HTML signatures (case-insensitive for DOCTYPE)
	upper := strings.ToUpper(string(data))
	if strings.HasPrefix(upper, "<!DOCTYPE HTML") {
		return true
	}
	if strings.HasPrefix(upper, "<HTML") {
		return true
	}
	// XML declaration followed by html-like content could be XHTML
	if strings.HasPrefix(upper, "<?XML") && strings.Contains(upper[:min(500, len(upper))], "<HTML") {
		return true
	}

	return false
}

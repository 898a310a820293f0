// Package palimpsest provides a fluent API for extracting plain text
// from PostScript, UTF-16, IDL, HTML, and plain text files.
//
// Basic usage:
//
//	text, warnings, err := palimpsest.Open("newsletter.ps").Text()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", palimpsest.FormatWarnings(warnings))
//	}
//
// With options:
//
//	text, _, err := palimpsest.Open("notes.txt").
//	    StripTags("[[", "]]").
//	    Normalize().
//	    Text()
//
// For advanced use cases, the lower-level parser packages (postscript,
// unicodetext, idl, htmldoc) are also available.
package palimpsest

// Open prepares an Extractor reading from the named file. The file is
// read by the first terminal operation; nothing is held open between
// calls.
//
// Example:
//
//	text, warnings, err := palimpsest.Open("newsletter.ps").Text()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromBytes creates an Extractor reading from an in-memory document.
// The slice is not copied; the caller must not modify it before the
// terminal operation returns.
//
// Example:
//
//	text, warnings, err := palimpsest.FromBytes(data).Text()
func FromBytes(data []byte) *Extractor {
	return &Extractor{
		data:    data,
		loaded:  true,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	f := palimpsest.Must(palimpsest.Open("newsletter.ps").DetectedFormat())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustText is a helper that wraps a call to Text() and panics if the
// error is non-nil. It discards warnings and returns just the value.
// It is intended for use in scripts or tests where error handling
// would be cumbersome.
//
// Example:
//
//	text := palimpsest.MustText(palimpsest.Open("newsletter.ps").Text())
func MustText[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

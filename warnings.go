package palimpsest

import "strings"

// WarningCode identifies the kind of non-fatal issue a Warning reports.
type WarningCode int

const (
	// WarnParserRecovery indicates a parser hit a structural anomaly,
	// recovered, and returned partial or repaired text.
	WarnParserRecovery WarningCode = iota

	// WarnEncodingFallback indicates input that was not valid UTF-8 and
	// was decoded as Windows-1252 instead.
	WarnEncodingFallback

	// WarnFormatFallback indicates input whose format could not be
	// detected and was treated as plain text.
	WarnFormatFallback
)

// String returns the string representation of the warning code.
func (c WarningCode) String() string {
	switch c {
	case WarnParserRecovery:
		return "parser recovery"
	case WarnEncodingFallback:
		return "encoding fallback"
	case WarnFormatFallback:
		return "format fallback"
	default:
		return "unknown"
	}
}

// Warning describes a non-fatal issue encountered during extraction.
// Extraction succeeded but the result may be imperfect.
type Warning struct {
	Code    WarningCode
	Message string
}

// String returns the warning as "code: message".
func (w Warning) String() string {
	return w.Code.String() + ": " + w.Message
}

// FormatWarnings renders a warning list as a single string, one
// warning per line. An empty list formats as "".
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}

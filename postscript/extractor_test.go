package postscript

import (
	"errors"
	"strings"
	"testing"
)

// TestExtractMissingHeader tests rejection of non-PostScript input
func TestExtractMissingHeader(t *testing.T) {
	e := NewExtractor()

	_, err := e.Extract([]byte("plain text, no header anywhere"))
	if !errors.Is(err, ErrHeaderNotFound) {
		t.Errorf("expected ErrHeaderNotFound, got %v", err)
	}
}

// TestExtractUnsupportedVersion tests rejection of level 3 documents
func TestExtractUnsupportedVersion(t *testing.T) {
	e := NewExtractor()

	_, err := e.Extract([]byte("%!PS-Adobe-3.0\n(unreadable) show\n"))
	if !errors.Is(err, ErrUnsupportedVersion) {
		t.Errorf("expected ErrUnsupportedVersion, got %v", err)
	}
}

// TestExtractSupportedVersions tests the version gate boundary
func TestExtractSupportedVersions(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		wantErr bool
	}{
		{name: "level one", header: "%!PS-Adobe-1.0"},
		{name: "level two", header: "%!PS-Adobe-2.0"},
		{name: "level two point one", header: "%!PS-Adobe-2.1"},
		{name: "no version digits", header: "%!PS-Adobe-"},
		{name: "level three", header: "%!PS-Adobe-3.0", wantErr: true},
		{name: "level above three", header: "%!PS-Adobe-4.2", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewExtractor()
			_, err := e.Extract([]byte(tt.header + "\n(x) show\n"))
			if tt.wantErr && !errors.Is(err, ErrUnsupportedVersion) {
				t.Errorf("expected ErrUnsupportedVersion, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("expected success, got %v", err)
			}
		})
	}
}

// TestExtractSimpleString tests recovery of a single string literal
func TestExtractSimpleString(t *testing.T) {
	e := NewExtractor()

	got, err := e.Extract([]byte("%!PS-Adobe-2.0\n(This is a string) show\n"))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if got != "This is a string" {
		t.Errorf("expected %q, got %q", "This is a string", got)
	}
}

// TestExtractEmptyInput tests that empty input yields no text and no error
func TestExtractEmptyInput(t *testing.T) {
	e := NewExtractor()

	got, err := e.Extract(nil)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if got != "" {
		t.Errorf("expected empty result, got %q", got)
	}
}

// TestExtractEscapeSequences tests the named backslash escapes
func TestExtractEscapeSequences(t *testing.T) {
	e := NewExtractor()

	input := "%!PS-Adobe-2.0\n(Thi\\\\s\\ni\\(\\)s\\ra\\tstring) show\n"
	got, err := e.Extract([]byte(input))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	expected := "Thi\\s\ni()s\ra\tstring"
	if got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}

// TestExtractLineContinuation tests that escaped line breaks vanish
func TestExtractLineContinuation(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "escaped LF",
			input:    "%!PS-Adobe-2.0\n(one\\\ntwo) show\n",
			expected: "onetwo",
		},
		{
			name:     "escaped CR",
			input:    "%!PS-Adobe-2.0\n(one\\\rtwo) show\n",
			expected: "onetwo",
		},
		{
			name:     "escaped CRLF",
			input:    "%!PS-Adobe-2.0\n(one\\\r\ntwo) show\n",
			expected: "onetwo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewExtractor()
			got, err := e.Extract([]byte(tt.input))
			if err != nil {
				t.Fatalf("Extract failed: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

// TestExtractNestedParentheses tests that only nested parens reach output
func TestExtractNestedParentheses(t *testing.T) {
	e := NewExtractor()

	got, err := e.Extract([]byte("%!PS-Adobe-2.0\n((nested) parens) show\n"))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if got != "(nested) parens" {
		t.Errorf("expected %q, got %q", "(nested) parens", got)
	}
}

// TestExtractDvipsQuoteQuirk tests the \\ decode switch for dvips output
func TestExtractDvipsQuoteQuirk(t *testing.T) {
	tests := []struct {
		name     string
		creator  string
		expected string
	}{
		{
			name:     "dvips creator",
			creator:  "%%Creator: dvips(k) 5.995 Copyright 2015\n",
			expected: "He said \"hello\"",
		},
		{
			name:     "radical eye creator",
			creator:  "%%Creator: Radical Eye Software\n",
			expected: "He said \"hello\"",
		},
		{
			name:     "other creator",
			creator:  "%%Creator: pswrite\n",
			expected: "He said \\hello\\",
		},
		{
			name:     "no creator",
			creator:  "",
			expected: "He said \\hello\\",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewExtractor()
			input := "%!PS-Adobe-2.0\n" + tt.creator + "%%Page: 1 1\n(He said \\\\hello\\\\) show\n"
			got, err := e.Extract([]byte(input))
			if err != nil {
				t.Fatalf("Extract failed: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

// TestExtractTitle tests %%Title: capture
func TestExtractTitle(t *testing.T) {
	e := NewExtractor()

	input := "%!PS-Adobe-2.0\n%%Title: Community Newsletter \n(body) show\n"
	if _, err := e.Extract([]byte(input)); err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if e.Title() != "Community Newsletter" {
		t.Errorf("expected title %q, got %q", "Community Newsletter", e.Title())
	}
}

// TestExtractStateResetBetweenCalls tests per-call title and flag reset
func TestExtractStateResetBetweenCalls(t *testing.T) {
	e := NewExtractor()

	first := "%!PS-Adobe-2.0\n%%Title: First\n%%Creator: dvips\n(a\\\\b) show\n"
	if _, err := e.Extract([]byte(first)); err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if e.Title() != "First" {
		t.Fatalf("expected title %q, got %q", "First", e.Title())
	}

	second := "%!PS-Adobe-2.0\n(a\\\\b) show\n"
	got, err := e.Extract([]byte(second))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if e.Title() != "" {
		t.Errorf("expected title cleared, got %q", e.Title())
	}
	if got != "a\\b" {
		t.Errorf("expected dvips quirk cleared, got %q", got)
	}
}

// TestExtractScanStartsAtFirstPage tests that prologue strings are skipped
func TestExtractScanStartsAtFirstPage(t *testing.T) {
	e := NewExtractor()

	input := "%!PS-Adobe-2.0\n/msg (prologue string) def\n%%Page: 1 1\n(page text) show\n"
	got, err := e.Extract([]byte(input))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if got != "page text" {
		t.Errorf("expected %q, got %q", "page text", got)
	}
}

// TestExtractWordSpacing tests the default space between strings
func TestExtractWordSpacing(t *testing.T) {
	e := NewExtractor()

	input := "%!PS-Adobe-2.0\n%%Page: 1 1\n(Hello)1733(world) show\n"
	got, err := e.Extract([]byte(input))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if got != "Hello world" {
		t.Errorf("expected %q, got %q", "Hello world", got)
	}
}

// TestExtractContinuationOperators tests the no-space operator set
func TestExtractContinuationOperators(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{name: "q continues", body: "(AB)q(CD)", expected: "ABCD"},
		{name: "o continues", body: "(AB)5 o(CD)", expected: "ABCD"},
		{name: "t continues", body: "(AB)t(CD)", expected: "ABCD"},
		{name: "small b continues", body: "(AB)7 b(CD)", expected: "ABCD"},
		{name: "negative b continues", body: "(AB)-372 b(CD)", expected: "ABCD"},
		{name: "large b breaks word", body: "(AB)8 b(CD)", expected: "AB CD"},
		{name: "bare b uses default offset", body: "(AB)b(CD)", expected: "AB CD"},
		{name: "g alone breaks word", body: "(AB)g(CD)", expected: "AB CD"},
		{name: "g after negative b continues", body: "(AB)-12 b(CD)5 g(EF)", expected: "ABCDEF"},
		{name: "g after positive b breaks word", body: "(AB)5 b(CD)5 g(EF)", expected: "ABCD EF"},
		{name: "hyphen before close continues", body: "(AB-)914(CD)", expected: "AB-CD"},
		{name: "word operator is not lone", body: "(AB)grestore(CD)", expected: "AB CD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewExtractor()
			input := "%!PS-Adobe-2.0\n%%Page: 1 1\n" + tt.body + " show\n"
			got, err := e.Extract([]byte(input))
			if err != nil {
				t.Fatalf("Extract failed: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

// TestExtractHyphenatedLineBreak tests the y operator with a hyphenated word
func TestExtractHyphenatedLineBreak(t *testing.T) {
	e := NewExtractor()

	input := "%!PS-Adobe-2.0\n%%Page: 1 1\n(Commu-)600 2238 y(nity News) show\n"
	got, err := e.Extract([]byte(input))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	expected := "Commu-\nnity News"
	if got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}

// TestExtractLineBreakBeatsSpace tests that y suppresses the word space
func TestExtractLineBreakBeatsSpace(t *testing.T) {
	e := NewExtractor()

	input := "%!PS-Adobe-2.0\n%%Page: 1 1\n(end of line)1733 2238 y(next line) show\n"
	got, err := e.Extract([]byte(input))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	expected := "end of line\nnext line"
	if got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}

// TestExtractFontSelectorIsNotLineBreak tests that Fy does not break lines
func TestExtractFontSelectorIsNotLineBreak(t *testing.T) {
	e := NewExtractor()

	input := "%!PS-Adobe-2.0\n%%Page: 1 1\n(one)1733 Fy(two) show\n"
	got, err := e.Extract([]byte(input))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if got != "one two" {
		t.Errorf("expected %q, got %q", "one two", got)
	}
}

// TestExtractPageBreak tests the form feed for %%Page: between strings
func TestExtractPageBreak(t *testing.T) {
	e := NewExtractor()

	input := "%!PS-Adobe-2.0\n%%Page: 1 1\n(Page one.) showpage\n%%Page: 2 2\n(Page two.) showpage\n"
	got, err := e.Extract([]byte(input))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if !strings.Contains(got, "\f") {
		t.Errorf("expected form feed in output, got %q", got)
	}
	if !strings.HasPrefix(got, "Page one.\f") {
		t.Errorf("expected form feed after first page, got %q", got)
	}
	if !strings.HasSuffix(got, "Page two.") {
		t.Errorf("expected second page text, got %q", got)
	}
}

// TestExtractLigatures tests the multi-digit octal substitution table
func TestExtractLigatures(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{name: "ff ligature", body: "(e\\013ort)", expected: "effort"},
		{name: "fi ligature", body: "(\\014rst)", expected: "first"},
		{name: "fl ligature", body: "(\\015y)", expected: "fly"},
		{name: "ffi ligature", body: "(di\\016cult)", expected: "difficult"},
		{name: "ffl ligature", body: "(ba\\017e)", expected: "baffle"},
		{name: "hyphen substitute", body: "(self\\000made)", expected: "self-made"},
		{name: "low asterisk", body: "(note\\003)", expected: "note*"},
		{name: "high asterisk", body: "(note\\025)", expected: "note*"},
		{name: "v substitute", body: "(\\027ote)", expected: "vote"},
		{name: "capital sigma", body: "(sum \\030)", expected: "sum Σ"},
		{name: "nae placeholder", body: "(\\032vner)", expected: "naevner"},
		{name: "oe ligature", body: "(c\\033ur)", expected: "coeur"},
		{name: "alternate fi", body: "(\\034ne)", expected: "fine"},
		{name: "unknown code emits char", body: "(\\101BC)", expected: "ABC"},
		{name: "single octal digit is literal", body: "(\\5x)", expected: "5x"},
		{name: "non-octal escape is literal", body: "(\\qx)", expected: "qx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewExtractor()
			input := "%!PS-Adobe-2.0\n%%Page: 1 1\n" + tt.body + " show\n"
			got, err := e.Extract([]byte(input))
			if err != nil {
				t.Fatalf("Extract failed: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

// TestExtractAccents tests pending accents applied to the following letter
func TestExtractAccents(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{name: "umlaut on o", body: "(Schr\\177odinger)", expected: "Schrödinger"},
		{name: "umlaut on capital", body: "(\\177Uber)", expected: "Über"},
		{name: "grave on a", body: "(voil\\022a)", expected: "voilà"},
		{name: "acute on e", body: "(caf\\023e)", expected: "café"},
		{name: "acute on capital", body: "(\\023Ecole)", expected: "École"},
		{name: "non-vowel passes through", body: "(\\022x)", expected: "x"},
		{name: "accent consumed once", body: "(caf\\023ee)", expected: "cafée"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewExtractor()
			input := "%!PS-Adobe-2.0\n%%Page: 1 1\n" + tt.body + " show\n"
			got, err := e.Extract([]byte(input))
			if err != nil {
				t.Fatalf("Extract failed: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

// TestExtractEmbeddedDocumentSkipped tests %%BeginDocument skipping
func TestExtractEmbeddedDocumentSkipped(t *testing.T) {
	e := NewExtractor()

	input := "%!PS-Adobe-2.0\n" +
		"%%BeginDocument: figure.eps\n" +
		"%!PS-Adobe-2.0\n(embedded text) show\n" +
		"%%EndDocument\n" +
		"(after) show\n"
	got, err := e.Extract([]byte(input))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if got != "after" {
		t.Errorf("expected %q, got %q", "after", got)
	}
}

// TestExtractMissingEndDocument tests the graceful partial return
func TestExtractMissingEndDocument(t *testing.T) {
	e := NewExtractor()

	input := "%!PS-Adobe-2.0\n%%Page: 1 1\n%%BeginDocument: broken.eps\n(never reached) show\n"
	got, err := e.Extract([]byte(input))
	if err != nil {
		t.Fatalf("expected graceful return, got error: %v", err)
	}
	if got != "" {
		t.Errorf("expected empty partial result, got %q", got)
	}
	if len(e.Warnings()) != 1 {
		t.Errorf("expected one diagnostic, got %v", e.Warnings())
	}
}

// TestExtractTrailingWhitespaceTrimmed tests the final trim
func TestExtractTrailingWhitespaceTrimmed(t *testing.T) {
	e := NewExtractor()

	input := "%!PS-Adobe-2.0\n(padded )(  ) show\n"
	got, err := e.Extract([]byte(input))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if got != "padded" {
		t.Errorf("expected %q, got %q", "padded", got)
	}
}

// TestExtractPercentInsideString tests that % is literal inside strings
func TestExtractPercentInsideString(t *testing.T) {
	e := NewExtractor()

	got, err := e.Extract([]byte("%!PS-Adobe-2.0\n(100% done) show\n"))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if got != "100% done" {
		t.Errorf("expected %q, got %q", "100% done", got)
	}
}

// TestParseVersion tests the header version parser
func TestParseVersion(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"2.0", 2.0},
		{"3.0 EPSF-3.0", 3.0},
		{"1.0\n", 1.0},
		{"2", 2.0},
		{"", 0},
		{"EPSF", 0},
	}

	for _, tt := range tests {
		got := parseVersion([]byte(tt.input))
		if got != tt.expected {
			t.Errorf("parseVersion(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

// TestIsLoneLetterAt tests operator token isolation checks
func TestIsLoneLetterAt(t *testing.T) {
	data := []byte("5 b(x) grestore y")

	if !isLoneLetterAt(data, 2) {
		t.Error("expected 'b' to be lone")
	}
	if isLoneLetterAt(data, 7) {
		t.Error("expected 'g' of grestore not to be lone")
	}
	if !isLoneLetterAt(data, 16) {
		t.Error("expected trailing 'y' to be lone")
	}
}

// Benchmark tests
func BenchmarkExtract(b *testing.B) {
	input := []byte("%!PS-Adobe-2.0\n" +
		"%%Creator: dvips(k) 5.995\n" +
		"%%Title: bench.dvi\n" +
		"%%Page: 1 1\n" +
		"(Commu-)-372 b(nity)1733(News)600 2238 y(Local \\014rst responders honored at annual dinner.) show\n" +
		"%%Page: 2 2\n" +
		"(Se\\023e you at the co\\033perative.) show\n")
	e := NewExtractor()
	for i := 0; i < b.N; i++ {
		_, _ = e.Extract(input)
	}
}

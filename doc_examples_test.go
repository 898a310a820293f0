package palimpsest_test

import (
	"fmt"
	"log"

	"github.com/cfwren/palimpsest"
	"github.com/cfwren/palimpsest/format"
	"github.com/cfwren/palimpsest/postscript"
)

// These examples verify the README code samples compile correctly.
// They are not meant to be run as actual tests since they require files.

func Example_extractText() {
	// Works with PostScript, HTML, IDL, UTF-16 and plain text files
	text, warnings, err := palimpsest.Open("newsletter.ps").Text()
	// text, warnings, err := palimpsest.Open("page.html").Text()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(text)

	for _, w := range warnings {
		fmt.Println("Warning:", w.Message)
	}
}

func Example_extractWithOptions() {
	text, warnings, err := palimpsest.Open("notes.txt").
		StripTags("[[", "]]"). // Remove editorial spans, delimiters included
		Normalize().           // Trim line ends, collapse blank-line runs
		Text()
	_ = text
	_ = warnings
	_ = err
}

func Example_openSources() {
	// From file path (format detected from content, then extension)
	ext := palimpsest.Open("newsletter.ps")
	_ = ext

	// From bytes already in memory
	data := []byte("%!PS-Adobe-2.0\n(Hello) show\n")
	ext = palimpsest.FromBytes(data)
	_ = ext
}

func Example_formatDetection() {
	f, err := palimpsest.Open("mystery.dat").DetectedFormat()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("format:", f)

	// Or probe without an Extractor
	_ = format.Detect("newsletter.ps")
	_ = format.DetectFromMagic([]byte("%!PS-Adobe-2.0\n"))
}

func Example_formatOverride() {
	// Force a format when detection would get it wrong
	text, _, err := palimpsest.Open("dump.dat").
		Format(format.PostScript).
		Text()
	_ = text
	_ = err
}

func Example_documentTitle() {
	ext := palimpsest.Open("newsletter.ps")
	text, _, err := ext.Text()
	if err != nil {
		log.Fatal(err)
	}
	_ = text

	// Title is captured during extraction (from %%Title: or <title>)
	fmt.Println("Title:", ext.Title())
}

func Example_warnings() {
	text, warnings, err := palimpsest.Open("newsletter.ps").Text()
	if err != nil {
		log.Fatal(err) // Fatal error
	}
	_ = text

	for _, w := range warnings {
		log.Println("Warning:", w.Message) // Non-fatal issues
	}

	// Format all warnings
	formatted := palimpsest.FormatWarnings(warnings)
	_ = formatted
}

func Example_errorHandling() {
	// Panic on error (for scripts/tests)
	text := palimpsest.MustText(palimpsest.Open("newsletter.ps").Text())
	f := palimpsest.Must(palimpsest.Open("newsletter.ps").DetectedFormat())
	_ = text
	_ = f
}

func Example_lowerLevelPackages() {
	// The parsers are usable on their own
	ps := postscript.NewExtractor()
	text, err := ps.Extract([]byte("%!PS-Adobe-2.0\n(Hello) show\n"))
	if err != nil {
		log.Fatal(err)
	}
	_ = text
	_ = ps.Title()
	_ = ps.Warnings()
}

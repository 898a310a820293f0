// Package postscript recovers plain text from PostScript documents.
//
// The extractor targets the document structuring convention (DSC) output
// produced by common generators, dvips in particular, where page text is
// carried in parenthesized string literals between positioning operators.
//
// # Extraction
//
//	e := postscript.NewExtractor()
//	text, err := e.Extract(data)
//	if err != nil {
//	    // handle error
//	}
//	fmt.Println(e.Title())
//
// Extraction fails only for a missing %!PS-Adobe- header
// ([ErrHeaderNotFound]) or a language level of 3 or later
// ([ErrUnsupportedVersion]). Everything else degrades gracefully: an
// embedded document with no %%EndDocument marker, for example, ends the
// scan with the text accumulated so far and a diagnostic retrievable
// from Warnings.
//
// # What the Scanner Understands
//
// String literals:
//   - ( and ) nest; only nested parentheses appear in the output
//   - \( \) \\ \t \n \r escapes, with \\ decoding to a double quote for
//     dvips output (the generator uses it that way)
//   - escaped line breaks are silent continuations
//   - multi-digit octal escapes map through the TeX text font slots:
//     ligatures (ff, fi, fl, ffi, ffl), accent marks that modify the
//     following letter, and a few symbol substitutions
//
// Between string literals the scanner classifies the positioning
// commands to decide whether the strings belong to the same word, are
// separated by a space, start a new line (the dvips y operator), or
// start a new page (%%Page:, emitted as a form feed).
//
// # Document Setup
//
// The DSC header comments feed the scan: %%Creator: detects dvips
// output ("dvips" or "Radical Eye Software"), and %%Title: is captured
// for the Title accessor. The main scan starts at the first %%Page:
// comment when present.
package postscript

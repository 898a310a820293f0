package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/cfwren/palimpsest"
	"github.com/cfwren/palimpsest/format"
)

func newExtractCmd() *cobra.Command {
	extractCmd := &cobra.Command{
		Use:   "extract [file ...]",
		Short: "Extract the text of one or more documents",
		Long:  "Extract recovers the readable text of each named document and writes it to standard output. The format is detected from content and filename unless overridden with --format.",
		Example: `palimpsest extract newsletter.ps
palimpsest extract --normalize --strip "[[,]]" notes.txt
palimpsest extract --format postscript --output out.txt dump.dat`,
		Args: cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if err := bindFlags(cmd, map[string]string{
				"format":    "extract.format",
				"normalize": "extract.normalize",
				"strip":     "extract.strip",
			}); err != nil {
				log.Fatal().Err(err).Msg("Failed to bind flags")
			}

			formatName := getViper().GetString("extract.format")
			normalize := getViper().GetBool("extract.normalize")
			stripSpecs := getViper().GetStringSlice("extract.strip")
			showTitle, _ := cmd.Flags().GetBool("title")

			out := io.Writer(os.Stdout)
			if outputFile, _ := cmd.Flags().GetString("output"); outputFile != "" {
				f, err := os.Create(outputFile)
				if err != nil {
					log.Fatal().Err(err).Msg("Failed to create output file")
				}
				defer f.Close()
				out = f
			}

			for _, file := range args {
				extractOne(out, file, formatName, stripSpecs, normalize, showTitle)
			}
		},
	}

	extractCmd.Flags().StringP("format", "f", "", "Override format detection (postscript, html, idl, unicode, text)")
	extractCmd.Flags().StringArrayP("strip", "s", nil, "Remove spans between two delimiters, given as START,END (repeatable)")
	extractCmd.Flags().BoolP("normalize", "n", false, "Trim line ends and collapse runs of blank lines")
	extractCmd.Flags().StringP("output", "o", "", "Write extracted text to a file instead of stdout")
	extractCmd.Flags().Bool("title", false, "Log the document title when the source carries one")

	return extractCmd
}

func extractOne(out io.Writer, file, formatName string, stripSpecs []string, normalize, showTitle bool) {
	ext := palimpsest.Open(file)

	if formatName != "" {
		f, err := parseFormat(formatName)
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid format")
		}
		ext = ext.Format(f)
	}
	for _, spec := range stripSpecs {
		start, end, err := parseTagPair(spec)
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid strip delimiter pair")
		}
		ext = ext.StripTags(start, end)
	}
	if normalize {
		ext = ext.Normalize()
	}

	text, warnings, err := ext.Text()
	if err != nil {
		log.Fatal().Err(err).Str("file", file).Msg("Extraction failed")
	}
	for _, w := range warnings {
		log.Warn().Str("file", file).Msg(w.String())
	}
	if showTitle {
		if title := ext.Title(); title != "" {
			log.Info().Str("file", file).Str("title", title).Msg("Document title")
		}
	}

	fmt.Fprintln(out, text)
}

// Helper functions

// parseFormat maps a format name from the command line to its constant.
func parseFormat(name string) (format.Format, error) {
	switch strings.ToLower(name) {
	case "postscript", "ps":
		return format.PostScript, nil
	case "unicode", "utf16":
		return format.UnicodeText, nil
	case "idl":
		return format.IDL, nil
	case "html":
		return format.HTML, nil
	case "text", "plain":
		return format.PlainText, nil
	}
	return format.Unknown, fmt.Errorf("unknown format %q", name)
}

// parseTagPair splits a START,END delimiter spec on its first comma.
func parseTagPair(spec string) (string, string, error) {
	start, end, ok := strings.Cut(spec, ",")
	if !ok || start == "" || end == "" {
		return "", "", fmt.Errorf("expected START,END delimiters, got %q", spec)
	}
	return start, end, nil
}

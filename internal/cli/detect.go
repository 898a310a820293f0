package cli

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/cfwren/palimpsest"
)

func newDetectCmd() *cobra.Command {
	detectCmd := &cobra.Command{
		Use:     "detect [file ...]",
		Short:   "Report the detected format of one or more documents",
		Long:    "Detect reports the format each named document would be extracted as, judged by content signature first and filename extension second.",
		Example: "palimpsest detect newsletter.ps page.html",
		Args:    cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			for _, file := range args {
				f, err := palimpsest.Open(file).DetectedFormat()
				if err != nil {
					log.Fatal().Err(err).Str("file", file).Msg("Detection failed")
				}
				fmt.Printf("%s: %s\n", file, f)
			}
		},
	}

	return detectCmd
}

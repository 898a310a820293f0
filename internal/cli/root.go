// Package cli implements the palimpsest command line interface.
package cli

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Version is set via ldflags during build.
var Version = "dev"

var (
	rootCmd = &cobra.Command{
		Use:     "palimpsest",
		Short:   "Extract text from PostScript, HTML, IDL and plain text documents",
		Long:    "Palimpsest recovers the readable text of documents: PostScript (including dvips output), HTML pages, IDL type libraries, UTF-16 text and 8-bit plain text.",
		Example: "palimpsest extract newsletter.ps",
		Version: Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			loadConfigFile()
			initLogger(cmd)
			setGlobalLogLevel()
		},
	}
	JSONLogOutput bool
	LogFile       string
	LogColor      bool
	LogDebug      bool
	LogLevel      string
	ConfigFile    string
)

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(newExtractCmd())
	rootCmd.AddCommand(newDetectCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.PersistentFlags().StringVar(&ConfigFile, "config", "", "Config file path (YAML, JSON, or TOML). Example: ~/.config/palimpsest/config.yaml")
	rootCmd.PersistentFlags().BoolVar(&JSONLogOutput, "json", false, "Use JSON as log output format")
	rootCmd.PersistentFlags().StringVarP(&LogFile, "logfile", "l", "", "Log output to a file")
	rootCmd.PersistentFlags().BoolVarP(&LogDebug, "verbose", "v", false, "Enable debug logging (shortcut for --log-level=debug)")
	rootCmd.PersistentFlags().StringVar(&LogLevel, "log-level", "", "Set log level globally (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&LogColor, "color", true, "Enable colored log output (auto-disabled when using --logfile)")

	rootCmd.SetVersionTemplate(`{{.Version}}
`)
}

// initLogger routes log output to stderr, or to the file named by
// --logfile, so that extracted text on stdout stays clean.
func initLogger(cmd *cobra.Command) {
	out := os.Stderr
	colorEnabled := LogColor

	if LogFile != "" {
		f, err := os.OpenFile(LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			panic(err)
		}
		out = f

		rootFlags := cmd.Root().PersistentFlags()
		if !rootFlags.Changed("color") {
			colorEnabled = false
		}
	}

	if JSONLogOutput {
		log.Logger = zerolog.New(out).With().Timestamp().Logger()
		return
	}

	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    !colorEnabled,
	}).With().Timestamp().Logger()
}

func setGlobalLogLevel() {
	if LogLevel != "" {
		switch LogLevel {
		case "trace":
			zerolog.SetGlobalLevel(zerolog.TraceLevel)
		case "debug":
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		case "info":
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		case "warn":
			zerolog.SetGlobalLevel(zerolog.WarnLevel)
		case "error":
			zerolog.SetGlobalLevel(zerolog.ErrorLevel)
		default:
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
			log.Warn().Str("logLevelSpecified", LogLevel).Msg("Invalid log level, defaulting to info")
		}
		return
	}

	if LogDebug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func loadConfigFile() {
	if err := initConfig(ConfigFile); err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration file")
	}
}

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var globalViper *viper.Viper

// initConfig initializes the Viper instance backing all configuration
// lookups. Values resolve command-line flags first, then environment
// variables with the PALIMPSEST_ prefix, then the config file, then
// defaults.
func initConfig(configFile string) error {
	v := viper.New()

	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		log.Debug().Str("path", configFile).Msg("Using specified config file")
	} else {
		v.SetConfigName("palimpsest")
		v.SetConfigType("yaml")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "palimpsest"))
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Debug().Msg("No config file found, using defaults and command-line flags")
		} else {
			return fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		log.Info().Str("file", v.ConfigFileUsed()).Msg("Loaded config file")
	}

	v.SetEnvPrefix("PALIMPSEST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	globalViper = v
	return nil
}

func getViper() *viper.Viper {
	if globalViper == nil {
		if err := initConfig(""); err != nil {
			log.Fatal().Err(err).Msg("Failed to auto-initialize configuration")
		}
	}
	return globalViper
}

// bindFlags binds command flags to configuration keys. This gives
// flags priority over config file values over defaults.
func bindFlags(cmd *cobra.Command, flagMappings map[string]string) error {
	v := getViper()
	for flagName, viperKey := range flagMappings {
		flag := cmd.Flags().Lookup(flagName)
		if flag == nil {
			flag = cmd.InheritedFlags().Lookup(flagName)
		}
		if flag != nil {
			if err := v.BindPFlag(viperKey, flag); err != nil {
				return fmt.Errorf("failed to bind flag %s to key %s: %w", flagName, viperKey, err)
			}
		}
	}
	return nil
}

// setDefaults sets default values for all configuration options.
func setDefaults(v *viper.Viper) {
	v.SetDefault("extract.format", "")
	v.SetDefault("extract.normalize", false)
	v.SetDefault("extract.strip", []string{})
}

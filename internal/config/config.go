// Package config loads crepl settings from defaults, an optional YAML file,
// and CREPL_* environment variables, in increasing order of priority.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/zephyrtronium/crepl/internal/logger"
)

// Config is the shell configuration.
type Config struct {
	// Prompt is printed before each line is read.
	Prompt string `mapstructure:"prompt"`
	// Banner prints a greeting when the REPL starts.
	Banner bool `mapstructure:"banner"`
	// Color styles error output when the output is a terminal.
	Color bool `mapstructure:"color"`
	// WhitespaceRuns lets any number of blanks separate tokens.
	WhitespaceRuns bool `mapstructure:"whitespace_runs"`
	// Log configures logging.
	Log logger.Config `mapstructure:"log"`
}

func setDefaults(v *viper.Viper) {
	lc := logger.DefaultConfig()
	v.SetDefault("prompt", "> ")
	v.SetDefault("banner", true)
	v.SetDefault("color", true)
	v.SetDefault("whitespace_runs", false)
	v.SetDefault("log.level", lc.Level)
	v.SetDefault("log.file", lc.FileName)
	v.SetDefault("log.max_size", lc.MaxSize)
	v.SetDefault("log.max_age", lc.MaxAge)
	v.SetDefault("log.max_backups", lc.MaxBackups)
	v.SetDefault("log.compress", lc.Compress)
}

// Load reads the configuration. If file is empty, Load looks for crepl.yaml
// in the working directory and in $HOME/.config/crepl, and it is not an error
// if there is none. If file is given, it must exist.
func Load(file string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("CREPL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("crepl")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/crepl")
	}
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &nf) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return &cfg, nil
}

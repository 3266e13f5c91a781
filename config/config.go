// Package config loads mfformat settings from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/gaurav-prasanna/mfformat/core"
	"github.com/gaurav-prasanna/mfformat/core/format"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. MFFORMAT_RELATIVETO.
const EnvPrefix = "MFFORMAT"

// Config mirrors the configuration file.
type Config struct {
	PermalinkStyle  string              `mapstructure:"permalinkStyle"`
	Filepath        string              `mapstructure:"filepath"`
	NoMarkdown      bool                `mapstructure:"noMarkdown"`
	ContentSlug     bool                `mapstructure:"contentSlug"`
	DeriveCategory  bool                `mapstructure:"deriveCategory"`
	DeriveLanguages bool                `mapstructure:"deriveLanguages"`
	Languages       []string            `mapstructure:"languages"`
	RelativeTo      string              `mapstructure:"relativeTo"`
	Defaults        map[string][]string `mapstructure:"defaults"`
	OutputDir       string              `mapstructure:"outputDir"`

	// Source is the config file that was read, if any.
	Source string `mapstructure:"-"`
}

// Load reads the config file at path, or mfformat.yaml in the working
// directory when path is empty. A missing default file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("permalinkStyle", "")
	v.SetDefault("filepath", "")
	v.SetDefault("noMarkdown", false)
	v.SetDefault("contentSlug", false)
	v.SetDefault("deriveCategory", true)
	v.SetDefault("deriveLanguages", false)
	v.SetDefault("languages", []string{})
	v.SetDefault("relativeTo", "")
	v.SetDefault("outputDir", "")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("mfformat")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || path != "" {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Source = v.ConfigFileUsed()
	return &cfg, nil
}

// FormatOptions converts the configuration into formatter options.
func (c *Config) FormatOptions() format.Options {
	opts := format.Options{
		PermalinkStyle:  c.PermalinkStyle,
		Filepath:        c.Filepath,
		NoMarkdown:      c.NoMarkdown,
		ContentSlug:     c.ContentSlug,
		SkipCategory:    !c.DeriveCategory,
		DeriveLanguages: c.DeriveLanguages,
		Languages:       c.Languages,
		RelativeTo:      c.RelativeTo,
	}

	if len(c.Defaults) > 0 {
		names := make([]string, 0, len(c.Defaults))
		for name := range c.Defaults {
			names = append(names, name)
		}
		sort.Strings(names)

		opts.Defaults = core.NewProperties()
		for _, name := range names {
			values := make([]core.Value, 0, len(c.Defaults[name]))
			for _, s := range c.Defaults[name] {
				values = append(values, core.Text(s))
			}
			opts.Defaults.Set(name, values...)
		}
	}
	return opts
}

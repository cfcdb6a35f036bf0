package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/jcdickinson/ferrisdoc/internal/fragment"
)

// Format is an output rendering of a parsed page.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatTerm     Format = "term"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
)

// Formats lists every supported output format.
var Formats = []Format{FormatMarkdown, FormatHTML, FormatTerm, FormatJSON, FormatYAML}

// ParseFormat validates a format name. "md" is accepted for markdown.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "md" {
		f = FormatMarkdown
	}
	if !slices.Contains(Formats, f) {
		return "", fmt.Errorf("unknown output format %q (want one of %v)", s, Formats)
	}
	return f, nil
}

type OutputConfig struct {
	Format Format `mapstructure:"format"`
}

type ParseConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

type CacheConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type FetchConfig struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

func (c FetchConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type Config struct {
	Output OutputConfig `mapstructure:"output"`
	Parse  ParseConfig  `mapstructure:"parse"`
	Cache  CacheConfig  `mapstructure:"cache"`
	Fetch  FetchConfig  `mapstructure:"fetch"`
	// Theme overrides the hex colour of a colour tag, keyed by tag name.
	Theme map[string]string `mapstructure:"theme"`
}

// cacheBase returns the base cache directory for ferrisdoc.
// Checks XDG_CACHE_HOME, then ~/.cache, then /tmp/ferrisdoc as fallback.
func cacheBase() string {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, "ferrisdoc")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".cache", "ferrisdoc")
	}
	return filepath.Join(os.TempDir(), "ferrisdoc")
}

// CacheDir returns the path to the parsed page cache.
func CacheDir() string {
	return filepath.Join(cacheBase(), "pages")
}

func InitializeViper() error {
	viper.SetConfigName("config")
	viper.SetConfigType("toml")

	viper.AddConfigPath(".")
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		viper.AddConfigPath(filepath.Join(xdg, "ferrisdoc"))
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "ferrisdoc"))
	}

	viper.SetDefault("output.format", string(FormatMarkdown))
	viper.SetDefault("parse.concurrency", 4)
	viper.SetDefault("cache.enabled", true)
	viper.SetDefault("fetch.timeout_seconds", 60)

	viper.SetEnvPrefix("FERRISDOC")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return nil
}

func stringToFormatHookFunc() mapstructure.DecodeHookFunc {
	return func(f, t reflect.Type, data interface{}) (interface{}, error) {
		if t != reflect.TypeOf(Format("")) || f.Kind() != reflect.String {
			return data, nil
		}
		return ParseFormat(data.(string))
	}
}

func Load() (*Config, error) {
	if err := InitializeViper(); err != nil {
		return nil, err
	}

	var config Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       stringToFormatHookFunc(),
		WeaklyTypedInput: true,
		Result:           &config,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}

	if err := decoder.Decode(viper.AllSettings()); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Parse.Concurrency < 1 {
		config.Parse.Concurrency = 1
	}
	if err := validateTheme(config.Theme); err != nil {
		return nil, fmt.Errorf("invalid theme: %w", err)
	}

	return &config, nil
}

func validateTheme(theme map[string]string) error {
	for name, hex := range theme {
		if _, _, err := fragment.ParseColor(name, hex); err != nil {
			return err
		}
	}
	return nil
}

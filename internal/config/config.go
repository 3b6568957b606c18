package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ChrisMcGann/SpectraC/pkg/reader/spectra"
)

// Config is the SpectraC configuration.
type Config struct {
	DataDir     string `mapstructure:"data_dir" yaml:"data_dir"`
	FilePattern string `mapstructure:"file_pattern" yaml:"file_pattern"`
	Delimiter   string `mapstructure:"delimiter" yaml:"delimiter"`
	HeaderLines int    `mapstructure:"header_lines" yaml:"header_lines"`
	FooterLines int    `mapstructure:"footer_lines" yaml:"footer_lines"`

	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
	LogFile  string `mapstructure:"log_file" yaml:"log_file"`

	// Plot output
	PlotWidth  int    `mapstructure:"plot_width" yaml:"plot_width"`
	PlotHeight int    `mapstructure:"plot_height" yaml:"plot_height"`
	OutputDir  string `mapstructure:"output_dir" yaml:"output_dir"`
}

// ValidationError reports an invalid configuration value.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
}

// DefaultPath returns ~/.spectrac/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".spectrac", "config.yaml"), nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SPECTRAC")
	v.AutomaticEnv()

	defaults := spectra.DefaultOptions()
	v.SetDefault("data_dir", "")
	v.SetDefault("file_pattern", defaults.Pattern)
	v.SetDefault("delimiter", string(defaults.Delimiter))
	v.SetDefault("header_lines", defaults.HeaderLines)
	v.SetDefault("footer_lines", defaults.FooterLines)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("plot_width", 800)
	v.SetDefault("plot_height", 600)
	v.SetDefault("output_dir", ".")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		path, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(filepath.Dir(path))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// optional read
		_ = v.ReadInConfig()
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Save writes c as YAML to cfgFile, or to the default path when cfgFile is
// empty, creating the directory if necessary.
func Save(c *Config, cfgFile string) (string, error) {
	path := cfgFile
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return "", err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("mkdir config dir: %w", err)
	}

	b, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return path, nil
}

// Validate checks the loader settings.
func (c *Config) Validate() error {
	if utf8.RuneCountInString(c.Delimiter) != 1 {
		return &ValidationError{Field: "delimiter", Message: fmt.Sprintf("must be a single character, got %q", c.Delimiter)}
	}
	if c.HeaderLines < 0 {
		return &ValidationError{Field: "header_lines", Message: "must not be negative"}
	}
	if c.FooterLines < 0 {
		return &ValidationError{Field: "footer_lines", Message: "must not be negative"}
	}
	if strings.TrimSpace(c.FilePattern) == "" {
		return &ValidationError{Field: "file_pattern", Message: "is required"}
	}
	return nil
}

// SpectraOptions returns the input file layout described by c.
func (c *Config) SpectraOptions() spectra.Options {
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	return spectra.Options{
		Delimiter:   r,
		HeaderLines: c.HeaderLines,
		FooterLines: c.FooterLines,
		Pattern:     c.FilePattern,
	}
}

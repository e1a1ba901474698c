package sqltree

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
	"github.com/shibukawa/sqltree/formatter"
)

// ErrConfigValidation is returned when configuration validation fails
var ErrConfigValidation = errors.New("configuration validation failed")

// Config represents the sqltree configuration
type Config struct {
	Formatter FormatterConfig `yaml:"formatter"`
	Output    OutputConfig    `yaml:"output"`
	Log       LogConfig       `yaml:"log"`
	Fixtures  FixturesConfig  `yaml:"fixtures"`
}

// FormatterConfig represents the options of the format command
type FormatterConfig struct {
	Reindent        *bool  `yaml:"reindent"` // nil means true
	KeywordCase     string `yaml:"keyword_case"`
	StripWhitespace *bool  `yaml:"strip_whitespace"` // nil means true
	IndentWidth     int    `yaml:"indent_width"`
}

// OutputConfig represents how trees are written
type OutputConfig struct {
	Format string `yaml:"format"` // json, yaml or xml
	Pretty bool   `yaml:"pretty"`
	Color  *bool  `yaml:"color"` // nil means auto detect
}

// LogConfig represents logging settings
type LogConfig struct {
	Level string `yaml:"level"` // info, debug or trace
}

// FixturesConfig represents the fixture runner settings
type FixturesConfig struct {
	Dir       string `yaml:"dir"`
	Normalize bool   `yaml:"normalize"`
}

// FormatOptions converts the formatter section. The configuration must be validated.
func (c FormatterConfig) FormatOptions() formatter.Options {
	keywordCase, _ := formatter.ParseKeywordCase(c.KeywordCase)

	return formatter.Options{
		Reindent:        c.Reindent == nil || *c.Reindent,
		KeywordCase:     keywordCase,
		StripWhitespace: c.StripWhitespace == nil || *c.StripWhitespace,
		IndentWidth:     c.IndentWidth,
	}
}

// LoadConfig loads configuration from the specified file
func LoadConfig(configPath string) (*Config, error) {
	// Load .env files first
	err := loadEnvFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to load environment files: %w", err)
	}

	// Check if config file exists
	_, err = os.Stat(configPath)
	if os.IsNotExist(err) {
		// Return default configuration if file doesn't exist
		config := getDefaultConfig()
		expandConfigEnvVars(config)

		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return ParseConfig(data)
}

// ParseConfig parses YAML configuration in strict mode, validates it and applies defaults.
func ParseConfig(data []byte) (*Config, error) {
	var config Config

	err := yaml.UnmarshalWithOptions(data, &config, yaml.Strict())
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	expandConfigEnvVars(&config)
	applyDefaults(&config)

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

var (
	validOutputFormats = map[string]bool{"json": true, "yaml": true, "xml": true}
	validLogLevels     = map[string]bool{"trace": true, "debug": true, "info": true}
)

// validateConfig validates the configuration for common errors and inconsistencies
func validateConfig(config *Config) error {
	if _, err := formatter.ParseKeywordCase(config.Formatter.KeywordCase); err != nil {
		return fmt.Errorf("%w: formatter.keyword_case: %w", ErrConfigValidation, err)
	}

	if config.Formatter.IndentWidth < 0 {
		return fmt.Errorf("%w: formatter.indent_width must not be negative: %d", ErrConfigValidation, config.Formatter.IndentWidth)
	}

	if !validOutputFormats[config.Output.Format] {
		return fmt.Errorf("%w: invalid output format '%s': must be one of json, yaml, xml", ErrConfigValidation, config.Output.Format)
	}

	if !validLogLevels[config.Log.Level] {
		return fmt.Errorf("%w: invalid log level '%s': must be one of info, debug, trace", ErrConfigValidation, config.Log.Level)
	}

	return nil
}

func getDefaultConfig() *Config {
	config := &Config{}
	applyDefaults(config)

	return config
}

// applyDefaults fills in the values left empty by the file
func applyDefaults(config *Config) {
	if config.Formatter.KeywordCase == "" {
		config.Formatter.KeywordCase = string(formatter.Upper)
	}

	if config.Formatter.IndentWidth == 0 {
		config.Formatter.IndentWidth = 2
	}

	if config.Output.Format == "" {
		config.Output.Format = "json"
	}

	config.Output.Format = strings.ToLower(config.Output.Format)

	if config.Log.Level == "" {
		config.Log.Level = "info"
	}

	config.Log.Level = strings.ToLower(config.Log.Level)

	if config.Fixtures.Dir == "" {
		config.Fixtures.Dir = "testdata/fixtures"
	}
}

// loadEnvFiles loads .env files if they exist
func loadEnvFiles() error {
	if fileExists(".env") {
		err := godotenv.Load(".env")
		if err != nil {
			return fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	return nil
}

var (
	bracedEnvVar = regexp.MustCompile(`\$\{([^}]+)\}`)
	plainEnvVar  = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
)

// expandEnvVars expands environment variables in the format ${VAR} or $VAR
func expandEnvVars(s string) string {
	s = bracedEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[2 : len(match)-1])
	})

	return plainEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[1:])
	})
}

// expandConfigEnvVars expands environment variables in path-like settings
func expandConfigEnvVars(config *Config) {
	config.Fixtures.Dir = expandEnvVars(config.Fixtures.Dir)
	config.Output.Format = expandEnvVars(config.Output.Format)
	config.Log.Level = expandEnvVars(config.Log.Level)
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

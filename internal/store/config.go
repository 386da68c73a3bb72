package store

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	PolicyCategorical = "CATEGORICAL"
	PolicyTokenCounts = "TOKEN_COUNTS"

	SourceJSON = "JSON"
	SourceCSV  = "CSV"
	SourceMock = "MOCK"

	FormatJSON  = "json"
	FormatTable = "table"

	DefaultWindowSize = 3
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Analysis struct {
		WindowSize      int    `yaml:"window_size"`
		IndicatorPolicy string `yaml:"indicator_policy"`
		Workers         int    `yaml:"workers"`
		SkipFailures    bool   `yaml:"skip_failures"`
	} `yaml:"analysis"`
	Source struct {
		Kind        string   `yaml:"kind"`
		Path        string   `yaml:"path"`
		StripMarkup bool     `yaml:"strip_markup"`
		Entities    []string `yaml:"entities"` // mock universe
	} `yaml:"source"`
	Sentiment struct {
		LexiconPath string `yaml:"lexicon_path"`
		Negation    *bool  `yaml:"negation"`
	} `yaml:"sentiment"`
	Output struct {
		Format string `yaml:"format"`
		Path   string `yaml:"path"`
	} `yaml:"output"`
}

// Default returns a config with every default applied
func Default() *Config {
	var c Config
	c.applyDefaults()
	return &c
}

// NegationEnabled reports whether negators flip the next sentiment word
func (c *Config) NegationEnabled() bool {
	return c.Sentiment.Negation == nil || *c.Sentiment.Negation
}

func (c *Config) applyDefaults() {
	if c.Analysis.WindowSize == 0 {
		c.Analysis.WindowSize = DefaultWindowSize
	}
	if c.Analysis.IndicatorPolicy == "" {
		c.Analysis.IndicatorPolicy = PolicyCategorical
	}
	if c.Analysis.Workers == 0 {
		c.Analysis.Workers = 1
	}
	if c.Source.Kind == "" {
		c.Source.Kind = SourceMock
	}
	if c.Output.Format == "" {
		c.Output.Format = FormatJSON
	}
	c.Analysis.IndicatorPolicy = strings.ToUpper(c.Analysis.IndicatorPolicy)
	c.Source.Kind = strings.ToUpper(c.Source.Kind)
	c.Output.Format = strings.ToLower(c.Output.Format)
}

// applyEnv lets STOCKSENSE_WINDOW_SIZE override the file
func (c *Config) applyEnv() error {
	v := os.Getenv("STOCKSENSE_WINDOW_SIZE")
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("STOCKSENSE_WINDOW_SIZE: %w", err)
	}
	c.Analysis.WindowSize = n
	return nil
}

func (c *Config) Validate() error {
	if c.Analysis.WindowSize < 1 {
		return fmt.Errorf("%w: analysis.window_size must be >= 1, got %d", ErrInvalidConfig, c.Analysis.WindowSize)
	}
	if c.Analysis.Workers < 1 {
		return fmt.Errorf("%w: analysis.workers must be >= 1, got %d", ErrInvalidConfig, c.Analysis.Workers)
	}
	if c.Analysis.IndicatorPolicy != PolicyCategorical && c.Analysis.IndicatorPolicy != PolicyTokenCounts {
		return fmt.Errorf("%w: analysis.indicator_policy must be '%s' or '%s', got '%s'",
			ErrInvalidConfig, PolicyCategorical, PolicyTokenCounts, c.Analysis.IndicatorPolicy)
	}
	switch c.Source.Kind {
	case SourceMock:
	case SourceJSON, SourceCSV:
		if c.Source.Path == "" {
			return fmt.Errorf("%w: source.path is required for source.kind '%s'", ErrInvalidConfig, c.Source.Kind)
		}
	default:
		return fmt.Errorf("%w: source.kind must be 'JSON', 'CSV' or 'MOCK', got '%s'", ErrInvalidConfig, c.Source.Kind)
	}
	if c.Output.Format != FormatJSON && c.Output.Format != FormatTable {
		return fmt.Errorf("%w: output.format must be 'json' or 'table', got '%s'", ErrInvalidConfig, c.Output.Format)
	}
	return nil
}

// LoadConfig reads path, applies defaults and env overrides, then validates.
// A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	var c Config
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, err
	}

	c.applyDefaults()
	if err := c.applyEnv(); err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &c, nil
}

// Package config loads draftprice settings from an optional YAML file and
// DRAFTPRICE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/ukaji3/draftprice-go/pkg/draftprice/parser"
	"github.com/ukaji3/draftprice-go/pkg/draftprice/sources"
)

// EnvPrefix is the prefix for environment overrides, e.g. DRAFTPRICE_FETCH_KIND.
const EnvPrefix = "DRAFTPRICE"

// Source kinds.
const (
	KindGviz = "gviz"
	KindXLSX = "xlsx"
)

// Config represents the complete application configuration.
type Config struct {
	Schema  SchemaConfig  `yaml:"schema" envconfig:"SCHEMA"`
	Fetch   FetchConfig   `yaml:"fetch" envconfig:"FETCH"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
}

// SchemaConfig lists the sub-tables and column names probed in each source.
type SchemaConfig struct {
	SubTables         []string `yaml:"sub_tables" envconfig:"SUB_TABLES"`
	PriceColumns      []string `yaml:"price_columns" envconfig:"PRICE_COLUMNS"`
	RecordColumns     []string `yaml:"record_columns" envconfig:"RECORD_COLUMNS"`
	PlaceholderColumn string   `yaml:"placeholder_column" envconfig:"PLACEHOLDER_COLUMN"`
	// Range limits xlsx sources to a cell range such as A1:Z500.
	Range string `yaml:"range" envconfig:"RANGE"`
}

// FetchConfig configures how sources are retrieved.
type FetchConfig struct {
	Kind              string        `yaml:"kind" envconfig:"KIND"`
	URLTemplate       string        `yaml:"url_template" envconfig:"URL_TEMPLATE"`
	Timeout           time.Duration `yaml:"timeout" envconfig:"TIMEOUT"`
	RequestsPerSecond float64       `yaml:"requests_per_second" envconfig:"REQUESTS_PER_SECOND"`
	Burst             int           `yaml:"burst" envconfig:"BURST"`
	UserAgent         string        `yaml:"user_agent" envconfig:"USER_AGENT"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL"`
	Format string `yaml:"format" envconfig:"FORMAT"`
}

// Default returns the built-in configuration.
func Default() *Config {
	schema := parser.DefaultSchema()
	fetch := sources.DefaultGvizConfig()
	return &Config{
		Schema: SchemaConfig{
			SubTables:         schema.SubTables,
			PriceColumns:      schema.PriceColumns,
			RecordColumns:     schema.RecordColumns,
			PlaceholderColumn: schema.PlaceholderColumn,
		},
		Fetch: FetchConfig{
			Kind:              KindGviz,
			URLTemplate:       fetch.URLTemplate,
			Timeout:           fetch.Timeout,
			RequestsPerSecond: fetch.RequestsPerSecond,
			Burst:             fetch.Burst,
			UserAgent:         fetch.UserAgent,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load applies, in order, the defaults, the YAML file at path (when path is
// not empty) and the environment, then validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	var errs []error

	if len(c.Schema.PriceColumns) == 0 {
		errs = append(errs, errors.New("schema.price_columns must not be empty"))
	}
	if len(c.Schema.RecordColumns) == 0 {
		errs = append(errs, errors.New("schema.record_columns must not be empty"))
	}
	if c.Schema.Range != "" {
		if _, err := parser.ParseRange(c.Schema.Range); err != nil {
			errs = append(errs, fmt.Errorf("schema.range: %w", err))
		}
	}

	switch strings.ToLower(c.Fetch.Kind) {
	case KindGviz:
		if !strings.Contains(c.Fetch.URLTemplate, "{id}") {
			errs = append(errs, errors.New("fetch.url_template must contain {id}"))
		}
	case KindXLSX:
	default:
		errs = append(errs, fmt.Errorf("fetch.kind %q must be %s or %s", c.Fetch.Kind, KindGviz, KindXLSX))
	}
	if c.Fetch.Timeout < 0 {
		errs = append(errs, errors.New("fetch.timeout must not be negative"))
	}

	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format %q must be text or json", c.Logging.Format))
	}

	return errors.Join(errs...)
}

// ParserSchema converts the schema section for the parser.
func (c *Config) ParserSchema() parser.Schema {
	return parser.Schema{
		SubTables:         c.Schema.SubTables,
		PriceColumns:      c.Schema.PriceColumns,
		RecordColumns:     c.Schema.RecordColumns,
		PlaceholderColumn: c.Schema.PlaceholderColumn,
	}
}

// GvizConfig converts the fetch section for the gviz fetcher.
func (c *Config) GvizConfig() sources.GvizConfig {
	return sources.GvizConfig{
		URLTemplate:       c.Fetch.URLTemplate,
		Timeout:           c.Fetch.Timeout,
		RequestsPerSecond: c.Fetch.RequestsPerSecond,
		Burst:             c.Fetch.Burst,
		UserAgent:         c.Fetch.UserAgent,
	}
}

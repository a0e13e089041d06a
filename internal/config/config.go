package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/webstats/webstats/internal/table"
)

// AppName names the config directory under $XDG_CONFIG_HOME.
const AppName = "webstats"

// Default input folders and output tables.
const (
	DefaultHARDir      = "./har_files"
	DefaultHAROut      = "har_data.csv"
	DefaultMetricsDir  = "reports"
	DefaultMetricsOut  = "lighthouse_summary.csv"
	DefaultPreviewRows = 5
)

// Pipeline locates one pipeline's input folder and output table.
type Pipeline struct {
	Dir string `yaml:"dir"`
	Out string `yaml:"out"`
}

// Config holds all runtime configuration for a webstats run.
type Config struct {
	DSN         string
	ConfigFile  string
	LogFormat   string // "text" or "json"
	Format      string // csv, parquet or markdown
	Workers     int
	Preview     int
	SkipInvalid bool
	HAR         Pipeline
	Metrics     Pipeline
	PlanKind    string // "har" or "metrics"
}

// yamlConfig is the on-disk YAML structure. Pointer fields distinguish
// "not set" from zero values.
type yamlConfig struct {
	LogFormat   *string   `yaml:"log_format"`
	Format      *string   `yaml:"format"`
	Workers     *int      `yaml:"workers"`
	Preview     *int      `yaml:"preview"`
	SkipInvalid *bool     `yaml:"skip_invalid"`
	HAR         *Pipeline `yaml:"har"`
	Metrics     *Pipeline `yaml:"metrics"`
}

// Defaults returns a Config with the built-in defaults.
func Defaults() Config {
	return Config{
		LogFormat: "text",
		Format:    string(table.FormatCSV),
		Workers:   1,
		Preview:   DefaultPreviewRows,
		HAR:       Pipeline{Dir: DefaultHARDir, Out: DefaultHAROut},
		Metrics:   Pipeline{Dir: DefaultMetricsDir, Out: DefaultMetricsOut},
		PlanKind:  "har",
	}
}

// DefaultPath returns the config file consulted when --config is not given.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}

// LoadFromFile reads a YAML config file and merges its values into Config.
// A key is skipped when explicit reports that the matching flag was set on
// the command line; explicit may be nil.
func (c *Config) LoadFromFile(path string, explicit func(flag string) bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	if explicit == nil {
		explicit = func(string) bool { return false }
	}

	if yc.LogFormat != nil && !explicit("log-format") {
		c.LogFormat = *yc.LogFormat
	}
	if yc.Format != nil && !explicit("format") {
		c.Format = *yc.Format
	}
	if yc.Workers != nil && !explicit("workers") {
		c.Workers = *yc.Workers
	}
	if yc.Preview != nil && !explicit("preview") {
		c.Preview = *yc.Preview
	}
	if yc.SkipInvalid != nil && !explicit("skip-invalid") {
		c.SkipInvalid = *yc.SkipInvalid
	}
	mergePipeline(&c.HAR, yc.HAR, explicit)
	mergePipeline(&c.Metrics, yc.Metrics, explicit)
	return nil
}

func mergePipeline(dst, src *Pipeline, explicit func(string) bool) {
	if src == nil {
		return
	}
	if src.Dir != "" && !explicit("dir") {
		dst.Dir = src.Dir
	}
	if src.Out != "" && !explicit("out") {
		dst.Out = src.Out
	}
}

// LoadDefaultFile merges DefaultPath when it exists. A missing file is not
// an error.
func (c *Config) LoadDefaultFile(explicit func(flag string) bool) error {
	path := DefaultPath()
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return c.LoadFromFile(path, explicit)
}

// OutputFormat returns the validated output format.
func (c *Config) OutputFormat() (table.Format, error) {
	return table.ParseFormat(c.Format)
}

// Validate checks field ranges and returns an error if the config is invalid.
func (c *Config) Validate() error {
	if _, err := c.OutputFormat(); err != nil {
		return err
	}
	if c.Workers < 1 {
		return fmt.Errorf("--workers must be at least 1, got %d", c.Workers)
	}
	if c.Preview < 0 {
		return fmt.Errorf("--preview must not be negative, got %d", c.Preview)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("--log-format must be text or json, got %q", c.LogFormat)
	}
	return nil
}

// ValidatePipeline checks one pipeline's paths in addition to Validate.
func (c *Config) ValidatePipeline(p Pipeline) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if p.Dir == "" {
		return fmt.Errorf("--dir is required")
	}
	if p.Out == "" {
		return fmt.Errorf("--out is required")
	}
	return nil
}

// ValidateWithDSN checks the base config and the DSN.
func (c *Config) ValidateWithDSN() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.DSN == "" {
		return fmt.Errorf("--dsn or WEBSTATS_DB_URL is required")
	}
	return nil
}

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jiaming2012/trade-journal/src/ingest"
	"github.com/jiaming2012/trade-journal/src/reconcile"
)

var ErrMissingSourceDir = fmt.Errorf("source_dir is not set")

type SheetsConfig struct {
	SpreadsheetId string `yaml:"spreadsheet_id"`
	AllTrades     string `yaml:"all_trades"`
	OpenPositions string `yaml:"open_positions"`
	ClosedTrades  string `yaml:"closed_trades"`
	Summary       string `yaml:"summary"`
}

type ManualColumnsConfig struct {
	OpenPositions []string `yaml:"open_positions"`
	ClosedTrades  []string `yaml:"closed_trades"`
}

type Config struct {
	Sheets            SheetsConfig        `yaml:"sheets"`
	SourceDir         string              `yaml:"source_dir"`
	ProcessedFilesLog string              `yaml:"processed_files_log"`
	ManualColumns     ManualColumnsConfig `yaml:"manual_columns"`
	FilledStatuses    []string            `yaml:"filled_statuses"`
	Timezone          string              `yaml:"timezone"`
	Concurrency       int                 `yaml:"concurrency"`
	LogLevel          string              `yaml:"log_level"`
	LogFormat         string              `yaml:"log_format"`

	location *time.Location
}

func Default() *Config {
	return &Config{
		Sheets: SheetsConfig{
			AllTrades:     "All Trades",
			OpenPositions: "Open Positions",
			ClosedTrades:  "Closed Trades",
			Summary:       "Summary",
		},
		ProcessedFilesLog: "processed_files.txt",
		ManualColumns: ManualColumnsConfig{
			OpenPositions: reconcile.DefaultOpenPositionsManualColumns,
			ClosedTrades:  reconcile.DefaultClosedTradesManualColumns,
		},
		FilledStatuses: ingest.DefaultFilledStatuses,
		Timezone:       "America/New_York",
		Concurrency:    4,
		LogLevel:       "info",
		LogFormat:      "text",
	}
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return Parse(data)
}

func (c *Config) Validate() error {
	if c.Sheets.AllTrades == "" || c.Sheets.OpenPositions == "" || c.Sheets.ClosedTrades == "" {
		return fmt.Errorf("Config.Validate: sheet names must not be empty")
	}

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("Config.Validate: timezone %q: %w", c.Timezone, err)
	}

	c.location = loc

	return nil
}

// RequireSourceDir is checked by the sync command after flag overrides.
// The offline positions command reads explicit paths and does not need it.
func (c *Config) RequireSourceDir() error {
	if strings.TrimSpace(c.SourceDir) == "" {
		return ErrMissingSourceDir
	}

	return nil
}

// Location is the timezone broker exports and stored timestamps are read in.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}

	return c.location
}

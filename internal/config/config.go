// Package config provides configuration management for the scheduler.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/eric-lsd08/US-ETF-Distribution-ICS-Scheduler/internal/dates"
	"github.com/eric-lsd08/US-ETF-Distribution-ICS-Scheduler/internal/models"
)

// Config holds all application configuration.
type Config struct {
	Output    OutputConfig            `mapstructure:"output"`
	Extract   ExtractConfig           `mapstructure:"extract"`
	Calendar  CalendarConfig          `mapstructure:"calendar"`
	Cache     CacheConfig             `mapstructure:"cache"`
	Logging   LoggingConfig           `mapstructure:"logging"`
	Overrides map[string][]string     `mapstructure:"overrides"`
	Issuers   map[string]IssuerConfig `mapstructure:"-"` // Loaded separately
}

// OutputConfig holds artifact generation configuration. The per-field
// selections are explicit structs handed to the emitters; there are no
// global enable flags.
type OutputConfig struct {
	Dir     string                `mapstructure:"dir"`
	FullCSV bool                  `mapstructure:"full_csv"`
	Split   models.FieldSelection `mapstructure:"split"`
	ICS     models.FieldSelection `mapstructure:"ics"`
}

// ExtractConfig holds extraction tuning.
type ExtractConfig struct {
	// KeepLatest caps label-block triples to the most recent N; 0 keeps all.
	KeepLatest int `mapstructure:"keep_latest"`
	// Parallel is the number of tickers extracted concurrently.
	Parallel int `mapstructure:"parallel"`
}

// CalendarConfig holds business-day calendar configuration.
type CalendarConfig struct {
	// ExtraHolidays lists ad-hoc non-business dates (ISO form) appended to
	// the federal holiday set, e.g. market closures.
	ExtraHolidays []string `mapstructure:"extra_holidays"`
}

// CacheConfig holds document cache configuration.
type CacheConfig struct {
	Dir     string        `mapstructure:"dir"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	Console bool   `mapstructure:"console"`
	File    bool   `mapstructure:"file"`
}

// IssuerConfig registers one issuer document.
type IssuerConfig struct {
	URL    string `mapstructure:"url"`
	Format string `mapstructure:"format"`
	// File points at a local document and skips the download when set.
	File string `mapstructure:"file"`
}

// DocumentFormat returns the issuer's dialect.
func (c IssuerConfig) DocumentFormat() (models.DocumentFormat, bool) {
	return models.ParseDocumentFormat(c.Format)
}

// DefaultConfigDir returns the configuration directory, honoring the
// DIVCAL_CONFIG_DIR override.
func DefaultConfigDir() string {
	if v := os.Getenv("DIVCAL_CONFIG_DIR"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/divcal"
	}
	return filepath.Join(home, ".config", "divcal")
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg := &Config{}

	// Load main config
	if err := loadConfigFile(configDir, cfg); err != nil {
		return nil, fmt.Errorf("loading config.toml: %w", err)
	}

	// Load issuer registry
	if err := loadIssuers(configDir, cfg); err != nil {
		return nil, fmt.Errorf("loading issuers.toml: %w", err)
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	if cfg.Cache.Dir == "" {
		cfg.Cache.Dir = filepath.Join(configDir, "cache")
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func loadConfigFile(configDir string, cfg *Config) error {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	// Defaults
	v.SetDefault("output.dir", ".")
	v.SetDefault("output.full_csv", true)
	v.SetDefault("output.ics.ex_date_minus_1", true)
	v.SetDefault("extract.keep_latest", 3)
	v.SetDefault("extract.parallel", 4)
	v.SetDefault("cache.timeout", "60s")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.console", true)
	v.SetDefault("logging.file", true)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found, create template
			return createTemplateConfig(configDir)
		}
		return err
	}

	return v.Unmarshal(cfg)
}

func loadIssuers(configDir string, cfg *Config) error {
	v := viper.New()
	v.SetConfigName("issuers")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return createTemplateIssuers(configDir)
		}
		return err
	}

	return v.Unmarshal(&cfg.Issuers)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DIVCAL_CACHE_DIR"); v != "" {
		cfg.Cache.Dir = v
	}
	if v := os.Getenv("DIVCAL_OUTPUT_DIR"); v != "" {
		cfg.Output.Dir = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Extract.KeepLatest < 0 {
		return fmt.Errorf("extract.keep_latest must be non-negative")
	}
	if c.Extract.Parallel < 1 || c.Extract.Parallel > 32 {
		return fmt.Errorf("extract.parallel must be between 1 and 32")
	}

	for name, issuer := range c.Issuers {
		if _, ok := issuer.DocumentFormat(); !ok {
			return fmt.Errorf("issuer %s: unknown format %q (must be month-row, column-position or label-block)", name, issuer.Format)
		}
		if issuer.URL == "" && issuer.File == "" {
			return fmt.Errorf("issuer %s: either url or file must be set", name)
		}
	}

	for ticker, fields := range c.Overrides {
		for _, f := range fields {
			if _, ok := models.ParseDateField(f); !ok {
				return fmt.Errorf("override %s: unknown date field %q", ticker, f)
			}
		}
	}

	for _, h := range c.Calendar.ExtraHolidays {
		if _, err := dates.Normalize(h); err != nil {
			return fmt.Errorf("calendar.extra_holidays: %q is not a date", h)
		}
	}

	return nil
}

// Issuer looks up a registered issuer by name.
func (c *Config) Issuer(name string) (IssuerConfig, bool) {
	issuer, ok := c.Issuers[name]
	return issuer, ok
}

// overrideSelection parses the per-ticker field override into a selection.
func (c *Config) overrideSelection(ticker string) (models.FieldSelection, bool) {
	fields, ok := c.Overrides[ticker]
	if !ok {
		return models.FieldSelection{}, false
	}
	var parsed []models.DateField
	for _, f := range fields {
		if df, ok := models.ParseDateField(f); ok {
			parsed = append(parsed, df)
		}
	}
	return models.SelectionOf(parsed...), true
}

// SplitSelectionFor returns the CSV-split field selection for a ticker.
// An explicit per-ticker override wins over the global defaults.
func (c *Config) SplitSelectionFor(ticker string) models.FieldSelection {
	if sel, ok := c.overrideSelection(ticker); ok {
		return sel
	}
	return c.Output.Split
}

// ICSSelectionFor returns the ICS field selection for a ticker. The same
// per-ticker override table governs both artifact kinds.
func (c *Config) ICSSelectionFor(ticker string) models.FieldSelection {
	if sel, ok := c.overrideSelection(ticker); ok {
		return sel
	}
	return c.Output.ICS
}

// ExtraHolidayDates parses the configured ad-hoc holidays.
func (c *Config) ExtraHolidayDates() []dates.Date {
	var out []dates.Date
	for _, h := range c.Calendar.ExtraHolidays {
		if d, err := dates.Normalize(h); err == nil {
			out = append(out, d)
		}
	}
	return out
}

// Package config loads the analysis settings: fold and split seeds, model
// options, data locations and the scrape source.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/YuminosukeSato/covidrank/core/model"
	"github.com/YuminosukeSato/covidrank/linear"
	"github.com/YuminosukeSato/covidrank/model_selection"
	"github.com/YuminosukeSato/covidrank/pkg/errors"
	"github.com/YuminosukeSato/covidrank/pkg/log"
	"github.com/YuminosukeSato/covidrank/scrape"
)

// Environment variables that override file settings.
const (
	EnvLogLevel  = "COVIDRANK_LOG_LEVEL"
	EnvScrapeURL = "COVIDRANK_SCRAPE_URL"
)

// DefaultScrapeURL is the reopening guide the rank table is scraped from.
const DefaultScrapeURL = scrape.RanksURL

// Config holds all covidrank configuration.
type Config struct {
	CV      CVConfig      `yaml:"cv"`
	Holdout HoldoutConfig `yaml:"holdout"`
	Model   ModelConfig   `yaml:"model"`
	Data    DataConfig    `yaml:"data"`
	Scrape  ScrapeConfig  `yaml:"scrape"`
	Log     LogConfig     `yaml:"log"`
}

// CVConfig controls the fold partition used to score predictor subsets.
type CVConfig struct {
	NSplits int    `yaml:"n_splits"`
	Shuffle bool   `yaml:"shuffle"`
	Seed    uint64 `yaml:"seed"`
}

// HoldoutConfig controls the final train/test evaluation.
type HoldoutConfig struct {
	TestSize float64 `yaml:"test_size"`
	Seed     uint64  `yaml:"seed"`
}

// ModelConfig controls the OLS fit.
type ModelConfig struct {
	FitIntercept bool    `yaml:"fit_intercept"`
	Rcond        float64 `yaml:"rcond"`
}

// DataConfig names the input files and the columns the analysis uses.
type DataConfig struct {
	Path     string   `yaml:"path"`
	Target   string   `yaml:"target"`
	ID       string   `yaml:"id"`
	Exclude  []string `yaml:"exclude"`
	Features []string `yaml:"features"`
	Encode   []string `yaml:"encode"`
}

// ScrapeConfig controls the reopening-rank scraper.
type ScrapeConfig struct {
	URL             string        `yaml:"url"`
	ColumnsPerBlock int           `yaml:"columns_per_block"`
	Timeout         time.Duration `yaml:"timeout"`
	UserAgent       string        `yaml:"user_agent"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	c := &Config{
		CV:    CVConfig{Shuffle: true},
		Model: ModelConfig{FitIntercept: true},
	}
	c.defaults()
	return c
}

func (c *Config) defaults() {
	if c.CV.NSplits <= 0 {
		c.CV.NSplits = model_selection.DefaultNSplits
	}
	if c.CV.Seed == 0 {
		c.CV.Seed = model_selection.DefaultSeed
	}
	if c.Holdout.TestSize == 0 {
		c.Holdout.TestSize = model_selection.DefaultTestSize
	}
	if c.Holdout.Seed == 0 {
		c.Holdout.Seed = model_selection.DefaultSeed
	}
	if c.Data.ID == "" {
		c.Data.ID = "state"
	}
	if c.Scrape.URL == "" {
		c.Scrape.URL = DefaultScrapeURL
	}
	if c.Scrape.ColumnsPerBlock <= 0 {
		c.Scrape.ColumnsPerBlock = scrape.DefaultPerBlock
	}
	if c.Scrape.Timeout <= 0 {
		c.Scrape.Timeout = scrape.Timeout
	}
	if c.Scrape.UserAgent == "" {
		c.Scrape.UserAgent = scrape.UserAgent
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Load reads a YAML config file over the defaults, applies environment
// overrides and validates the result. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
		if err := Parse(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "parse config %s", path)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML into cfg. Keys missing from data keep cfg's values.
func Parse(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return err
	}
	cfg.defaults()
	return nil
}

// LoadDotEnv loads KEY=value pairs from the given files into the process
// environment. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return errors.Wrapf(err, "load %s", p)
		}
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.Log.Level = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvScrapeURL)); v != "" {
		c.Scrape.URL = v
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.CV.NSplits < 2 {
		return errors.NewValidationError("cv.n_splits", "must be at least 2", c.CV.NSplits)
	}
	if !(c.Holdout.TestSize > 0 && c.Holdout.TestSize < 1) {
		return errors.NewValidationError("holdout.test_size", "must be in (0, 1)", c.Holdout.TestSize)
	}
	if c.Model.Rcond < 0 {
		return errors.NewValidationError("model.rcond", "must not be negative", c.Model.Rcond)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return errors.NewValidationError("log.level", err.Error(), c.Log.Level)
	}
	return nil
}

// Regressor returns a factory for the configured OLS model.
func (c *Config) Regressor() model.RegressorFactory {
	opts := []linear.Option{
		linear.WithFitIntercept(c.Model.FitIntercept),
		linear.WithRcond(c.Model.Rcond),
	}
	return func() model.Regressor {
		return linear.NewLinearRegression(opts...)
	}
}

// CVOptions returns the scorer options for the configured fold partition.
func (c *Config) CVOptions() []model_selection.Option {
	return []model_selection.Option{
		model_selection.WithNSplits(c.CV.NSplits),
		model_selection.WithShuffle(c.CV.Shuffle),
		model_selection.WithSeed(c.CV.Seed),
		model_selection.WithRegressor(c.Regressor()),
	}
}

// Scraper returns a scraper for the configured source.
func (c *Config) Scraper() *scrape.Scraper {
	return scrape.New(
		scrape.WithURL(c.Scrape.URL),
		scrape.WithUserAgent(c.Scrape.UserAgent),
		scrape.WithTimeout(c.Scrape.Timeout),
		scrape.WithColumnsPerBlock(c.Scrape.ColumnsPerBlock),
	)
}

// HoldoutOptions returns the evaluator options for the configured split.
func (c *Config) HoldoutOptions() []model_selection.Option {
	return []model_selection.Option{
		model_selection.WithTestSize(c.Holdout.TestSize),
		model_selection.WithSeed(c.Holdout.Seed),
		model_selection.WithRegressor(c.Regressor()),
	}
}

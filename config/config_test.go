package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/covidrank/pkg/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 5, cfg.CV.NSplits)
	assert.True(t, cfg.CV.Shuffle)
	assert.Equal(t, uint64(42), cfg.CV.Seed)
	assert.Equal(t, 0.2, cfg.Holdout.TestSize)
	assert.Equal(t, uint64(42), cfg.Holdout.Seed)
	assert.True(t, cfg.Model.FitIntercept)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, DefaultScrapeURL, cfg.Scrape.URL)
	assert.Equal(t, 3, cfg.Scrape.ColumnsPerBlock)
	assert.Equal(t, "state", cfg.Data.ID)
	require.NoError(t, cfg.Validate())
}

func TestParseKeepsUnsetKeys(t *testing.T) {
	cfg := Default()
	err := Parse([]byte(`
cv:
  n_splits: 10
  shuffle: false
holdout:
  test_size: 0.3
data:
  target: cases_per_100k
  exclude: [state, date]
scrape:
  timeout: 5s
`), cfg)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.CV.NSplits)
	assert.False(t, cfg.CV.Shuffle)
	assert.Equal(t, uint64(42), cfg.CV.Seed)
	assert.Equal(t, 0.3, cfg.Holdout.TestSize)
	assert.True(t, cfg.Model.FitIntercept)
	assert.Equal(t, "cases_per_100k", cfg.Data.Target)
	assert.Equal(t, []string{"state", "date"}, cfg.Data.Exclude)
	assert.Equal(t, 5*time.Second, cfg.Scrape.Timeout)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "covidrank.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\n"), 0o600))

	t.Run("file", func(t *testing.T) {
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.Log.Level)
	})

	t.Run("env override", func(t *testing.T) {
		t.Setenv(EnvLogLevel, "warn")
		t.Setenv(EnvScrapeURL, "http://localhost/ranks")
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "warn", cfg.Log.Level)
		assert.Equal(t, "http://localhost/ranks", cfg.Scrape.URL)
	})

	t.Run("no file", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, 5, cfg.CV.NSplits)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(bad, []byte("cv: [1, 2"), 0o600))
		_, err := Load(bad)
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		param  string
	}{
		{"one fold", func(c *Config) { c.CV.NSplits = 1 }, "cv.n_splits"},
		{"test size too large", func(c *Config) { c.Holdout.TestSize = 1 }, "holdout.test_size"},
		{"negative rcond", func(c *Config) { c.Model.Rcond = -1 }, "model.rcond"},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			var valErr *errors.ValidationError
			require.True(t, errors.As(err, &valErr))
			assert.Equal(t, tt.param, valErr.ParamName)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("COVIDRANK_TEST_DOTENV=loaded\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("COVIDRANK_TEST_DOTENV") })

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env"), path))
	assert.Equal(t, "loaded", os.Getenv("COVIDRANK_TEST_DOTENV"))
}

func TestOptions(t *testing.T) {
	cfg := Default()
	assert.Len(t, cfg.CVOptions(), 4)
	assert.Len(t, cfg.HoldoutOptions(), 3)

	reg := cfg.Regressor()()
	assert.NotNil(t, reg)
	assert.NotNil(t, cfg.Scraper())
}

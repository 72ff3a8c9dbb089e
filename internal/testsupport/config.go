package testsupport

import (
	"path/filepath"
	"testing"

	"kindleshelf/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.ExportDir = filepath.Join(base, "export")
	cfgVal.Library.DBPath = ""
	cfgVal.Authors.Fetch = false
	cfgVal.LLM.APIKey = ""

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithLLM enables author lookup against the given endpoint.
func WithLLM(baseURL, key string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Authors.Fetch = true
		b.cfg.LLM.BaseURL = baseURL
		b.cfg.LLM.APIKey = key
	}
}

// WithQuoteStyle overrides the CSV quote style on the test config.
func WithQuoteStyle(style string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Export.QuoteStyle = style
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}

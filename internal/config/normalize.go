package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeLibrary(); err != nil {
		return err
	}
	c.normalizeStorefront()
	c.normalizeMailbox()
	c.normalizeAuthors()
	c.normalizeLLM()
	c.normalizeExport()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.ExportDir) == "" {
		c.Paths.ExportDir = defaultExportDir
	}
	if c.Paths.ExportDir, err = expandPath(c.Paths.ExportDir); err != nil {
		return fmt.Errorf("paths.export_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLibrary() error {
	var err error
	if c.Library.DBPath, err = expandPath(strings.TrimSpace(c.Library.DBPath)); err != nil {
		return fmt.Errorf("library.db_path: %w", err)
	}
	c.Library.DefaultFormat = strings.TrimSpace(c.Library.DefaultFormat)
	if c.Library.DefaultFormat == "" {
		c.Library.DefaultFormat = defaultFormat
	}
	return nil
}

func (c *Config) normalizeStorefront() {
	c.Storefront.RowClass = strings.TrimSpace(c.Storefront.RowClass)
	if c.Storefront.RowClass == "" {
		c.Storefront.RowClass = defaultRowClass
	}
	if c.Storefront.Workers <= 0 {
		c.Storefront.Workers = defaultWorkers
	}
}

func (c *Config) normalizeMailbox() {
	c.Mailbox.Senders = dedupeTrimmed(c.Mailbox.Senders, strings.ToLower)
	c.Mailbox.SubjectKeywords = dedupeTrimmed(c.Mailbox.SubjectKeywords, nil)
	if c.Mailbox.DaysBack < 0 {
		c.Mailbox.DaysBack = 0
	}
	if c.Mailbox.MaxMessages < 0 {
		c.Mailbox.MaxMessages = 0
	}
}

func (c *Config) normalizeAuthors() {
	c.Authors.Placeholder = strings.TrimSpace(c.Authors.Placeholder)
	if c.Authors.Placeholder == "" {
		c.Authors.Placeholder = defaultPlaceholder
	}
}

func (c *Config) normalizeLLM() {
	c.LLM.BaseURL = strings.TrimSpace(c.LLM.BaseURL)
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = defaultLLMBaseURL
	}
	c.LLM.Model = strings.TrimSpace(c.LLM.Model)
	if c.LLM.Model == "" {
		c.LLM.Model = defaultLLMModel
	}
	c.LLM.Referer = strings.TrimSpace(c.LLM.Referer)
	if c.LLM.Referer == "" {
		c.LLM.Referer = defaultLLMReferer
	}
	c.LLM.Title = strings.TrimSpace(c.LLM.Title)
	if c.LLM.Title == "" {
		c.LLM.Title = defaultLLMTitle
	}
	if c.LLM.TimeoutSeconds <= 0 {
		c.LLM.TimeoutSeconds = defaultLLMTimeout
	}
	c.LLM.APIKey = strings.TrimSpace(c.LLM.APIKey)
	if c.LLM.APIKey == "" {
		if value, ok := os.LookupEnv("LLM_API_KEY"); ok {
			c.LLM.APIKey = strings.TrimSpace(value)
		} else if value, ok := os.LookupEnv("OPENROUTER_API_KEY"); ok {
			c.LLM.APIKey = strings.TrimSpace(value)
		}
	}
}

func (c *Config) normalizeExport() {
	c.Export.QuoteStyle = strings.ToLower(strings.TrimSpace(c.Export.QuoteStyle))
	if c.Export.QuoteStyle == "" {
		c.Export.QuoteStyle = QuoteStyleDouble
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func dedupeTrimmed(values []string, fold func(string) string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		normalized := strings.TrimSpace(value)
		if fold != nil {
			normalized = fold(normalized)
		}
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		out = append(out, normalized)
	}
	return out
}

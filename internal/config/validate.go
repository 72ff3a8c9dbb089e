package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateStorefront(); err != nil {
		return err
	}
	if err := c.validateMailbox(); err != nil {
		return err
	}
	if err := c.validateAuthors(); err != nil {
		return err
	}
	if err := c.validateExport(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return errors.New("paths.data_dir must be set")
	}
	if strings.TrimSpace(c.Library.DefaultFormat) == "" {
		return errors.New("library.default_format must be set")
	}
	return nil
}

func (c *Config) validateStorefront() error {
	if strings.TrimSpace(c.Storefront.RowClass) == "" {
		return errors.New("storefront.row_class must be set")
	}
	if c.Storefront.Workers <= 0 {
		return errors.New("storefront.workers must be positive")
	}
	return nil
}

func (c *Config) validateMailbox() error {
	for _, sender := range c.Mailbox.Senders {
		if !strings.Contains(sender, "@") {
			return fmt.Errorf("mailbox.senders: %q is not an email address", sender)
		}
	}
	if c.Mailbox.DaysBack < 0 {
		return errors.New("mailbox.days_back must be >= 0")
	}
	if c.Mailbox.MaxMessages < 0 {
		return errors.New("mailbox.max_messages must be >= 0")
	}
	return nil
}

func (c *Config) validateAuthors() error {
	if !c.Authors.Fetch {
		return nil
	}
	if strings.TrimSpace(c.LLM.APIKey) == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = defaultConfigPath
		}
		return fmt.Errorf("llm.api_key is required when authors.fetch is true. Set LLM_API_KEY env var or edit %s (create with 'kindleshelf config init')", defaultPath)
	}
	if c.LLM.TimeoutSeconds <= 0 {
		return errors.New("llm.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateExport() error {
	switch c.Export.QuoteStyle {
	case QuoteStyleDouble, QuoteStyleBackslash:
		return nil
	default:
		return fmt.Errorf("export.quote_style must be %q or %q, got %q", QuoteStyleDouble, QuoteStyleBackslash, c.Export.QuoteStyle)
	}
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
}

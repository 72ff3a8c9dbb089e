package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	DataDir   string `toml:"data_dir"`
	LogDir    string `toml:"log_dir"`
	ExportDir string `toml:"export_dir"`
}

// Library contains configuration for the collected-record database.
type Library struct {
	DBPath        string `toml:"db_path"`
	DefaultFormat string `toml:"default_format"`
}

// Storefront contains configuration for saved content-library pages.
type Storefront struct {
	RowClass string `toml:"row_class"`
	Workers  int    `toml:"workers"`
}

// Mailbox contains the filters applied to order confirmation mail.
type Mailbox struct {
	Senders         []string `toml:"senders"`
	SubjectKeywords []string `toml:"subject_keywords"`
	DaysBack        int      `toml:"days_back"`
	MaxMessages     int      `toml:"max_messages"`
}

// Authors controls author lookup for titles that arrive without one.
type Authors struct {
	Fetch       bool   `toml:"fetch"`
	Placeholder string `toml:"placeholder"`
}

// LLM contains the chat-completions connection used for author lookup.
type LLM struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	Model          string `toml:"model"`
	Referer        string `toml:"referer"`
	Title          string `toml:"title"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Export contains CSV export settings.
type Export struct {
	QuoteStyle     string `toml:"quote_style"`
	SanitizeCommas bool   `toml:"sanitize_commas"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for kindleshelf.
//
// Configuration sections by subsystem:
//   - Paths: data, log, and export directories
//   - Library: SQLite database location and default format literal
//   - Storefront: saved content-library page parsing
//   - Mailbox: sender, subject, and date filters for order mail
//   - Authors: LLM author lookup toggle and placeholder
//   - LLM: chat-completions connection settings
//   - Export: CSV quoting style
//   - Logging: log format and level
type Config struct {
	Paths      Paths      `toml:"paths"`
	Library    Library    `toml:"library"`
	Storefront Storefront `toml:"storefront"`
	Mailbox    Mailbox    `toml:"mailbox"`
	Authors    Authors    `toml:"authors"`
	LLM        LLM        `toml:"llm"`
	Export     Export     `toml:"export"`
	Logging    Logging    `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the data and log directories. The export
// directory is created on a best-effort basis since it often points at a
// user folder such as ~/Downloads.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	if strings.TrimSpace(c.Paths.ExportDir) != "" {
		_ = os.MkdirAll(c.Paths.ExportDir, 0o755)
	}
	return nil
}

// LibraryPath returns the SQLite database location.
func (c *Config) LibraryPath() string {
	if strings.TrimSpace(c.Library.DBPath) != "" {
		return c.Library.DBPath
	}
	return filepath.Join(c.Paths.DataDir, libraryDBName)
}

// LockPath returns the lock file guarding collection sessions.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.DataDir, libraryLockName)
}

// LogFilePath returns the log file path, or "" when file logging is disabled.
func (c *Config) LogFilePath() string {
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return ""
	}
	return filepath.Join(c.Paths.LogDir, logFileName)
}

// MailboxWindow returns how far back mail is accepted. Zero means no limit.
func (c *Config) MailboxWindow() time.Duration {
	if c.Mailbox.DaysBack <= 0 {
		return 0
	}
	return time.Duration(c.Mailbox.DaysBack) * 24 * time.Hour
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// LLMConfig contains the trimmed LLM connection settings.
type LLMConfig struct {
	APIKey         string
	BaseURL        string
	Model          string
	Referer        string
	Title          string
	TimeoutSeconds int
}

// GetLLM returns the LLM connection settings.
func (c *Config) GetLLM() LLMConfig {
	return LLMConfig{
		APIKey:         strings.TrimSpace(c.LLM.APIKey),
		BaseURL:        strings.TrimSpace(c.LLM.BaseURL),
		Model:          strings.TrimSpace(c.LLM.Model),
		Referer:        strings.TrimSpace(c.LLM.Referer),
		Title:          strings.TrimSpace(c.LLM.Title),
		TimeoutSeconds: c.LLM.TimeoutSeconds,
	}
}

package config

const (
	defaultConfigPath   = "~/.config/kindleshelf/config.toml"
	projectConfigName   = "kindleshelf.toml"
	defaultDataDir      = "~/.local/share/kindleshelf"
	defaultLogDir       = "~/.local/share/kindleshelf/logs"
	defaultExportDir    = "~/Downloads"
	libraryDBName       = "library.db"
	libraryLockName     = "library.lock"
	logFileName         = "kindleshelf.log"
	defaultFormat       = "Kindle"
	defaultRowClass     = "ListItem-module_row"
	defaultWorkers      = 4
	defaultDaysBack     = 30
	defaultMaxMessages  = 500
	defaultPlaceholder  = "To be update"
	defaultLLMBaseURL   = "https://openrouter.ai/api/v1/chat/completions"
	defaultLLMModel     = "perplexity/sonar"
	defaultLLMReferer   = "https://github.com/kindleshelf/kindleshelf"
	defaultLLMTitle     = "kindleshelf author lookup"
	defaultLLMTimeout   = 60
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
	QuoteStyleDouble    = "double"
	QuoteStyleBackslash = "backslash"
)

var (
	defaultSenders = []string{
		"no-reply@amazon.co.jp",
		"order-update@amazon.co.jp",
		"digital-no-reply@amazon.co.jp",
	}
	defaultSubjectKeywords = []string{"注文", "Kindle", "電子書籍"}
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:   defaultDataDir,
			LogDir:    defaultLogDir,
			ExportDir: defaultExportDir,
		},
		Library: Library{
			DefaultFormat: defaultFormat,
		},
		Storefront: Storefront{
			RowClass: defaultRowClass,
			Workers:  defaultWorkers,
		},
		Mailbox: Mailbox{
			Senders:         append([]string(nil), defaultSenders...),
			SubjectKeywords: append([]string(nil), defaultSubjectKeywords...),
			DaysBack:        defaultDaysBack,
			MaxMessages:     defaultMaxMessages,
		},
		Authors: Authors{
			Placeholder: defaultPlaceholder,
		},
		LLM: LLM{
			BaseURL:        defaultLLMBaseURL,
			Model:          defaultLLMModel,
			Referer:        defaultLLMReferer,
			Title:          defaultLLMTitle,
			TimeoutSeconds: defaultLLMTimeout,
		},
		Export: Export{
			QuoteStyle: QuoteStyleDouble,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

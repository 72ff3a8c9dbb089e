package llm

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"

	"kindleshelf/internal/logging"
	"kindleshelf/internal/services"
)

// DefaultAuthorPlaceholder is recorded when no author could be resolved.
const DefaultAuthorPlaceholder = "To be update"

// ErrNoAuthor is returned when the model answers without any author name.
var ErrNoAuthor = errors.New("no author in response")

var (
	citationPattern     = regexp.MustCompile(`\[\d+\]`)
	authorSeparators    = regexp.MustCompile(`[,，、]`)
	authorLabelPrefix   = regexp.MustCompile(`^(著者名?|作者|Authors?)\s*[:：]\s*`)
	authorTrimCutset    = " \t\"'「」『』*・"
	authorListSeparator = ", "
)

// AuthorLookup resolves book titles to author names through a Client.
type AuthorLookup struct {
	client      *Client
	placeholder string
	logger      *slog.Logger
}

// NewAuthorLookup wraps client. An empty placeholder uses DefaultAuthorPlaceholder.
func NewAuthorLookup(client *Client, placeholder string, logger *slog.Logger) *AuthorLookup {
	placeholder = strings.TrimSpace(placeholder)
	if placeholder == "" {
		placeholder = DefaultAuthorPlaceholder
	}
	return &AuthorLookup{
		client:      client,
		placeholder: placeholder,
		logger:      logging.NewComponentLogger(logger, "llm"),
	}
}

// Placeholder returns the value recorded when lookup fails.
func (a *AuthorLookup) Placeholder() string {
	return a.placeholder
}

// Lookup asks the model for the authors of title and returns them joined
// with ", ".
func (a *AuthorLookup) Lookup(ctx context.Context, title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", services.Wrap(services.ErrValidation, "authors", "lookup", "title required", nil)
	}
	if a == nil || !a.client.Configured() {
		return "", services.Wrap(services.ErrConfiguration, "authors", "lookup", "api key required", nil)
	}
	content, err := a.client.CompleteText(ctx, AuthorSystemPrompt, authorPrompt(title))
	if err != nil {
		marker := services.ErrExternalTool
		if errors.Is(err, context.DeadlineExceeded) {
			marker = services.ErrTimeout
		}
		return "", services.Wrap(marker, "authors", "lookup", "", classifyError(err))
	}
	authors := ParseAuthorList(content)
	if authors == "" {
		return "", services.Wrap(services.ErrNotFound, "authors", "lookup", "response: "+summarizePayloadSnippet(content), ErrNoAuthor)
	}
	return authors, nil
}

// ResolveAuthor returns the looked-up authors, or the placeholder when the
// lookup fails for any reason other than cancellation.
func (a *AuthorLookup) ResolveAuthor(ctx context.Context, title string) string {
	authors, err := a.Lookup(ctx, title)
	if err != nil {
		if ctx.Err() == nil {
			attrs := []logging.Attr{
				logging.String("title", title),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, services.Hint(err)),
				logging.String(logging.FieldImpact, "placeholder author recorded"),
			}
			// Unknown titles and failures that may clear up on their own are
			// warnings; anything else needs the config or model fixed.
			if services.Retryable(err) || errors.Is(err, services.ErrNotFound) {
				logging.WarnWithContext(a.logger, "author lookup failed", "author_lookup_failed", attrs...)
			} else {
				logging.ErrorWithContext(a.logger, "author lookup failed", "author_lookup_failed", attrs...)
			}
		}
		return a.placeholder
	}
	a.logger.Debug("author resolved",
		logging.String("title", title),
		logging.String("author", authors),
	)
	return authors
}

// ParseAuthorList normalizes a model answer into "A, B, C". Only the first
// non-empty line is used; citation markers and labels are dropped.
func ParseAuthorList(content string) string {
	line := ""
	for _, candidate := range strings.Split(stripCodeFenceBlock(content), "\n") {
		if trimmed := strings.TrimSpace(candidate); trimmed != "" {
			line = trimmed
			break
		}
	}
	if line == "" {
		return ""
	}
	line = citationPattern.ReplaceAllString(line, "")
	line = authorLabelPrefix.ReplaceAllString(line, "")

	var names []string
	seen := make(map[string]struct{})
	for _, part := range authorSeparators.Split(line, -1) {
		name := strings.Trim(strings.TrimSpace(part), authorTrimCutset)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return strings.Join(names, authorListSeparator)
}

package mailbox

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"kindleshelf/internal/book"
	"kindleshelf/internal/logging"
)

const defaultWorkers = 4

// AuthorResolver looks up the author of a title. Implementations return a
// placeholder rather than failing.
type AuthorResolver interface {
	ResolveAuthor(ctx context.Context, title string) string
}

// Report counts what a collection pass saw.
type Report struct {
	Files             int `json:"files"`
	MessagesSeen      int `json:"messagesSeen"`
	MessagesMatched   int `json:"messagesMatched"`
	MessagesFailed    int `json:"messagesFailed"`
	BooksFound        int `json:"booksFound"`
	DuplicatesRemoved int `json:"duplicatesRemoved"`
}

// Option customizes Collect.
type Option func(*collector)

type collector struct {
	resolver    AuthorResolver
	placeholder string
	format      string
	workers     int
	logger      *slog.Logger
}

// WithAuthorResolver looks up authors for collected titles.
func WithAuthorResolver(resolver AuthorResolver) Option {
	return func(c *collector) {
		c.resolver = resolver
	}
}

// WithPlaceholder sets the author recorded when no resolver is configured.
func WithPlaceholder(placeholder string) Option {
	return func(c *collector) {
		c.placeholder = placeholder
	}
}

// WithFormat sets the format recorded on every collected book.
func WithFormat(format string) Option {
	return func(c *collector) {
		c.format = format
	}
}

// WithWorkers bounds concurrent file reads and author lookups.
func WithWorkers(workers int) Option {
	return func(c *collector) {
		if workers > 0 {
			c.workers = workers
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *collector) {
		c.logger = logger
	}
}

// Collect reads .eml and mbox files, keeps the messages filter accepts and
// returns one record per distinct title in order of first appearance.
func Collect(ctx context.Context, paths []string, filter Filter, opts ...Option) ([]book.Record, Report, error) {
	c := &collector{workers: defaultWorkers}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = logging.NewComponentLogger(c.logger, "mailbox")

	raw, err := c.readFiles(ctx, paths)
	if err != nil {
		return nil, Report{}, err
	}

	report := Report{Files: len(paths)}
	titles := c.extract(raw, paths, filter, &report)

	authors, err := c.resolveAuthors(ctx, titles)
	if err != nil {
		return nil, Report{}, err
	}

	records := make([]book.Record, len(titles))
	for i, title := range titles {
		records[i] = book.New(title, authors[i], c.format)
	}

	c.logger.Info("mail collection complete",
		logging.Int("files", report.Files),
		logging.Int("messages_seen", report.MessagesSeen),
		logging.Int("messages_matched", report.MessagesMatched),
		logging.Int("messages_failed", report.MessagesFailed),
		logging.Int("books_found", report.BooksFound),
		logging.Int("duplicates_removed", report.DuplicatesRemoved),
	)
	return records, report, nil
}

func (c *collector) readFiles(ctx context.Context, paths []string) ([][][]byte, error) {
	out := make([][][]byte, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read mail file: %w", err)
			}
			if !looksLikeMbox(data) {
				out[i] = [][]byte{data}
				return nil
			}
			messages, err := ReadMbox(bytes.NewReader(data))
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			out[i] = messages
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *collector) extract(raw [][][]byte, paths []string, filter Filter, report *Report) []string {
	var titles []string
	seen := make(map[string]struct{})

	for i, messages := range raw {
		for _, data := range messages {
			if filter.MaxMessages > 0 && report.MessagesMatched >= filter.MaxMessages {
				c.logger.Debug("mail message cap reached", logging.Int("max_messages", filter.MaxMessages))
				return titles
			}
			report.MessagesSeen++

			msg, err := ParseMessage(bytes.NewReader(data))
			if err != nil {
				report.MessagesFailed++
				logging.WarnWithContext(c.logger, "mail message could not be parsed", "mail_parse_failed",
					logging.String(logging.FieldPath, paths[i]),
					logging.Error(err),
					logging.String(logging.FieldImpact, "message skipped"),
				)
				continue
			}
			if !filter.Match(msg) {
				c.logger.Debug("mail message filtered",
					logging.String("subject", msg.Subject),
					logging.String("from", msg.From),
				)
				continue
			}
			report.MessagesMatched++

			found := ExtractTitles(msg.Body)
			report.BooksFound += len(found)
			for _, title := range found {
				key := book.DedupeKey(title)
				if _, dup := seen[key]; dup {
					report.DuplicatesRemoved++
					continue
				}
				seen[key] = struct{}{}
				titles = append(titles, title)
			}
			c.logger.Debug("mail message parsed",
				logging.String("subject", msg.Subject),
				logging.Int("books", len(found)),
			)
		}
	}
	return titles
}

func (c *collector) resolveAuthors(ctx context.Context, titles []string) ([]string, error) {
	authors := make([]string, len(titles))
	if c.resolver == nil {
		for i := range authors {
			authors[i] = c.placeholder
		}
		return authors, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i, title := range titles {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			authors[i] = c.resolver.ResolveAuthor(gctx, title)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("resolve authors: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("resolve authors: %w", err)
	}
	return authors, nil
}

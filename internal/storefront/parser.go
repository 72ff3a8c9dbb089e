package storefront

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"kindleshelf/internal/config"
	"kindleshelf/internal/logging"
)

const defaultWorkers = 4

// Parser parses saved pages with configured row matching.
type Parser struct {
	rowClass string
	format   string
	workers  int
	logger   *slog.Logger
}

// NewParser builds a Parser from configuration.
func NewParser(cfg *config.Config, logger *slog.Logger) *Parser {
	p := &Parser{
		rowClass: DefaultRowClass,
		workers:  defaultWorkers,
		logger:   logging.NewComponentLogger(logger, "storefront"),
	}
	if cfg != nil {
		if cfg.Storefront.RowClass != "" {
			p.rowClass = cfg.Storefront.RowClass
		}
		if cfg.Storefront.Workers > 0 {
			p.workers = cfg.Storefront.Workers
		}
		p.format = cfg.Library.DefaultFormat
	}
	return p
}

// ParseFile parses one saved page from disk.
func (p *Parser) ParseFile(path string) (Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return Page{}, fmt.Errorf("open page: %w", err)
	}
	defer f.Close()

	page, err := parsePage(f, p.rowClass, p.format)
	if err != nil {
		return Page{}, fmt.Errorf("%s: %w", path, err)
	}
	page.Source = path

	for _, rec := range page.Records {
		p.logger.Debug("storefront row parsed",
			logging.String(logging.FieldPath, path),
			logging.String("title", rec.Title),
			logging.String("author", rec.Author),
		)
	}
	attrs := []logging.Attr{
		logging.String(logging.FieldPath, path),
		logging.Int("books", len(page.Records)),
		logging.Int("page", page.CurrentPage),
		logging.Bool("has_next", page.HasNext()),
	}
	if len(page.Records) == 0 {
		logging.WarnWithContext(p.logger, "storefront page has no book rows", "storefront_empty_page",
			append(attrs,
				logging.String(logging.FieldErrorHint, "save the page after the library table has loaded"),
				logging.String(logging.FieldImpact, "no books collected from this page"),
			)...)
		return page, nil
	}
	p.logger.Info("storefront page parsed", logging.Args(attrs...)...)
	return page, nil
}

// ParseFiles parses pages concurrently and returns them in argument order.
// The first failure cancels the remaining work.
func (p *Parser) ParseFiles(ctx context.Context, paths []string) ([]Page, error) {
	pages := make([]Page, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			page, err := p.ParseFile(path)
			if err != nil {
				return err
			}
			pages[i] = page
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pages, nil
}

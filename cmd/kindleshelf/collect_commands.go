package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"kindleshelf/internal/book"
	"kindleshelf/internal/config"
	"kindleshelf/internal/export"
	"kindleshelf/internal/library"
	"kindleshelf/internal/mailbox"
	"kindleshelf/internal/services/llm"
	"kindleshelf/internal/storefront"
)

func newCollectCommand(ctx *commandContext) *cobra.Command {
	collectCmd := &cobra.Command{
		Use:   "collect",
		Short: "Add books to the library from pages, mail or CSV",
	}

	collectCmd.AddCommand(newCollectPageCommand(ctx))
	collectCmd.AddCommand(newCollectMailCommand(ctx))
	collectCmd.AddCommand(newCollectCSVCommand(ctx))

	return collectCmd
}

func newCollectPageCommand(ctx *commandContext) *cobra.Command {
	var unique bool

	cmd := &cobra.Command{
		Use:   "page <file...>",
		Short: "Parse saved content-library pages",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			parser := storefront.NewParser(cfg, logger)
			pages, err := parser.ParseFiles(cmd.Context(), args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			var collector storefront.Collector
			for _, page := range pages {
				added := collector.Add(page)
				fmt.Fprintf(out, "%s: %s", page.Source, plural(added, "book", "books"))
				if page.CurrentPage > 0 {
					fmt.Fprintf(out, " (page %d, next: %s)", page.CurrentPage, yesNo(page.HasNext()))
				}
				fmt.Fprintln(out)
			}

			result, err := appendCollected(ctx, cmd, library.SourcePage, collector.Records(), unique)
			if err != nil {
				return err
			}
			printAppendResult(out, result, collector.Pages(), "page", "pages")

			if last := pages[len(pages)-1]; last.HasNext() {
				fmt.Fprintf(out, "Page %d links to page %d; save it and run collect page again\n", last.CurrentPage, last.NextPage)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&unique, "unique", false, "Skip titles already in the library")
	return cmd
}

func newCollectMailCommand(ctx *commandContext) *cobra.Command {
	var daysBack int
	var fetchAuthors bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "mail <file...>",
		Short: "Extract purchased titles from .eml or mbox files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := *ctx.configValue()
			if cmd.Flags().Changed("days") {
				cfg.Mailbox.DaysBack = daysBack
			}
			if cmd.Flags().Changed("authors") {
				cfg.Authors.Fetch = fetchAuthors
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			opts := []mailbox.Option{
				mailbox.WithLogger(logger),
				mailbox.WithFormat(cfg.Library.DefaultFormat),
				mailbox.WithPlaceholder(cfg.Authors.Placeholder),
			}
			if cfg.Authors.Fetch {
				lookup, err := newAuthorLookup(&cfg, logger)
				if err != nil {
					return err
				}
				opts = append(opts, mailbox.WithAuthorResolver(lookup))
			}

			filter := mailbox.NewFilter(&cfg, time.Now())
			records, report, err := mailbox.Collect(cmd.Context(), args, filter, opts...)
			if err != nil {
				return err
			}

			result, err := appendCollected(ctx, cmd, library.SourceMail, records, true)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, struct {
					Report  mailbox.Report `json:"report"`
					Added   int            `json:"added"`
					Skipped int            `json:"skipped"`
				}{report, result.Added, result.Skipped})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Messages: %d seen, %d matched", report.MessagesSeen, report.MessagesMatched)
			if report.MessagesFailed > 0 {
				fmt.Fprintf(out, ", %d unreadable", report.MessagesFailed)
			}
			fmt.Fprintln(out)
			fmt.Fprintf(out, "Titles found: %d (%d duplicates removed)\n", report.BooksFound, report.DuplicatesRemoved)
			printAppendResult(out, result, report.Files, "file", "files")
			return nil
		},
	}

	cmd.Flags().IntVar(&daysBack, "days", 0, "Only accept mail from the last N days (0 disables the filter)")
	cmd.Flags().BoolVar(&fetchAuthors, "authors", false, "Look up authors with the configured LLM")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output the collection report as JSON")
	return cmd
}

func newCollectCSVCommand(ctx *commandContext) *cobra.Command {
	var (
		unique bool
		style  string
	)

	cmd := &cobra.Command{
		Use:   "csv <file...>",
		Short: "Import a Title,Author,Format CSV export",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := exportOptions(ctx.configValue(), style)
			if err != nil {
				return err
			}
			var records []book.Record
			for _, path := range args {
				imported, err := readCSVFile(path, opts.Style)
				if err != nil {
					return err
				}
				records = append(records, imported...)
			}

			result, err := appendCollected(ctx, cmd, library.SourceCSV, records, unique)
			if err != nil {
				return err
			}
			printAppendResult(cmd.OutOrStdout(), result, len(args), "file", "files")
			return nil
		},
	}

	cmd.Flags().BoolVar(&unique, "unique", false, "Skip titles already in the library")
	cmd.Flags().StringVar(&style, "quote-style", "", "Quote escaping the files were written with (defaults to export.quote_style)")
	return cmd
}

func newLLMClient(cfg *config.Config) *llm.Client {
	llmCfg := cfg.GetLLM()
	return llm.NewClient(llm.Config{
		APIKey:         llmCfg.APIKey,
		BaseURL:        llmCfg.BaseURL,
		Model:          llmCfg.Model,
		Referer:        llmCfg.Referer,
		Title:          llmCfg.Title,
		TimeoutSeconds: llmCfg.TimeoutSeconds,
	})
}

func newAuthorLookup(cfg *config.Config, logger *slog.Logger) (*llm.AuthorLookup, error) {
	client := newLLMClient(cfg)
	if !client.Configured() {
		return nil, errors.New("author lookup enabled but no llm api_key is configured (set LLM_API_KEY or disable authors.fetch)")
	}
	return llm.NewAuthorLookup(client, cfg.Authors.Placeholder, logger), nil
}

func appendCollected(ctx *commandContext, cmd *cobra.Command, source string, records []book.Record, unique bool) (library.AppendResult, error) {
	var result library.AppendResult
	if len(records) == 0 {
		return result, nil
	}
	err := ctx.withLockedLibrary(func(store *library.Store) error {
		var err error
		if unique {
			result, err = store.AppendUnique(cmd.Context(), source, records)
		} else {
			result, err = store.Append(cmd.Context(), source, records)
		}
		if err != nil {
			return fmt.Errorf("store %s records: %w", source, err)
		}
		return nil
	})
	return result, err
}

func printAppendResult(out io.Writer, result library.AppendResult, inputs int, singular, pluralForm string) {
	fmt.Fprintf(out, "Added %s from %s", plural(result.Added, "book", "books"), plural(inputs, singular, pluralForm))
	if result.Skipped > 0 {
		fmt.Fprintf(out, " (%d already in library)", result.Skipped)
	}
	fmt.Fprintln(out)
}

func readCSVFile(path string, style export.QuoteStyle) ([]book.Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()
	records, err := export.ReadCSV(file, style)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return records, nil
}

package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"kindleshelf/internal/library"
)

const defaultHistoryLimit = 20

type listedBook struct {
	ID      int64     `json:"id"`
	Title   string    `json:"title"`
	Author  string    `json:"author"`
	Format  string    `json:"format"`
	Source  string    `json:"source"`
	AddedAt time.Time `json:"addedAt"`
}

func newListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the collected books",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withLibrary(func(store *library.Store) error {
				entries, err := store.List(cmd.Context())
				if err != nil {
					return fmt.Errorf("list library: %w", err)
				}

				if asJSON {
					books := make([]listedBook, 0, len(entries))
					for _, e := range entries {
						books = append(books, listedBook{
							ID:      e.ID,
							Title:   e.Record.Title,
							Author:  e.Record.Author,
							Format:  e.Record.Format,
							Source:  e.Source,
							AddedAt: e.AddedAt,
						})
					}
					return writeJSON(cmd, books)
				}

				out := cmd.OutOrStdout()
				if len(entries) == 0 {
					fmt.Fprintln(out, "Library is empty")
					return nil
				}
				rows := make([][]string, 0, len(entries))
				for _, e := range entries {
					row := append([]string{strconv.FormatInt(e.ID, 10)}, e.Record.Row()...)
					rows = append(rows, append(row, e.Source))
				}
				writeRows(out, []string{"ID", "Title", "Author", "Format", "Source"}, rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft})
				fmt.Fprintf(out, "Total: %s\n", plural(len(entries), "book", "books"))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List previous merge runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withLibrary(func(store *library.Store) error {
				runs, err := store.Runs(cmd.Context(), limit)
				if err != nil {
					return fmt.Errorf("load merge history: %w", err)
				}
				if asJSON {
					if runs == nil {
						runs = []library.Run{}
					}
					return writeJSON(cmd, runs)
				}

				out := cmd.OutOrStdout()
				if len(runs) == 0 {
					fmt.Fprintln(out, "No merge runs recorded")
					return nil
				}
				rows := make([][]string, 0, len(runs))
				for _, run := range runs {
					rows = append(rows, []string{
						run.ID,
						run.CreatedAt.Local().Format("2006-01-02 15:04"),
						strconv.Itoa(run.Summary.OriginalCount),
						strconv.Itoa(run.Summary.MergedCount),
						strconv.Itoa(run.Summary.SeriesCount),
						strconv.Itoa(run.Summary.StandaloneCount),
						strconv.Itoa(run.Summary.MixedPatternSeriesCount),
					})
				}
				writeRows(out, []string{"Run", "When", "Original", "Merged", "Series", "Standalone", "Mixed"}, rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight})
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", defaultHistoryLimit, "Maximum number of runs to show (0 for all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func newClearCommand(ctx *commandContext) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every collected book (merge history is kept)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withLockedLibrary(func(store *library.Store) error {
				out := cmd.OutOrStdout()
				count, err := store.Count(cmd.Context())
				if err != nil {
					return fmt.Errorf("count library: %w", err)
				}
				if count > 0 && !force {
					return fmt.Errorf("refusing to clear %s without --force", plural(count, "book", "books"))
				}
				removed, err := store.Clear(cmd.Context())
				if err != nil {
					return fmt.Errorf("clear library: %w", err)
				}
				fmt.Fprintf(out, "Cleared %s\n", plural(int(removed), "book", "books"))
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Clear without confirmation")
	return cmd
}

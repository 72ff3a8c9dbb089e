package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"kindleshelf/internal/book"
	"kindleshelf/internal/library"
	"kindleshelf/internal/logging"
	"kindleshelf/internal/sequel"
)

const standalonePreviewLimit = 10

var errNoBooks = errors.New("no books to merge; run kindleshelf collect first")

type mergeOutput struct {
	RunID   string         `json:"runId,omitempty"`
	Summary sequel.Summary `json:"summary"`
	Entries []sequel.Entry `json:"entries"`
}

func newMergeCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge sequel volumes in the library and record the run",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			return ctx.withLibrary(func(store *library.Store) error {
				records, err := loadRecords(cmd, store)
				if err != nil {
					return err
				}

				result := sequel.Merge(records, sequel.WithLogger(logger))
				run, err := store.RecordRun(cmd.Context(), library.NewRun(result.Summary))
				if err != nil {
					return err
				}
				logging.WithContext(logging.WithRunID(cmd.Context(), run.ID), logger).Info(
					"merge run recorded",
					logging.Int("original", result.Summary.OriginalCount),
					logging.Int("merged", result.Summary.MergedCount),
				)

				if asJSON {
					return writeJSON(cmd, mergeOutput{RunID: run.ID, Summary: result.Summary, Entries: result.Entries})
				}
				out := cmd.OutOrStdout()
				printSummary(out, result.Summary)
				fmt.Fprintf(out, "Run: %s\n", run.ID)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output the summary and merged entries as JSON")
	return cmd
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the merged catalog grouped into series and standalone books",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			return ctx.withLibrary(func(store *library.Store) error {
				records, err := loadRecords(cmd, store)
				if err != nil {
					return err
				}
				result := sequel.Merge(records, sequel.WithLogger(logger))
				renderMerged(cmd.OutOrStdout(), result, all)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "List every standalone book")
	return cmd
}

func newSampleCommand(ctx *commandContext) *cobra.Command {
	var store bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Merge the built-in sample collection",
		Long: "Merge the built-in sample collection and print the result. " +
			"With --store the sample books are also added to the library.",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			records := sequel.SampleRecords()
			if store {
				result, err := appendCollected(ctx, cmd, library.SourceSample, records, false)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Added %s to the library\n", plural(result.Added, "sample book", "sample books"))
			}

			result := sequel.Merge(records, sequel.WithLogger(logger))
			if asJSON {
				return writeJSON(cmd, mergeOutput{Summary: result.Summary, Entries: result.Entries})
			}
			out := cmd.OutOrStdout()
			printSummary(out, result.Summary)
			fmt.Fprintln(out)
			renderMerged(out, result, true)
			return nil
		},
	}

	cmd.Flags().BoolVar(&store, "store", false, "Also add the sample books to the library")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output the summary and merged entries as JSON")
	return cmd
}

func loadRecords(cmd *cobra.Command, store *library.Store) ([]book.Record, error) {
	records, err := store.Records(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("load library: %w", err)
	}
	if len(records) == 0 {
		return nil, errNoBooks
	}
	return records, nil
}

func printSummary(out io.Writer, summary sequel.Summary) {
	fmt.Fprintf(out, "Original books:       %d\n", summary.OriginalCount)
	fmt.Fprintf(out, "Merged entries:       %d\n", summary.MergedCount)
	fmt.Fprintf(out, "Series groups:        %d\n", summary.SeriesCount)
	fmt.Fprintf(out, "Standalone books:     %d\n", summary.StandaloneCount)
	if summary.MixedPatternSeriesCount > 0 {
		fmt.Fprintf(out, "Mixed-pattern series: %d\n", summary.MixedPatternSeriesCount)
	}
}

func renderMerged(out io.Writer, result sequel.Result, all bool) {
	writeSectionHeader(out, fmt.Sprintf("Merged catalog (%s)", plural(len(result.Entries), "entry", "entries")))

	series := result.SeriesEntries()
	if len(series) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Series (%s):\n", plural(len(series), "entry", "entries"))
		rows := make([][]string, 0, len(series))
		for _, e := range series {
			mixed := ""
			if e.MixedPatterns {
				mixed = "mixed"
			}
			rows = append(rows, []string{e.Title, e.Author, strconv.Itoa(e.VolumeCount), mixed})
		}
		writeRows(out, []string{"Title", "Author", "Volumes", "Patterns"}, rows,
			[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft})
	}

	standalone := result.StandaloneEntries()
	if len(standalone) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Standalone books (%s):\n", plural(len(standalone), "entry", "entries"))
		shown := standalone
		if !all && len(shown) > standalonePreviewLimit {
			shown = shown[:standalonePreviewLimit]
		}
		for _, e := range shown {
			fmt.Fprintf(out, "  %s by %s\n", e.Title, authorOrUnknown(e.Author))
		}
		if rest := len(standalone) - len(shown); rest > 0 {
			fmt.Fprintf(out, "  ... and %d more standalone books\n", rest)
		}
	}
}

func authorOrUnknown(author string) string {
	if author == "" {
		return "(unknown)"
	}
	return author
}

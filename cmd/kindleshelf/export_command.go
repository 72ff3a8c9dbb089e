package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"kindleshelf/internal/config"
	"kindleshelf/internal/export"
	"kindleshelf/internal/library"
	"kindleshelf/internal/sequel"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var merged bool
	var outPath string
	var toStdout bool
	var toClipboard bool
	var style string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the library as Title,Author,Format CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			if toStdout && toClipboard {
				return errors.New("--stdout and --clipboard are mutually exclusive")
			}
			cfg := ctx.configValue()
			opts, err := exportOptions(cfg, style)
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			var rows []export.Row
			err = ctx.withLibrary(func(store *library.Store) error {
				records, err := store.Records(cmd.Context())
				if err != nil {
					return fmt.Errorf("load library: %w", err)
				}
				if merged {
					if len(records) == 0 {
						return errNoBooks
					}
					rows = export.RowsFromEntries(sequel.Merge(records, sequel.WithLogger(logger)).Entries)
					return nil
				}
				rows = export.RowsFromRecords(records)
				return nil
			})
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				return fmt.Errorf("library is empty: %w", export.ErrNothingToExport)
			}

			out := cmd.OutOrStdout()
			switch {
			case toStdout:
				return export.WriteCSV(out, rows, opts)
			case toClipboard:
				data, err := export.Encode(rows, opts)
				if err != nil {
					return err
				}
				if err := export.CopyToClipboard(data); err != nil {
					return fmt.Errorf("copy csv: %w (use --stdout instead)", err)
				}
				fmt.Fprintf(out, "Copied %s to the clipboard\n", plural(len(rows), "row", "rows"))
				return nil
			}

			dir, name := exportTarget(cfg, outPath, merged, time.Now())
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create export directory %q: %w", dir, err)
			}
			path, err := export.WriteFile(dir, name, rows, opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Exported %s to %s\n", plural(len(rows), "row", "rows"), path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&merged, "merged", false, "Export the merged catalog instead of the raw library")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file or directory (defaults to paths.export_dir)")
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "Write CSV to stdout")
	cmd.Flags().BoolVar(&toClipboard, "clipboard", false, "Copy CSV to the system clipboard")
	cmd.Flags().StringVar(&style, "quote-style", "", "Override export.quote_style (double or backslash)")
	return cmd
}

func exportOptions(cfg *config.Config, override string) (export.Options, error) {
	value := cfg.Export.QuoteStyle
	if strings.TrimSpace(override) != "" {
		value = override
	}
	style, err := export.ParseQuoteStyle(value)
	if err != nil {
		return export.Options{}, err
	}
	return export.Options{Style: style, SanitizeCommas: cfg.Export.SanitizeCommas}, nil
}

// exportTarget resolves --out: a path ending in .csv names the file, anything
// else is a directory that receives the dated default name.
func exportTarget(cfg *config.Config, outPath string, merged bool, now time.Time) (string, string) {
	name := export.FileName(merged, now)
	outPath = strings.TrimSpace(outPath)
	if outPath == "" {
		return cfg.Paths.ExportDir, name
	}
	if expanded, err := config.ExpandPath(outPath); err == nil {
		outPath = expanded
	}
	if strings.EqualFold(filepath.Ext(outPath), ".csv") {
		return filepath.Dir(outPath), filepath.Base(outPath)
	}
	return outPath, name
}

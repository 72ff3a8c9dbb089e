package sequel

import (
	"log/slog"
	"sort"
	"strings"
	"unicode/utf8"

	"kindleshelf/internal/book"
	"kindleshelf/internal/logging"
)

// Option customizes grouping and merging.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger routes diagnostics to logger. Nil keeps the no-op default.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	o.logger = logging.NewComponentLogger(o.logger, "sequel")
	return o
}

// authorSeparators end the leading author segment used for grouping.
const authorSeparators = "，,、"

// NormalizeAuthor trims the author and keeps only the segment before the
// first separator, so co-author lists group with the lead author.
func NormalizeAuthor(author string) string {
	author = strings.TrimSpace(author)
	if idx := strings.IndexAny(author, authorSeparators); idx >= 0 {
		author = author[:idx]
	}
	return strings.TrimSpace(author)
}

// SeriesKey builds the grouping key for an author and base title.
func SeriesKey(author, baseTitle string) string {
	return NormalizeAuthor(author) + "::" + baseTitle
}

// GroupRecords splits records into series groups and standalone records.
// Standalone records keep their input order; each group's volumes are
// stable-sorted by volume number.
func GroupRecords(records []book.Record, opts ...Option) Grouping {
	o := buildOptions(opts)
	return groupRecords(records, o.logger)
}

func groupRecords(records []book.Record, logger *slog.Logger) Grouping {
	g := Grouping{Series: make(map[string]*Group)}

	for _, rec := range records {
		d, ok := ExtractSequelInfo(rec.Title)
		if !ok {
			g.Standalone = append(g.Standalone, rec)
			continue
		}

		key := SeriesKey(rec.Author, d.BaseTitle)
		group, exists := g.Series[key]
		if !exists {
			group = &Group{
				Key:       key,
				Author:    rec.Author,
				BaseTitle: d.BaseTitle,
				Suffix:    d.Suffix,
			}
			g.Series[key] = group
			g.Keys = append(g.Keys, key)
		} else if utf8.RuneCountInString(rec.Author) > utf8.RuneCountInString(group.Author) {
			group.Author = rec.Author
		}
		group.addKind(d.Kind)
		group.Volumes = append(group.Volumes, VolumeEntry{
			Volume:        d.Volume,
			VolumeText:    d.VolumeText,
			OriginalTitle: rec.Title,
			Format:        rec.Format,
			Kind:          d.Kind,
		})
	}

	for _, key := range g.Keys {
		group := g.Series[key]
		sort.SliceStable(group.Volumes, func(i, j int) bool {
			return group.Volumes[i].Volume < group.Volumes[j].Volume
		})
		if group.Mixed() {
			logging.WarnWithContext(logger, "series mixes volume marker styles", "sequel_mixed_patterns",
				logging.String("series", group.BaseTitle),
				logging.String("author", group.Author),
				logging.Any("kinds", group.Kinds()),
				logging.String(logging.FieldErrorHint, "dominant marker style is used for the merged title"),
				logging.String(logging.FieldImpact, "merged title may not match every volume's original marker"),
			)
		}
	}
	return g
}

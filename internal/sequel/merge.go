package sequel

import (
	"kindleshelf/internal/book"
	"kindleshelf/internal/logging"
)

// Merge groups records into series and renders one entry per series,
// followed by the standalone records in input order. The input slice is not
// modified and identical input always yields identical output.
func Merge(records []book.Record, opts ...Option) Result {
	o := buildOptions(opts)
	if len(records) == 0 {
		o.logger.Debug("no records to merge")
		return Result{Entries: []Entry{}}
	}

	grouping := groupRecords(records, o.logger)
	entries := make([]Entry, 0, len(grouping.Keys)+len(grouping.Standalone))
	summary := Summary{
		OriginalCount:   len(records),
		SeriesCount:     len(grouping.Keys),
		StandaloneCount: len(grouping.Standalone),
	}

	for _, key := range grouping.Keys {
		group := grouping.Series[key]
		if len(group.Volumes) < 2 {
			v := group.Volumes[0]
			entries = append(entries, Entry{
				Title:  v.OriginalTitle,
				Author: group.Author,
				Format: v.Format,
			})
			continue
		}

		entry := mergeGroup(group)
		if entry.MixedPatterns {
			summary.MixedPatternSeriesCount++
		}
		o.logger.Debug("merged series",
			logging.String("series", group.BaseTitle),
			logging.Int("volumes", entry.VolumeCount),
			logging.String("title", entry.Title),
		)
		entries = append(entries, entry)
	}

	for _, rec := range grouping.Standalone {
		entries = append(entries, Entry{
			Title:  rec.Title,
			Author: rec.Author,
			Format: rec.Format,
		})
	}

	summary.MergedCount = len(entries)
	o.logger.Info("sequel merge complete",
		logging.String(logging.FieldEventType, "sequel_merge_complete"),
		logging.Int("original", summary.OriginalCount),
		logging.Int("merged", summary.MergedCount),
		logging.Int("series", summary.SeriesCount),
		logging.Int("standalone", summary.StandaloneCount),
		logging.Int("mixed_pattern_series", summary.MixedPatternSeriesCount),
	)
	return Result{Entries: entries, Summary: summary}
}

func mergeGroup(group *Group) Entry {
	kind := DominantKind(group.Volumes)
	title := group.BaseTitle + FormatRange(group.Volumes, kind)
	if group.Suffix != "" {
		title += " " + group.Suffix
	}

	originals := make([]string, len(group.Volumes))
	for i, v := range group.Volumes {
		originals[i] = v.OriginalTitle
	}

	return Entry{
		Title:          title,
		Author:         group.Author,
		Format:         group.Volumes[0].Format,
		VolumeCount:    len(group.Volumes),
		OriginalTitles: originals,
		MixedPatterns:  group.Mixed(),
		PatternKinds:   group.Kinds(),
	}
}

// DominantKind returns the most frequent kind among volumes. Ties go to the
// kind that comes first in the Extractors table.
func DominantKind(volumes []VolumeEntry) Kind {
	counts := make(map[Kind]int, len(kindPriority))
	for _, v := range volumes {
		counts[v.Kind]++
	}
	var (
		best      Kind
		bestCount int
	)
	for _, kind := range kindPriority {
		if counts[kind] > bestCount {
			best = kind
			bestCount = counts[kind]
		}
	}
	return best
}

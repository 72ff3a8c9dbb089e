// Package sequel collapses multi-volume series into single catalog entries.
//
// The pipeline runs in four steps, leaves first:
//
//   - NormalizeNumeral turns a volume marker (ASCII digits, full-width digits,
//     or a single kanji numeral 一..十) into an integer and a canonical
//     half-width string.
//   - ExtractSequelInfo walks the ordered Extractors table and returns the
//     first Descriptor whose marker matches the title.
//   - GroupRecords buckets records by normalized author plus base title and
//     keeps everything else as standalone.
//   - Merge formats each group's volumes with FormatRange and assembles the
//     final entry list plus Summary counters.
//
// Everything here is a synchronous, in-memory transform over the slice passed
// in. There is no package-level mutable state, so concurrent merges over
// disjoint inputs are safe. Diagnostics go to an optional slog logger and never
// affect the result.
//
// Kanji numerals above 十 (for example 十一) are not recognized; markers that
// use them fall through to the next extractor or leave the title standalone.
// Digit runs too long for an int are unparseable the same way.
package sequel

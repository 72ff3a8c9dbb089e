package sequel

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// Extractor pairs a compiled pattern with the function that turns its
// submatches into a Descriptor. Extractors are evaluated in order by
// ExtractSequelInfo; the first one that reports a match wins.
type Extractor struct {
	Kind    Kind
	Pattern *regexp.Regexp
	Extract func(title string, m []string) (Descriptor, bool)
}

// Matches runs the extractor against title.
func (e Extractor) Matches(title string) (Descriptor, bool) {
	m := e.Pattern.FindStringSubmatch(title)
	if m == nil {
		return Descriptor{}, false
	}
	d, ok := e.Extract(title, m)
	if !ok || d.BaseTitle == "" {
		return Descriptor{}, false
	}
	d.Kind = e.Kind
	return d, true
}

// Go's \s is ASCII-only, so ideographic spaces are added explicitly.
const (
	ws     = `[\s\p{Zs}]`
	digits = `[0-9０-９]`
	kanji  = `一二三四五六七八九十`
)

var (
	reNumbered          = regexp.MustCompile(`^(.+?)[(（](` + digits + `+)[)）](.*)$`)
	reUpperLower        = regexp.MustCompile(`^(.+?)` + ws + `*([上下])` + ws + `*(.*)$`)
	reChapter           = regexp.MustCompile(`^(.+?)【第(` + digits + `+)話】(.*)$`)
	reCollection        = regexp.MustCompile(`^(.*?)第?([` + kanji + `0-9０-９]+)集(.*)$`)
	reVolumeKan         = regexp.MustCompile(`^(.+?)(` + digits + `+)巻(.*)$`)
	reSpaceNumber       = regexp.MustCompile(`^(.+?)` + ws + `*(` + digits + `+)` + ws + `+\((.*)$`)
	reTitleEndingNumber = regexp.MustCompile(`^(.+?)(` + digits + `+)$`)
	rePrefixCollection  = regexp.MustCompile(`^第?([` + kanji + `0-9０-９]+)集[:：]?` + ws + `+(.+)$`)
)

// structuralGlyphs disqualify a title from the bare trailing-number rule.
const structuralGlyphs = "巻話集(（上下【第"

// kindPriority mirrors the order of Extractors and breaks dominant-kind ties.
var kindPriority = []Kind{
	KindNumbered,
	KindUpperLower,
	KindChapter,
	KindCollection,
	KindVolumeKan,
	KindSpaceNumber,
	KindTitleEndingNumber,
	KindPrefixCollection,
}

// Extractors is the ordered marker table. Order matters: the bare trailing
// number rule must stay behind the bracketed and labelled forms.
var Extractors = []Extractor{
	{
		Kind:    KindNumbered,
		Pattern: reNumbered,
		Extract: func(_ string, m []string) (Descriptor, bool) {
			return numericDescriptor(m[1], m[2], m[3])
		},
	},
	{
		Kind:    KindUpperLower,
		Pattern: reUpperLower,
		Extract: func(_ string, m []string) (Descriptor, bool) {
			volume := 1
			if m[2] == "下" {
				volume = 2
			}
			return Descriptor{
				BaseTitle:  strings.TrimSpace(m[1]),
				Volume:     volume,
				VolumeText: m[2],
				Suffix:     strings.TrimSpace(m[3]),
			}, true
		},
	},
	{
		Kind:    KindChapter,
		Pattern: reChapter,
		Extract: func(_ string, m []string) (Descriptor, bool) {
			return numericDescriptor(m[1], m[2], m[3])
		},
	},
	{
		Kind:    KindCollection,
		Pattern: reCollection,
		Extract: func(_ string, m []string) (Descriptor, bool) {
			return collectionDescriptor(m[1], m[2], m[3])
		},
	},
	{
		Kind:    KindVolumeKan,
		Pattern: reVolumeKan,
		Extract: func(_ string, m []string) (Descriptor, bool) {
			return numericDescriptor(m[1], m[2], m[3])
		},
	},
	{
		Kind:    KindSpaceNumber,
		Pattern: reSpaceNumber,
		Extract: func(_ string, m []string) (Descriptor, bool) {
			d, ok := numericDescriptor(m[1], m[2], "")
			if !ok {
				return d, false
			}
			d.Suffix = strings.TrimSpace("(" + m[3])
			return d, true
		},
	},
	{
		Kind:    KindTitleEndingNumber,
		Pattern: reTitleEndingNumber,
		Extract: func(title string, m []string) (Descriptor, bool) {
			if strings.ContainsAny(title, structuralGlyphs) {
				return Descriptor{}, false
			}
			d, ok := numericDescriptor(m[1], m[2], "")
			if !ok || endsWithDigit(d.BaseTitle) {
				return Descriptor{}, false
			}
			return d, true
		},
	},
	{
		Kind:    KindPrefixCollection,
		Pattern: rePrefixCollection,
		Extract: func(_ string, m []string) (Descriptor, bool) {
			return collectionDescriptor(m[2], m[1], "")
		},
	},
}

// ExtractSequelInfo returns the descriptor from the first extractor that
// recognizes title. A false result means the title is standalone.
func ExtractSequelInfo(title string) (Descriptor, bool) {
	for _, ex := range Extractors {
		if d, ok := ex.Matches(title); ok {
			return d, true
		}
	}
	return Descriptor{}, false
}

// numericDescriptor handles markers whose display text is the canonical
// half-width number.
func numericDescriptor(base, marker, suffix string) (Descriptor, bool) {
	info, ok := NormalizeNumeral(marker)
	if !ok {
		return Descriptor{}, false
	}
	return Descriptor{
		BaseTitle:  strings.TrimSpace(base),
		Volume:     info.Value,
		VolumeText: info.NormalizedText,
		Suffix:     strings.TrimSpace(suffix),
	}, true
}

// collectionDescriptor keeps a kanji marker as written and folds digit
// markers to half-width.
func collectionDescriptor(base, marker, suffix string) (Descriptor, bool) {
	info, ok := NormalizeNumeral(marker)
	if !ok {
		return Descriptor{}, false
	}
	text := info.NormalizedText
	if _, isKanji := kanjiNumerals[marker]; isKanji {
		text = marker
	}
	return Descriptor{
		BaseTitle:  strings.TrimSpace(base),
		Volume:     info.Value,
		VolumeText: text,
		Suffix:     strings.TrimSpace(suffix),
	}, true
}

func endsWithDigit(s string) bool {
	if s == "" {
		return false
	}
	r := []rune(s)
	return unicode.IsDigit(r[len(r)-1])
}

func kindRank(kind Kind) int {
	for i, k := range kindPriority {
		if k == kind {
			return i
		}
	}
	return len(kindPriority)
}

func sortKinds(kinds []Kind) []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds)
	sort.SliceStable(out, func(i, j int) bool {
		return kindRank(out[i]) < kindRank(out[j])
	})
	return out
}

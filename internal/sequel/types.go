package sequel

import "kindleshelf/internal/book"

// Kind names the structural marker style a title used for its volume.
type Kind string

const (
	KindNumbered          Kind = "numbered"
	KindUpperLower        Kind = "upperLower"
	KindChapter           Kind = "chapter"
	KindCollection        Kind = "collection"
	KindVolumeKan         Kind = "volumeKan"
	KindSpaceNumber       Kind = "spaceNumber"
	KindTitleEndingNumber Kind = "titleEndingNumber"
	KindPrefixCollection  Kind = "prefixCollection"
)

// VolumeInfo is the normalized form of a volume marker.
type VolumeInfo struct {
	Value          int
	OriginalText   string
	NormalizedText string
}

// Descriptor is what a matching extractor reports about one title.
type Descriptor struct {
	BaseTitle  string
	Volume     int
	VolumeText string
	Suffix     string
	Kind       Kind
}

// VolumeEntry is one member of a series group.
type VolumeEntry struct {
	Volume        int
	VolumeText    string
	OriginalTitle string
	Format        string
	Kind          Kind
}

// Group collects the volumes that share a normalized author and base title.
type Group struct {
	Key       string
	Author    string
	BaseTitle string
	Suffix    string
	Volumes   []VolumeEntry

	kinds []Kind
}

// Kinds returns the distinct marker kinds seen in the group, in extractor
// priority order.
func (g *Group) Kinds() []Kind {
	return sortKinds(g.kinds)
}

// Mixed reports whether members of the group used more than one marker kind.
func (g *Group) Mixed() bool {
	return len(g.kinds) > 1
}

func (g *Group) addKind(kind Kind) {
	for _, k := range g.kinds {
		if k == kind {
			return
		}
	}
	g.kinds = append(g.kinds, kind)
}

// Grouping is the output of GroupRecords.
type Grouping struct {
	// Keys lists group keys in first-sight order.
	Keys       []string
	Series     map[string]*Group
	Standalone []book.Record
}

// Entry is one line of the merged catalog. Series entries carry VolumeCount
// and OriginalTitles; standalone records and single-volume groups leave them
// empty.
type Entry struct {
	Title          string   `json:"title"`
	Author         string   `json:"author"`
	Format         string   `json:"format"`
	VolumeCount    int      `json:"volumeCount,omitempty"`
	OriginalTitles []string `json:"originalTitles,omitempty"`
	MixedPatterns  bool     `json:"mixedPatterns,omitempty"`
	PatternKinds   []Kind   `json:"patternKinds,omitempty"`
}

// IsSeries reports whether the entry stands for more than one volume.
func (e Entry) IsSeries() bool {
	return e.VolumeCount > 0
}

// Record converts the entry back into a Title,Author,Format record.
func (e Entry) Record() book.Record {
	return book.Record{Title: e.Title, Author: e.Author, Format: e.Format}
}

// Summary holds the counters reported for one merge run.
type Summary struct {
	OriginalCount           int `json:"originalCount"`
	MergedCount             int `json:"mergedCount"`
	SeriesCount             int `json:"seriesCount"`
	StandaloneCount         int `json:"standaloneCount"`
	MixedPatternSeriesCount int `json:"mixedPatternSeriesCount"`
}

// Result is the merged catalog plus its counters.
type Result struct {
	Entries []Entry `json:"entries"`
	Summary Summary `json:"summary"`
}

// SeriesEntries returns the entries that merged more than one volume.
func (r Result) SeriesEntries() []Entry {
	out := make([]Entry, 0, len(r.Entries))
	for _, e := range r.Entries {
		if e.IsSeries() {
			out = append(out, e)
		}
	}
	return out
}

// StandaloneEntries returns every entry without volume metadata.
func (r Result) StandaloneEntries() []Entry {
	out := make([]Entry, 0, len(r.Entries))
	for _, e := range r.Entries {
		if !e.IsSeries() {
			out = append(out, e)
		}
	}
	return out
}

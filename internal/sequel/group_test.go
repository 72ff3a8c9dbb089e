package sequel

import (
	"bytes"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"kindleshelf/internal/book"
)

func TestNormalizeAuthor(t *testing.T) {
	cases := map[string]string{
		"  青樹佑夜， 綾峰欄人 ": "青樹佑夜",
		"A, B":           "A",
		"A、B":           "A",
		"  solo  ":       "solo",
		", B":            "",
		"":               "",
	}
	for input, want := range cases {
		if got := NormalizeAuthor(input); got != want {
			t.Errorf("NormalizeAuthor(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestGroupRecordsSeparatesAuthors(t *testing.T) {
	records := []book.Record{
		{Title: "同名(1)", Author: "作者A", Format: "Kindle"},
		{Title: "同名(2)", Author: "作者B", Format: "Kindle"},
		{Title: "同名(3)", Author: "作者A", Format: "Kindle"},
	}
	g := GroupRecords(records)
	if len(g.Keys) != 2 {
		t.Fatalf("expected 2 groups, got %d (%v)", len(g.Keys), g.Keys)
	}
	first := g.Series[g.Keys[0]]
	if first.Author != "作者A" || len(first.Volumes) != 2 {
		t.Fatalf("unexpected first group: %+v", first)
	}
	if g.Keys[0] != SeriesKey("作者A", "同名") {
		t.Fatalf("unexpected key %q", g.Keys[0])
	}
}

func TestGroupRecordsKeepsLongestAuthor(t *testing.T) {
	records := []book.Record{
		{Title: "奪還屋13巻", Author: "青樹佑夜", Format: "Kindle"},
		{Title: "奪還屋9巻", Author: "青樹佑夜， 綾峰欄人", Format: "Kindle"},
		{Title: "奪還屋29巻", Author: "青樹佑夜， 綾峰", Format: "Kindle"},
	}
	g := GroupRecords(records)
	if len(g.Keys) != 1 {
		t.Fatalf("expected one group, got %v", g.Keys)
	}
	group := g.Series[g.Keys[0]]
	if group.Author != "青樹佑夜， 綾峰欄人" {
		t.Fatalf("expected longest author, got %q", group.Author)
	}
	got := []int{group.Volumes[0].Volume, group.Volumes[1].Volume, group.Volumes[2].Volume}
	if !reflect.DeepEqual(got, []int{9, 13, 29}) {
		t.Fatalf("volumes not sorted: %v", got)
	}
}

func TestGroupRecordsSortIsStable(t *testing.T) {
	records := []book.Record{
		{Title: "X(2)", Format: "Kindle"},
		{Title: "X(1)", Format: "Kindle"},
		{Title: "X（２）", Format: "Kindle"},
	}
	g := GroupRecords(records)
	group := g.Series[g.Keys[0]]
	titles := make([]string, len(group.Volumes))
	for i, v := range group.Volumes {
		titles[i] = v.OriginalTitle
	}
	want := []string{"X(1)", "X(2)", "X（２）"}
	if !reflect.DeepEqual(titles, want) {
		t.Fatalf("titles = %v, want %v", titles, want)
	}
}

func TestGroupRecordsStandaloneOrder(t *testing.T) {
	records := []book.Record{
		{Title: "B単独", Format: "Kindle"},
		{Title: "X(1)", Format: "Kindle"},
		{Title: "A単独", Format: "Kindle"},
		{Title: "X(2)", Format: "Kindle"},
		{Title: "C単独", Format: "Kindle"},
	}
	g := GroupRecords(records)
	var titles []string
	for _, rec := range g.Standalone {
		titles = append(titles, rec.Title)
	}
	if !reflect.DeepEqual(titles, []string{"B単独", "A単独", "C単独"}) {
		t.Fatalf("standalone order changed: %v", titles)
	}
}

func TestGroupRecordsWarnsOnMixedKinds(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	records := []book.Record{
		{Title: "X(1)", Format: "Kindle"},
		{Title: "X 2", Format: "Kindle"},
	}
	g := GroupRecords(records, WithLogger(logger))
	group := g.Series[g.Keys[0]]
	if !group.Mixed() {
		t.Fatal("expected mixed group")
	}
	if !reflect.DeepEqual(group.Kinds(), []Kind{KindNumbered, KindTitleEndingNumber}) {
		t.Fatalf("unexpected kinds %v", group.Kinds())
	}
	out := buf.String()
	if !strings.Contains(out, "sequel_mixed_patterns") {
		t.Fatalf("expected mixed pattern warning, got %q", out)
	}
	if !strings.Contains(out, "component=sequel") {
		t.Fatalf("expected component attribute, got %q", out)
	}
}

package storefront_test

import (
	"context"
	"strings"
	"testing"

	"kindleshelf/internal/book"
	"kindleshelf/internal/storefront"
	"kindleshelf/internal/testsupport"
)

const libraryPage = `<!DOCTYPE html>
<html><body>
<table>
  <tr class="ListItem-module_row__3orql">
    <td><div role="heading" aria-level="4">  あずまんが大王(1)  </div>
        <div id="content-author-B00ABC">あずまきよひこ</div></td>
  </tr>
  <tr class="ListItem-module_row__3orql selected">
    <td><div role="heading" aria-level="4"><span>NEXUS</span><span>(2)</span></div>
        <div id="content-author-B00DEF">作者A, 作者B</div></td>
  </tr>
  <tr class="ListItem-module_row__3orql">
    <td><div role="heading" aria-level="3">ignored heading</div></td>
  </tr>
  <tr class="Header-module_row">
    <td><div role="heading" aria-level="4">not a book row</div></td>
  </tr>
  <tr class="ListItem-module_row__3orql">
    <td><div role="heading" aria-level="4">著者なし</div></td>
  </tr>
</table>
<ul class="pagination">
  <li class="page-item" id="page-1">1</li>
  <li class="page-item active" id="page-2">2</li>
  <li class="page-item" id="page-3">3</li>
</ul>
</body></html>`

func TestParsePageExtractsRows(t *testing.T) {
	page, err := storefront.ParsePage(strings.NewReader(libraryPage), "")
	if err != nil {
		t.Fatalf("ParsePage: %v", err)
	}

	want := []book.Record{
		{Title: "あずまんが大王(1)", Author: "あずまきよひこ", Format: book.DefaultFormat},
		{Title: "NEXUS(2)", Author: "作者A, 作者B", Format: book.DefaultFormat},
		{Title: "著者なし", Author: "", Format: book.DefaultFormat},
	}
	if len(page.Records) != len(want) {
		t.Fatalf("expected %d records, got %d: %+v", len(want), len(page.Records), page.Records)
	}
	for i := range want {
		if page.Records[i] != want[i] {
			t.Fatalf("record %d: expected %+v, got %+v", i, want[i], page.Records[i])
		}
	}
	if page.CurrentPage != 2 || page.NextPage != 3 || !page.HasNext() {
		t.Fatalf("unexpected pager state current=%d next=%d", page.CurrentPage, page.NextPage)
	}
}

func TestParsePageLastPage(t *testing.T) {
	doc := `<table><tr class="ListItem-module_row__x"><td><div role="heading" aria-level="4">最後の本</div></td></tr></table>
<ul><li class="page-item" id="page-1">1</li><li class="active page-item" id="page-2">2</li></ul>`
	page, err := storefront.ParsePage(strings.NewReader(doc), "Kindle版")
	if err != nil {
		t.Fatalf("ParsePage: %v", err)
	}
	if len(page.Records) != 1 || page.Records[0].Format != "Kindle版" {
		t.Fatalf("unexpected records %+v", page.Records)
	}
	if page.CurrentPage != 2 || page.HasNext() {
		t.Fatalf("expected last page 2, got current=%d next=%d", page.CurrentPage, page.NextPage)
	}
}

func TestParsePageWithoutPager(t *testing.T) {
	page, err := storefront.ParsePage(strings.NewReader("<p>nothing here</p>"), "")
	if err != nil {
		t.Fatalf("ParsePage: %v", err)
	}
	if len(page.Records) != 0 {
		t.Fatalf("expected no records, got %d", len(page.Records))
	}
	if page.CurrentPage != 0 || page.HasNext() {
		t.Fatalf("expected empty pager, got current=%d next=%d", page.CurrentPage, page.NextPage)
	}
}

func TestParsePageNormalizesTitle(t *testing.T) {
	doc := "<table><tr class=\"ListItem-module_row\"><td><div role=\"heading\" aria-level=\"4\">\u304b\u3099\u306e\u672c</div></td></tr></table>"
	page, err := storefront.ParsePage(strings.NewReader(doc), "")
	if err != nil {
		t.Fatalf("ParsePage: %v", err)
	}
	if len(page.Records) != 1 || page.Records[0].Title != "\u304c\u306e\u672c" {
		t.Fatalf("expected NFC title, got %+v", page.Records)
	}
}

func TestParseFilesKeepsArgumentOrder(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	dir := t.TempDir()

	var paths []string
	for i, title := range []string{"一冊目", "二冊目", "三冊目", "四冊目", "五冊目"} {
		doc := `<table><tr class="ListItem-module_row__a"><td><div role="heading" aria-level="4">` + title + `</div></td></tr></table>`
		paths = append(paths, testsupport.WriteFixture(t, dir, string(rune('a'+i))+".html", doc))
	}

	parser := storefront.NewParser(cfg, nil)
	pages, err := parser.ParseFiles(context.Background(), paths)
	if err != nil {
		t.Fatalf("ParseFiles: %v", err)
	}

	var collector storefront.Collector
	for _, page := range pages {
		collector.Add(page)
	}
	if collector.Len() != 5 || collector.Pages() != 5 {
		t.Fatalf("expected 5 records over 5 pages, got %d over %d", collector.Len(), collector.Pages())
	}
	records := collector.Records()
	want := []string{"一冊目", "二冊目", "三冊目", "四冊目", "五冊目"}
	for i, title := range want {
		if records[i].Title != title {
			t.Fatalf("record %d: expected %q, got %q", i, title, records[i].Title)
		}
	}
	if pages[0].Source != paths[0] {
		t.Fatalf("expected source %q, got %q", paths[0], pages[0].Source)
	}
}

func TestParseFilesMissingFile(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	parser := storefront.NewParser(cfg, nil)
	if _, err := parser.ParseFiles(context.Background(), []string{t.TempDir() + "/missing.html"}); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestParserUsesConfiguredRowClass(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Storefront.RowClass = "Custom-row"
	dir := t.TempDir()
	path := testsupport.WriteFixture(t, dir, "page.html",
		`<table><tr class="Custom-row__9"><td><div role="heading" aria-level="4">独自の行</div></td></tr>
<tr class="ListItem-module_row__3orql"><td><div role="heading" aria-level="4">既定の行</div></td></tr></table>`)

	page, err := storefront.NewParser(cfg, nil).ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if len(page.Records) != 1 || page.Records[0].Title != "独自の行" {
		t.Fatalf("unexpected records %+v", page.Records)
	}
}

func TestCollectorRecordsIsACopy(t *testing.T) {
	var collector storefront.Collector
	collector.Add(storefront.Page{Records: []book.Record{book.New("A", "", "")}})
	records := collector.Records()
	records[0].Title = "changed"
	if collector.Records()[0].Title != "A" {
		t.Fatal("expected collector contents to be unaffected by caller mutation")
	}
}

package export

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"kindleshelf/internal/book"
	"kindleshelf/internal/sequel"
)

func TestWriteCSVQuoteStyles(t *testing.T) {
	rows := []Row{
		{Title: `言う "はい"`, Author: "作者A, 作者B", Format: "Kindle"},
		{Title: "あずまんが大王(1-4)", Author: "", Format: "Kindle"},
	}
	tests := []struct {
		name string
		opts Options
		want string
	}{
		{
			name: "double",
			opts: Options{Style: QuoteDouble},
			want: "Title,Author,Format\n" +
				`"言う ""はい""","作者A, 作者B","Kindle"` + "\n" +
				`"あずまんが大王(1-4)","","Kindle"` + "\n",
		},
		{
			name: "backslash with comma sanitising",
			opts: Options{Style: QuoteBackslash, SanitizeCommas: true},
			want: "Title,Author,Format\n" +
				`"言う \"はい\"","作者A， 作者B","Kindle"` + "\n" +
				`"あずまんが大王(1-4)","","Kindle"` + "\n",
		},
		{
			name: "default style",
			opts: Options{},
			want: "Title,Author,Format\n" +
				`"言う ""はい""","作者A, 作者B","Kindle"` + "\n" +
				`"あずまんが大王(1-4)","","Kindle"` + "\n",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Encode(rows, tc.opts)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			if got != tc.want {
				t.Fatalf("unexpected CSV:\n%s\nwant:\n%s", got, tc.want)
			}
		})
	}
}

func TestWriteCSVEmpty(t *testing.T) {
	var b strings.Builder
	if err := WriteCSV(&b, nil, Options{}); !errors.Is(err, ErrNothingToExport) {
		t.Fatalf("expected ErrNothingToExport, got %v", err)
	}
	if b.Len() != 0 {
		t.Fatalf("expected nothing written, got %q", b.String())
	}
}

func TestWriteCSVUnknownStyle(t *testing.T) {
	if _, err := Encode([]Row{{Title: "x"}}, Options{Style: "single"}); err == nil {
		t.Fatal("expected error for unknown style")
	}
}

func TestParseQuoteStyle(t *testing.T) {
	tests := map[string]QuoteStyle{"": QuoteDouble, "Double": QuoteDouble, " backslash ": QuoteBackslash}
	for in, want := range tests {
		got, err := ParseQuoteStyle(in)
		if err != nil || got != want {
			t.Fatalf("ParseQuoteStyle(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseQuoteStyle("single"); err == nil {
		t.Fatal("expected error for unknown style")
	}
}

func TestReadCSVReadsBothStyles(t *testing.T) {
	rows := []Row{
		{Title: `言う "はい"`, Author: "作者A, 作者B", Format: "Kindle"},
		{Title: `末尾\`, Author: "", Format: "Kindle版"},
		{Title: "NEXUS(1-3)", Author: "作者C", Format: "Kindle"},
	}
	for _, style := range []QuoteStyle{QuoteDouble, QuoteBackslash} {
		t.Run(string(style), func(t *testing.T) {
			encoded, err := Encode(rows, Options{Style: style})
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			records, err := ReadCSV(strings.NewReader(encoded), style)
			if err != nil {
				t.Fatalf("ReadCSV: %v", err)
			}
			if len(records) != len(rows) {
				t.Fatalf("expected %d records, got %+v", len(rows), records)
			}
			for i, row := range rows {
				want := book.Record{Title: row.Title, Author: row.Author, Format: row.Format}
				if records[i] != want {
					t.Fatalf("record %d: expected %+v, got %+v", i, want, records[i])
				}
			}
		})
	}
}

func TestReadCSVHeaderVariants(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []book.Record
	}{
		{
			name: "title and author only",
			in:   "Title,Author\n\"本A\",\"作者A\"\n\"本B\",\"\"\n",
			want: []book.Record{
				{Title: "本A", Author: "作者A", Format: book.DefaultFormat},
				{Title: "本B", Author: "", Format: book.DefaultFormat},
			},
		},
		{
			name: "title and format",
			in:   "\ufeffTitle,Format\r\n\"本C\",\"Kindle版\"\r\n",
			want: []book.Record{{Title: "本C", Format: "Kindle版"}},
		},
		{
			name: "no header with blank lines",
			in:   "\"本D\",\"作者D\",\"Kindle\"\n\n本E,作者E\n\"\",\"skipped\"\n",
			want: []book.Record{
				{Title: "本D", Author: "作者D", Format: "Kindle"},
				{Title: "本E", Author: "作者E", Format: book.DefaultFormat},
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ReadCSV(strings.NewReader(tc.in), QuoteDouble)
			if err != nil {
				t.Fatalf("ReadCSV: %v", err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
			for i := range tc.want {
				if got[i] != tc.want[i] {
					t.Fatalf("record %d: expected %+v, got %+v", i, tc.want[i], got[i])
				}
			}
		})
	}
}

func TestReadCSVErrors(t *testing.T) {
	if _, err := ReadCSV(strings.NewReader("\"unterminated\n"), QuoteDouble); err == nil {
		t.Fatal("expected error for unterminated quote")
	}
	if _, err := ReadCSV(strings.NewReader("ab\"c\n"), QuoteDouble); err == nil {
		t.Fatal("expected error for stray quote")
	}
	if _, err := ReadCSV(strings.NewReader("\"a\"\n"), QuoteStyle("single")); err == nil {
		t.Fatal("expected error for unknown quote style")
	}
}

func TestReadCSVBackslashesSurviveEitherStyle(t *testing.T) {
	rows := []Row{
		{Title: `a\"b`, Author: `x\`, Format: "Kindle"},
		{Title: `ends\"`, Author: "作者", Format: `x\`},
		{Title: `x\`, Author: `a\"b`, Format: `ends\"`},
	}
	for _, style := range []QuoteStyle{QuoteDouble, QuoteBackslash} {
		t.Run(string(style), func(t *testing.T) {
			var b strings.Builder
			if err := WriteCSV(&b, rows, Options{Style: style}); err != nil {
				t.Fatalf("WriteCSV: %v", err)
			}
			records, err := ReadCSV(strings.NewReader(b.String()), style)
			if err != nil {
				t.Fatalf("ReadCSV(%q): %v", b.String(), err)
			}
			if len(records) != len(rows) {
				t.Fatalf("expected %d records, got %+v", len(rows), records)
			}
			for i, row := range rows {
				want := book.Record{Title: row.Title, Author: row.Author, Format: row.Format}
				if records[i] != want {
					t.Fatalf("record %d: expected %+v, got %+v", i, want, records[i])
				}
			}
		})
	}
}

func TestReadCSVDoubleStyleKeepsBackslashLiteral(t *testing.T) {
	records, err := ReadCSV(strings.NewReader("\"C:\\dir\\\",\"作者\"\n"), QuoteDouble)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(records) != 1 || records[0].Title != `C:\dir\` || records[0].Author != "作者" {
		t.Fatalf("unexpected records: %+v", records)
	}
}

func TestRowsFromEntries(t *testing.T) {
	result := sequel.Merge([]book.Record{
		book.New("NEXUS(1)", "作者A", ""),
		book.New("NEXUS(2)", "作者A", ""),
		book.New("単独の本", "", ""),
	})
	rows := RowsFromEntries(result.Entries)
	want := []Row{
		{Title: "NEXUS(1,2)", Author: "作者A", Format: "Kindle"},
		{Title: "単独の本", Author: "", Format: "Kindle"},
	}
	if len(rows) != len(want) {
		t.Fatalf("expected %+v, got %+v", want, rows)
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Fatalf("row %d: expected %+v, got %+v", i, want[i], rows[i])
		}
	}

	fromRecords := RowsFromRecords([]book.Record{book.New("本", "作者", "")})
	if fromRecords[0] != (Row{Title: "本", Author: "作者", Format: "Kindle"}) {
		t.Fatalf("unexpected row %+v", fromRecords[0])
	}
}

func TestFileName(t *testing.T) {
	now := time.Date(2026, 10, 19, 8, 30, 0, 0, time.UTC)
	if got := FileName(false, now); got != "kindle_books_2026-10-19.csv" {
		t.Fatalf("unexpected name %q", got)
	}
	if got := FileName(true, now); got != "kindle_books_merged_2026-10-19.csv" {
		t.Fatalf("unexpected merged name %q", got)
	}
}

func TestWriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	path, err := WriteFile(dir, "kindle:books.csv", []Row{{Title: "本", Format: "Kindle"}}, Options{})
	if err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if filepath.Base(path) != "kindle-books.csv" {
		t.Fatalf("expected sanitised name, got %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if string(data) != "Title,Author,Format\n\"本\",\"\",\"Kindle\"\n" {
		t.Fatalf("unexpected content %q", data)
	}

	if _, err := WriteFile(dir, "empty.csv", nil, Options{}); !errors.Is(err, ErrNothingToExport) {
		t.Fatalf("expected ErrNothingToExport, got %v", err)
	}
}

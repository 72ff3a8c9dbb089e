package book

import (
	"errors"
	"strings"
	"testing"
)

func TestNewDefaultsFormatAndTrims(t *testing.T) {
	rec := New("  あずまんが大王(1)　", " あずまきよひこ ", "")
	if rec.Title != "あずまんが大王(1)" {
		t.Fatalf("unexpected title %q", rec.Title)
	}
	if rec.Author != "あずまきよひこ" {
		t.Fatalf("unexpected author %q", rec.Author)
	}
	if rec.Format != DefaultFormat {
		t.Fatalf("expected default format, got %q", rec.Format)
	}
}

func TestCleanComposesDecomposedKana(t *testing.T) {
	// ka followed by a combining voiced sound mark.
	rec := New("\u304b\u3099", "", "Kindle")
	if rec.Title != "\u304c" {
		t.Fatalf("expected NFC title, got %q", rec.Title)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		record  Record
		wantErr bool
	}{
		{name: "ok", record: Record{Title: "単独の本", Author: "テスト作者", Format: "Kindle"}},
		{name: "empty author allowed", record: Record{Title: "単独の本", Format: "Kindle"}},
		{name: "missing title", record: Record{Author: "x", Format: "Kindle"}, wantErr: true},
		{name: "blank title", record: Record{Title: "   ", Format: "Kindle"}, wantErr: true},
		{name: "title too long", record: Record{Title: strings.Repeat("a", 1025)}, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.record.Validate()
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected validation error")
				}
				if !errors.Is(err, ErrInvalidRecord) {
					t.Fatalf("expected ErrInvalidRecord, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestDedupeKeyIsCaseless(t *testing.T) {
	if DedupeKey("Get Backers") != DedupeKey("  GET BACKERS ") {
		t.Fatal("expected caseless keys to match")
	}
	if DedupeKey("プランダラ(1)") == DedupeKey("プランダラ(2)") {
		t.Fatal("distinct titles must not collide")
	}
}

func TestRowKeepsColumnOrder(t *testing.T) {
	got := New("本", "作者", "Kindle版").Row()
	want := []string{"本", "作者", "Kindle版"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("Row() = %v, want %v", got, want)
	}
}

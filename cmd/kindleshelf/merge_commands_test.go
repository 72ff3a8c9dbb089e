package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"kindleshelf/internal/library"
	"kindleshelf/internal/testsupport"
)

func TestMergeRequiresBooks(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, []string{"merge"}, env.configPath)
	if !errors.Is(err, errNoBooks) {
		t.Fatalf("expected errNoBooks, got %v", err)
	}
}

func TestMergeRecordsRunInHistory(t *testing.T) {
	env := setupCLITestEnv(t)
	page := testsupport.WriteFixture(t, env.baseDir, "page.html", savedPage)
	env.run(t, "collect", "page", page)

	out := env.run(t, "merge")
	requireContains(t, out, "Original books:       4")
	requireContains(t, out, "Merged entries:       2")
	requireContains(t, out, "Run: ")

	out = env.run(t, "merge", "--json")
	var payload mergeOutput
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode merge output: %v", err)
	}
	if payload.RunID == "" || len(payload.Entries) != 2 {
		t.Fatalf("unexpected merge payload: %+v", payload)
	}
	if payload.Entries[0].Title != "あずまんが大王(1-3)" || payload.Entries[0].VolumeCount != 3 {
		t.Fatalf("unexpected first entry: %+v", payload.Entries[0])
	}

	out = env.run(t, "history", "--json")
	var runs []library.Run
	if err := json.Unmarshal([]byte(out), &runs); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != payload.RunID {
		t.Fatalf("expected newest run first, got %+v", runs)
	}
	if runs[0].Summary.OriginalCount != 4 || runs[0].Summary.MergedCount != 2 {
		t.Fatalf("unexpected recorded summary: %+v", runs[0].Summary)
	}

	out = env.run(t, "history")
	requireContains(t, out, payload.RunID)
}

func TestShowLimitsStandaloneList(t *testing.T) {
	env := setupCLITestEnv(t)
	var b strings.Builder
	b.WriteString("Title,Author,Format\n")
	b.WriteString("\"テスト巻(12)\",\"作者\",\"Kindle\"\n\"テスト巻(13)\",\"作者\",\"Kindle\"\n")
	for i := 1; i <= 12; i++ {
		fmt.Fprintf(&b, "\"単独の本 %c\",\"著者\",\"Kindle\"\n", 'A'+rune(i-1))
	}
	csvPath := testsupport.WriteFixture(t, env.baseDir, "books.csv", b.String())
	env.run(t, "collect", "csv", csvPath)

	out := env.run(t, "show")
	requireContains(t, out, "Merged catalog (13 entries)")
	requireContains(t, out, "Series (1 entry):")
	requireContains(t, out, "テスト巻(12,13)")
	requireContains(t, out, "Standalone books (12 entries):")
	requireContains(t, out, "単独の本 J by 著者")
	requireNotContains(t, out, "単独の本 K")
	requireContains(t, out, "... and 2 more standalone books")

	out = env.run(t, "show", "--all")
	requireContains(t, out, "単独の本 L by 著者")
	requireNotContains(t, out, "more standalone books")
}

func TestSampleCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out := env.run(t, "sample")
	requireContains(t, out, "Original books:       35")
	requireContains(t, out, "あずまんが大王(1-4)")
	requireContains(t, out, "Get Backers 奪還屋【極！単行本シリーズ】(8,9,13,23,24,25,29,33)巻")
	if got := len(listBooks(t, env)); got != 0 {
		t.Fatalf("sample without --store must not touch the library, got %d books", got)
	}

	env.run(t, "sample", "--store")
	if got := len(listBooks(t, env)); got != 35 {
		t.Fatalf("expected 35 stored sample books, got %d", got)
	}
}

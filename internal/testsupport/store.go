package testsupport

import (
	"context"
	"testing"

	"kindleshelf/internal/book"
	"kindleshelf/internal/config"
	"kindleshelf/internal/library"
)

// MustOpenLibrary opens a library.Store for tests and registers cleanup.
func MustOpenLibrary(t testing.TB, cfg *config.Config) *library.Store {
	t.Helper()

	store, err := library.Open(cfg)
	if err != nil {
		t.Fatalf("library.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// Seed appends titles to the store as Kindle records with no author.
func Seed(t testing.TB, store *library.Store, titles ...string) {
	t.Helper()

	records := make([]book.Record, len(titles))
	for i, title := range titles {
		records[i] = book.New(title, "", "")
	}
	if _, err := store.Append(context.Background(), library.SourceSample, records); err != nil {
		t.Fatalf("store.Append: %v", err)
	}
}

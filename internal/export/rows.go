package export

import (
	"kindleshelf/internal/book"
	"kindleshelf/internal/sequel"
)

// Header is the CSV header line written before any rows.
var Header = []string{"Title", "Author", "Format"}

// Row is one exported line.
type Row struct {
	Title  string
	Author string
	Format string
}

// RowsFromRecords converts records in order.
func RowsFromRecords(records []book.Record) []Row {
	rows := make([]Row, len(records))
	for i, rec := range records {
		rows[i] = rowFromRecord(rec)
	}
	return rows
}

func rowFromRecord(rec book.Record) Row {
	return Row{Title: rec.Title, Author: rec.Author, Format: rec.Format}
}

// RowsFromEntries converts merged catalog entries in order.
func RowsFromEntries(entries []sequel.Entry) []Row {
	rows := make([]Row, len(entries))
	for i, entry := range entries {
		rows[i] = rowFromRecord(entry.Record())
	}
	return rows
}

func (r Row) cells() []string {
	return []string{r.Title, r.Author, r.Format}
}

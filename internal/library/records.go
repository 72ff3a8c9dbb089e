package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"kindleshelf/internal/book"
)

// Source tags where a record was collected from.
const (
	SourcePage   = "page"
	SourceMail   = "mail"
	SourceCSV    = "csv"
	SourceSample = "sample"
)

// Entry is a stored record plus its bookkeeping columns.
type Entry struct {
	ID      int64
	Record  book.Record
	Source  string
	AddedAt time.Time
}

// AppendResult reports what an append call did.
type AppendResult struct {
	Added   int
	Skipped int
}

// Append stores records in order under source. Every record is cleaned and
// validated first; one invalid record rejects the whole batch.
func (s *Store) Append(ctx context.Context, source string, records []book.Record) (AppendResult, error) {
	return s.append(ctx, source, records, false)
}

// AppendUnique behaves like Append but skips records whose caseless title
// already exists in the library or earlier in the batch.
func (s *Store) AppendUnique(ctx context.Context, source string, records []book.Record) (AppendResult, error) {
	return s.append(ctx, source, records, true)
}

func (s *Store) append(ctx context.Context, source string, records []book.Record, unique bool) (AppendResult, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return AppendResult{}, errors.New("append records: source is required")
	}

	cleaned := make([]book.Record, len(records))
	for i, rec := range records {
		cleaned[i] = rec.Clean()
		if err := cleaned[i].Validate(); err != nil {
			return AppendResult{}, fmt.Errorf("record %d: %w", i+1, err)
		}
	}
	if len(cleaned) == 0 {
		return AppendResult{}, nil
	}

	var result AppendResult
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		result = AppendResult{}
		seen := make(map[string]struct{})
		if unique {
			existing, err := existingKeys(ctx, tx)
			if err != nil {
				return err
			}
			seen = existing
		}

		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO records (title, author, format, source, dedupe_key, added_at) VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare insert: %w", err)
		}
		defer stmt.Close()

		timestamp := time.Now().UTC().Format(time.RFC3339Nano)
		for _, rec := range cleaned {
			key := rec.DedupeKey()
			if unique {
				if _, dup := seen[key]; dup {
					result.Skipped++
					continue
				}
				seen[key] = struct{}{}
			}
			if _, err := stmt.ExecContext(ctx, rec.Title, rec.Author, rec.Format, source, key, timestamp); err != nil {
				return fmt.Errorf("insert record: %w", err)
			}
			result.Added++
		}
		return nil
	})
	if err != nil {
		return AppendResult{}, fmt.Errorf("append records: %w", err)
	}
	return result, nil
}

func existingKeys(ctx context.Context, tx *sql.Tx) (map[string]struct{}, error) {
	rows, err := tx.QueryContext(ctx, `SELECT dedupe_key FROM records`)
	if err != nil {
		return nil, fmt.Errorf("load dedupe keys: %w", err)
	}
	defer rows.Close()

	keys := make(map[string]struct{})
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan dedupe key: %w", err)
		}
		keys[key] = struct{}{}
	}
	return keys, rows.Err()
}

// List returns every stored entry in insertion order.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, author, format, source, added_at FROM records ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry    Entry
			addedRaw string
		)
		if err := rows.Scan(&entry.ID, &entry.Record.Title, &entry.Record.Author, &entry.Record.Format, &entry.Source, &addedRaw); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		entry.AddedAt = parseTime(addedRaw)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return entries, nil
}

// Records returns the stored records in insertion order.
func (s *Store) Records(ctx context.Context) ([]book.Record, error) {
	entries, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]book.Record, len(entries))
	for i, entry := range entries {
		records[i] = entry.Record
	}
	return records, nil
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	ctx = ensureContext(ctx)
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM records`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return count, nil
}

// Clear removes every stored record. Merge history is kept.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.execWithRetry(ctx, `DELETE FROM records`)
	if err != nil {
		return 0, fmt.Errorf("clear records: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return removed, nil
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	ts, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}
	return ts
}

package library

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"kindleshelf/internal/sequel"
)

// Run is one recorded merge.
type Run struct {
	ID        string         `json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	Summary   sequel.Summary `json:"summary"`
}

// NewRun stamps a summary with a fresh run ID and the current time.
func NewRun(summary sequel.Summary) Run {
	return Run{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Summary:   summary,
	}
}

// RecordRun stores a merge run. An empty ID is filled in.
func (s *Store) RecordRun(ctx context.Context, run Run) (Run, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	_, err := s.execWithRetry(ctx,
		`INSERT INTO merge_runs (
            id, created_at, original_count, merged_count,
            series_count, standalone_count, mixed_pattern_series_count
        ) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.CreatedAt.UTC().Format(time.RFC3339Nano),
		run.Summary.OriginalCount,
		run.Summary.MergedCount,
		run.Summary.SeriesCount,
		run.Summary.StandaloneCount,
		run.Summary.MixedPatternSeriesCount,
	)
	if err != nil {
		return Run{}, fmt.Errorf("record run: %w", err)
	}
	return run, nil
}

// Runs returns recorded merges, most recently recorded first. A limit <= 0 returns all.
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	ctx = ensureContext(ctx)
	query := `SELECT id, created_at, original_count, merged_count, series_count,
        standalone_count, mixed_pattern_series_count
        FROM merge_runs ORDER BY rowid DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run        Run
			createdRaw string
		)
		if err := rows.Scan(
			&run.ID,
			&createdRaw,
			&run.Summary.OriginalCount,
			&run.Summary.MergedCount,
			&run.Summary.SeriesCount,
			&run.Summary.StandaloneCount,
			&run.Summary.MixedPatternSeriesCount,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.CreatedAt = parseTime(createdRaw)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

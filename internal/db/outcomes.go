package db

import (
	"context"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"

	"keywordjourney/internal/models"
)

// IncrementOutcomes adds per-stage keyword counts for one classification run
// and bumps the run totals for source, in a single transaction.
func (d *DB) IncrementOutcomes(ctx context.Context, source string, counts map[string]int, fallbacks int) error {
	if source == "" {
		return ErrInvalidOutcome
	}

	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Rows are locked in stage order so concurrent runs for one source
	// cannot deadlock on each other.
	stages := make([]string, 0, len(counts))
	for stage := range counts {
		if stage == "" {
			return ErrInvalidOutcome
		}
		stages = append(stages, stage)
	}
	sort.Strings(stages)

	batch := &pgx.Batch{}
	total := 0
	for _, stage := range stages {
		n := counts[stage]
		if n <= 0 {
			continue
		}
		total += n
		batch.Queue(`
			INSERT INTO classification_outcomes (source, stage, count, last_seen_at)
			VALUES ($1, $2, $3, NOW())
			ON CONFLICT (source, stage) DO UPDATE
			SET count = classification_outcomes.count + EXCLUDED.count, last_seen_at = NOW()
		`, source, stage, n)
	}
	batch.Queue(`
		INSERT INTO classification_runs (source, runs, keywords, fallbacks, last_run_at)
		VALUES ($1, 1, $2, $3, NOW())
		ON CONFLICT (source) DO UPDATE
		SET runs = classification_runs.runs + 1,
		    keywords = classification_runs.keywords + EXCLUDED.keywords,
		    fallbacks = classification_runs.fallbacks + EXCLUDED.fallbacks,
		    last_run_at = NOW()
	`, source, total, fallbacks)

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to record outcomes: %w", err)
	}
	return tx.Commit(ctx)
}

// GetAllOutcomes returns all outcome rows for metrics export.
func (d *DB) GetAllOutcomes(ctx context.Context) ([]models.ClassificationOutcome, error) {
	rows, err := d.Pool.Query(ctx, `SELECT source, stage, count, last_seen_at FROM classification_outcomes ORDER BY source, stage`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var outcomes []models.ClassificationOutcome
	for rows.Next() {
		var o models.ClassificationOutcome
		if err := rows.Scan(&o.Source, &o.Stage, &o.Count, &o.LastSeenAt); err != nil {
			return nil, err
		}
		outcomes = append(outcomes, o)
	}
	return outcomes, rows.Err()
}

// GetAllRuns returns the per-source run totals.
func (d *DB) GetAllRuns(ctx context.Context) ([]models.ClassificationRun, error) {
	rows, err := d.Pool.Query(ctx, `SELECT source, runs, keywords, fallbacks, last_run_at FROM classification_runs ORDER BY source`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []models.ClassificationRun
	for rows.Next() {
		var r models.ClassificationRun
		if err := rows.Scan(&r.Source, &r.Runs, &r.Keywords, &r.Fallbacks, &r.LastRunAt); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

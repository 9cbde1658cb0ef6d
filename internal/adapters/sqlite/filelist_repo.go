package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/esmdiag/internal/ports/secondary"
)

// FileListRepository implements secondary.FileListRepository with SQLite.
type FileListRepository struct {
	db *sql.DB
}

// NewFileListRepository creates a new SQLite file list repository.
func NewFileListRepository(db *sql.DB) *FileListRepository {
	return &FileListRepository{db: db}
}

// Append adds paths to a run's file list after any existing entries. The run
// is recorded even when paths is empty.
func (r *FileListRepository) Append(ctx context.Context, runID, variable string, paths []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT OR IGNORE INTO filelist_runs (run_id, variable) VALUES (?, ?)",
		runID, variable,
	)
	if err != nil {
		return fmt.Errorf("failed to record run %s: %w", runID, err)
	}

	if len(paths) == 0 {
		return tx.Commit()
	}

	var next int
	err = tx.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(seq) + 1, 0) FROM filelist_entries WHERE run_id = ?",
		runID,
	).Scan(&next)
	if err != nil {
		return fmt.Errorf("failed to get file list position: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO filelist_entries (run_id, seq, variable, path) VALUES (?, ?, ?, ?)",
	)
	if err != nil {
		return fmt.Errorf("failed to prepare file list insert: %w", err)
	}
	defer stmt.Close()

	for i, path := range paths {
		if _, err := stmt.ExecContext(ctx, runID, next+i, variable, path); err != nil {
			return fmt.Errorf("failed to append %s to file list: %w", path, err)
		}
	}

	return tx.Commit()
}

// ListByRun retrieves a run's entries in append order.
func (r *FileListRepository) ListByRun(ctx context.Context, runID string) ([]*secondary.FileListRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT run_id, seq, variable, path, created_at FROM filelist_entries WHERE run_id = ? ORDER BY seq ASC",
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list file list entries: %w", err)
	}
	defer rows.Close()

	var entries []*secondary.FileListRecord
	for rows.Next() {
		var createdAt time.Time

		record := &secondary.FileListRecord{}
		if err := rows.Scan(&record.RunID, &record.Seq, &record.Variable, &record.Path, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan file list entry: %w", err)
		}
		record.CreatedAt = createdAt.Format(time.RFC3339)
		entries = append(entries, record)
	}

	return entries, rows.Err()
}

// LatestRunID returns the most recently started run ("" if none).
func (r *FileListRepository) LatestRunID(ctx context.Context) (string, error) {
	var runID string
	err := r.db.QueryRowContext(ctx,
		"SELECT run_id FROM filelist_runs ORDER BY rowid DESC LIMIT 1",
	).Scan(&runID)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get latest run: %w", err)
	}
	return runID, nil
}

// Ensure FileListRepository implements the interface.
var _ secondary.FileListRepository = (*FileListRepository)(nil)

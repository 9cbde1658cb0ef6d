// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/esmdiag/internal/core/reference"
	"github.com/example/esmdiag/internal/ports/secondary"
)

// ReferenceRepository implements secondary.ReferenceRepository with SQLite.
type ReferenceRepository struct {
	db *sql.DB
}

// NewReferenceRepository creates a new SQLite reference repository.
func NewReferenceRepository(db *sql.DB) *ReferenceRepository {
	return &ReferenceRepository{db: db}
}

// Create persists a new reference record and its tags.
func (r *ReferenceRepository) Create(ctx context.Context, record *secondary.ReferenceRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO references_registry (id, diag_script, verbosity, overwrite) VALUES (?, ?, ?, ?)",
		record.ID, record.DiagScript, record.Verbosity, boolToInt(record.Overwrite),
	)
	if err != nil {
		return fmt.Errorf("failed to create references for %s: %w", record.DiagScript, err)
	}

	if err := insertTags(ctx, tx, record); err != nil {
		return err
	}

	return tx.Commit()
}

// Replace overwrites the record with the same diagnostic script, keeping its ID.
func (r *ReferenceRepository) Replace(ctx context.Context, record *secondary.ReferenceRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var id string
	err = tx.QueryRowContext(ctx,
		"SELECT id FROM references_registry WHERE diag_script = ?",
		record.DiagScript,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return fmt.Errorf("references for %s not found", record.DiagScript)
	}
	if err != nil {
		return fmt.Errorf("failed to get references: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE references_registry SET verbosity = ?, overwrite = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		record.Verbosity, boolToInt(record.Overwrite), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update references: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM reference_tags WHERE reference_id = ?", id); err != nil {
		return fmt.Errorf("failed to clear reference tags: %w", err)
	}

	record.ID = id
	if err := insertTags(ctx, tx, record); err != nil {
		return err
	}

	return tx.Commit()
}

// GetByScript retrieves the record for a diagnostic script (nil if none).
func (r *ReferenceRepository) GetByScript(ctx context.Context, diagScript string) (*secondary.ReferenceRecord, error) {
	var (
		overwrite int
		createdAt time.Time
		updatedAt time.Time
	)

	record := &secondary.ReferenceRecord{}
	err := r.db.QueryRowContext(ctx,
		"SELECT id, diag_script, verbosity, overwrite, created_at, updated_at FROM references_registry WHERE diag_script = ?",
		diagScript,
	).Scan(&record.ID, &record.DiagScript, &record.Verbosity, &overwrite, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get references: %w", err)
	}

	record.Overwrite = overwrite != 0
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)

	if err := r.loadTags(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// List retrieves all records ordered by diagnostic script.
func (r *ReferenceRepository) List(ctx context.Context) ([]*secondary.ReferenceRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, diag_script, verbosity, overwrite, created_at, updated_at FROM references_registry ORDER BY diag_script ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list references: %w", err)
	}

	var records []*secondary.ReferenceRecord
	for rows.Next() {
		var (
			overwrite int
			createdAt time.Time
			updatedAt time.Time
		)

		record := &secondary.ReferenceRecord{}
		if err := rows.Scan(&record.ID, &record.DiagScript, &record.Verbosity, &overwrite, &createdAt, &updatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan references: %w", err)
		}

		record.Overwrite = overwrite != 0
		record.CreatedAt = createdAt.Format(time.RFC3339)
		record.UpdatedAt = updatedAt.Format(time.RFC3339)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("failed to list references: %w", err)
	}
	rows.Close()

	// Tags are loaded after the cursor is closed so a single-connection pool
	// does not deadlock.
	for _, record := range records {
		if err := r.loadTags(ctx, record); err != nil {
			return nil, err
		}
	}

	return records, nil
}

// Delete removes the record for a diagnostic script and its tags.
func (r *ReferenceRepository) Delete(ctx context.Context, diagScript string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"DELETE FROM reference_tags WHERE reference_id IN (SELECT id FROM references_registry WHERE diag_script = ?)",
		diagScript,
	)
	if err != nil {
		return fmt.Errorf("failed to delete reference tags: %w", err)
	}

	result, err := tx.ExecContext(ctx, "DELETE FROM references_registry WHERE diag_script = ?", diagScript)
	if err != nil {
		return fmt.Errorf("failed to delete references: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("references for %s not found", diagScript)
	}

	return tx.Commit()
}

// GetNextID returns the next available reference ID.
func (r *ReferenceRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 5) AS INTEGER)), 0) FROM references_registry",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next reference ID: %w", err)
	}

	return reference.GenerateReferenceID(maxID), nil
}

func (r *ReferenceRepository) loadTags(ctx context.Context, record *secondary.ReferenceRecord) error {
	rows, err := r.db.QueryContext(ctx,
		"SELECT kind, tag FROM reference_tags WHERE reference_id = ? ORDER BY kind, position",
		record.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to load reference tags: %w", err)
	}
	defer rows.Close()

	lists := tagLists(record)
	for rows.Next() {
		var kind, tag string
		if err := rows.Scan(&kind, &tag); err != nil {
			return fmt.Errorf("failed to scan reference tag: %w", err)
		}
		list, ok := lists[reference.Kind(kind)]
		if !ok {
			return fmt.Errorf("unknown reference tag kind %q", kind)
		}
		*list = append(*list, tag)
	}

	return rows.Err()
}

func insertTags(ctx context.Context, tx *sql.Tx, record *secondary.ReferenceRecord) error {
	for kind, list := range tagLists(record) {
		for pos, tag := range *list {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO reference_tags (reference_id, kind, position, tag) VALUES (?, ?, ?, ?)",
				record.ID, string(kind), pos, tag,
			)
			if err != nil {
				return fmt.Errorf("failed to store %s tag %q: %w", kind, tag, err)
			}
		}
	}
	return nil
}

// tagLists maps each tag kind to the record field holding it.
func tagLists(record *secondary.ReferenceRecord) map[reference.Kind]*[]string {
	return map[reference.Kind]*[]string{
		reference.KindAuthor:      &record.Authors,
		reference.KindContributor: &record.Contributors,
		reference.KindDiagnostic:  &record.DiagRefs,
		reference.KindObservation: &record.ObsRefs,
		reference.KindProject:     &record.ProjRefs,
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Ensure ReferenceRepository implements the interface.
var _ secondary.ReferenceRepository = (*ReferenceRepository)(nil)
